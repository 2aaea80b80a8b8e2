// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/lvldb"
)

type testAdmin struct {
	handler http.Handler
	level   *slog.LevelVar
	apiLogs *atomic.Bool
	ledger  *ledger.Ledger
}

func newTestAdmin(t *testing.T) *testAdmin {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	apiLogs := &atomic.Bool{}
	l := ledger.New(db, clock.NewManual(1000))
	return &testAdmin{handler: New(level, apiLogs, l), level: level, apiLogs: apiLogs, ledger: l}
}

func (a *testAdmin) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestLogLevel(t *testing.T) {
	a := newTestAdmin(t)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantLevel  string
	}{
		{"get", http.MethodGet, "", http.StatusOK, "INFO"},
		{"set debug", http.MethodPost, `{"level":"debug"}`, http.StatusOK, "DEBUG"},
		{"set trace", http.MethodPost, `{"level":"trace"}`, http.StatusOK, "DEBUG-4"},
		{"invalid level", http.MethodPost, `{"level":"loud"}`, http.StatusBadRequest, ""},
		{"invalid body", http.MethodPost, `{"lvl":"info"}`, http.StatusBadRequest, ""},
		{"method not allowed", http.MethodDelete, "", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, "/admin/loglevel", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLevel == "" {
				return
			}
			var resp logLevelResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantLevel, resp.CurrentLevel)
		})
	}
	assert.Equal(t, slog.Level(-8), a.level.Level(), "invalid requests leave the level untouched")
}

func TestAPILogs(t *testing.T) {
	a := newTestAdmin(t)

	rec := a.do(http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.apiLogs.Load())

	rec = a.do(http.MethodGet, "/admin/apilogs", "")
	var status LogStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.Enabled)

	rec = a.do(http.MethodPost, "/admin/apilogs", `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, a.apiLogs.Load())

	rec = a.do(http.MethodPost, "/admin/apilogs", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPut, "/admin/apilogs", `{"enabled":true}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, a.apiLogs.Load())

	rec = a.do(http.MethodGet, "/admin/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	a := newTestAdmin(t)

	rec := a.do(http.MethodGet, "/admin/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.False(t, status.Deployed)
	assert.Equal(t, uint64(1000), status.CurrentTime)

	admin := farm.BytesToAddress([]byte("admin"))
	mint := farm.BytesToAddress([]byte("mint"))
	ctx := context.Background()
	require.NoError(t, a.ledger.CreateState(ctx, admin, mint))
	_, err := a.ledger.CreatePool(ctx, admin, mint, 0, 10, 1, 60)
	require.NoError(t, err)

	rec = a.do(http.MethodGet, "/admin/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.PoolCount)
	require.NotNil(t, status.Registry)
	assert.Equal(t, a.ledger.RegistryAddress(), *status.Registry)
}
