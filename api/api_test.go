// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/api"
	"github.com/farmvault/farm/api/accounts"
	"github.com/farmvault/farm/api/pools"
	"github.com/farmvault/farm/api/positions"
	"github.com/farmvault/farm/api/registry"
	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/lvldb"
)

const day = farm.SecondsPerDay

var (
	admin = farm.BytesToAddress([]byte("admin"))
	mint  = farm.BytesToAddress([]byte("mint"))
	alice = farm.BytesToAddress([]byte("alice"))
)

func newServer(t *testing.T, writable bool) (*httptest.Server, *clock.Manual) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewManual(1_000_000)
	ts := httptest.NewServer(api.New(ledger.New(db, clk), api.Options{
		AllowedOrigins: "*",
		EnableMetrics:  true,
		EnableWrites:   writable,
	}))
	t.Cleanup(ts.Close)
	return ts, clk
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/x-www-form-urlencoded", bytes.NewReader(data)) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func decode[T any](t *testing.T, body []byte) T {
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestStakingFlow(t *testing.T) {
	ts, clk := newServer(t, true)

	body, code := httpGet(t, ts.URL+"/registry")
	assert.Equal(t, http.StatusNotFound, code, string(body))

	body, code = httpPost(t, ts.URL+"/registry", registry.CreateState{Caller: admin, Mint: mint})
	require.Equal(t, http.StatusOK, code, string(body))
	reg := decode[registry.Registry](t, body)
	assert.Equal(t, admin, reg.Admin)
	assert.Equal(t, uint64(1_000_000), reg.StartTime)

	body, code = httpPost(t, ts.URL+"/pools", map[string]any{
		"caller": admin, "mint": mint, "index": 0, "apy": 10, "minStake": "0x64", "lockDuration": 30 * day,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	p := decode[pools.Pool](t, body)
	assert.Equal(t, uint64(100), p.MinStakeAmount)

	for _, owner := range []farm.Address{admin, alice} {
		body, code = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/mint", map[string]any{"caller": admin, "amount": 100_000})
		require.Equal(t, http.StatusOK, code, string(body))
		acc := decode[accounts.Account](t, body)
		assert.Equal(t, uint64(100_000), acc.Balance)
	}

	body, code = httpPost(t, ts.URL+"/pools/0/fund", map[string]any{"caller": admin, "amount": 1000})
	require.Equal(t, http.StatusOK, code, string(body))
	p = decode[pools.Pool](t, body)
	assert.Equal(t, uint64(1000), p.AmountReward)

	body, code = httpGet(t, ts.URL+"/pools/0/reward?principal=10000")
	require.Equal(t, http.StatusOK, code, string(body))
	quote := decode[pools.Quote](t, body)
	assert.Equal(t, uint64(82), quote.Reward)

	body, code = httpPost(t, ts.URL+"/pools/0/stakes", map[string]any{"caller": alice, "amount": 50})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "minimum")

	body, code = httpPost(t, ts.URL+"/pools/0/stakes", map[string]any{"caller": alice, "amount": 10_000})
	require.Equal(t, http.StatusOK, code, string(body))
	id := decode[pools.StakeResult](t, body).ID

	body, code = httpGet(t, ts.URL+"/positions/"+id.String())
	require.Equal(t, http.StatusOK, code, string(body))
	pos := decode[positions.Position](t, body)
	assert.Equal(t, alice, pos.Owner)
	assert.Equal(t, uint64(82), pos.RewardAmount)
	assert.Equal(t, uint64(1_000_000+30*day), pos.ClaimableAt)
	assert.False(t, pos.Matured)

	body, code = httpGet(t, ts.URL+"/accounts/"+alice.String()+"/positions")
	require.Equal(t, http.StatusOK, code, string(body))
	list := decode[[]positions.Position](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	_, code = httpPost(t, ts.URL+"/pools/0/withdraw", map[string]any{"caller": admin, "amount": 1000})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, ts.URL+"/positions/"+id.String()+"/claim", positions.Settle{Caller: admin})
	assert.Equal(t, http.StatusForbidden, code)
	_, code = httpPost(t, ts.URL+"/positions/"+id.String()+"/claim", positions.Settle{Caller: alice})
	assert.Equal(t, http.StatusBadRequest, code)

	clk.Advance(30 * day)
	body, code = httpPost(t, ts.URL+"/positions/"+id.String()+"/claim", positions.Settle{Caller: alice})
	require.Equal(t, http.StatusOK, code, string(body))

	_, code = httpGet(t, ts.URL+"/positions/"+id.String())
	assert.Equal(t, http.StatusNotFound, code)

	body, code = httpGet(t, ts.URL+"/accounts/"+alice.String())
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, uint64(100_082), decode[accounts.Account](t, body).Balance)

	body, code = httpGet(t, ts.URL+"/pools")
	require.Equal(t, http.StatusOK, code, string(body))
	all := decode[[]pools.Pool](t, body)
	require.Len(t, all, 1)
	assert.Equal(t, uint64(1000-82), all[0].AmountReward)
	assert.Equal(t, uint64(0), all[0].AmountRewardReserved)
}

func TestBadRequests(t *testing.T) {
	ts, _ := newServer(t, true)

	tests := []struct {
		name string
		url  string
		body any
		code int
	}{
		{"bad index", "/pools/256/fund", map[string]any{"caller": admin, "amount": 1}, http.StatusBadRequest},
		{"missing amount", "/pools/0/fund", map[string]any{"caller": admin}, http.StatusBadRequest},
		{"unknown field", "/pools/0/fund", map[string]any{"caller": admin, "amount": 1, "extra": 1}, http.StatusBadRequest},
		{"bad id", "/positions/0x12/claim", map[string]any{"caller": admin}, http.StatusBadRequest},
		{"apy out of range", "/pools", map[string]any{"caller": admin, "mint": mint, "index": 0, "apy": 300, "minStake": 1, "lockDuration": 1}, http.StatusBadRequest},
		{"no registry", "/pools/0/fund", map[string]any{"caller": admin, "amount": 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := httpPost(t, ts.URL+tt.url, tt.body)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestReadOnly(t *testing.T) {
	ts, _ := newServer(t, false)

	_, code := httpPost(t, ts.URL+"/registry", registry.CreateState{Caller: admin, Mint: mint})
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, code, "write routes are not mounted")
	_, code = httpGet(t, ts.URL+"/registry")
	assert.Equal(t, http.StatusNotFound, code, "registry was not created")

	body, code := httpGet(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(string(body), `"healthy":true`))
}
