// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/reverts"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{reverts.ErrUnauthorized, http.StatusForbidden},
		{errors.WithMessage(reverts.ErrPoolNotFound, "fund"), http.StatusNotFound},
		{reverts.ErrPositionNotFound, http.StatusNotFound},
		{reverts.ErrAccountNotFound, http.StatusNotFound},
		{reverts.ErrRegistryNotFound, http.StatusNotFound},
		{reverts.ErrStillLocked, http.StatusBadRequest},
		{reverts.ErrInsufficientRewardBudget, http.StatusBadRequest},
		{errors.New("disk"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusOf(tt.err), tt.err.Error())
	}
	assert.Nil(t, LedgerError(nil))
}

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, "bad"},
		{"revert", LedgerError(reverts.ErrStillLocked), http.StatusBadRequest, reverts.ErrStillLocked.Error()},
		{"forbidden", LedgerError(reverts.ErrUnauthorized), http.StatusForbidden, reverts.ErrUnauthorized.Error()},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "boom"},
		{"no cause", HTTPError(nil, http.StatusTeapot), http.StatusTeapot, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestParseNumbers(t *testing.T) {
	v, err := ParseUint64("1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v)

	v, err = ParseUint64("0x3e8")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v)

	_, err = ParseUint64("-1")
	assert.Error(t, err)

	b, err := ParseUint8("255")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), b)
	_, err = ParseUint8("256")
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	var body struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &body))
	assert.Equal(t, 1, body.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"b":1}`), &body))
}
