// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/reverts"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// StatusOf returns the http status a ledger error is responded with.
func StatusOf(err error) int {
	if !reverts.IsRevertErr(err) {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, reverts.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, reverts.ErrRegistryNotFound),
		errors.Is(err, reverts.ErrPoolNotFound),
		errors.Is(err, reverts.ErrPositionNotFound),
		errors.Is(err, reverts.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// LedgerError converts a ledger error into an http error. Non revert errors pass through.
func LedgerError(err error) error {
	if err == nil {
		return nil
	}
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		return err
	}
	return HTTPError(err, status)
}

// HandlerFunc like http.HandlerFunc, bu it returns an error.
// If the returned error is httpError type, httpError.status will be responded,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err != nil {
			var he *httpError
			if errors.As(err, &he) {
				if he.cause != nil {
					http.Error(w, he.cause.Error(), he.status)
				} else {
					w.WriteHeader(he.status)
				}
			} else {
				logger.Debug("internal error", "uri", r.URL.String(), "err", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// ParseUint64 parses a decimal or 0x prefixed hex number.
func ParseUint64(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hexutil.DecodeUint64(s)
	}
	return strconv.ParseUint(s, 10, 64)
}

// ParseUint8 parses a decimal or 0x prefixed hex number that must fit a byte.
func ParseUint8(s string) (uint8, error) {
	v, err := ParseUint64(s)
	if err != nil {
		return 0, err
	}
	if v > 255 {
		return 0, errors.New("out of range")
	}
	return uint8(v), nil
}

// M shortcut for type map[string]any.
type M map[string]any
