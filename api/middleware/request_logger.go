// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/farmvault/farm/log"
)

// statusWriter records the status code written by the wrapped handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// RequestLoggerMiddleware logs every request while enabled is set, and any request slower than
// slowThreshold otherwise. A zero threshold disables slow request logging.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && slowThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("failed to read request body", "err", err)
					http.Error(w, "bad request body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			ctx := []any{
				"method", r.Method,
				"uri", r.URL.String(),
				"status", sw.status,
				"elapsed", elapsed.Milliseconds(),
				"body", string(body),
			}
			switch {
			case enabled.Load():
				logger.Info("api request", ctx...)
			case elapsed > slowThreshold:
				logger.Warn("slow api request", ctx...)
			}
		})
	}
}
