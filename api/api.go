// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/farmvault/farm/api/accounts"
	"github.com/farmvault/farm/api/middleware"
	"github.com/farmvault/farm/api/pools"
	"github.com/farmvault/farm/api/positions"
	"github.com/farmvault/farm/api/registry"
	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	// EnableWrites mounts the mutating endpoints. Callers are trusted, so only enable it on a private listener.
	EnableWrites bool
}

// New return api router
func New(l *ledger.Ledger, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.Path("/health").Methods(http.MethodGet).HandlerFunc(
		utils.WrapHandlerFunc(func(w http.ResponseWriter, req *http.Request) error {
			return utils.WriteJSON(w, utils.M{"healthy": true, "time": l.Clock().Now()})
		}))

	registry.New(l, opts.EnableWrites).
		Mount(router, "/registry")
	pools.New(l, opts.EnableWrites).
		Mount(router, "/pools")
	positions.New(l, opts.EnableWrites).
		Mount(router, "/positions")
	accounts.New(l, opts.EnableWrites).
		Mount(router, "/accounts")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	return handler.ServeHTTP
}
