// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves runtime controls of a running ledger. Mount it on a private listener only.
package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/farmvault/farm/ledger"
)

func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, l *ledger.Ledger) http.HandlerFunc {
	router := mux.NewRouter()

	newLogLevel(logLevel).Mount(router, "/admin/loglevel")
	newAPILogs(apiLogs).Mount(router, "/admin/apilogs")
	newHealth(l).Mount(router, "/admin/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
