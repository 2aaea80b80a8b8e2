// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/farmvault/farm/api"
	"github.com/farmvault/farm/api/admin"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/metrics"
)

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	return withLedger(ctx, func(l *ledger.Ledger) error {
		apiLogs := &atomic.Bool{}
		apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

		var servers []*namedServer
		closeListeners := func() {
			for _, s := range servers {
				s.listener.Close()
			}
		}
		add := func(name, addr string, srv *http.Server) error {
			listener, err := listen(addr)
			if err != nil {
				closeListeners()
				return err
			}
			servers = append(servers, &namedServer{name: name, listener: listener, srv: srv})
			return nil
		}

		if err := add("API", ctx.String(apiAddrFlag.Name), newAPIServer(ctx, l, apiLogs)); err != nil {
			return err
		}
		if ctx.Bool(enableMetricsFlag.Name) {
			if err := add("metrics", ctx.String(metricsAddrFlag.Name), newMetricsServer()); err != nil {
				return err
			}
		}
		if addr := ctx.String(adminAddrFlag.Name); addr != "" {
			if err := add("admin", addr, newAdminServer(l, apiLogs)); err != nil {
				return err
			}
		}

		log.Info("serving ledger", "version", fullVersion(), "dataDir", ctx.GlobalString(dataDirFlag.Name), "writes", ctx.Bool(enableWritesFlag.Name))
		return runServers(handleExitSignal(), servers)
	})
}

type namedServer struct {
	name     string
	listener net.Listener
	srv      *http.Server
}

// runServers serves until ctx is done or any server fails, then shuts every server down.
func runServers(ctx context.Context, servers []*namedServer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			log.Info("server started", "name", s.name, "url", "http://"+s.listener.Addr().String()+"/")
			if err := s.srv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, s := range servers {
			log.Info("stopping server...", "name", s.name)
			if err := s.srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("failed to stop server", "name", s.name, "err", err)
			}
		}
		return nil
	})
	return g.Wait()
}

func newAPIServer(ctx *cli.Context, l *ledger.Ledger, apiLogs *atomic.Bool) *http.Server {
	var handler http.Handler = api.New(l, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableWrites:         ctx.Bool(enableWritesFlag.Name),
	})
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = requestBodyLimit(handler)
	return &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
}

func newMetricsServer() *http.Server {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)
	return &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
}

func newAdminServer(l *ledger.Ledger, apiLogs *atomic.Bool) *http.Server {
	level := logLevel
	if level == nil {
		level = &slog.LevelVar{}
	}
	handler := admin.New(level, apiLogs, l)
	return &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
}
