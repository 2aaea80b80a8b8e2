// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/lvldb"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(os.Stderr, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandler(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return lvl
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "farm")
		}
		return filepath.Join(home, ".farm")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

// openLedger opens the ledger stored under the data dir. The returned func closes the database.
func openLedger(ctx *cli.Context) (*ledger.Ledger, func(), error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, nil, err
	}
	path := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              ctx.GlobalInt(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open ledger database [%v]", path)
	}
	return ledger.New(db, &clock.System{}), func() {
		log.Debug("closing ledger database...")
		if err := db.Close(); err != nil {
			log.Warn("failed to close ledger database", "err", err)
		}
	}, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestBodyLimit caps request bodies to 200kb.
func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 200*1024)
		h.ServeHTTP(w, r)
	})
}

func listen(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen addr [%v]", addr)
	}
	return listener, nil
}

func requireAddress(ctx *cli.Context, flag cli.StringFlag) (farm.Address, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return farm.Address{}, fmt.Errorf("--%s is required", flag.Name)
	}
	addr, err := farm.ParseAddress(v)
	if err != nil {
		return farm.Address{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return addr, nil
}

func requireUint64(ctx *cli.Context, flag cli.StringFlag) (uint64, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return 0, fmt.Errorf("--%s is required", flag.Name)
	}
	n, err := utils.ParseUint64(v)
	if err != nil {
		return 0, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return n, nil
}

func requireUint8(ctx *cli.Context, flag cli.StringFlag) (uint8, error) {
	n, err := requireUint64(ctx, flag)
	if err != nil {
		return 0, err
	}
	if n > 255 {
		return 0, fmt.Errorf("--%s: %d out of range", flag.Name, n)
	}
	return uint8(n), nil
}

// parseLock accepts seconds or a duration like 720h.
func parseLock(s string) (uint64, error) {
	if n, err := utils.ParseUint64(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid lock duration %q", s)
	}
	if d < time.Second {
		return 0, fmt.Errorf("lock duration %q below one second", s)
	}
	return uint64(d / time.Second), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
