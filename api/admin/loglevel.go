// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/log"
)

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type logLevel struct {
	level *slog.LevelVar
}

func newLogLevel(level *slog.LevelVar) *logLevel {
	return &logLevel{level: level}
}

func (l *logLevel) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, logLevelResponse{CurrentLevel: l.level.Level().String()})
}

func (l *logLevel) handlePost(w http.ResponseWriter, r *http.Request) error {
	var req logLevelRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	switch req.Level {
	case "debug":
		l.level.Set(log.LevelDebug)
	case "info":
		l.level.Set(log.LevelInfo)
	case "warn":
		l.level.Set(log.LevelWarn)
	case "error":
		l.level.Set(log.LevelError)
	case "trace":
		l.level.Set(log.LevelTrace)
	case "crit":
		l.level.Set(log.LevelCrit)
	default:
		return utils.BadRequest(errors.New("invalid verbosity level"))
	}

	log.Info("log level updated", "pkg", "admin", "level", req.Level)
	return utils.WriteJSON(w, logLevelResponse{CurrentLevel: l.level.Level().String()})
}

func (l *logLevel) Mount(root *mux.Router, path string) {
	root.Path(path).
		Methods(http.MethodGet).
		Name("GET "+path).
		HandlerFunc(utils.WrapHandlerFunc(l.handleGet))
	root.Path(path).
		Methods(http.MethodPost).
		Name("POST "+path).
		HandlerFunc(utils.WrapHandlerFunc(l.handlePost))
}
