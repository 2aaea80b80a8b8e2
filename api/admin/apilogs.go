// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/log"
)

// LogStatus toggles request logging of the public API.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

type apiLogs struct {
	enabled *atomic.Bool
	mu      sync.Mutex
}

func newAPILogs(enabled *atomic.Bool) *apiLogs {
	return &apiLogs{enabled: enabled}
}

func (a *apiLogs) handleGet(w http.ResponseWriter, _ *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return utils.WriteJSON(w, LogStatus{Enabled: a.enabled.Load()})
}

func (a *apiLogs) handlePost(w http.ResponseWriter, r *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var req LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	a.enabled.Store(req.Enabled)

	log.Info("api logs updated", "pkg", "admin", "enabled", req.Enabled)

	return utils.WriteJSON(w, LogStatus{Enabled: a.enabled.Load()})
}

func (a *apiLogs) Mount(root *mux.Router, path string) {
	root.Path(path).
		Methods(http.MethodGet).
		Name("GET "+path).
		HandlerFunc(utils.WrapHandlerFunc(a.handleGet))
	root.Path(path).
		Methods(http.MethodPost).
		Name("POST "+path).
		HandlerFunc(utils.WrapHandlerFunc(a.handlePost))
}
