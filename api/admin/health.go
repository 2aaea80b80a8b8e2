// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/reverts"
)

// Status reports whether the ledger is deployed and readable.
type Status struct {
	Healthy     bool          `json:"healthy"`
	Deployed    bool          `json:"deployed"`
	Registry    *farm.Address `json:"registry"`
	PoolCount   int           `json:"poolCount"`
	CurrentTime uint64        `json:"currentTime"`
}

type health struct {
	ledger *ledger.Ledger
}

func newHealth(l *ledger.Ledger) *health {
	return &health{ledger: l}
}

func (h *health) status(r *http.Request) (*Status, error) {
	status := &Status{CurrentTime: h.ledger.Clock().Now()}

	_, err := h.ledger.Registry(r.Context())
	if errors.Is(err, reverts.ErrRegistryNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, err
	}
	pools, err := h.ledger.Pools(r.Context())
	if err != nil {
		return nil, err
	}
	addr := h.ledger.RegistryAddress()
	status.Healthy = true
	status.Deployed = true
	status.Registry = &addr
	status.PoolCount = len(pools)
	return status, nil
}

func (h *health) handleGet(w http.ResponseWriter, r *http.Request) error {
	status, err := h.status(r)
	if err != nil {
		return err
	}
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *health) Mount(root *mux.Router, path string) {
	root.Path(path).
		Methods(http.MethodGet).
		Name("GET "+path).
		HandlerFunc(utils.WrapHandlerFunc(h.handleGet))
}
