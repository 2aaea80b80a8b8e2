// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/ledger"
)

type API struct {
	ledger   *ledger.Ledger
	writable bool
}

func New(l *ledger.Ledger, writable bool) *API {
	return &API{ledger: l, writable: writable}
}

func (r *API) handleGetRegistry(w http.ResponseWriter, req *http.Request) error {
	reg, err := r.ledger.Registry(req.Context())
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertRegistry(r.ledger.RegistryAddress(), reg))
}

func (r *API) handleCreateState(w http.ResponseWriter, req *http.Request) error {
	var body CreateState
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := r.ledger.CreateState(req.Context(), body.Caller, body.Mint); err != nil {
		return utils.LedgerError(err)
	}
	return r.handleGetRegistry(w, req)
}

func (r *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(r.handleGetRegistry))
	if r.writable {
		sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(r.handleCreateState))
	}
}
