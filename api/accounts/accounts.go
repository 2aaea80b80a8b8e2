// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/positions"
	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
)

type Accounts struct {
	ledger   *ledger.Ledger
	writable bool
}

func New(l *ledger.Ledger, writable bool) *Accounts {
	return &Accounts{ledger: l, writable: writable}
}

func parseOwner(req *http.Request) (farm.Address, error) {
	owner, err := farm.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return farm.Address{}, utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	return owner, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	acc, addr, err := a.ledger.Wallet(req.Context(), owner)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, &Account{
		Owner:   owner,
		Wallet:  addr,
		Mint:    acc.Mint,
		Balance: acc.Amount,
	})
}

func (a *Accounts) handleGetPositions(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	entries, err := a.ledger.PositionsOf(req.Context(), owner)
	if err != nil {
		return utils.LedgerError(err)
	}
	result := make([]*positions.Position, 0, len(entries))
	for _, e := range entries {
		pos, err := positions.Load(req.Context(), a.ledger, e.ID)
		if err != nil {
			return utils.LedgerError(err)
		}
		result = append(result, pos)
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) handleMint(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	var body Mint
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount is required"))
	}
	if _, err := a.ledger.Mint(req.Context(), body.Caller, owner, uint64(*body.Amount)); err != nil {
		return utils.LedgerError(err)
	}
	return a.handleGetAccount(w, req)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{owner}/positions").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetPositions))
	if a.writable {
		sub.Path("/{owner}/mint").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handleMint))
	}
}
