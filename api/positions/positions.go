// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
)

type Positions struct {
	ledger   *ledger.Ledger
	writable bool
}

func New(l *ledger.Ledger, writable bool) *Positions {
	return &Positions{ledger: l, writable: writable}
}

// Load returns the rendered position with the given id.
func Load(ctx context.Context, l *ledger.Ledger, id farm.Address) (*Position, error) {
	pos, err := l.Position(ctx, id)
	if err != nil {
		return nil, err
	}
	claimableAt, err := l.ClaimableAt(ctx, id)
	if err != nil {
		return nil, err
	}
	lock := claimableAt - pos.StakedTime
	return ConvertPosition(id, pos, lock, l.Clock().Now()), nil
}

func parseID(req *http.Request) (farm.Address, error) {
	id, err := farm.ParseAddress(mux.Vars(req)["id"])
	if err != nil {
		return farm.Address{}, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

func (p *Positions) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	pos, err := Load(req.Context(), p.ledger, id)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, pos)
}

func (p *Positions) settle(req *http.Request, fn func(ctx context.Context, caller, id farm.Address) error) (farm.Address, error) {
	id, err := parseID(req)
	if err != nil {
		return farm.Address{}, err
	}
	var body Settle
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return farm.Address{}, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := fn(req.Context(), body.Caller, id); err != nil {
		return farm.Address{}, utils.LedgerError(err)
	}
	return id, nil
}

func (p *Positions) handleCancel(w http.ResponseWriter, req *http.Request) error {
	id, err := p.settle(req, p.ledger.Cancel)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"id": id, "status": "cancelled"})
}

func (p *Positions) handleClaim(w http.ResponseWriter, req *http.Request) error {
	id, err := p.settle(req, p.ledger.Claim)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"id": id, "status": "claimed"})
}

func (p *Positions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
	if p.writable {
		sub.Path("/{id}/cancel").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleCancel))
		sub.Path("/{id}/claim").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
	}
}
