// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/api/utils"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
)

type Pools struct {
	ledger   *ledger.Ledger
	writable bool
}

func New(l *ledger.Ledger, writable bool) *Pools {
	return &Pools{ledger: l, writable: writable}
}

func (p *Pools) handleGetPools(w http.ResponseWriter, req *http.Request) error {
	pools, err := p.ledger.Pools(req.Context())
	if err != nil {
		return utils.LedgerError(err)
	}
	result := make([]*Pool, 0, len(pools))
	for _, pl := range pools {
		addr, err := p.ledger.PoolAddress(req.Context(), pl.Index)
		if err != nil {
			return utils.LedgerError(err)
		}
		result = append(result, ConvertPool(addr, pl))
	}
	return utils.WriteJSON(w, result)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	index, err := utils.ParseUint8(mux.Vars(req)["index"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	addr, pl, err := p.ledger.Pool(req.Context(), index)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertPool(addr, pl))
}

func (p *Pools) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	index, err := utils.ParseUint8(mux.Vars(req)["index"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	principal, err := utils.ParseUint64(req.URL.Query().Get("principal"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "principal"))
	}
	rew, err := p.ledger.Reward(req.Context(), index, principal)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, &Quote{Principal: principal, Reward: rew})
}

func (p *Pools) handleCreatePool(w http.ResponseWriter, req *http.Request) error {
	var body CreatePool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Index == nil || body.APY == nil || body.MinStake == nil || body.LockDuration == nil {
		return utils.BadRequest(errors.New("body: index, apy, minStake and lockDuration are required"))
	}
	if *body.Index > farm.MaxPoolIndex {
		return utils.BadRequest(errors.New("body: index out of range"))
	}
	if *body.APY > farm.MaxAPY {
		return utils.BadRequest(errors.New("body: apy out of range"))
	}
	index := uint8(*body.Index)
	_, err := p.ledger.CreatePool(req.Context(), body.Caller, body.Mint, index, uint8(*body.APY), uint64(*body.MinStake), uint64(*body.LockDuration))
	if err != nil {
		return utils.LedgerError(err)
	}
	addr, pl, err := p.ledger.Pool(req.Context(), index)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertPool(addr, pl))
}

func (p *Pools) parseAmount(req *http.Request) (uint8, *Amount, error) {
	index, err := utils.ParseUint8(mux.Vars(req)["index"])
	if err != nil {
		return 0, nil, utils.BadRequest(errors.WithMessage(err, "index"))
	}
	var body Amount
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return 0, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return 0, nil, utils.BadRequest(errors.New("body: amount is required"))
	}
	return index, &body, nil
}

func (p *Pools) handleFund(w http.ResponseWriter, req *http.Request) error {
	index, body, err := p.parseAmount(req)
	if err != nil {
		return err
	}
	if err := p.ledger.Fund(req.Context(), body.Caller, index, uint64(*body.Amount)); err != nil {
		return utils.LedgerError(err)
	}
	return p.handleGetPool(w, req)
}

func (p *Pools) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	index, body, err := p.parseAmount(req)
	if err != nil {
		return err
	}
	if err := p.ledger.Withdraw(req.Context(), body.Caller, index, uint64(*body.Amount)); err != nil {
		return utils.LedgerError(err)
	}
	return p.handleGetPool(w, req)
}

func (p *Pools) handleStake(w http.ResponseWriter, req *http.Request) error {
	index, body, err := p.parseAmount(req)
	if err != nil {
		return err
	}
	id, err := p.ledger.Stake(req.Context(), body.Caller, index, uint64(*body.Amount))
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, &StakeResult{ID: id})
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/{index}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{index}/reward").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetReward))
	if p.writable {
		sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleCreatePool))
		sub.Path("/{index}/fund").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleFund))
		sub.Path("/{index}/withdraw").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleWithdraw))
		sub.Path("/{index}/stakes").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleStake))
	}
}
