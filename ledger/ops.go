// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/staker"
	"github.com/farmvault/farm/staker/pool"
	"github.com/farmvault/farm/staker/position"
	"github.com/farmvault/farm/staker/registry"
	"github.com/farmvault/farm/token"
)

func (l *Ledger) CreateState(ctx context.Context, caller, mint farm.Address) error {
	return l.Exec(ctx, "create_state", func(s *staker.Staker) error {
		return s.CreateState(caller, mint)
	})
}

func (l *Ledger) CreatePool(ctx context.Context, caller, mint farm.Address, index, apy uint8, minStake, lockDuration uint64) (farm.Address, error) {
	var (
		addr farm.Address
		p    *pool.Pool
	)
	err := l.Exec(ctx, "create_pool", func(s *staker.Staker) (err error) {
		if addr, err = s.CreatePool(caller, mint, index, apy, minStake, lockDuration); err != nil {
			return err
		}
		_, p, err = s.Pool(index)
		return err
	})
	if err != nil {
		return farm.Address{}, err
	}
	l.reportPool(p)
	return addr, nil
}

func (l *Ledger) Fund(ctx context.Context, caller farm.Address, index uint8, amount uint64) error {
	return l.poolOp(ctx, "fund", index, func(s *staker.Staker) error {
		return s.Fund(caller, index, amount)
	})
}

func (l *Ledger) Withdraw(ctx context.Context, caller farm.Address, index uint8, amount uint64) error {
	return l.poolOp(ctx, "withdraw", index, func(s *staker.Staker) error {
		return s.Withdraw(caller, index, amount)
	})
}

// Stake returns the id of the new position.
func (l *Ledger) Stake(ctx context.Context, caller farm.Address, index uint8, principal uint64) (farm.Address, error) {
	var id farm.Address
	err := l.poolOp(ctx, "stake", index, func(s *staker.Staker) (err error) {
		id, err = s.Stake(caller, index, principal)
		return err
	})
	return id, err
}

func (l *Ledger) Cancel(ctx context.Context, caller, id farm.Address) error {
	return l.positionOp(ctx, "cancel", id, func(s *staker.Staker) error {
		return s.Cancel(caller, id)
	})
}

func (l *Ledger) Claim(ctx context.Context, caller, id farm.Address) error {
	return l.positionOp(ctx, "claim", id, func(s *staker.Staker) error {
		return s.Claim(caller, id)
	})
}

// Mint credits amount to the wallet of owner and returns the wallet address.
func (l *Ledger) Mint(ctx context.Context, caller, owner farm.Address, amount uint64) (farm.Address, error) {
	var wallet farm.Address
	err := l.Exec(ctx, "mint", func(s *staker.Staker) (err error) {
		wallet, err = s.Mint(caller, owner, amount)
		return err
	})
	return wallet, err
}

func (l *Ledger) OpenWallet(ctx context.Context, owner farm.Address) (farm.Address, error) {
	var wallet farm.Address
	err := l.Exec(ctx, "open_wallet", func(s *staker.Staker) (err error) {
		wallet, err = s.OpenWallet(owner)
		return err
	})
	return wallet, err
}

func (l *Ledger) poolOp(ctx context.Context, op string, index uint8, fn func(s *staker.Staker) error) error {
	var p *pool.Pool
	err := l.Exec(ctx, op, func(s *staker.Staker) (err error) {
		if err := fn(s); err != nil {
			return err
		}
		_, p, err = s.Pool(index)
		return err
	})
	if err != nil {
		return err
	}
	l.reportPool(p)
	return nil
}

func (l *Ledger) positionOp(ctx context.Context, op string, id farm.Address, fn func(s *staker.Staker) error) error {
	var p *pool.Pool
	err := l.Exec(ctx, op, func(s *staker.Staker) error {
		pos, err := s.Position(id)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		p, err = s.PoolAt(pos.Pool)
		return err
	})
	if err != nil {
		return err
	}
	l.reportPool(p)
	return nil
}

func (l *Ledger) Registry(ctx context.Context) (reg *registry.Registry, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		reg, err = s.Registry()
		return err
	})
	return
}

func (l *Ledger) Pool(ctx context.Context, index uint8) (addr farm.Address, p *pool.Pool, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		addr, p, err = s.Pool(index)
		return err
	})
	return
}

func (l *Ledger) Pools(ctx context.Context) (pools []*pool.Pool, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		pools, err = s.Pools()
		return err
	})
	return
}

func (l *Ledger) Position(ctx context.Context, id farm.Address) (pos *position.Position, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		pos, err = s.Position(id)
		return err
	})
	return
}

func (l *Ledger) PositionID(ctx context.Context, index uint8, owner farm.Address, seq uint64) (id farm.Address, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		id, err = s.PositionID(index, owner, seq)
		return err
	})
	return
}

func (l *Ledger) ClaimableAt(ctx context.Context, id farm.Address) (ts uint64, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		ts, err = s.ClaimableAt(id)
		return err
	})
	return
}

func (l *Ledger) Reward(ctx context.Context, index uint8, principal uint64) (amount uint64, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		amount, err = s.Reward(index, principal)
		return err
	})
	return
}

func (l *Ledger) Unreserved(ctx context.Context, index uint8) (amount uint64, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		amount, err = s.Unreserved(index)
		return err
	})
	return
}

// Wallet returns the token account of owner and its address.
func (l *Ledger) Wallet(ctx context.Context, owner farm.Address) (acc *token.Account, addr farm.Address, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		acc, addr, err = s.Wallet(owner)
		return err
	})
	return
}

func (l *Ledger) TokenAccount(ctx context.Context, addr farm.Address) (acc *token.Account, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		acc, err = s.TokenAccount(addr)
		return err
	})
	return
}

// PositionEntry is an active position and its id.
type PositionEntry struct {
	ID farm.Address
	*position.Position
}

// PositionsOf returns the active positions of owner across all pools.
func (l *Ledger) PositionsOf(ctx context.Context, owner farm.Address) ([]PositionEntry, error) {
	var entries []PositionEntry
	err := l.view(ctx, func(snap kv.Snapshot, s *staker.Staker) error {
		it := position.OwnerIndex.Iterate(snap, position.OwnerRange(owner))
		defer it.Release()

		var ids []farm.Address
		for it.Next() {
			id, _, ok := position.ParseIndexEntry(it.Key(), it.Value())
			if !ok {
				continue
			}
			ids = append(ids, id)
		}
		if err := it.Error(); err != nil {
			return err
		}
		for _, id := range ids {
			pos, err := s.Position(id)
			if err != nil {
				return err
			}
			entries = append(entries, PositionEntry{ID: id, Position: pos})
		}
		return nil
	})
	return entries, err
}

// RegistryAddress returns the derived address identifying the deployment.
func (l *Ledger) RegistryAddress() farm.Address {
	return staker.RegistryAddress(l.resolver)
}

func (l *Ledger) PoolAddress(ctx context.Context, index uint8) (addr farm.Address, err error) {
	err = l.View(ctx, func(s *staker.Staker) error {
		addr, err = s.PoolAddress(index)
		return err
	})
	return
}
