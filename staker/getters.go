// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/staker/pool"
	"github.com/farmvault/farm/staker/position"
	"github.com/farmvault/farm/staker/registry"
	"github.com/farmvault/farm/staker/reward"
	"github.com/farmvault/farm/token"
)

func (s *Staker) Registry() (*registry.Registry, error) {
	return s.registryService.Get()
}

// Pool returns the pool at index and its address.
func (s *Staker) Pool(index uint8) (farm.Address, *pool.Pool, error) {
	_, addr, p, err := s.pool(index)
	return addr, p, err
}

// Pools returns every pool of the registry token ordered by index.
func (s *Staker) Pools() ([]*pool.Pool, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return nil, err
	}
	return s.poolService.List(reg.TokenMint)
}

// PoolAddress returns the derived address of the pool at index, whether or not it exists.
func (s *Staker) PoolAddress(index uint8) (farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return farm.Address{}, err
	}
	addr, _ := s.poolService.Address(reg.TokenMint, index)
	return addr, nil
}

// VaultAddress returns the derived vault of the pool at index, whether or not it exists.
func (s *Staker) VaultAddress(index uint8) (farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return farm.Address{}, err
	}
	addr, _ := s.poolService.Address(reg.TokenMint, index)
	return s.poolService.VaultAddress(reg.TokenMint, addr), nil
}

// Unreserved returns the reward budget of the pool that may still be promised or withdrawn.
func (s *Staker) Unreserved(index uint8) (uint64, error) {
	_, _, p, err := s.pool(index)
	if err != nil {
		return 0, err
	}
	return p.Unreserved(), nil
}

// Reward quotes the reward a stake of principal would reserve now.
func (s *Staker) Reward(index uint8, principal uint64) (uint64, error) {
	_, _, p, err := s.pool(index)
	if err != nil {
		return 0, err
	}
	return reward.Amount(p.RewardParams(), principal)
}

func (s *Staker) Position(id farm.Address) (*position.Position, error) {
	return s.positionService.Get(id)
}

// PositionID returns the id of the seq-th position of owner in the pool at index.
func (s *Staker) PositionID(index uint8, owner farm.Address, seq uint64) (farm.Address, error) {
	addr, err := s.PoolAddress(index)
	if err != nil {
		return farm.Address{}, err
	}
	return s.positionService.ID(addr, owner, seq), nil
}

// ClaimableAt returns the timestamp from which the position can be claimed.
func (s *Staker) ClaimableAt(id farm.Address) (uint64, error) {
	pos, err := s.positionService.Get(id)
	if err != nil {
		return 0, err
	}
	p, err := s.poolService.Get(pos.Pool)
	if err != nil {
		return 0, err
	}
	return pos.UnlockTime(p.LockDuration), nil
}

// Wallet returns the token account of owner for the registry token.
func (s *Staker) Wallet(owner farm.Address) (*token.Account, farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return nil, farm.Address{}, err
	}
	addr := s.gateway.WalletAddress(owner, reg.TokenMint)
	acc, err := s.gateway.Account(addr)
	return acc, addr, err
}

// TokenAccount returns the token account at addr.
func (s *Staker) TokenAccount(addr farm.Address) (*token.Account, error) {
	return s.gateway.Account(addr)
}

func (s *Staker) pool(index uint8) (*registry.Registry, farm.Address, *pool.Pool, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return nil, farm.Address{}, nil, err
	}
	addr, _ := s.poolService.Address(reg.TokenMint, index)
	p, err := s.poolService.Get(addr)
	if err != nil {
		return nil, farm.Address{}, nil, err
	}
	return reg, addr, p, nil
}

func (s *Staker) adminPool(caller farm.Address, index uint8) (*registry.Registry, farm.Address, *pool.Pool, error) {
	reg, addr, p, err := s.pool(index)
	if err != nil {
		return nil, farm.Address{}, nil, err
	}
	if !reg.IsAdmin(caller) || p.Admin != caller {
		return nil, farm.Address{}, nil, reverts.ErrUnauthorized
	}
	return reg, addr, p, nil
}

func (s *Staker) ownedPosition(caller, id farm.Address) (*position.Position, *registry.Registry, *pool.Pool, error) {
	pos, err := s.positionService.Get(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if pos.Owner != caller {
		return nil, nil, nil, reverts.ErrUnauthorized
	}
	reg, err := s.registryService.Get()
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := s.poolService.Get(pos.Pool)
	if err != nil {
		return nil, nil, nil, err
	}
	return pos, reg, p, nil
}

// PoolAt returns the pool stored at addr.
func (s *Staker) PoolAt(addr farm.Address) (*pool.Pool, error) {
	return s.poolService.Get(addr)
}
