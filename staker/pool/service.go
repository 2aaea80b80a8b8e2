// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/state"
	"github.com/farmvault/farm/storage"
)

var slotPools = storage.Slot("pools")

// Service stores pools by their derived address.
type Service struct {
	pools    *storage.Mapping[farm.Address, *Pool]
	resolver *derive.Resolver
}

func New(st *state.State, resolver *derive.Resolver) *Service {
	return &Service{
		pools:    storage.NewMapping[farm.Address, *Pool](st, slotPools),
		resolver: resolver,
	}
}

// Seeds returns the seeds of the pool address for mint and index.
func Seeds(mint farm.Address, index uint8) [][]byte {
	return [][]byte{mint.Bytes(), {index}}
}

// Address returns the pool address for mint and index with its derive nonce.
func (s *Service) Address(mint farm.Address, index uint8) (farm.Address, uint8) {
	return s.resolver.Derive(Seeds(mint, index)...)
}

// VaultAddress returns the token account escrowing the funds of the pool.
func (s *Service) VaultAddress(mint, pool farm.Address) farm.Address {
	addr, _ := s.resolver.Derive(mint.Bytes(), pool.Bytes())
	return addr
}

func (s *Service) Get(addr farm.Address) (*Pool, error) {
	p, err := s.pools.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if p == nil {
		return nil, reverts.ErrPoolNotFound
	}
	return p, nil
}

// Add stores a new pool. The address must not be in use.
func (s *Service) Add(addr farm.Address, p *Pool) error {
	exists, err := s.pools.Exists(addr)
	if err != nil {
		return errors.Wrap(err, "failed to get pool")
	}
	if exists {
		return reverts.ErrDuplicatePool
	}
	if err := s.pools.Insert(addr, p); err != nil {
		return errors.Wrap(err, "failed to add pool")
	}
	return nil
}

func (s *Service) Update(addr farm.Address, p *Pool) error {
	if err := s.pools.Update(addr, p); err != nil {
		return errors.Wrap(err, "failed to update pool")
	}
	return nil
}

// List returns the existing pools of mint ordered by index.
func (s *Service) List(mint farm.Address) ([]*Pool, error) {
	var pools []*Pool
	for i := 0; i <= farm.MaxPoolIndex; i++ {
		addr, _ := s.Address(mint, uint8(i))
		p, err := s.pools.Get(addr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get pool")
		}
		if p != nil {
			pools = append(pools, p)
		}
	}
	return pools, nil
}
