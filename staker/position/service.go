// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/state"
	"github.com/farmvault/farm/storage"
)

var slotPositions = storage.Slot("stake-infos")

// OwnerIndex holds owner(20) ++ position(20) keys of active positions, valued by the pool address.
const OwnerIndex = kv.Bucket("o/")

const seed = "stake-info"

type Service struct {
	state     *state.State
	positions *storage.Mapping[farm.Address, *Position]
	resolver  *derive.Resolver
}

func New(st *state.State, resolver *derive.Resolver) *Service {
	return &Service{
		state:     st,
		positions: storage.NewMapping[farm.Address, *Position](st, slotPositions),
		resolver:  resolver,
	}
}

// ID returns the address of the seq-th position of owner in pool.
func (s *Service) ID(pool, owner farm.Address, seq uint64) farm.Address {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	addr, _ := s.resolver.Derive([]byte(seed), pool.Bytes(), owner.Bytes(), b[:])
	return addr
}

func (s *Service) Get(id farm.Address) (*Position, error) {
	p, err := s.positions.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if p == nil {
		return nil, reverts.ErrPositionNotFound
	}
	return p, nil
}

// Add stores a new active position.
func (s *Service) Add(id farm.Address, p *Position) error {
	if err := s.positions.Insert(id, p); err != nil {
		return errors.Wrap(err, "failed to add position")
	}
	s.state.Set(indexKey(p.Owner, id), p.Pool.Bytes())
	return nil
}

// Remove deletes a settled position.
func (s *Service) Remove(id farm.Address, p *Position) {
	s.positions.Delete(id)
	s.state.Delete(indexKey(p.Owner, id))
}

func indexKey(owner, id farm.Address) []byte {
	return OwnerIndex.Key(owner.Bytes(), id.Bytes())
}

// OwnerRange returns the index range holding the positions of owner.
func OwnerRange(owner farm.Address) kv.Range {
	return kv.PrefixRange(owner.Bytes())
}

// ParseIndexEntry splits an index entry read through the OwnerIndex bucket.
func ParseIndexEntry(key, value []byte) (id, pool farm.Address, ok bool) {
	if len(key) != 2*len(id) || len(value) != len(pool) {
		return id, pool, false
	}
	return farm.BytesToAddress(key[len(id):]), farm.BytesToAddress(value), true
}
