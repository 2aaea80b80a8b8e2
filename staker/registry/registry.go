// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/pkg/errors"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/state"
	"github.com/farmvault/farm/storage"
)

var slotRegistry = storage.Slot("registry")

// Registry is the deployment wide record naming the admin and the accepted token.
type Registry struct {
	Admin     farm.Address
	TokenMint farm.Address
	StartTime uint64
}

// IsAdmin reports whether addr is the registry admin.
func (r *Registry) IsAdmin(addr farm.Address) bool {
	return r.Admin == addr
}

type Service struct {
	record *storage.Raw[*Registry]
}

func New(st *state.State) *Service {
	return &Service{record: storage.NewRaw[*Registry](st, slotRegistry)}
}

// Create stores the registry. It can only happen once.
func (s *Service) Create(admin, mint farm.Address, now uint64) error {
	current, err := s.record.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get registry")
	}
	if current != nil {
		return reverts.ErrRegistryExists
	}
	if admin.IsZero() || mint.IsZero() {
		return reverts.ErrInvalidParams
	}
	return s.record.Upsert(&Registry{Admin: admin, TokenMint: mint, StartTime: now})
}

func (s *Service) Get() (*Registry, error) {
	r, err := s.record.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get registry")
	}
	if r == nil {
		return nil, reverts.ErrRegistryNotFound
	}
	return r, nil
}
