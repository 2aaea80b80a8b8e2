// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/staker/registry"
)

type Registry struct {
	Address   farm.Address `json:"address"`
	Admin     farm.Address `json:"admin"`
	TokenMint farm.Address `json:"tokenMint"`
	StartTime uint64       `json:"startTime"`
}

func ConvertRegistry(addr farm.Address, r *registry.Registry) *Registry {
	return &Registry{
		Address:   addr,
		Admin:     r.Admin,
		TokenMint: r.TokenMint,
		StartTime: r.StartTime,
	}
}

// CreateState is the body of a registry creation.
type CreateState struct {
	Caller farm.Address `json:"caller"`
	Mint   farm.Address `json:"mint"`
}
