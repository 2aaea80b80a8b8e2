// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
)

// Authority proves control over a token account owner.
type Authority interface {
	// Address returns the address the authority acts for.
	Address() (farm.Address, error)
}

// Signer is an externally held key. Its signature is verified before the ledger is reached.
type Signer farm.Address

func (s Signer) Address() (farm.Address, error) {
	return farm.Address(s), nil
}

// ProgramAuthority signs for a derived address by presenting its seeds and nonce.
type ProgramAuthority struct {
	Seeds [][]byte
	Nonce uint8
}

func (p ProgramAuthority) Address() (farm.Address, error) {
	return derive.CreateAddress(p.Seeds, p.Nonce)
}
