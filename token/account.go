// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/farmvault/farm/farm"
)

// Account is a balance of a single mint held by an owner.
// The owner is the only authority able to move funds out of it. When Derived is set the owner
// is a derived address and only a ProgramAuthority is accepted.
type Account struct {
	Mint    farm.Address
	Owner   farm.Address
	Amount  uint64
	Derived bool
}
