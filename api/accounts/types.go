// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/farmvault/farm/farm"
)

// Account is the token wallet of an owner.
type Account struct {
	Owner   farm.Address `json:"owner"`
	Wallet  farm.Address `json:"wallet"`
	Mint    farm.Address `json:"mint"`
	Balance uint64       `json:"balance"`
}

// Mint is the body of a mint request.
type Mint struct {
	Caller farm.Address         `json:"caller"`
	Amount *math.HexOrDecimal64 `json:"amount"`
}
