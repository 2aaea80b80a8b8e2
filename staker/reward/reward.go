// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes the fixed reward of a stake at entry.
//
//	scaledDays = precision / secondsPerDay * lockDuration
//	percentage = scaledDays * apy / (365.25 * 100)
//	reward     = principal * percentage / precision
//
// All divisions floor. Intermediates are 256-bit and overflow checked.
package reward

import (
	"github.com/holiman/uint256"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/reverts"
)

// Params are the pool terms the reward depends on.
type Params struct {
	APY          uint8
	LockDuration uint64
}

var (
	precision   = uint256.NewInt(farm.RewardPrecision)
	yearPercent = uint256.NewInt(farm.DaysPerYearPercent)
	// precision per second of lock, floored once
	perSecond = uint256.NewInt(farm.RewardPrecision / farm.SecondsPerDay)
)

// Amount returns the reward reserved for principal under params.
func Amount(params Params, principal uint64) (uint64, error) {
	if params.LockDuration == 0 {
		return 0, reverts.ErrInvalidParams
	}

	scaled, overflow := new(uint256.Int).MulOverflow(perSecond, uint256.NewInt(params.LockDuration))
	if overflow {
		return 0, reverts.ErrOverflow
	}

	pct, overflow := new(uint256.Int).MulOverflow(scaled, uint256.NewInt(uint64(params.APY)))
	if overflow {
		return 0, reverts.ErrOverflow
	}
	pct.Div(pct, yearPercent)

	amount, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(principal), pct)
	if overflow {
		return 0, reverts.ErrOverflow
	}
	amount.Div(amount, precision)

	if !amount.IsUint64() {
		return 0, reverts.ErrOverflow
	}
	return amount.Uint64(), nil
}
