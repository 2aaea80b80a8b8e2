// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"math"

	"github.com/farmvault/farm/farm"
)

// Position is an active stake. Claimed or cancelled positions are deleted.
type Position struct {
	Pool         farm.Address
	Owner        farm.Address
	Amount       uint64
	RewardAmount uint64
	StakedTime   uint64
	StakeIndex   uint64
}

// UnlockTime returns the first timestamp at which the position can be claimed.
func (p *Position) UnlockTime(lockDuration uint64) uint64 {
	if p.StakedTime+lockDuration < p.StakedTime {
		return math.MaxUint64
	}
	return p.StakedTime + lockDuration
}

// Matured reports whether the lock has elapsed at now.
func (p *Position) Matured(lockDuration, now uint64) bool {
	return p.UnlockTime(lockDuration) <= now
}

// Payout returns principal plus reward.
func (p *Position) Payout() (uint64, bool) {
	total := p.Amount + p.RewardAmount
	return total, total >= p.Amount
}
