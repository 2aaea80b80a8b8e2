// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/staker/position"
)

type Position struct {
	ID           farm.Address `json:"id"`
	Pool         farm.Address `json:"pool"`
	Owner        farm.Address `json:"owner"`
	Amount       uint64       `json:"amount"`
	RewardAmount uint64       `json:"rewardAmount"`
	StakedTime   uint64       `json:"stakedTime"`
	StakeIndex   uint64       `json:"stakeIndex"`
	ClaimableAt  uint64       `json:"claimableAt"`
	Matured      bool         `json:"matured"`
}

// ConvertPosition renders a position given the lock duration of its pool and the current time.
func ConvertPosition(id farm.Address, p *position.Position, lockDuration, now uint64) *Position {
	return &Position{
		ID:           id,
		Pool:         p.Pool,
		Owner:        p.Owner,
		Amount:       p.Amount,
		RewardAmount: p.RewardAmount,
		StakedTime:   p.StakedTime,
		StakeIndex:   p.StakeIndex,
		ClaimableAt:  p.UnlockTime(lockDuration),
		Matured:      p.Matured(lockDuration, now),
	}
}

// Settle is the body of cancel and claim requests.
type Settle struct {
	Caller farm.Address `json:"caller"`
}
