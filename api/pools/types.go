// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/staker/pool"
)

type Pool struct {
	Index                uint8        `json:"index"`
	Address              farm.Address `json:"address"`
	Admin                farm.Address `json:"admin"`
	Vault                farm.Address `json:"vault"`
	APY                  uint8        `json:"apy"`
	MinStakeAmount       uint64       `json:"minStakeAmount"`
	LockDuration         uint64       `json:"lockDuration"`
	AmountStaked         uint64       `json:"amountStaked"`
	AmountReward         uint64       `json:"amountReward"`
	AmountRewardReserved uint64       `json:"amountRewardReserved"`
	Unreserved           uint64       `json:"unreserved"`
	CountStakes          uint64       `json:"countStakes"`
	IncStakes            uint64       `json:"incStakes"`
}

func ConvertPool(addr farm.Address, p *pool.Pool) *Pool {
	return &Pool{
		Index:                p.Index,
		Address:              addr,
		Admin:                p.Admin,
		Vault:                p.Vault,
		APY:                  p.APY,
		MinStakeAmount:       p.MinStakeAmount,
		LockDuration:         p.LockDuration,
		AmountStaked:         p.AmountStaked,
		AmountReward:         p.AmountReward,
		AmountRewardReserved: p.AmountRewardReserved,
		Unreserved:           p.Unreserved(),
		CountStakes:          p.CountStakes,
		IncStakes:            p.IncStakes,
	}
}

// CreatePool is the body of a pool creation. Numbers may be decimal or 0x prefixed hex.
type CreatePool struct {
	Caller       farm.Address         `json:"caller"`
	Mint         farm.Address         `json:"mint"`
	Index        *math.HexOrDecimal64 `json:"index"`
	APY          *math.HexOrDecimal64 `json:"apy"`
	MinStake     *math.HexOrDecimal64 `json:"minStake"`
	LockDuration *math.HexOrDecimal64 `json:"lockDuration"`
}

// Amount is the body of fund, withdraw and stake requests.
type Amount struct {
	Caller farm.Address         `json:"caller"`
	Amount *math.HexOrDecimal64 `json:"amount"`
}

type Quote struct {
	Principal uint64 `json:"principal"`
	Reward    uint64 `json:"reward"`
}

type StakeResult struct {
	ID farm.Address `json:"id"`
}
