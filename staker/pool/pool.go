// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/staker/reward"
)

// Pool holds the terms of a staking product and its escrow counters.
//
// AmountRewardReserved never exceeds AmountReward. AmountStaked and AmountRewardReserved equal the
// sums of principal and reward over the active positions of the pool.
type Pool struct {
	Admin                farm.Address
	Vault                farm.Address
	AmountStaked         uint64
	AmountReward         uint64
	AmountRewardReserved uint64
	MinStakeAmount       uint64
	LockDuration         uint64
	APY                  uint8
	CountStakes          uint64
	IncStakes            uint64
	Index                uint8
	Nonce                uint8
}

func (p *Pool) RewardParams() reward.Params {
	return reward.Params{APY: p.APY, LockDuration: p.LockDuration}
}

// Unreserved returns the part of the reward budget not promised to any position.
func (p *Pool) Unreserved() uint64 {
	return p.AmountReward - p.AmountRewardReserved
}

// Fund adds amount to the reward budget.
func (p *Pool) Fund(amount uint64) error {
	if p.AmountReward+amount < p.AmountReward {
		return reverts.ErrOverflow
	}
	p.AmountReward += amount
	return nil
}

// Withdraw removes amount from the unreserved part of the budget.
func (p *Pool) Withdraw(amount uint64) error {
	if amount > p.Unreserved() {
		return reverts.ErrReservedFundsProtected
	}
	p.AmountReward -= amount
	return nil
}

// Reserve books a new position of principal earning rew and returns its sequence number.
func (p *Pool) Reserve(principal, rew uint64) (uint64, error) {
	if principal < p.MinStakeAmount {
		return 0, reverts.ErrBelowMinimum
	}
	reserved := p.AmountRewardReserved + rew
	if reserved < p.AmountRewardReserved {
		return 0, reverts.ErrOverflow
	}
	if reserved > p.AmountReward {
		return 0, reverts.ErrInsufficientRewardBudget
	}
	staked := p.AmountStaked + principal
	if staked < p.AmountStaked || p.IncStakes+1 == 0 || p.CountStakes+1 == 0 {
		return 0, reverts.ErrOverflow
	}

	seq := p.IncStakes
	p.AmountRewardReserved = reserved
	p.AmountStaked = staked
	p.IncStakes++
	p.CountStakes++
	return seq, nil
}

// Release frees a position without paying its reward. The budget is untouched.
func (p *Pool) Release(principal, rew uint64) error {
	if p.AmountStaked < principal || p.AmountRewardReserved < rew || p.CountStakes == 0 {
		return reverts.ErrOverflow
	}
	p.AmountStaked -= principal
	p.AmountRewardReserved -= rew
	p.CountStakes--
	return nil
}

// Settle frees a position and consumes its reward from the budget.
func (p *Pool) Settle(principal, rew uint64) error {
	if p.AmountReward < rew {
		return reverts.ErrOverflow
	}
	if err := p.Release(principal, rew); err != nil {
		return err
	}
	p.AmountReward -= rew
	return nil
}
