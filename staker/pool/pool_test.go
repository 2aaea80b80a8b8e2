// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/reverts"
)

func TestFundWithdraw(t *testing.T) {
	p := &Pool{}
	require.NoError(t, p.Fund(100))
	assert.ErrorIs(t, p.Fund(math.MaxUint64), reverts.ErrOverflow)
	assert.Equal(t, uint64(100), p.AmountReward)

	p.AmountRewardReserved = 40
	assert.Equal(t, uint64(60), p.Unreserved())
	assert.ErrorIs(t, p.Withdraw(61), reverts.ErrReservedFundsProtected)
	require.NoError(t, p.Withdraw(60))
	assert.Equal(t, uint64(40), p.AmountReward)
	assert.Equal(t, uint64(0), p.Unreserved())
}

func TestReserve(t *testing.T) {
	p := &Pool{MinStakeAmount: 100, AmountReward: 10}

	_, err := p.Reserve(99, 1)
	assert.ErrorIs(t, err, reverts.ErrBelowMinimum)

	seq, err := p.Reserve(100, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	_, err = p.Reserve(100, 5)
	assert.ErrorIs(t, err, reverts.ErrInsufficientRewardBudget)
	assert.Equal(t, &Pool{MinStakeAmount: 100, AmountReward: 10, AmountRewardReserved: 6, AmountStaked: 100, IncStakes: 1, CountStakes: 1}, p,
		"failed reserve leaves the pool unchanged")

	seq, err = p.Reserve(200, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, uint64(10), p.AmountRewardReserved)

	p.AmountStaked = math.MaxUint64
	_, err = p.Reserve(100, 0)
	assert.ErrorIs(t, err, reverts.ErrOverflow)
}

func TestReleaseAndSettle(t *testing.T) {
	p := &Pool{AmountReward: 10}
	_, err := p.Reserve(100, 6)
	require.NoError(t, err)
	_, err = p.Reserve(50, 3)
	require.NoError(t, err)

	require.NoError(t, p.Release(100, 6))
	assert.Equal(t, uint64(10), p.AmountReward, "release keeps the budget")
	assert.Equal(t, uint64(3), p.AmountRewardReserved)
	assert.Equal(t, uint64(50), p.AmountStaked)
	assert.Equal(t, uint64(1), p.CountStakes)
	assert.Equal(t, uint64(2), p.IncStakes)

	require.NoError(t, p.Settle(50, 3))
	assert.Equal(t, uint64(7), p.AmountReward)
	assert.Equal(t, uint64(0), p.AmountRewardReserved)
	assert.Equal(t, uint64(0), p.AmountStaked)
	assert.Equal(t, uint64(0), p.CountStakes)

	assert.ErrorIs(t, p.Release(1, 0), reverts.ErrOverflow)
	assert.ErrorIs(t, p.Settle(0, 8), reverts.ErrOverflow)
}
