// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"golang.org/x/sync/errgroup"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/lvldb"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/staker"
)

const day = farm.SecondsPerDay

var (
	admin = farm.BytesToAddress([]byte("admin"))
	mint  = farm.BytesToAddress([]byte("mint"))
	alice = farm.BytesToAddress([]byte("alice"))
	bob   = farm.BytesToAddress([]byte("bob"))
)

func newLedger(t *testing.T) (*Ledger, *clock.Manual, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewManual(1_000_000)
	l := New(db, clk)
	ctx := context.Background()

	require.NoError(t, l.CreateState(ctx, admin, mint))
	_, err = l.CreatePool(ctx, admin, mint, 0, 10, 100, 30*day)
	require.NoError(t, err)
	for _, acc := range []farm.Address{admin, alice, bob} {
		_, err := l.Mint(ctx, admin, acc, 100_000)
		require.NoError(t, err)
	}
	require.NoError(t, l.Fund(ctx, admin, 0, 10_000))
	return l, clk, db
}

func balance(t *testing.T, l *Ledger, owner farm.Address) uint64 {
	acc, _, err := l.Wallet(context.Background(), owner)
	require.NoError(t, err)
	return acc.Amount
}

func TestFailedOperationLeavesNoTrace(t *testing.T) {
	l, _, _ := newLedger(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := l.Exec(ctx, "test", func(s *staker.Staker) error {
		if _, err := s.Mint(admin, alice, 500); err != nil {
			return err
		}
		if _, err := s.Stake(alice, 0, 1000); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, uint64(100_000), balance(t, l, alice))
	_, p, err := l.Pool(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.IncStakes)
	assert.Equal(t, uint64(0), p.AmountRewardReserved)
}

func TestRevertedOperation(t *testing.T) {
	l, _, _ := newLedger(t)
	ctx := context.Background()

	_, err := l.Stake(ctx, alice, 0, 50)
	assert.ErrorIs(t, err, reverts.ErrBelowMinimum)
	assert.ErrorIs(t, l.Withdraw(ctx, admin, 0, 10_001), reverts.ErrReservedFundsProtected)
	assert.ErrorIs(t, l.Fund(ctx, alice, 0, 1), reverts.ErrUnauthorized)

	unreserved, err := l.Unreserved(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), unreserved)
}

func TestLifecycle(t *testing.T) {
	l, clk, _ := newLedger(t)
	ctx := context.Background()

	quote, err := l.Reward(ctx, 0, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(82), quote)

	first, err := l.Stake(ctx, alice, 0, 10_000)
	require.NoError(t, err)
	second, err := l.Stake(ctx, alice, 0, 20_000)
	require.NoError(t, err)
	other, err := l.Stake(ctx, bob, 0, 5_000)
	require.NoError(t, err)

	expected, err := l.PositionID(ctx, 0, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, expected, second)

	entries, err := l.PositionsOf(ctx, alice)
	require.NoError(t, err)
	ids := make([]farm.Address, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
		assert.Equal(t, alice, e.Owner)
	}
	assert.ElementsMatch(t, []farm.Address{first, second}, ids)

	require.NoError(t, l.Cancel(ctx, alice, first))
	assert.ErrorIs(t, l.Claim(ctx, alice, second), reverts.ErrStillLocked)

	at, err := l.ClaimableAt(ctx, second)
	require.NoError(t, err)
	clk.Set(at)
	require.NoError(t, l.Claim(ctx, alice, second))
	assert.NoError(t, l.Claim(ctx, bob, other))

	entries, err = l.PositionsOf(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = l.Position(ctx, first)
	assert.ErrorIs(t, err, reverts.ErrPositionNotFound)

	_, p, err := l.Pool(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.AmountStaked)
	assert.Equal(t, uint64(0), p.AmountRewardReserved)
	assert.Equal(t, uint64(3), p.IncStakes)

	vault, err := l.TokenAccount(ctx, p.Vault)
	require.NoError(t, err)
	assert.Equal(t, p.AmountReward, vault.Amount)
}

func TestContextDone(t *testing.T) {
	l, _, _ := newLedger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Stake(ctx, alice, 0, 1000)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = l.Registry(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentStakes(t *testing.T) {
	l, _, _ := newLedger(t)
	ctx := context.Background()

	var g errgroup.Group
	for range 20 {
		for _, owner := range []farm.Address{alice, bob} {
			g.Go(func() error {
				_, err := l.Stake(ctx, owner, 0, 1000)
				return err
			})
		}
	}
	require.NoError(t, g.Wait())

	_, p, err := l.Pool(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), p.IncStakes)
	assert.Equal(t, uint64(40), p.CountStakes)
	assert.Equal(t, uint64(40_000), p.AmountStaked)

	aliceEntries, err := l.PositionsOf(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceEntries, 20)
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	db, err := lvldb.New(dir, lvldb.Options{})
	require.NoError(t, err)

	ctx := context.Background()
	l := New(db, clock.NewManual(10))
	require.NoError(t, l.CreateState(ctx, admin, mint))
	require.NoError(t, db.Close())

	db, err = lvldb.New(dir, lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()

	reg, err := New(db, clock.NewManual(20)).Registry(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin, reg.Admin)
	assert.Equal(t, uint64(10), reg.StartTime)
}

// liveIterFailStore only allows iteration through snapshots.
type liveIterFailStore struct {
	kv.Store
}

func (liveIterFailStore) Iterate(kv.Range) kv.Iterator {
	return iterator.NewEmptyIterator(errors.New("live iteration"))
}

func TestPositionsOfReadsSnapshot(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := New(liveIterFailStore{db}, clock.NewManual(1_000_000))
	ctx := context.Background()
	require.NoError(t, l.CreateState(ctx, admin, mint))
	_, err = l.CreatePool(ctx, admin, mint, 0, 10, 100, 30*day)
	require.NoError(t, err)
	_, err = l.Mint(ctx, admin, alice, 1_000)
	require.NoError(t, err)
	_, err = l.Mint(ctx, admin, admin, 1_000)
	require.NoError(t, err)
	require.NoError(t, l.Fund(ctx, admin, 0, 1_000))
	id, err := l.Stake(ctx, alice, 0, 500)
	require.NoError(t, err)

	entries, err := l.PositionsOf(ctx, alice)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, uint64(500), entries[0].Amount)
}
