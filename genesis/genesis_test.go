// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/lvldb"
	"github.com/farmvault/farm/reverts"
)

const sample = `
admin: 0x0000000000000000000000000000000061646d69
tokenMint: 0x00000000000000000000000000000000006d696e
accounts:
  - owner: 0x0000000000000000000000000000000061646d69
    balance: 50000
  - owner: 0x000000000000000000000000000000616c696365
    balance: 1000
pools:
  - index: 0
    apy: 10
    minStake: 100
    lockDuration: 720h
    fund: 10000
  - index: 3
    apy: 255
    minStake: 1
    lockDuration: 86400
`

func newLedger(t *testing.T) *ledger.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return ledger.New(db, clock.NewManual(100))
}

func TestParse(t *testing.T) {
	gen, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, farm.MustParseAddress("0x0000000000000000000000000000000061646d69"), gen.Admin)
	require.Len(t, gen.Accounts, 2)
	assert.Equal(t, uint64(1000), gen.Accounts[1].Balance)
	require.Len(t, gen.Pools, 2)
	assert.Equal(t, Duration(30*farm.SecondsPerDay), gen.Pools[0].LockDuration)
	assert.Equal(t, Duration(farm.SecondsPerDay), gen.Pools[1].LockDuration)
	assert.Equal(t, uint8(255), gen.Pools[1].APY)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no admin", "tokenMint: 0x00000000000000000000000000000000006d696e"},
		{"bad address", "admin: 0x12\ntokenMint: 0x00000000000000000000000000000000006d696e"},
		{"apy overflow", sample + "  - index: 4\n    apy: 256\n    lockDuration: 1\n"},
		{"duplicate pool", sample + "  - index: 0\n    apy: 1\n    lockDuration: 1\n"},
		{"zero lock", sample + "  - index: 5\n    apy: 1\n"},
		{"bad duration", sample + "  - index: 6\n    apy: 1\n    lockDuration: soon\n"},
		{"sub second duration", sample + "  - index: 7\n    apy: 1\n    lockDuration: 10ms\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	gen, err := Load(path)
	require.NoError(t, err)

	l := newLedger(t)
	ctx := context.Background()
	require.NoError(t, gen.Apply(ctx, l))

	reg, err := l.Registry(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen.Admin, reg.Admin)
	assert.Equal(t, uint64(100), reg.StartTime)

	acc, _, err := l.Wallet(ctx, gen.Admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(40_000), acc.Amount)

	_, p, err := l.Pool(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), p.AmountReward)
	assert.Equal(t, uint64(30*farm.SecondsPerDay), p.LockDuration)

	_, p, err = l.Pool(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.AmountReward)

	assert.ErrorIs(t, gen.Apply(ctx, l), reverts.ErrRegistryExists)
}

func TestApplyIsAtomic(t *testing.T) {
	gen, err := Parse([]byte(sample))
	require.NoError(t, err)
	gen.Pools[0].Fund = 1_000_000 // more than the admin holds

	l := newLedger(t)
	ctx := context.Background()
	assert.ErrorIs(t, gen.Apply(ctx, l), reverts.ErrInsufficientFunds)

	_, err = l.Registry(ctx)
	assert.ErrorIs(t, err, reverts.ErrRegistryNotFound)
}

func TestDev(t *testing.T) {
	admin := farm.BytesToAddress([]byte("dev"))
	gen := Dev(admin)
	require.NoError(t, gen.Validate())

	l := newLedger(t)
	require.NoError(t, gen.Apply(context.Background(), l))
	pools, err := l.Pools(context.Background())
	require.NoError(t, err)
	assert.Len(t, pools, 2)
}
