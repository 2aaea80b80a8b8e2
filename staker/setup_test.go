// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/lvldb"
	"github.com/farmvault/farm/state"
)

const (
	day       = farm.SecondsPerDay
	startTime = uint64(1_700_000_000)
)

var (
	admin = farm.BytesToAddress([]byte("admin"))
	mint  = farm.BytesToAddress([]byte("mint"))
	alice = farm.BytesToAddress([]byte("alice"))
	bob   = farm.BytesToAddress([]byte("bob"))
)

type testEnv struct {
	staker *Staker
	state  *state.State
	clock  *clock.Manual
}

// newTestEnv returns a staker with the registry created and every account funded with supply tokens.
func newTestEnv(t *testing.T, supply uint64, accounts ...farm.Address) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		state: state.New(db),
		clock: clock.NewManual(startTime),
	}
	env.staker = New(env.state, derive.New(4096), env.clock)

	require.NoError(t, env.staker.CreateState(admin, mint))
	for _, acc := range append([]farm.Address{admin}, accounts...) {
		_, err := env.staker.Mint(admin, acc, supply)
		require.NoError(t, err)
	}
	return env
}

func (e *testEnv) createPool(t *testing.T, index, apy uint8, minStake, lock uint64) {
	_, err := e.staker.CreatePool(admin, mint, index, apy, minStake, lock)
	require.NoError(t, err)
}

func (e *testEnv) balance(t *testing.T, owner farm.Address) uint64 {
	acc, _, err := e.staker.Wallet(owner)
	require.NoError(t, err)
	return acc.Amount
}

func (e *testEnv) vaultBalance(t *testing.T, index uint8) uint64 {
	_, p, err := e.staker.Pool(index)
	require.NoError(t, err)
	acc, err := e.staker.TokenAccount(p.Vault)
	require.NoError(t, err)
	return acc.Amount
}
