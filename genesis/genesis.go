// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis loads the deployment file describing the initial ledger:
// the registry, token balances and the pools to open and fund.
package genesis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/staker"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis is the deployment file.
type Genesis struct {
	Admin     farm.Address `yaml:"admin"`
	TokenMint farm.Address `yaml:"tokenMint"`
	Accounts  []Account    `yaml:"accounts"`
	Pools     []Pool       `yaml:"pools"`
}

// Account is an initial token balance.
type Account struct {
	Owner   farm.Address `yaml:"owner"`
	Balance uint64       `yaml:"balance"`
}

// Pool is a pool to create, optionally funded from the admin wallet.
type Pool struct {
	Index        uint8    `yaml:"index"`
	APY          uint8    `yaml:"apy"`
	MinStake     uint64   `yaml:"minStake"`
	LockDuration Duration `yaml:"lockDuration"`
	Fund         uint64   `yaml:"fund"`
}

// Duration is a number of seconds. It may be written as an integer or as a Go duration like "720h".
type Duration uint64

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if v, err := strconv.ParseUint(node.Value, 10, 64); err == nil {
		*d = Duration(v)
		return nil
	}
	dur, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, node.Value)
	}
	if dur < time.Second {
		return fmt.Errorf("line %d: duration %q below one second", node.Line, node.Value)
	}
	*d = Duration(dur / time.Second)
	return nil
}

// Parse decodes and validates a deployment file.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// Load reads the deployment file at path.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

func (g *Genesis) Validate() error {
	if g.Admin.IsZero() {
		return errors.New("genesis: admin must be set")
	}
	if g.TokenMint.IsZero() {
		return errors.New("genesis: tokenMint must be set")
	}
	owners := make(map[farm.Address]bool)
	for _, a := range g.Accounts {
		if owners[a.Owner] {
			return fmt.Errorf("genesis: duplicated account %s", a.Owner)
		}
		owners[a.Owner] = true
	}
	indexes := make(map[uint8]bool)
	for _, p := range g.Pools {
		if indexes[p.Index] {
			return fmt.Errorf("genesis: duplicated pool index %d", p.Index)
		}
		indexes[p.Index] = true
		if p.LockDuration == 0 {
			return fmt.Errorf("genesis: pool %d: lockDuration must be set", p.Index)
		}
	}
	return nil
}

// Apply writes the deployment into the ledger as one atomic operation.
func (g *Genesis) Apply(ctx context.Context, l *ledger.Ledger) error {
	return l.Exec(ctx, "genesis", func(s *staker.Staker) error {
		if err := s.CreateState(g.Admin, g.TokenMint); err != nil {
			return errors.WithMessage(err, "create state")
		}
		for _, a := range g.Accounts {
			if _, err := s.Mint(g.Admin, a.Owner, a.Balance); err != nil {
				return errors.WithMessagef(err, "mint %s", a.Owner)
			}
		}
		for _, p := range g.Pools {
			if _, err := s.CreatePool(g.Admin, g.TokenMint, p.Index, p.APY, p.MinStake, uint64(p.LockDuration)); err != nil {
				return errors.WithMessagef(err, "create pool %d", p.Index)
			}
			if p.Fund == 0 {
				continue
			}
			if err := s.Fund(g.Admin, p.Index, p.Fund); err != nil {
				return errors.WithMessagef(err, "fund pool %d", p.Index)
			}
		}
		logger.Info("genesis applied", "admin", g.Admin, "mint", g.TokenMint, "accounts", len(g.Accounts), "pools", len(g.Pools))
		return nil
	})
}

// Dev returns a deployment for local experiments: the admin holds the supply and two pools are funded.
func Dev(admin farm.Address) *Genesis {
	return &Genesis{
		Admin:     admin,
		TokenMint: farm.BytesToAddress([]byte("farm-dev-token")),
		Accounts:  []Account{{Owner: admin, Balance: 1_000_000_000}},
		Pools: []Pool{
			{Index: 0, APY: 10, MinStake: 100, LockDuration: Duration(30 * farm.SecondsPerDay), Fund: 1_000_000},
			{Index: 1, APY: 25, MinStake: 1_000, LockDuration: Duration(365 * farm.SecondsPerDay), Fund: 10_000_000},
		},
	}
}
