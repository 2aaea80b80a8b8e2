// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"errors"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/farmvault/farm/api/accounts"
	"github.com/farmvault/farm/api/pools"
	"github.com/farmvault/farm/api/positions"
	"github.com/farmvault/farm/api/registry"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/genesis"
	"github.com/farmvault/farm/ledger"
	"github.com/farmvault/farm/reverts"
)

// withLedger opens the ledger for the duration of fn.
func withLedger(ctx *cli.Context, fn func(l *ledger.Ledger) error) error {
	l, closeDB, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(l)
}

func initAction(ctx *cli.Context) error {
	var (
		gen *genesis.Genesis
		err error
	)
	switch {
	case ctx.Bool(devFlag.Name):
		admin, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		gen = genesis.Dev(admin)
	case ctx.String(genesisFlag.Name) != "":
		if gen, err = genesis.Load(ctx.String(genesisFlag.Name)); err != nil {
			return err
		}
	default:
		return errors.New("either --genesis or --dev must be specified")
	}

	return withLedger(ctx, func(l *ledger.Ledger) error {
		if err := gen.Apply(context.Background(), l); err != nil {
			return err
		}
		reg, err := l.Registry(context.Background())
		if err != nil {
			return err
		}
		return printJSON(ctx.App.Writer, registry.ConvertRegistry(l.RegistryAddress(), reg))
	})
}

func createStateAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	mint, err := requireAddress(ctx, mintFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		if err := l.CreateState(context.Background(), caller, mint); err != nil {
			return err
		}
		reg, err := l.Registry(context.Background())
		if err != nil {
			return err
		}
		return printJSON(ctx.App.Writer, registry.ConvertRegistry(l.RegistryAddress(), reg))
	})
}

func createPoolAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	mint, err := requireAddress(ctx, mintFlag)
	if err != nil {
		return err
	}
	index, err := requireUint8(ctx, indexFlag)
	if err != nil {
		return err
	}
	apy, err := requireUint8(ctx, apyFlag)
	if err != nil {
		return err
	}
	minStake, err := requireUint64(ctx, minStakeFlag)
	if err != nil {
		return err
	}
	if ctx.String(lockFlag.Name) == "" {
		return errors.New("--lock is required")
	}
	lock, err := parseLock(ctx.String(lockFlag.Name))
	if err != nil {
		return err
	}

	return withLedger(ctx, func(l *ledger.Ledger) error {
		if _, err := l.CreatePool(context.Background(), caller, mint, index, apy, minStake, lock); err != nil {
			return err
		}
		return printPool(ctx, l, index)
	})
}

func fundAction(ctx *cli.Context) error {
	return budgetAction(ctx, func(l *ledger.Ledger) func(context.Context, farm.Address, uint8, uint64) error {
		return l.Fund
	})
}

func withdrawAction(ctx *cli.Context) error {
	return budgetAction(ctx, func(l *ledger.Ledger) func(context.Context, farm.Address, uint8, uint64) error {
		return l.Withdraw
	})
}

func budgetAction(ctx *cli.Context, op func(l *ledger.Ledger) func(context.Context, farm.Address, uint8, uint64) error) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	index, err := requireUint8(ctx, indexFlag)
	if err != nil {
		return err
	}
	amount, err := requireUint64(ctx, amountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		if err := op(l)(context.Background(), caller, index, amount); err != nil {
			return err
		}
		return printPool(ctx, l, index)
	})
}

func stakeAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	index, err := requireUint8(ctx, indexFlag)
	if err != nil {
		return err
	}
	amount, err := requireUint64(ctx, amountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		id, err := l.Stake(context.Background(), caller, index, amount)
		if err != nil {
			return err
		}
		return printPosition(ctx, l, id)
	})
}

func cancelAction(ctx *cli.Context) error {
	return settleAction(ctx, func(l *ledger.Ledger) func(context.Context, farm.Address, farm.Address) error {
		return l.Cancel
	})
}

func claimAction(ctx *cli.Context) error {
	return settleAction(ctx, func(l *ledger.Ledger) func(context.Context, farm.Address, farm.Address) error {
		return l.Claim
	})
}

func settleAction(ctx *cli.Context, op func(l *ledger.Ledger) func(context.Context, farm.Address, farm.Address) error) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	id, err := requireAddress(ctx, positionFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		if err := op(l)(context.Background(), caller, id); err != nil {
			return err
		}
		return printWallet(ctx, l, caller)
	})
}

func mintAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	owner, err := requireAddress(ctx, ownerFlag)
	if err != nil {
		return err
	}
	amount, err := requireUint64(ctx, amountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		if _, err := l.Mint(context.Background(), caller, owner, amount); err != nil {
			return err
		}
		return printWallet(ctx, l, owner)
	})
}

func registryAction(ctx *cli.Context) error {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		reg, err := l.Registry(context.Background())
		if err != nil {
			return err
		}
		return printJSON(ctx.App.Writer, registry.ConvertRegistry(l.RegistryAddress(), reg))
	})
}

func poolsAction(ctx *cli.Context) error {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		list, err := l.Pools(context.Background())
		if err != nil {
			return err
		}
		result := make([]*pools.Pool, 0, len(list))
		for _, p := range list {
			addr, err := l.PoolAddress(context.Background(), p.Index)
			if err != nil {
				return err
			}
			result = append(result, pools.ConvertPool(addr, p))
		}
		return printJSON(ctx.App.Writer, result)
	})
}

func poolAction(ctx *cli.Context) error {
	index, err := requireUint8(ctx, indexFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		return printPool(ctx, l, index)
	})
}

func quoteAction(ctx *cli.Context) error {
	index, err := requireUint8(ctx, indexFlag)
	if err != nil {
		return err
	}
	amount, err := requireUint64(ctx, amountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		reward, err := l.Reward(context.Background(), index, amount)
		if err != nil {
			return err
		}
		return printJSON(ctx.App.Writer, &pools.Quote{Principal: amount, Reward: reward})
	})
}

func positionAction(ctx *cli.Context) error {
	id, err := requireAddress(ctx, positionFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		return printPosition(ctx, l, id)
	})
}

func positionsAction(ctx *cli.Context) error {
	owner, err := requireAddress(ctx, ownerFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		entries, err := l.PositionsOf(context.Background(), owner)
		if err != nil {
			return err
		}
		result := make([]*positions.Position, 0, len(entries))
		for _, e := range entries {
			pos, err := positions.Load(context.Background(), l, e.ID)
			if err != nil {
				return err
			}
			result = append(result, pos)
		}
		return printJSON(ctx.App.Writer, result)
	})
}

func balanceAction(ctx *cli.Context) error {
	owner, err := requireAddress(ctx, ownerFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		return printWallet(ctx, l, owner)
	})
}

func printPool(ctx *cli.Context, l *ledger.Ledger, index uint8) error {
	addr, p, err := l.Pool(context.Background(), index)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, pools.ConvertPool(addr, p))
}

func printPosition(ctx *cli.Context, l *ledger.Ledger, id farm.Address) error {
	pos, err := positions.Load(context.Background(), l, id)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, pos)
}

// printWallet prints the wallet of owner, reporting a zero balance for owners who never held tokens.
func printWallet(ctx *cli.Context, l *ledger.Ledger, owner farm.Address) error {
	acc, addr, err := l.Wallet(context.Background(), owner)
	if err != nil && !errors.Is(err, reverts.ErrAccountNotFound) {
		return err
	}
	result := &accounts.Account{Owner: owner, Wallet: addr}
	if acc != nil {
		result.Mint = acc.Mint
		result.Balance = acc.Amount
	}
	return printJSON(ctx.App.Writer, result)
}
