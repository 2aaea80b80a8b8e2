// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the custodial transfer gateway: fungible token accounts and
// authorised transfers between them.
package token

import (
	"github.com/pkg/errors"

	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/state"
	"github.com/farmvault/farm/storage"
)

var logger = log.WithContext("pkg", "token")

var slotAccounts = storage.Slot("token-accounts")

const walletSeed = "wallet"

type Gateway struct {
	accounts *storage.Mapping[farm.Address, *Account]
	resolver *derive.Resolver
}

func New(st *state.State, resolver *derive.Resolver) *Gateway {
	return &Gateway{
		accounts: storage.NewMapping[farm.Address, *Account](st, slotAccounts),
		resolver: resolver,
	}
}

// WalletAddress returns the canonical token account of owner for mint.
func (g *Gateway) WalletAddress(owner, mint farm.Address) farm.Address {
	addr, _ := g.resolver.Derive([]byte(walletSeed), owner.Bytes(), mint.Bytes())
	return addr
}

// InitAccount creates an empty account at addr owned by an external signer.
func (g *Gateway) InitAccount(addr, mint, owner farm.Address) error {
	return g.initAccount(addr, &Account{Mint: mint, Owner: owner})
}

// InitVault creates an empty account at addr that only auth can spend from.
func (g *Gateway) InitVault(addr, mint farm.Address, auth ProgramAuthority) error {
	owner, err := auth.Address()
	if err != nil {
		return reverts.ErrInvalidParams
	}
	return g.initAccount(addr, &Account{Mint: mint, Owner: owner, Derived: true})
}

func (g *Gateway) initAccount(addr farm.Address, acc *Account) error {
	exists, err := g.accounts.Exists(addr)
	if err != nil {
		return errors.Wrap(err, "failed to get token account")
	}
	if exists {
		return reverts.ErrAccountExists
	}
	if err := g.accounts.Insert(addr, acc); err != nil {
		return errors.Wrap(err, "failed to create token account")
	}
	return nil
}

// EnsureWallet returns the wallet of owner for mint, creating it when missing.
func (g *Gateway) EnsureWallet(owner, mint farm.Address) (farm.Address, error) {
	addr := g.WalletAddress(owner, mint)
	acc, err := g.accounts.Get(addr)
	if err != nil {
		return farm.Address{}, errors.Wrap(err, "failed to get token account")
	}
	if acc != nil {
		return addr, nil
	}
	return addr, g.InitAccount(addr, mint, owner)
}

func (g *Gateway) Account(addr farm.Address) (*Account, error) {
	acc, err := g.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	if acc == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return acc, nil
}

func (g *Gateway) Balance(addr farm.Address) (uint64, error) {
	acc, err := g.Account(addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// Mint credits amount to the account at to. Callers are responsible for the mint authority.
func (g *Gateway) Mint(to farm.Address, amount uint64) error {
	acc, err := g.Account(to)
	if err != nil {
		return err
	}
	if acc.Amount+amount < acc.Amount {
		return reverts.ErrOverflow
	}
	acc.Amount += amount
	if err := g.accounts.Update(to, acc); err != nil {
		return errors.Wrap(err, "failed to update token account")
	}
	logger.Debug("minted", "to", to, "amount", amount)
	return nil
}

// CheckTransfer validates a transfer without applying it.
func (g *Gateway) CheckTransfer(from, to farm.Address, amount uint64, auth Authority) error {
	_, _, err := g.checkTransfer(from, to, amount, auth)
	return err
}

func (g *Gateway) checkTransfer(from, to farm.Address, amount uint64, auth Authority) (*Account, *Account, error) {
	src, err := g.Account(from)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "source")
	}
	dst, err := g.Account(to)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "destination")
	}
	if src.Mint != dst.Mint {
		return nil, nil, reverts.ErrTokenMismatch
	}
	if _, program := auth.(ProgramAuthority); program != src.Derived {
		return nil, nil, reverts.ErrUnauthorized
	}
	signer, err := auth.Address()
	if err != nil || signer != src.Owner {
		return nil, nil, reverts.ErrUnauthorized
	}
	if src.Amount < amount {
		return nil, nil, reverts.ErrInsufficientFunds
	}
	if from != to && dst.Amount+amount < dst.Amount {
		return nil, nil, reverts.ErrOverflow
	}
	return src, dst, nil
}

// Transfer moves amount from one account to another. The authority must control the source owner.
func (g *Gateway) Transfer(from, to farm.Address, amount uint64, auth Authority) error {
	src, dst, err := g.checkTransfer(from, to, amount, auth)
	if err != nil {
		return err
	}
	if from == to || amount == 0 {
		return nil
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := g.accounts.Update(from, src); err != nil {
		return errors.Wrap(err, "failed to update token account")
	}
	if err := g.accounts.Update(to, dst); err != nil {
		return errors.Wrap(err, "failed to update token account")
	}
	logger.Trace("transferred", "from", from, "to", to, "amount", amount)
	return nil
}
