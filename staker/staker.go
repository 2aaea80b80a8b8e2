// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/staker/pool"
	"github.com/farmvault/farm/staker/position"
	"github.com/farmvault/farm/staker/registry"
	"github.com/farmvault/farm/staker/reward"
	"github.com/farmvault/farm/state"
	"github.com/farmvault/farm/token"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Staker implements the reward escrow operations over a state overlay.
// Every operation validates before it writes; the caller discards the overlay when an error is returned.
type Staker struct {
	clock    clock.Clock
	resolver *derive.Resolver

	gateway         *token.Gateway
	registryService *registry.Service
	poolService     *pool.Service
	positionService *position.Service
}

// New create a new instance.
func New(st *state.State, resolver *derive.Resolver, clk clock.Clock) *Staker {
	return &Staker{
		clock:    clk,
		resolver: resolver,

		gateway:         token.New(st, resolver),
		registryService: registry.New(st),
		poolService:     pool.New(st, resolver),
		positionService: position.New(st, resolver),
	}
}

const registrySeed = "state"

// RegistryAddress returns the derived address identifying the deployment.
func RegistryAddress(resolver *derive.Resolver) farm.Address {
	addr, _ := resolver.Derive([]byte(registrySeed))
	return addr
}

func (s *Staker) RegistryAddress() farm.Address {
	return RegistryAddress(s.resolver)
}

// CreateState initialises the registry with caller as admin and mint as the accepted token.
func (s *Staker) CreateState(caller, mint farm.Address) error {
	if err := s.registryService.Create(caller, mint, s.clock.Now()); err != nil {
		return err
	}
	logger.Info("registry created", "admin", caller, "mint", mint)
	return nil
}

// CreatePool opens the pool at index with fixed terms and an empty vault.
func (s *Staker) CreatePool(caller, mint farm.Address, index, apy uint8, minStake, lockDuration uint64) (farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return farm.Address{}, err
	}
	if !reg.IsAdmin(caller) {
		return farm.Address{}, reverts.ErrUnauthorized
	}
	if mint != reg.TokenMint {
		return farm.Address{}, reverts.ErrTokenMismatch
	}
	if lockDuration == 0 {
		return farm.Address{}, reverts.ErrInvalidParams
	}

	addr, nonce := s.poolService.Address(mint, index)
	if _, err := s.poolService.Get(addr); err == nil {
		return farm.Address{}, reverts.ErrDuplicatePool
	} else if !errors.Is(err, reverts.ErrPoolNotFound) {
		return farm.Address{}, err
	}

	vault := s.poolService.VaultAddress(mint, addr)
	auth := token.ProgramAuthority{Seeds: pool.Seeds(mint, index), Nonce: nonce}
	if err := s.gateway.InitVault(vault, mint, auth); err != nil {
		return farm.Address{}, err
	}
	p := &pool.Pool{
		Admin:          caller,
		Vault:          vault,
		MinStakeAmount: minStake,
		LockDuration:   lockDuration,
		APY:            apy,
		Index:          index,
		Nonce:          nonce,
	}
	if err := s.poolService.Add(addr, p); err != nil {
		return farm.Address{}, err
	}
	logger.Info("pool created", "index", index, "pool", addr, "apy", apy, "minStake", minStake, "lock", lockDuration)
	return addr, nil
}

// Fund moves amount from the admin wallet into the reward budget of the pool.
func (s *Staker) Fund(caller farm.Address, index uint8, amount uint64) error {
	reg, addr, p, err := s.adminPool(caller, index)
	if err != nil {
		return err
	}
	if err := p.Fund(amount); err != nil {
		return err
	}
	wallet := s.gateway.WalletAddress(caller, reg.TokenMint)
	if err := s.gateway.CheckTransfer(wallet, p.Vault, amount, token.Signer(caller)); err != nil {
		return err
	}

	if err := s.gateway.Transfer(wallet, p.Vault, amount, token.Signer(caller)); err != nil {
		return err
	}
	if err := s.poolService.Update(addr, p); err != nil {
		return err
	}
	logger.Debug("pool funded", "index", index, "amount", amount, "reward", p.AmountReward)
	return nil
}

// Withdraw returns unreserved reward budget to the admin wallet.
func (s *Staker) Withdraw(caller farm.Address, index uint8, amount uint64) error {
	reg, addr, p, err := s.adminPool(caller, index)
	if err != nil {
		return err
	}
	if err := p.Withdraw(amount); err != nil {
		return err
	}
	wallet := s.gateway.WalletAddress(caller, reg.TokenMint)
	auth := s.poolAuthority(reg.TokenMint, p)
	if err := s.gateway.CheckTransfer(p.Vault, wallet, amount, auth); err != nil {
		return err
	}

	if err := s.gateway.Transfer(p.Vault, wallet, amount, auth); err != nil {
		return err
	}
	if err := s.poolService.Update(addr, p); err != nil {
		return err
	}
	logger.Debug("pool withdrawn", "index", index, "amount", amount, "reward", p.AmountReward)
	return nil
}

// Stake escrows principal from the caller wallet and reserves its reward. It returns the position id.
func (s *Staker) Stake(caller farm.Address, index uint8, principal uint64) (farm.Address, error) {
	reg, addr, p, err := s.pool(index)
	if err != nil {
		return farm.Address{}, err
	}
	if principal < p.MinStakeAmount {
		return farm.Address{}, reverts.ErrBelowMinimum
	}
	rew, err := reward.Amount(p.RewardParams(), principal)
	if err != nil {
		return farm.Address{}, err
	}
	seq, err := p.Reserve(principal, rew)
	if err != nil {
		return farm.Address{}, err
	}
	wallet := s.gateway.WalletAddress(caller, reg.TokenMint)
	if err := s.gateway.CheckTransfer(wallet, p.Vault, principal, token.Signer(caller)); err != nil {
		return farm.Address{}, err
	}

	id := s.positionService.ID(addr, caller, seq)
	pos := &position.Position{
		Pool:         addr,
		Owner:        caller,
		Amount:       principal,
		RewardAmount: rew,
		StakedTime:   s.clock.Now(),
		StakeIndex:   seq,
	}
	if err := s.gateway.Transfer(wallet, p.Vault, principal, token.Signer(caller)); err != nil {
		return farm.Address{}, err
	}
	if err := s.positionService.Add(id, pos); err != nil {
		return farm.Address{}, err
	}
	if err := s.poolService.Update(addr, p); err != nil {
		return farm.Address{}, err
	}
	logger.Debug("staked", "index", index, "position", id, "owner", caller, "amount", principal, "reward", rew)
	return id, nil
}

// Cancel exits a position early. The principal is returned and the reservation freed; no reward is paid.
func (s *Staker) Cancel(caller, id farm.Address) error {
	pos, reg, p, err := s.ownedPosition(caller, id)
	if err != nil {
		return err
	}
	if err := p.Release(pos.Amount, pos.RewardAmount); err != nil {
		return err
	}
	if err := s.payout(reg.TokenMint, p, pos, pos.Amount); err != nil {
		return err
	}
	s.positionService.Remove(id, pos)
	if err := s.poolService.Update(pos.Pool, p); err != nil {
		return err
	}
	logger.Debug("cancelled", "position", id, "owner", caller, "amount", pos.Amount)
	return nil
}

// Claim settles a matured position, paying principal plus the reserved reward.
func (s *Staker) Claim(caller, id farm.Address) error {
	pos, reg, p, err := s.ownedPosition(caller, id)
	if err != nil {
		return err
	}
	if !pos.Matured(p.LockDuration, s.clock.Now()) {
		return reverts.ErrStillLocked
	}
	total, ok := pos.Payout()
	if !ok {
		return reverts.ErrOverflow
	}
	if err := p.Settle(pos.Amount, pos.RewardAmount); err != nil {
		return err
	}
	if err := s.payout(reg.TokenMint, p, pos, total); err != nil {
		return err
	}
	s.positionService.Remove(id, pos)
	if err := s.poolService.Update(pos.Pool, p); err != nil {
		return err
	}
	logger.Debug("claimed", "position", id, "owner", caller, "amount", total)
	return nil
}

// Mint credits tokens of the registry mint to the wallet of owner. Admin only.
func (s *Staker) Mint(caller, owner farm.Address, amount uint64) (farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return farm.Address{}, err
	}
	if !reg.IsAdmin(caller) {
		return farm.Address{}, reverts.ErrUnauthorized
	}
	wallet, err := s.gateway.EnsureWallet(owner, reg.TokenMint)
	if err != nil {
		return farm.Address{}, err
	}
	if err := s.gateway.Mint(wallet, amount); err != nil {
		return farm.Address{}, err
	}
	return wallet, nil
}

// OpenWallet creates the token account of owner for the registry mint if missing.
func (s *Staker) OpenWallet(owner farm.Address) (farm.Address, error) {
	reg, err := s.registryService.Get()
	if err != nil {
		return farm.Address{}, err
	}
	return s.gateway.EnsureWallet(owner, reg.TokenMint)
}

func (s *Staker) payout(mint farm.Address, p *pool.Pool, pos *position.Position, amount uint64) error {
	wallet := s.gateway.WalletAddress(pos.Owner, mint)
	auth := s.poolAuthority(mint, p)
	if err := s.gateway.CheckTransfer(p.Vault, wallet, amount, auth); err != nil {
		return err
	}
	return s.gateway.Transfer(p.Vault, wallet, amount, auth)
}

func (s *Staker) poolAuthority(mint farm.Address, p *pool.Pool) token.ProgramAuthority {
	return token.ProgramAuthority{Seeds: pool.Seeds(mint, p.Index), Nonce: p.Nonce}
}
