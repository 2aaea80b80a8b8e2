// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a named domain failure. The operation that returned it applied nothing.
type ErrRevert struct {
	code    string
	message string
}

func New(code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the stable identifier of the failure.
func (e *ErrRevert) Code() string {
	return e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf returns the code of the revert wrapped in err, or an empty string.
func CodeOf(err error) string {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code
	}
	return ""
}

var (
	ErrUnauthorized             = New("Unauthorized", "caller lacks the required authority")
	ErrDuplicatePool            = New("DuplicatePool", "pool index already in use")
	ErrTokenMismatch            = New("TokenMismatch", "token mint does not match")
	ErrBelowMinimum             = New("BelowMinimum", "staking amount shouldn't be less than the minimum value")
	ErrInsufficientRewardBudget = New("InsufficientRewardBudget", "reward budget cannot cover the reservation")
	ErrReservedFundsProtected   = New("ReservedFundsProtected", "can not withdraw reserved reward")
	ErrStillLocked              = New("StillLocked", "stake is still locked")
	ErrOverflow                 = New("Overflow", "arithmetic overflow")
	ErrInsufficientFunds        = New("InsufficientFunds", "insufficient funds")

	ErrRegistryExists   = New("RegistryExists", "registry already created")
	ErrRegistryNotFound = New("RegistryNotFound", "registry not created")
	ErrPoolNotFound     = New("PoolNotFound", "pool not found")
	ErrPositionNotFound = New("PositionNotFound", "stake position not found")
	ErrAccountNotFound  = New("AccountNotFound", "token account not found")
	ErrAccountExists    = New("AccountExists", "token account already exists")
	ErrInvalidParams    = New("InvalidParams", "invalid parameters")
)
