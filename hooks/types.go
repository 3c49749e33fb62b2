// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hooks defines the pool lifecycle hook interface, capability
// flags, and the shared value types exchanged between a pool manager,
// the multi-hook adapter, and its sub-hooks.
package hooks

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// uint24 type alias for fees
type uint24 = uint32

// int24 type alias for ticks
type int24 = int32

// FeeMax is the maximum pool fee (100% in hundredths of a bip)
const FeeMax uint24 = 1_000_000

// Currency represents a token (native or ERC20)
// Address(0) represents the native asset
type Currency struct {
	Address common.Address
}

// NativeCurrency represents the native asset (no wrapping needed)
var NativeCurrency = Currency{Address: common.Address{}}

// IsNative returns true if this currency is the native asset
func (c Currency) IsNative() bool {
	return c.Address == common.Address{}
}

// ToBytes serializes currency for storage
func (c Currency) ToBytes() []byte {
	return c.Address.Bytes()
}

// CurrencyFromBytes deserializes currency from storage
func CurrencyFromBytes(data []byte) Currency {
	return Currency{Address: common.BytesToAddress(data)}
}

// PoolID is the collision-resistant pool identifier derived from a PoolKey
type PoolID [32]byte

// PoolKey uniquely identifies a pool
// Sorted by currency address (currency0 < currency1)
type PoolKey struct {
	Currency0   Currency       // Lower address token
	Currency1   Currency       // Higher address token
	Fee         uint24         // Static fee in hundredths of a bip
	TickSpacing int24          // Tick spacing for concentrated liquidity
	Hooks       common.Address // Adapter address attached to the pool
}

// ID computes the unique pool identifier
func (pk PoolKey) ID() PoolID {
	h := blake3.New()
	h.Write(pk.Currency0.ToBytes())
	h.Write(pk.Currency1.ToBytes())

	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], uint32(pk.Fee))
	h.Write(feeBytes[1:]) // uint24

	var tickBytes [4]byte
	binary.BigEndian.PutUint32(tickBytes[:], uint32(pk.TickSpacing))
	h.Write(tickBytes[1:]) // int24

	h.Write(pk.Hooks.Bytes())

	var id PoolID
	h.Digest().Read(id[:])
	return id
}

// ToBytes serializes pool key for storage and precompile input
func (pk PoolKey) ToBytes() []byte {
	data := make([]byte, 66) // 20+20+3+3+20
	copy(data[0:20], pk.Currency0.ToBytes())
	copy(data[20:40], pk.Currency1.ToBytes())
	data[40] = byte(pk.Fee >> 16)
	data[41] = byte(pk.Fee >> 8)
	data[42] = byte(pk.Fee)
	data[43] = byte(pk.TickSpacing >> 16)
	data[44] = byte(pk.TickSpacing >> 8)
	data[45] = byte(pk.TickSpacing)
	copy(data[46:66], pk.Hooks.Bytes())
	return data
}

// PoolKeyFromBytes deserializes pool key from storage
func PoolKeyFromBytes(data []byte) (PoolKey, error) {
	if len(data) < 66 {
		return PoolKey{}, errors.New("invalid pool key data length")
	}
	pk := PoolKey{}
	pk.Currency0 = CurrencyFromBytes(data[0:20])
	pk.Currency1 = CurrencyFromBytes(data[20:40])
	pk.Fee = uint24(data[40])<<16 | uint24(data[41])<<8 | uint24(data[42])
	raw := uint32(data[43])<<16 | uint32(data[44])<<8 | uint32(data[45])
	if raw&0x800000 != 0 {
		raw |= 0xff000000 // sign-extend int24
	}
	pk.TickSpacing = int24(raw)
	pk.Hooks = common.BytesToAddress(data[46:66])
	return pk, nil
}

// Delta is a two-component signed vector describing a balance adjustment.
// For liquidity and donate events the components are token0/token1 amounts;
// for swap events they are the specified/unspecified amounts. Components
// are int128 at the external boundary; aggregation wraps on overflow.
type Delta struct {
	Amount0 *big.Int
	Amount1 *big.Int
}

// NewDelta creates a delta, copying both components
func NewDelta(amount0, amount1 *big.Int) Delta {
	return Delta{
		Amount0: new(big.Int).Set(amount0),
		Amount1: new(big.Int).Set(amount1),
	}
}

// ZeroDelta returns a zero delta
func ZeroDelta() Delta {
	return Delta{
		Amount0: big.NewInt(0),
		Amount1: big.NewInt(0),
	}
}

// Add combines two deltas
func (d Delta) Add(other Delta) Delta {
	return Delta{
		Amount0: new(big.Int).Add(d.Amount0, other.Amount0),
		Amount1: new(big.Int).Add(d.Amount1, other.Amount1),
	}
}

// Negate inverts the delta signs
func (d Delta) Negate() Delta {
	return Delta{
		Amount0: new(big.Int).Neg(d.Amount0),
		Amount1: new(big.Int).Neg(d.Amount1),
	}
}

// IsZero returns true if both components are zero
func (d Delta) IsZero() bool {
	return d.Amount0.Sign() == 0 && d.Amount1.Sign() == 0
}

// SwapParams contains parameters for a swap
type SwapParams struct {
	ZeroForOne        bool     // true = swap currency0 for currency1
	AmountSpecified   *big.Int // Positive = exact input, Negative = exact output
	SqrtPriceLimitX96 *big.Int // Price limit (sqrt(price) * 2^96)
}

// ModifyLiquidityParams contains parameters for adding/removing liquidity
type ModifyLiquidityParams struct {
	TickLower      int24
	TickUpper      int24
	LiquidityDelta *big.Int // Positive = add, Negative = remove
	Salt           [32]byte // Position salt for uniqueness
}

// Errors - adapter lifecycle and configuration
var (
	ErrNilHook             = errors.New("nil hook reference")
	ErrAlreadyRegistered   = errors.New("hooks already registered for pool")
	ErrHookAlreadyPresent  = errors.New("hook already registered")
	ErrHookNotPresent      = errors.New("hook not registered")
	ErrHookNotApproved     = errors.New("hook not approved")
	ErrNotPoolOwner        = errors.New("caller is not the pool owner")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidFee          = errors.New("invalid fee")
	ErrInvalidFeeMethod    = errors.New("invalid fee method")
	ErrImmutableConfig     = errors.New("immutable configuration")
	ErrHookCallFailed      = errors.New("hook call failed")
	ErrInvalidHookResponse = errors.New("invalid hook response")
	ErrReentrant           = errors.New("reentrancy detected")
)
