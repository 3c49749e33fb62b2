// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/multihook/fees"
)

// Flags is a bitmap of hook capabilities. A hook is only invoked for the
// lifecycle events it declares; the two Returns* bits additionally opt the
// hook into contributing deltas and fee overrides on the events that
// support them.
type Flags uint16

const (
	FlagBeforeInitialize Flags = 1 << iota
	FlagAfterInitialize
	FlagBeforeAddLiquidity
	FlagAfterAddLiquidity
	FlagBeforeRemoveLiquidity
	FlagAfterRemoveLiquidity
	FlagBeforeSwap
	FlagAfterSwap
	FlagBeforeDonate
	FlagAfterDonate
	FlagReturnsDelta // contributes deltas on beforeSwap/afterSwap/afterAdd/afterRemove
	FlagReturnsFee   // contributes a fee/weight tuple on beforeSwap
)

// Permissions is the capability descriptor every hook answers once at
// registration time. The adapter caches the encoded bitmap and never
// re-queries it per call.
type Permissions struct {
	BeforeInitialize      bool
	AfterInitialize       bool
	BeforeAddLiquidity    bool
	AfterAddLiquidity     bool
	BeforeRemoveLiquidity bool
	AfterRemoveLiquidity  bool
	BeforeSwap            bool
	AfterSwap             bool
	BeforeDonate          bool
	AfterDonate           bool
	ReturnsDelta          bool
	ReturnsFee            bool
}

// EncodePermissions encodes permissions into a Flags bitmap
func EncodePermissions(p Permissions) Flags {
	var flags Flags

	if p.BeforeInitialize {
		flags |= FlagBeforeInitialize
	}
	if p.AfterInitialize {
		flags |= FlagAfterInitialize
	}
	if p.BeforeAddLiquidity {
		flags |= FlagBeforeAddLiquidity
	}
	if p.AfterAddLiquidity {
		flags |= FlagAfterAddLiquidity
	}
	if p.BeforeRemoveLiquidity {
		flags |= FlagBeforeRemoveLiquidity
	}
	if p.AfterRemoveLiquidity {
		flags |= FlagAfterRemoveLiquidity
	}
	if p.BeforeSwap {
		flags |= FlagBeforeSwap
	}
	if p.AfterSwap {
		flags |= FlagAfterSwap
	}
	if p.BeforeDonate {
		flags |= FlagBeforeDonate
	}
	if p.AfterDonate {
		flags |= FlagAfterDonate
	}
	if p.ReturnsDelta {
		flags |= FlagReturnsDelta
	}
	if p.ReturnsFee {
		flags |= FlagReturnsFee
	}

	return flags
}

// DecodePermissions decodes a Flags bitmap into permissions
func DecodePermissions(flags Flags) Permissions {
	return Permissions{
		BeforeInitialize:      flags&FlagBeforeInitialize != 0,
		AfterInitialize:       flags&FlagAfterInitialize != 0,
		BeforeAddLiquidity:    flags&FlagBeforeAddLiquidity != 0,
		AfterAddLiquidity:     flags&FlagAfterAddLiquidity != 0,
		BeforeRemoveLiquidity: flags&FlagBeforeRemoveLiquidity != 0,
		AfterRemoveLiquidity:  flags&FlagAfterRemoveLiquidity != 0,
		BeforeSwap:            flags&FlagBeforeSwap != 0,
		AfterSwap:             flags&FlagAfterSwap != 0,
		BeforeDonate:          flags&FlagBeforeDonate != 0,
		AfterDonate:           flags&FlagAfterDonate != 0,
		ReturnsDelta:          flags&FlagReturnsDelta != 0,
		ReturnsFee:            flags&FlagReturnsFee != 0,
	}
}

// Ack is the 4-byte acknowledgement a hook must echo back for the event it
// was invoked with. A mismatched ack fails the composite call with
// ErrInvalidHookResponse, distinct from the hook returning an error.
type Ack [4]byte

// Per-event acknowledgement selectors
var (
	AckBeforeInitialize      = Ack{0x01, 0x00, 0x00, 0x01}
	AckAfterInitialize       = Ack{0x01, 0x00, 0x00, 0x02}
	AckBeforeAddLiquidity    = Ack{0x02, 0x00, 0x00, 0x01}
	AckAfterAddLiquidity     = Ack{0x02, 0x00, 0x00, 0x02}
	AckBeforeRemoveLiquidity = Ack{0x02, 0x00, 0x00, 0x03}
	AckAfterRemoveLiquidity  = Ack{0x02, 0x00, 0x00, 0x04}
	AckBeforeSwap            = Ack{0x03, 0x00, 0x00, 0x01}
	AckAfterSwap             = Ack{0x03, 0x00, 0x00, 0x02}
	AckBeforeDonate          = Ack{0x04, 0x00, 0x00, 0x01}
	AckAfterDonate           = Ack{0x04, 0x00, 0x00, 0x02}
)

// Hook is the interface every sub-hook implements. Address is the hook's
// stable identity within registries; Permissions is queried once at
// registration. Lifecycle methods receive the original caller, the pool
// key, event parameters and an opaque data blob passed through unchanged.
//
// Hooks that do not declare ReturnsDelta/ReturnsFee may return zero values
// for those outputs; the adapter ignores them.
type Hook interface {
	Address() common.Address
	Permissions() Permissions

	BeforeInitialize(sender common.Address, key PoolKey, sqrtPriceX96 *big.Int, hookData []byte) (Ack, error)
	AfterInitialize(sender common.Address, key PoolKey, sqrtPriceX96 *big.Int, tick int32, hookData []byte) (Ack, error)

	BeforeAddLiquidity(sender common.Address, key PoolKey, params ModifyLiquidityParams, hookData []byte) (Ack, error)
	AfterAddLiquidity(sender common.Address, key PoolKey, params ModifyLiquidityParams, delta Delta, hookData []byte) (Ack, Delta, error)

	BeforeRemoveLiquidity(sender common.Address, key PoolKey, params ModifyLiquidityParams, hookData []byte) (Ack, error)
	AfterRemoveLiquidity(sender common.Address, key PoolKey, params ModifyLiquidityParams, delta Delta, hookData []byte) (Ack, Delta, error)

	// BeforeSwap returns the hook's specified/unspecified delta contribution
	// and its fee contribution for this swap. The adapter only honors each
	// output when the matching Returns* capability was declared.
	BeforeSwap(sender common.Address, key PoolKey, params SwapParams, hookData []byte) (Ack, Delta, fees.Contribution, error)

	// AfterSwap receives the swap's balance delta plus the delta this hook
	// itself contributed during the paired BeforeSwap (zero if none).
	AfterSwap(sender common.Address, key PoolKey, params SwapParams, delta Delta, beforeDelta Delta, hookData []byte) (Ack, Delta, error)

	BeforeDonate(sender common.Address, key PoolKey, amount0, amount1 *big.Int, hookData []byte) (Ack, error)
	AfterDonate(sender common.Address, key PoolKey, amount0, amount1 *big.Int, hookData []byte) (Ack, error)
}
