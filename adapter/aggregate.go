// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"math/big"

	"github.com/luxfi/multihook/hooks"
)

var (
	int128Mod  = new(big.Int).Lsh(big.NewInt(1), 128) // 2^128
	int128Half = new(big.Int).Lsh(big.NewInt(1), 127) // 2^127
)

// wrapInt128 narrows x to a signed 128-bit value with two's-complement
// wraparound. Summation overflow wraps rather than failing, matching the
// width of the settlement currency deltas.
func wrapInt128(x *big.Int) *big.Int {
	r := new(big.Int).Mod(x, int128Mod)
	if r.Cmp(int128Half) >= 0 {
		r.Sub(r, int128Mod)
	}
	return r
}

// normalizeDelta replaces nil components with zero so arithmetic never
// dereferences a hook-supplied nil
func normalizeDelta(d hooks.Delta) hooks.Delta {
	if d.Amount0 == nil {
		d.Amount0 = new(big.Int)
	}
	if d.Amount1 == nil {
		d.Amount1 = new(big.Int)
	}
	return d
}

// sumDeltas adds component-wise over arbitrary precision, then narrows
// each component to int128
func sumDeltas(deltas []hooks.Delta) hooks.Delta {
	acc0 := new(big.Int)
	acc1 := new(big.Int)
	for _, d := range deltas {
		if d.Amount0 != nil {
			acc0.Add(acc0, d.Amount0)
		}
		if d.Amount1 != nil {
			acc1.Add(acc1, d.Amount1)
		}
	}
	return hooks.Delta{Amount0: wrapInt128(acc0), Amount1: wrapInt128(acc1)}
}
