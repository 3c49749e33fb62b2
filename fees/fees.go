// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fees resolves a set of per-hook fee contributions into a single
// pool fee. Resolution is a pure function over the contributions and the
// effective fee configuration; it never mutates state and never fails for
// well-formed input.
package fees

import (
	"fmt"
	"math/big"
	"sort"
)

// FeeMax is the maximum fee, 100% in hundredths of a bip
const FeeMax uint32 = 1_000_000

// Method selects how competing fee contributions are resolved
type Method uint8

const (
	// MethodWeightedAverage is floor(sum(fee*weight) / sum(weight))
	MethodWeightedAverage Method = iota
	// MethodMean is floor(sum(fee) / count), weights ignored
	MethodMean
	// MethodMedian sorts ascending; even counts average the two middles
	MethodMedian
	// MethodFirstOverride takes the first valid contribution in hook order
	MethodFirstOverride
	// MethodLastOverride takes the last valid contribution in hook order
	MethodLastOverride
	// MethodMinFee takes the minimum valid fee
	MethodMinFee
	// MethodMaxFee takes the maximum valid fee
	MethodMaxFee
	// MethodGovernanceOnly ignores contributions and always falls back
	MethodGovernanceOnly
)

// Valid reports whether m names a known resolution method
func (m Method) Valid() bool {
	return m <= MethodGovernanceOnly
}

func (m Method) String() string {
	switch m {
	case MethodWeightedAverage:
		return "weightedAverage"
	case MethodMean:
		return "mean"
	case MethodMedian:
		return "median"
	case MethodFirstOverride:
		return "firstOverride"
	case MethodLastOverride:
		return "lastOverride"
	case MethodMinFee:
		return "minFee"
	case MethodMaxFee:
		return "maxFee"
	case MethodGovernanceOnly:
		return "governanceOnly"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Contribution is one hook's fee preference for a single swap. A zero
// weight means the hook opts out regardless of method; Valid false means
// the hook declined to contribute at all.
type Contribution struct {
	Fee    uint32
	Weight uint64
	Valid  bool
}

// usable reports whether the contribution survives filtering
func (c Contribution) usable() bool {
	return c.Valid && c.Fee >= 1 && c.Fee <= FeeMax && c.Weight > 0
}

// Config is the effective fee configuration for one pool at resolve time.
// Global state (default and governance fees) is merged live with the
// pool-specific overrides; nothing is snapshotted at registration.
type Config struct {
	DefaultFee       uint32
	GovernanceFee    uint32
	GovernanceFeeSet bool
	PoolFee          uint32
	PoolFeeSet       bool
	Method           Method
}

// Fallback returns the fee used when no valid contributions exist:
// pool-specific if set, else governance if set and in range, else default.
func (c Config) Fallback() uint32 {
	if c.PoolFeeSet {
		return c.PoolFee
	}
	if c.GovernanceFeeSet && c.GovernanceFee >= 1 && c.GovernanceFee <= FeeMax {
		return c.GovernanceFee
	}
	return c.DefaultFee
}

// Resolve computes the single authoritative fee for a swap from the given
// contributions and configuration. Contributions with fee outside
// [1, FeeMax] or zero weight are excluded for every method.
func Resolve(contribs []Contribution, cfg Config) uint32 {
	if cfg.Method == MethodGovernanceOnly {
		return cfg.Fallback()
	}

	valid := contribs[:0:0]
	for _, c := range contribs {
		if c.usable() {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return cfg.Fallback()
	}

	switch cfg.Method {
	case MethodMean:
		var sum uint64
		for _, c := range valid {
			sum += uint64(c.Fee)
		}
		return uint32(sum / uint64(len(valid)))

	case MethodMedian:
		sorted := make([]uint32, len(valid))
		for i, c := range valid {
			sorted[i] = c.Fee
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return uint32((uint64(sorted[mid-1]) + uint64(sorted[mid])) / 2)

	case MethodFirstOverride:
		return valid[0].Fee

	case MethodLastOverride:
		return valid[len(valid)-1].Fee

	case MethodMinFee:
		min := valid[0].Fee
		for _, c := range valid[1:] {
			if c.Fee < min {
				min = c.Fee
			}
		}
		return min

	case MethodMaxFee:
		max := valid[0].Fee
		for _, c := range valid[1:] {
			if c.Fee > max {
				max = c.Fee
			}
		}
		return max

	default: // MethodWeightedAverage
		// fee*weight can exceed 64 bits with large weights, so accumulate
		// in big.Int
		num := new(big.Int)
		den := new(big.Int)
		tmp := new(big.Int)
		for _, c := range valid {
			tmp.SetUint64(uint64(c.Fee))
			tmp.Mul(tmp, new(big.Int).SetUint64(c.Weight))
			num.Add(num, tmp)
			den.Add(den, new(big.Int).SetUint64(c.Weight))
		}
		return uint32(num.Div(num, den).Uint64())
	}
}
