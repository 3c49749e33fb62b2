// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fees

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func contrib(fee uint32, weight uint64) Contribution {
	return Contribution{Fee: fee, Weight: weight, Valid: true}
}

func TestResolveWeightedAverage(t *testing.T) {
	cfg := Config{DefaultFee: 3000, Method: MethodWeightedAverage}

	// equal weights average evenly
	got := Resolve([]Contribution{contrib(2000, 1), contrib(4000, 1)}, cfg)
	require.Equal(t, uint32(3000), got)

	// 3:1 weighting pulls toward the heavier contribution
	got = Resolve([]Contribution{contrib(2000, 3), contrib(5000, 1)}, cfg)
	require.Equal(t, uint32(2750), got)

	// division floors
	got = Resolve([]Contribution{contrib(1000, 1), contrib(1001, 2)}, cfg)
	require.Equal(t, uint32(1000), got)
}

func TestResolveWeightedAverageLargeWeights(t *testing.T) {
	// fee*weight overflows uint64; the accumulator must not
	cfg := Config{DefaultFee: 3000, Method: MethodWeightedAverage}
	contribs := []Contribution{
		contrib(FeeMax, 1<<63),
		contrib(FeeMax, 1<<63),
	}
	require.Equal(t, FeeMax, Resolve(contribs, cfg))
}

func TestResolveMean(t *testing.T) {
	cfg := Config{DefaultFee: 3000, Method: MethodMean}

	// weights are ignored
	got := Resolve([]Contribution{contrib(2000, 99), contrib(4000, 1)}, cfg)
	require.Equal(t, uint32(3000), got)

	got = Resolve([]Contribution{contrib(1000, 1), contrib(2000, 1), contrib(4001, 1)}, cfg)
	require.Equal(t, uint32(2333), got)
}

func TestResolveMedian(t *testing.T) {
	cfg := Config{DefaultFee: 3000, Method: MethodMedian}

	// odd count picks the middle
	got := Resolve([]Contribution{
		contrib(5000, 1), contrib(1000, 1), contrib(3000, 1), contrib(2000, 1), contrib(4000, 1),
	}, cfg)
	require.Equal(t, uint32(3000), got)

	// even count floor-averages the two middles
	got = Resolve([]Contribution{
		contrib(4000, 1), contrib(1000, 1), contrib(3000, 1), contrib(2000, 1),
	}, cfg)
	require.Equal(t, uint32(2500), got)
}

func TestResolveOverrides(t *testing.T) {
	contribs := []Contribution{contrib(1500, 1), contrib(2500, 1), contrib(3500, 1)}

	require.Equal(t, uint32(1500), Resolve(contribs, Config{Method: MethodFirstOverride}))
	require.Equal(t, uint32(3500), Resolve(contribs, Config{Method: MethodLastOverride}))

	// overrides skip invalid leading/trailing contributions
	withInvalid := []Contribution{
		{Fee: 100, Weight: 1, Valid: false},
		contrib(2500, 1),
		{Fee: 9000, Weight: 0, Valid: true},
	}
	require.Equal(t, uint32(2500), Resolve(withInvalid, Config{Method: MethodFirstOverride}))
	require.Equal(t, uint32(2500), Resolve(withInvalid, Config{Method: MethodLastOverride}))
}

func TestResolveMinMax(t *testing.T) {
	contribs := []Contribution{contrib(3500, 1), contrib(1500, 1), contrib(2500, 1)}

	require.Equal(t, uint32(1500), Resolve(contribs, Config{Method: MethodMinFee}))
	require.Equal(t, uint32(3500), Resolve(contribs, Config{Method: MethodMaxFee}))
}

func TestResolveGovernanceOnly(t *testing.T) {
	contribs := []Contribution{contrib(1500, 1)}

	cfg := Config{DefaultFee: 3000, Method: MethodGovernanceOnly}
	require.Equal(t, uint32(3000), Resolve(contribs, cfg))

	cfg.GovernanceFee = 800
	cfg.GovernanceFeeSet = true
	require.Equal(t, uint32(800), Resolve(contribs, cfg))

	// pool-specific override wins over governance
	cfg.PoolFee = 500
	cfg.PoolFeeSet = true
	require.Equal(t, uint32(500), Resolve(contribs, cfg))
}

func TestResolveFiltering(t *testing.T) {
	cfg := Config{DefaultFee: 3000, Method: MethodWeightedAverage}

	// zero weight, out-of-range fee, and Valid=false are all excluded
	contribs := []Contribution{
		{Fee: 2000, Weight: 0, Valid: true},
		{Fee: 0, Weight: 1, Valid: true},
		{Fee: FeeMax + 1, Weight: 1, Valid: true},
		{Fee: 2000, Weight: 1, Valid: false},
	}
	require.Equal(t, uint32(3000), Resolve(contribs, cfg))

	// one survivor resolves to itself
	contribs = append(contribs, contrib(4200, 7))
	require.Equal(t, uint32(4200), Resolve(contribs, cfg))
}

func TestResolveNoContributions(t *testing.T) {
	require.Equal(t, uint32(3000), Resolve(nil, Config{DefaultFee: 3000, Method: MethodMedian}))
}

func TestFallbackChain(t *testing.T) {
	cfg := Config{DefaultFee: 3000}
	require.Equal(t, uint32(3000), cfg.Fallback())

	cfg.GovernanceFee = 700
	cfg.GovernanceFeeSet = true
	require.Equal(t, uint32(700), cfg.Fallback())

	cfg.PoolFee = 450
	cfg.PoolFeeSet = true
	require.Equal(t, uint32(450), cfg.Fallback())

	// a pool fee of zero is a real override once set
	cfg.PoolFee = 0
	require.Equal(t, uint32(0), cfg.Fallback())
}

func BenchmarkResolveWeightedAverage(b *testing.B) {
	cfg := Config{DefaultFee: 3000, Method: MethodWeightedAverage}
	contribs := make([]Contribution, 16)
	for i := range contribs {
		contribs[i] = contrib(uint32(1000+i*100), uint64(i+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(contribs, cfg)
	}
}

func BenchmarkResolveMedian(b *testing.B) {
	cfg := Config{DefaultFee: 3000, Method: MethodMedian}
	contribs := make([]Contribution, 16)
	for i := range contribs {
		contribs[i] = contrib(uint32(5000-i*100), 1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(contribs, cfg)
	}
}

func TestMethodValid(t *testing.T) {
	for m := MethodWeightedAverage; m <= MethodGovernanceOnly; m++ {
		require.True(t, m.Valid(), m.String())
	}
	require.False(t, Method(MethodGovernanceOnly+1).Valid())
}
