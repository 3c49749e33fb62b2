// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePermissions(t *testing.T) {
	tests := []struct {
		name  string
		perms Permissions
	}{
		{
			name:  "no permissions",
			perms: Permissions{},
		},
		{
			name:  "beforeSwap only",
			perms: Permissions{BeforeSwap: true},
		},
		{
			name:  "swap pair with delta",
			perms: Permissions{BeforeSwap: true, AfterSwap: true, ReturnsDelta: true},
		},
		{
			name:  "fee contributor",
			perms: Permissions{BeforeSwap: true, ReturnsFee: true},
		},
		{
			name: "everything",
			perms: Permissions{
				BeforeInitialize:      true,
				AfterInitialize:       true,
				BeforeAddLiquidity:    true,
				AfterAddLiquidity:     true,
				BeforeRemoveLiquidity: true,
				AfterRemoveLiquidity:  true,
				BeforeSwap:            true,
				AfterSwap:             true,
				BeforeDonate:          true,
				AfterDonate:           true,
				ReturnsDelta:          true,
				ReturnsFee:            true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.perms, DecodePermissions(EncodePermissions(tt.perms)))
		})
	}
}

func TestFlagBits(t *testing.T) {
	// each permission maps to a distinct bit
	seen := map[Flags]bool{}
	all := []Flags{
		FlagBeforeInitialize, FlagAfterInitialize,
		FlagBeforeAddLiquidity, FlagAfterAddLiquidity,
		FlagBeforeRemoveLiquidity, FlagAfterRemoveLiquidity,
		FlagBeforeSwap, FlagAfterSwap,
		FlagBeforeDonate, FlagAfterDonate,
		FlagReturnsDelta, FlagReturnsFee,
	}
	for _, f := range all {
		require.NotZero(t, f)
		require.False(t, seen[f])
		seen[f] = true
	}
}

func TestPoolKeyID(t *testing.T) {
	key := PoolKey{
		Currency0:   Currency{Address: common.HexToAddress("0x1000000000000000000000000000000000000001")},
		Currency1:   Currency{Address: common.HexToAddress("0x2000000000000000000000000000000000000002")},
		Fee:         3000,
		TickSpacing: 60,
		Hooks:       common.HexToAddress("0x0000000000000000000000000000000000009013"),
	}

	// deterministic
	require.Equal(t, key.ID(), key.ID())

	// every field feeds the ID
	k2 := key
	k2.Fee = 3001
	require.NotEqual(t, key.ID(), k2.ID())

	k3 := key
	k3.TickSpacing = 10
	require.NotEqual(t, key.ID(), k3.ID())

	k4 := key
	k4.Hooks = common.Address{}
	require.NotEqual(t, key.ID(), k4.ID())
}

func TestPoolKeyBytesRoundTrip(t *testing.T) {
	key := PoolKey{
		Currency0:   NativeCurrency,
		Currency1:   Currency{Address: common.HexToAddress("0x2000000000000000000000000000000000000002")},
		Fee:         500,
		TickSpacing: -10,
		Hooks:       common.HexToAddress("0x0000000000000000000000000000000000009013"),
	}

	got, err := PoolKeyFromBytes(key.ToBytes())
	require.NoError(t, err)
	require.Equal(t, key, got)

	_, err = PoolKeyFromBytes(make([]byte, 65))
	require.Error(t, err)
}

func TestDeltaArithmetic(t *testing.T) {
	a := NewDelta(big.NewInt(100), big.NewInt(-50))
	b := NewDelta(big.NewInt(-100), big.NewInt(25))

	sum := a.Add(b)
	require.Zero(t, sum.Amount0.Sign())
	require.Equal(t, int64(-25), sum.Amount1.Int64())

	require.True(t, a.Add(a.Negate()).IsZero())
	require.True(t, ZeroDelta().IsZero())
	require.False(t, a.IsZero())
}
