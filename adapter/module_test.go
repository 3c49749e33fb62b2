// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/fees"
	"github.com/luxfi/multihook/hooks"
	"github.com/luxfi/multihook/registry"
)

func newAccessibleState() *contract.MockAccessibleState {
	return &contract.MockAccessibleState{StateDB: contract.NewMockStateDB()}
}

func sel(selector uint32, parts ...[]byte) []byte {
	input := make([]byte, 4)
	binary.BigEndian.PutUint32(input, selector)
	for _, p := range parts {
		input = append(input, p...)
	}
	return input
}

func encodeSwapParams(p hooks.SwapParams) []byte {
	out := make([]byte, swapParamsSize)
	if p.ZeroForOne {
		out[0] = 1
	}
	putInt256(out[1:33], p.AmountSpecified)
	p.SqrtPriceLimitX96.FillBytes(out[33:65])
	return out
}

func TestInt256RoundTrip(t *testing.T) {
	for _, v := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(1 << 40),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)),
	} {
		var buf [32]byte
		putInt256(buf[:], v)
		require.Zero(t, getInt256(buf[:]).Cmp(v), v.String())
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	a, _ := newTestAdapter(t)
	c := NewContract(a)
	state := newAccessibleState()

	_, _, err := c.Run(state, testSender, testSelf, []byte{0x01}, 100_000, false)
	require.Error(t, err)

	_, _, err = c.Run(state, testSender, testSelf, sel(0xffffffff), 100_000, false)
	require.ErrorContains(t, err, "unknown method selector")

	// truncated pool key
	_, _, err = c.Run(state, testSender, testSelf, sel(SelectorGetHooks, make([]byte, 10)), 100_000, false)
	require.ErrorContains(t, err, "input too short")
}

func TestRunOutOfGas(t *testing.T) {
	a, _ := newTestAdapter(t)
	c := NewContract(a)
	state := newAccessibleState()
	key := testPoolKey(1)

	input := sel(SelectorBeforeSwap, key.ToBytes(), encodeSwapParams(swapParams()))
	_, remaining, err := c.Run(state, testSender, testSelf, input, GasSwapFanout-1, false)
	require.ErrorContains(t, err, "out of gas")
	require.Zero(t, remaining)
}

func TestRunBeforeSwap(t *testing.T) {
	a, err := New(testSelf, testGovernance, 3000, nil)
	require.NoError(t, err)
	c := NewContract(a)
	state := newAccessibleState()
	key := testPoolKey(1)

	h1 := newTestHook("h1", 1, hooks.Permissions{BeforeSwap: true, ReturnsDelta: true, ReturnsFee: true}, nil)
	h1.swapDelta = delta(-500, 200)
	h1.contrib = fees.Contribution{Fee: 1200, Weight: 1, Valid: true}
	require.NoError(t, a.Register(state.GetStateDB(), testSender, key, []hooks.Hook{h1}, nil))

	input := sel(SelectorBeforeSwap, key.ToBytes(), encodeSwapParams(swapParams()))
	ret, remaining, err := c.Run(state, testSender, testSelf, input, 100_000, false)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000-GasSwapFanout), remaining)
	require.Len(t, ret, deltaSize+4)

	got := decodeDelta(ret[:deltaSize])
	require.Equal(t, int64(-500), got.Amount0.Int64())
	require.Equal(t, int64(200), got.Amount1.Int64())
	require.Equal(t, uint32(1200), binary.BigEndian.Uint32(ret[deltaSize:]))
}

func TestRunSwapPairViaWire(t *testing.T) {
	a, err := New(testSelf, testGovernance, 3000, nil)
	require.NoError(t, err)
	c := NewContract(a)
	state := newAccessibleState()
	key := testPoolKey(1)

	h1 := newTestHook("h1", 1, hooks.Permissions{BeforeSwap: true, AfterSwap: true, ReturnsDelta: true}, nil)
	h1.swapDelta = delta(33, -33)
	h1.afterDelta = delta(5, 5)
	require.NoError(t, a.Register(state.GetStateDB(), testSender, key, []hooks.Hook{h1}, nil))

	before := sel(SelectorBeforeSwap, key.ToBytes(), encodeSwapParams(swapParams()))
	_, _, err = c.Run(state, testSender, testSelf, before, 100_000, false)
	require.NoError(t, err)

	after := sel(SelectorAfterSwap, key.ToBytes(), encodeSwapParams(swapParams()), encodeDelta(delta(-1000, 1000)))
	ret, _, err := c.Run(state, testSender, testSelf, after, 100_000, false)
	require.NoError(t, err)

	// the hook saw its own pre-swap delta back
	require.Equal(t, int64(33), h1.gotBefore.Amount0.Int64())
	got := decodeDelta(ret)
	require.Equal(t, int64(5), got.Amount0.Int64())
}

func TestRunSwapReadOnlyRejected(t *testing.T) {
	a, _ := newTestAdapter(t)
	c := NewContract(a)
	state := newAccessibleState()
	key := testPoolKey(1)

	input := sel(SelectorBeforeSwap, key.ToBytes(), encodeSwapParams(swapParams()))
	_, _, err := c.Run(state, testSender, testSelf, input, 100_000, true)
	require.ErrorContains(t, err, "read-only")
}

func TestRunGovernanceFeeAndQuery(t *testing.T) {
	a, _ := newTestAdapter(t)
	c := NewContract(a)
	state := newAccessibleState()
	key := testPoolKey(1)

	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], 750)

	// non-governance caller is refused
	_, _, err := c.Run(state, testSender, testSelf, sel(SelectorSetGovernanceFee, feeBytes[:]), 100_000, false)
	require.ErrorIs(t, err, hooks.ErrUnauthorized)

	_, _, err = c.Run(state, testGovernance, testSelf, sel(SelectorSetGovernanceFee, feeBytes[:]), 100_000, false)
	require.NoError(t, err)

	ret, _, err := c.Run(state, testSender, testSelf, sel(SelectorGetFeeConfig, key.ToBytes()), 100_000, true)
	require.NoError(t, err)
	require.Len(t, ret, 15)
	require.Equal(t, uint32(3000), binary.BigEndian.Uint32(ret[0:4]))  // default
	require.Equal(t, uint32(750), binary.BigEndian.Uint32(ret[4:8]))   // governance
	require.Equal(t, byte(1), ret[8])                                  // governance set
	require.Equal(t, byte(fees.MethodWeightedAverage), ret[14])
}

func TestRunGetHooksAndOwner(t *testing.T) {
	approved := registry.NewApproved(testSelf, testGovernance, testRegistryOwner)
	p, err := NewPermissioned(testSelf, testGovernance, 3000, approved, nil)
	require.NoError(t, err)
	c := NewPermissionedContract(p)
	state := newAccessibleState()
	key := testPoolKey(1)

	h1 := newTestHook("h1", 1, allEvents(), nil)
	require.NoError(t, approved.Approve(state.GetStateDB(), testRegistryOwner, h1.addr))
	require.NoError(t, p.Register(state.GetStateDB(), testSender, key, []hooks.Hook{h1}, nil))

	ret, _, err := c.Run(state, testSender, testSelf, sel(SelectorGetHooks, key.ToBytes()), 100_000, true)
	require.NoError(t, err)
	require.Equal(t, uint16(1), binary.BigEndian.Uint16(ret[0:2]))
	require.Equal(t, h1.addr, common.BytesToAddress(ret[2:22]))

	ret, _, err = c.Run(state, testSender, testSelf, sel(SelectorGetPoolOwner, key.ToBytes()), 100_000, true)
	require.NoError(t, err)
	require.Equal(t, testSender, common.BytesToAddress(ret))
}

func TestRunSetPoolFeePolicySplit(t *testing.T) {
	state := newAccessibleState()
	key := testPoolKey(1)

	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], 450)
	input := sel(SelectorSetPoolFee, key.ToBytes(), feeBytes[:])

	// immutable policy refuses
	a, _ := newTestAdapter(t)
	require.NoError(t, a.Register(state.GetStateDB(), testSender, key, nil, nil))
	_, _, err := NewContract(a).Run(state, testSender, testSelf, input, 100_000, false)
	require.ErrorIs(t, err, hooks.ErrImmutableConfig)

	// permissioned policy routes to the pool owner path
	approved := registry.NewApproved(testSelf, testGovernance, testRegistryOwner)
	p, err := NewPermissioned(testSelf, testGovernance, 3000, approved, nil)
	require.NoError(t, err)
	require.NoError(t, p.Register(state.GetStateDB(), testSender, key, nil, nil))
	_, _, err = NewPermissionedContract(p).Run(state, testSender, testSelf, input, 100_000, false)
	require.NoError(t, err)
	require.Equal(t, uint32(450), p.FeeConfig(key).PoolFee)
}

func TestRequiredGas(t *testing.T) {
	a, _ := newTestAdapter(t)
	c := NewContract(a)

	require.Equal(t, GasSwapFanout, c.RequiredGas(sel(SelectorBeforeSwap)))
	require.Equal(t, GasFeeUpdate, c.RequiredGas(sel(SelectorSetPoolFee)))
	require.Equal(t, GasQuery, c.RequiredGas(sel(SelectorGetFeeConfig)))
	require.Equal(t, GasHookFanout, c.RequiredGas(sel(SelectorBeforeDonate)))
}

func TestConfigVerifyAndEqual(t *testing.T) {
	cfg := &Config{DefaultFee: 3000, Governance: testGovernance}
	require.NoError(t, cfg.Verify(nil))

	bad := &Config{DefaultFee: fees.FeeMax + 1}
	require.Error(t, bad.Verify(nil))

	perm := &Config{DefaultFee: 3000, Permissioned: true}
	require.Error(t, perm.Verify(nil)) // missing registry owner
	perm.RegistryOwner = testRegistryOwner
	require.NoError(t, perm.Verify(nil))

	require.True(t, cfg.Equal(&Config{DefaultFee: 3000, Governance: testGovernance}))
	require.False(t, cfg.Equal(perm))
	require.False(t, cfg.Equal(nil))
	require.Equal(t, ConfigKey, cfg.Key())
}
