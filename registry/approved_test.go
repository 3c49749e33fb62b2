// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/hooks"
)

var (
	self       = common.HexToAddress("0x0000000000000000000000000000000000009013")
	governance = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	owner      = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	stranger   = common.HexToAddress("0x00000000000000000000000000000000000000dd")

	hookA = common.HexToAddress("0x9000000000000000000000000000000000000001")
	hookB = common.HexToAddress("0x9000000000000000000000000000000000000002")
)

func TestApproveRevoke(t *testing.T) {
	r := NewApproved(self, governance, owner)
	state := contract.NewMockStateDB()

	require.False(t, r.IsApproved(hookA))

	require.NoError(t, r.Approve(state, owner, hookA))
	require.True(t, r.IsApproved(hookA))
	require.False(t, r.IsApproved(hookB))

	// re-approving is idempotent
	require.NoError(t, r.Approve(state, owner, hookA))

	require.NoError(t, r.Revoke(state, owner, hookA))
	require.False(t, r.IsApproved(hookA))

	// revoking an absent entry is idempotent
	require.NoError(t, r.Revoke(state, owner, hookB))
}

func TestApproveAuthorization(t *testing.T) {
	r := NewApproved(self, governance, owner)
	state := contract.NewMockStateDB()

	require.ErrorIs(t, r.Approve(state, stranger, hookA), hooks.ErrUnauthorized)
	require.ErrorIs(t, r.Revoke(state, governance, hookA), hooks.ErrUnauthorized)

	require.ErrorIs(t, r.Approve(state, owner, common.Address{}), hooks.ErrNilHook)
}

func TestApproveBatchAtomicValidation(t *testing.T) {
	r := NewApproved(self, governance, owner)
	state := contract.NewMockStateDB()

	// a zero address anywhere in the batch rejects the whole batch
	err := r.ApproveBatch(state, owner, []common.Address{hookA, {}, hookB})
	require.ErrorIs(t, err, hooks.ErrNilHook)
	require.False(t, r.IsApproved(hookA))
	require.False(t, r.IsApproved(hookB))

	require.NoError(t, r.ApproveBatch(state, owner, []common.Address{hookA, hookB}))
	require.True(t, r.IsApproved(hookA))
	require.True(t, r.IsApproved(hookB))
}

func TestSetOwner(t *testing.T) {
	r := NewApproved(self, governance, owner)
	state := contract.NewMockStateDB()

	require.ErrorIs(t, r.SetOwner(state, owner, stranger), hooks.ErrUnauthorized)
	require.Equal(t, owner, r.Owner())

	require.NoError(t, r.SetOwner(state, governance, stranger))
	require.Equal(t, stranger, r.Owner())

	// the old owner lost the role
	require.ErrorIs(t, r.Approve(state, owner, hookA), hooks.ErrUnauthorized)
	require.NoError(t, r.Approve(state, stranger, hookA))
}

func TestLoadFromCommittedState(t *testing.T) {
	state := contract.NewMockStateDB()

	r1 := NewApproved(self, governance, owner)
	require.NoError(t, r1.ApproveBatch(state, owner, []common.Address{hookA, hookB}))
	require.NoError(t, r1.Revoke(state, owner, hookB))
	require.NoError(t, r1.SetOwner(state, governance, stranger))

	r2 := NewApproved(self, governance, owner)
	r2.Load(state, []common.Address{hookA, hookB})

	require.True(t, r2.IsApproved(hookA))
	require.False(t, r2.IsApproved(hookB))
	require.Equal(t, stranger, r2.Owner())
}
