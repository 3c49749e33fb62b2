// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"fmt"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/fees"
	"github.com/luxfi/multihook/hooks"
	"github.com/luxfi/multihook/registry"
)

// PermissionedAdapter extends the base adapter with pool-creator
// management. The first registrant of a pool becomes its owner and may
// later add, remove, or replace hooks and retune the pool's fee
// configuration. Every hook entering a pool must be on the approval
// registry at that moment; later revocation does not evict it.
type PermissionedAdapter struct {
	*Adapter

	approved *registry.Approved
}

// NewPermissioned creates a pool-creator-managed adapter backed by the
// given approval registry
func NewPermissioned(self, governance common.Address, defaultFee uint32, approved *registry.Approved, logger log.Logger) (*PermissionedAdapter, error) {
	if approved == nil {
		return nil, fmt.Errorf("nil approval registry")
	}
	base, err := New(self, governance, defaultFee, logger)
	if err != nil {
		return nil, err
	}
	return &PermissionedAdapter{Adapter: base, approved: approved}, nil
}

// Approved exposes the backing approval registry
func (p *PermissionedAdapter) Approved() *registry.Approved {
	return p.approved
}

func (p *PermissionedAdapter) checkApproved(entries []hookEntry) error {
	for _, e := range entries {
		if !p.approved.IsApproved(e.addr) {
			return fmt.Errorf("%w: %s", hooks.ErrHookNotApproved, e.addr.Hex())
		}
	}
	return nil
}

// ownedPool returns the pool state if [caller] owns a registered pool
// [id]. Callers must hold p.mu.
func (p *PermissionedAdapter) ownedPool(id hooks.PoolID, caller common.Address) (*poolState, error) {
	ps := p.pools[id]
	if ps == nil || !ps.registered || ps.owner != caller {
		return nil, hooks.ErrNotPoolOwner
	}
	return ps, nil
}

// Register installs the hook set for a pool and records the caller as
// the pool owner. Unlike the immutable policy, the owner may register
// again later to replace the set wholesale.
func (p *PermissionedAdapter) Register(state contract.StateDB, caller common.Address, key hooks.PoolKey, hks []hooks.Hook, opts *RegisterOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := key.ID()
	ps := p.pools[id]
	if ps != nil && ps.registered && ps.owner != caller {
		return hooks.ErrNotPoolOwner
	}

	entries, err := buildEntries(hks)
	if err != nil {
		return err
	}
	if err := p.checkApproved(entries); err != nil {
		return err
	}

	fee := feeConfig{method: fees.MethodWeightedAverage}
	if ps != nil && ps.registered {
		fee = ps.fee
	}
	if err := applyRegisterOptions(&fee, opts); err != nil {
		return err
	}

	if ps == nil {
		ps = &poolState{}
		p.pools[id] = ps
	}
	ps.registered = true
	ps.entries = entries
	ps.fee = fee
	ps.owner = caller

	p.writeFeeConfig(state, id, fee)
	p.writePoolOwner(state, id, caller)

	p.log.Debug("registered pool hooks", "pool", fmt.Sprintf("%x", id), "owner", caller.Hex(), "hooks", len(entries))
	return nil
}

// AddHooks appends hooks to the end of the pool's execution order. Pool
// owner only; every hook must be approved and not already present.
func (p *PermissionedAdapter) AddHooks(state contract.StateDB, caller common.Address, key hooks.PoolKey, hks []hooks.Hook) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ps, err := p.ownedPool(key.ID(), caller)
	if err != nil {
		return err
	}

	entries, err := buildEntries(hks)
	if err != nil {
		return err
	}
	if err := p.checkApproved(entries); err != nil {
		return err
	}

	present := make(map[common.Address]bool, len(ps.entries))
	for _, e := range ps.entries {
		present[e.addr] = true
	}
	for _, e := range entries {
		if present[e.addr] {
			return fmt.Errorf("%w: %s", hooks.ErrHookAlreadyPresent, e.addr.Hex())
		}
		present[e.addr] = true
	}

	ps.entries = append(ps.entries, entries...)
	return nil
}

// RemoveHooks removes the given hook addresses from the pool. Pool owner
// only; each removal swaps the last entry into the vacated slot, so
// relative order of the remaining hooks is not preserved. Fails without
// effect if any address is absent.
func (p *PermissionedAdapter) RemoveHooks(state contract.StateDB, caller common.Address, key hooks.PoolKey, addrs []common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ps, err := p.ownedPool(key.ID(), caller)
	if err != nil {
		return err
	}

	entries := make([]hookEntry, len(ps.entries))
	copy(entries, ps.entries)
	for _, addr := range addrs {
		i := -1
		for j, e := range entries {
			if e.addr == addr {
				i = j
				break
			}
		}
		if i < 0 {
			return fmt.Errorf("%w: %s", hooks.ErrHookNotPresent, addr.Hex())
		}
		entries[i] = entries[len(entries)-1]
		entries = entries[:len(entries)-1]
	}
	ps.entries = entries
	return nil
}

// ReplaceHooks swaps the pool's hook set wholesale. Pool owner only; an
// empty replacement set is legal.
func (p *PermissionedAdapter) ReplaceHooks(state contract.StateDB, caller common.Address, key hooks.PoolKey, hks []hooks.Hook) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ps, err := p.ownedPool(key.ID(), caller)
	if err != nil {
		return err
	}

	entries, err := buildEntries(hks)
	if err != nil {
		return err
	}
	if err := p.checkApproved(entries); err != nil {
		return err
	}

	ps.entries = entries
	return nil
}

// SetPoolFee sets or clears the pool-specific fee override. Pool owner
// only; a fee of exactly zero clears the override.
func (p *PermissionedAdapter) SetPoolFee(state contract.StateDB, caller common.Address, key hooks.PoolKey, fee uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := key.ID()
	ps, err := p.ownedPool(id, caller)
	if err != nil {
		return err
	}
	if fee > fees.FeeMax {
		return fmt.Errorf("%w: pool fee %d", hooks.ErrInvalidFee, fee)
	}

	ps.fee.poolFee = fee
	ps.fee.poolFeeSet = fee != 0
	p.writeFeeConfig(state, id, ps.fee)
	return nil
}

// SetFeeMethod changes the pool's fee resolution method. Pool owner only.
func (p *PermissionedAdapter) SetFeeMethod(state contract.StateDB, caller common.Address, key hooks.PoolKey, method fees.Method) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := key.ID()
	ps, err := p.ownedPool(id, caller)
	if err != nil {
		return err
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %d", hooks.ErrInvalidFeeMethod, method)
	}

	ps.fee.method = method
	p.writeFeeConfig(state, id, ps.fee)
	return nil
}
