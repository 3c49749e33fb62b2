// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry maintains the adapter-wide allowlist of hook identities
// that may be registered into any pool. Only the registry owner mutates
// the set; reassigning the owner role is reserved to the governance
// address.
package registry

import (
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/hooks"
)

// Storage key prefixes
var (
	approvedPrefix      = []byte("aprv")
	registryOwnerPrefix = []byte("rown")
)

func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}

// Approved is the allowlist of hook addresses permitted for registration
type Approved struct {
	mu sync.RWMutex

	// self is the contract address storage slots are written under
	self common.Address

	// governance may reassign the registry owner
	governance common.Address

	owner common.Address
	set   map[common.Address]bool
}

// NewApproved creates an allowlist owned by [owner], stored under [self]
func NewApproved(self, governance, owner common.Address) *Approved {
	return &Approved{
		self:       self,
		governance: governance,
		owner:      owner,
		set:        make(map[common.Address]bool),
	}
}

// Owner returns the current registry owner
func (r *Approved) Owner() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// SetOwner reassigns the registry owner. Governance only.
func (r *Approved) SetOwner(state contract.StateDB, caller, newOwner common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.governance {
		return hooks.ErrUnauthorized
	}
	r.owner = newOwner
	state.SetState(r.self, makeStorageKey(registryOwnerPrefix, nil), common.BytesToHash(newOwner.Bytes()))
	return nil
}

// IsApproved reports whether [hook] is in the allowlist
func (r *Approved) IsApproved(hook common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.set[hook]
}

// Approve adds a single hook address. Owner only.
func (r *Approved) Approve(state contract.StateDB, caller, hook common.Address) error {
	return r.ApproveBatch(state, caller, []common.Address{hook})
}

// Revoke removes a single hook address. Owner only.
func (r *Approved) Revoke(state contract.StateDB, caller, hook common.Address) error {
	return r.RevokeBatch(state, caller, []common.Address{hook})
}

// ApproveBatch adds every given hook address. Owner only. A nil/zero hook
// address is rejected; already-approved entries are idempotent.
func (r *Approved) ApproveBatch(state contract.StateDB, caller common.Address, addrs []common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner {
		return hooks.ErrUnauthorized
	}
	for _, addr := range addrs {
		if addr == (common.Address{}) {
			return hooks.ErrNilHook
		}
	}
	for _, addr := range addrs {
		r.set[addr] = true
		state.SetState(r.self, makeStorageKey(approvedPrefix, addr.Bytes()), common.Hash{31: 1})
	}
	return nil
}

// RevokeBatch removes every given hook address. Owner only. Revoking an
// absent entry is idempotent; pools that already hold a revoked hook keep
// it until the pool owner removes it.
func (r *Approved) RevokeBatch(state contract.StateDB, caller common.Address, addrs []common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner {
		return hooks.ErrUnauthorized
	}
	for _, addr := range addrs {
		delete(r.set, addr)
		state.SetState(r.self, makeStorageKey(approvedPrefix, addr.Bytes()), common.Hash{})
	}
	return nil
}

// Load rebuilds approval state for [addrs] from storage, pairing a
// restarted process with previously committed approvals
func (r *Approved) Load(state contract.StateDB, addrs []common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v := state.GetState(r.self, makeStorageKey(registryOwnerPrefix, nil)); v != (common.Hash{}) {
		r.owner = common.BytesToAddress(v.Bytes())
	}
	for _, addr := range addrs {
		if state.GetState(r.self, makeStorageKey(approvedPrefix, addr.Bytes())) != (common.Hash{}) {
			r.set[addr] = true
		}
	}
}
