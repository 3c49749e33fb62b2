// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package adapter implements a composite hook that stands between a pool
// manager and any number of sub-hooks. The pool manager sees exactly one
// hook per pool; the adapter fans every lifecycle callback out to the
// registered sub-hooks in order, aggregates their deltas, and resolves
// their fee preferences into a single value.
//
// Two access policies exist: the base Adapter registers a pool's hook set
// exactly once and freezes its fee configuration; PermissionedAdapter
// lets the pool creator manage the set afterwards, gated on an
// adapter-wide approval registry.
package adapter

import (
	"fmt"
	"sync"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/fees"
	"github.com/luxfi/multihook/hooks"
)

// feeConfig is the per-pool slice of the fee state. Global values
// (default and governance fees) live on the Adapter and are merged in at
// resolve time.
type feeConfig struct {
	poolFee    uint32
	poolFeeSet bool
	method     fees.Method
}

// hookEntry pairs a sub-hook with its capability bitmap, cached once at
// registration and trusted thereafter.
type hookEntry struct {
	hook  hooks.Hook
	addr  common.Address
	flags hooks.Flags
}

// swapRecord is one sub-hook's result from a beforeSwap fan-out, held
// only until the matching afterSwap consumes it.
type swapRecord struct {
	addr    common.Address
	delta   hooks.Delta
	contrib fees.Contribution
}

type poolState struct {
	registered bool
	entries    []hookEntry
	fee        feeConfig

	// owner is the pool creator (permissioned policy only); zero means
	// unclaimed
	owner common.Address

	// pending correlates a beforeSwap fan-out with its matching
	// afterSwap; overwritten by each beforeSwap, cleared by afterSwap
	pending []swapRecord
}

// Adapter is the immutable-policy composite hook. All state is keyed by
// pool ID; fee configuration and ownership write through to the StateDB
// so a restarted process can re-pair with committed state.
type Adapter struct {
	mu sync.Mutex

	// locked prevents a sub-hook from re-entering any lifecycle
	// entry point while a fan-out is in flight
	locked bool

	// self is the contract address storage slots are written under
	self common.Address

	// governance is the global policy owner
	governance common.Address

	// defaultFee is fixed at construction
	defaultFee uint32

	governanceFee    uint32
	governanceFeeSet bool

	pools map[hooks.PoolID]*poolState

	log log.Logger
}

// New creates an immutable-policy adapter. defaultFee must be at most
// fees.FeeMax.
func New(self, governance common.Address, defaultFee uint32, logger log.Logger) (*Adapter, error) {
	if defaultFee > fees.FeeMax {
		return nil, fmt.Errorf("%w: default fee %d", hooks.ErrInvalidFee, defaultFee)
	}
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Adapter{
		self:       self,
		governance: governance,
		defaultFee: defaultFee,
		pools:      make(map[hooks.PoolID]*poolState),
		log:        logger,
	}, nil
}

// RegisterOptions optionally sets the fee method and pool-specific fee
// atomically with registration.
type RegisterOptions struct {
	Method     fees.Method
	SetMethod  bool
	PoolFee    uint32
	SetPoolFee bool
}

// buildEntries validates the hook set and caches each hook's capability
// bitmap. A nil hook or a zero address is rejected.
func buildEntries(hks []hooks.Hook) ([]hookEntry, error) {
	entries := make([]hookEntry, 0, len(hks))
	for _, hk := range hks {
		if hk == nil {
			return nil, hooks.ErrNilHook
		}
		addr := hk.Address()
		if addr == (common.Address{}) {
			return nil, hooks.ErrNilHook
		}
		entries = append(entries, hookEntry{
			hook:  hk,
			addr:  addr,
			flags: hooks.EncodePermissions(hk.Permissions()),
		})
	}
	return entries, nil
}

func applyRegisterOptions(fee *feeConfig, opts *RegisterOptions) error {
	if opts == nil {
		return nil
	}
	if opts.SetMethod {
		if !opts.Method.Valid() {
			return fmt.Errorf("%w: %d", hooks.ErrInvalidFeeMethod, opts.Method)
		}
		fee.method = opts.Method
	}
	if opts.SetPoolFee {
		if opts.PoolFee > fees.FeeMax {
			return fmt.Errorf("%w: pool fee %d", hooks.ErrInvalidFee, opts.PoolFee)
		}
		fee.poolFee = opts.PoolFee
		fee.poolFeeSet = true
	}
	return nil
}

// Register installs the hook set for a pool. It succeeds exactly once per
// pool; registering an empty set is legal and makes every lifecycle event
// a no-op for that pool. Fee method and pool fee may be set atomically
// via opts; afterwards the configuration is frozen.
func (a *Adapter) Register(state contract.StateDB, caller common.Address, key hooks.PoolKey, hks []hooks.Hook, opts *RegisterOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := key.ID()
	if ps := a.pools[id]; ps != nil && ps.registered {
		return fmt.Errorf("%w: pool %x", hooks.ErrAlreadyRegistered, id)
	}

	entries, err := buildEntries(hks)
	if err != nil {
		return err
	}

	fee := feeConfig{method: fees.MethodWeightedAverage}
	if err := applyRegisterOptions(&fee, opts); err != nil {
		return err
	}

	a.pools[id] = &poolState{
		registered: true,
		entries:    entries,
		fee:        fee,
	}
	a.writeFeeConfig(state, id, fee)

	a.log.Debug("registered pool hooks", "pool", fmt.Sprintf("%x", id), "caller", caller.Hex(), "hooks", len(entries))
	return nil
}

// SetPoolFee always fails under the immutable policy
func (a *Adapter) SetPoolFee(state contract.StateDB, caller common.Address, key hooks.PoolKey, fee uint32) error {
	return hooks.ErrImmutableConfig
}

// SetFeeMethod always fails under the immutable policy
func (a *Adapter) SetFeeMethod(state contract.StateDB, caller common.Address, key hooks.PoolKey, method fees.Method) error {
	return hooks.ErrImmutableConfig
}

// SetGovernanceFee updates the adapter-wide governance fee. Governance
// only. A fee of exactly zero clears it.
func (a *Adapter) SetGovernanceFee(state contract.StateDB, caller common.Address, fee uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if caller != a.governance {
		return hooks.ErrUnauthorized
	}
	if fee > fees.FeeMax {
		return fmt.Errorf("%w: governance fee %d", hooks.ErrInvalidFee, fee)
	}
	a.governanceFee = fee
	a.governanceFeeSet = fee != 0
	a.writeGovernanceFee(state, fee)
	return nil
}

// Governance returns the global policy owner
func (a *Adapter) Governance() common.Address {
	return a.governance
}

// DefaultFee returns the construction-time default fee
func (a *Adapter) DefaultFee() uint32 {
	return a.defaultFee
}

// GovernanceFee returns the governance fee and whether it is set
func (a *Adapter) GovernanceFee() (uint32, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.governanceFee, a.governanceFeeSet
}

// FeeConfig assembles the effective fee configuration for a pool,
// merging adapter-wide state with the pool's overrides at call time.
func (a *Adapter) FeeConfig(key hooks.PoolKey) fees.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.feeConfigLocked(key.ID())
}

func (a *Adapter) feeConfigLocked(id hooks.PoolID) fees.Config {
	cfg := fees.Config{
		DefaultFee:       a.defaultFee,
		GovernanceFee:    a.governanceFee,
		GovernanceFeeSet: a.governanceFeeSet,
		Method:           fees.MethodWeightedAverage,
	}
	if ps := a.pools[id]; ps != nil {
		cfg.PoolFee = ps.fee.poolFee
		cfg.PoolFeeSet = ps.fee.poolFeeSet
		cfg.Method = ps.fee.method
	}
	return cfg
}

// RegisteredHooks returns the addresses of the pool's hook set in
// execution order
func (a *Adapter) RegisteredHooks(key hooks.PoolKey) []common.Address {
	a.mu.Lock()
	defer a.mu.Unlock()

	ps := a.pools[key.ID()]
	if ps == nil {
		return nil
	}
	addrs := make([]common.Address, len(ps.entries))
	for i, e := range ps.entries {
		addrs[i] = e.addr
	}
	return addrs
}

// PoolOwner returns the recorded pool creator; zero when unclaimed or
// under the immutable policy
func (a *Adapter) PoolOwner(key hooks.PoolKey) common.Address {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ps := a.pools[key.ID()]; ps != nil {
		return ps.owner
	}
	return common.Address{}
}

// eligible snapshots the pool's entries that declare [flag]
func (a *Adapter) eligible(id hooks.PoolID, flag hooks.Flags) []hookEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	ps := a.pools[id]
	if ps == nil {
		return nil
	}
	out := make([]hookEntry, 0, len(ps.entries))
	for _, e := range ps.entries {
		if e.flags&flag != 0 {
			out = append(out, e)
		}
	}
	return out
}

// beginDispatch arms the non-reentrancy guard
func (a *Adapter) beginDispatch() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locked {
		return hooks.ErrReentrant
	}
	a.locked = true
	return nil
}

func (a *Adapter) endDispatch() {
	a.mu.Lock()
	a.locked = false
	a.mu.Unlock()
}
