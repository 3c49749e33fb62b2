// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/multihook/fees"
	"github.com/luxfi/multihook/hooks"
)

// Fan-out contract shared by every entry point below: sub-hooks run
// strictly in registration order, only hooks whose capability bitmap
// declares the event are invoked, and the first failing or
// mis-acknowledging hook aborts the whole callback.

func hookFailure(addr common.Address, err error) error {
	return fmt.Errorf("%w: hook %s: %v", hooks.ErrHookCallFailed, addr.Hex(), err)
}

func badAck(addr common.Address, got hooks.Ack) error {
	return fmt.Errorf("%w: hook %s returned %x", hooks.ErrInvalidHookResponse, addr.Hex(), got)
}

// BeforeInitialize fans the pre-initialize event out to the pool's
// eligible sub-hooks
func (a *Adapter) BeforeInitialize(sender common.Address, key hooks.PoolKey, sqrtPriceX96 *big.Int, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagBeforeInitialize) {
		ack, err := e.hook.BeforeInitialize(sender, key, sqrtPriceX96, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckBeforeInitialize {
			return badAck(e.addr, ack)
		}
	}
	return nil
}

// AfterInitialize fans the post-initialize event out to the pool's
// eligible sub-hooks
func (a *Adapter) AfterInitialize(sender common.Address, key hooks.PoolKey, sqrtPriceX96 *big.Int, tick int32, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagAfterInitialize) {
		ack, err := e.hook.AfterInitialize(sender, key, sqrtPriceX96, tick, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckAfterInitialize {
			return badAck(e.addr, ack)
		}
	}
	return nil
}

// BeforeAddLiquidity fans the pre-add-liquidity event out to the pool's
// eligible sub-hooks
func (a *Adapter) BeforeAddLiquidity(sender common.Address, key hooks.PoolKey, params hooks.ModifyLiquidityParams, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagBeforeAddLiquidity) {
		ack, err := e.hook.BeforeAddLiquidity(sender, key, params, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckBeforeAddLiquidity {
			return badAck(e.addr, ack)
		}
	}
	return nil
}

// AfterAddLiquidity fans the post-add-liquidity event out and returns
// the aggregate of the deltas contributed by delta-returning sub-hooks
func (a *Adapter) AfterAddLiquidity(sender common.Address, key hooks.PoolKey, params hooks.ModifyLiquidityParams, delta hooks.Delta, hookData []byte) (hooks.Delta, error) {
	if err := a.beginDispatch(); err != nil {
		return hooks.ZeroDelta(), err
	}
	defer a.endDispatch()

	var contributed []hooks.Delta
	for _, e := range a.eligible(key.ID(), hooks.FlagAfterAddLiquidity) {
		ack, hd, err := e.hook.AfterAddLiquidity(sender, key, params, delta, hookData)
		if err != nil {
			return hooks.ZeroDelta(), hookFailure(e.addr, err)
		}
		if ack != hooks.AckAfterAddLiquidity {
			return hooks.ZeroDelta(), badAck(e.addr, ack)
		}
		if e.flags&hooks.FlagReturnsDelta != 0 {
			contributed = append(contributed, hd)
		}
	}
	return sumDeltas(contributed), nil
}

// BeforeRemoveLiquidity fans the pre-remove-liquidity event out to the
// pool's eligible sub-hooks
func (a *Adapter) BeforeRemoveLiquidity(sender common.Address, key hooks.PoolKey, params hooks.ModifyLiquidityParams, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagBeforeRemoveLiquidity) {
		ack, err := e.hook.BeforeRemoveLiquidity(sender, key, params, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckBeforeRemoveLiquidity {
			return badAck(e.addr, ack)
		}
	}
	return nil
}

// AfterRemoveLiquidity fans the post-remove-liquidity event out and
// returns the aggregate of the deltas contributed by delta-returning
// sub-hooks
func (a *Adapter) AfterRemoveLiquidity(sender common.Address, key hooks.PoolKey, params hooks.ModifyLiquidityParams, delta hooks.Delta, hookData []byte) (hooks.Delta, error) {
	if err := a.beginDispatch(); err != nil {
		return hooks.ZeroDelta(), err
	}
	defer a.endDispatch()

	var contributed []hooks.Delta
	for _, e := range a.eligible(key.ID(), hooks.FlagAfterRemoveLiquidity) {
		ack, hd, err := e.hook.AfterRemoveLiquidity(sender, key, params, delta, hookData)
		if err != nil {
			return hooks.ZeroDelta(), hookFailure(e.addr, err)
		}
		if ack != hooks.AckAfterRemoveLiquidity {
			return hooks.ZeroDelta(), badAck(e.addr, ack)
		}
		if e.flags&hooks.FlagReturnsDelta != 0 {
			contributed = append(contributed, hd)
		}
	}
	return sumDeltas(contributed), nil
}

// BeforeSwap fans the pre-swap event out, aggregates the deltas of
// delta-returning sub-hooks, resolves the fee contributions of
// fee-returning sub-hooks against the pool's fee configuration, and
// records each sub-hook's result for the matching AfterSwap. With no
// eligible sub-hooks it short-circuits to a zero delta and fee zero,
// meaning no fee change.
func (a *Adapter) BeforeSwap(sender common.Address, key hooks.PoolKey, params hooks.SwapParams, hookData []byte) (hooks.Delta, uint32, error) {
	if err := a.beginDispatch(); err != nil {
		return hooks.ZeroDelta(), 0, err
	}
	defer a.endDispatch()

	id := key.ID()
	elig := a.eligible(id, hooks.FlagBeforeSwap)
	if len(elig) == 0 {
		return hooks.ZeroDelta(), 0, nil
	}

	a.mu.Lock()
	if ps := a.pools[id]; ps != nil && len(ps.pending) > 0 {
		a.log.Warn("overwriting unconsumed swap records", "pool", fmt.Sprintf("%x", id), "records", len(ps.pending))
	}
	cfg := a.feeConfigLocked(id)
	a.mu.Unlock()

	records := make([]swapRecord, 0, len(elig))
	var deltas []hooks.Delta
	var contribs []fees.Contribution
	for _, e := range elig {
		ack, d, c, err := e.hook.BeforeSwap(sender, key, params, hookData)
		if err != nil {
			return hooks.ZeroDelta(), 0, hookFailure(e.addr, err)
		}
		if ack != hooks.AckBeforeSwap {
			return hooks.ZeroDelta(), 0, badAck(e.addr, ack)
		}
		rec := swapRecord{addr: e.addr, delta: hooks.ZeroDelta()}
		if e.flags&hooks.FlagReturnsDelta != 0 {
			rec.delta = normalizeDelta(d)
			deltas = append(deltas, rec.delta)
		}
		if e.flags&hooks.FlagReturnsFee != 0 {
			rec.contrib = c
			contribs = append(contribs, c)
		}
		records = append(records, rec)
	}

	// commit the correlation records only after every sub-hook succeeded
	a.mu.Lock()
	ps := a.pools[id]
	if ps == nil {
		ps = &poolState{}
		a.pools[id] = ps
	}
	ps.pending = records
	a.mu.Unlock()

	return sumDeltas(deltas), fees.Resolve(contribs, cfg), nil
}

// AfterSwap consumes the correlation records written by the matching
// BeforeSwap, hands each eligible sub-hook its own pre-swap delta, and
// returns the aggregate of the post-swap deltas. The records are cleared
// whether or not any sub-hook is eligible for the post-swap event.
func (a *Adapter) AfterSwap(sender common.Address, key hooks.PoolKey, params hooks.SwapParams, delta hooks.Delta, hookData []byte) (hooks.Delta, error) {
	if err := a.beginDispatch(); err != nil {
		return hooks.ZeroDelta(), err
	}
	defer a.endDispatch()

	id := key.ID()

	a.mu.Lock()
	var pending []swapRecord
	if ps := a.pools[id]; ps != nil {
		pending = ps.pending
		ps.pending = nil
	}
	a.mu.Unlock()

	before := make(map[common.Address]hooks.Delta, len(pending))
	for _, rec := range pending {
		before[rec.addr] = rec.delta
	}

	var contributed []hooks.Delta
	for _, e := range a.eligible(id, hooks.FlagAfterSwap) {
		bd, ok := before[e.addr]
		if !ok {
			bd = hooks.ZeroDelta()
		}
		ack, hd, err := e.hook.AfterSwap(sender, key, params, delta, bd, hookData)
		if err != nil {
			return hooks.ZeroDelta(), hookFailure(e.addr, err)
		}
		if ack != hooks.AckAfterSwap {
			return hooks.ZeroDelta(), badAck(e.addr, ack)
		}
		if e.flags&hooks.FlagReturnsDelta != 0 {
			contributed = append(contributed, hd)
		}
	}
	return sumDeltas(contributed), nil
}

// BeforeDonate fans the pre-donate event out to the pool's eligible
// sub-hooks
func (a *Adapter) BeforeDonate(sender common.Address, key hooks.PoolKey, amount0, amount1 *big.Int, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagBeforeDonate) {
		ack, err := e.hook.BeforeDonate(sender, key, amount0, amount1, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckBeforeDonate {
			return badAck(e.addr, ack)
		}
	}
	return nil
}

// AfterDonate fans the post-donate event out to the pool's eligible
// sub-hooks
func (a *Adapter) AfterDonate(sender common.Address, key hooks.PoolKey, amount0, amount1 *big.Int, hookData []byte) error {
	if err := a.beginDispatch(); err != nil {
		return err
	}
	defer a.endDispatch()

	for _, e := range a.eligible(key.ID(), hooks.FlagAfterDonate) {
		ack, err := e.hook.AfterDonate(sender, key, amount0, amount1, hookData)
		if err != nil {
			return hookFailure(e.addr, err)
		}
		if ack != hooks.AckAfterDonate {
			return badAck(e.addr, ack)
		}
	}
	return nil
}
