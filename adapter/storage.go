// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/fees"
)

// Storage key prefixes
var (
	feeConfigPrefix     = []byte("fcfg")
	poolOwnerPrefix     = []byte("pown")
	governanceFeePrefix = []byte("gfee")
)

func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}

// Fee config slot layout, low bits first:
// bits 0-31 pool fee, bit 32 pool-fee-set, bits 40-47 method,
// bit 48 registered marker
const (
	feePoolSetBit    = 1 << 32
	feeMethodShift   = 40
	feeRegisteredBit = 1 << 48
)

func (a *Adapter) writeFeeConfig(state contract.StateDB, id [32]byte, fee feeConfig) {
	if state == nil {
		return
	}
	v := uint64(fee.poolFee) | uint64(fee.method)<<feeMethodShift | feeRegisteredBit
	if fee.poolFeeSet {
		v |= feePoolSetBit
	}
	state.SetState(a.self, makeStorageKey(feeConfigPrefix, id[:]), uint256.NewInt(v).Bytes32())
}

func readFeeConfig(state contract.StateDB, self common.Address, id [32]byte) (feeConfig, bool) {
	slot := state.GetState(self, makeStorageKey(feeConfigPrefix, id[:]))
	v := new(uint256.Int).SetBytes(slot[:]).Uint64()
	if v&feeRegisteredBit == 0 {
		return feeConfig{method: fees.MethodWeightedAverage}, false
	}
	return feeConfig{
		poolFee:    uint32(v),
		poolFeeSet: v&feePoolSetBit != 0,
		method:     fees.Method(v >> feeMethodShift & 0xff),
	}, true
}

func (a *Adapter) writePoolOwner(state contract.StateDB, id [32]byte, owner common.Address) {
	if state == nil {
		return
	}
	state.SetState(a.self, makeStorageKey(poolOwnerPrefix, id[:]), common.BytesToHash(owner.Bytes()))
}

func readPoolOwner(state contract.StateDB, self common.Address, id [32]byte) common.Address {
	return common.BytesToAddress(state.GetState(self, makeStorageKey(poolOwnerPrefix, id[:])).Bytes())
}

// Governance fee slot: bits 0-31 fee, bit 32 set marker
const govFeeSetBit = 1 << 32

func (a *Adapter) writeGovernanceFee(state contract.StateDB, fee uint32) {
	if state == nil {
		return
	}
	v := uint64(fee)
	if fee != 0 {
		v |= govFeeSetBit
	}
	state.SetState(a.self, makeStorageKey(governanceFeePrefix, nil), uint256.NewInt(v).Bytes32())
}

// LoadCommitted restores fee configuration and pool ownership for the
// given pools from committed storage. Hook sets are process-local and
// must be re-registered; a pool found in storage is marked registered so
// re-registration under the immutable policy still fails.
func (a *Adapter) LoadCommitted(state contract.StateDB, ids [][32]byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot := state.GetState(a.self, makeStorageKey(governanceFeePrefix, nil))
	v := new(uint256.Int).SetBytes(slot[:]).Uint64()
	if v&govFeeSetBit != 0 {
		a.governanceFee = uint32(v)
		a.governanceFeeSet = true
	}

	for _, id := range ids {
		fee, ok := readFeeConfig(state, a.self, id)
		if !ok {
			continue
		}
		ps := a.pools[id]
		if ps == nil {
			ps = &poolState{}
			a.pools[id] = ps
		}
		ps.registered = true
		ps.fee = fee
		ps.owner = readPoolOwner(state, a.self, id)
	}
}
