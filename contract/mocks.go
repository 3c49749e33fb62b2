// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"math/big"

	"github.com/luxfi/geth/common"
)

// MockStateDB implements StateDB in memory for testing
type MockStateDB struct {
	storage map[common.Address]map[common.Hash]common.Hash
}

// NewMockStateDB creates an empty in-memory state
func NewMockStateDB() *MockStateDB {
	return &MockStateDB{
		storage: make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (m *MockStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if m.storage[addr] == nil {
		return common.Hash{}
	}
	return m.storage[addr][key]
}

func (m *MockStateDB) SetState(addr common.Address, key common.Hash, value common.Hash) {
	if m.storage[addr] == nil {
		m.storage[addr] = make(map[common.Hash]common.Hash)
	}
	m.storage[addr][key] = value
}

func (m *MockStateDB) Exist(addr common.Address) bool {
	_, ok := m.storage[addr]
	return ok
}

func (m *MockStateDB) CreateAccount(addr common.Address) {
	if m.storage[addr] == nil {
		m.storage[addr] = make(map[common.Hash]common.Hash)
	}
}

// MockAccessibleState wraps a MockStateDB for Run-level tests
type MockAccessibleState struct {
	StateDB     StateDB
	BlockNumber *big.Int
	Time        uint64
}

func (m *MockAccessibleState) GetStateDB() StateDB { return m.StateDB }

func (m *MockAccessibleState) GetBlockContext() BlockContext { return m }

func (m *MockAccessibleState) Number() *big.Int {
	if m.BlockNumber == nil {
		return big.NewInt(0)
	}
	return m.BlockNumber
}

func (m *MockAccessibleState) Timestamp() uint64 { return m.Time }
