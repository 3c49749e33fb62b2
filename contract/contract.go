// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the interfaces between the host chain and
// stateful precompiled contracts.
package contract

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/multihook/precompileconfig"
)

// StateDB is the subset of EVM state access a stateful precompile needs
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key common.Hash, value common.Hash)
	Exist(addr common.Address) bool
	CreateAccount(addr common.Address)
}

// AccessibleState exposes the state reachable during precompile execution
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// BlockContext provides block metadata to precompiles
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// ConfigurationBlockContext is the block context available while a
// precompile is being configured at an upgrade boundary
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// StatefulPrecompiledContract is the interface every precompile implements
type StatefulPrecompiledContract interface {
	// Run executes the precompiled contract
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)

	// RequiredGas returns the gas required to execute the given input
	RequiredGas(input []byte) uint64
}

// Configurator installs a precompile's config at its activation timestamp
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
