// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modules maintains the ordered registry of stateful precompile
// modules. The host chain resolves exactly one contract per address from
// this registry.
package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/multihook/contract"
)

// Module is a stateful precompile bound to a reserved address
type Module struct {
	// ConfigKey is the json key this module's config is unmarshalled from
	ConfigKey string
	// Address is the reserved address this module executes at
	Address common.Address
	// Contract handles calls made to Address
	Contract contract.StatefulPrecompiledContract
	// Configurator installs the module's config at activation
	Configurator contract.Configurator
}

// moduleArray sorts modules by address for deterministic iteration
type moduleArray []Module

func (m moduleArray) Len() int { return len(m) }

func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address.Bytes(), m[j].Address.Bytes()) < 0
}

func (m moduleArray) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
