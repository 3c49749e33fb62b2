// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration surface shared by all
// stateful precompile modules.
package precompileconfig

// ChainConfig is the host chain configuration a precompile config may be
// verified against. Precompiles that need nothing from the chain accept
// any value.
type ChainConfig interface{}

// Config is implemented by every precompile configuration
type Config interface {
	// Key returns the unique json key of this config in the upgrade file
	Key() string
	// Timestamp returns the activation timestamp, nil if never active
	Timestamp() *uint64
	// IsDisabled returns true if this config disables the precompile
	IsDisabled() bool
	// Equal reports deep equality with another config
	Equal(Config) bool
	// Verify checks the config is internally consistent
	Verify(ChainConfig) error
}

// Upgrade carries the activation timestamp shared by all precompile
// configs
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp,omitempty"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the timestamp this upgrade activates at
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal reports whether two upgrades activate identically
func (u *Upgrade) Equal(other *Upgrade) bool {
	if other == nil {
		return false
	}
	if u.Disable != other.Disable {
		return false
	}
	if (u.BlockTimestamp == nil) != (other.BlockTimestamp == nil) {
		return false
	}
	return u.BlockTimestamp == nil || *u.BlockTimestamp == *other.BlockTimestamp
}
