// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/luxfi/multihook/contract"
	"github.com/luxfi/multihook/fees"
	"github.com/luxfi/multihook/hooks"
	"github.com/luxfi/multihook/modules"
	"github.com/luxfi/multihook/precompileconfig"
	"github.com/luxfi/multihook/registry"
)

var _ contract.Configurator = (*configurator)(nil)
var _ contract.StatefulPrecompiledContract = (*AdapterContract)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "multiHookConfig"

// ContractAdapterAddress is the reserved address of the multi-hook
// adapter precompile (LP-9013)
var ContractAdapterAddress = common.HexToAddress("0x0000000000000000000000000000000000009013")

// AdapterPrecompile is the singleton instance; Configure installs its
// adapter according to chain config
var AdapterPrecompile = &AdapterContract{}

// Module is the precompile module for the multi-hook adapter
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAdapterAddress,
	Contract:     AdapterPrecompile,
	Configurator: &configurator{},
}

// Method selectors
const (
	SelectorBeforeInitialize      uint32 = 0x01000001 // beforeInitialize(PoolKey,uint160,bytes)
	SelectorAfterInitialize       uint32 = 0x01000002 // afterInitialize(PoolKey,uint160,int24,bytes)
	SelectorBeforeAddLiquidity    uint32 = 0x02000001 // beforeAddLiquidity(PoolKey,ModifyLiqParams,bytes)
	SelectorAfterAddLiquidity     uint32 = 0x02000002 // afterAddLiquidity(PoolKey,ModifyLiqParams,BalanceDelta,bytes)
	SelectorBeforeRemoveLiquidity uint32 = 0x02000003 // beforeRemoveLiquidity(PoolKey,ModifyLiqParams,bytes)
	SelectorAfterRemoveLiquidity  uint32 = 0x02000004 // afterRemoveLiquidity(PoolKey,ModifyLiqParams,BalanceDelta,bytes)
	SelectorBeforeSwap            uint32 = 0x03000001 // beforeSwap(PoolKey,SwapParams,bytes)
	SelectorAfterSwap             uint32 = 0x03000002 // afterSwap(PoolKey,SwapParams,BalanceDelta,bytes)
	SelectorBeforeDonate          uint32 = 0x04000001 // beforeDonate(PoolKey,uint256,uint256,bytes)
	SelectorAfterDonate           uint32 = 0x04000002 // afterDonate(PoolKey,uint256,uint256,bytes)
	SelectorSetGovernanceFee      uint32 = 0x05000001 // setGovernanceFee(uint24)
	SelectorSetPoolFee            uint32 = 0x05000002 // setPoolFee(PoolKey,uint24)
	SelectorSetFeeMethod          uint32 = 0x05000003 // setFeeMethod(PoolKey,uint8)
	SelectorGetFeeConfig          uint32 = 0x06000001 // getFeeConfig(PoolKey)
	SelectorGetHooks              uint32 = 0x06000002 // getHooks(PoolKey)
	SelectorGetPoolOwner          uint32 = 0x06000003 // getPoolOwner(PoolKey)
)

// Gas costs
const (
	GasHookFanout uint64 = 3_000
	GasSwapFanout uint64 = 10_000
	GasFeeUpdate  uint64 = 5_000
	GasQuery      uint64 = 100
)

// Wire sizes
const (
	poolKeySize    = 66
	liqParamsSize  = 72 // tickLower(4) + tickUpper(4) + liquidityDelta(32) + salt(32)
	swapParamsSize = 65 // zeroForOne(1) + amountSpecified(32) + sqrtPriceLimit(32)
	deltaSize      = 64 // amount0(32) + amount1(32)
)

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}

	logger := log.NewTestLogger(log.InfoLevel)
	if config.Permissioned {
		approved := registry.NewApproved(ContractAdapterAddress, config.Governance, config.RegistryOwner)
		perm, err := NewPermissioned(ContractAdapterAddress, config.Governance, config.DefaultFee, approved, logger)
		if err != nil {
			return err
		}
		AdapterPrecompile.adapter = perm.Adapter
		AdapterPrecompile.perm = perm
		return nil
	}

	base, err := New(ContractAdapterAddress, config.Governance, config.DefaultFee, logger)
	if err != nil {
		return err
	}
	AdapterPrecompile.adapter = base
	AdapterPrecompile.perm = nil
	return nil
}

// Config implements the precompileconfig.Config interface
type Config struct {
	Upgrade       precompileconfig.Upgrade `json:"upgrade,omitempty"`
	DefaultFee    uint32                   `json:"defaultFee,omitempty"`
	Governance    common.Address           `json:"governance,omitempty"`
	RegistryOwner common.Address           `json:"registryOwner,omitempty"`
	Permissioned  bool                     `json:"permissioned,omitempty"`
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.DefaultFee == other.DefaultFee &&
		c.Governance == other.Governance &&
		c.RegistryOwner == other.RegistryOwner &&
		c.Permissioned == other.Permissioned
}

func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	if c.DefaultFee > fees.FeeMax {
		return fmt.Errorf("%w: default fee %d", hooks.ErrInvalidFee, c.DefaultFee)
	}
	if c.Permissioned && c.RegistryOwner == (common.Address{}) {
		return fmt.Errorf("permissioned adapter requires a registry owner")
	}
	return nil
}

// AdapterContract implements the multi-hook adapter precompile. Hook
// sets are Go interface values and register natively via the Adapter
// API; the call surface covers lifecycle dispatch, fee administration,
// and queries.
type AdapterContract struct {
	adapter *Adapter
	perm    *PermissionedAdapter
}

// NewContract wraps an immutable-policy adapter
func NewContract(a *Adapter) *AdapterContract {
	return &AdapterContract{adapter: a}
}

// NewPermissionedContract wraps a pool-creator-managed adapter
func NewPermissionedContract(p *PermissionedAdapter) *AdapterContract {
	return &AdapterContract{adapter: p.Adapter, perm: p}
}

// Adapter returns the underlying adapter
func (c *AdapterContract) Adapter() *Adapter {
	return c.adapter
}

// Permissioned returns the permissioned adapter, or nil under the
// immutable policy
func (c *AdapterContract) Permissioned() *PermissionedAdapter {
	return c.perm
}

// RequiredGas estimates the gas for [input]
func (c *AdapterContract) RequiredGas(input []byte) uint64 {
	if len(input) < 4 {
		return GasQuery
	}
	switch binary.BigEndian.Uint32(input[:4]) {
	case SelectorBeforeSwap, SelectorAfterSwap:
		return GasSwapFanout
	case SelectorSetGovernanceFee, SelectorSetPoolFee, SelectorSetFeeMethod:
		return GasFeeUpdate
	case SelectorGetFeeConfig, SelectorGetHooks, SelectorGetPoolOwner:
		return GasQuery
	default:
		return GasHookFanout
	}
}

// Run executes the precompile
func (c *AdapterContract) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) (ret []byte, remainingGas uint64, err error) {
	if c.adapter == nil {
		return nil, suppliedGas, fmt.Errorf("adapter not configured")
	}
	if len(input) < 4 {
		return nil, suppliedGas, fmt.Errorf("input too short")
	}

	selector := binary.BigEndian.Uint32(input[:4])
	data := input[4:]

	switch selector {
	case SelectorBeforeInitialize:
		return c.runBeforeInitialize(caller, data, suppliedGas, readOnly)
	case SelectorAfterInitialize:
		return c.runAfterInitialize(caller, data, suppliedGas, readOnly)
	case SelectorBeforeAddLiquidity:
		return c.runBeforeLiquidity(caller, data, suppliedGas, readOnly, true)
	case SelectorAfterAddLiquidity:
		return c.runAfterLiquidity(caller, data, suppliedGas, readOnly, true)
	case SelectorBeforeRemoveLiquidity:
		return c.runBeforeLiquidity(caller, data, suppliedGas, readOnly, false)
	case SelectorAfterRemoveLiquidity:
		return c.runAfterLiquidity(caller, data, suppliedGas, readOnly, false)
	case SelectorBeforeSwap:
		return c.runBeforeSwap(caller, data, suppliedGas, readOnly)
	case SelectorAfterSwap:
		return c.runAfterSwap(caller, data, suppliedGas, readOnly)
	case SelectorBeforeDonate:
		return c.runDonate(caller, data, suppliedGas, readOnly, true)
	case SelectorAfterDonate:
		return c.runDonate(caller, data, suppliedGas, readOnly, false)
	case SelectorSetGovernanceFee:
		return c.runSetGovernanceFee(accessibleState, caller, data, suppliedGas, readOnly)
	case SelectorSetPoolFee:
		return c.runSetPoolFee(accessibleState, caller, data, suppliedGas, readOnly)
	case SelectorSetFeeMethod:
		return c.runSetFeeMethod(accessibleState, caller, data, suppliedGas, readOnly)
	case SelectorGetFeeConfig:
		return c.runGetFeeConfig(data, suppliedGas)
	case SelectorGetHooks:
		return c.runGetHooks(data, suppliedGas)
	case SelectorGetPoolOwner:
		return c.runGetPoolOwner(data, suppliedGas)
	default:
		return nil, suppliedGas, fmt.Errorf("unknown method selector: %x", selector)
	}
}

// putInt256 writes x into a 32-byte two's-complement big-endian word
func putInt256(dst []byte, x *big.Int) {
	if x == nil || x.Sign() >= 0 {
		v := new(big.Int)
		if x != nil {
			v.Set(x)
		}
		v.FillBytes(dst[:32])
		return
	}
	v := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 256), x)
	v.FillBytes(dst[:32])
}

// getInt256 reads a 32-byte two's-complement big-endian word
func getInt256(src []byte) *big.Int {
	v := new(big.Int).SetBytes(src[:32])
	if src[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return v
}

func encodeDelta(d hooks.Delta) []byte {
	out := make([]byte, deltaSize)
	putInt256(out[0:32], d.Amount0)
	putInt256(out[32:64], d.Amount1)
	return out
}

func decodeDelta(data []byte) hooks.Delta {
	return hooks.Delta{Amount0: getInt256(data[0:32]), Amount1: getInt256(data[32:64])}
}

func decodeLiquidityParams(data []byte) hooks.ModifyLiquidityParams {
	p := hooks.ModifyLiquidityParams{
		TickLower:      int32(binary.BigEndian.Uint32(data[0:4])),
		TickUpper:      int32(binary.BigEndian.Uint32(data[4:8])),
		LiquidityDelta: getInt256(data[8:40]),
	}
	copy(p.Salt[:], data[40:72])
	return p
}

func decodeSwapParams(data []byte) hooks.SwapParams {
	return hooks.SwapParams{
		ZeroForOne:        data[0] != 0,
		AmountSpecified:   getInt256(data[1:33]),
		SqrtPriceLimitX96: new(big.Int).SetBytes(data[33:65]),
	}
}

func (c *AdapterContract) runBeforeInitialize(caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if suppliedGas < GasHookFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasHookFanout
	if len(input) < poolKeySize+32 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	sqrtPrice := new(big.Int).SetBytes(input[poolKeySize : poolKeySize+32])
	if err := c.adapter.BeforeInitialize(caller, key, sqrtPrice, input[poolKeySize+32:]); err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runAfterInitialize(caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if suppliedGas < GasHookFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasHookFanout
	if len(input) < poolKeySize+36 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	sqrtPrice := new(big.Int).SetBytes(input[poolKeySize : poolKeySize+32])
	tick := int32(binary.BigEndian.Uint32(input[poolKeySize+32 : poolKeySize+36]))
	if err := c.adapter.AfterInitialize(caller, key, sqrtPrice, tick, input[poolKeySize+36:]); err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runBeforeLiquidity(caller common.Address, input []byte, suppliedGas uint64, readOnly bool, add bool) ([]byte, uint64, error) {
	if suppliedGas < GasHookFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasHookFanout
	if len(input) < poolKeySize+liqParamsSize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	params := decodeLiquidityParams(input[poolKeySize : poolKeySize+liqParamsSize])
	hookData := input[poolKeySize+liqParamsSize:]

	if add {
		err = c.adapter.BeforeAddLiquidity(caller, key, params, hookData)
	} else {
		err = c.adapter.BeforeRemoveLiquidity(caller, key, params, hookData)
	}
	if err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runAfterLiquidity(caller common.Address, input []byte, suppliedGas uint64, readOnly bool, add bool) ([]byte, uint64, error) {
	if suppliedGas < GasHookFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasHookFanout
	if len(input) < poolKeySize+liqParamsSize+deltaSize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	params := decodeLiquidityParams(input[poolKeySize : poolKeySize+liqParamsSize])
	delta := decodeDelta(input[poolKeySize+liqParamsSize : poolKeySize+liqParamsSize+deltaSize])
	hookData := input[poolKeySize+liqParamsSize+deltaSize:]

	var agg hooks.Delta
	if add {
		agg, err = c.adapter.AfterAddLiquidity(caller, key, params, delta, hookData)
	} else {
		agg, err = c.adapter.AfterRemoveLiquidity(caller, key, params, delta, hookData)
	}
	if err != nil {
		return nil, remaining, err
	}
	return encodeDelta(agg), remaining, nil
}

func (c *AdapterContract) runBeforeSwap(caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if readOnly {
		return nil, suppliedGas, fmt.Errorf("cannot write in read-only mode")
	}
	if suppliedGas < GasSwapFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasSwapFanout
	if len(input) < poolKeySize+swapParamsSize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	params := decodeSwapParams(input[poolKeySize : poolKeySize+swapParamsSize])

	delta, fee, err := c.adapter.BeforeSwap(caller, key, params, input[poolKeySize+swapParamsSize:])
	if err != nil {
		return nil, remaining, err
	}
	out := make([]byte, deltaSize+4)
	copy(out, encodeDelta(delta))
	binary.BigEndian.PutUint32(out[deltaSize:], fee)
	return out, remaining, nil
}

func (c *AdapterContract) runAfterSwap(caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if readOnly {
		return nil, suppliedGas, fmt.Errorf("cannot write in read-only mode")
	}
	if suppliedGas < GasSwapFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasSwapFanout
	if len(input) < poolKeySize+swapParamsSize+deltaSize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	params := decodeSwapParams(input[poolKeySize : poolKeySize+swapParamsSize])
	delta := decodeDelta(input[poolKeySize+swapParamsSize : poolKeySize+swapParamsSize+deltaSize])

	agg, err := c.adapter.AfterSwap(caller, key, params, delta, input[poolKeySize+swapParamsSize+deltaSize:])
	if err != nil {
		return nil, remaining, err
	}
	return encodeDelta(agg), remaining, nil
}

func (c *AdapterContract) runDonate(caller common.Address, input []byte, suppliedGas uint64, readOnly bool, before bool) ([]byte, uint64, error) {
	if suppliedGas < GasHookFanout {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasHookFanout
	if len(input) < poolKeySize+64 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	amount0 := new(big.Int).SetBytes(input[poolKeySize : poolKeySize+32])
	amount1 := new(big.Int).SetBytes(input[poolKeySize+32 : poolKeySize+64])
	hookData := input[poolKeySize+64:]

	if before {
		err = c.adapter.BeforeDonate(caller, key, amount0, amount1, hookData)
	} else {
		err = c.adapter.AfterDonate(caller, key, amount0, amount1, hookData)
	}
	if err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runSetGovernanceFee(state contract.AccessibleState, caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if readOnly {
		return nil, suppliedGas, fmt.Errorf("cannot write in read-only mode")
	}
	if suppliedGas < GasFeeUpdate {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasFeeUpdate
	if len(input) < 4 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	fee := binary.BigEndian.Uint32(input[:4])
	if err := c.adapter.SetGovernanceFee(state.GetStateDB(), caller, fee); err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runSetPoolFee(state contract.AccessibleState, caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if readOnly {
		return nil, suppliedGas, fmt.Errorf("cannot write in read-only mode")
	}
	if suppliedGas < GasFeeUpdate {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasFeeUpdate
	if len(input) < poolKeySize+4 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	fee := binary.BigEndian.Uint32(input[poolKeySize : poolKeySize+4])

	setter := c.setPoolFeeTarget()
	if err := setter(state.GetStateDB(), caller, key, fee); err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) setPoolFeeTarget() func(contract.StateDB, common.Address, hooks.PoolKey, uint32) error {
	if c.perm != nil {
		return c.perm.SetPoolFee
	}
	return c.adapter.SetPoolFee
}

func (c *AdapterContract) runSetFeeMethod(state contract.AccessibleState, caller common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	if readOnly {
		return nil, suppliedGas, fmt.Errorf("cannot write in read-only mode")
	}
	if suppliedGas < GasFeeUpdate {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasFeeUpdate
	if len(input) < poolKeySize+1 {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	method := fees.Method(input[poolKeySize])

	if c.perm != nil {
		err = c.perm.SetFeeMethod(state.GetStateDB(), caller, key, method)
	} else {
		err = c.adapter.SetFeeMethod(state.GetStateDB(), caller, key, method)
	}
	if err != nil {
		return nil, remaining, err
	}
	return nil, remaining, nil
}

func (c *AdapterContract) runGetFeeConfig(input []byte, suppliedGas uint64) ([]byte, uint64, error) {
	if suppliedGas < GasQuery {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasQuery
	if len(input) < poolKeySize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	cfg := c.adapter.FeeConfig(key)

	// defaultFee(4) + governanceFee(4) + govSet(1) + poolFee(4) + poolSet(1) + method(1)
	out := make([]byte, 15)
	binary.BigEndian.PutUint32(out[0:4], cfg.DefaultFee)
	binary.BigEndian.PutUint32(out[4:8], cfg.GovernanceFee)
	if cfg.GovernanceFeeSet {
		out[8] = 1
	}
	binary.BigEndian.PutUint32(out[9:13], cfg.PoolFee)
	if cfg.PoolFeeSet {
		out[13] = 1
	}
	out[14] = byte(cfg.Method)
	return out, remaining, nil
}

func (c *AdapterContract) runGetHooks(input []byte, suppliedGas uint64) ([]byte, uint64, error) {
	if suppliedGas < GasQuery {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasQuery
	if len(input) < poolKeySize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	addrs := c.adapter.RegisteredHooks(key)

	out := make([]byte, 2+20*len(addrs))
	binary.BigEndian.PutUint16(out[0:2], uint16(len(addrs)))
	for i, addr := range addrs {
		copy(out[2+20*i:], addr.Bytes())
	}
	return out, remaining, nil
}

func (c *AdapterContract) runGetPoolOwner(input []byte, suppliedGas uint64) ([]byte, uint64, error) {
	if suppliedGas < GasQuery {
		return nil, 0, fmt.Errorf("out of gas")
	}
	remaining := suppliedGas - GasQuery
	if len(input) < poolKeySize {
		return nil, remaining, fmt.Errorf("input too short")
	}
	key, err := hooks.PoolKeyFromBytes(input[:poolKeySize])
	if err != nil {
		return nil, remaining, err
	}
	owner := c.adapter.PoolOwner(key)
	return common.BytesToHash(owner.Bytes()).Bytes(), remaining, nil
}
