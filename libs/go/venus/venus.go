// Package venus builds and decodes the Venus comptroller calls issued by the
// monitoring pause module.
package venus

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
)

// MarketKind tells which comptroller implementation governs a market.
type MarketKind int

const (
	MarketKindLegacy MarketKind = iota
	MarketKindIsolated
)

func (k MarketKind) String() string {
	switch k {
	case MarketKindLegacy:
		return constants.LegacyMarket
	case MarketKindIsolated:
		return constants.IsolatedMarket
	default:
		return fmt.Sprintf("MarketKind(%d)", int(k))
	}
}

// ResolveMarketKind compares the market's comptroller with the legacy pool comptroller.
func ResolveMarketKind(comptroller, legacyPoolComptroller common.Address) MarketKind {
	if comptroller == legacyPoolComptroller {
		return MarketKindLegacy
	}
	return MarketKindIsolated
}

// PausedActions is the action set disabled on a paused market.
func PausedActions() []uint8 {
	return []uint8{constants.ActionMint, constants.ActionBorrow, constants.ActionEnterMarket}
}

// MarketRecord is the isolated comptroller's per-market record.
type MarketRecord struct {
	IsListed                     bool
	CollateralFactorMantissa     *big.Int
	LiquidationThresholdMantissa *big.Int
}

// PackComptrollerCall returns calldata for vToken.comptroller().
func PackComptrollerCall() ([]byte, error) {
	return contracts.VTokenABI.Pack("comptroller")
}

// UnpackComptroller decodes the comptroller() return data.
func UnpackComptroller(ret []byte) (common.Address, error) {
	out, err := contracts.VTokenABI.Unpack("comptroller", ret)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack comptroller: %w", err)
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected comptroller type %T", out[0])
	}
	return addr, nil
}

// PackMarketsCall returns calldata for comptroller.markets(market).
func PackMarketsCall(market common.Address) ([]byte, error) {
	return contracts.ComptrollerABI.Pack("markets", market)
}

// UnpackMarketRecord decodes the isolated comptroller markets(address) return data.
func UnpackMarketRecord(ret []byte) (MarketRecord, error) {
	var record MarketRecord
	if err := contracts.ComptrollerABI.UnpackIntoInterface(&record, "markets", ret); err != nil {
		return MarketRecord{}, fmt.Errorf("failed to unpack market record: %w", err)
	}
	return record, nil
}

// PackLegacySetActionsPaused returns calldata for the legacy comptroller's _setActionsPaused.
func PackLegacySetActionsPaused(markets []common.Address, actions []uint8, paused bool) ([]byte, error) {
	return contracts.LegacyComptrollerABI.Pack("_setActionsPaused", markets, actions, paused)
}

// PackSetActionsPaused returns calldata for the isolated comptroller's setActionsPaused.
func PackSetActionsPaused(markets []common.Address, actions []uint8, paused bool) ([]byte, error) {
	return contracts.ComptrollerABI.Pack("setActionsPaused", markets, actions, paused)
}

// PackSetCollateralFactor returns calldata for setCollateralFactor(market, cf, lt).
func PackSetCollateralFactor(market common.Address, collateralFactor, liquidationThreshold *big.Int) ([]byte, error) {
	return contracts.ComptrollerABI.Pack("setCollateralFactor", market, collateralFactor, liquidationThreshold)
}

// ActionsPausedCall is a decoded (_)setActionsPaused call.
type ActionsPausedCall struct {
	Markets []common.Address
	Actions []uint8
	Paused  bool
}

// CollateralFactorCall is a decoded setCollateralFactor call.
type CollateralFactorCall struct {
	Market               common.Address
	CollateralFactor     *big.Int
	LiquidationThreshold *big.Int
}

// DecodeActionsPaused decodes either comptroller flavour of the actions paused call.
func DecodeActionsPaused(calldata []byte) (ActionsPausedCall, error) {
	var call ActionsPausedCall
	if len(calldata) < 4 {
		return call, fmt.Errorf("calldata too short")
	}
	method, err := contracts.ComptrollerABI.MethodById(calldata[:4])
	if err != nil {
		method, err = contracts.LegacyComptrollerABI.MethodById(calldata[:4])
		if err != nil {
			return call, fmt.Errorf("not an actions paused call: %w", err)
		}
	}
	if method.RawName != "setActionsPaused" && method.RawName != "_setActionsPaused" {
		return call, fmt.Errorf("unexpected method %s", method.RawName)
	}
	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return call, fmt.Errorf("failed to unpack %s: %w", method.RawName, err)
	}
	call.Markets = args[0].([]common.Address)
	call.Actions = args[1].([]uint8)
	call.Paused = args[2].(bool)
	return call, nil
}

// DecodeCollateralFactor decodes a setCollateralFactor call.
func DecodeCollateralFactor(calldata []byte) (CollateralFactorCall, error) {
	var call CollateralFactorCall
	method := contracts.ComptrollerABI.Methods["setCollateralFactor"]
	if len(calldata) < 4 || string(calldata[:4]) != string(method.ID) {
		return call, fmt.Errorf("not a setCollateralFactor call")
	}
	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return call, fmt.Errorf("failed to unpack setCollateralFactor: %w", err)
	}
	call.Market = args[0].(common.Address)
	call.CollateralFactor = args[1].(*big.Int)
	call.LiquidationThreshold = args[2].(*big.Int)
	return call, nil
}
