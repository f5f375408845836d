package chain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/contracts"
)

var (
	ErrComptrollerUnauthorized = errors.New("comptroller: caller is not allowed")
	ErrMarketNotListed         = errors.New("comptroller: market not listed")
	ErrInvalidThreshold        = errors.New("comptroller: collateral factor exceeds liquidation threshold")
)

var mantissaOne = big.NewInt(1e18)

type drillMarket struct {
	listed               bool
	collateralFactor     *big.Int
	liquidationThreshold *big.Int
}

type comptrollerState struct {
	markets map[common.Address]drillMarket
	paused  map[common.Address]map[uint8]bool
	allowed map[common.Address]bool
}

func newComptrollerState() comptrollerState {
	return comptrollerState{
		markets: make(map[common.Address]drillMarket),
		paused:  make(map[common.Address]map[uint8]bool),
		allowed: make(map[common.Address]bool),
	}
}

func (s comptrollerState) clone() comptrollerState {
	out := newComptrollerState()
	for addr, m := range s.markets {
		out.markets[addr] = drillMarket{
			listed:               m.listed,
			collateralFactor:     new(big.Int).Set(m.collateralFactor),
			liquidationThreshold: new(big.Int).Set(m.liquidationThreshold),
		}
	}
	for addr, actions := range s.paused {
		inner := make(map[uint8]bool, len(actions))
		for a, p := range actions {
			inner[a] = p
		}
		out.paused[addr] = inner
	}
	for addr, ok := range s.allowed {
		out.allowed[addr] = ok
	}
	return out
}

func (s comptrollerState) setPaused(caller common.Address, markets []common.Address, actions []uint8, paused bool) error {
	if !s.allowed[caller] {
		return fmt.Errorf("%w: %s", ErrComptrollerUnauthorized, caller.Hex())
	}
	for _, market := range markets {
		if !s.markets[market].listed {
			return fmt.Errorf("%w: %s", ErrMarketNotListed, market.Hex())
		}
		if s.paused[market] == nil {
			s.paused[market] = make(map[uint8]bool)
		}
		for _, action := range actions {
			s.paused[market][action] = paused
		}
	}
	return nil
}

// DrillComptroller is an isolated pool comptroller with per-market
// collateral factor and liquidation threshold.
type DrillComptroller struct {
	state comptrollerState
}

func NewDrillComptroller() *DrillComptroller {
	return &DrillComptroller{state: newComptrollerState()}
}

// ListMarket registers market with the given risk parameters.
func (c *DrillComptroller) ListMarket(market common.Address, collateralFactor, liquidationThreshold *big.Int) {
	c.state.markets[market] = drillMarket{
		listed:               true,
		collateralFactor:     new(big.Int).Set(collateralFactor),
		liquidationThreshold: new(big.Int).Set(liquidationThreshold),
	}
}

// Allow grants caller access to the pause and risk parameter setters.
func (c *DrillComptroller) Allow(caller common.Address) {
	c.state.allowed[caller] = true
}

func (c *DrillComptroller) Snapshot() any { return c.state.clone() }

func (c *DrillComptroller) Restore(snapshot any) {
	if st, ok := snapshot.(comptrollerState); ok {
		c.state = st.clone()
	}
}

func (c *DrillComptroller) MethodName(selector []byte) string {
	return methodName(contracts.ComptrollerABI, selector)
}

func (c *DrillComptroller) Run(cc *CallContext, input []byte) ([]byte, error) {
	method, args, err := decodeCall(contracts.ComptrollerABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "markets":
		m, ok := c.state.markets[args[0].(common.Address)]
		if !ok {
			return packOutputs(contracts.ComptrollerABI, method.Name, false, new(big.Int), new(big.Int))
		}
		return packOutputs(contracts.ComptrollerABI, method.Name, m.listed, m.collateralFactor, m.liquidationThreshold)
	case "actionPaused":
		return packOutputs(contracts.ComptrollerABI, method.Name, c.state.paused[args[0].(common.Address)][args[1].(uint8)])
	case "setActionsPaused":
		return nil, c.state.setPaused(cc.Caller, args[0].([]common.Address), args[1].([]uint8), args[2].(bool))
	case "setCollateralFactor":
		return nil, c.setCollateralFactor(cc, args[0].(common.Address), args[1].(*big.Int), args[2].(*big.Int))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
}

func (c *DrillComptroller) setCollateralFactor(cc *CallContext, market common.Address, collateralFactor, liquidationThreshold *big.Int) error {
	if !c.state.allowed[cc.Caller] {
		return fmt.Errorf("%w: %s", ErrComptrollerUnauthorized, cc.Caller.Hex())
	}
	m, ok := c.state.markets[market]
	if !ok || !m.listed {
		return fmt.Errorf("%w: %s", ErrMarketNotListed, market.Hex())
	}
	if collateralFactor.Cmp(liquidationThreshold) > 0 || liquidationThreshold.Cmp(mantissaOne) > 0 {
		return ErrInvalidThreshold
	}

	old := m.collateralFactor
	m.collateralFactor = new(big.Int).Set(collateralFactor)
	m.liquidationThreshold = new(big.Int).Set(liquidationThreshold)
	c.state.markets[market] = m
	cc.Emit("NewCollateralFactor", map[string]string{
		"vToken":                      market.Hex(),
		"oldCollateralFactorMantissa": old.String(),
		"newCollateralFactorMantissa": collateralFactor.String(),
	})
	return nil
}

// DrillLegacyComptroller is the core pool comptroller. Its markets record
// carries no liquidation threshold.
type DrillLegacyComptroller struct {
	state comptrollerState
}

func NewDrillLegacyComptroller() *DrillLegacyComptroller {
	return &DrillLegacyComptroller{state: newComptrollerState()}
}

func (c *DrillLegacyComptroller) ListMarket(market common.Address, collateralFactor *big.Int) {
	c.state.markets[market] = drillMarket{
		listed:               true,
		collateralFactor:     new(big.Int).Set(collateralFactor),
		liquidationThreshold: new(big.Int),
	}
}

func (c *DrillLegacyComptroller) Allow(caller common.Address) {
	c.state.allowed[caller] = true
}

func (c *DrillLegacyComptroller) Snapshot() any { return c.state.clone() }

func (c *DrillLegacyComptroller) Restore(snapshot any) {
	if st, ok := snapshot.(comptrollerState); ok {
		c.state = st.clone()
	}
}

func (c *DrillLegacyComptroller) MethodName(selector []byte) string {
	return methodName(contracts.LegacyComptrollerABI, selector)
}

func (c *DrillLegacyComptroller) Run(cc *CallContext, input []byte) ([]byte, error) {
	method, args, err := decodeCall(contracts.LegacyComptrollerABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "markets":
		m, ok := c.state.markets[args[0].(common.Address)]
		if !ok {
			return packOutputs(contracts.LegacyComptrollerABI, method.Name, false, new(big.Int), false)
		}
		return packOutputs(contracts.LegacyComptrollerABI, method.Name, m.listed, m.collateralFactor, false)
	case "actionPaused":
		return packOutputs(contracts.LegacyComptrollerABI, method.Name, c.state.paused[args[0].(common.Address)][args[1].(uint8)])
	case "_setActionsPaused":
		return nil, c.state.setPaused(cc.Caller, args[0].([]common.Address), args[1].([]uint8), args[2].(bool))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
}

// DrillVToken only answers comptroller().
type DrillVToken struct {
	comptroller common.Address
}

func NewDrillVToken(comptroller common.Address) *DrillVToken {
	return &DrillVToken{comptroller: comptroller}
}

func (v *DrillVToken) Snapshot() any { return nil }

func (v *DrillVToken) Restore(any) {}

func (v *DrillVToken) MethodName(selector []byte) string {
	return methodName(contracts.VTokenABI, selector)
}

func (v *DrillVToken) Run(cc *CallContext, input []byte) ([]byte, error) {
	method, _, err := decodeCall(contracts.VTokenABI, input)
	if err != nil {
		return nil, err
	}
	if method.Name != "comptroller" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
	}
	return packOutputs(contracts.VTokenABI, method.Name, v.comptroller)
}

var (
	_ Contract = (*SimulatedSafe)(nil)
	_ Contract = (*MultiSendCallOnly)(nil)
	_ Contract = (*DrillComptroller)(nil)
	_ Contract = (*DrillLegacyComptroller)(nil)
	_ Contract = (*DrillVToken)(nil)
)
