package business

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/multisend"
)

// PausePlan is the batched call the pause module submits for one market.
type PausePlan struct {
	Market      common.Address          `json:"market"`
	Comptroller common.Address          `json:"comptroller"`
	Kind        string                  `json:"kind"`
	Calls       []multisend.Transaction `json:"calls"`
	// Payload is the multiSend(bytes) calldata delegatecalled by the Safe.
	Payload []byte `json:"payload"`
	// LiquidationThreshold is only set for isolated markets.
	LiquidationThreshold *big.Int `json:"liquidation_threshold,omitempty"`
}

// MarketState is a snapshot of a market as seen by its comptroller.
type MarketState struct {
	Market               common.Address `json:"market"`
	Comptroller          common.Address `json:"comptroller"`
	Kind                 string         `json:"kind"`
	Listed               bool           `json:"listed"`
	CollateralFactor     *big.Int       `json:"collateral_factor"`
	LiquidationThreshold *big.Int       `json:"liquidation_threshold,omitempty"`
	PausedActions        map[uint8]bool `json:"paused_actions"`
}
