package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/multisend"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
	"go.uber.org/zap"
)

// PauseModuleConfig is fixed at construction.
type PauseModuleConfig struct {
	Keeper                common.Address
	Safe                  common.Address
	MultiSendCallOnly     common.Address
	LegacyPoolComptroller common.Address
}

// PauseModuleService lets a single keeper pause a Venus market through the
// Safe's module path. The batch is delegatecalled into MultiSendCallOnly so
// every inner call runs with the Safe as msg.sender.
type PauseModuleService struct {
	cfg      PauseModuleConfig
	markets  interfaces.MarketReader
	executor interfaces.ModuleExecutor
	events   interfaces.EventRecorder
	metrics  *metrics.PromIndicators
	logger   *zap.Logger
}

// PauseModuleOption configures optional collaborators.
type PauseModuleOption func(*PauseModuleService)

// WithPauseMetrics attaches prometheus indicators.
func WithPauseMetrics(indicators *metrics.PromIndicators) PauseModuleOption {
	return func(s *PauseModuleService) {
		s.metrics = indicators
	}
}

// NewPauseModuleService fails with ErrZeroAddress when any configured address is zero.
// events may be nil.
func NewPauseModuleService(cfg PauseModuleConfig, markets interfaces.MarketReader, executor interfaces.ModuleExecutor, events interfaces.EventRecorder, opts ...PauseModuleOption) (*PauseModuleService, error) {
	required := []struct {
		name string
		addr common.Address
	}{
		{"keeper", cfg.Keeper},
		{"safe", cfg.Safe},
		{"multi_send_call_only", cfg.MultiSendCallOnly},
		{"legacy_pool_comptroller", cfg.LegacyPoolComptroller},
	}
	for _, r := range required {
		if helpers.IsZeroAddress(r.addr) {
			return nil, fmt.Errorf("%s: %w", r.name, ErrZeroAddress)
		}
	}

	s := &PauseModuleService{
		cfg:      cfg,
		markets:  markets,
		executor: executor,
		events:   events,
		logger:   logger.Named(logger.ComponentPause),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the immutable configuration.
func (s *PauseModuleService) Config() PauseModuleConfig {
	return s.cfg
}

// PauseMarket disables mint, borrow and enter market on market. On isolated
// pools the collateral factor also drops to zero while the liquidation
// threshold is kept as is.
func (s *PauseModuleService) PauseMarket(ctx context.Context, caller, market common.Address) (*business.PausePlan, error) {
	if caller != s.cfg.Keeper {
		return nil, ErrUnauthorized
	}

	plan, err := s.PlanPause(ctx, market)
	if err != nil {
		return nil, err
	}

	ok, err := s.executor.ExecTransactionFromModule(ctx, s.cfg.Safe, s.cfg.MultiSendCallOnly, new(big.Int), plan.Payload, constants.OperationDelegateCall)
	if err != nil {
		s.metrics.AddPause(plan.Kind, "failed")
		s.logger.Error("Module execution failed",
			zap.String("market", market.Hex()),
			zap.String("kind", plan.Kind),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSafeTxFailed, err)
	}
	if !ok {
		s.metrics.AddPause(plan.Kind, "failed")
		s.logger.Error("Module execution returned false",
			zap.String("market", market.Hex()),
			zap.String("kind", plan.Kind))
		return nil, ErrSafeTxFailed
	}

	if s.events != nil {
		err := s.events.Record(ctx, business.Event{
			Name:    constants.EventMarketPausedByMonitoring,
			Account: s.cfg.Safe,
			Fields: map[string]string{
				"market":      market.Hex(),
				"comptroller": plan.Comptroller.Hex(),
			},
		})
		if err != nil {
			return nil, err
		}
	}

	s.metrics.AddPause(plan.Kind, "success")
	s.logger.Info("Market paused by monitoring",
		zap.String("market", market.Hex()),
		zap.String("comptroller", plan.Comptroller.Hex()),
		zap.String("kind", plan.Kind),
		zap.Int("calls", len(plan.Calls)))
	return plan, nil
}

// PlanPause builds the batch PauseMarket would submit, without any access check.
func (s *PauseModuleService) PlanPause(ctx context.Context, market common.Address) (*business.PausePlan, error) {
	comptroller, err := s.markets.Comptroller(ctx, market)
	if err != nil {
		return nil, fmt.Errorf("failed to read comptroller of %s: %w", market.Hex(), err)
	}
	kind := venus.ResolveMarketKind(comptroller, s.cfg.LegacyPoolComptroller)

	plan := &business.PausePlan{
		Market:      market,
		Comptroller: comptroller,
		Kind:        kind.String(),
	}
	targets := []common.Address{market}

	switch kind {
	case venus.MarketKindLegacy:
		data, err := venus.PackLegacySetActionsPaused(targets, venus.PausedActions(), true)
		if err != nil {
			return nil, fmt.Errorf("failed to encode _setActionsPaused: %w", err)
		}
		plan.Calls = []multisend.Transaction{multisend.Call(comptroller, data)}

	case venus.MarketKindIsolated:
		record, err := s.markets.Markets(ctx, comptroller, market)
		if err != nil {
			return nil, fmt.Errorf("failed to read market %s: %w", market.Hex(), err)
		}
		paused, err := venus.PackSetActionsPaused(targets, venus.PausedActions(), true)
		if err != nil {
			return nil, fmt.Errorf("failed to encode setActionsPaused: %w", err)
		}
		collateral, err := venus.PackSetCollateralFactor(market, new(big.Int), record.LiquidationThresholdMantissa)
		if err != nil {
			return nil, fmt.Errorf("failed to encode setCollateralFactor: %w", err)
		}
		plan.LiquidationThreshold = record.LiquidationThresholdMantissa
		plan.Calls = []multisend.Transaction{
			multisend.Call(comptroller, paused),
			multisend.Call(comptroller, collateral),
		}
	}

	payload, err := multisend.PackMultiSend(plan.Calls)
	if err != nil {
		return nil, err
	}
	plan.Payload = payload
	return plan, nil
}

var _ interfaces.PauseService = (*PauseModuleService)(nil)
