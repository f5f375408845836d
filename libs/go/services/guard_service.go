package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

const (
	reasonNotExecutor = "not_executor"
	reasonInvalidHash = "invalid_hash"
	reasonError       = "error"
)

// SafeGuardService admits a Safe transaction only when the submitter is an
// executor of the Safe and an auditor approved the exact transaction for the
// Safe's current nonce.
type SafeGuardService struct {
	registry  interfaces.RegistryService
	approvals interfaces.ApprovalService
	accounts  interfaces.AccountReader
	metrics   *metrics.PromIndicators
	logger    *zap.Logger
}

// NewSafeGuardService creates a new guard. indicators may be nil.
func NewSafeGuardService(registry interfaces.RegistryService, approvals interfaces.ApprovalService, accounts interfaces.AccountReader, indicators *metrics.PromIndicators) *SafeGuardService {
	return &SafeGuardService{
		registry:  registry,
		approvals: approvals,
		accounts:  accounts,
		metrics:   indicators,
		logger:    logger.Named(logger.ComponentGuard),
	}
}

// CheckTransaction never mutates state. The returned decision is filled in
// whether or not the transaction is admitted.
func (s *SafeGuardService) CheckTransaction(ctx context.Context, account common.Address, tx business.SafeTransaction, submitter common.Address) (*business.GuardDecision, error) {
	decision := &business.GuardDecision{Account: account, Submitter: submitter}

	if err := checkExecutor(ctx, s.registry, account, submitter); err != nil {
		return s.reject(decision, err)
	}

	nonce, err := s.accounts.Nonce(ctx, account)
	if err != nil {
		return s.reject(decision, fmt.Errorf("failed to read account nonce: %w", err))
	}
	decision.Nonce = nonce

	fingerprint, err := s.accounts.GetTransactionHash(ctx, account, tx, nonce)
	if err != nil {
		return s.reject(decision, fmt.Errorf("failed to compute transaction hash: %w", err))
	}
	decision.Fingerprint = fingerprint

	approved, found, err := s.approvals.Get(ctx, account, nonce)
	if err != nil {
		return s.reject(decision, err)
	}
	if !found || approved != fingerprint {
		return s.reject(decision, ErrInvalidHash)
	}

	decision.Accepted = true
	s.metrics.AddGuardDecision(constants.DecisionAccepted, "")
	s.logger.Info("Transaction admitted",
		zap.String("account", account.Hex()),
		zap.String("submitter", submitter.Hex()),
		zap.String("nonce", nonce.String()),
		zap.String("fingerprint", fingerprint.Hex()))
	return decision, nil
}

func (s *SafeGuardService) reject(decision *business.GuardDecision, err error) (*business.GuardDecision, error) {
	return rejectDecision(s.metrics, s.logger, decision, err)
}

// CheckAfterExecution is a no-op.
func (s *SafeGuardService) CheckAfterExecution(ctx context.Context, account common.Address, txHash common.Hash, success bool) error {
	s.logger.Debug("Post execution hook",
		zap.String("account", account.Hex()),
		zap.String("tx_hash", txHash.Hex()),
		zap.Bool("success", success))
	return nil
}

// Fallback accepts any calldata without effect.
func (s *SafeGuardService) Fallback(ctx context.Context, account common.Address, calldata []byte) error {
	s.logger.Debug("Fallback call ignored",
		zap.String("account", account.Hex()),
		zap.Int("calldata_len", len(calldata)))
	return nil
}

// EncodeTransactionData returns the EIP-712 pre-image an auditor signs off on.
func (s *SafeGuardService) EncodeTransactionData(chainID *big.Int, account common.Address, tx business.SafeTransaction, nonce *big.Int) ([]byte, error) {
	return safetx.EncodeTransactionData(chainID, account, tx, nonce)
}

// TransactionHash returns keccak256 of EncodeTransactionData.
func (s *SafeGuardService) TransactionHash(chainID *big.Int, account common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
	return safetx.TransactionHash(chainID, account, tx, nonce)
}

// ExecutorsGuardService only restricts who may submit; it does not look at approvals.
type ExecutorsGuardService struct {
	registry interfaces.RegistryService
	metrics  *metrics.PromIndicators
	logger   *zap.Logger
}

func NewExecutorsGuardService(registry interfaces.RegistryService, indicators *metrics.PromIndicators) *ExecutorsGuardService {
	return &ExecutorsGuardService{
		registry: registry,
		metrics:  indicators,
		logger:   logger.Named(logger.ComponentGuard),
	}
}

func (s *ExecutorsGuardService) CheckTransaction(ctx context.Context, account common.Address, tx business.SafeTransaction, submitter common.Address) (*business.GuardDecision, error) {
	decision := &business.GuardDecision{Account: account, Submitter: submitter}
	if err := checkExecutor(ctx, s.registry, account, submitter); err != nil {
		return rejectDecision(s.metrics, s.logger, decision, err)
	}
	decision.Accepted = true
	s.metrics.AddGuardDecision(constants.DecisionAccepted, "")
	return decision, nil
}

func (s *ExecutorsGuardService) CheckAfterExecution(ctx context.Context, account common.Address, txHash common.Hash, success bool) error {
	return nil
}

func (s *ExecutorsGuardService) Fallback(ctx context.Context, account common.Address, calldata []byte) error {
	return nil
}

func checkExecutor(ctx context.Context, registry interfaces.RegistryService, account, submitter common.Address) error {
	ok, err := registry.Contains(ctx, business.RegistryExecutors, account, submitter)
	if err != nil {
		return err
	}
	if !ok {
		return &NotExecutorError{Submitter: submitter}
	}
	return nil
}

func rejectDecision(indicators *metrics.PromIndicators, log *zap.Logger, decision *business.GuardDecision, err error) (*business.GuardDecision, error) {
	reason := reasonError
	switch {
	case errors.Is(err, ErrNotExecutor):
		reason = reasonNotExecutor
	case errors.Is(err, ErrInvalidHash):
		reason = reasonInvalidHash
	}
	decision.Accepted = false
	decision.Reason = err.Error()

	indicators.AddGuardDecision(constants.DecisionRejected, reason)
	log.Warn("Transaction rejected",
		zap.String("account", decision.Account.Hex()),
		zap.String("submitter", decision.Submitter.Hex()),
		zap.String("reason", reason),
		zap.Error(err))
	return decision, err
}

var (
	_ interfaces.GuardService = (*SafeGuardService)(nil)
	_ interfaces.GuardService = (*ExecutorsGuardService)(nil)
)
