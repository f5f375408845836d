package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// maxUint256 bounds nonces to what a Safe can hold.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ApprovalService records the fingerprint an auditor approved for an account nonce.
// A later approval for the same nonce replaces the earlier one. There is no revoke.
type ApprovalService struct {
	store   store.Store
	metrics *metrics.PromIndicators
	logger  *zap.Logger
}

// NewApprovalService creates a new approval service. indicators may be nil.
func NewApprovalService(st store.Store, indicators *metrics.PromIndicators) *ApprovalService {
	return &ApprovalService{
		store:   st,
		metrics: indicators,
		logger:  logger.Named(logger.ComponentGuard),
	}
}

// Approve stores fingerprint for (account, nonce). caller must be an auditor of account.
func (s *ApprovalService) Approve(ctx context.Context, caller, account common.Address, nonce *big.Int, fingerprint common.Hash) error {
	return s.ApproveBatch(ctx, caller, account, []*big.Int{nonce}, []common.Hash{fingerprint})
}

// ApproveBatch stores fingerprints[i] for nonces[i], all or nothing.
func (s *ApprovalService) ApproveBatch(ctx context.Context, caller, account common.Address, nonces []*big.Int, fingerprints []common.Hash) error {
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		allowed, err := q.RegistryMemberExists(ctx, db.RegistryMemberExistsParams{
			Kind:    business.RegistryAuditors.String(),
			Account: helpers.AddressKey(account),
			Member:  helpers.AddressKey(caller),
		})
		if err != nil {
			return fmt.Errorf("failed to check auditor: %w", err)
		}
		if !allowed {
			return ErrAuditorNotAllowed
		}
		if len(nonces) == 0 || len(fingerprints) == 0 {
			return ErrEmptyInput
		}
		if len(nonces) != len(fingerprints) {
			return ErrLengthMismatch
		}

		for i, nonce := range nonces {
			if nonce == nil || nonce.Sign() < 0 || nonce.Cmp(maxUint256) > 0 {
				return fmt.Errorf("%w at index %d", ErrInvalidNonce, i)
			}
			_, err := q.UpsertApproval(ctx, db.UpsertApprovalParams{
				Account:     helpers.AddressKey(account),
				Nonce:       helpers.BigToNumeric(nonce),
				Fingerprint: fingerprints[i].Bytes(),
				Auditor:     helpers.AddressKey(caller),
			})
			if err != nil {
				return fmt.Errorf("failed to store approval: %w", err)
			}
			err = insertEvent(ctx, q, business.Event{
				Name:    constants.EventMessageHashAdded,
				Account: account,
				Fields: map[string]string{
					"nonce": nonce.String(),
					"hash":  fingerprints[i].Hex(),
				},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("Approval rejected",
			zap.String("account", account.Hex()),
			zap.String("caller", caller.Hex()),
			zap.Error(err))
		return err
	}

	s.metrics.AddApprovals(len(nonces))
	s.logger.Info("Approvals recorded",
		zap.String("account", account.Hex()),
		zap.String("auditor", caller.Hex()),
		zap.Int("count", len(nonces)))
	return nil
}

// Get returns the approved fingerprint for (account, nonce) and whether one exists.
func (s *ApprovalService) Get(ctx context.Context, account common.Address, nonce *big.Int) (common.Hash, bool, error) {
	if nonce == nil || nonce.Sign() < 0 {
		return common.Hash{}, false, nil
	}
	row, err := s.store.GetApproval(ctx, db.GetApprovalParams{
		Account: helpers.AddressKey(account),
		Nonce:   helpers.BigToNumeric(nonce),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.Hash{}, false, nil
		}
		s.logger.Error("Failed to get approval",
			zap.String("account", account.Hex()),
			zap.String("nonce", nonce.String()),
			zap.Error(err))
		return common.Hash{}, false, fmt.Errorf("failed to get approval: %w", err)
	}
	return common.BytesToHash(row.Fingerprint), true, nil
}

// List returns every approval of account, newest nonce first.
func (s *ApprovalService) List(ctx context.Context, account common.Address) ([]business.Approval, error) {
	rows, err := s.store.ListApprovals(ctx, helpers.AddressKey(account))
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	approvals := make([]business.Approval, 0, len(rows))
	for _, row := range rows {
		nonce, err := helpers.NumericToBig(row.Nonce)
		if err != nil {
			return nil, fmt.Errorf("failed to decode approval nonce: %w", err)
		}
		approvals = append(approvals, business.Approval{
			Account:     common.HexToAddress(row.Account),
			Nonce:       nonce,
			Fingerprint: common.BytesToHash(row.Fingerprint),
			Auditor:     common.HexToAddress(row.Auditor),
			UpdatedAt:   helpers.TimestamptzToTime(row.UpdatedAt),
		})
	}
	return approvals, nil
}

var _ interfaces.ApprovalService = (*ApprovalService)(nil)
