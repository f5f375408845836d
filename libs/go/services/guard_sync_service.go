package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

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

const defaultSyncBatchBlocks = 2000

// GuardSyncConfig selects the deployed guard to mirror.
type GuardSyncConfig struct {
	Guard common.Address
	// StartBlock is scanned first when no cursor is stored yet.
	StartBlock uint64
	// Confirmations keeps the mirror this many blocks behind the head.
	Confirmations uint64
	// BatchBlocks bounds the range of one log query. Zero selects 2000.
	BatchBlocks uint64
}

// GuardSyncService mirrors the registry and approval logs of a deployed
// SafeGuard into the store, so the registry, approval and guard services
// answer from the state the contract enforces. The changes of a block range
// and the cursor past it are committed in one transaction.
type GuardSyncService struct {
	store   store.Store
	source  interfaces.GuardLogSource
	cfg     GuardSyncConfig
	metrics *metrics.PromIndicators
	logger  *zap.Logger
}

// NewGuardSyncService creates a new sync service. indicators may be nil.
func NewGuardSyncService(st store.Store, source interfaces.GuardLogSource, cfg GuardSyncConfig, indicators *metrics.PromIndicators) (*GuardSyncService, error) {
	if helpers.IsZeroAddress(cfg.Guard) {
		return nil, fmt.Errorf("guard address: %w", ErrZeroAddress)
	}
	if cfg.BatchBlocks == 0 {
		cfg.BatchBlocks = defaultSyncBatchBlocks
	}
	return &GuardSyncService{
		store:   st,
		source:  source,
		cfg:     cfg,
		metrics: indicators,
		logger:  logger.Named(logger.ComponentStore).With(zap.String("guard", cfg.Guard.Hex())),
	}, nil
}

// Sync mirrors every confirmed block past the cursor and returns the number
// of logs applied. Ranges applied before a failure stay committed.
func (s *GuardSyncService) Sync(ctx context.Context) (int, error) {
	head, err := s.source.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}
	if head < s.cfg.Confirmations {
		return 0, nil
	}
	target := head - s.cfg.Confirmations

	next, err := s.nextBlock(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for next <= target {
		to := next + s.cfg.BatchBlocks - 1
		if to > target {
			to = target
		}
		changes, err := s.source.GuardChanges(ctx, s.cfg.Guard, next, to)
		if err != nil {
			return applied, err
		}

		err = s.store.ExecTx(ctx, func(q db.Querier) error {
			for _, change := range changes {
				if err := applyGuardChange(ctx, q, change); err != nil {
					return err
				}
			}
			_, err := q.UpsertSyncCursor(ctx, db.UpsertSyncCursorParams{
				Guard:     helpers.AddressKey(s.cfg.Guard),
				LastBlock: int64(to),
			})
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("failed to apply guard logs in [%d, %d]: %w", next, to, err)
		}

		for _, change := range changes {
			s.metrics.AddGuardSyncChange(change.Name)
		}
		s.metrics.SetGuardSyncBlock(to)
		applied += len(changes)
		next = to + 1
	}

	if applied > 0 {
		s.logger.Info("Guard logs mirrored",
			zap.Int("changes", applied),
			zap.Uint64("block", target))
	}
	return applied, nil
}

// Run syncs every interval until ctx is done. A failed pass is retried on the next tick.
func (s *GuardSyncService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("Guard sync failed", zap.Error(err))
			}
		}
	}
}

func (s *GuardSyncService) nextBlock(ctx context.Context) (uint64, error) {
	cursor, err := s.store.GetSyncCursor(ctx, helpers.AddressKey(s.cfg.Guard))
	if errors.Is(err, pgx.ErrNoRows) {
		return s.cfg.StartBlock, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sync cursor: %w", err)
	}
	return uint64(cursor.LastBlock) + 1, nil
}

// applyGuardChange writes one contract log. Replayed adds and removes are no-ops,
// so a re-scanned range converges to the same rows.
func applyGuardChange(ctx context.Context, q db.Querier, change business.GuardChange) error {
	fields := map[string]string{
		"block":   strconv.FormatUint(change.Block, 10),
		"tx_hash": change.TxHash.Hex(),
	}

	switch change.Name {
	case constants.EventExecutorAdded, constants.EventAuditorAdded:
		kind, _ := change.Registry()
		exists, err := q.RegistryMemberExists(ctx, db.RegistryMemberExistsParams{
			Kind:    kind.String(),
			Account: helpers.AddressKey(change.Account),
			Member:  helpers.AddressKey(change.Member),
		})
		if err != nil {
			return fmt.Errorf("failed to check registry member: %w", err)
		}
		if !exists {
			_, err = q.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{
				Kind:    kind.String(),
				Account: helpers.AddressKey(change.Account),
				Member:  helpers.AddressKey(change.Member),
			})
			if err != nil {
				return fmt.Errorf("failed to insert registry member: %w", err)
			}
		}
		fields["member"] = change.Member.Hex()

	case constants.EventExecutorRemoved, constants.EventAuditorRemoved:
		kind, _ := change.Registry()
		_, err := q.DeleteRegistryMember(ctx, db.DeleteRegistryMemberParams{
			Kind:    kind.String(),
			Account: helpers.AddressKey(change.Account),
			Member:  helpers.AddressKey(change.Member),
		})
		if err != nil {
			return fmt.Errorf("failed to delete registry member: %w", err)
		}
		fields["member"] = change.Member.Hex()

	case constants.EventMessageHashAdded:
		if change.Nonce == nil || change.Nonce.Sign() < 0 {
			return fmt.Errorf("%w in %s", ErrInvalidNonce, change.TxHash.Hex())
		}
		_, err := q.UpsertApproval(ctx, db.UpsertApprovalParams{
			Account:     helpers.AddressKey(change.Account),
			Nonce:       helpers.BigToNumeric(change.Nonce),
			Fingerprint: change.Hash.Bytes(),
			Auditor:     helpers.AddressKey(change.Sender),
		})
		if err != nil {
			return fmt.Errorf("failed to store approval: %w", err)
		}
		fields["nonce"] = change.Nonce.String()
		fields["hash"] = change.Hash.Hex()

	default:
		return fmt.Errorf("unexpected guard log %q", change.Name)
	}

	return insertEvent(ctx, q, business.Event{
		Name:    change.Name,
		Account: change.Account,
		Fields:  fields,
	})
}
