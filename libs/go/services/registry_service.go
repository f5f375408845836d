package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

// RegistryService maintains the per account executor and auditor sets.
// Only the account itself, acting as a contract, may change its sets.
type RegistryService struct {
	store   store.Store
	code    interfaces.CodeReader
	metrics *metrics.PromIndicators
	logger  *zap.Logger
}

// NewRegistryService creates a new registry service. indicators may be nil.
func NewRegistryService(st store.Store, code interfaces.CodeReader, indicators *metrics.PromIndicators) *RegistryService {
	return &RegistryService{
		store:   st,
		code:    code,
		metrics: indicators,
		logger:  logger.Named(logger.ComponentRegistry),
	}
}

// Add appends member to the kind set of account.
func (s *RegistryService) Add(ctx context.Context, kind business.RegistryKind, caller, account, member common.Address) error {
	return s.AddBatch(ctx, kind, caller, account, []common.Address{member})
}

// AddBatch appends members in order. Any invalid element aborts the whole batch.
func (s *RegistryService) AddBatch(ctx context.Context, kind business.RegistryKind, caller, account common.Address, members []common.Address) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, kind)
	}
	if err := s.authorize(ctx, caller, account); err != nil {
		return err
	}
	if len(members) == 0 {
		return ErrEmptyInput
	}

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		for _, member := range members {
			if err := s.add(ctx, q, kind, account, member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("Registry add rejected",
			zap.String("kind", kind.String()),
			zap.String("account", account.Hex()),
			zap.Error(err))
		return err
	}

	for _, member := range members {
		s.metrics.AddRegistryChange(kind.String(), "add")
		s.logger.Info("Registry member added",
			zap.String("kind", kind.String()),
			zap.String("account", account.Hex()),
			zap.String("member", member.Hex()))
	}
	return nil
}

func (s *RegistryService) add(ctx context.Context, q db.Querier, kind business.RegistryKind, account, member common.Address) error {
	if helpers.IsZeroAddress(member) {
		return ErrZeroAddress
	}
	exists, err := q.RegistryMemberExists(ctx, db.RegistryMemberExistsParams{
		Kind:    kind.String(),
		Account: helpers.AddressKey(account),
		Member:  helpers.AddressKey(member),
	})
	if err != nil {
		return fmt.Errorf("failed to check registry member: %w", err)
	}
	if exists {
		return &AlreadyPresentError{Kind: kind, Member: member}
	}

	_, err = q.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{
		Kind:    kind.String(),
		Account: helpers.AddressKey(account),
		Member:  helpers.AddressKey(member),
	})
	if err != nil {
		if store.IsDuplicateKey(err) {
			return &AlreadyPresentError{Kind: kind, Member: member}
		}
		return fmt.Errorf("failed to insert registry member: %w", err)
	}

	return insertEvent(ctx, q, business.Event{
		Name:    kind.AddedEvent(),
		Account: account,
		Fields:  map[string]string{"member": member.Hex()},
	})
}

// Remove deletes member from the kind set of account, keeping the order of the others.
func (s *RegistryService) Remove(ctx context.Context, kind business.RegistryKind, caller, account, member common.Address) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, kind)
	}
	if err := s.authorize(ctx, caller, account); err != nil {
		return err
	}
	if helpers.IsZeroAddress(member) {
		return ErrZeroAddress
	}

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		n, err := q.DeleteRegistryMember(ctx, db.DeleteRegistryMemberParams{
			Kind:    kind.String(),
			Account: helpers.AddressKey(account),
			Member:  helpers.AddressKey(member),
		})
		if err != nil {
			return fmt.Errorf("failed to delete registry member: %w", err)
		}
		if n == 0 {
			return &NotPresentError{Kind: kind, Member: member}
		}
		return insertEvent(ctx, q, business.Event{
			Name:    kind.RemovedEvent(),
			Account: account,
			Fields:  map[string]string{"member": member.Hex()},
		})
	})
	if err != nil {
		return err
	}

	s.metrics.AddRegistryChange(kind.String(), "remove")
	s.logger.Info("Registry member removed",
		zap.String("kind", kind.String()),
		zap.String("account", account.Hex()),
		zap.String("member", member.Hex()))
	return nil
}

// List returns the members in insertion order. Unknown accounts yield an empty slice.
func (s *RegistryService) List(ctx context.Context, kind business.RegistryKind, account common.Address) ([]common.Address, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegistry, kind)
	}
	rows, err := s.store.ListRegistryMembers(ctx, db.ListRegistryMembersParams{
		Kind:    kind.String(),
		Account: helpers.AddressKey(account),
	})
	if err != nil {
		s.logger.Error("Failed to list registry members",
			zap.String("kind", kind.String()),
			zap.String("account", account.Hex()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list registry members: %w", err)
	}

	members := make([]common.Address, 0, len(rows))
	for _, row := range rows {
		members = append(members, common.HexToAddress(row.Member))
	}
	return members, nil
}

// Contains reports whether member is in the kind set of account.
func (s *RegistryService) Contains(ctx context.Context, kind business.RegistryKind, account, member common.Address) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownRegistry, kind)
	}
	exists, err := s.store.RegistryMemberExists(ctx, db.RegistryMemberExistsParams{
		Kind:    kind.String(),
		Account: helpers.AddressKey(account),
		Member:  helpers.AddressKey(member),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check registry member: %w", err)
	}
	return exists, nil
}

func (s *RegistryService) authorize(ctx context.Context, caller, account common.Address) error {
	if caller != account {
		return ErrUnauthorized
	}
	isContract, err := s.code.IsContract(ctx, caller)
	if err != nil {
		return fmt.Errorf("failed to read caller code: %w", err)
	}
	if !isContract {
		return ErrCallerNotContract
	}
	return nil
}

var _ interfaces.RegistryService = (*RegistryService)(nil)
