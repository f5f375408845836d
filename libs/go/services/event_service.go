package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventService persists observations and forwards market pauses to a publisher.
type EventService struct {
	store     store.Store
	publisher interfaces.EventPublisher
	logger    *zap.Logger
}

// NewEventService creates a new event service. publisher may be nil.
func NewEventService(st store.Store, publisher interfaces.EventPublisher) *EventService {
	return &EventService{
		store:     st,
		publisher: publisher,
		logger:    logger.Named(logger.ComponentStore),
	}
}

// Record stores ev and publishes it when it reports a market pause.
func (s *EventService) Record(ctx context.Context, ev business.Event) error {
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		return insertEvent(ctx, q, ev)
	})
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", ev.Name, err)
	}

	if s.publisher != nil && ev.Name == constants.EventMarketPausedByMonitoring {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			// the pause already happened; the queue is best effort
			s.logger.Warn("Failed to publish event",
				zap.String("event", ev.Name),
				zap.String("account", ev.Account.Hex()),
				zap.Error(err))
		}
	}
	return nil
}

// List returns the newest observations for account.
func (s *EventService) List(ctx context.Context, account common.Address, limit int32) ([]business.Event, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	rows, err := s.store.ListGuardEvents(ctx, db.ListGuardEventsParams{
		Account: helpers.AddressKey(account),
		Limit:   limit,
	})
	if err != nil {
		s.logger.Error("Failed to list events", zap.String("account", account.Hex()), zap.Error(err))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]business.Event, 0, len(rows))
	for _, row := range rows {
		ev, err := eventFromRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func insertEvent(ctx context.Context, q db.Querier, ev business.Event) error {
	fields := ev.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode event fields: %w", err)
	}
	_, err = q.InsertGuardEvent(ctx, db.InsertGuardEventParams{
		Name:    ev.Name,
		Account: helpers.AddressKey(ev.Account),
		Payload: payload,
	})
	return err
}

func eventFromRow(row db.GuardEvent) (business.Event, error) {
	fields := map[string]string{}
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &fields); err != nil {
			return business.Event{}, fmt.Errorf("failed to decode event %d: %w", row.ID, err)
		}
	}
	return business.Event{
		ID:        row.ID,
		Name:      row.Name,
		Account:   common.HexToAddress(row.Account),
		Fields:    fields,
		CreatedAt: helpers.TimestamptzToTime(row.CreatedAt),
	}, nil
}
