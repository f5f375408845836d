package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TransactionFunc is a function that executes within a database transaction
type TransactionFunc func(tx pgx.Tx) error

// serializationFailure is the SQLSTATE Postgres reports when a serializable transaction must be retried.
const serializationFailure = "40001"

// WithTransaction runs fn inside a transaction. It commits when fn returns nil
// and rolls back otherwise.
func WithTransaction(ctx context.Context, db TxBeginner, fn TransactionFunc) error {
	return WithTransactionOptions(ctx, db, pgx.TxOptions{}, fn)
}

// WithTransactionOptions is WithTransaction with explicit isolation settings.
func WithTransactionOptions(ctx context.Context, db TxBeginner, opts pgx.TxOptions, fn TransactionFunc) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		// ErrTxClosed means the commit already went through
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			logger.Named(logger.ComponentStore).Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WithTransactionRetry retries serializable transactions up to maxRetries times
// when Postgres reports a serialization failure.
func WithTransactionRetry(ctx context.Context, db TxBeginner, maxRetries int, fn TransactionFunc) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = WithTransactionOptions(ctx, db, opts, fn)
		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != serializationFailure {
			return err
		}
		if attempt < maxRetries {
			logger.Named(logger.ComponentStore).Warn("Serialization failure, retrying transaction",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
		}
	}
	return err
}
