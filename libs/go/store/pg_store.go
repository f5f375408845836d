package store

import (
	"context"

	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxSerializationRetries = 3

// PgStore runs queries on a pgx pool. Transactions are serializable so that
// concurrent registry updates for one account are applied one after another.
type PgStore struct {
	*db.Queries
	pool *pgxpool.Pool
}

// NewPgStore wraps pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Queries: db.New(pool), pool: pool}
}

// ExecTx implements Store.
func (s *PgStore) ExecTx(ctx context.Context, fn TxFunc) error {
	return helpers.WithTransactionRetry(ctx, s.pool, maxSerializationRetries, func(tx pgx.Tx) error {
		return fn(s.Queries.WithTx(tx))
	})
}

// Ping checks connectivity, used by the health endpoint.
func (s *PgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var _ Store = (*PgStore)(nil)
