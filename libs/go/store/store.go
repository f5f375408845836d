// Package store gives the guard services transactional access to registry,
// approval and event rows, backed by Postgres or by process memory.
package store

import (
	"context"

	"github.com/guardian/guardian-api/libs/go/db"
)

// TxFunc runs against a querier bound to one transaction.
type TxFunc func(q db.Querier) error

// Store is the persistence boundary of the guard. Every mutation goes through
// ExecTx so a failing call leaves no partial change behind.
type Store interface {
	db.Querier
	ExecTx(ctx context.Context, fn TxFunc) error
}
