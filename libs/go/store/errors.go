package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey is what the memory store reports where Postgres raises a unique violation.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

const uniqueViolation = "23505"

// IsDuplicateKey reports whether err is a primary key conflict from either store.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
