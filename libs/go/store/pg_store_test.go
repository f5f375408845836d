package store_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16-alpine3.20"
	pgDatabase = "guardian"
	pgUser     = "docker"
	pgPassword = "password"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDatabase),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func TestPgStore_Queries(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	s := store.NewPgStore(pool)

	for _, m := range []string{memberA, memberB, memberC} {
		_, err := s.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{Kind: "executor", Account: account, Member: m})
		require.NoError(t, err)
	}
	_, err := s.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{Kind: "executor", Account: account, Member: memberA})
	assert.True(t, store.IsDuplicateKey(err))

	n, err := s.DeleteRegistryMember(ctx, db.DeleteRegistryMemberParams{Kind: "executor", Account: account, Member: memberA})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = s.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{Kind: "executor", Account: account, Member: memberA})
	require.NoError(t, err)

	assert.Equal(t, []string{memberB, memberC, memberA}, members(t, s, "executor"))

	exists, err := s.RegistryMemberExists(ctx, db.RegistryMemberExistsParams{Kind: "auditor", Account: account, Member: memberA})
	require.NoError(t, err)
	assert.False(t, exists)

	nonce := new(big.Int).Lsh(big.NewInt(1), 200)
	fp := make([]byte, 32)
	fp[31] = 1
	_, err = s.UpsertApproval(ctx, db.UpsertApprovalParams{Account: account, Nonce: helpers.BigToNumeric(nonce), Fingerprint: fp, Auditor: memberA})
	require.NoError(t, err)
	fp2 := make([]byte, 32)
	fp2[31] = 2
	_, err = s.UpsertApproval(ctx, db.UpsertApprovalParams{Account: account, Nonce: helpers.BigToNumeric(nonce), Fingerprint: fp2, Auditor: memberB})
	require.NoError(t, err)

	got, err := s.GetApproval(ctx, db.GetApprovalParams{Account: account, Nonce: helpers.BigToNumeric(nonce)})
	require.NoError(t, err)
	assert.Equal(t, fp2, got.Fingerprint)
	back, err := helpers.NumericToBig(got.Nonce)
	require.NoError(t, err)
	assert.Equal(t, 0, nonce.Cmp(back))

	_, err = s.GetApproval(ctx, db.GetApprovalParams{Account: account, Nonce: helpers.BigToNumeric(big.NewInt(5))})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestPgStore_ExecTxRollsBack(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	s := store.NewPgStore(pool)
	boom := errors.New("boom")

	err := s.ExecTx(ctx, func(q db.Querier) error {
		if _, err := q.InsertRegistryMember(ctx, db.InsertRegistryMemberParams{Kind: "auditor", Account: account, Member: memberA}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, members(t, s, "auditor"))

	require.NoError(t, s.Ping(ctx))
}
