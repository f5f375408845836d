package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/mocks"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var chainID = big.NewInt(31337)

type guardFixture struct {
	guard     *services.SafeGuardService
	registry  *services.RegistryService
	approvals *services.ApprovalService
	nonce     *big.Int
}

// newGuardFixture wires a guard whose account reader hashes like a Safe at the fixture nonce.
func newGuardFixture(t *testing.T, indicators *metrics.PromIndicators) *guardFixture {
	t.Helper()
	ctx := context.Background()
	approvals, registry, _ := newApprovals(t)
	require.NoError(t, registry.AddBatch(ctx, business.RegistryExecutors, safeAccount, safeAccount, []common.Address{executor1, executor2}))

	f := &guardFixture{registry: registry, approvals: approvals, nonce: big.NewInt(0)}

	accounts := mocks.NewMockAccountReaderForTest(t)
	accounts.EXPECT().Nonce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, common.Address) (*big.Int, error) {
			return new(big.Int).Set(f.nonce), nil
		}).AnyTimes()
	accounts.EXPECT().GetTransactionHash(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, account common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
			return safetx.TransactionHash(chainID, account, tx, nonce)
		}).AnyTimes()

	f.guard = services.NewSafeGuardService(registry, approvals, accounts, indicators)
	return f
}

func transferTx() business.SafeTransaction {
	value, _ := new(big.Int).SetString("1000000000000000000", 10)
	return business.SafeTransaction{
		To:    common.HexToAddress("0x6666666666666666666666666666666666666667"),
		Value: value,
	}
}

func (f *guardFixture) approve(t *testing.T, tx business.SafeTransaction, nonce *big.Int) {
	t.Helper()
	hash, err := f.guard.TransactionHash(chainID, safeAccount, tx, nonce)
	require.NoError(t, err)
	require.NoError(t, f.approvals.Approve(context.Background(), auditor1, safeAccount, nonce, hash))
}

func TestSafeGuardService_CheckTransaction(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	indicators := metrics.NewPromIndicators(reg)
	f := newGuardFixture(t, indicators)
	tx := transferTx()

	// not an executor is reported before the missing approval
	decision, err := f.guard.CheckTransaction(ctx, safeAccount, tx, ownerEOA)
	var notExecutor *services.NotExecutorError
	require.True(t, errors.As(err, &notExecutor))
	assert.Equal(t, ownerEOA, notExecutor.Submitter)
	assert.Equal(t, "NotExecutor("+ownerEOA.Hex()+")", err.Error())
	assert.False(t, decision.Accepted)

	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	assert.ErrorIs(t, err, services.ErrInvalidHash)

	f.approve(t, tx, big.NewInt(0))

	decision, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Equal(t, int64(0), decision.Nonce.Int64())

	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor2)
	require.NoError(t, err)

	// accepted, not_executor and invalid_hash series
	series, err := testutil.GatherAndCount(reg, "guardian_guard_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series)
}

func TestSafeGuardService_RejectsMismatchedTransaction(t *testing.T) {
	ctx := context.Background()
	f := newGuardFixture(t, nil)
	tx := transferTx()
	f.approve(t, tx, big.NewInt(0))

	other := tx
	other.Value = big.NewInt(2)
	_, err := f.guard.CheckTransaction(ctx, safeAccount, other, executor1)
	assert.ErrorIs(t, err, services.ErrInvalidHash)

	delegate := tx
	delegate.Operation = 1
	_, err = f.guard.CheckTransaction(ctx, safeAccount, delegate, executor1)
	assert.ErrorIs(t, err, services.ErrInvalidHash)
}

func TestSafeGuardService_ApprovalIsBoundToNonce(t *testing.T) {
	ctx := context.Background()
	f := newGuardFixture(t, nil)
	tx := transferTx()

	// approved for nonce 1 only
	f.approve(t, tx, big.NewInt(1))
	_, err := f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	assert.ErrorIs(t, err, services.ErrInvalidHash)

	f.nonce = big.NewInt(1)
	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	require.NoError(t, err)

	// an approval for nonce 3 survives executions at other nonces
	f.approve(t, tx, big.NewInt(3))
	f.nonce = big.NewInt(2)
	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	assert.ErrorIs(t, err, services.ErrInvalidHash)
	f.nonce = big.NewInt(3)
	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	require.NoError(t, err)
}

func TestSafeGuardService_EmptyExecutorSetRejects(t *testing.T) {
	ctx := context.Background()
	f := newGuardFixture(t, nil)

	_, err := f.guard.CheckTransaction(ctx, otherSafe, transferTx(), executor1)
	assert.ErrorIs(t, err, services.ErrNotExecutor)

	_, err = f.guard.CheckTransaction(ctx, safeAccount, transferTx(), zeroAddress)
	assert.ErrorIs(t, err, services.ErrNotExecutor)
}

func TestSafeGuardService_RemovedExecutor(t *testing.T) {
	ctx := context.Background()
	f := newGuardFixture(t, nil)
	tx := transferTx()
	f.approve(t, tx, big.NewInt(0))

	require.NoError(t, f.registry.Remove(ctx, business.RegistryExecutors, safeAccount, safeAccount, executor1))

	_, err := f.guard.CheckTransaction(ctx, safeAccount, tx, executor1)
	assert.ErrorIs(t, err, services.ErrNotExecutor)
	_, err = f.guard.CheckTransaction(ctx, safeAccount, tx, executor2)
	require.NoError(t, err)
}

func TestSafeGuardService_NoopHooks(t *testing.T) {
	ctx := context.Background()
	f := newGuardFixture(t, nil)

	assert.NoError(t, f.guard.CheckAfterExecution(ctx, safeAccount, common.HexToHash("0x01"), true))
	assert.NoError(t, f.guard.CheckAfterExecution(ctx, safeAccount, common.Hash{}, false))
	assert.NoError(t, f.guard.Fallback(ctx, safeAccount, []byte{0xde, 0xad, 0xbe, 0xef}))
	assert.NoError(t, f.guard.Fallback(ctx, safeAccount, nil))
}

func TestSafeGuardService_EncodeTransactionData(t *testing.T) {
	f := newGuardFixture(t, nil)
	tx := transferTx()
	tx.To = common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := f.guard.EncodeTransactionData(chainID, safeAccount, tx, big.NewInt(0))
	require.NoError(t, err)
	require.Len(t, data, 66)
	assert.Equal(t, []byte{0x19, 0x01}, data[:2])

	hash, err := f.guard.TransactionHash(chainID, safeAccount, tx, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138"), hash)
}

func TestSafeGuardService_ReaderFailure(t *testing.T) {
	ctx := context.Background()
	approvals, registry, _ := newApprovals(t)
	require.NoError(t, registry.Add(ctx, business.RegistryExecutors, safeAccount, safeAccount, executor1))

	accounts := mocks.NewMockAccountReaderForTest(t)
	accounts.EXPECT().Nonce(ctx, safeAccount).Return(nil, errors.New("rpc down"))

	guard := services.NewSafeGuardService(registry, approvals, accounts, nil)
	decision, err := guard.CheckTransaction(ctx, safeAccount, transferTx(), executor1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read account nonce")
	assert.False(t, decision.Accepted)
}

func TestExecutorsGuardService(t *testing.T) {
	ctx := context.Background()
	_, registry, _ := newApprovals(t)
	require.NoError(t, registry.Add(ctx, business.RegistryExecutors, safeAccount, safeAccount, executor1))

	guard := services.NewExecutorsGuardService(registry, nil)

	decision, err := guard.CheckTransaction(ctx, safeAccount, transferTx(), executor1)
	require.NoError(t, err)
	assert.True(t, decision.Accepted)

	_, err = guard.CheckTransaction(ctx, safeAccount, transferTx(), executor2)
	assert.ErrorIs(t, err, services.ErrNotExecutor)

	_, err = guard.CheckTransaction(ctx, otherSafe, transferTx(), executor1)
	assert.ErrorIs(t, err, services.ErrNotExecutor)

	assert.NoError(t, guard.CheckAfterExecution(ctx, safeAccount, common.Hash{}, true))
	assert.NoError(t, guard.Fallback(ctx, safeAccount, []byte{1, 2, 3}))
}
