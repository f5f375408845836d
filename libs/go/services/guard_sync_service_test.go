package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/mocks"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var guardContract = common.HexToAddress("0x4000000000000000000000000000000000000001")

func memberChange(name string, block uint64, member common.Address) business.GuardChange {
	return business.GuardChange{Name: name, Account: safeAccount, Member: member, Block: block}
}

func approvalChange(block uint64, nonce int64, hash common.Hash, sender common.Address) business.GuardChange {
	return business.GuardChange{
		Name:    constants.EventMessageHashAdded,
		Account: safeAccount,
		Nonce:   big.NewInt(nonce),
		Hash:    hash,
		Sender:  sender,
		Block:   block,
	}
}

func dbCursor(block int64) db.UpsertSyncCursorParams {
	return db.UpsertSyncCursorParams{Guard: "0x4000000000000000000000000000000000000001", LastBlock: block}
}

func newGuardSync(t *testing.T, st store.Store, source *mocks.MockGuardLogSource) *services.GuardSyncService {
	t.Helper()
	sync, err := services.NewGuardSyncService(st, source, services.GuardSyncConfig{
		Guard:         guardContract,
		StartBlock:    100,
		Confirmations: 2,
		BatchBlocks:   2,
	}, nil)
	require.NoError(t, err)
	return sync
}

// eoaCode reports every address as an externally owned account, like an API signer.
func eoaCode(t *testing.T) *mocks.MockCodeReader {
	code := mocks.NewMockCodeReaderForTest(t)
	code.EXPECT().IsContract(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	return code
}

func TestGuardSyncService_MirrorsGuardLogs(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	source := mocks.NewMockGuardLogSourceForTest(t)
	fingerprint := common.HexToHash("0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138")

	source.EXPECT().BlockNumber(gomock.Any()).Return(uint64(105), nil).Times(2)
	gomock.InOrder(
		source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(100), uint64(101)).Return([]business.GuardChange{
			memberChange(constants.EventExecutorAdded, 100, executor1),
			memberChange(constants.EventAuditorAdded, 100, auditor1),
			memberChange(constants.EventExecutorAdded, 101, executor2),
		}, nil),
		source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(102), uint64(103)).Return([]business.GuardChange{
			memberChange(constants.EventExecutorRemoved, 102, executor1),
			approvalChange(103, 0, fingerprint, auditor1),
		}, nil),
	)

	sync := newGuardSync(t, st, source)
	applied, err := sync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, applied)

	// nothing new past the confirmed head
	applied, err = sync.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	registry := services.NewRegistryService(st, eoaCode(t), nil)
	approvals := services.NewApprovalService(st, nil)

	executors, err := registry.List(ctx, business.RegistryExecutors, safeAccount)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{executor2}, executors)

	listed, err := approvals.List(ctx, safeAccount)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, fingerprint, listed[0].Fingerprint)
	assert.Equal(t, auditor1, listed[0].Auditor)

	assert.Equal(t, []string{
		constants.EventExecutorAdded,
		constants.EventAuditorAdded,
		constants.EventExecutorAdded,
		constants.EventExecutorRemoved,
		constants.EventMessageHashAdded,
	}, eventNames(t, st, safeAccount))

	// the mirrored state admits the approved transaction for an EOA executor
	accounts := mocks.NewMockAccountReaderForTest(t)
	accounts.EXPECT().Nonce(gomock.Any(), safeAccount).Return(big.NewInt(0), nil).AnyTimes()
	accounts.EXPECT().GetTransactionHash(gomock.Any(), safeAccount, gomock.Any(), big.NewInt(0)).Return(fingerprint, nil).AnyTimes()
	guard := services.NewSafeGuardService(registry, approvals, accounts, nil)

	decision, err := guard.CheckTransaction(ctx, safeAccount, business.SafeTransaction{}, executor2)
	require.NoError(t, err)
	assert.True(t, decision.Accepted)

	_, err = guard.CheckTransaction(ctx, safeAccount, business.SafeTransaction{}, executor1)
	assert.ErrorIs(t, err, services.ErrNotExecutor)
}

func TestGuardSyncService_ResumesAfterFailure(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	source := mocks.NewMockGuardLogSourceForTest(t)

	source.EXPECT().BlockNumber(gomock.Any()).Return(uint64(105), nil).Times(2)
	gomock.InOrder(
		source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(100), uint64(101)).Return([]business.GuardChange{
			memberChange(constants.EventExecutorAdded, 100, executor1),
		}, nil),
		source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(102), uint64(103)).Return(nil, errors.New("rpc timeout")),
		source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(102), uint64(103)).Return([]business.GuardChange{
			memberChange(constants.EventExecutorAdded, 102, executor2),
		}, nil),
	)

	sync := newGuardSync(t, st, source)
	applied, err := sync.Sync(ctx)
	assert.ErrorContains(t, err, "rpc timeout")
	assert.Equal(t, 1, applied)

	applied, err = sync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	cursor, err := st.GetSyncCursor(ctx, "0x4000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(103), cursor.LastBlock)

	executors, err := services.NewRegistryService(st, eoaCode(t), nil).List(ctx, business.RegistryExecutors, safeAccount)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{executor1, executor2}, executors)
}

func TestGuardSyncService_RollsBackBadRange(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	source := mocks.NewMockGuardLogSourceForTest(t)

	source.EXPECT().BlockNumber(gomock.Any()).Return(uint64(103), nil)
	source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(100), uint64(101)).Return([]business.GuardChange{
		memberChange(constants.EventExecutorAdded, 100, executor1),
		{Name: "OwnershipTransferred", Account: safeAccount, Block: 101},
	}, nil)

	_, err := newGuardSync(t, st, source).Sync(ctx)
	assert.ErrorContains(t, err, "unexpected guard log")

	_, err = st.GetSyncCursor(ctx, "0x4000000000000000000000000000000000000001")
	assert.Error(t, err)
	exists, err := services.NewRegistryService(st, eoaCode(t), nil).Contains(ctx, business.RegistryExecutors, safeAccount, executor1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGuardSyncService_ReplayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	source := mocks.NewMockGuardLogSourceForTest(t)
	changes := []business.GuardChange{
		memberChange(constants.EventExecutorAdded, 100, executor1),
		memberChange(constants.EventExecutorAdded, 100, executor2),
		memberChange(constants.EventExecutorRemoved, 101, executor1),
		memberChange(constants.EventExecutorAdded, 101, executor1),
	}
	source.EXPECT().BlockNumber(gomock.Any()).Return(uint64(103), nil).Times(2)
	source.EXPECT().GuardChanges(gomock.Any(), guardContract, uint64(100), uint64(101)).Return(changes, nil).Times(2)

	// a fresh service over a store that lost its cursor rescans the same range
	for i := 0; i < 2; i++ {
		sync := newGuardSync(t, st, source)
		_, err := sync.Sync(ctx)
		require.NoError(t, err)
		_, err = st.UpsertSyncCursor(ctx, dbCursor(99))
		require.NoError(t, err)
	}

	executors, err := services.NewRegistryService(st, eoaCode(t), nil).List(ctx, business.RegistryExecutors, safeAccount)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{executor2, executor1}, executors)
}

func TestGuardSyncService_WaitsForConfirmations(t *testing.T) {
	source := mocks.NewMockGuardLogSourceForTest(t)
	source.EXPECT().BlockNumber(gomock.Any()).Return(uint64(1), nil)

	applied, err := newGuardSync(t, store.NewMemoryStore(), source).Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestNewGuardSyncService_RequiresGuard(t *testing.T) {
	_, err := services.NewGuardSyncService(store.NewMemoryStore(), mocks.NewMockGuardLogSourceForTest(t), services.GuardSyncConfig{}, nil)
	assert.ErrorIs(t, err, services.ErrZeroAddress)
}
