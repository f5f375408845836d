package eth_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/client/eth"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var guardAddress = common.HexToAddress("0x4000000000000000000000000000000000000001")

func guardLog(name string, block uint64, index uint, topic2 common.Hash, data []byte, txHash common.Hash) types.Log {
	return types.Log{
		Address: guardAddress,
		Topics: []common.Hash{
			contracts.SafeGuardABI.Events[name].ID,
			common.BytesToHash(safeAddress.Bytes()),
			topic2,
		},
		Data:        data,
		BlockNumber: block,
		Index:       index,
		TxHash:      txHash,
	}
}

func TestClient_GuardChanges(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockBackendForTest(t)
	client := eth.NewClient(backend, chainID, nil)

	auditorKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	auditor := crypto.PubkeyToAddress(auditorKey.PublicKey)
	approveTx, err := types.SignTx(types.NewTx(&types.LegacyTx{Nonce: 1, Gas: 100000, GasPrice: big.NewInt(1)}),
		types.LatestSignerForChainID(chainID), auditorKey)
	require.NoError(t, err)

	executor := common.HexToAddress("0x2000000000000000000000000000000000000001")
	hash := common.HexToHash("0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138")
	approveHash := common.HexToHash("0xaa")

	removed := guardLog(constants.EventExecutorRemoved, 11, 0, common.BytesToHash(executor.Bytes()), nil, common.HexToHash("0xbb"))
	removed.Removed = true

	backend.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, []common.Address{guardAddress}, q.Addresses)
			assert.Equal(t, int64(10), q.FromBlock.Int64())
			assert.Equal(t, int64(20), q.ToBlock.Int64())
			require.Len(t, q.Topics, 1)
			assert.Len(t, q.Topics[0], 5)
			return []types.Log{
				guardLog(constants.EventMessageHashAdded, 12, 3, common.BigToHash(big.NewInt(7)), hash.Bytes(), approveHash),
				removed,
				guardLog(constants.EventExecutorAdded, 10, 1, common.BytesToHash(executor.Bytes()), nil, common.HexToHash("0xcc")),
			}, nil
		})
	backend.EXPECT().TransactionByHash(ctx, approveHash).Return(approveTx, false, nil)

	changes, err := client.GuardChanges(ctx, guardAddress, 10, 20)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, constants.EventExecutorAdded, changes[0].Name)
	assert.Equal(t, safeAddress, changes[0].Account)
	assert.Equal(t, executor, changes[0].Member)
	assert.Equal(t, uint64(10), changes[0].Block)

	assert.Equal(t, constants.EventMessageHashAdded, changes[1].Name)
	assert.Equal(t, int64(7), changes[1].Nonce.Int64())
	assert.Equal(t, hash, changes[1].Hash)
	assert.Equal(t, auditor, changes[1].Sender)
	assert.Equal(t, approveHash, changes[1].TxHash)
}

func TestClient_GuardChanges_MalformedLog(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockBackendForTest(t)
	client := eth.NewClient(backend, chainID, nil)

	backend.EXPECT().FilterLogs(ctx, gomock.Any()).Return([]types.Log{{
		Address: guardAddress,
		Topics:  []common.Hash{contracts.SafeGuardABI.Events[constants.EventAuditorAdded].ID},
	}}, nil)

	_, err := client.GuardChanges(ctx, guardAddress, 0, 1)
	assert.ErrorContains(t, err, "malformed AuditorAdded log")
}

func TestClient_BlockNumber(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockBackendForTest(t)
	backend.EXPECT().BlockNumber(ctx).Return(uint64(4242), nil)

	n, err := eth.NewClient(backend, chainID, nil).BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), n)
}
