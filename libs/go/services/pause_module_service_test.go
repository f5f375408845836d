package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/mocks"
	"github.com/guardian/guardian-api/libs/go/multisend"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	keeper              = common.HexToAddress("0x55A9f5374Af30E3045FB491f1da3C2E8a74d168D")
	multiSendAddress    = common.HexToAddress("0x9641d764fc13c8B624c04430C7356C1C7C8102e2")
	legacyComptroller   = common.HexToAddress("0xfD36E2c2a6789Db23113685031d7F16329158384")
	isolatedComptroller = common.HexToAddress("0x1b43ea8622e76627B81665B1eCeBB4867566B963")
	legacyMarket        = common.HexToAddress("0xA07c5b74C9B40447a954e1466938b865b6BBea36")
	isolatedMarket      = common.HexToAddress("0xb91A659E88B51474767CD97EF3196A3e7cEDD2c8")
)

func pauseConfig() services.PauseModuleConfig {
	return services.PauseModuleConfig{
		Keeper:                keeper,
		Safe:                  safeAccount,
		MultiSendCallOnly:     multiSendAddress,
		LegacyPoolComptroller: legacyComptroller,
	}
}

func TestNewPauseModuleService_ZeroAddress(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*services.PauseModuleConfig)
	}{
		{name: "keeper", mutate: func(c *services.PauseModuleConfig) { c.Keeper = common.Address{} }},
		{name: "safe", mutate: func(c *services.PauseModuleConfig) { c.Safe = common.Address{} }},
		{name: "multisend", mutate: func(c *services.PauseModuleConfig) { c.MultiSendCallOnly = common.Address{} }},
		{name: "legacy comptroller", mutate: func(c *services.PauseModuleConfig) { c.LegacyPoolComptroller = common.Address{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pauseConfig()
			tt.mutate(&cfg)
			_, err := services.NewPauseModuleService(cfg, nil, nil, nil)
			assert.ErrorIs(t, err, services.ErrZeroAddress)
		})
	}

	svc, err := services.NewPauseModuleService(pauseConfig(), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, pauseConfig(), svc.Config())
}

func TestPauseModuleService_PauseLegacyMarket(t *testing.T) {
	ctx := context.Background()
	markets := mocks.NewMockMarketReaderForTest(t)
	executor := mocks.NewMockModuleExecutorForTest(t)
	events := mocks.NewMockEventRecorderForTest(t)

	markets.EXPECT().Comptroller(ctx, legacyMarket).Return(legacyComptroller, nil)

	var payload []byte
	executor.EXPECT().
		ExecTransactionFromModule(ctx, safeAccount, multiSendAddress, big.NewInt(0), gomock.Any(), constants.OperationDelegateCall).
		DoAndReturn(func(_ context.Context, _, _ common.Address, _ *big.Int, data []byte, _ uint8) (bool, error) {
			payload = data
			return true, nil
		})
	events.EXPECT().Record(ctx, business.Event{
		Name:    constants.EventMarketPausedByMonitoring,
		Account: safeAccount,
		Fields: map[string]string{
			"market":      legacyMarket.Hex(),
			"comptroller": legacyComptroller.Hex(),
		},
	}).Return(nil)

	svc, err := services.NewPauseModuleService(pauseConfig(), markets, executor, events)
	require.NoError(t, err)

	plan, err := svc.PauseMarket(ctx, keeper, legacyMarket)
	require.NoError(t, err)
	assert.Equal(t, "legacy", plan.Kind)
	assert.Nil(t, plan.LiquidationThreshold)

	calls, err := multisend.UnpackMultiSend(payload)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, legacyComptroller, calls[0].To)
	assert.Equal(t, constants.OperationCall, calls[0].Operation)
	assert.Zero(t, calls[0].Value.Sign())

	paused, err := venus.DecodeActionsPaused(calls[0].Data)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{legacyMarket}, paused.Markets)
	assert.Equal(t, []uint8{0, 2, 7}, paused.Actions)
	assert.True(t, paused.Paused)
	assert.Equal(t, []byte{0x2b, 0x5d, 0x79, 0x0c}, calls[0].Data[:4])
}

func TestPauseModuleService_PauseIsolatedMarket(t *testing.T) {
	ctx := context.Background()
	markets := mocks.NewMockMarketReaderForTest(t)
	executor := mocks.NewMockModuleExecutorForTest(t)

	lt, _ := new(big.Int).SetString("800000000000000000", 10)
	cf, _ := new(big.Int).SetString("700000000000000000", 10)
	markets.EXPECT().Comptroller(ctx, isolatedMarket).Return(isolatedComptroller, nil)
	markets.EXPECT().Markets(ctx, isolatedComptroller, isolatedMarket).Return(venus.MarketRecord{
		IsListed:                     true,
		CollateralFactorMantissa:     cf,
		LiquidationThresholdMantissa: lt,
	}, nil)
	executor.EXPECT().
		ExecTransactionFromModule(ctx, safeAccount, multiSendAddress, big.NewInt(0), gomock.Any(), constants.OperationDelegateCall).
		Return(true, nil)

	svc, err := services.NewPauseModuleService(pauseConfig(), markets, executor, nil)
	require.NoError(t, err)

	plan, err := svc.PauseMarket(ctx, keeper, isolatedMarket)
	require.NoError(t, err)
	assert.Equal(t, "isolated", plan.Kind)
	require.Len(t, plan.Calls, 2)

	paused, err := venus.DecodeActionsPaused(plan.Calls[0].Data)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 2, 7}, paused.Actions)
	assert.Equal(t, []byte{0x24, 0xaa, 0xa2, 0x20}, plan.Calls[0].Data[:4])

	factor, err := venus.DecodeCollateralFactor(plan.Calls[1].Data)
	require.NoError(t, err)
	assert.Equal(t, isolatedMarket, factor.Market)
	assert.Zero(t, factor.CollateralFactor.Sign())
	assert.Equal(t, 0, lt.Cmp(factor.LiquidationThreshold))

	for _, call := range plan.Calls {
		assert.Equal(t, isolatedComptroller, call.To)
	}

	decoded, err := multisend.UnpackMultiSend(plan.Payload)
	require.NoError(t, err)
	assert.Equal(t, len(plan.Calls), len(decoded))
}

func TestPauseModuleService_Unauthorized(t *testing.T) {
	ctx := context.Background()
	markets := mocks.NewMockMarketReaderForTest(t)
	executor := mocks.NewMockModuleExecutorForTest(t)

	svc, err := services.NewPauseModuleService(pauseConfig(), markets, executor, nil)
	require.NoError(t, err)

	for _, caller := range []common.Address{ownerEOA, safeAccount, common.Address{}} {
		_, err := svc.PauseMarket(ctx, caller, legacyMarket)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	}
}

func TestPauseModuleService_ExecutionFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		result bool
		err    error
	}{
		{name: "module call returns false", result: false},
		{name: "module call errors", err: errors.New("GS104")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markets := mocks.NewMockMarketReaderForTest(t)
			executor := mocks.NewMockModuleExecutorForTest(t)
			events := mocks.NewMockEventRecorderForTest(t)

			markets.EXPECT().Comptroller(ctx, legacyMarket).Return(legacyComptroller, nil)
			executor.EXPECT().
				ExecTransactionFromModule(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.result, tt.err)

			svc, err := services.NewPauseModuleService(pauseConfig(), markets, executor, events)
			require.NoError(t, err)

			_, err = svc.PauseMarket(ctx, keeper, legacyMarket)
			assert.ErrorIs(t, err, services.ErrSafeTxFailed)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestPauseModuleService_PlanPause(t *testing.T) {
	ctx := context.Background()
	markets := mocks.NewMockMarketReaderForTest(t)

	markets.EXPECT().Comptroller(ctx, isolatedMarket).Return(common.Address{}, errors.New("execution reverted"))

	svc, err := services.NewPauseModuleService(pauseConfig(), markets, nil, nil)
	require.NoError(t, err)

	_, err = svc.PlanPause(ctx, isolatedMarket)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read comptroller")
}
