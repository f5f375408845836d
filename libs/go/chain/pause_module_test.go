package chain_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/chain"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mantissa(percent int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(percent), big.NewInt(1e16))
}

func TestDrill_PauseIsolatedMarket(t *testing.T) {
	ctx := context.Background()
	d := newDrill(t)
	market := d.Markets[chain.DrillIsolatedMarket]

	before, err := d.MarketState(ctx, market)
	require.NoError(t, err)
	assert.Equal(t, constants.IsolatedMarket, before.Kind)
	assert.True(t, before.Listed)
	assert.Zero(t, before.CollateralFactor.Cmp(mantissa(80)))
	assert.Zero(t, before.LiquidationThreshold.Cmp(mantissa(85)))
	for action, paused := range before.PausedActions {
		assert.False(t, paused, "action %d", action)
	}

	receipt, err := d.PauseMarket(ctx, d.Keeper, market)
	require.NoError(t, err)
	assert.True(t, receipt.Success)

	after, err := d.MarketState(ctx, market)
	require.NoError(t, err)
	assert.True(t, after.Listed)
	assert.Equal(t, 0, after.CollateralFactor.Sign())
	assert.Zero(t, after.LiquidationThreshold.Cmp(mantissa(85)))
	assert.Equal(t, map[uint8]bool{
		constants.ActionMint:        true,
		constants.ActionBorrow:      true,
		constants.ActionEnterMarket: true,
	}, after.PausedActions)

	var paused *chain.Log
	for i := range receipt.Logs {
		if receipt.Logs[i].Name == constants.EventMarketPausedByMonitoring {
			paused = &receipt.Logs[i]
		}
	}
	require.NotNil(t, paused)
	assert.Equal(t, d.PauseModule, paused.Address)
	assert.Equal(t, market.Hex(), paused.Fields["market"])
	assert.Equal(t, d.Comptroller.Hex(), paused.Fields["comptroller"])

	events, err := services.NewEventService(d.Store, nil).List(ctx, d.Safe, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, constants.EventMarketPausedByMonitoring, events[0].Name)
}

func TestDrill_PauseLegacyMarket(t *testing.T) {
	ctx := context.Background()
	d := newDrill(t)
	market := d.Markets[chain.DrillLegacyMarket]

	_, err := d.PauseMarket(ctx, d.Keeper, market)
	require.NoError(t, err)

	state, err := d.MarketState(ctx, market)
	require.NoError(t, err)
	assert.Equal(t, constants.LegacyMarket, state.Kind)
	assert.Equal(t, d.LegacyComptroller, state.Comptroller)
	assert.True(t, state.Listed)
	assert.Zero(t, state.CollateralFactor.Cmp(mantissa(75)))
	assert.Nil(t, state.LiquidationThreshold)
	for _, action := range []uint8{constants.ActionMint, constants.ActionBorrow, constants.ActionEnterMarket} {
		assert.True(t, state.PausedActions[action], "action %d", action)
	}
}

func TestDrill_PauseMarketRequiresKeeper(t *testing.T) {
	ctx := context.Background()
	d := newDrill(t)
	market := d.Markets[chain.DrillIsolatedMarket]

	_, err := d.PauseMarket(ctx, executor, market)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	state, err := d.MarketState(ctx, market)
	require.NoError(t, err)
	assert.Zero(t, state.CollateralFactor.Cmp(mantissa(80)))
	assert.False(t, state.PausedActions[constants.ActionMint])
}

func TestDrill_PauseMarketSafeTxFailed(t *testing.T) {
	ctx := context.Background()

	t.Run("inner call reverts", func(t *testing.T) {
		d := newDrill(t)
		// listed nowhere, so the comptroller rejects the pause
		unlisted := d.Ledger.Deploy(chain.DefaultDeployer, chain.NewDrillVToken(d.Comptroller))

		_, err := d.PauseMarket(ctx, d.Keeper, unlisted)
		assert.ErrorIs(t, err, services.ErrSafeTxFailed)
		assert.Empty(t, d.Ledger.Logs(d.PauseModule))
	})

	t.Run("module not enabled", func(t *testing.T) {
		d := newDrill(t)
		module, err := chain.NewPauseModuleContract(d.PauseModuleConfig(), d.Store, nil, nil)
		require.NoError(t, err)
		disabled := d.Ledger.Deploy(chain.DefaultDeployer, module)

		input, err := contracts.PauseModuleABI.Pack("pauseMarket", d.Markets[chain.DrillIsolatedMarket])
		require.NoError(t, err)
		_, err = d.Ledger.Transact(ctx, d.Keeper, disabled, nil, input)
		assert.ErrorIs(t, err, services.ErrSafeTxFailed)
		assert.ErrorIs(t, err, chain.ErrModuleNotEnabled)

		state, err := d.MarketState(ctx, d.Markets[chain.DrillIsolatedMarket])
		require.NoError(t, err)
		assert.False(t, state.PausedActions[constants.ActionBorrow])
	})
}

func TestNewPauseModuleContract_ZeroAddress(t *testing.T) {
	d := newDrill(t)
	cfg := d.PauseModuleConfig()
	cfg.Keeper = common.Address{}

	_, err := chain.NewPauseModuleContract(cfg, d.Store, nil, nil)
	assert.ErrorIs(t, err, services.ErrZeroAddress)
}
