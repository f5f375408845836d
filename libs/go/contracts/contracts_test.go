package contracts

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectors(t *testing.T) {
	tests := []struct {
		contract *abi.ABI
		method   string
		want     string
	}{
		{MultiSendCallOnlyABI, "multiSend", "8d80ff0a"},
		{SafeABI, "execTransactionFromModule", "468721a7"},
		{SafeABI, "getTransactionHash", "d8d11f78"},
		{SafeABI, "nonce", "affed0e0"},
		{LegacyComptrollerABI, "_setActionsPaused", "2b5d790c"},
		{ComptrollerABI, "setActionsPaused", "24aaa220"},
		{ComptrollerABI, "setCollateralFactor", "5cc4fdeb"},
		{ComptrollerABI, "markets", "8e8f294b"},
		{VTokenABI, "comptroller", "5fe3b567"},
		{PauseModuleABI, "pauseMarket", "e952cba9"},
		{SafeGuardABI, "checkTransaction", "75f0bb52"},
		{SafeGuardABI, "checkAfterExecution", "93271368"},
		{SafeGuardABI, "addExecutor", "1f5a0bbe"},
		{SafeGuardABI, "addMessageHash", "d19ab329"},
		{SafeABI, "approveHash", "d4d9bdcd"},
		{SafeABI, "enableModule", "610b5925"},
		{SafeABI, "setGuard", "e19a9dd9"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			sel, err := Selector(tt.contract, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(sel[:]))
		})
	}
}

func TestSelectorUnknownMethod(t *testing.T) {
	_, err := Selector(VTokenABI, "mint")
	assert.Error(t, err)
}

func TestLoadUnknownContract(t *testing.T) {
	_, err := Load("Nope")
	assert.Error(t, err)
}
