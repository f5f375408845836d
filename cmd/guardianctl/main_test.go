package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/chain"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSafe        = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testTarget      = "0x2222222222222222222222222222222222222222"
	testFingerprint = "0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138"

	keeperAddress     = "0x55A9f5374Af30E3045FB491f1da3C2E8a74d168D"
	multiSendAddress  = "0x9641d764fc13c8B624c04430C7356C1C7C8102e2"
	legacyComptroller = "0xfD36E2c2a6789Db23113685031d7F16329158384"
	isolatedPool      = "0x1b43ea8622e76627B81665B1eCeBB4867566B963"
	market            = "0xA07c5b74C9B40447a954e1466938b865b6BBea36"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setDeploymentEnv(t *testing.T) {
	t.Setenv("KEEPER_ADDRESS", keeperAddress)
	t.Setenv("SAFE_ADDRESS", testSafe)
	t.Setenv("MULTISEND_ADDRESS", multiSendAddress)
	t.Setenv("LEGACY_COMPTROLLER_ADDRESS", legacyComptroller)
}

func TestHashCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "explicit chain id", args: []string{"--chain-id", "31337"}},
		{name: "chain id from network name", args: []string{"--chain", "hardhat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"hash", "--safe", testSafe, "--to", testTarget, "--value", "1000000000000000000", "--encoded"}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)

			var got hashOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, testFingerprint, got.Hash)
			assert.Equal(t, int64(31337), got.ChainID)
			assert.True(t, strings.HasPrefix(got.EncodedData, "0x1901"))
			assert.Len(t, got.EncodedData, 134)
		})
	}
}

func TestHashCommand_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad operation", args: []string{"--operation", "2"}, want: "--operation"},
		{name: "bad value", args: []string{"--value", "-1"}, want: "--value"},
		{name: "bad data", args: []string{"--data", "0xabc"}, want: "--data"},
		{name: "bad gas token", args: []string{"--gas-token", "0x12"}, want: "--gas-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"hash", "--safe", testSafe, "--to", testTarget}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMultiSendEncodeDecode(t *testing.T) {
	encoded, err := run(t, "multisend", "encode",
		"--tx", "call:"+testTarget+":5:0xdeadbeef",
		"--tx", "delegatecall:"+testSafe+":0:0x")
	require.NoError(t, err)

	out, err := run(t, "multisend", "decode", strings.TrimSpace(encoded))
	require.NoError(t, err)

	var txs []innerTxOutput
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, uint8(0), txs[0].Operation)
	assert.Equal(t, "5", txs[0].Value)
	assert.Equal(t, "0xdeadbeef", txs[0].Data)
	assert.Equal(t, uint8(1), txs[1].Operation)
	assert.Equal(t, "0x", txs[1].Data)

	packed, err := run(t, "multisend", "encode", "--packed", "--tx", "0:"+testTarget+":0:0x")
	require.NoError(t, err)
	raw, err := hexutil.Decode(strings.TrimSpace(packed))
	require.NoError(t, err)
	assert.Len(t, raw, 85)

	_, err = run(t, "multisend", "encode", "--tx", "2:"+testTarget+":0:0x")
	assert.Error(t, err)
}

func TestPauseCalldataCommand(t *testing.T) {
	setDeploymentEnv(t)

	out, err := run(t, "pause", "calldata", market, "--comptroller", legacyComptroller)
	require.NoError(t, err)
	var legacy pausePlanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &legacy))
	assert.Equal(t, "legacy", legacy.Kind)
	require.Len(t, legacy.Calls, 1)
	assert.Equal(t, strings.ToLower("setActionsPaused(["+market+"], [0 2 7], true)"), strings.ToLower(legacy.Calls[0].Call))
	assert.True(t, strings.EqualFold(testSafe, legacy.Safe))

	out, err = run(t, "pause", "calldata", market, "--comptroller", isolatedPool, "--liquidation-threshold", "800000000000000000")
	require.NoError(t, err)
	var isolated pausePlanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &isolated))
	assert.Equal(t, "isolated", isolated.Kind)
	require.Len(t, isolated.Calls, 2)
	assert.Equal(t, "800000000000000000", isolated.LiquidationThreshold)
	assert.Equal(t, strings.ToLower("setCollateralFactor("+market+", 0, 800000000000000000)"), strings.ToLower(isolated.Calls[1].Call))

	decoded, err := run(t, "multisend", "decode", isolated.Payload)
	require.NoError(t, err)
	assert.Contains(t, decoded, "setCollateralFactor")
}

func TestPauseCalldataCommand_IncompleteDeployment(t *testing.T) {
	t.Setenv("KEEPER_ADDRESS", "")
	t.Setenv("SAFE_ADDRESS", "")
	t.Setenv("MULTISEND_ADDRESS", "")
	_, err := run(t, "--chain", "hardhat", "pause", "calldata", market, "--comptroller", legacyComptroller)
	assert.ErrorIs(t, err, helpers.ErrIncompleteDeployment)
}

func TestPausePlanCommand_RequiresRPC(t *testing.T) {
	setDeploymentEnv(t)
	t.Setenv("GUARDIAN_RPC", "")
	_, err := run(t, "pause", "plan", market)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--rpc")
}

func TestDeploymentCommand(t *testing.T) {
	t.Setenv("KEEPER_ADDRESS", "")
	t.Setenv("SAFE_ADDRESS", "")
	t.Setenv("MULTISEND_ADDRESS", "")
	t.Setenv("LEGACY_COMPTROLLER_ADDRESS", "")
	t.Setenv("GUARDIAN_CHAIN", "bscmainnet")

	out, err := run(t, "deployment")
	require.NoError(t, err)
	assert.Contains(t, out, "chain: bscmainnet")
	assert.Contains(t, out, "chain_id: 56")
	assert.Contains(t, strings.ToLower(out), strings.ToLower(keeperAddress))
	assert.NotContains(t, out, "pause_module")

	out, err = run(t, "--chain", "zksyncmainnet", "deployment")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "0x0408ef011960d02349d50286d20531229bcef773")
}

func TestSignRequestCommand(t *testing.T) {
	key := chain.DrillKey("auditor")
	t.Setenv("GUARDIAN_SIGNER_KEY", hexutil.Encode(crypto.FromECDSA(key)))

	body := `{"nonces":[7],"hashes":["` + testFingerprint + `"]}`
	path := "/api/v1/accounts/" + testSafe + "/approvals"
	out, err := run(t, "sign-request", "--method", "post", "--path", path, "--body", body, "--timestamp", "1700000000")
	require.NoError(t, err)

	var headers map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &headers))
	assert.Equal(t, "1700000000", headers[helpers.SignerTimestampHeader])
	assert.Equal(t, chain.DrillAddress("auditor").Hex(), headers[helpers.SignerAddressHeader])

	signer, err := helpers.RecoverRequestSigner(headers[helpers.SignerSignatureHeader], "POST", path, 1700000000, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, chain.DrillAddress("auditor"), signer)
}

func TestSignRequestCommand_MissingKey(t *testing.T) {
	t.Setenv("GUARDIAN_SIGNER_KEY", "")
	_, err := run(t, "sign-request", "--path", "/api/v1/hash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GUARDIAN_SIGNER_KEY")
}

func TestDrillAccountsCommand(t *testing.T) {
	out, err := run(t, "drill-accounts")
	require.NoError(t, err)
	for _, role := range drillRoles {
		assert.Contains(t, out, chain.DrillAddress(role).Hex())
	}

	out, err = run(t, "drill-accounts", "keeper", "--keys")
	require.NoError(t, err)
	assert.Contains(t, out, hexutil.Encode(crypto.FromECDSA(chain.DrillKey("keeper"))))
}

func TestCalldataCommands(t *testing.T) {
	executor := chain.DrillAddress("executor").Hex()
	auditor := chain.DrillAddress("auditor").Hex()

	tests := []struct {
		name     string
		args     []string
		selector string
	}{
		{name: "single executor", args: []string{"add-executors", executor}, selector: "addExecutor(address)"},
		{name: "executor batch", args: []string{"add-executors", executor, auditor}, selector: "addExecutors(address[])"},
		{name: "single auditor", args: []string{"add-auditors", auditor}, selector: "addAuditor(address)"},
		{name: "remove executor", args: []string{"remove-executor", executor}, selector: "removeExecutor(address)"},
		{name: "remove auditor", args: []string{"remove-auditor", auditor}, selector: "removeAuditor(address)"},
		{
			name:     "single approval",
			args:     []string{"add-message-hashes", "--account", testSafe, "--nonce", "7", "--hash", testFingerprint},
			selector: "addMessageHash(address,uint256,bytes32)",
		},
		{
			name:     "approval batch",
			args:     []string{"add-message-hashes", "--account", testSafe, "--nonce", "7", "--hash", testFingerprint, "--nonce", "8", "--hash", testFingerprint},
			selector: "addMessageHashes(address,uint256[],bytes32[])",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"calldata"}, tt.args...)...)
			require.NoError(t, err)
			data, err := hexutil.Decode(strings.TrimSpace(out))
			require.NoError(t, err)
			assert.Equal(t, crypto.Keccak256([]byte(tt.selector))[:4], data[:4])
		})
	}
}

func TestCalldataCommands_Rejects(t *testing.T) {
	_, err := run(t, "calldata", "remove-executor", testSafe, testTarget)
	assert.Error(t, err)

	_, err = run(t, "calldata", "add-executors", "0x1234")
	assert.Error(t, err)

	_, err = run(t, "calldata", "add-message-hashes", "--account", testSafe, "--nonce", "1", "--nonce", "2", "--hash", testFingerprint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 nonces and 1 hashes")
}
