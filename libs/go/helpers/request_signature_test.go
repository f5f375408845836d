package helpers_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSignature_RoundTrip(t *testing.T) {
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)
	body := []byte(`{"nonces":["0"]}`)

	sig, err := helpers.SignRequest(key, "POST", "/api/v1/accounts/0x1/approvals", 1700000000, body)
	require.NoError(t, err)

	raw, err := hexutil.Decode(sig)
	require.NoError(t, err)
	require.Len(t, raw, 65)
	assert.Contains(t, []byte{27, 28}, raw[64])

	got, err := helpers.RecoverRequestSigner(sig, "POST", "/api/v1/accounts/0x1/approvals", 1700000000, body)
	require.NoError(t, err)
	assert.Equal(t, signer, got)

	tests := []struct {
		name   string
		method string
		path   string
		ts     int64
		body   []byte
	}{
		{name: "method", method: "PUT", path: "/api/v1/accounts/0x1/approvals", ts: 1700000000, body: body},
		{name: "path", method: "POST", path: "/api/v1/accounts/0x2/approvals", ts: 1700000000, body: body},
		{name: "timestamp", method: "POST", path: "/api/v1/accounts/0x1/approvals", ts: 1700000001, body: body},
		{name: "body", method: "POST", path: "/api/v1/accounts/0x1/approvals", ts: 1700000000, body: []byte(`{}`)},
	}
	for _, tt := range tests {
		t.Run("tampered "+tt.name, func(t *testing.T) {
			got, err := helpers.RecoverRequestSigner(sig, tt.method, tt.path, tt.ts, tt.body)
			if err == nil {
				assert.NotEqual(t, signer, got)
			}
		})
	}
}

func TestRecoverRequestSigner_Malformed(t *testing.T) {
	for _, sig := range []string{"", "0x1234", "not-hex"} {
		_, err := helpers.RecoverRequestSigner(sig, "GET", "/", 0, nil)
		assert.ErrorIs(t, err, helpers.ErrInvalidRequestSignature)
	}
}

func TestRequestDigest_Deterministic(t *testing.T) {
	a := helpers.RequestDigest("GET", "/health", 1, nil)
	b := helpers.RequestDigest("GET", "/health", 1, []byte{})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, helpers.RequestDigest("GET", "/health", 2, nil))
}
