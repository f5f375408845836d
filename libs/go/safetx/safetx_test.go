package safetx_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chainID = big.NewInt(31337)
	safe    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	to      = common.HexToAddress("0x2222222222222222222222222222222222222222")
	oneEth  = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

func TestTypeHashes(t *testing.T) {
	assert.Equal(t, "0xbb8310d486368db6bd6f849402fdd73ad53d316b5a4b2644ad6efe0f941286d8", safetx.SafeTxTypeHash.Hex())
	assert.Equal(t, "0x47e79534a245952e8b16893a336b85a3d9ea9fa8c573f3d803afb92a79469218", safetx.DomainSeparatorTypeHash.Hex())
}

func TestDomainSeparator(t *testing.T) {
	got, err := safetx.DomainSeparator(chainID, safe)
	require.NoError(t, err)
	assert.Equal(t, "0xfe0c2a6bde911dc91bbb4830c55642356a387000f9d41859b5a820081ecc44c8", got.Hex())
}

func TestTransactionHash(t *testing.T) {
	tests := []struct {
		name  string
		tx    business.SafeTransaction
		nonce int64
		want  string
	}{
		{
			name:  "ether transfer at nonce 0",
			tx:    business.SafeTransaction{To: to, Value: oneEth},
			nonce: 0,
			want:  "0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138",
		},
		{
			name:  "same transfer at nonce 1",
			tx:    business.SafeTransaction{To: to, Value: oneEth},
			nonce: 1,
			want:  "0x8b1defc8a3b96e568b4812dd20379dd582fd39d64d3cf3daab3ca69cd27c8555",
		},
		{
			name:  "delegatecall with data",
			tx:    business.SafeTransaction{To: to, Data: []byte{0xde, 0xad, 0xbe, 0xef}, Operation: 1},
			nonce: 7,
			want:  "0x841229ff948bf623e26c59a997ae6a733b8a8631d5a998e1f5a412b0bf007fd8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := safetx.TransactionHash(chainID, safe, tt.tx, big.NewInt(tt.nonce))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Hex())
		})
	}
}

func TestEncodeTransactionData_Prefix(t *testing.T) {
	encoded, err := safetx.EncodeTransactionData(chainID, safe, business.SafeTransaction{To: to}, big.NewInt(0))
	require.NoError(t, err)
	require.Len(t, encoded, 66)
	assert.Equal(t, []byte{0x19, 0x01}, encoded[:2])

	domain, err := safetx.DomainSeparator(chainID, safe)
	require.NoError(t, err)
	assert.Equal(t, domain.Bytes(), encoded[2:34])
}

func TestTransactionHash_IgnoresSignatures(t *testing.T) {
	base := business.SafeTransaction{To: to, Value: oneEth}
	signed := base
	signed.Signatures = []byte{1, 2, 3}

	a, err := safetx.TransactionHash(chainID, safe, base, big.NewInt(3))
	require.NoError(t, err)
	b, err := safetx.TransactionHash(chainID, safe, signed, big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := safetx.TransactionHash(big.NewInt(1), safe, base, big.NewInt(3))
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}
