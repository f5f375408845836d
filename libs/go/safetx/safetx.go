// Package safetx computes Safe transaction fingerprints (EIP-712 SafeTx hashes)
// exactly as Safe >= 1.3 does in getTransactionHash.
package safetx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

var (
	// SafeTxTypeHash is keccak256 of the SafeTx struct type.
	SafeTxTypeHash = crypto.Keccak256Hash([]byte(
		"SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)",
	))
	// DomainSeparatorTypeHash is keccak256 of the EIP712Domain type used by Safe >= 1.3.
	DomainSeparatorTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(uint256 chainId,address verifyingContract)"))
)

var (
	bytes32Type = mustType("bytes32")
	uint256Type = mustType("uint256")
	uint8Type   = mustType("uint8")
	addressType = mustType("address")

	domainArgs = abi.Arguments{
		{Type: bytes32Type},
		{Type: uint256Type},
		{Type: addressType},
	}
	safeTxArgs = abi.Arguments{
		{Type: bytes32Type},
		{Type: addressType},
		{Type: uint256Type},
		{Type: bytes32Type},
		{Type: uint8Type},
		{Type: uint256Type},
		{Type: uint256Type},
		{Type: uint256Type},
		{Type: addressType},
		{Type: addressType},
		{Type: uint256Type},
	}
)

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// DomainSeparator returns the EIP-712 domain separator of a Safe.
func DomainSeparator(chainID *big.Int, safe common.Address) (common.Hash, error) {
	encoded, err := domainArgs.Pack(DomainSeparatorTypeHash, orZero(chainID), safe)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode domain: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// StructHash returns the hashStruct(SafeTx) part of the fingerprint.
func StructHash(tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
	encoded, err := safeTxArgs.Pack(
		SafeTxTypeHash,
		tx.To,
		orZero(tx.Value),
		crypto.Keccak256Hash(tx.Data),
		tx.Operation,
		orZero(tx.SafeTxGas),
		orZero(tx.BaseGas),
		orZero(tx.GasPrice),
		tx.GasToken,
		tx.RefundReceiver,
		orZero(nonce),
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode safe tx: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// EncodeTransactionData returns 0x19 || 0x01 || domainSeparator || hashStruct(SafeTx),
// the preimage Safe owners sign.
func EncodeTransactionData(chainID *big.Int, safe common.Address, tx business.SafeTransaction, nonce *big.Int) ([]byte, error) {
	domain, err := DomainSeparator(chainID, safe)
	if err != nil {
		return nil, err
	}
	structHash, err := StructHash(tx, nonce)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+2*common.HashLength)
	out = append(out, 0x19, 0x01)
	out = append(out, domain.Bytes()...)
	out = append(out, structHash.Bytes()...)
	return out, nil
}

// TransactionHash returns the fingerprint of tx for the given Safe and nonce.
func TransactionHash(chainID *big.Int, safe common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
	encoded, err := EncodeTransactionData(chainID, safe, tx, nonce)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
