package requests

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// SafeTransactionRequest is the JSON form of a Safe transaction. Integers are
// decimal, byte strings are 0x hex.
type SafeTransactionRequest struct {
	To             string      `json:"to"`
	Value          json.Number `json:"value,omitempty"`
	Data           string      `json:"data,omitempty"`
	Operation      json.Number `json:"operation,omitempty"`
	SafeTxGas      json.Number `json:"safe_tx_gas,omitempty"`
	BaseGas        json.Number `json:"base_gas,omitempty"`
	GasPrice       json.Number `json:"gas_price,omitempty"`
	GasToken       string      `json:"gas_token,omitempty"`
	RefundReceiver string      `json:"refund_receiver,omitempty"`
	Signatures     string      `json:"signatures,omitempty"`
}

// ToSafeTransaction converts the request. Missing numbers are zero and missing
// addresses are the zero address.
func (r SafeTransactionRequest) ToSafeTransaction() (business.SafeTransaction, error) {
	var tx business.SafeTransaction
	var err error

	if !common.IsHexAddress(r.To) {
		return tx, fmt.Errorf("invalid to address %q", r.To)
	}
	tx.To = common.HexToAddress(r.To)

	if tx.Value, err = ParseUint("value", r.Value); err != nil {
		return tx, err
	}
	if tx.SafeTxGas, err = ParseUint("safe_tx_gas", r.SafeTxGas); err != nil {
		return tx, err
	}
	if tx.BaseGas, err = ParseUint("base_gas", r.BaseGas); err != nil {
		return tx, err
	}
	if tx.GasPrice, err = ParseUint("gas_price", r.GasPrice); err != nil {
		return tx, err
	}
	operation, err := ParseUint("operation", r.Operation)
	if err != nil {
		return tx, err
	}
	if operation.Cmp(big.NewInt(1)) > 0 {
		return tx, fmt.Errorf("operation must be 0 or 1")
	}
	tx.Operation = uint8(operation.Uint64())

	if tx.Data, err = decodeHex("data", r.Data); err != nil {
		return tx, err
	}
	if tx.Signatures, err = decodeHex("signatures", r.Signatures); err != nil {
		return tx, err
	}
	if tx.GasToken, err = optionalAddress("gas_token", r.GasToken); err != nil {
		return tx, err
	}
	if tx.RefundReceiver, err = optionalAddress("refund_receiver", r.RefundReceiver); err != nil {
		return tx, err
	}
	return tx, nil
}

// NewSafeTransactionRequest is the inverse of ToSafeTransaction.
func NewSafeTransactionRequest(tx business.SafeTransaction) SafeTransactionRequest {
	r := SafeTransactionRequest{
		To:        tx.To.Hex(),
		Value:     formatUint(tx.Value),
		Operation: json.Number(fmt.Sprint(tx.Operation)),
		SafeTxGas: formatUint(tx.SafeTxGas),
		BaseGas:   formatUint(tx.BaseGas),
		GasPrice:  formatUint(tx.GasPrice),
	}
	if len(tx.Data) > 0 {
		r.Data = hexutil.Encode(tx.Data)
	}
	if len(tx.Signatures) > 0 {
		r.Signatures = hexutil.Encode(tx.Signatures)
	}
	if tx.GasToken != (common.Address{}) {
		r.GasToken = tx.GasToken.Hex()
	}
	if tx.RefundReceiver != (common.Address{}) {
		r.RefundReceiver = tx.RefundReceiver.Hex()
	}
	return r
}

// ApproveRequest records hashes[i] for nonces[i].
type ApproveRequest struct {
	Nonces []json.Number `json:"nonces"`
	Hashes []string      `json:"hashes"`
}

// CheckTransactionRequest asks whether the signer may submit transaction now.
type CheckTransactionRequest struct {
	Transaction SafeTransactionRequest `json:"transaction"`
}

// TransactionHashRequest computes the fingerprint of transaction at nonce.
// ChainID defaults to the server's chain.
type TransactionHashRequest struct {
	Account     string                 `json:"account"`
	ChainID     json.Number            `json:"chain_id,omitempty"`
	Nonce       json.Number            `json:"nonce"`
	Transaction SafeTransactionRequest `json:"transaction"`
}

// DrillSubmitRequest executes transaction through the drill Safe. Owner
// signatures are produced by the drill when none are given.
type DrillSubmitRequest struct {
	Transaction SafeTransactionRequest `json:"transaction"`
}

// DrillPauseRequest calls pauseMarket(market) on the drill pause module.
type DrillPauseRequest struct {
	Market string `json:"market"`
}

// ParseUint reads an optional decimal field. An empty value is zero.
func ParseUint(field string, n json.Number) (*big.Int, error) {
	if n == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(n.String(), 10)
	if !ok || v.Sign() < 0 || v.BitLen() > 256 {
		return nil, fmt.Errorf("invalid %s %q", field, n)
	}
	return v, nil
}

func formatUint(v *big.Int) json.Number {
	if v == nil {
		return "0"
	}
	return json.Number(v.String())
}

func decodeHex(field, s string) ([]byte, error) {
	if s == "" || s == "0x" {
		return nil, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return b, nil
}

func optionalAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", field, s)
	}
	return common.HexToAddress(s), nil
}
