// Package multisend implements the packed transaction framing consumed by the
// Safe MultiSend / MultiSendCallOnly helpers:
//
//	operation (1 byte) | to (20 bytes) | value (32 bytes) | data length (32 bytes) | data
//
// repeated once per inner call, with no padding between frames.
package multisend

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/holiman/uint256"
)

const (
	wordSize = 32
	// HeaderSize is the fixed part of one frame before its data bytes.
	HeaderSize = 1 + common.AddressLength + wordSize + wordSize
)

var (
	ErrTruncated        = errors.New("multisend: truncated transaction frame")
	ErrInvalidOperation = errors.New("multisend: invalid operation")
	ErrValueOutOfRange  = errors.New("multisend: value out of uint256 range")
)

// Transaction is one inner call of a batch.
type Transaction struct {
	Operation uint8          `json:"operation"`
	To        common.Address `json:"to"`
	Value     *big.Int       `json:"value"`
	Data      []byte         `json:"data"`
}

// Call returns a CALL inner transaction with zero value.
func Call(to common.Address, data []byte) Transaction {
	return Transaction{
		Operation: constants.OperationCall,
		To:        to,
		Value:     new(big.Int),
		Data:      data,
	}
}

// Encode frames txs back to back.
func Encode(txs []Transaction) ([]byte, error) {
	size := 0
	for _, tx := range txs {
		size += HeaderSize + len(tx.Data)
	}

	out := make([]byte, 0, size)
	for i, tx := range txs {
		if tx.Operation > constants.OperationDelegateCall {
			return nil, fmt.Errorf("transaction %d: %w: %d", i, ErrInvalidOperation, tx.Operation)
		}
		value, err := toWord(tx.Value)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		length := uint256.NewInt(uint64(len(tx.Data))).Bytes32()

		out = append(out, tx.Operation)
		out = append(out, tx.To.Bytes()...)
		out = append(out, value[:]...)
		out = append(out, length[:]...)
		out = append(out, tx.Data...)
	}
	return out, nil
}

// Decode splits a packed batch back into its inner transactions.
func Decode(packed []byte) ([]Transaction, error) {
	txs := make([]Transaction, 0)
	for offset := 0; offset < len(packed); {
		if len(packed)-offset < HeaderSize {
			return nil, fmt.Errorf("frame at offset %d: %w", offset, ErrTruncated)
		}
		frame := packed[offset:]

		op := frame[0]
		if op > constants.OperationDelegateCall {
			return nil, fmt.Errorf("frame at offset %d: %w: %d", offset, ErrInvalidOperation, op)
		}
		to := common.BytesToAddress(frame[1 : 1+common.AddressLength])
		valueStart := 1 + common.AddressLength
		value := new(big.Int).SetBytes(frame[valueStart : valueStart+wordSize])

		length := new(uint256.Int).SetBytes(frame[valueStart+wordSize : HeaderSize])
		remaining := uint64(len(frame) - HeaderSize)
		if !length.IsUint64() || length.Uint64() > remaining {
			return nil, fmt.Errorf("frame at offset %d: %w: data length %s", offset, ErrTruncated, length.Dec())
		}
		n := int(length.Uint64())

		data := make([]byte, n)
		copy(data, frame[HeaderSize:HeaderSize+n])

		txs = append(txs, Transaction{Operation: op, To: to, Value: value, Data: data})
		offset += HeaderSize + n
	}
	return txs, nil
}

// PackMultiSend wraps an encoded batch into multiSend(bytes) calldata.
func PackMultiSend(txs []Transaction) ([]byte, error) {
	packed, err := Encode(txs)
	if err != nil {
		return nil, err
	}
	calldata, err := contracts.MultiSendCallOnlyABI.Pack("multiSend", packed)
	if err != nil {
		return nil, fmt.Errorf("failed to pack multiSend: %w", err)
	}
	return calldata, nil
}

// UnpackMultiSend decodes multiSend(bytes) calldata into inner transactions.
func UnpackMultiSend(calldata []byte) ([]Transaction, error) {
	method := contracts.MultiSendCallOnlyABI.Methods["multiSend"]
	if len(calldata) < 4 || string(calldata[:4]) != string(method.ID) {
		return nil, fmt.Errorf("calldata is not a multiSend call")
	}
	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to unpack multiSend: %w", err)
	}
	packed, ok := args[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected multiSend argument type %T", args[0])
	}
	return Decode(packed)
}

func toWord(v *big.Int) ([32]byte, error) {
	if v == nil {
		return [32]byte{}, nil
	}
	if v.Sign() < 0 {
		return [32]byte{}, ErrValueOutOfRange
	}
	word, overflow := uint256.FromBig(v)
	if overflow {
		return [32]byte{}, ErrValueOutOfRange
	}
	return word.Bytes32(), nil
}
