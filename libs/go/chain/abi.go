package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// decodeCall resolves the method of input and unpacks its arguments.
func decodeCall(contract *abi.ABI, input []byte) (*abi.Method, []any, error) {
	if len(input) < 4 {
		return nil, nil, ErrUnknownMethod
	}
	method, err := contract.MethodById(input[:4])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: 0x%x", ErrUnknownMethod, input[:4])
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s arguments: %w", method.Name, err)
	}
	return method, args, nil
}

// methodName returns the ABI name of selector, or its hex form.
func methodName(contract *abi.ABI, selector []byte) string {
	if method, err := contract.MethodById(selector); err == nil {
		return method.Name
	}
	return common.Bytes2Hex(selector)
}

// packOutputs encodes return values of method.
func packOutputs(contract *abi.ABI, method string, values ...any) ([]byte, error) {
	m, ok := contract.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found", method)
	}
	return m.Outputs.Pack(values...)
}

func cloneAddresses(in []common.Address) []common.Address {
	return append([]common.Address(nil), in...)
}
