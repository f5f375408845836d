package chain

import (
	"fmt"

	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/multisend"
)

// MultiSendCallOnly re-dispatches a packed batch as plain CALLs from the
// executing context. Meant to be delegatecalled by a Safe.
type MultiSendCallOnly struct{}

func (m *MultiSendCallOnly) Snapshot() any { return nil }

func (m *MultiSendCallOnly) Restore(any) {}

func (m *MultiSendCallOnly) MethodName(selector []byte) string {
	return methodName(contracts.MultiSendCallOnlyABI, selector)
}

func (m *MultiSendCallOnly) Run(cc *CallContext, input []byte) ([]byte, error) {
	method, args, err := decodeCall(contracts.MultiSendCallOnlyABI, input)
	if err != nil {
		return nil, err
	}
	if method.Name != "multiSend" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
	}

	txs, err := multisend.Decode(args[0].([]byte))
	if err != nil {
		return nil, err
	}
	for i, tx := range txs {
		if tx.Operation != constants.OperationCall {
			return nil, fmt.Errorf("transaction %d: %w: delegatecall not allowed", i, multisend.ErrInvalidOperation)
		}
		if _, err := cc.Call(tx.To, tx.Value, tx.Data); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
