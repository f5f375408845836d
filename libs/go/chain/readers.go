package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
)

// caller abstracts the two ways of reading the ledger: from inside a running
// call frame or as a standalone read-only call.
type caller func(ctx context.Context, to common.Address, input []byte) ([]byte, error)

type reader struct {
	call   caller
	isCode func(addr common.Address) bool
}

// callReader reads through the running frame so that nested services never
// re-enter the ledger lock.
func callReader(cc *CallContext) *reader {
	return &reader{
		call: func(_ context.Context, to common.Address, input []byte) ([]byte, error) {
			return cc.Call(to, nil, input)
		},
		isCode: cc.HasCode,
	}
}

func (r *reader) Nonce(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := r.callMethod(ctx, contracts.SafeABI, account, "nonce")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (r *reader) GetTransactionHash(ctx context.Context, account common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
	out, err := r.callMethod(ctx, contracts.SafeABI, account, "getTransactionHash",
		tx.To, orZero(tx.Value), tx.Data, tx.Operation, orZero(tx.SafeTxGas), orZero(tx.BaseGas),
		orZero(tx.GasPrice), tx.GasToken, tx.RefundReceiver, nonce)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(out[0].([32]byte)), nil
}

func (r *reader) IsContract(_ context.Context, addr common.Address) (bool, error) {
	return r.isCode(addr), nil
}

func (r *reader) Comptroller(ctx context.Context, market common.Address) (common.Address, error) {
	input, err := venus.PackComptrollerCall()
	if err != nil {
		return common.Address{}, err
	}
	ret, err := r.call(ctx, market, input)
	if err != nil {
		return common.Address{}, err
	}
	return venus.UnpackComptroller(ret)
}

func (r *reader) Markets(ctx context.Context, comptroller, market common.Address) (venus.MarketRecord, error) {
	input, err := venus.PackMarketsCall(market)
	if err != nil {
		return venus.MarketRecord{}, err
	}
	ret, err := r.call(ctx, comptroller, input)
	if err != nil {
		return venus.MarketRecord{}, err
	}
	return venus.UnpackMarketRecord(ret)
}

func (r *reader) ExecTransactionFromModule(ctx context.Context, safe, to common.Address, value *big.Int, data []byte, operation uint8) (bool, error) {
	out, err := r.callMethod(ctx, contracts.SafeABI, safe, "execTransactionFromModule", to, orZero(value), data, operation)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (r *reader) callMethod(ctx context.Context, contract *abi.ABI, to common.Address, method string, args ...any) ([]any, error) {
	input, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	ret, err := r.call(ctx, to, input)
	if err != nil {
		return nil, err
	}
	out, err := contract.Unpack(method, ret)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return out, nil
}

// LedgerReader serves reads from outside a transaction, e.g. API handlers.
type LedgerReader struct {
	*reader
}

func NewLedgerReader(l *Ledger) *LedgerReader {
	return &LedgerReader{reader: &reader{
		call: func(ctx context.Context, to common.Address, input []byte) ([]byte, error) {
			return l.Call(ctx, common.Address{}, to, input)
		},
		isCode: l.IsContract,
	}}
}

var (
	_ interfaces.AccountReader  = (*reader)(nil)
	_ interfaces.CodeReader     = (*reader)(nil)
	_ interfaces.MarketReader   = (*reader)(nil)
	_ interfaces.ModuleExecutor = (*reader)(nil)
	_ interfaces.AccountReader  = (*LedgerReader)(nil)
	_ interfaces.MarketReader   = (*LedgerReader)(nil)
)
