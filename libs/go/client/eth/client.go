// Package eth reads guardian state from a live chain and submits keeper
// transactions through a JSON-RPC endpoint.
package eth

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
	"go.uber.org/zap"
)

// Backend is the part of ethclient.Client the guardian uses.
type Backend interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client implements the chain readers on top of a Backend.
type Client struct {
	backend Backend
	chainID *big.Int
	metrics *metrics.PromIndicators
	logger  *zap.Logger
}

// Dial connects to rpcURL and reads its chain id.
func Dial(ctx context.Context, rpcURL string, indicators *metrics.PromIndicators) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum node: %w", err)
	}
	chainID, err := rpc.ChainID(ctx)
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("failed to retrieve chain ID: %w", err)
	}
	return NewClient(rpc, chainID, indicators), nil
}

func NewClient(backend Backend, chainID *big.Int, indicators *metrics.PromIndicators) *Client {
	return &Client{
		backend: backend,
		chainID: new(big.Int).Set(chainID),
		metrics: indicators,
		logger:  logger.Named(logger.ComponentRPC).With(zap.String("chain_id", chainID.String())),
	}
}

// ChainID returns the chain id of the connected node.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Nonce returns safe.nonce().
func (c *Client) Nonce(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := c.call(ctx, contracts.SafeABI, account, "nonce")
	if err != nil {
		return nil, err
	}
	nonce, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected nonce type %T", out[0])
	}
	return nonce, nil
}

// GetTransactionHash asks the Safe itself for the fingerprint of tx at nonce.
func (c *Client) GetTransactionHash(ctx context.Context, account common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error) {
	out, err := c.call(ctx, contracts.SafeABI, account, "getTransactionHash",
		tx.To, orZero(tx.Value), tx.Data, tx.Operation, orZero(tx.SafeTxGas), orZero(tx.BaseGas),
		orZero(tx.GasPrice), tx.GasToken, tx.RefundReceiver, nonce)
	if err != nil {
		return common.Hash{}, err
	}
	hash, ok := out[0].([32]byte)
	if !ok {
		return common.Hash{}, fmt.Errorf("unexpected transaction hash type %T", out[0])
	}
	return common.Hash(hash), nil
}

// IsContract reports whether addr has code at the latest block.
func (c *Client) IsContract(ctx context.Context, addr common.Address) (bool, error) {
	start := time.Now()
	code, err := c.backend.CodeAt(ctx, addr, nil)
	c.metrics.ObserveRPCRequest("eth_getCode", time.Since(start).Seconds())
	if err != nil {
		return false, fmt.Errorf("failed to read code at %s: %w", addr.Hex(), err)
	}
	return len(code) > 0, nil
}

// Comptroller returns vToken.comptroller().
func (c *Client) Comptroller(ctx context.Context, market common.Address) (common.Address, error) {
	input, err := venus.PackComptrollerCall()
	if err != nil {
		return common.Address{}, err
	}
	ret, err := c.rawCall(ctx, market, "comptroller", input)
	if err != nil {
		return common.Address{}, err
	}
	return venus.UnpackComptroller(ret)
}

// Markets returns the isolated comptroller record of market.
func (c *Client) Markets(ctx context.Context, comptroller, market common.Address) (venus.MarketRecord, error) {
	input, err := venus.PackMarketsCall(market)
	if err != nil {
		return venus.MarketRecord{}, err
	}
	ret, err := c.rawCall(ctx, comptroller, "markets", input)
	if err != nil {
		return venus.MarketRecord{}, err
	}
	return venus.UnpackMarketRecord(ret)
}

func (c *Client) call(ctx context.Context, contract *abi.ABI, to common.Address, method string, args ...any) ([]any, error) {
	input, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	ret, err := c.rawCall(ctx, to, method, input)
	if err != nil {
		return nil, err
	}
	out, err := contract.Unpack(method, ret)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return out, nil
}

func (c *Client) rawCall(ctx context.Context, to common.Address, method string, input []byte) ([]byte, error) {
	start := time.Now()
	ret, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	c.metrics.ObserveRPCRequest(method, time.Since(start).Seconds())
	if err != nil {
		c.logger.Debug("Contract call failed",
			zap.String("to", to.Hex()),
			zap.String("method", method),
			zap.Error(err))
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, to.Hex(), err)
	}
	return ret, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

var (
	_ interfaces.AccountReader = (*Client)(nil)
	_ interfaces.CodeReader    = (*Client)(nil)
	_ interfaces.MarketReader  = (*Client)(nil)
	_ Backend                  = (*ethclient.Client)(nil)
)
