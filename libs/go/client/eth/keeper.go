package eth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"go.uber.org/zap"
)

var ErrTransactionReverted = errors.New("transaction reverted")

// KeeperParams tunes fee estimation and confirmation polling.
type KeeperParams struct {
	GasFeeCapMultiplier int64
	GasLimitMultiplier  float64
	MaxGas              uint64
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration
}

// DefaultKeeperParams pays up to twice the base fee plus tip.
func DefaultKeeperParams() KeeperParams {
	return KeeperParams{
		GasFeeCapMultiplier: 2,
		GasLimitMultiplier:  1.2,
		MaxGas:              2_000_000,
		ConfirmationTimeout: 2 * time.Minute,
		PollInterval:        time.Second,
	}
}

// Keeper signs and submits pauseMarket(market) to the pause module.
type Keeper struct {
	client      *Client
	key         *ecdsa.PrivateKey
	from        common.Address
	pauseModule common.Address
	params      KeeperParams
	logger      *zap.Logger
}

// NewKeeper parses a hex private key, with or without 0x prefix.
func NewKeeper(client *Client, privateKeyHex string, pauseModule common.Address, params KeeperParams) (*Keeper, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid keeper private key: %w", err)
	}
	if pauseModule == (common.Address{}) {
		return nil, fmt.Errorf("pause module address is not configured")
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	return &Keeper{
		client:      client,
		key:         key,
		from:        from,
		pauseModule: pauseModule,
		params:      params,
		logger:      logger.Named(logger.ComponentKeeper).With(zap.String("keeper", from.Hex())),
	}, nil
}

// Address returns the keeper account.
func (k *Keeper) Address() common.Address {
	return k.from
}

// SubmitPause sends pauseMarket(market) and waits for a successful receipt.
func (k *Keeper) SubmitPause(ctx context.Context, market common.Address) (common.Hash, error) {
	input, err := contracts.PauseModuleABI.Pack("pauseMarket", market)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack pauseMarket: %w", err)
	}

	tx, err := k.buildTx(ctx, input)
	if err != nil {
		return common.Hash{}, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(k.client.chainID), k.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	start := time.Now()
	if err := k.client.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	k.client.metrics.ObserveRPCRequest("eth_sendRawTransaction", time.Since(start).Seconds())
	k.logger.Info("Pause transaction sent",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("market", market.Hex()),
		zap.Uint64("nonce", signed.Nonce()),
		zap.Uint64("gas", signed.Gas()))

	receipt, err := k.waitForReceipt(ctx, signed.Hash())
	if err != nil {
		return signed.Hash(), err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return signed.Hash(), fmt.Errorf("%w: %s", ErrTransactionReverted, signed.Hash().Hex())
	}
	k.logger.Info("Pause transaction confirmed",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()))
	return signed.Hash(), nil
}

func (k *Keeper) buildTx(ctx context.Context, input []byte) (*types.Transaction, error) {
	backend := k.client.backend

	nonce, err := backend.PendingNonceAt(ctx, k.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	tipCap, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip cap: %w", err)
	}
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get header: %w", err)
	}
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	feeCap := new(big.Int).Mul(baseFee, big.NewInt(k.params.GasFeeCapMultiplier))
	feeCap.Add(feeCap, tipCap)

	// estimation fails when pauseMarket would revert, e.g. for a non keeper
	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:      k.from,
		To:        &k.pauseModule,
		GasFeeCap: feeCap,
		GasTipCap: tipCap,
		Data:      input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = uint64(float64(gas) * k.params.GasLimitMultiplier)
	if k.params.MaxGas > 0 && gas > k.params.MaxGas {
		return nil, fmt.Errorf("estimated gas %d exceeds limit %d", gas, k.params.MaxGas)
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   k.client.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &k.pauseModule,
		Data:      input,
	}), nil
}

func (k *Keeper) waitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(k.params.PollInterval)
	defer ticker.Stop()
	timeout := time.After(k.params.ConfirmationTimeout)

	for {
		receipt, err := k.client.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			k.logger.Warn("Failed to fetch receipt", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, fmt.Errorf("transaction %s confirmation timed out", hash.Hex())
		case <-ticker.C:
		}
	}
}

var _ interfaces.PauseSubmitter = (*Keeper)(nil)
