package eth

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

// guardEvents are the SafeGuard logs that change registry or approval state.
var guardEvents = []string{
	constants.EventExecutorAdded,
	constants.EventExecutorRemoved,
	constants.EventAuditorAdded,
	constants.EventAuditorRemoved,
	constants.EventMessageHashAdded,
}

// BlockNumber returns the latest block height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	start := time.Now()
	n, err := c.backend.BlockNumber(ctx)
	c.metrics.ObserveRPCRequest("eth_blockNumber", time.Since(start).Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to read block number: %w", err)
	}
	return n, nil
}

// GuardChanges returns the registry and approval logs guard emitted in
// [from, to], oldest first. Logs dropped by a reorg are skipped.
func (c *Client) GuardChanges(ctx context.Context, guard common.Address, from, to uint64) ([]business.GuardChange, error) {
	topics := make([]common.Hash, 0, len(guardEvents))
	for _, name := range guardEvents {
		topics = append(topics, contracts.SafeGuardABI.Events[name].ID)
	}
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{guard},
		Topics:    [][]common.Hash{topics},
	}

	start := time.Now()
	logs, err := c.backend.FilterLogs(ctx, query)
	c.metrics.ObserveRPCRequest("eth_getLogs", time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to filter guard logs in [%d, %d]: %w", from, to, err)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	senders := make(map[common.Hash]common.Address)
	changes := make([]business.GuardChange, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		change, err := decodeGuardLog(lg)
		if err != nil {
			return nil, err
		}
		if change.Name == constants.EventMessageHashAdded {
			sender, ok := senders[lg.TxHash]
			if !ok {
				sender, err = c.txSender(ctx, lg.TxHash)
				if err != nil {
					return nil, err
				}
				senders[lg.TxHash] = sender
			}
			change.Sender = sender
		}
		changes = append(changes, change)
	}

	c.logger.Debug("Read guard logs",
		zap.String("guard", guard.Hex()),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("changes", len(changes)))
	return changes, nil
}

// txSender returns the origin of the transaction that emitted a log.
func (c *Client) txSender(ctx context.Context, hash common.Hash) (common.Address, error) {
	start := time.Now()
	tx, _, err := c.backend.TransactionByHash(ctx, hash)
	c.metrics.ObserveRPCRequest("eth_getTransactionByHash", time.Since(start).Seconds())
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read transaction %s: %w", hash.Hex(), err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover sender of %s: %w", hash.Hex(), err)
	}
	return from, nil
}

func decodeGuardLog(lg types.Log) (business.GuardChange, error) {
	if len(lg.Topics) == 0 {
		return business.GuardChange{}, fmt.Errorf("guard log %s:%d has no topics", lg.TxHash.Hex(), lg.Index)
	}
	event, err := contracts.SafeGuardABI.EventByID(lg.Topics[0])
	if err != nil {
		return business.GuardChange{}, fmt.Errorf("unknown guard log %s: %w", lg.Topics[0].Hex(), err)
	}
	if len(lg.Topics) != 3 {
		return business.GuardChange{}, fmt.Errorf("malformed %s log in %s", event.Name, lg.TxHash.Hex())
	}

	change := business.GuardChange{
		Name:     event.Name,
		Account:  common.BytesToAddress(lg.Topics[1].Bytes()),
		Block:    lg.BlockNumber,
		TxHash:   lg.TxHash,
		LogIndex: lg.Index,
	}
	if event.Name != constants.EventMessageHashAdded {
		change.Member = common.BytesToAddress(lg.Topics[2].Bytes())
		return change, nil
	}

	change.Nonce = new(big.Int).SetBytes(lg.Topics[2].Bytes())
	values, err := event.Inputs.NonIndexed().Unpack(lg.Data)
	if err != nil {
		return business.GuardChange{}, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
	}
	hash, ok := values[0].([32]byte)
	if !ok {
		return business.GuardChange{}, fmt.Errorf("unexpected messageHash type %T", values[0])
	}
	change.Hash = common.Hash(hash)
	return change, nil
}

var _ interfaces.GuardLogSource = (*Client)(nil)
