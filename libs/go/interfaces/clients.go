package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
)

// AccountReader reads the Safe account state the guard depends on.
type AccountReader interface {
	// Nonce returns the nonce the next execTransaction will consume.
	Nonce(ctx context.Context, account common.Address) (*big.Int, error)
	// GetTransactionHash returns the account's own fingerprint of tx at nonce.
	GetTransactionHash(ctx context.Context, account common.Address, tx business.SafeTransaction, nonce *big.Int) (common.Hash, error)
}

// CodeReader tells contracts from externally owned accounts.
type CodeReader interface {
	IsContract(ctx context.Context, addr common.Address) (bool, error)
}

// ModuleExecutor executes a call from an enabled module through a Safe, skipping the guard.
type ModuleExecutor interface {
	ExecTransactionFromModule(ctx context.Context, safe, to common.Address, value *big.Int, data []byte, operation uint8) (bool, error)
}

// MarketReader reads Venus market configuration.
type MarketReader interface {
	// Comptroller returns vToken.comptroller().
	Comptroller(ctx context.Context, market common.Address) (common.Address, error)
	// Markets returns comptroller.markets(market) for an isolated pool comptroller.
	Markets(ctx context.Context, comptroller, market common.Address) (venus.MarketRecord, error)
}

// EventRecorder persists and fans out guard observations.
type EventRecorder interface {
	Record(ctx context.Context, event business.Event) error
}

// EventPublisher forwards observations to an external queue.
type EventPublisher interface {
	Publish(ctx context.Context, event business.Event) error
}

// PauseSubmitter submits pauseMarket(market) to the deployed pause module on behalf of the keeper.
type PauseSubmitter interface {
	SubmitPause(ctx context.Context, market common.Address) (common.Hash, error)
}

// GuardLogSource reads the registry and approval logs of a deployed SafeGuard.
type GuardLogSource interface {
	// BlockNumber returns the latest block height.
	BlockNumber(ctx context.Context) (uint64, error)
	// GuardChanges returns the logs of guard in [from, to], in chain order.
	GuardChanges(ctx context.Context, guard common.Address, from, to uint64) ([]business.GuardChange, error)
}
