package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// RegistryService manages the executor and auditor sets of each account.
type RegistryService interface {
	Add(ctx context.Context, kind business.RegistryKind, caller, account, member common.Address) error
	AddBatch(ctx context.Context, kind business.RegistryKind, caller, account common.Address, members []common.Address) error
	Remove(ctx context.Context, kind business.RegistryKind, caller, account, member common.Address) error
	List(ctx context.Context, kind business.RegistryKind, account common.Address) ([]common.Address, error)
	Contains(ctx context.Context, kind business.RegistryKind, account, member common.Address) (bool, error)
}

// ApprovalService stores auditor approved fingerprints per account nonce.
type ApprovalService interface {
	Approve(ctx context.Context, caller, account common.Address, nonce *big.Int, fingerprint common.Hash) error
	ApproveBatch(ctx context.Context, caller, account common.Address, nonces []*big.Int, fingerprints []common.Hash) error
	Get(ctx context.Context, account common.Address, nonce *big.Int) (common.Hash, bool, error)
	List(ctx context.Context, account common.Address) ([]business.Approval, error)
}

// GuardService is the pre and post execution hook of a Safe.
type GuardService interface {
	CheckTransaction(ctx context.Context, account common.Address, tx business.SafeTransaction, submitter common.Address) (*business.GuardDecision, error)
	CheckAfterExecution(ctx context.Context, account common.Address, txHash common.Hash, success bool) error
	Fallback(ctx context.Context, account common.Address, calldata []byte) error
}

// PauseService pauses Venus markets through the guardian Safe.
type PauseService interface {
	PauseMarket(ctx context.Context, caller, market common.Address) (*business.PausePlan, error)
	PlanPause(ctx context.Context, market common.Address) (*business.PausePlan, error)
}

// EventService reads recorded observations.
type EventService interface {
	EventRecorder
	List(ctx context.Context, account common.Address, limit int32) ([]business.Event, error)
}
