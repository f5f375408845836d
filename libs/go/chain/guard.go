package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// GuardContract exposes the guard services at a ledger address. msg.sender is
// always the account being configured or checked. Registry and approval
// state lives in the store, which the ledger journals with everything else.
type GuardContract struct {
	store         store.Store
	metrics       *metrics.PromIndicators
	executorsOnly bool
}

// NewGuardContract hosts the full SafeGuard.
func NewGuardContract(st store.Store, indicators *metrics.PromIndicators) *GuardContract {
	return &GuardContract{store: st, metrics: indicators}
}

// NewExecutorsGuardContract hosts the access-only guard: it ignores approvals
// and treats the auditor surface as unknown calldata.
func NewExecutorsGuardContract(st store.Store, indicators *metrics.PromIndicators) *GuardContract {
	return &GuardContract{store: st, metrics: indicators, executorsOnly: true}
}

func (g *GuardContract) Snapshot() any { return nil }

func (g *GuardContract) Restore(any) {}

func (g *GuardContract) MethodName(selector []byte) string {
	return methodName(contracts.SafeGuardABI, selector)
}

func (g *GuardContract) services(cc *CallContext) (*services.RegistryService, *services.ApprovalService, interfaces.GuardService) {
	r := callReader(cc)
	registry := services.NewRegistryService(g.store, r, g.metrics)
	approvals := services.NewApprovalService(g.store, g.metrics)
	if g.executorsOnly {
		return registry, approvals, services.NewExecutorsGuardService(registry, g.metrics)
	}
	return registry, approvals, services.NewSafeGuardService(registry, approvals, r, g.metrics)
}

func (g *GuardContract) Run(cc *CallContext, input []byte) ([]byte, error) {
	ctx := cc.Context()
	registry, approvals, guard := g.services(cc)
	account := cc.Caller

	if len(input) < 4 {
		return nil, guard.Fallback(ctx, account, input)
	}
	method, err := contracts.SafeGuardABI.MethodById(input[:4])
	if err != nil || (g.executorsOnly && !executorsGuardMethods[method.Name]) {
		return nil, guard.Fallback(ctx, account, input)
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s arguments: %w", method.Name, err)
	}

	switch method.Name {
	case "checkTransaction":
		tx := txFromArgs(args)
		tx.Signatures = args[9].([]byte)
		_, err := guard.CheckTransaction(ctx, account, tx, args[10].(common.Address))
		return nil, err

	case "checkAfterExecution":
		return nil, guard.CheckAfterExecution(ctx, account, common.Hash(args[0].([32]byte)), args[1].(bool))

	case "encodeTransactionData":
		encoded, err := safetx.EncodeTransactionData(cc.ChainID(), args[0].(common.Address), txFromArgs(args[1:]), args[10].(*big.Int))
		if err != nil {
			return nil, err
		}
		return packOutputs(contracts.SafeGuardABI, method.Name, encoded)

	case "addExecutor", "addAuditor":
		return nil, g.add(cc, registry, registryOf(method.Name), []common.Address{args[0].(common.Address)})
	case "addExecutors", "addAuditors":
		return nil, g.add(cc, registry, registryOf(method.Name), args[0].([]common.Address))
	case "removeExecutor", "removeAuditor":
		kind := registryOf(method.Name)
		member := args[0].(common.Address)
		if err := registry.Remove(ctx, kind, cc.Caller, account, member); err != nil {
			return nil, err
		}
		cc.Emit(kind.RemovedEvent(), memberFields(kind, account, member))
		return nil, nil
	case "executors", "auditors":
		members, err := registry.List(ctx, registryOf(method.Name), args[0].(common.Address))
		if err != nil {
			return nil, err
		}
		return packOutputs(contracts.SafeGuardABI, method.Name, members)

	case "addMessageHash":
		nonce := args[1].(*big.Int)
		hash := common.Hash(args[2].([32]byte))
		return nil, g.approve(cc, approvals, args[0].(common.Address), []*big.Int{nonce}, []common.Hash{hash})
	case "addMessageHashes":
		raw := args[2].([][32]byte)
		hashes := make([]common.Hash, len(raw))
		for i, h := range raw {
			hashes[i] = common.Hash(h)
		}
		return nil, g.approve(cc, approvals, args[0].(common.Address), args[1].([]*big.Int), hashes)
	case "messageHashes":
		hash, _, err := approvals.Get(ctx, args[0].(common.Address), args[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		return packOutputs(contracts.SafeGuardABI, method.Name, [32]byte(hash))
	}
	return nil, guard.Fallback(ctx, account, input)
}

func (g *GuardContract) add(cc *CallContext, registry *services.RegistryService, kind business.RegistryKind, members []common.Address) error {
	if err := registry.AddBatch(cc.Context(), kind, cc.Caller, cc.Caller, members); err != nil {
		return err
	}
	for _, member := range members {
		cc.Emit(kind.AddedEvent(), memberFields(kind, cc.Caller, member))
	}
	return nil
}

func (g *GuardContract) approve(cc *CallContext, approvals *services.ApprovalService, account common.Address, nonces []*big.Int, hashes []common.Hash) error {
	if err := approvals.ApproveBatch(cc.Context(), cc.Caller, account, nonces, hashes); err != nil {
		return err
	}
	for i := range nonces {
		cc.Emit(constants.EventMessageHashAdded, map[string]string{
			"account": account.Hex(),
			"nonce":   nonces[i].String(),
			"hash":    hashes[i].Hex(),
		})
	}
	return nil
}

var executorsGuardMethods = map[string]bool{
	"checkTransaction":    true,
	"checkAfterExecution": true,
	"addExecutor":         true,
	"addExecutors":        true,
	"removeExecutor":      true,
	"executors":           true,
}

func registryOf(method string) business.RegistryKind {
	switch method {
	case "addAuditor", "addAuditors", "removeAuditor", "auditors":
		return business.RegistryAuditors
	}
	return business.RegistryExecutors
}

func memberFields(kind business.RegistryKind, account, member common.Address) map[string]string {
	return map[string]string{"account": account.Hex(), kind.String(): member.Hex()}
}

var _ Contract = (*GuardContract)(nil)
