package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/store"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// PauseModuleContract hosts the pause module service. It must be enabled as
// a module on the configured Safe and allowed on the comptrollers through it.
type PauseModuleContract struct {
	cfg       services.PauseModuleConfig
	store     store.Store
	publisher interfaces.EventPublisher
	metrics   *metrics.PromIndicators
}

// NewPauseModuleContract validates cfg the same way the service does. publisher may be nil.
func NewPauseModuleContract(cfg services.PauseModuleConfig, st store.Store, publisher interfaces.EventPublisher, indicators *metrics.PromIndicators) (*PauseModuleContract, error) {
	if _, err := services.NewPauseModuleService(cfg, nil, nil, nil); err != nil {
		return nil, err
	}
	return &PauseModuleContract{cfg: cfg, store: st, publisher: publisher, metrics: indicators}, nil
}

func (p *PauseModuleContract) Snapshot() any { return nil }

func (p *PauseModuleContract) Restore(any) {}

func (p *PauseModuleContract) MethodName(selector []byte) string {
	return methodName(contracts.PauseModuleABI, selector)
}

func (p *PauseModuleContract) Run(cc *CallContext, input []byte) ([]byte, error) {
	method, args, err := decodeCall(contracts.PauseModuleABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "keeper":
		return packOutputs(contracts.PauseModuleABI, method.Name, p.cfg.Keeper)
	case "safe":
		return packOutputs(contracts.PauseModuleABI, method.Name, p.cfg.Safe)
	case "multiSendCallOnly":
		return packOutputs(contracts.PauseModuleABI, method.Name, p.cfg.MultiSendCallOnly)
	case "legacyPoolComptroller":
		return packOutputs(contracts.PauseModuleABI, method.Name, p.cfg.LegacyPoolComptroller)
	case "pauseMarket":
		r := callReader(cc)
		recorder := &ledgerRecorder{cc: cc, events: services.NewEventService(p.store, p.publisher)}
		svc, err := services.NewPauseModuleService(p.cfg, r, r, recorder, services.WithPauseMetrics(p.metrics))
		if err != nil {
			return nil, err
		}
		_, err = svc.PauseMarket(cc.Context(), cc.Caller, args[0].(common.Address))
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
}

// ledgerRecorder logs an observation on the ledger and persists it in the store.
type ledgerRecorder struct {
	cc     *CallContext
	events interfaces.EventRecorder
}

func (r *ledgerRecorder) Record(ctx context.Context, ev business.Event) error {
	r.cc.Emit(ev.Name, ev.Fields)
	return r.events.Record(ctx, ev)
}

var _ Contract = (*PauseModuleContract)(nil)
