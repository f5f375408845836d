package handlers

import (
	"github.com/guardian/guardian-api/libs/go/chain"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	commonServices *CommonServices
	drill          *chain.Drill
	pinger         Pinger
	mode           string
}

// HandlerFactoryConfig contains all configuration for the handler factory
type HandlerFactoryConfig struct {
	Common CommonServicesConfig
	// Drill is set when the API serves the in-process drill ledger.
	Drill  *chain.Drill
	Pinger Pinger
	Mode   string
}

func NewHandlerFactory(config HandlerFactoryConfig) *HandlerFactory {
	common := NewCommonServices(config.Common)
	return &HandlerFactory{
		commonServices: common,
		drill:          config.Drill,
		pinger:         config.Pinger,
		mode:           config.Mode,
	}
}

// GetCommonServices returns the shared services
func (f *HandlerFactory) GetCommonServices() *CommonServices {
	return f.commonServices
}

// HasDrill reports whether drill endpoints should be mounted.
func (f *HandlerFactory) HasDrill() bool {
	return f.drill != nil
}

func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler(f.mode, f.pinger)
}

func (f *HandlerFactory) NewRegistryHandler() *RegistryHandler {
	return NewRegistryHandler(f.commonServices)
}

func (f *HandlerFactory) NewApprovalHandler() *ApprovalHandler {
	return NewApprovalHandler(f.commonServices)
}

func (f *HandlerFactory) NewGuardHandler() *GuardHandler {
	return NewGuardHandler(f.commonServices)
}

func (f *HandlerFactory) NewEventHandler() *EventHandler {
	return NewEventHandler(f.commonServices)
}

// NewDrillHandler returns nil outside drill mode.
func (f *HandlerFactory) NewDrillHandler() *DrillHandler {
	if f.drill == nil {
		return nil
	}
	return NewDrillHandler(f.commonServices, f.drill)
}
