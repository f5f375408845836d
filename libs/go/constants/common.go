package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Service name reported in structured logs
	ServiceName = "guardian-api"

	// Registry namespaces
	ExecutorsRegistry = "executor"
	AuditorsRegistry  = "auditor"

	// Guard decisions
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"

	// Market variants
	LegacyMarket   = "legacy"
	IsolatedMarket = "isolated"
)
