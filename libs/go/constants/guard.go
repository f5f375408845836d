package constants

// Safe operation kinds
const (
	OperationCall         uint8 = 0
	OperationDelegateCall uint8 = 1
)

// Venus comptroller action ids paused by the monitoring module
const (
	ActionMint        uint8 = 0
	ActionBorrow      uint8 = 2
	ActionEnterMarket uint8 = 7
)

// Observation names recorded by the guard and the pause module
const (
	EventExecutorAdded            = "ExecutorAdded"
	EventExecutorRemoved          = "ExecutorRemoved"
	EventAuditorAdded             = "AuditorAdded"
	EventAuditorRemoved           = "AuditorRemoved"
	EventMessageHashAdded         = "MessageHashAdded"
	EventMarketPausedByMonitoring = "MarketPausedByMonitoring"
	EventExecutionSuccess         = "ExecutionSuccess"
	EventExecutionFromModule      = "ExecutionFromModuleSuccess"
)
