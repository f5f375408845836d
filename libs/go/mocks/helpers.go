package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

//go:generate mockgen -source=../db/querier.go -destination=mock_querier.go -package=mocks
//go:generate mockgen -source=../store/store.go -destination=mock_store.go -package=mocks
//go:generate mockgen -source=../interfaces/clients.go -destination=mock_clients.go -package=mocks
//go:generate mockgen -source=../interfaces/services.go -destination=mock_services.go -package=mocks
//go:generate mockgen -source=../client/eth/client.go -destination=mock_backend.go -package=mocks

// NewMockStoreForTest creates a new mock Store for testing
func NewMockStoreForTest(t *testing.T) *MockStore {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockStore(ctrl)
}

// NewMockAccountReaderForTest creates a new mock AccountReader for testing
func NewMockAccountReaderForTest(t *testing.T) *MockAccountReader {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockAccountReader(ctrl)
}

// NewMockCodeReaderForTest creates a new mock CodeReader for testing
func NewMockCodeReaderForTest(t *testing.T) *MockCodeReader {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockCodeReader(ctrl)
}

// NewMockMarketReaderForTest creates a new mock MarketReader for testing
func NewMockMarketReaderForTest(t *testing.T) *MockMarketReader {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockMarketReader(ctrl)
}

// NewMockModuleExecutorForTest creates a new mock ModuleExecutor for testing
func NewMockModuleExecutorForTest(t *testing.T) *MockModuleExecutor {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockModuleExecutor(ctrl)
}

// NewMockEventRecorderForTest creates a new mock EventRecorder for testing
func NewMockEventRecorderForTest(t *testing.T) *MockEventRecorder {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventRecorder(ctrl)
}

// NewMockEventPublisherForTest creates a new mock EventPublisher for testing
func NewMockEventPublisherForTest(t *testing.T) *MockEventPublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventPublisher(ctrl)
}

// NewMockPauseSubmitterForTest creates a new mock PauseSubmitter for testing
func NewMockPauseSubmitterForTest(t *testing.T) *MockPauseSubmitter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockPauseSubmitter(ctrl)
}

// NewMockBackendForTest creates a new mock eth Backend for testing
func NewMockBackendForTest(t *testing.T) *MockBackend {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockBackend(ctrl)
}

// NewMockGuardLogSourceForTest creates a new mock GuardLogSource for testing
func NewMockGuardLogSourceForTest(t *testing.T) *MockGuardLogSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockGuardLogSource(ctrl)
}
