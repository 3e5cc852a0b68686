package iocache

import (
	"time"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, source string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, source, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordCells implements the RunStore interface.
func (m *MockRunStore) RecordCells(runID int64, cells []schema.CellCount) error {
	args := m.Called(runID, cells)
	return args.Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalRows int, verified bool, outputPath string) error {
	args := m.Called(runID, endTime, totalRows, verified, outputPath)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunsStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunsStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllCells implements the RunStore interface.
func (m *MockRunStore) GetAllCells() ([]schema.RunCellRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunCellRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
