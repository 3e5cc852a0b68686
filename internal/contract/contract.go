// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/ctexpand/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking expansion runs and their cell counts.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, source string, configParams map[string]any) (int64, error)

	// RecordCells stores the expected and observed count of every combination
	RecordCells(runID int64, cells []schema.CellCount) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRows int, verified bool, outputPath string) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunsStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllCells returns every recorded cell ordered by run and key
	GetAllCells() ([]schema.RunCellRecord, error)

	// Close closes the underlying connection
	Close() error
}
