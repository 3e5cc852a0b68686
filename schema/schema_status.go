package schema

import "time"

// RunsStatus represents the status of the run ledger store.
type RunsStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	FailedRuns    int              `json:"failed_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRows     int64            `json:"total_rows"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the ctexpand_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	Source        string
	TotalRows     int32
	Verified      bool
	OutputPath    *string
	ConfigParams  *string
}

// RunCellRecord represents a row from the ctexpand_run_cells table.
type RunCellRecord struct {
	RunID    int64
	CellKey  string
	Expected int32
	Observed int32
}
