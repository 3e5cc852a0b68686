package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/ctexpand/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCells() []schema.CellCount {
	return []schema.CellCount{
		{Key: schema.NewKey([]string{"Admitted", "Male", "A"}), Values: []string{"Admitted", "Male", "A"}, Expected: 512, Observed: 512},
		{Key: schema.NewKey([]string{"Rejected", "Male", "A"}), Values: []string{"Rejected", "Male", "A"}, Expected: 313, Observed: 313},
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun(time.Now(), "ucb-admissions", map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.RecordCells(1, sampleCells()))
	assert.NoError(t, store.EndRun(1, time.Now(), 10, true, "out.csv"))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestRunStore_SQLiteLifecycle(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Now().Add(-time.Second)
	runID, err := store.BeginRun(start, "ucb-admissions", map[string]any{"rename": "Gender=Sex"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordCells(runID, sampleCells()))
	require.NoError(t, store.EndRun(runID, time.Now(), 825, true, "ucb_admissions.csv"))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "ucb-admissions", run.Source)
	assert.Equal(t, int32(825), run.TotalRows)
	assert.True(t, run.Verified)
	assert.WithinDuration(t, start, run.StartTime, time.Millisecond)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(1000))
	require.NotNil(t, run.OutputPath)
	assert.Equal(t, "ucb_admissions.csv", *run.OutputPath)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"rename":"Gender=Sex"}`, *run.ConfigParams)

	cells, err := store.GetAllCells()
	require.NoError(t, err)
	require.Len(t, cells, 2)
	for _, c := range cells {
		assert.Equal(t, runID, c.RunID)
		assert.Equal(t, c.Expected, c.Observed)
		assert.NotNil(t, schema.Key(c.CellKey).Values())
	}
}

func TestRunStore_SQLiteStatus(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first, err := store.BeginRun(time.Now(), "a.csv", nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(first, time.Now(), 3, true, ""))

	second, err := store.BeginRun(time.Now(), "b.csv", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordCells(second, sampleCells()))
	require.NoError(t, store.EndRun(second, time.Now(), 4, false, "b_expanded.csv"))

	// Still running; not counted as failed
	_, err = store.BeginRun(time.Now(), "c.csv", nil)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, 1, status.FailedRuns)
	assert.Equal(t, int64(7), status.TotalRows)
	assert.Equal(t, first+2, status.LastRunID)
	assert.False(t, status.LastRunTime.Before(status.OldestRunTime))
	assert.Equal(t, int64(3), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[runCellsTable])

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Nil(t, runs[0].OutputPath)
	assert.Nil(t, runs[2].EndTime)
}

func TestRunStore_RecordCellsDuplicateKey(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "dup", nil)
	require.NoError(t, err)

	cells := sampleCells()
	cells = append(cells, cells[0])
	assert.Error(t, store.RecordCells(runID, cells))

	stored, err := store.GetAllCells()
	require.NoError(t, err)
	assert.Empty(t, stored, "failed batch should be rolled back")
}

func TestRunStore_EndRunUnknownID(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Error(t, store.EndRun(42, time.Now(), 1, true, ""))
}

func TestClearRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""), "clearing a missing file is a no-op")
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
	assert.Error(t, ClearRuns(schema.DatabaseBackend("bogus"), "", ""))
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"runs table", runsTable, false},
		{"cells table", runCellsTable, false},
		{"empty", "", true},
		{"leading digit", "1runs", true},
		{"injection", "runs; DROP TABLE x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`ctexpand_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"ctexpand_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"ctexpand_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []any{"$1", "$2"}, placeholders(schema.PostgreSQLBackend, 2))
	assert.Equal(t, []any{"?", "?"}, placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, []any{"?"}, placeholders(schema.SQLiteBackend, 1))
}
