package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/ctexpand/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admissionUnit struct {
	Admit  string `parquet:"Admit"`
	Gender string `parquet:"Gender"`
	Dept   string `parquet:"Dept"`
}

func sampleRuns() []Run {
	now := time.Now()
	end := now.Add(2 * time.Second)
	duration := int32(2000)
	output := "ucb_admissions.csv"
	params := `{"source":"ucb-admissions","rename":"Gender=Sex"}`
	return []Run{
		{
			RunID:         1,
			StartTime:     now,
			EndTime:       &end,
			RunDurationMs: &duration,
			Source:        "ucb-admissions",
			TotalRows:     4526,
			Verified:      true,
			OutputPath:    &output,
			ConfigParams:  &params,
		},
		{
			RunID:     2,
			StartTime: now,
			Source:    "counts.csv",
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, name := range []string{
		"run_id", "start_time", "end_time", "run_duration_ms", "source",
		"total_rows", "verified", "output_path", "config_params",
	} {
		col, ok := s.Lookup(name)
		require.True(t, ok, "Column %s should exist in schema", name)
		require.NotNil(t, col)
	}

	cells := parquet.SchemaOf(new(RunCell))
	for _, name := range []string{"run_id", "cell_key", "expected", "observed"} {
		_, ok := cells.Lookup(name)
		assert.True(t, ok, "Column %s should exist in schema", name)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, int64(1), readData[0].RunID)
	assert.Equal(t, int32(4526), readData[0].TotalRows)
	assert.True(t, readData[0].Verified)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].OutputPath)
	assert.Equal(t, "ucb_admissions.csv", *readData[0].OutputPath)

	assert.Equal(t, "counts.csv", readData[1].Source)
	assert.False(t, readData[1].Verified)
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].OutputPath)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteRunCellsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "cells.parquet")
	data := []RunCell{
		{RunID: 1, CellKey: string(schema.NewKey([]string{"Admitted", "Male", "A"})), Expected: 512, Observed: 512},
		{RunID: 1, CellKey: string(schema.NewKey([]string{"Rejected", "Male", "A"})), Expected: 313, Observed: 312},
	}
	require.NoError(t, WriteRunCellsParquet(data, outputPath))

	readData, err := parquet.ReadFile[RunCell](outputPath)
	require.NoError(t, err)
	assert.Equal(t, data, readData)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	dir := t.TempDir()

	runsPath := filepath.Join(dir, "empty_runs.parquet")
	require.NoError(t, WriteRunsParquet([]Run{}, runsPath))
	info, err := os.Stat(runsPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")

	cellsPath := filepath.Join(dir, "empty_cells.parquet")
	require.NoError(t, WriteRunCellsParquet(nil, cellsPath))
	_, err = os.Stat(cellsPath)
	require.NoError(t, err)
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	assert.Error(t, WriteRunsParquet(sampleRuns(), "/nonexistent/directory/runs.parquet"))
	assert.Error(t, WriteRunCellsParquet(nil, "/nonexistent/directory/cells.parquet"))
	assert.Error(t, WriteExpandedParquet(schema.Expanded{Attributes: []string{"A"}}, "/nonexistent/directory/out.parquet"))
}

func TestExpandedSchema(t *testing.T) {
	s, order, err := ExpandedSchema([]string{"Admit", "Gender", "Dept"})
	require.NoError(t, err)

	// Columns are stored alphabetically: Admit, Dept, Gender.
	assert.Equal(t, []int{0, 2, 1}, order)
	for _, name := range []string{"Admit", "Gender", "Dept"} {
		_, ok := s.Lookup(name)
		assert.True(t, ok, "Column %s should exist in schema", name)
	}

	_, _, err = ExpandedSchema(nil)
	assert.Error(t, err)
	_, _, err = ExpandedSchema([]string{"A", "A"})
	assert.Error(t, err)
}

func TestWriteExpandedParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "expanded.parquet")
	table := schema.Expanded{
		Attributes: []string{"Admit", "Gender", "Dept"},
		Rows: [][]string{
			{"Admitted", "Male", "A"},
			{"Admitted", "Male", "A"},
			{"Rejected", "Female", "B"},
		},
	}
	require.NoError(t, WriteExpandedParquet(table, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	pf, err := parquet.OpenFile(file, info.Size())
	require.NoError(t, err)
	assert.Equal(t, int64(3), pf.NumRows())

	units, err := parquet.ReadFile[admissionUnit](outputPath)
	require.NoError(t, err)
	assert.Equal(t, []admissionUnit{
		{Admit: "Admitted", Gender: "Male", Dept: "A"},
		{Admit: "Admitted", Gender: "Male", Dept: "A"},
		{Admit: "Rejected", Gender: "Female", Dept: "B"},
	}, units)
}

func TestWriteExpandedParquet_RaggedRow(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "ragged.parquet")
	table := schema.Expanded{
		Attributes: []string{"Admit", "Gender"},
		Rows:       [][]string{{"Admitted"}},
	}
	assert.Error(t, WriteExpandedParquet(table, outputPath))
}

func TestConvertRecords(t *testing.T) {
	output := "out.csv"
	runs := ConvertRunRecords([]schema.RunRecord{
		{RunID: 7, Source: "ucb-admissions", TotalRows: 4526, Verified: true, OutputPath: &output},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, "ucb-admissions", runs[0].Source)
	assert.True(t, runs[0].Verified)
	assert.Equal(t, &output, runs[0].OutputPath)

	cells := ConvertRunCellRecords([]schema.RunCellRecord{{RunID: 7, CellKey: "k", Expected: 3, Observed: 2}})
	assert.Equal(t, []RunCell{{RunID: 7, CellKey: "k", Expected: 3, Observed: 2}}, cells)
}
