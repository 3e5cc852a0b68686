// Package parquet provides data structures and functions for exporting
// expanded tables and run ledger data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ctexpand/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single expansion run with metadata.
// This struct maps to the ctexpand_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Source is the dataset name or CSV path that was expanded
	Source string `parquet:"source,snappy"`

	// TotalRows is the number of unit rows produced
	TotalRows int32 `parquet:"total_rows,snappy"`

	// Verified reports whether the round trip check passed
	Verified bool `parquet:"verified,snappy"`

	// OutputPath is where the expanded table was written (nullable)
	OutputPath *string `parquet:"output_path,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunCell holds the expected and observed counts of one combination in a run.
// This struct maps to the ctexpand_run_cells database table.
type RunCell struct {
	RunID    int64  `parquet:"run_id,snappy"`
	CellKey  string `parquet:"cell_key,snappy"`
	Expected int32  `parquet:"expected,snappy"`
	Observed int32  `parquet:"observed,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeGeneric(data, outputPath)
}

// WriteRunCellsParquet writes a slice of RunCell structs to a Parquet file.
func WriteRunCellsParquet(data []RunCell, outputPath string) error {
	return writeGeneric(data, outputPath)
}

// writeGeneric writes records whose schema is derived from struct tags.
func writeGeneric[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ExpandedSchema builds a schema with one required, snappy-compressed string
// column per attribute. Parquet groups order their fields by name, so the
// returned slice maps each attribute position to its leaf column index.
func ExpandedSchema(attributes []string) (*parquet.Schema, []int, error) {
	if len(attributes) == 0 {
		return nil, nil, errors.New("expanded table has no attributes")
	}
	group := parquet.Group{}
	for _, attr := range attributes {
		if _, dup := group[attr]; dup {
			return nil, nil, fmt.Errorf("duplicate attribute %q", attr)
		}
		group[attr] = parquet.Compressed(parquet.String(), &parquet.Snappy)
	}
	s := parquet.NewSchema("expanded", group)

	leaf := make(map[string]int, len(attributes))
	for i, path := range s.Columns() {
		leaf[path[0]] = i
	}
	order := make([]int, len(attributes))
	for i, attr := range attributes {
		order[i] = leaf[attr]
	}
	return s, order, nil
}

// WriteExpandedParquet writes every unit row of the expanded table to a Parquet file.
func WriteExpandedParquet(table schema.Expanded, outputPath string) error {
	s, order, err := ExpandedSchema(table.Attributes)
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewWriter(file, s)
	rows := make([]parquet.Row, 0, len(table.Rows))
	for n, values := range table.Rows {
		if len(values) != len(order) {
			_ = writer.Close()
			return fmt.Errorf("row %d has %d values, expected %d", n+1, len(values), len(order))
		}
		row := make(parquet.Row, len(order))
		for i, v := range values {
			col := order[i]
			row[col] = parquet.ByteArrayValue([]byte(v)).Level(0, 0, col)
		}
		rows = append(rows, row)
	}
	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			Source:        record.Source,
			TotalRows:     record.TotalRows,
			Verified:      record.Verified,
			OutputPath:    record.OutputPath,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRunCellRecords converts schema.RunCellRecord to RunCell for Parquet export.
func ConvertRunCellRecords(records []schema.RunCellRecord) []RunCell {
	result := make([]RunCell, len(records))
	for i, record := range records {
		result[i] = RunCell{
			RunID:    record.RunID,
			CellKey:  record.CellKey,
			Expected: record.Expected,
			Observed: record.Observed,
		}
	}
	return result
}
