// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/parquet"
	"github.com/huangsam/ctexpand/schema"
)

// WriteExpanded outputs the expanded table, dispatching based on the output format configured.
func WriteExpanded(result schema.ExpandResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpandedJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteExpandedParquet(result.Expanded, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpandedTable(w, result, cfg, duration)
		}, "Wrote table")
	default:
		if cfg.OutputFile == "" {
			return WriteQuotedCSV(os.Stdout, result.Expanded)
		}
		if err := PersistCSV(result.Expanded, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d rows to %s\n", result.Expanded.Len(), cfg.OutputFile)
	}
	return nil
}

// PersistCSV writes the expanded table to destination as a UTF-8, comma-separated
// file with a header row, every field double-quoted and no row-index column.
func PersistCSV(table schema.Expanded, destination string) error {
	if destination == "" {
		return errors.New("destination cannot be empty")
	}
	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", destination, err)
	}
	if err := WriteQuotedCSV(file, table); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", destination, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destination, err)
	}
	return nil
}

// WriteQuotedCSV writes the header and every unit row of the expanded table.
func WriteQuotedCSV(w io.Writer, table schema.Expanded) error {
	qw := newQuotedWriter(w)
	if err := qw.Write(table.Attributes); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := qw.Write(row); err != nil {
			return err
		}
	}
	return qw.Flush()
}

// writeExpandedJSON writes the expanded table with its verification report.
func writeExpandedJSON(w io.Writer, result schema.ExpandResult) error {
	type jsonExpanded struct {
		Source     string              `json:"source"`
		Attributes []string            `json:"attributes"`
		TotalRows  int                 `json:"total_rows"`
		Rows       [][]string          `json:"rows"`
		Report     schema.VerifyReport `json:"report"`
	}
	return writeJSON(w, jsonExpanded{
		Source:     result.Source,
		Attributes: result.Expanded.Attributes,
		TotalRows:  result.Expanded.Len(),
		Rows:       result.Expanded.Rows,
		Report:     result.Report,
	})
}
