// Package core has core logic for expanding, verifying and relabeling contingency tables.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/dataset"
	"github.com/huangsam/ctexpand/internal/outwriter"
	"github.com/huangsam/ctexpand/schema"
)

// Sentinel errors returned by the core operations.
var (
	ErrInvalidTable       = schema.ErrInvalidTable
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrRoundtripMismatch  = errors.New("round trip mismatch")
)

// RunPipeline expands the table, verifies the expansion against it and then
// applies the optional rename. A failed verification returns the result along
// with ErrRoundtripMismatch so callers can still report the differences.
func RunPipeline(table schema.Summarized, renameFrom, renameTo string) (schema.ExpandResult, error) {
	expanded, err := Expand(table)
	if err != nil {
		return schema.ExpandResult{}, err
	}

	result := schema.ExpandResult{
		Source:     table.Name,
		Summarized: table,
		Expanded:   expanded,
		Report:     Verify(expanded, table),
	}
	if !result.Report.Passed {
		return result, fmt.Errorf("%w: %s", ErrRoundtripMismatch, DescribeReport(result.Report))
	}

	if renameFrom != "" {
		renamed, err := RenameAttribute(expanded, renameFrom, renameTo)
		if err != nil {
			return result, err
		}
		result.Expanded = renamed
		result.Renamed = [2]string{renameFrom, renameTo}
	}
	return result, nil
}

// GetExpandResults loads the configured source and runs the pipeline on it,
// recording the run without an output path when the manager holds a store.
func GetExpandResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ExpandResult, error) {
	recorder := newRunRecorder(mgr, time.Now(), cfg)
	result, err := expandSource(ctx, cfg)
	recorder.finish(result, err == nil, "")
	return result, err
}

// expandSource loads the configured source and runs the pipeline on it.
func expandSource(ctx context.Context, cfg *contract.Config) (schema.ExpandResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.ExpandResult{}, err
	}

	table, err := dataset.Load(cfg.Source, cfg.FreqColumn)
	if err != nil {
		return schema.ExpandResult{}, err
	}
	if err := Validate(table); err != nil {
		return schema.ExpandResult{}, err
	}
	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "🔎 Source: %s (%d combinations, %d units)\n", table.Name, len(table.Records), table.Total())
	}

	renameFrom, renameTo := renameFor(cfg, table)
	return RunPipeline(table, renameFrom, renameTo)
}

// renameFor returns the rename to apply to table. A default rename is
// dropped when the table has no such attribute; an explicit one never is.
func renameFor(cfg *contract.Config, table schema.Summarized) (string, string) {
	if cfg.RenameIfPresent && schema.AttributeIndex(table.Attributes, cfg.RenameFrom) < 0 {
		return "", ""
	}
	return cfg.RenameFrom, cfg.RenameTo
}

// ExecuteExpand runs the full pipeline, writes the expanded table and records
// the run when a store is configured.
func ExecuteExpand(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	recorder := newRunRecorder(mgr, start, cfg)

	result, err := expandSource(ctx, cfg)
	if err != nil {
		recorder.finish(result, false, "")
		return err
	}

	if err := outwriter.WriteExpanded(result, cfg, time.Since(start)); err != nil {
		recorder.finish(result, true, "")
		return err
	}

	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "✅ Round trip %s: %s\n", contract.GetPlainLabel(true), DescribeReport(result.Report))
	}
	recorder.finish(result, true, cfg.OutputFile)
	return nil
}

// ExecuteVerify re-reads a persisted expanded CSV, undoes the configured
// rename and checks it against the source table.
func ExecuteVerify(ctx context.Context, cfg *contract.Config) error {
	report, err := GetVerifyReport(ctx, cfg, verifyInputPath(cfg))
	if err != nil {
		return err
	}
	if err := outwriter.WriteVerifyReport(report, cfg); err != nil {
		return err
	}
	if !report.Passed {
		return fmt.Errorf("%w: %s", ErrRoundtripMismatch, DescribeReport(report))
	}
	return nil
}

// GetVerifyReport checks the expanded CSV at input against the configured
// source. The rename is reversed first when the file carries the new label.
// An empty input verifies a fresh in-memory expansion instead.
func GetVerifyReport(ctx context.Context, cfg *contract.Config, input string) (schema.VerifyReport, error) {
	if err := ctx.Err(); err != nil {
		return schema.VerifyReport{}, err
	}

	table, err := dataset.Load(cfg.Source, cfg.FreqColumn)
	if err != nil {
		return schema.VerifyReport{}, err
	}
	if err := Validate(table); err != nil {
		return schema.VerifyReport{}, err
	}

	var expanded schema.Expanded
	if input == "" {
		if expanded, err = Expand(table); err != nil {
			return schema.VerifyReport{}, err
		}
	} else if expanded, err = dataset.ReadExpandedFile(input); err != nil {
		return schema.VerifyReport{}, err
	}

	if cfg.RenameFrom != "" && schema.AttributeIndex(expanded.Attributes, cfg.RenameTo) >= 0 {
		if expanded, err = RenameAttribute(expanded, cfg.RenameTo, cfg.RenameFrom); err != nil {
			return schema.VerifyReport{}, err
		}
	}

	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "🔎 Verifying %s against %s\n", defaultLabel(input, "in-memory expansion"), table.Name)
	}
	return Verify(expanded, table), nil
}

// ExecuteShow prints the source table with its marginal totals.
func ExecuteShow(ctx context.Context, cfg *contract.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	table, err := dataset.Load(cfg.Source, cfg.FreqColumn)
	if err != nil {
		return err
	}
	if err := Validate(table); err != nil {
		return err
	}
	return outwriter.WriteSummary(os.Stdout, table, cfg)
}

// verifyInputPath picks the expanded CSV to verify: --input, then the csv
// output file, then the default output file.
func verifyInputPath(cfg *contract.Config) string {
	if cfg.InputFile != "" {
		return cfg.InputFile
	}
	if cfg.Output == schema.CSVOut && cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return schema.DefaultOutputFile
}

func defaultLabel(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
