package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/parquet"
)

// ExecuteRunsExport exports the run ledger held by the global manager to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}
	return ExportRuns(store, outputFile)
}

// ExportRuns writes every run and cell in the store to <outputFile>.runs.parquet
// and <outputFile>.run_cells.parquet.
func ExportRuns(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get runs status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total cell records: %d\n", status.TableSizes[runCellsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	cells, err := store.GetAllCells()
	if err != nil {
		return fmt.Errorf("failed to retrieve run cells: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetCells := parquet.ConvertRunCellRecords(cells)
	cellsFile := outputFile + ".run_cells.parquet"
	if err := parquet.WriteRunCellsParquet(parquetCells, cellsFile); err != nil {
		return fmt.Errorf("failed to write run cells: %w", err)
	}
	fmt.Printf("Exported %d cell records to: %s\n", len(parquetCells), cellsFile)

	return nil
}
