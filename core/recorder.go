package core

import (
	"time"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/schema"
)

// runRecorder writes one run to the ledger. Store failures are logged as
// warnings and never fail the command.
type runRecorder struct {
	store contract.RunStore
	runID int64
}

// newRunRecorder begins a run when the manager holds a store.
func newRunRecorder(mgr contract.StoreManager, start time.Time, cfg *contract.Config) *runRecorder {
	rec := &runRecorder{}
	if mgr == nil {
		return rec
	}
	rec.store = mgr.GetRunStore()
	if rec.store == nil {
		return rec
	}

	params := map[string]any{
		"source":      cfg.Source,
		"freq_column": cfg.FreqColumn,
		"output":      cfg.Output,
		"output_file": cfg.OutputFile,
	}
	if cfg.RenameFrom != "" {
		params["rename"] = cfg.RenameFrom + "=" + cfg.RenameTo
	}

	runID, err := rec.store.BeginRun(start, cfg.Source, params)
	if err != nil {
		contract.LogWarn("Failed to begin run", err)
		rec.store = nil
		return rec
	}
	rec.runID = runID
	return rec
}

// finish records the cell counts of the result and closes the run.
func (r *runRecorder) finish(result schema.ExpandResult, verified bool, outputPath string) {
	if r.store == nil {
		return
	}
	if err := r.store.RecordCells(r.runID, result.Report.Cells); err != nil {
		contract.LogWarn("Failed to record cell counts", err)
	}
	if err := r.store.EndRun(r.runID, time.Now(), result.Expanded.Len(), verified, outputPath); err != nil {
		contract.LogWarn("Failed to end run", err)
	}
}
