package cmd

import (
	"github.com/huangsam/ctexpand/core"
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/spf13/cobra"
)

// expandCmd runs the full expansion pipeline.
var expandCmd = &cobra.Command{
	Use:   "expand [source]",
	Short: "Expand a summarized table into one row per unit and persist it.",
	Long: `Expand a summarized contingency table into one row per unit of observation.

The pipeline:
- Loads the source (a builtin dataset name or a summarized CSV)
- Validates attributes and counts
- Replicates each combination Freq times, in record order
- Re-aggregates the expansion and compares it against every count
- Applies the optional attribute rename
- Persists the result and records the run when a backend is configured

A failed round trip aborts before anything is written and exits non-zero.

Examples:
  # Reference run: UCB admissions with Gender renamed to Sex
  ctexpand expand

  # Expand a CSV whose count column is called n, without renaming
  ctexpand expand tables/survey.csv --freq-column n --rename ""

  # Preview the expansion as a table instead of writing CSV
  ctexpand expand --output text --limit 20

  # Write a snappy-compressed Parquet file
  ctexpand expand --output parquet --output-file admissions.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExpand(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot expand table", err)
		}
	},
}
