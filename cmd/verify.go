package cmd

import (
	"github.com/huangsam/ctexpand/core"
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/spf13/cobra"
)

// verifyCmd checks a persisted expansion against its source.
var verifyCmd = &cobra.Command{
	Use:   "verify [source]",
	Short: "Check a persisted expanded CSV against the summarized counts.",
	Long: `Re-read an expanded CSV, undo the configured rename and compare the
re-aggregated counts with the summarized source.

The report lists every combination with its expected and observed count.
Combinations with a zero count pass when they are absent from the expansion.
Exits non-zero when any count differs.

Examples:
  # Verify the file written by the default expand run
  ctexpand verify

  # Verify a specific file against a CSV source
  ctexpand verify tables/survey.csv --input survey_expanded.csv --rename ""

  # Emit the report as JSON
  ctexpand verify --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVerify(rootCtx, cfg); err != nil {
			contract.LogFatal("Verification failed", err)
		}
	},
}
