package cmd

import (
	"github.com/huangsam/ctexpand/core"
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/dataset"
	"github.com/spf13/cobra"
)

// showCmd prints the summarized source table.
var showCmd = &cobra.Command{
	Use:   "show [source]",
	Short: "Print a summarized table with its marginal totals.",
	Long: `Print the summarized source table as loaded, followed by the total count
for each level of each attribute.

Examples:
  # Show the builtin UCB admissions table
  ctexpand show --output text

  # Show a CSV source as JSON
  ctexpand show tables/survey.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShow(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show table", err)
		}
	},
}

// datasetsCmd lists the builtin datasets.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the builtin datasets.",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range dataset.Names() {
			table, _ := dataset.Builtin(name)
			cmd.Printf("%s: %v (%d combinations, %d units)\n", name, table.Attributes, len(table.Records), table.Total())
		}
	},
}
