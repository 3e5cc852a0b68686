// Package cmd defines the command-line interface for ctexpand.
package cmd

import (
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("source", "s", schema.DefaultSource, "Builtin dataset name or path to a summarized CSV")
	rootCmd.PersistentFlags().String("freq-column", schema.DefaultFreqColumn, "Name of the count column in a summarized CSV")
	rootCmd.PersistentFlags().String("rename", schema.DefaultRename, "Relabel one attribute before persisting (Old=New, empty disables)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultPreviewLimit, "Number of expanded rows to preview in text output")
	rootCmd.PersistentFlags().String("output", string(schema.CSVOut), "Output format: csv or text or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Path to write output to (csv defaults to "+schema.DefaultOutputFile+", '-' for stdout)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("runs-backend", string(schema.NoneBackend), "Run ledger backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of verifyCmd to Viper
	verifyCmd.Flags().String("input", "", "Expanded CSV to verify (defaults to the csv output file)")
	if err := viper.BindPFlags(verifyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding verify flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
