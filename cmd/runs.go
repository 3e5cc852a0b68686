package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/iocache"
	"github.com/huangsam/ctexpand/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsBackendFromConfig reads and validates the run ledger backend settings.
func runsBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("runs-backend")
	connStr := viper.GetString("runs-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads minimal configuration needed for run ledger operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	backend, connStr, err := runsBackendFromConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run ledger: %w", err)
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads the backend settings without creating any tables,
// so migrations can run on a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := runsBackendFromConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunsDBFilePath()
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	return nil
}

// runsCmd focused on run ledger management.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the ledger of expansion runs",
	Long: `Manage the ledger of expansion runs.

When a runs backend is configured, every expand stores:
- Run metadata (timestamp, source, configuration, duration, verdict)
- The expected and observed count of every combination

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show run ledger statistics
  export  - Export runs and cell counts to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Record runs in the local SQLite ledger
  ctexpand expand --runs-backend sqlite

  # Check ledger status
  ctexpand runs status --runs-backend sqlite`,
}

// runsClearCmd clears the run ledger.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all stored runs and their cell counts.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  ctexpand runs export --runs-backend sqlite --output-file backup.parquet
  ctexpand runs clear --runs-backend sqlite`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearRuns(cfg.RunsBackend, contract.GetRunsDBFilePath(), cfg.RunsDBConnect); err != nil {
			contract.LogFatal("Failed to clear runs", err)
		}
		fmt.Println("Run ledger cleared successfully.")
	},
}

// runsStatusCmd shows run ledger status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run ledger statistics and connection details",
	Long: `Show the backend, the number of runs, failed verifications, the newest
and oldest run, total rows expanded and the size of each ledger table.`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get runs status", err)
		}
		iocache.PrintRunsStatus(os.Stdout, status)
	},
}

// runsExportCmd exports the run ledger to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet",
	Long: `Export all recorded runs and cell counts to Parquet.

Writes two files next to --output-file:
- <output-file>.runs.parquet
- <output-file>.run_cells.parquet

Examples:
  ctexpand runs export --runs-backend sqlite --output-file ledger
  duckdb -c "SELECT * FROM read_parquet('ledger.runs.parquet')"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export runs", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run ledger.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  ctexpand runs migrate --runs-backend postgresql --runs-db-connect "host=localhost dbname=ctexpand"

  # Roll back to the initial state
  ctexpand runs migrate --runs-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
