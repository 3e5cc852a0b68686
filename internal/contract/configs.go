package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/ctexpand/schema"
)

// Default values for configuration.
const (
	DefaultPreviewLimit = 10
	MaxPreviewLimit     = 10000
)

// StdoutPath is the output-file value that forces writing to stdout.
const StdoutPath = "-"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	Source     string // Builtin dataset name or path to a summarized CSV
	FreqColumn string // Name of the count column in a summarized CSV
	RenameFrom string // Attribute to relabel before persisting (empty disables)
	RenameTo   string // New label for RenameFrom

	RenameIfPresent bool // Skip the rename for sources without RenameFrom

	Output     schema.OutputMode
	OutputFile string
	InputFile  string // Expanded CSV to verify
	Limit      int    // Preview rows for text output
	Width      int    // Terminal width override (0 = auto-detect)

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source        string `mapstructure:"source"`
	FreqColumn    string `mapstructure:"freq-column"`
	Rename        string `mapstructure:"rename"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Limit         int    `mapstructure:"limit"`
	Width         int    `mapstructure:"width"`
	RunsBackend   string `mapstructure:"runs-backend"`
	RunsDBConnect string `mapstructure:"runs-db-connect"`
	Color         string `mapstructure:"color"`

	// --- Fields from verifyCmd.Flags() ---
	Input string `mapstructure:"input"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRename(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs handles the flat fields that need little more than trimming.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = strings.TrimSpace(input.Source)
	if cfg.Source == "" {
		cfg.Source = schema.DefaultSource
	}

	cfg.FreqColumn = strings.TrimSpace(input.FreqColumn)
	if cfg.FreqColumn == "" {
		cfg.FreqColumn = schema.DefaultFreqColumn
	}

	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		cfg.Output = schema.CSVOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be csv, text, json or parquet", input.Output)
	}

	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	switch {
	case cfg.Output == schema.CSVOut && cfg.OutputFile == "":
		cfg.OutputFile = schema.DefaultOutputFile
	case cfg.OutputFile == StdoutPath:
		cfg.OutputFile = ""
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}
	cfg.InputFile = strings.TrimSpace(input.Input)

	if input.Limit < 0 || input.Limit > MaxPreviewLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxPreviewLimit)
	}
	cfg.Limit = input.Limit
	if cfg.Limit == 0 {
		cfg.Limit = DefaultPreviewLimit
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative")
	}
	cfg.Width = input.Width

	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = colors && IsTerminal(os.Stdout)

	return nil
}

// processRename parses the "Old=New" rename directive.
func processRename(cfg *Config, input *ConfigRawInput) error {
	from, to, err := ParseRename(input.Rename)
	if err != nil {
		return err
	}
	cfg.RenameFrom = from
	cfg.RenameTo = to
	// The default only fits the builtin admissions table
	cfg.RenameIfPresent = strings.TrimSpace(input.Rename) == schema.DefaultRename
	return nil
}

// ParseRename splits an "Old=New" directive. An empty directive disables renaming.
func ParseRename(directive string) (from, to string, err error) {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return "", "", nil
	}
	from, to, ok := strings.Cut(directive, "=")
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" {
		return "", "", fmt.Errorf("invalid rename '%s'. expected format Old=New", directive)
	}
	return from, to, nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run ledger backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(defaultString(input.RunsBackend, string(schema.NoneBackend))))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	return ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect)
}

// ProcessProfilingConfig sets up the profiling configuration from the prefix.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
