package schema

import "math"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run ledger.
	DatabaseBackend string

	// Verdict represents the outcome label of a verification.
	Verdict string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv" // default
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run ledger backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All verdicts supported.
const (
	PassVerdict Verdict = "PASS"
	FailVerdict Verdict = "FAIL"
)

// Defaults for the reference pipeline.
const (
	DefaultSource     = "ucb-admissions"
	DefaultFreqColumn = "Freq"
	DefaultRename     = "Gender=Sex"
	DefaultOutputFile = "ucb_admissions.csv"
)

// MaxExpandedRows caps the population of a single expansion. The run ledger
// stores row counts as 32-bit integers.
const MaxExpandedRows = math.MaxInt32

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
