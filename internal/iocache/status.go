package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/ctexpand/schema"
)

// PrintRunsStatus prints run ledger status information.
func PrintRunsStatus(w io.Writer, status schema.RunsStatus) {
	fmt.Fprintf(w, "Runs Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Fprintf(w, "Failed Runs: %d\n", status.FailedRuns)
		fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Total Rows Expanded: %d\n", status.TotalRows)
	}
	fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
