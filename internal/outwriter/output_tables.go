package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Cell status labels used in the verification table.
const (
	cellOK       = "ok"
	cellMismatch = "mismatch"
	cellMissing  = "missing"
	cellExtra    = "extra"
)

// writeExpandedTable previews the first rows of the expanded table followed by
// the verification table.
func writeExpandedTable(w io.Writer, result schema.ExpandResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	headers := append([]string{"#"}, result.Expanded.Attributes...)
	table.Header(headers)

	width := maxCellWidth(cfg, len(headers))
	limit := min(cfg.Limit, result.Expanded.Len())
	var data [][]string
	for i := range limit {
		row := []string{strconv.Itoa(i + 1)}
		for _, v := range result.Expanded.Rows[i] {
			row = append(row, contract.TruncateValue(v, width))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d of %d rows from %s\n\n", limit, result.Expanded.Len(), result.Source); err != nil {
		return err
	}

	if err := writeReportTable(w, result.Report, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Expansion completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
	return err
}

// WriteVerifyReport prints the verification report to stdout in the configured format.
func WriteVerifyReport(report schema.VerifyReport, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(os.Stdout, report)
	}
	return writeReportTable(os.Stdout, report, cfg)
}

// writeReportTable renders one line per combination with expected and observed counts.
func writeReportTable(w io.Writer, report schema.VerifyReport, cfg *contract.Config) error {
	status := make(map[schema.Key]string, len(report.Cells))
	for _, c := range report.Mismatched {
		status[c.Key] = cellMismatch
	}
	for _, c := range report.Missing {
		status[c.Key] = cellMissing
	}
	for _, c := range report.Extra {
		status[c.Key] = cellExtra
	}

	table := tablewriter.NewWriter(w)
	headers := append(append([]string{}, report.ExpectedAttributes...), "Expected", "Observed", "Status")
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range report.Cells {
		label, ok := status[c.Key]
		if !ok {
			label = cellOK
		}
		if cfg.UseColors && label != cellOK {
			label = contract.FailColor.Sprint(label)
		}
		row := append([]string{}, fitValues(c.Values, len(report.ExpectedAttributes))...)
		row = append(row, strconv.Itoa(c.Expected), strconv.Itoa(c.Observed), label)
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !report.AttributesMatch {
		if _, err := fmt.Fprintf(w, "Attributes differ: expected %v, observed %v\n", report.ExpectedAttributes, report.ObservedAttributes); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Round trip: %s (expected %d rows, observed %d rows, %d combinations)\n",
		contract.GetColorLabel(report.Passed, cfg.UseColors), report.ExpectedTotal, report.ObservedTotal, len(report.Cells))
	return err
}

// WriteSummary prints a summarized table and its marginal totals to w.
func WriteSummary(w io.Writer, summary schema.Summarized, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		type jsonSummary struct {
			schema.Summarized
			Total     int                    `json:"total"`
			Marginals []schema.MarginalTotal `json:"marginals"`
		}
		return writeJSON(w, jsonSummary{Summarized: summary, Total: summary.Total(), Marginals: summary.MarginalTotals()})
	}

	table := tablewriter.NewWriter(w)
	headers := append(append([]string{}, summary.Attributes...), cfg.FreqColumn)
	table.Header(headers)
	width := maxCellWidth(cfg, len(headers))

	var data [][]string
	for _, r := range summary.Records {
		row := make([]string, 0, len(headers))
		for _, v := range r.Values {
			row = append(row, contract.TruncateValue(v, width))
		}
		data = append(data, append(row, strconv.Itoa(r.Freq)))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	marginals := tablewriter.NewWriter(w)
	marginals.Header([]string{"Attribute", "Level", "Count"})
	var mdata [][]string
	for _, m := range summary.MarginalTotals() {
		mdata = append(mdata, []string{m.Attribute, contract.TruncateValue(m.Level, width), strconv.Itoa(m.Count)})
	}
	if err := marginals.Bulk(mdata); err != nil {
		return err
	}
	if err := marginals.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: %d combinations, %d units\n", summary.Name, len(summary.Records), summary.Total())
	return err
}
