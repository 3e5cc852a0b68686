package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/ctexpand/schema"
)

// Aggregate groups the rows of an expanded table on every attribute and counts
// the rows in each group.
func Aggregate(table schema.Expanded) map[schema.Key]int {
	counts, _ := aggregateOrdered(table)
	return counts
}

// aggregateOrdered is Aggregate plus the order in which groups were first seen.
func aggregateOrdered(table schema.Expanded) (map[schema.Key]int, []schema.Key) {
	counts := make(map[schema.Key]int)
	var order []schema.Key
	for _, row := range table.Rows {
		key := schema.NewKey(row)
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}
	return counts, order
}

// VerifyRoundtrip reports whether re-aggregating the expanded table recovers
// the summarized counts exactly.
func VerifyRoundtrip(expanded schema.Expanded, summarized schema.Summarized) bool {
	return Verify(expanded, summarized).Passed
}

// Verify re-aggregates the expanded table, joins the counts to the summarized
// table on the attribute values and reports every difference. A summarized
// combination with zero frequency is satisfied by its absence.
func Verify(expanded schema.Expanded, summarized schema.Summarized) schema.VerifyReport {
	report := schema.VerifyReport{
		AttributesMatch:    slices.Equal(expanded.Attributes, summarized.Attributes),
		ExpectedAttributes: slices.Clone(summarized.Attributes),
		ObservedAttributes: slices.Clone(expanded.Attributes),
		ExpectedTotal:      summarized.Total(),
		ObservedTotal:      expanded.Len(),
	}

	observed, order := aggregateOrdered(expanded)
	known := make(map[schema.Key]struct{}, len(summarized.Records))

	for _, r := range summarized.Records {
		key := schema.NewKey(r.Values)
		known[key] = struct{}{}
		cell := schema.CellCount{
			Key:      key,
			Values:   slices.Clone(r.Values),
			Expected: r.Freq,
			Observed: observed[key],
		}
		report.Cells = append(report.Cells, cell)

		switch {
		case cell.Expected > 0 && cell.Observed == 0:
			report.Missing = append(report.Missing, cell)
		case cell.Expected != cell.Observed:
			report.Mismatched = append(report.Mismatched, cell)
		}
	}

	for _, key := range order {
		if _, ok := known[key]; ok {
			continue
		}
		cell := schema.CellCount{
			Key:      key,
			Values:   key.Values(),
			Observed: observed[key],
		}
		report.Cells = append(report.Cells, cell)
		report.Extra = append(report.Extra, cell)
	}

	report.Passed = report.AttributesMatch &&
		len(report.Mismatched) == 0 &&
		len(report.Missing) == 0 &&
		len(report.Extra) == 0
	return report
}

// DescribeReport renders a one-line explanation of a failed report.
func DescribeReport(report schema.VerifyReport) string {
	if report.Passed {
		return fmt.Sprintf("%d rows match %d combinations", report.ObservedTotal, len(report.Cells))
	}

	var parts []string
	if !report.AttributesMatch {
		parts = append(parts, fmt.Sprintf("attributes %v do not match %v", report.ObservedAttributes, report.ExpectedAttributes))
	}
	if n := len(report.Mismatched); n > 0 {
		c := report.Mismatched[0]
		parts = append(parts, fmt.Sprintf("%d count mismatch(es), first %s expected %d got %d", n, schema.FormatCombination(c.Values), c.Expected, c.Observed))
	}
	if n := len(report.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing combination(s), first %s", n, schema.FormatCombination(report.Missing[0].Values)))
	}
	if n := len(report.Extra); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unexpected combination(s), first %s", n, schema.FormatCombination(report.Extra[0].Values)))
	}
	return strings.Join(parts, "; ")
}
