package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/ctexpand/schema"
)

// Validate checks the invariants of a summarized table: at least one attribute,
// unique non-empty attribute names, one value per attribute in every record,
// non-negative frequencies, unique value combinations and a population that
// fits within schema.MaxExpandedRows.
func Validate(table schema.Summarized) error {
	if len(table.Attributes) == 0 {
		return fmt.Errorf("%w: table has no attributes", ErrInvalidTable)
	}

	seenAttrs := make(map[string]int, len(table.Attributes))
	for i, attr := range table.Attributes {
		if strings.TrimSpace(attr) == "" {
			return fmt.Errorf("%w: attribute %d has an empty name", ErrInvalidTable, i+1)
		}
		if j, ok := seenAttrs[attr]; ok {
			return fmt.Errorf("%w: attribute %q appears at positions %d and %d", ErrInvalidTable, attr, j+1, i+1)
		}
		seenAttrs[attr] = i
	}

	seen := make(map[schema.Key]int, len(table.Records))
	total := 0
	for i, r := range table.Records {
		if len(r.Values) != len(table.Attributes) {
			return fmt.Errorf("%w: record %d has %d values, expected %d", ErrInvalidTable, i+1, len(r.Values), len(table.Attributes))
		}
		if r.Freq < 0 {
			return fmt.Errorf("%w: record %d (%s) has negative frequency %d", ErrInvalidTable, i+1, schema.FormatCombination(r.Values), r.Freq)
		}
		if r.Freq > schema.MaxExpandedRows-total {
			return fmt.Errorf("%w: record %d (%s) brings the population past %d rows", ErrInvalidTable, i+1, schema.FormatCombination(r.Values), schema.MaxExpandedRows)
		}
		total += r.Freq
		key := schema.NewKey(r.Values)
		if j, ok := seen[key]; ok {
			return fmt.Errorf("%w: record %d repeats combination %s from record %d", ErrInvalidTable, i+1, schema.FormatCombination(r.Values), j+1)
		}
		seen[key] = i
	}
	return nil
}

// Expand turns a summarized table into one row per unit of observation.
// Records are emitted in input order with replicas of a record kept contiguous;
// a record with zero frequency contributes nothing. The table is validated
// first and nothing is produced when validation fails.
func Expand(table schema.Summarized) (schema.Expanded, error) {
	if err := Validate(table); err != nil {
		return schema.Expanded{}, err
	}

	rows := make([][]string, 0, table.Total())
	for _, r := range table.Records {
		for range r.Freq {
			rows = append(rows, slices.Clone(r.Values))
		}
	}

	return schema.Expanded{
		Attributes: slices.Clone(table.Attributes),
		Rows:       rows,
	}, nil
}
