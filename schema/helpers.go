package schema

import (
	"slices"
	"strconv"
	"strings"
)

// Key is a composite grouping key for one combination of categorical values.
// Each value is length-prefixed so that no value content can collide with
// another combination.
type Key string

// NewKey builds the composite key for a combination of values.
func NewKey(values []string) Key {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return Key(b.String())
}

// Values decodes the key back into its combination of values.
// It returns nil when the key was not produced by NewKey.
func (k Key) Values() []string {
	s := string(k)
	values := []string{}
	for len(s) > 0 {
		sep := strings.IndexByte(s, ':')
		if sep < 0 {
			return nil
		}
		n, err := strconv.Atoi(s[:sep])
		if err != nil || n < 0 || sep+1+n > len(s) {
			return nil
		}
		values = append(values, s[sep+1:sep+1+n])
		s = s[sep+1+n:]
	}
	return values
}

// String renders the key for humans, e.g. "Admitted/Male/A".
func (k Key) String() string {
	return FormatCombination(k.Values())
}

// FormatCombination joins a combination of values for display.
func FormatCombination(values []string) string {
	return strings.Join(values, "/")
}

// Total returns the population size, the sum of all frequencies.
func (s Summarized) Total() int {
	total := 0
	for _, r := range s.Records {
		total += r.Freq
	}
	return total
}

// Clone returns a deep copy of the summarized table.
func (s Summarized) Clone() Summarized {
	clone := Summarized{
		Name:       s.Name,
		Attributes: slices.Clone(s.Attributes),
		Records:    make([]Record, len(s.Records)),
	}
	for i, r := range s.Records {
		clone.Records[i] = Record{Values: slices.Clone(r.Values), Freq: r.Freq}
	}
	return clone
}

// Len returns the number of unit rows.
func (e Expanded) Len() int {
	return len(e.Rows)
}

// Clone returns a deep copy of the expanded table.
func (e Expanded) Clone() Expanded {
	clone := Expanded{
		Attributes: slices.Clone(e.Attributes),
		Rows:       make([][]string, len(e.Rows)),
	}
	for i, row := range e.Rows {
		clone.Rows[i] = slices.Clone(row)
	}
	return clone
}

// AttributeIndex returns the column position of an attribute, or -1.
func AttributeIndex(attributes []string, name string) int {
	return slices.Index(attributes, name)
}

// MarginalTotals computes per-level totals for every attribute, in attribute
// order and first-seen level order.
func (s Summarized) MarginalTotals() []MarginalTotal {
	var totals []MarginalTotal
	for i, attr := range s.Attributes {
		var levels []string
		counts := make(map[string]int)
		for _, r := range s.Records {
			if i >= len(r.Values) {
				continue
			}
			level := r.Values[i]
			if _, ok := counts[level]; !ok {
				levels = append(levels, level)
			}
			counts[level] += r.Freq
		}
		for _, level := range levels {
			totals = append(totals, MarginalTotal{Attribute: attr, Level: level, Count: counts[level]})
		}
	}
	return totals
}
