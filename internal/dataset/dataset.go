// Package dataset provides the builtin reference tables and the CSV readers
// for summarized and expanded contingency tables.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/huangsam/ctexpand/schema"
)

// ErrUnknownDataset is returned when a source is neither a builtin name nor a readable file.
var ErrUnknownDataset = errors.New("unknown dataset")

var builtins = map[string]schema.Summarized{
	UCBAdmissionsName: ucbAdmissions,
}

// Names returns the sorted names of all builtin datasets.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin returns a deep copy of a builtin dataset so callers cannot alter the reference.
func Builtin(name string) (schema.Summarized, bool) {
	table, ok := builtins[name]
	if !ok {
		return schema.Summarized{}, false
	}
	return table.Clone(), true
}

// Load resolves a source to a summarized table. Builtin names win over file paths.
func Load(source, freqColumn string) (schema.Summarized, error) {
	if table, ok := Builtin(source); ok {
		return table, nil
	}

	file, err := os.Open(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return schema.Summarized{}, fmt.Errorf("%w: %q is not a builtin (%v) or an existing file", ErrUnknownDataset, source, Names())
		}
		return schema.Summarized{}, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer func() { _ = file.Close() }()

	table, err := ReadSummaryCSV(file, freqColumn)
	if err != nil {
		return schema.Summarized{}, fmt.Errorf("failed to read %s: %w", source, err)
	}
	table.Name = source
	return table, nil
}
