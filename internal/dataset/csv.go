package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/ctexpand/schema"
)

// ReadSummaryCSV parses a summarized table from CSV. The header names every
// column; the frequency column may sit anywhere and all other columns become
// attributes in header order. Counts must be integers.
func ReadSummaryCSV(r io.Reader, freqColumn string) (schema.Summarized, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return schema.Summarized{}, fmt.Errorf("%w: empty input", schema.ErrInvalidTable)
	}
	if err != nil {
		return schema.Summarized{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	header = trimHeader(header)

	freqIdx := -1
	var attributes []string
	for i, name := range header {
		if name == freqColumn {
			if freqIdx >= 0 {
				return schema.Summarized{}, fmt.Errorf("%w: frequency column %q appears more than once", schema.ErrInvalidTable, freqColumn)
			}
			freqIdx = i
			continue
		}
		attributes = append(attributes, name)
	}
	if freqIdx < 0 {
		return schema.Summarized{}, fmt.Errorf("%w: frequency column %q not found in header %v", schema.ErrInvalidTable, freqColumn, header)
	}

	table := schema.Summarized{Attributes: attributes}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return schema.Summarized{}, fmt.Errorf("%w: %v", schema.ErrInvalidTable, err)
		}
		line, _ := reader.FieldPos(0)

		raw := strings.TrimSpace(row[freqIdx])
		freq, err := strconv.Atoi(raw)
		if err != nil {
			return schema.Summarized{}, fmt.Errorf("%w: line %d: frequency %q is not an integer", schema.ErrInvalidTable, line, raw)
		}

		values := make([]string, 0, len(attributes))
		for i, v := range row {
			if i != freqIdx {
				values = append(values, v)
			}
		}
		table.Records = append(table.Records, schema.Record{Values: values, Freq: freq})
	}
	return table, nil
}

// ReadExpandedCSV parses an expanded table: a header of attribute names and
// one unit row per line.
func ReadExpandedCSV(r io.Reader) (schema.Expanded, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return schema.Expanded{}, errors.New("expanded CSV has no header")
	}
	if err != nil {
		return schema.Expanded{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := schema.Expanded{Attributes: trimHeader(header)}
	rows, err := reader.ReadAll()
	if err != nil {
		return schema.Expanded{}, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	table.Rows = rows
	if table.Rows == nil {
		table.Rows = [][]string{}
	}
	return table, nil
}

// ReadExpandedFile opens and parses an expanded CSV file.
func ReadExpandedFile(path string) (schema.Expanded, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.Expanded{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	table, err := ReadExpandedCSV(file)
	if err != nil {
		return schema.Expanded{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}

// newReader returns a CSV reader that requires every row to match the header width.
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0
	return reader
}

// trimHeader strips whitespace and a UTF-8 byte order mark from header names.
func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}
