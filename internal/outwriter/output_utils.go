package outwriter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/ctexpand/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// quotedWriter writes CSV lines in which every field is double-quoted and
// embedded quotes are doubled.
type quotedWriter struct {
	w *bufio.Writer
}

func newQuotedWriter(w io.Writer) *quotedWriter {
	return &quotedWriter{w: bufio.NewWriter(w)}
}

// Write emits one record.
func (q *quotedWriter) Write(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := q.w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := q.w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return q.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (q *quotedWriter) Flush() error {
	return q.w.Flush()
}

// fitValues pads or folds a combination so that it fills exactly n table cells.
func fitValues(values []string, n int) []string {
	if len(values) == n {
		return values
	}
	out := make([]string, n)
	if n > 0 {
		out[0] = strings.Join(values, "/")
	}
	return out
}

// maxCellWidth spreads the terminal width over the given number of columns.
func maxCellWidth(cfg *contract.Config, columns int) int {
	if columns <= 0 {
		columns = 1
	}
	width := (contract.GetTerminalWidth(cfg.Width) - 4*columns) / columns
	return max(width, 8)
}
