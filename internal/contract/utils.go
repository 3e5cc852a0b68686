package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/ctexpand/schema"
	"golang.org/x/term"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold) // PassColor marks a lossless round trip.
	FailColor = color.New(color.FgRed, color.Bold)   // FailColor marks a mismatch.
)

// GetPlainLabel returns a plain text verdict label for a verification outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(passed bool) string {
	if passed {
		return string(schema.PassVerdict)
	}
	return string(schema.FailVerdict)
}

// GetColorLabel returns a colored verdict label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(passed bool, useColors bool) string {
	text := GetPlainLabel(passed)
	if !useColors {
		return text
	}
	if passed {
		return PassColor.Sprint(text)
	}
	return FailColor.Sprint(text)
}

// IsTerminal reports whether the file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// GetTerminalWidth returns the override when positive, else the detected width
// of stdout, else a conservative default for narrow terminals and CI.
func GetTerminalWidth(override int) int {
	if override > 0 {
		return override
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run ledger storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ctexpand_runs.db"
	}
	return filepath.Join(homeDir, ".ctexpand_runs.db")
}

// TruncateValue truncates a cell value to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateValue(value string, maxWidth int) string {
	runes := []rune(value)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return value
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
