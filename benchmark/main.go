// Package main provides a performance benchmarking tool for the ctexpand CLI.
// It generates summarized tables of increasing population, expands each one
// several times per output format and run ledger backend, treats the first
// successful run as cold and averages the rest as warm, and writes a CSV
// summary for performance analysis and documentation.
//
// Prerequisites:
// - ctexpand binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated tables and expanded output
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-ledger average, cold run and average of warm runs).
type BenchmarkResult struct {
	Table        string
	Output       string
	NoLedgerTime string
	ColdTime     string
	WarmTime     string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	NoLedgerRuns int
	LedgerRuns   int
	Outputs      []string
	Tables       map[string]TableShape
	TableOrder   []string
}

// TableShape describes a generated summarized table.
type TableShape struct {
	Levels []int // Number of levels per attribute
	Freq   int   // Count for every combination
}

// Units returns the population size of the generated table.
func (s TableShape) Units() int {
	units := s.Freq
	for _, l := range s.Levels {
		units *= l
	}
	return units
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:      workDir,
		Timeout:      5 * time.Minute,
		NoLedgerRuns: 3,
		LedgerRuns:   4,
		Outputs:      []string{"csv", "parquet"},
		Tables: map[string]TableShape{
			"small":  {Levels: []int{2, 2, 6}, Freq: 50},
			"medium": {Levels: []int{4, 5, 10}, Freq: 500},
			"large":  {Levels: []int{10, 10, 20}, Freq: 500},
		},
		TableOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty local ledger
	fmt.Printf("Clearing run ledger...\n")
	clearCmd := exec.Command("ctexpand", "runs", "clear", "--runs-backend", "sqlite")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run ledger: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run ledger cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config.Outputs)
}

// checkPrerequisites verifies that the ctexpand binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("ctexpand"); err != nil {
		return fmt.Errorf("ctexpand binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// writeTable generates a summarized CSV with one attribute per level count.
func writeTable(path string, shape TableShape) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	header := make([]string, 0, len(shape.Levels)+1)
	for i := range shape.Levels {
		header = append(header, fmt.Sprintf("A%d", i+1))
	}
	if err := writer.Write(append(header, "Freq")); err != nil {
		return err
	}

	// Odometer over all combinations, first attribute varying fastest
	idx := make([]int, len(shape.Levels))
	for {
		row := make([]string, 0, len(idx)+1)
		for i, v := range idx {
			row = append(row, fmt.Sprintf("a%d_%d", i+1, v))
		}
		if err := writer.Write(append(row, strconv.Itoa(shape.Freq))); err != nil {
			return err
		}

		pos := 0
		for pos < len(idx) {
			idx[pos]++
			if idx[pos] < shape.Levels[pos] {
				break
			}
			idx[pos] = 0
			pos++
		}
		if pos == len(idx) {
			break
		}
	}

	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across the configured tables
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d tables, %v timeout, no-ledger: %d runs, ledger: %d runs\n",
		len(config.Tables), config.Timeout, config.NoLedgerRuns, config.LedgerRuns)

	for _, name := range config.TableOrder {
		shape := config.Tables[name]
		tablePath := filepath.Join(config.WorkDir, name+"_summary.csv")
		if err := writeTable(tablePath, shape); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", name, err)
		}
		fmt.Printf("Benchmarking %s (%d units)\n", name, shape.Units())

		for _, output := range config.Outputs {
			outPath := filepath.Join(config.WorkDir, name+"_expanded."+output)
			result := runBenchmarkSuite(config, name, tablePath, output, outPath)
			results = append(results, result)
		}
	}

	return results, nil
}

// runBenchmarkSuite runs both no-ledger and ledger benchmarks for one output format
func runBenchmarkSuite(config BenchmarkConfig, table, tablePath, output, outPath string) BenchmarkResult {
	fmt.Printf("Running %s expansion of %s\n", output, table)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, tablePath, output, outPath, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No ledger
	_, noLedgerAvg := runPhase("none", config.NoLedgerRuns, "No-ledger")

	// Phase 2: SQLite ledger
	coldTime, warmAvg := runPhase("sqlite", config.LedgerRuns, "Ledger")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-ledger average: %s, Cold time: %s, Warm average: %s\n", noLedgerAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Table:        table,
		Output:       output,
		NoLedgerTime: noLedgerAvg,
		ColdTime:     coldTimeStr,
		WarmTime:     warmAvg,
	}
}

// runBenchmark expands a table multiple times with the given backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, tablePath, output, outPath, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"expand", tablePath,
		"--rename", "",
		"--output", output,
		"--output-file", outPath,
		"--runs-backend", backend,
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("ctexpand", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var out []byte
		var cmdErr error

		go func() {
			out, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(out) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates a verified expansion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Round trip") && !strings.Contains(outputStr, "Fatal")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/ctexpand_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"table", "output", "no_ledger_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Table, result.Output, result.NoLedgerTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult, outputs []string) {
	fmt.Printf("Benchmark complete\n")

	for _, output := range outputs {
		fmt.Printf("%s output:\n", strings.ToUpper(output))
		for _, result := range results {
			if result.Output == output {
				fmt.Printf("  %-8s: No-ledger: %s, Cold: %s, Warm: %s\n", result.Table, result.NoLedgerTime, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
