// Package main measures how much the commit detail cache speeds up yearly reports.
// Each year is collected several times without a cache, then with a SQLite cache,
// treating the first cached run as cold and averaging the rest as warm.
//
// Prerequisites:
// - devwrapped binary installed and available in PATH
// - GITHUB_TOKEN and/or GITLAB_TOKEN set in the environment
//
// Usage: go run benchmark/main.go year [year...]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Year        int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Years       []int
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s year [year...]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		Timeout:     10 * time.Minute,
		NoCacheRuns: 2,
		CacheRuns:   4,
	}
	for _, arg := range os.Args[1:] {
		year, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Printf("Invalid year %q: %v\n", arg, err)
			os.Exit(1)
		}
		config.Years = append(config.Years, year)
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using devwrapped cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("devwrapped", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binary and at least one token exist
func checkPrerequisites() error {
	if _, err := exec.LookPath("devwrapped"); err != nil {
		return fmt.Errorf("devwrapped binary not found in PATH")
	}
	if os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("GITLAB_TOKEN") == "" {
		return fmt.Errorf("set GITHUB_TOKEN or GITLAB_TOKEN")
	}
	return nil
}

// runBenchmarks executes the no-cache and cache phases for every year
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d years, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Years), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, year := range config.Years {
		fmt.Printf("Benchmarking %d\n", year)
		results = append(results, runBenchmarkSuite(config, year))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a year
func runBenchmarkSuite(config BenchmarkConfig, year int) BenchmarkResult {
	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, year, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Year:        year,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark collects one year multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, year int, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"report", "--year", strconv.Itoa(year),
		"--output", "json", "--output-file", os.DevNull,
		"--card=false", "--cache-backend", cacheBackend,
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("devwrapped", args...)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/devwrapped_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"year", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Year), result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %d: No-cache: %s, Cold: %s, Warm: %s\n", result.Year, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
