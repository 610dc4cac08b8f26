// Package main measures the impact CLI across repositories of different sizes.
// For every repository it times a full index run and the read commands served
// from the resulting snapshot, averages several runs of each, and writes the
// timings to a CSV file for performance tracking.
//
// Prerequisites:
// - impact binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run ./benchmark [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
)

// BenchmarkResult holds the timings of one command on one repository.
type BenchmarkResult struct {
	Repository string
	Command    string
	FirstTime  string // First run, with cold OS caches
	AvgTime    string // Average of the remaining runs
	Failures   int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
	Commands  []benchCommand
}

// benchCommand is one measured invocation.
type benchCommand struct {
	Name string
	Args []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Runs:      4,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
		Commands: []benchCommand{
			{Name: "index", Args: []string{"index"}},
			{Name: "contributors", Args: []string{"contributors", "--output", "json"}},
			{Name: "contributors-last", Args: []string{"contributors", "--output", "json", "--page", "999999"}},
			{Name: "chart", Args: []string{"chart", "--output", "json"}},
			{Name: "chart-svg", Args: []string{"chart", "--image", "--chart-format", "svg", "--output-file", os.DevNull}},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	storeDir, err := os.MkdirTemp("", "impact-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create store directory: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(storeDir) }()

	results := runBenchmarks(config, storeDir)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the impact binary and test repositories exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("impact"); err != nil {
		return errors.New("impact binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every command on every repository. Each repository
// gets its own SQLite store so the read commands see exactly one snapshot.
func runBenchmarks(config BenchmarkConfig, storeDir string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per command\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)
		env := []string{
			"IMPACT_STORE_BACKEND=sqlite",
			"IMPACT_STORE_DB_CONNECT=" + filepath.Join(storeDir, repo+".db"),
			"IMPACT_COLOR=no",
		}
		for _, c := range config.Commands {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, env, c))
		}
	}
	return results
}

// runBenchmarkSuite runs one command config.Runs times and summarizes the timings.
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath string, env []string, c benchCommand) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", c.Name, config.Runs)

	result := BenchmarkResult{Repository: repo, Command: c.Name, FirstTime: "FAILED", AvgTime: "FAILED"}
	var times []float64
	for range config.Runs {
		elapsed, err := runOnce(config.Timeout, repoPath, env, c.Args)
		if err != nil {
			result.Failures++
			continue
		}
		times = append(times, elapsed.Seconds())
	}

	if len(times) > 0 {
		result.FirstTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		result.AvgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("    first: %s, average: %s, failures: %d\n", result.FirstTime, result.AvgTime, result.Failures)
	return result
}

// runOnce runs impact with args in dir and returns its wall time.
func runOnce(timeout time.Duration, dir string, env, args []string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "impact", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	start := time.Now()
	if output, err := cmd.CombinedOutput(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("timed out after %v", timeout)
		}
		return 0, fmt.Errorf("%w: %s", err, output)
	}
	return time.Since(start), nil
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("impact_benchmark_%s.csv", time.Now().Format("20060102_150405")))

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
	if err := writer.Write([]string{"repo", "cmd", "first_time", "avg_time", "failures"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Repository, r.Command, r.FirstTime, r.AvgTime, fmt.Sprint(r.Failures)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results as a table.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Repository", "Command", "First", "Average", "Failures"})
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Repository, r.Command, r.FirstTime, r.AvgTime, fmt.Sprint(r.Failures)})
	}
	if err := table.Bulk(rows); err != nil {
		fmt.Printf("Failed to render summary: %v\n", err)
		return
	}
	if err := table.Render(); err != nil {
		fmt.Printf("Failed to render summary: %v\n", err)
	}
}
