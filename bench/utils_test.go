package chash_test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/theflywheel/chash/internal/benchfmt"
)

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// saveBenchmarkResult appends a result to benchmark_history/<resultsFile> in
// the repository root
func saveBenchmarkResult(result benchfmt.Result, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Tests run inside bench/, one level below the repository root
	repoRoot := filepath.Dir(currentDir)
	path := filepath.Join(repoRoot, "benchmark_history", resultsFile)

	if err := benchfmt.Append(path, repoRoot, result); err != nil {
		return err
	}

	fmt.Printf("Benchmark results saved to: %s\n", path)
	return nil
}
