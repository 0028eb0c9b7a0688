// Package benchfmt reads, writes, parses and compares benchmark summaries
// for the chash table.
package benchfmt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Result is a single benchmark with its metrics
type Result struct {
	Name        string             `json:"name"`
	Category    string             `json:"category,omitempty"` // "standard" or "scale"
	Operations  int                `json:"operations,omitempty"`
	NsPerOp     float64            `json:"ns_per_op,omitempty"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Summary is a set of results from one run
type Summary struct {
	Timestamp  string   `json:"timestamp"`
	CommitID   string   `json:"commit_id"`
	Branch     string   `json:"branch"`
	GoVersion  string   `json:"go_version"`
	SystemInfo string   `json:"system_info,omitempty"`
	Results    []Result `json:"results"`
}

// NewSummary creates a summary stamped with the current time, the running Go
// version and the git state of repoRoot
func NewSummary(repoRoot string, results ...Result) Summary {
	commitID, branch := GitInfo(repoRoot)
	return Summary{
		Timestamp:  time.Now().Format(time.RFC3339),
		CommitID:   commitID,
		Branch:     branch,
		GoVersion:  runtime.Version(),
		SystemInfo: "goos: " + runtime.GOOS + " goarch: " + runtime.GOARCH,
		Results:    results,
	}
}

// GitInfo reads the short commit id and branch from .git/HEAD. It falls back
// to "local" and "dev" outside a checkout.
func GitInfo(repoRoot string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}

	content := strings.TrimSpace(string(head))
	if !strings.HasPrefix(content, "ref: ") {
		// Detached HEAD holds the commit itself
		return truncate(content, 8), branch
	}

	ref := strings.TrimPrefix(content, "ref: ")
	if strings.HasPrefix(ref, "refs/heads/") {
		branch = strings.TrimPrefix(ref, "refs/heads/")
	}
	if data, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commitID = truncate(strings.TrimSpace(string(data)), 8)
	}
	return commitID, branch
}

// CleanMetrics drops the per-batch progress metrics that are only useful
// while a benchmark is running
func CleanMetrics(r *Result) {
	if r.Metrics == nil {
		return
	}

	for key := range r.Metrics {
		if strings.HasPrefix(key, "batch_") || strings.HasPrefix(key, "memory_mb_") {
			delete(r.Metrics, key)
		}
	}
}

// Load reads a summary from a JSON file
func Load(path string) (Summary, error) {
	var s Summary

	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "failed to read %s", path)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "failed to parse %s", path)
	}
	return s, nil
}

// Write stores a summary as indented JSON, creating parent directories
func Write(path string, s Summary) error {
	return writeJSON(path, s)
}

// WriteComparison stores a comparison as indented JSON
func WriteComparison(path string, c ComparisonSummary) error {
	return writeJSON(path, c)
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Append adds r to the summary stored at path. A missing or unreadable file
// starts a fresh summary.
func Append(path, repoRoot string, r Result) error {
	CleanMetrics(&r)

	summary := NewSummary(repoRoot, r)
	if existing, err := Load(path); err == nil {
		// Keep the original stamp, only add the result
		existing.Results = append(existing.Results, r)
		summary = existing
	}
	return Write(path, summary)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
