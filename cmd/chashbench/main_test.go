package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/chash/internal/benchfmt"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "run.json")

	stdout, stderr, err := execute(t, "run", "--keys", "500", "--kind", "uuid", "--hasher", "xxh3", "--lookups", "100", "-o", output)
	require.NoError(t, err)
	require.Contains(t, stderr, `msg="run complete"`)

	var summary benchfmt.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	require.Len(t, summary.Results, 1)
	require.Equal(t, "uuid-xxh3-500", summary.Results[0].Name)
	require.Zero(t, summary.Results[0].Metrics["lookup_errors"])

	written, err := benchfmt.Load(output)
	require.NoError(t, err)
	require.Equal(t, summary.Results[0].Name, written.Results[0].Name)
}

func TestRunCommandDebugLogsGrowth(t *testing.T) {
	_, stderr, err := execute(t, "run", "--keys", "100", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, stderr, `msg="growing table"`)
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	_, _, err := execute(t, "run", "--kind", "int", "--hasher", "xxhash")
	require.Error(t, err)

	_, _, err = execute(t, "run", "--log-level", "loud")
	require.EqualError(t, err, `invalid log level "loud"`)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bench.txt")
	content := "goos: linux\ngoarch: amd64\nBenchmarkInsert-8   1000000   25.5 ns/op   0 B/op   0 allocs/op\nPASS\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	_, _, err := execute(t, "parse", input, "deadbeef", "main")
	require.NoError(t, err)

	summary, err := benchfmt.Load(filepath.Join(dir, "bench.json"))
	require.NoError(t, err)
	require.Equal(t, "deadbeef", summary.CommitID)
	require.Equal(t, "main", summary.Branch)
	require.Len(t, summary.Results, 1)
	require.InDelta(t, 25.5, summary.Results[0].NsPerOp, 1e-9)
}

func TestParseCommandWithoutResults(t *testing.T) {
	input := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(input, []byte("PASS\n"), 0644))

	_, _, err := execute(t, "parse", input)
	require.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.json")
	currentPath := filepath.Join(dir, "current.json")
	comparisonPath := filepath.Join(dir, "comparison.json")

	base := benchfmt.Summary{CommitID: "base", Results: []benchfmt.Result{
		{Name: "Get", Metrics: map[string]float64{"ns_per_op": 20}},
	}}
	require.NoError(t, benchfmt.Write(basePath, base))

	t.Run("NoRegression", func(t *testing.T) {
		current := benchfmt.Summary{CommitID: "current", Results: []benchfmt.Result{
			{Name: "Get", Metrics: map[string]float64{"ns_per_op": 18}},
		}}
		require.NoError(t, benchfmt.Write(currentPath, current))

		stdout, _, err := execute(t, "compare", basePath, currentPath, "-o", comparisonPath)
		require.NoError(t, err)
		require.Contains(t, stdout, "[IMPROVEMENT] Get")
		require.FileExists(t, comparisonPath)
	})

	t.Run("Regression", func(t *testing.T) {
		current := benchfmt.Summary{CommitID: "current", Results: []benchfmt.Result{
			{Name: "Get", Metrics: map[string]float64{"ns_per_op": 30}},
		}}
		require.NoError(t, benchfmt.Write(currentPath, current))

		_, _, err := execute(t, "compare", basePath, currentPath, "-o", "")
		require.EqualError(t, err, "1 significant performance regressions detected")
	})
}
