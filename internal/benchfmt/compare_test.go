package benchfmt

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	base := Summary{
		CommitID: "base",
		Results: []Result{
			{Name: "Insert", Category: "standard", Metrics: map[string]float64{"ns_per_op": 100, "ops_per_sec": 1e7}},
			{Name: "Get", Category: "standard", Metrics: map[string]float64{"ns_per_op": 100}},
			{Name: "TenThousandKeys", Category: "scale", Metrics: map[string]float64{"insertion_rate": 1000, "max_probe": 10}},
		},
	}
	current := Summary{
		CommitID: "current",
		Results: []Result{
			{Name: "Insert", Category: "standard", Metrics: map[string]float64{"ns_per_op": 120, "ops_per_sec": 1e7}},
			{Name: "Get", Category: "standard", Metrics: map[string]float64{"ns_per_op": 102}},
			{Name: "TenThousandKeys", Category: "scale", Metrics: map[string]float64{"insertion_rate": 1500, "max_probe": 10}},
			{Name: "New", Category: "other", Metrics: map[string]float64{"ns_per_op": 1}},
		},
	}

	summary := Compare(base, current, DefaultThreshold)

	require.Equal(t, 3, summary.TotalBenchmarks)
	require.Equal(t, 1, summary.SignificantRegressions)
	require.Equal(t, 1, summary.ImprovedBenchmarks)

	var names []string
	for _, bc := range summary.BenchmarkComparisons {
		names = append(names, bc.Name)
	}
	if diff := cmp.Diff([]string{"Insert", "Get", "TenThousandKeys"}, names); diff != "" {
		t.Errorf("Comparison order mismatch (-want +got):\n%s", diff)
	}

	insert := summary.BenchmarkComparisons[0]
	require.Equal(t, "REGRESSION", insert.OverallAssessment)
	require.True(t, insert.HasRegressions)

	get := summary.BenchmarkComparisons[1]
	require.Equal(t, "NEUTRAL", get.OverallAssessment)
	require.False(t, get.HasRegressions, "a 2 percent slowdown is below the threshold")

	scale := summary.BenchmarkComparisons[2]
	require.Equal(t, "IMPROVEMENT", scale.OverallAssessment)
	require.InDelta(t, 25.0, scale.Score, 1e-9)

	var buf bytes.Buffer
	WriteReport(&buf, summary)
	require.Contains(t, buf.String(), "Benchmark Comparison: base vs current")
	require.Contains(t, buf.String(), "[REGRESSION] Insert (standard):")
}

func TestAppendMergesResults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history", "latest.json")

	first := Result{Name: "TenThousandKeys", Metrics: map[string]float64{"insertion_rate": 1, "batch_insert_1000": 2}}
	require.NoError(t, Append(path, dir, first))

	second := Result{Name: "UUIDKeys", Metrics: map[string]float64{"retrieval_rate": 3, "memory_mb_10000": 4}}
	require.NoError(t, Append(path, dir, second))

	summary, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "local", summary.CommitID)
	require.Equal(t, "dev", summary.Branch)

	want := []Result{
		{Name: "TenThousandKeys", Metrics: map[string]float64{"insertion_rate": 1}},
		{Name: "UUIDKeys", Metrics: map[string]float64{"retrieval_rate": 3}},
	}
	if diff := cmp.Diff(want, summary.Results); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read")
}
