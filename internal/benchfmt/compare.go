package benchfmt

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// DefaultThreshold is the percent change from which a difference counts as
// significant
const DefaultThreshold = 5.0

// MetricComparison compares one metric between two runs
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison compares every shared metric of one benchmark
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	OverallAssessment string             `json:"overall_assessment"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// ComparisonSummary is the outcome of comparing two summaries
type ComparisonSummary struct {
	BaseCommit             string                `json:"base_commit"`
	CurrentCommit          string                `json:"current_commit"`
	TotalBenchmarks        int                   `json:"total_benchmarks"`
	ImprovedBenchmarks     int                   `json:"improved_benchmarks"`
	SignificantRegressions int                   `json:"significant_regressions"`
	BenchmarkComparisons   []BenchmarkComparison `json:"benchmark_comparisons"`
}

// Compare matches benchmarks by name and compares their shared metrics.
// Benchmarks missing from base are skipped. Results are sorted with
// regressions first, then by ascending score.
func Compare(base, current Summary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]Result, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{
		BaseCommit:    base.CommitID,
		CurrentCommit: current.CommitID,
	}

	for _, cur := range current.Results {
		prev, ok := baseResults[cur.Name]
		if !ok {
			continue
		}

		bc := compareResult(prev, cur, threshold)
		switch {
		case bc.HasRegressions:
			bc.OverallAssessment = "REGRESSION"
			summary.SignificantRegressions++
		case bc.Score > 0:
			bc.OverallAssessment = "IMPROVEMENT"
			summary.ImprovedBenchmarks++
		default:
			bc.OverallAssessment = "NEUTRAL"
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}
	summary.TotalBenchmarks = len(summary.BenchmarkComparisons)

	sort.SliceStable(summary.BenchmarkComparisons, func(i, j int) bool {
		a, b := summary.BenchmarkComparisons[i], summary.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})

	return summary
}

func compareResult(base, current Result, threshold float64) BenchmarkComparison {
	bc := BenchmarkComparison{
		Name:     current.Name,
		Category: current.Category,
	}

	names := make([]string, 0, len(current.Metrics))
	for name := range current.Metrics {
		if _, ok := base.Metrics[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	score := 0.0
	for _, name := range names {
		baseValue, currentValue := base.Metrics[name], current.Metrics[name]

		change := 0.0
		if baseValue != 0 {
			change = (currentValue - baseValue) / baseValue * 100
		}

		mc := MetricComparison{
			Name:          name,
			BaseValue:     baseValue,
			CurrentValue:  currentValue,
			PercentChange: change,
			IsSignificant: math.Abs(change) >= threshold,
		}
		if higherIsBetter(name) {
			mc.IsRegression, mc.IsImprovement = change < 0, change > 0
		} else {
			mc.IsRegression, mc.IsImprovement = change > 0, change < 0
		}

		if mc.IsRegression && mc.IsSignificant {
			bc.HasRegressions = true
		}
		if mc.IsImprovement {
			score += math.Abs(change)
		} else if mc.IsRegression {
			score -= math.Abs(change)
		}
		bc.MetricComparisons = append(bc.MetricComparisons, mc)
	}

	if len(names) > 0 {
		bc.Score = score / float64(len(names))
	}
	return bc
}

// higherIsBetter reports whether growth of the metric is an improvement.
// Rates and throughput go up when things get better, while timings, probe
// lengths and allocations go down.
func higherIsBetter(name string) bool {
	for _, pattern := range []string{"ops_per_sec", "operations", "_rate", "throughput"} {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// WriteReport prints a human readable comparison
func WriteReport(w io.Writer, s ComparisonSummary) {
	fmt.Fprintf(w, "Benchmark Comparison: %s vs %s\n\n", truncate(s.BaseCommit, 8), truncate(s.CurrentCommit, 8))
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "- Total benchmarks compared: %d\n", s.TotalBenchmarks)
	fmt.Fprintf(w, "- Improvements: %d\n", s.ImprovedBenchmarks)
	fmt.Fprintf(w, "- Significant regressions: %d\n\n", s.SignificantRegressions)

	if s.TotalBenchmarks == 0 {
		fmt.Fprintln(w, "No matching benchmarks found for comparison")
		return
	}

	fmt.Fprintln(w, "Benchmark Details (sorted by impact):")
	fmt.Fprintln(w, "======================================")

	for _, bc := range s.BenchmarkComparisons {
		fmt.Fprintf(w, "\n[%s] %s (%s):\n", bc.OverallAssessment, bc.Name, bc.Category)

		metrics := append([]MetricComparison(nil), bc.MetricComparisons...)
		sort.SliceStable(metrics, func(i, j int) bool {
			return math.Abs(metrics[i].PercentChange) > math.Abs(metrics[j].PercentChange)
		})

		for _, m := range metrics {
			if m.PercentChange == 0 {
				continue
			}

			marker := " "
			if m.IsSignificant && m.IsRegression {
				marker = "-"
			} else if m.IsSignificant && m.IsImprovement {
				marker = "+"
			}
			fmt.Fprintf(w, "  %s %-24s: %+8.2f%% (%g -> %g)\n", marker, m.Name, m.PercentChange, m.BaseValue, m.CurrentValue)
		}
	}
}
