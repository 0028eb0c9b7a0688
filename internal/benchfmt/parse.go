package benchfmt

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	benchLineRegex = regexp.MustCompile(`^Benchmark([\w/]+?)(?:-\d+)?\s+(\d+)\s+(\d+\.?\d*)\s+ns/op(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)
	benchLogRegex  = regexp.MustCompile(`^--- BENCH: Benchmark([\w/]+?)(?:-\d+)?$`)
	systemRegex    = regexp.MustCompile(`goos:\s*\S+\s+goarch:\s*\S+`)
	goVersionRegex = regexp.MustCompile(`go\d+\.\d+(?:\.\d+)?`)
)

// logPatterns turn the lines scale benchmarks log into metrics
var logPatterns = []struct {
	regex *regexp.Regexp
	key   string
}{
	{regexp.MustCompile(`Time to insert \d+ .*keys: .+ \(([\d,.]+) keys/sec\)`), "insertion_rate"},
	{regexp.MustCompile(`Time to perform \d+ random lookups: .+ \(([\d,.]+) lookups/sec\)`), "random_lookup_rate"},
	{regexp.MustCompile(`Time to verify all \d+ keys sequentially: .+ \(([\d,.]+) lookups/sec\)`), "sequential_lookup_rate"},
	{regexp.MustCompile(`Time to retrieve \d+ .*keys.*: .+ \(([\d,.]+) keys/sec\)`), "retrieval_rate"},
	{regexp.MustCompile(`Time to validate \d+ .*keys: .+ \(([\d,.]+) keys/sec\)`), "validation_rate"},
	{regexp.MustCompile(`Max probe length: ([\d,]+)`), "max_probe"},
	{regexp.MustCompile(`Mean probe length: ([\d,.]+)`), "mean_probe"},
	{regexp.MustCompile(`Load factor: ([\d,.]+)`), "load_factor"},
	{regexp.MustCompile(`Alloc=([\d,.]+)MB`), "alloc_mb"},
}

var (
	standardBenchmarks = map[string]bool{
		"Insert": true,
		"Get":    true,
		"Upsert": true,
	}

	scaleBenchmarks = map[string]bool{
		"TenThousandKeys": true,
		"MillionKeys":     true,
		"UUIDKeys":        true,
	}
)

// Parse converts `go test -bench` output into a summary. Metrics logged by
// scale benchmarks are attached to the benchmark whose log block holds them.
func Parse(output, commitID, branch string) Summary {
	summary := Summary{
		Timestamp:  time.Now().Format(time.RFC3339),
		CommitID:   commitID,
		Branch:     branch,
		SystemInfo: strings.Join(strings.Fields(systemRegex.FindString(output)), " "),
		GoVersion:  goVersionRegex.FindString(output),
	}

	index := make(map[string]int)
	result := func(name string) *Result {
		i, ok := index[name]
		if !ok {
			i = len(summary.Results)
			index[name] = i
			summary.Results = append(summary.Results, Result{
				Name:     name,
				Category: category(name),
				Metrics:  make(map[string]float64),
			})
		}
		return &summary.Results[i]
	}

	current := ""
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		if m := benchLineRegex.FindStringSubmatch(line); m != nil {
			current = ""
			r := result(m[1])
			r.Operations, _ = strconv.Atoi(m[2])
			r.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
			r.Metrics["operations"] = float64(r.Operations)
			r.Metrics["ns_per_op"] = r.NsPerOp

			// Scale benchmarks report their own rates
			if !scaleBenchmarks[r.Name] && r.NsPerOp > 0 {
				r.Metrics["ops_per_sec"] = 1_000_000_000 / r.NsPerOp
			}
			if m[4] != "" {
				r.BytesPerOp, _ = strconv.Atoi(m[4])
				r.Metrics["bytes_per_op"] = float64(r.BytesPerOp)
			}
			if m[5] != "" {
				r.AllocsPerOp, _ = strconv.Atoi(m[5])
				r.Metrics["allocs_per_op"] = float64(r.AllocsPerOp)
			}
			continue
		}

		if m := benchLogRegex.FindStringSubmatch(line); m != nil {
			current = m[1]
			continue
		}

		// Log lines are indented; anything else ends the block
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			current = ""
			continue
		}
		if current == "" {
			continue
		}

		r := result(current)
		for key, value := range extractMetrics(line) {
			r.Metrics[key] = value
		}
	}

	return summary
}

func extractMetrics(line string) map[string]float64 {
	metrics := make(map[string]float64)
	for _, p := range logPatterns {
		m := p.regex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			metrics[p.key] = value
		}
	}
	return metrics
}

func category(name string) string {
	switch {
	case standardBenchmarks[name]:
		return "standard"
	case scaleBenchmarks[name]:
		return "scale"
	default:
		return "other"
	}
}
