// Package loadgen fills chash tables with generated keys and measures
// insertion and lookup rates.
package loadgen

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/internal/benchfmt"
)

// Key kinds
const (
	KindInt    = "int"
	KindString = "string"
	KindUUID   = "uuid"
)

// Hasher names
const (
	HasherSplitmix = "splitmix"
	HasherXXHash   = "xxhash"
	HasherXXH3     = "xxh3"
	HasherMaphash  = "maphash"
)

// Config describes one load run
type Config struct {
	Name      string
	Keys      int
	Kind      string
	Hasher    string
	ValueSize int
	Lookups   int
	Reserve   bool
	Seed      uint64
	Logger    log.Logger
}

func (cfg *Config) validate() error {
	if cfg.Keys <= 0 {
		return errors.Errorf("key count must be positive, got %d", cfg.Keys)
	}
	if cfg.Lookups < 0 {
		return errors.Errorf("lookup count must not be negative, got %d", cfg.Lookups)
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("%s-%s-%d", cfg.Kind, cfg.Hasher, cfg.Keys)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	return nil
}

// Run generates the keys, loads a table and measures it
func Run(cfg Config) (benchfmt.Result, error) {
	if err := cfg.validate(); err != nil {
		return benchfmt.Result{}, err
	}

	gen := NewGenerator(cfg.Seed)
	values := make([]string, cfg.Keys)
	for i := range values {
		values[i] = gen.Alphanumeric(cfg.ValueSize)
	}

	opts := []chash.Option{chash.WithLogger(cfg.Logger)}
	if cfg.Reserve {
		opts = append(opts, chash.WithCapacity(cfg.Keys))
	}

	switch cfg.Kind {
	case KindInt:
		keys := distinctInts(gen, cfg.Keys)
		switch cfg.Hasher {
		case HasherSplitmix:
			return measure(cfg, chash.New[uint64, string](chash.IntHasher[uint64]{}, opts...), keys, values, gen), nil
		case HasherMaphash:
			return measure(cfg, chash.NewComparable[uint64, string](opts...), keys, values, gen), nil
		}

	case KindString, KindUUID:
		keys := make([]string, cfg.Keys)
		for i := range keys {
			if cfg.Kind == KindUUID {
				keys[i] = gen.UUID()
			} else {
				keys[i] = "key-" + strconv.Itoa(i)
			}
		}
		switch cfg.Hasher {
		case HasherXXHash:
			return measure(cfg, chash.New[string, string](chash.StringHasher{}, opts...), keys, values, gen), nil
		case HasherXXH3:
			return measure(cfg, chash.New[string, string](chash.XXH3StringHasher{}, opts...), keys, values, gen), nil
		case HasherMaphash:
			return measure(cfg, chash.NewComparable[string, string](opts...), keys, values, gen), nil
		}

	default:
		return benchfmt.Result{}, errors.Errorf("unknown key kind %q", cfg.Kind)
	}

	return benchfmt.Result{}, errors.Errorf("hasher %q does not support %s keys", cfg.Hasher, cfg.Kind)
}

func distinctInts(gen *Generator, n int) []uint64 {
	seen := make(map[uint64]struct{}, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := gen.Uint64()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func measure[K comparable, H chash.Hasher[K]](cfg Config, t *chash.Table[K, string, H], keys []K, values []string, gen *Generator) benchfmt.Result {
	result := benchfmt.Result{
		Name:       cfg.Name,
		Category:   "scale",
		Operations: len(keys),
		Metrics:    make(map[string]float64),
	}

	runtime.GC()

	start := time.Now()
	for i, k := range keys {
		t.Insert(k, values[i])
	}
	insertTime := time.Since(start)
	result.Metrics["insertion_rate"] = rate(len(keys), insertTime)
	level.Info(cfg.Logger).Log("msg", "inserted keys", "keys", len(keys), "duration", insertTime, "capacity", t.Cap())

	lookups := cfg.Lookups
	if lookups > len(keys) {
		lookups = len(keys)
	}
	order := gen.Perm(len(keys))[:lookups]

	missing := 0
	start = time.Now()
	for _, i := range order {
		if v, ok := t.Get(keys[i]); !ok || v != values[i] {
			missing++
		}
	}
	randomTime := time.Since(start)
	if lookups > 0 {
		result.Metrics["random_lookup_rate"] = rate(lookups, randomTime)
	}

	start = time.Now()
	for i, k := range keys {
		if v, ok := t.Get(k); !ok || v != values[i] {
			missing++
		}
	}
	seqTime := time.Since(start)
	result.Metrics["sequential_lookup_rate"] = rate(len(keys), seqTime)

	if missing > 0 {
		level.Error(cfg.Logger).Log("msg", "lookups returned wrong results", "count", missing)
	}
	result.Metrics["lookup_errors"] = float64(missing)

	st := t.Stats()
	result.Metrics["capacity"] = float64(st.Capacity)
	result.Metrics["load_factor"] = st.LoadFactor
	result.Metrics["max_probe"] = float64(st.MaxProbe)
	result.Metrics["mean_probe"] = st.MeanProbe

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	result.Metrics["alloc_mb"] = float64(m.Alloc) / (1024 * 1024)

	total := insertTime + randomTime + seqTime
	result.NsPerOp = float64(total.Nanoseconds()) / float64(len(keys)+lookups+len(keys))

	return result
}

// rate returns operations per second, or zero when the clock did not advance
func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
