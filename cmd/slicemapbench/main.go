// Command slicemapbench drives random add/remove/get workloads against the
// slicemap backends and reports throughput and compaction metrics.
//
// Usage:
//
//	slicemapbench [--backend all] [--workers 4] [--ops 100000] [--max-len 16] [--dist uniform|zipf]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/slicemap"
	"github.com/hupe1980/slicemap/slotmap"
	"github.com/hupe1980/slicemap/testutil"
)

var (
	backends      = []string{"vec", "array", "slots", "secondary", "sparse"}
	distributions = []string{"uniform", "zipf"}
)

type config struct {
	backend    string
	workers    int
	ops        int
	maxLen     int
	dist       string
	zipfS      float64
	removeRate float64
	getRate    float64
	seed       int64
	verbose    bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg, code := parseFlags(errOut, args)
	if code >= 0 {
		return code
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slicemap.NewLogger(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	names := backends
	if cfg.backend != "all" {
		names = []string{cfg.backend}
	}

	for _, name := range names {
		mc := &slicemap.BasicMetricsCollector{}
		start := time.Now()

		if err := runBackend(ctx, name, cfg, logger.WithName(name), mc); err != nil {
			fmt.Fprintf(errOut, "error: %s: %v\n", name, err)
			return 1
		}

		report(out, name, time.Since(start), mc.GetStats())
	}
	return 0
}

func parseFlags(errOut io.Writer, args []string) (config, int) {
	flagSet := flag.NewFlagSet("slicemapbench", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	var cfg config
	flagSet.StringVarP(&cfg.backend, "backend", "b", "all", "Backend to run: all, vec, array, slots, secondary, sparse")
	flagSet.IntVarP(&cfg.workers, "workers", "w", 4, "Concurrent workers, each with its own container")
	flagSet.IntVarP(&cfg.ops, "ops", "n", 100_000, "Operations per worker")
	flagSet.IntVar(&cfg.maxLen, "max-len", 16, "Maximum slice length")
	flagSet.StringVar(&cfg.dist, "dist", "uniform", "Slice length distribution: uniform, zipf")
	flagSet.Float64Var(&cfg.zipfS, "zipf-s", 1.5, "Zipf skew for --dist zipf")
	flagSet.Float64Var(&cfg.removeRate, "remove-rate", 0.3, "Probability of a remove")
	flagSet.Float64Var(&cfg.getRate, "get-rate", 0.2, "Probability of a get")
	flagSet.Int64Var(&cfg.seed, "seed", 4711, "Random seed")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "Log every operation")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, 0
		}
		return cfg, 2
	}

	switch {
	case cfg.backend != "all" && !slices.Contains(backends, cfg.backend):
		fmt.Fprintf(errOut, "error: unknown backend %q\n", cfg.backend)
		return cfg, 2
	case !slices.Contains(distributions, cfg.dist):
		fmt.Fprintf(errOut, "error: unknown distribution %q\n", cfg.dist)
		return cfg, 2
	case cfg.zipfS <= 0:
		fmt.Fprintln(errOut, "error: --zipf-s must be positive")
		return cfg, 2
	case cfg.workers < 1 || cfg.ops < 1 || cfg.maxLen < 0:
		fmt.Fprintln(errOut, "error: --workers and --ops must be positive, --max-len non-negative")
		return cfg, 2
	case cfg.removeRate < 0 || cfg.getRate < 0 || cfg.removeRate+cfg.getRate > 1:
		fmt.Fprintln(errOut, "error: --remove-rate and --get-rate must be non-negative and sum to at most 1")
		return cfg, 2
	}
	return cfg, -1
}

func runBackend(ctx context.Context, name string, cfg config, logger *slicemap.Logger, mc slicemap.MetricsCollector) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for w := range cfg.workers {
		rng := testutil.NewRNG(cfg.seed + int64(w))
		opts := []slicemap.Option{slicemap.WithLogger(logger), slicemap.WithMetricsCollector(mc)}

		g.Go(func() error {
			switch name {
			case "vec":
				m := slicemap.NewVec[int](opts...)
				return workload(ctx, m, m.Add, rng, cfg)
			case "array":
				m := slicemap.NewArray[int](cfg.ops*cfg.maxLen, cfg.ops, opts...)
				return workload(ctx, m, m.Add, rng, cfg)
			case "slots":
				m := slicemap.NewSlots[int](opts...)
				return workload(ctx, m, m.Add, rng, cfg)
			case "secondary":
				m := slicemap.NewSecondary[int](opts...)
				return workload(ctx, m, external(m), rng, cfg)
			case "sparse":
				m := slicemap.NewSparseSecondary[int](opts...)
				return workload(ctx, m, external(m), rng, cfg)
			}
			return fmt.Errorf("unknown backend %q", name)
		})
	}
	return g.Wait()
}

// external issues keys from an entity registry and stores slices under them.
func external(m *slicemap.SliceMap[slotmap.Key, int]) func(items ...int) (slotmap.Key, error) {
	entities := slotmap.New[struct{}]()
	return func(items ...int) (slotmap.Key, error) {
		k, err := entities.Insert(struct{}{})
		if err != nil {
			return k, err
		}
		return k, m.AddAt(k, items...)
	}
}

func workload[K comparable](ctx context.Context, m *slicemap.SliceMap[K, int], add func(...int) (K, error), rng *testutil.RNG, cfg config) error {
	var batches [][]int
	switch cfg.dist {
	case "zipf":
		batches = rng.ZipfBatches(cfg.ops, cfg.maxLen, cfg.zipfS)
	default:
		batches = rng.Batches(cfg.ops, cfg.maxLen)
	}
	ops := rng.Ops(cfg.ops, cfg.removeRate, cfg.getRate)

	var keys []K

	for i, op := range ops {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		switch {
		case op == testutil.OpRemove && len(keys) > 0:
			j := rng.Intn(len(keys))
			if _, ok := m.RemoveSlice(keys[j]); !ok {
				return fmt.Errorf("remove: live key %v not found", keys[j])
			}
			keys = slices.Delete(keys, j, j+1)
		case op == testutil.OpGet && len(keys) > 0:
			k := keys[rng.Intn(len(keys))]
			if _, ok := m.GetSlice(k); !ok {
				return fmt.Errorf("get: live key %v not found", k)
			}
		default:
			k, err := add(batches[i]...)
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}
	}

	n := 0
	for s := range m.Slices() {
		n += len(s)
	}
	if n != m.ItemsLen() {
		return fmt.Errorf("slices hold %d items, buffer holds %d", n, m.ItemsLen())
	}
	return nil
}

func report(out io.Writer, name string, elapsed time.Duration, s slicemap.BasicMetricsStats) {
	ops := s.AddCount + s.RemoveCount + s.RemoveMisses
	fmt.Fprintf(out, "%-10s %10s  adds=%d (%d items, %d errors)  removes=%d  shifted=%d (avg %d)  rebased=%d  %.0f ops/s\n",
		name,
		elapsed.Round(time.Millisecond),
		s.AddCount, s.ItemsAdded, s.AddErrors,
		s.RemoveCount,
		s.ItemsShifted, s.AvgShiftPerRemove,
		s.SlicesRebased,
		float64(ops)/elapsed.Seconds(),
	)
}
