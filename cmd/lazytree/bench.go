package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	humanize "github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bluesky-social/lazytree/lazy"
	"github.com/bluesky-social/lazytree/pkg/metrics"
)

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "run a concurrent insert/erase workload with background compaction",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Usage:   "total number of operations across all workers",
			Value:   100_000,
			EnvVars: []string{"LAZYTREE_BENCH_COUNT"},
		},
		&cli.Float64Flag{
			Name:  "erase-ratio",
			Usage: "fraction of operations that erase instead of insert",
			Value: 0.4,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent workers",
			Value: 4,
		},
		&cli.Float64Flag{
			Name:    "rate",
			Usage:   "maximum operations per second across all workers (0 for unlimited)",
			EnvVars: []string{"LAZYTREE_BENCH_RATE"},
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed for generated values",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "value-range",
			Usage: "values are drawn from [0, value-range)",
			Value: 50_000,
		},
		&cli.DurationFlag{
			Name:    "compact-interval",
			Usage:   "how often the compactor checks the tree",
			Value:   100 * time.Millisecond,
			EnvVars: []string{"LAZYTREE_COMPACT_INTERVAL"},
		},
		&cli.Float64Flag{
			Name:  "stale-ratio",
			Usage: "compact once this fraction of nodes is stale",
			Value: lazy.DefaultCompactorConfig().StaleRatio,
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "address for the prometheus metrics endpoint (empty to disable)",
			EnvVars: []string{"LAZYTREE_METRICS_LISTEN"},
		},
	},
	Action: runBench,
}

type benchConfig struct {
	Count         int
	EraseRatio    float64
	Workers       int
	Rate          float64
	Seed          int64
	ValueRange    int
	Compactor     lazy.CompactorConfig
	MetricsListen string
}

type benchResult struct {
	Inserted  int64
	Erased    int64
	Noops     int64
	Reclaimed int
	Elapsed   time.Duration
	Stats     lazy.Stats
}

func runBench(cctx *cli.Context) error {
	cfg := benchConfig{
		Count:         cctx.Int("count"),
		EraseRatio:    cctx.Float64("erase-ratio"),
		Workers:       cctx.Int("workers"),
		Rate:          cctx.Float64("rate"),
		Seed:          cctx.Int64("seed"),
		ValueRange:    cctx.Int("value-range"),
		MetricsListen: cctx.String("metrics-listen"),
	}
	cfg.Compactor = *lazy.DefaultCompactorConfig()
	cfg.Compactor.Interval = cctx.Duration("compact-interval")
	cfg.Compactor.StaleRatio = cctx.Float64("stale-ratio")

	res, err := benchmark(cctx.Context, cfg)
	if err != nil {
		return err
	}

	opsPerSec := float64(cfg.Count) / res.Elapsed.Seconds()
	out := cctx.App.Writer
	fmt.Fprintf(out, "operations: %s in %s (%s ops/sec)\n", humanize.Comma(int64(cfg.Count)), res.Elapsed.Round(time.Millisecond), humanize.CommafWithDigits(opsPerSec, 0))
	fmt.Fprintf(out, "inserted: %s erased: %s no-ops: %s\n", humanize.Comma(res.Inserted), humanize.Comma(res.Erased), humanize.Comma(res.Noops))
	fmt.Fprintf(out, "reclaimed by final compaction: %s\n", humanize.Comma(int64(res.Reclaimed)))
	fmt.Fprintf(out, "size: %s nodes: %s height: %d\n", humanize.Comma(int64(res.Stats.Size)), humanize.Comma(int64(res.Stats.Nodes)), res.Stats.Height)
	return nil
}

func benchmark(ctx context.Context, cfg benchConfig) (*benchResult, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("need at least one worker, got %d", cfg.Workers)
	}
	if cfg.ValueRange < 1 {
		return nil, fmt.Errorf("value range must be positive, got %d", cfg.ValueRange)
	}
	log := slog.Default().With("system", "bench")

	tree := lazy.NewLocked(lazy.New[int64]())
	compactor := lazy.NewCompactor(tree, &cfg.Compactor)

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, cfg.Workers)

	// background services live until the workload finishes
	bgctx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	var bg errgroup.Group
	bg.Go(func() error {
		return metrics.RunServer(bgctx, cfg.MetricsListen)
	})
	bg.Go(func() error {
		if err := compactor.Run(bgctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	results := make([]benchResult, cfg.Workers)
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		ops := cfg.Count / cfg.Workers
		if w < cfg.Count%cfg.Workers {
			ops++
		}
		res := &results[w]
		faker := gofakeit.New(cfg.Seed + int64(w))
		g.Go(func() error {
			for i := 0; i < ops; i++ {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
				v := int64(faker.Number(0, cfg.ValueRange-1))
				if faker.Float64Range(0, 1) < cfg.EraseRatio {
					if tree.Erase(v) {
						res.Erased++
					} else {
						res.Noops++
					}
					continue
				}
				if tree.Insert(v) {
					res.Inserted++
				} else {
					res.Noops++
				}
			}
			return nil
		})
	}
	werr := g.Wait()
	elapsed := time.Since(start)

	stopBackground()
	if err := bg.Wait(); err != nil {
		return nil, err
	}
	if werr != nil {
		return nil, werr
	}

	out := &benchResult{Elapsed: elapsed}
	for _, r := range results {
		out.Inserted += r.Inserted
		out.Erased += r.Erased
		out.Noops += r.Noops
	}
	out.Reclaimed = compactor.CompactNow()

	var verr error
	tree.Do(func(t *lazy.Tree[int64]) {
		verr = t.Verify()
		out.Stats = t.Stats()
	})
	if verr != nil {
		return nil, verr
	}
	log.Info("benchmark finished", "ops", cfg.Count, "elapsed", elapsed, "size", out.Stats.Size)
	return out, nil
}
