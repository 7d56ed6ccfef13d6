package lazy

import (
	"context"
	"log/slog"
	"time"
)

type CompactorConfig struct {
	// how often to check the tree
	Interval time.Duration
	// compact when Stale/Nodes reaches this ratio
	StaleRatio float64
	// and at least this many stale nodes exist
	MinStale int
}

func DefaultCompactorConfig() *CompactorConfig {
	return &CompactorConfig{
		Interval:   time.Second,
		StaleRatio: 0.25,
		MinStale:   64,
	}
}

// Compactor runs Clean on a Locked tree whenever enough of it is stale.
type Compactor[T any] struct {
	tree   *Locked[T]
	Config CompactorConfig
	Logger *slog.Logger
}

func NewCompactor[T any](tree *Locked[T], config *CompactorConfig) *Compactor[T] {
	if config == nil {
		config = DefaultCompactorConfig()
	}
	cfg := *config
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultCompactorConfig().Interval
	}
	return &Compactor[T]{
		tree:   tree,
		Config: cfg,
		Logger: slog.Default().With("system", "compactor"),
	}
}

// Run checks the tree every Config.Interval until ctx is done, and returns ctx.Err().
func (c *Compactor[T]) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.Config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.MaybeCompact()
		}
	}
}

// MaybeCompact runs one pass if the stale thresholds are met. Returns the number of reclaimed nodes, zero if no pass ran.
func (c *Compactor[T]) MaybeCompact() int {
	var reclaimed int
	var ran bool
	var stats Stats
	c.tree.Do(func(t *Tree[T]) {
		stats = t.Stats()
		if stats.Stale < c.Config.MinStale || stats.Stale == 0 || stats.StaleRatio() < c.Config.StaleRatio {
			return
		}
		reclaimed = t.Clean()
		ran = true
	})
	if ran {
		c.Logger.Info("compacted", "reclaimed", reclaimed, "nodes", stats.Nodes, "size", stats.Size)
	}
	return reclaimed
}

// CompactNow runs one pass regardless of thresholds.
func (c *Compactor[T]) CompactNow() int {
	reclaimed := c.tree.Clean()
	c.Logger.Info("compacted", "reclaimed", reclaimed, "forced", true)
	return reclaimed
}
