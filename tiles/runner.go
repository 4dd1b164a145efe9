package tiles

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/worldgraph/core"
)

// Runner applies generators to tiles of a graph.
type Runner struct {
	opts    Options
	metrics *Metrics
}

// NewRunner builds a Runner and registers its collectors.
func NewRunner(opts ...Option) (*Runner, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	m, err := newMetrics(o.Registerer)
	if err != nil {
		return nil, fmt.Errorf("tiles: register metrics: %w", err)
	}

	return &Runner{opts: o, metrics: m}, nil
}

// Metrics exposes the Runner's collectors.
func (r *Runner) Metrics() *Metrics { return r.metrics }

// Run plans and commits gen for every tile.
//
// Implementation:
//   - Tiles whose marker is already processed are skipped before planning.
//   - Up to Workers tiles are planned at once; each Commit runs inside
//     g.Build, which re-checks the marker, so a tile lost to a concurrent
//     Run is counted as skipped.
//   - The first Plan or Commit error cancels the remaining tiles. Tiles
//     committed before it stay committed.
func (r *Runner) Run(ctx context.Context, g *core.WorldGraph, gen Generator, tiles []Tile) (Report, error) {
	if g == nil {
		return Report{}, ErrNilGraph
	}
	if gen == nil {
		return Report{}, ErrNilGenerator
	}

	var built, skipped atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	if r.opts.Workers > 0 {
		eg.SetLimit(r.opts.Workers)
	}

	name := gen.Name()
	for _, t := range tiles {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			ok, err := r.runTile(egCtx, g, gen, t)
			if err != nil {
				return fmt.Errorf("tiles: %s on %s: %w", name, t, err)
			}
			if ok {
				built.Add(1)
			} else {
				skipped.Add(1)
			}

			return nil
		})
	}

	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	rep := Report{Built: int(built.Load()), Skipped: int(skipped.Load())}
	r.opts.Logger.Debug("tiles run", "graph", g.ID(), "generator", name, "built", rep.Built, "skipped", rep.Skipped)

	return rep, err
}

func (r *Runner) runTile(ctx context.Context, g *core.WorldGraph, gen Generator, t Tile) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	name := gen.Name()
	marker := t.Marker(name)
	if g.Processed(marker) {
		r.metrics.Skipped.WithLabelValues(name).Inc()
		r.opts.Logger.Debug("tile skipped", "generator", name, "tile", t)
		return false, nil
	}

	start := time.Now()
	commit, err := gen.Plan(ctx, g, t)
	if err != nil {
		return false, err
	}
	ok, err := g.Build(marker, func(tx *core.Tx) error {
		if commit == nil {
			return nil
		}
		return commit(tx)
	})
	if err != nil {
		return false, err
	}
	if !ok {
		r.metrics.Skipped.WithLabelValues(name).Inc()
		return false, nil
	}
	r.metrics.Built.WithLabelValues(name).Inc()
	r.metrics.Duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	r.opts.Logger.Debug("tile built", "generator", name, "tile", t)

	return true, nil
}
