// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

const (
	defaultProgressEvery = 10

	// sweepBatch is the number of combinations searched per worker between
	// ordered merges in a parallel sweep.
	sweepBatch = 64

	// workersPerProc caps concurrent combinations at this multiple of
	// GOMAXPROCS.
	workersPerProc = 4
)

// Grid is an inclusive (a, n) search window.
type Grid struct {
	AStart int64 `json:"a_start" yaml:"a_start"`
	AEnd   int64 `json:"a_end" yaml:"a_end"`
	NStart int64 `json:"n_start" yaml:"n_start"`
	NEnd   int64 `json:"n_end" yaml:"n_end"`
}

// Normalize swaps reversed bounds so that start ≤ end on both axes.
func (g Grid) Normalize() Grid {
	if g.AStart > g.AEnd {
		g.AStart, g.AEnd = g.AEnd, g.AStart
	}
	if g.NStart > g.NEnd {
		g.NStart, g.NEnd = g.NEnd, g.NStart
	}
	return g
}

// Validate rejects non-positive bounds and windows whose largest d has no
// exact int64 cube. Reversed bounds are not an error.
func (g Grid) Validate() error {
	for _, v := range []struct {
		name string
		val  int64
	}{
		{"a start", g.AStart}, {"a end", g.AEnd},
		{"n start", g.NStart}, {"n end", g.NEnd},
	} {
		if v.val <= 0 {
			return invalid("%s must be a positive integer, got %d", v.name, v.val)
		}
	}
	n := g.Normalize()
	if n.AEnd > arith.MaxComponent || n.NEnd > arith.MaxComponent-n.AEnd {
		return invalid("largest d = %d+%d exceeds %d", n.AEnd, n.NEnd, arith.MaxComponent)
	}
	return nil
}

// Contains reports whether q's a and n = d − a fall inside the window.
func (g Grid) Contains(q types.Quadruplet) bool {
	n := q.N()
	return g.AStart <= q.A && q.A <= g.AEnd && g.NStart <= n && n <= g.NEnd
}

// Combinations returns the number of (a, n) pairs in a normalized grid.
func (g Grid) Combinations() int {
	return int((g.AEnd - g.AStart + 1) * (g.NEnd - g.NStart + 1))
}

// at maps a row-major index to its (a, n) pair.
func (g Grid) at(i int) (int64, int64) {
	width := int(g.NEnd - g.NStart + 1)
	return g.AStart + int64(i/width), g.NStart + int64(i%width)
}

// SearchRange runs Search for every (a, n) in the grid, a ascending in the
// outer loop and n ascending in the inner loop.
//
// With cfg.FocusOnPrimitives, only primitive solutions are collected in the
// first phase; the second phase scales them by 2..cfg.MaxFactor and keeps
// the members whose a and n stay inside the grid. Without it, every raw
// solution is kept, including non-primitive ones, and the same family
// generation then adds in-window multiples that were not found directly.
//
// Scaled members whose a or n fall outside the grid are left out in both
// modes, even when the primitive itself was found inside it.
//
// cfg.Workers > 1 searches combinations concurrently, up to a small
// multiple of GOMAXPROCS and never more than the grid size; results are
// merged in grid order, so the output is identical to a sequential run. The sweep
// stops with ctx.Err() when ctx is cancelled or cfg.Timeout elapses.
func SearchRange(ctx context.Context, grid Grid, cfg types.RangeConfig, logger *zap.Logger) (types.RangeResult, error) {
	if err := grid.Validate(); err != nil {
		return types.RangeResult{}, err
	}
	if cfg.MaxIterationsPerCombo <= 0 {
		return types.RangeResult{}, invalid("max iterations per combination must be a positive integer, got %d", cfg.MaxIterationsPerCombo)
	}
	if cfg.MaxFactor <= 0 {
		return types.RangeResult{}, invalid("max factor must be a positive integer, got %d", cfg.MaxFactor)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	grid = grid.Normalize()
	total := grid.Combinations()
	progressEvery := cfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}

	logger.Info("range search started",
		zap.Int64("a_start", grid.AStart), zap.Int64("a_end", grid.AEnd),
		zap.Int64("n_start", grid.NStart), zap.Int64("n_end", grid.NEnd),
		zap.Int("combinations", total),
		zap.Bool("focus_on_primitives", cfg.FocusOnPrimitives),
		zap.Int("max_factor", cfg.MaxFactor),
		zap.Int("workers", cfg.Workers))

	res := types.RangeResult{
		Quadruplets:  []types.Quadruplet{},
		Primitives:   []types.Quadruplet{},
		Combinations: total,
	}
	seen := make(map[types.Quadruplet]bool)

	visit := func(i int, pr types.PointResult) {
		tested := i + 1
		if pr.CapHit {
			res.CappedCombinations++
		}
		if len(pr.Quadruplets) > 0 {
			res.CombinationsWithSolutions++
			logger.Debug("solutions found",
				zap.Int64("a", pr.A), zap.Int64("n", pr.N), zap.Int("count", len(pr.Quadruplets)))
		}
		for _, q := range pr.Quadruplets {
			primitive := arith.IsPrimitive(q)
			if cfg.FocusOnPrimitives && !primitive {
				continue
			}
			if seen[q] {
				continue
			}
			seen[q] = true
			res.Quadruplets = append(res.Quadruplets, q)
			if primitive {
				res.Primitives = append(res.Primitives, q)
			}
		}
		if tested%progressEvery == 0 {
			logger.Info("range search progress",
				zap.Int("tested", tested), zap.Int("total", total),
				zap.Float64("percent", float64(tested)*100/float64(total)),
				zap.Int64("a", pr.A), zap.Int64("n", pr.N))
		}
	}

	if err := sweepGrid(ctx, grid, cfg.MaxIterationsPerCombo, cfg.Workers, visit); err != nil {
		logger.Warn("range search aborted", zap.Error(err))
		return types.RangeResult{}, fmt.Errorf("range search over %d combinations: %w", total, err)
	}

	families, err := GenerateFamilies(res.Primitives, int64(cfg.MaxFactor), grid.Contains, res.Quadruplets)
	if err != nil {
		return types.RangeResult{}, err
	}
	for _, fam := range families {
		for _, m := range fam.Members {
			res.Quadruplets = append(res.Quadruplets, m.Quadruplet)
			res.Generated++
		}
	}

	logger.Info("range search finished",
		zap.Int("quadruplets", len(res.Quadruplets)),
		zap.Int("primitives", len(res.Primitives)),
		zap.Int("generated", res.Generated),
		zap.Int("with_solutions", res.CombinationsWithSolutions),
		zap.Int("capped", res.CappedCombinations))

	return res, nil
}

// sweepGrid calls Search for every grid index and hands each result to
// visit in index order. visit always runs on the calling goroutine.
func sweepGrid(ctx context.Context, grid Grid, maxIterations, workers int, visit func(int, types.PointResult)) error {
	total := grid.Combinations()
	workers = min(workers, total, runtime.GOMAXPROCS(0)*workersPerProc)

	if workers <= 1 {
		for i := 0; i < total; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, n := grid.at(i)
			pr, err := Search(a, n, maxIterations)
			if err != nil {
				return err
			}
			visit(i, pr)
		}
		return nil
	}

	size := min(sweepBatch*workers, total)
	results := make([]types.PointResult, size)
	for start := 0; start < total; start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, total)

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for i := start; i < end; i++ {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				a, n := grid.at(i)
				pr, err := Search(a, n, maxIterations)
				if err != nil {
					return err
				}
				results[i-start] = pr
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		for i := start; i < end; i++ {
			visit(i, results[i-start])
		}
	}
	return nil
}
