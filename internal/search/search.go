// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search enumerates cube quadruplets (a, b, c, d) with
// a³ + b³ + c³ = d³ and d > a > b > c > 0.
//
// A single search fixes a and the gap n = d − a and walks b downward from
// a − 1. For each b it estimates c from the floating-point cube root of
// d³ − a³ − b³ and keeps it only when c³ reproduces that value exactly in
// integer arithmetic. Families scale primitive solutions by integer factors,
// and range searches repeat the single search across an (a, n) grid.
package search

import (
	"errors"
	"fmt"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// ErrInvalidParameter marks a non-positive or out-of-bound search input.
// Truncation by the iteration cap is never reported through an error.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func validatePoint(a, n int64, maxIterations int) error {
	if a <= 0 {
		return invalid("a must be a positive integer, got %d", a)
	}
	if n <= 0 {
		return invalid("n must be a positive integer, got %d", n)
	}
	if maxIterations <= 0 {
		return invalid("max iterations must be a positive integer, got %d", maxIterations)
	}
	if a > arith.MaxComponent || n > arith.MaxComponent-a {
		return invalid("d = a + n = %d+%d exceeds %d, the largest value with an exact int64 cube", a, n, arith.MaxComponent)
	}
	return nil
}

// Search finds every (b, c) with a³ + b³ + c³ = (a+n)³ and a > b > c > 0,
// trying b from a − 1 down to 1. Each b consumes one unit of the iteration
// budget; when the count exceeds maxIterations the search stops with
// CapHit set and IterationsUsed equal to maxIterations + 1.
//
// The output is deterministic: solutions appear in descending b, and each
// b yields at most one c, so no quadruplet repeats.
func Search(a, n int64, maxIterations int) (types.PointResult, error) {
	if err := validatePoint(a, n, maxIterations); err != nil {
		return types.PointResult{}, err
	}

	d := a + n
	target := arith.Cube(d) - arith.Cube(a)
	res := types.PointResult{
		A:           a,
		N:           n,
		D:           d,
		Quadruplets: []types.Quadruplet{},
	}

	iterations := 0
	for b := a - 1; b >= 1; b-- {
		iterations++
		if iterations > maxIterations {
			res.CapHit = true
			break
		}

		if b >= a || b >= d {
			continue
		}
		needed := target - arith.Cube(b)
		if needed <= 0 {
			continue
		}

		c, ok := arith.ExactCubeRoot(needed)
		if !ok {
			continue
		}
		q := types.Quadruplet{A: a, B: b, C: c, D: d}
		if !accept(q) {
			continue
		}
		res.Quadruplets = append(res.Quadruplets, q)
	}
	res.IterationsUsed = iterations

	return res, nil
}

// accept applies the ordering constraint and the exact reconstruction
// a³ + b³ + c³ == d³. Components are bounded by MaxComponent, so the sum
// cannot overflow once c³ has matched d³ − a³ − b³.
func accept(q types.Quadruplet) bool {
	if !(0 < q.C && q.C < q.B && q.B < q.A && q.A < q.D) {
		return false
	}
	return arith.Cube(q.A)+arith.Cube(q.B)+arith.Cube(q.C) == arith.Cube(q.D)
}

// SearchWithFamilies runs Search and then analyses common factors: every
// solution is grouped under its primitive form, and every primitive found
// is scaled by 2..maxFactor. Scaled members are appended to Quadruplets
// after the directly found solutions, skipping any already present.
// Scaled members are kept as long as their components have exact cubes;
// they are not limited to the (a, n) that was searched.
func SearchWithFamilies(a, n int64, maxIterations int, maxFactor int64) (types.PointResult, error) {
	if maxFactor <= 0 {
		return types.PointResult{}, invalid("max factor must be a positive integer, got %d", maxFactor)
	}
	res, err := Search(a, n, maxIterations)
	if err != nil {
		return types.PointResult{}, err
	}

	res.Primitives = []types.Quadruplet{}
	for _, q := range res.Quadruplets {
		if arith.IsPrimitive(q) {
			res.Primitives = append(res.Primitives, q)
		}
	}

	families := groupByPrimitive(res.Quadruplets)

	generated, err := GenerateFamilies(res.Primitives, maxFactor, nil, res.Quadruplets)
	if err != nil {
		return types.PointResult{}, err
	}
	for _, fam := range generated {
		for _, m := range fam.Members {
			res.Quadruplets = append(res.Quadruplets, m.Quadruplet)
			families.add(m.Quadruplet, m.Factor, fam.Primitive)
		}
	}

	res.Families = families.list()
	return res, nil
}
