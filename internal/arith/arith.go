// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arith provides the integer helpers behind the quadruplet search:
// GCD folding, primitive-form reduction, and exact cube arithmetic.
//
// All search arithmetic is done in int64. Cubes of values up to
// MaxComponent fit below 2⁶³, so d³ − a³ − b³ and every comparison
// against c³ is exact as long as d ≤ MaxComponent.
package arith

import (
	"fmt"
	"math"

	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// MaxComponent is the largest value whose cube fits in an int64
// (2²¹ − 1; its cube is just under 2⁶³).
const MaxComponent int64 = 1<<21 - 1

// GCD returns the greatest common divisor of m and n. GCD(0, n) is |n|.
func GCD(m, n int64) int64 {
	if m < 0 {
		m = -m
	}
	if n < 0 {
		n = -n
	}
	for n != 0 {
		m, n = n, m%n
	}
	return m
}

// GCDMultiple folds GCD across values. It returns an error for an empty
// sequence, which has no defined GCD.
func GCDMultiple(values ...int64) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("gcd of an empty sequence is undefined")
	}
	g := values[0]
	for _, v := range values[1:] {
		g = GCD(g, v)
	}
	if g < 0 {
		g = -g
	}
	return g, nil
}

// QuadrupletGCD returns the GCD of the four components of q.
func QuadrupletGCD(q types.Quadruplet) int64 {
	return GCD(GCD(q.A, q.B), GCD(q.C, q.D))
}

// IsPrimitive reports whether the components of q share no common factor.
func IsPrimitive(q types.Quadruplet) bool {
	return QuadrupletGCD(q) == 1
}

// PrimitiveForm divides q by the GCD of its components. The factor is at
// least 1 for any quadruplet with a non-zero component.
func PrimitiveForm(q types.Quadruplet) types.PrimitiveForm {
	g := QuadrupletGCD(q)
	if g == 0 {
		return types.PrimitiveForm{Primitive: q, Factor: 1}
	}
	return types.PrimitiveForm{
		Primitive: types.Quadruplet{A: q.A / g, B: q.B / g, C: q.C / g, D: q.D / g},
		Factor:    g,
	}
}

// Cube returns n³. The result is exact for |n| ≤ MaxComponent.
func Cube(n int64) int64 {
	return n * n * n
}

// CubeRootCandidate estimates the integer cube root of v by rounding the
// floating-point root. The estimate is only a candidate; callers confirm
// it with ExactCubeRoot or by comparing Cube(c) against v.
func CubeRootCandidate(v int64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Round(math.Cbrt(float64(v))))
}

// ExactCubeRoot returns c with c³ == v when v is a perfect cube.
// v must be positive and no larger than Cube(MaxComponent).
func ExactCubeRoot(v int64) (int64, bool) {
	c := CubeRootCandidate(v)
	if c <= 0 || c > MaxComponent {
		return 0, false
	}
	if Cube(c) != v {
		return 0, false
	}
	return c, true
}

// FitsExact reports whether every component of q lies in [1, MaxComponent].
func FitsExact(q types.Quadruplet) bool {
	for _, v := range q.Values() {
		if v < 1 || v > MaxComponent {
			return false
		}
	}
	return true
}
