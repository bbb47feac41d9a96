// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks literal quadruplets against a³ + b³ + c³ = d³ and
// the ordering d > a > b > c > 0. Arithmetic uses math/big so the check is
// exact for every int64 input, including values far past the search bound.
package verify

import (
	"math/big"

	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// Quadruplet computes the cubes of q, compares d³ − a³ with b³ + c³, and
// evaluates each ordering constraint independently. It has no side effects
// and needs no prior search state.
func Quadruplet(q types.Quadruplet) types.Verification {
	a3 := cube(q.A)
	b3 := cube(q.B)
	c3 := cube(q.C)
	d3 := cube(q.D)

	left := new(big.Int).Sub(d3, a3)
	right := new(big.Int).Add(b3, c3)
	diff := new(big.Int).Sub(left, right)
	diff.Abs(diff)

	return types.Verification{
		Quadruplet:        q,
		CubeA:             a3.String(),
		CubeB:             b3.String(),
		CubeC:             c3.String(),
		CubeD:             d3.String(),
		LeftSide:          left.String(),
		RightSide:         right.String(),
		Difference:        diff.String(),
		EquationSatisfied: diff.Sign() == 0,
		Ordering: types.OrderingChecks{
			DGreaterA: q.D > q.A,
			AGreaterB: q.A > q.B,
			BGreaterC: q.B > q.C,
			CPositive: q.C > 0,
		},
	}
}

// Values is Quadruplet for four loose integers.
func Values(a, b, c, d int64) types.Verification {
	return Quadruplet(types.Quadruplet{A: a, B: b, C: c, D: d})
}

func cube(n int64) *big.Int {
	v := big.NewInt(n)
	return v.Mul(v, new(big.Int).Mul(v, v))
}
