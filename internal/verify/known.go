// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import "github.com/pdiddy/cube-quadruplets/pkg/types"

// KnownCase is a literal quadruplet with a note on where it comes from.
type KnownCase struct {
	Quadruplet types.Quadruplet
	Note       string
}

// KnownCases lists reference quadruplets. Several are deliberately not
// valid in (a, b, c, d) order; their reports show which check fails.
var KnownCases = []KnownCase{
	{types.Quadruplet{A: 3, B: 4, C: 5, D: 6}, "3³+4³+5³=6³ written ascending; fails a>b and b>c"},
	{types.Quadruplet{A: 5, B: 4, C: 3, D: 6}, "smallest solution in search order"},
	{types.Quadruplet{A: 8, B: 6, C: 1, D: 9}, "1³+6³+8³=9³"},
	{types.Quadruplet{A: 10, B: 8, C: 6, D: 12}, "2 × (5, 4, 3, 6)"},
	{types.Quadruplet{A: 18, B: 10, C: 3, D: 19}, "3³+10³+18³=19³"},
	{types.Quadruplet{A: 17, B: 14, C: 7, D: 20}, "7³+14³+17³=20³"},
	{types.Quadruplet{A: 27, B: 15, C: 11, D: 29}, "11³+15³+27³=29³"},
	{types.Quadruplet{A: 40, B: 17, C: 2, D: 41}, "2³+17³+40³=41³"},
	{types.Quadruplet{A: 1, B: 12, C: 1, D: 12}, "not a solution; repeated components"},
	{types.Quadruplet{A: 87, B: 117, C: 44, D: 138}, "not a solution"},
}

// KnownReport pairs a known case with its verification.
type KnownReport struct {
	Case   KnownCase
	Report types.Verification
}

// Known verifies every entry of KnownCases in order.
func Known() []KnownReport {
	out := make([]KnownReport, len(KnownCases))
	for i, kc := range KnownCases {
		out[i] = KnownReport{Case: kc, Report: Quadruplet(kc.Quadruplet)}
	}
	return out
}
