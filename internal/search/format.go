// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// FormatTable writes quadruplets as a human-readable table to w, one row per
// quadruplet with its gap, common factor, and primitive form.
func FormatTable(qs []types.Quadruplet, w io.Writer) {
	if len(qs) == 0 {
		fmt.Fprintln(w, "No quadruplets found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %8s  %8s  %8s  %8s  %8s  %6s  %-9s  %s\n",
		"No.", "a", "b", "c", "d", "n", "Factor", "Type", "Primitive Form")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, q := range qs {
		pf := arith.PrimitiveForm(q)
		kind := "Primitive"
		if !pf.IsPrimitive() {
			kind = "Scaled"
		}
		fmt.Fprintf(w, "%-4d  %8d  %8d  %8d  %8d  %8d  %6d  %-9s  %s\n",
			i+1, q.A, q.B, q.C, q.D, q.N(), pf.Factor, kind, pf.Primitive)
	}
}

// FormatPoint writes a single-search summary followed by its table.
func FormatPoint(res types.PointResult, w io.Writer) {
	fmt.Fprintf(w, "a = %d, n = %d, d = %d\n", res.A, res.N, res.D)
	fmt.Fprintf(w, "iterations: %d", res.IterationsUsed)
	if res.CapHit {
		fmt.Fprint(w, " (stopped at the iteration cap; raise --max-iterations to continue)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	FormatTable(res.Quadruplets, w)

	if len(res.Families) > 0 {
		fmt.Fprintf(w, "\n%d primitive(s), %d family(ies)\n", len(res.Primitives), len(res.Families))
		for i, fam := range res.Families {
			fmt.Fprintf(w, "%d. primitive %s\n", i+1, fam.Primitive)
			for _, m := range fam.Members {
				fmt.Fprintf(w, "   factor %d: %s\n", m.Factor, m.Quadruplet)
			}
		}
	}
}

// FormatRange writes range statistics followed by the full table.
func FormatRange(res types.RangeResult, w io.Writer) {
	fmt.Fprintf(w, "combinations tested:        %d\n", res.Combinations)
	fmt.Fprintf(w, "combinations with solutions: %d\n", res.CombinationsWithSolutions)
	if res.Truncated() {
		fmt.Fprintf(w, "combinations at the cap:    %d (results may be incomplete)\n", res.CappedCombinations)
	}
	fmt.Fprintf(w, "primitive solutions:        %d\n", len(res.Primitives))
	fmt.Fprintf(w, "generated by scaling:       %d\n", res.Generated)
	fmt.Fprintln(w)

	FormatTable(res.Quadruplets, w)

	fmt.Fprintf(w, "\n%d quadruplets\n", len(res.Quadruplets))
}

// FormatVerification writes a verification report to w.
func FormatVerification(v types.Verification, w io.Writer) {
	q := v.Quadruplet
	fmt.Fprintf(w, "quadruplet %s\n", q)
	fmt.Fprintf(w, "  a³ = %s\n  b³ = %s\n  c³ = %s\n  d³ = %s\n", v.CubeA, v.CubeB, v.CubeC, v.CubeD)
	fmt.Fprintf(w, "  d³ - a³ = %s\n  b³ + c³ = %s\n", v.LeftSide, v.RightSide)
	if v.EquationSatisfied {
		fmt.Fprintln(w, "  equation: satisfied")
	} else {
		fmt.Fprintf(w, "  equation: NOT satisfied (difference %s)\n", v.Difference)
	}
	checks := []struct {
		desc string
		ok   bool
	}{
		{fmt.Sprintf("d > a (%d > %d)", q.D, q.A), v.Ordering.DGreaterA},
		{fmt.Sprintf("a > b (%d > %d)", q.A, q.B), v.Ordering.AGreaterB},
		{fmt.Sprintf("b > c (%d > %d)", q.B, q.C), v.Ordering.BGreaterC},
		{fmt.Sprintf("c > 0 (%d > 0)", q.C), v.Ordering.CPositive},
	}
	for _, c := range checks {
		mark := "ok"
		if !c.ok {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "  %-24s %s\n", c.desc, mark)
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
