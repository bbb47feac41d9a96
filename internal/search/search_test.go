package search

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/internal/verify"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// bruteForce enumerates every (b, c) pair with a > b > c > 0 directly,
// in the same descending-b order as Search.
func bruteForce(a, n int64) []types.Quadruplet {
	d := a + n
	target := d*d*d - a*a*a
	out := []types.Quadruplet{}
	for b := a - 1; b >= 1; b-- {
		for c := b - 1; c >= 1; c-- {
			if b*b*b+c*c*c == target {
				out = append(out, types.Quadruplet{A: a, B: b, C: c, D: d})
			}
		}
	}
	return out
}

// --- Single-point search ---

func TestSearchKnownSolutions(t *testing.T) {
	tests := []struct {
		a, n           int64
		want           []types.Quadruplet
		wantIterations int
	}{
		{5, 1, []types.Quadruplet{{A: 5, B: 4, C: 3, D: 6}}, 4},
		{8, 1, []types.Quadruplet{{A: 8, B: 6, C: 1, D: 9}}, 7},
		{10, 2, []types.Quadruplet{{A: 10, B: 8, C: 6, D: 12}}, 9},
		{18, 1, []types.Quadruplet{{A: 18, B: 10, C: 3, D: 19}}, 17},
		{17, 3, []types.Quadruplet{{A: 17, B: 14, C: 7, D: 20}}, 16},
		{40, 1, []types.Quadruplet{{A: 40, B: 17, C: 2, D: 41}}, 39},
	}
	for _, tt := range tests {
		res, err := Search(tt.a, tt.n, 20000)
		if err != nil {
			t.Fatalf("Search(%d, %d): %v", tt.a, tt.n, err)
		}
		if diff := cmp.Diff(tt.want, res.Quadruplets); diff != "" {
			t.Errorf("Search(%d, %d) mismatch (-want +got):\n%s", tt.a, tt.n, diff)
		}
		if res.IterationsUsed != tt.wantIterations {
			t.Errorf("Search(%d, %d) IterationsUsed = %d, want %d", tt.a, tt.n, res.IterationsUsed, tt.wantIterations)
		}
		if res.CapHit {
			t.Errorf("Search(%d, %d) CapHit = true, want false", tt.a, tt.n)
		}
		if res.D != tt.a+tt.n {
			t.Errorf("Search(%d, %d) D = %d", tt.a, tt.n, res.D)
		}
	}
}

func TestSearchDefaultUIExample(t *testing.T) {
	// a=6, n=3 gives d³ − a³ = 513 = 1³ + 8³, but 8 > a, so nothing
	// satisfies d > a > b > c.
	res, err := Search(6, 3, 20000)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Quadruplets) != 0 {
		t.Errorf("got %v, want no quadruplets", res.Quadruplets)
	}
	if res.CapHit {
		t.Error("search of a=6 must finish within 20000 iterations")
	}
	if res.IterationsUsed != 5 {
		t.Errorf("IterationsUsed = %d, want 5", res.IterationsUsed)
	}

	v := verify.Values(6, 1, 8, 9)
	if !v.EquationSatisfied || v.Ordering.All() {
		t.Errorf("(6, 1, 8, 9) should satisfy the equation but not the ordering: %+v", v)
	}
}

func TestSearchMatchesBruteForce(t *testing.T) {
	for a := int64(1); a <= 60; a++ {
		for n := int64(1); n <= 12; n++ {
			res, err := Search(a, n, 1000)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(bruteForce(a, n), res.Quadruplets); diff != "" {
				t.Fatalf("Search(%d, %d) mismatch (-want +got):\n%s", a, n, diff)
			}
		}
	}
}

func TestSearchResultsSatisfyEquation(t *testing.T) {
	for a := int64(2); a <= 120; a++ {
		for n := int64(1); n <= 30; n++ {
			res, err := Search(a, n, 10000)
			if err != nil {
				t.Fatal(err)
			}
			for _, q := range res.Quadruplets {
				v := verify.Quadruplet(q)
				if !v.Valid() {
					t.Errorf("Search(%d, %d) returned invalid %v: %+v", a, n, q, v)
				}
				if q.A == q.B || q.B == q.C || q.C == q.D || q.A == q.C || q.A == q.D || q.B == q.D {
					t.Errorf("Search(%d, %d) returned non-distinct %v", a, n, q)
				}
			}
		}
	}
}

func TestSearchIterationCap(t *testing.T) {
	tests := []struct {
		name           string
		maxIterations  int
		want           []types.Quadruplet
		wantIterations int
		wantCapHit     bool
	}{
		{"stops before any solution", 1, []types.Quadruplet{}, 2, true},
		{"keeps solutions found before the cap", 2, []types.Quadruplet{{A: 10, B: 8, C: 6, D: 12}}, 3, true},
		{"budget equal to a-1 completes", 9, []types.Quadruplet{{A: 10, B: 8, C: 6, D: 12}}, 9, false},
		{"budget above a-1 completes", 100, []types.Quadruplet{{A: 10, B: 8, C: 6, D: 12}}, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(10, 2, tt.maxIterations)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, res.Quadruplets); diff != "" {
				t.Errorf("quadruplets mismatch (-want +got):\n%s", diff)
			}
			if res.IterationsUsed != tt.wantIterations {
				t.Errorf("IterationsUsed = %d, want %d", res.IterationsUsed, tt.wantIterations)
			}
			if res.CapHit != tt.wantCapHit {
				t.Errorf("CapHit = %v, want %v", res.CapHit, tt.wantCapHit)
			}
		})
	}
}

func TestSearchCapHitCountsOnePastBudget(t *testing.T) {
	for _, max := range []int{1, 5, 17, 98} {
		res, err := Search(100, 7, max)
		if err != nil {
			t.Fatal(err)
		}
		if !res.CapHit {
			t.Errorf("max=%d: CapHit = false, want true", max)
		}
		if res.IterationsUsed != max+1 {
			t.Errorf("max=%d: IterationsUsed = %d, want %d", max, res.IterationsUsed, max+1)
		}
	}
}

func TestSearchSmallestAnchor(t *testing.T) {
	res, err := Search(1, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.IterationsUsed != 0 || res.CapHit || len(res.Quadruplets) != 0 {
		t.Errorf("Search(1, 5) = %+v, want an empty complete result", res)
	}
}

func TestSearchIdempotent(t *testing.T) {
	first, err := Search(250, 9, 5000)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Search(250, 9, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated search differs (-first +second):\n%s", diff)
	}
}

func TestSearchInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		a, n int64
		max  int
	}{
		{"zero a", 0, 1, 10},
		{"negative a", -3, 1, 10},
		{"zero n", 5, 0, 10},
		{"negative n", 5, -1, 10},
		{"zero iterations", 5, 1, 0},
		{"negative iterations", 5, 1, -4},
		{"d past exact bound", arith.MaxComponent, 1, 10},
		{"a past exact bound", arith.MaxComponent + 1, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(tt.a, tt.n, tt.max)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSearchNearExactBound(t *testing.T) {
	a := arith.MaxComponent - 1
	res, err := Search(a, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CapHit {
		t.Error("expected the cap to stop a search this large")
	}
	for _, q := range res.Quadruplets {
		if !verify.Quadruplet(q).Valid() {
			t.Errorf("invalid quadruplet near bound: %v", q)
		}
	}
}

// --- Search with families ---

func TestSearchWithFamiliesFromPrimitive(t *testing.T) {
	res, err := SearchWithFamilies(5, 1, 100, 3)
	if err != nil {
		t.Fatal(err)
	}

	wantQuads := []types.Quadruplet{
		{A: 5, B: 4, C: 3, D: 6},
		{A: 10, B: 8, C: 6, D: 12},
		{A: 15, B: 12, C: 9, D: 18},
	}
	if diff := cmp.Diff(wantQuads, res.Quadruplets); diff != "" {
		t.Errorf("quadruplets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.Quadruplet{{A: 5, B: 4, C: 3, D: 6}}, res.Primitives); diff != "" {
		t.Errorf("primitives mismatch (-want +got):\n%s", diff)
	}

	wantFamilies := []types.Family{{
		Primitive: types.Quadruplet{A: 5, B: 4, C: 3, D: 6},
		Members: []types.FamilyMember{
			{Quadruplet: types.Quadruplet{A: 5, B: 4, C: 3, D: 6}, Factor: 1},
			{Quadruplet: types.Quadruplet{A: 10, B: 8, C: 6, D: 12}, Factor: 2},
			{Quadruplet: types.Quadruplet{A: 15, B: 12, C: 9, D: 18}, Factor: 3},
		},
	}}
	if diff := cmp.Diff(wantFamilies, res.Families); diff != "" {
		t.Errorf("families mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchWithFamiliesFromScaled(t *testing.T) {
	res, err := SearchWithFamilies(10, 2, 100, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Primitives) != 0 {
		t.Errorf("Primitives = %v, want none", res.Primitives)
	}
	wantFamilies := []types.Family{{
		Primitive: types.Quadruplet{A: 5, B: 4, C: 3, D: 6},
		Members: []types.FamilyMember{
			{Quadruplet: types.Quadruplet{A: 10, B: 8, C: 6, D: 12}, Factor: 2},
		},
	}}
	if diff := cmp.Diff(wantFamilies, res.Families); diff != "" {
		t.Errorf("families mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchWithFamiliesInvalidFactor(t *testing.T) {
	_, err := SearchWithFamilies(5, 1, 100, 0)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}
