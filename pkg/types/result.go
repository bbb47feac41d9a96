// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PointResult holds the outcome of a search at a single (a, n) pair.
type PointResult struct {
	// A is the anchor value searched.
	A int64 `json:"a" yaml:"a"`

	// N is the gap; D = A + N.
	N int64 `json:"n" yaml:"n"`

	// D is the largest component shared by every quadruplet found.
	D int64 `json:"d" yaml:"d"`

	// Quadruplets lists the solutions in discovery order (descending b).
	// When families were requested, generated family members follow the
	// directly found solutions.
	Quadruplets []Quadruplet `json:"quadruplets" yaml:"quadruplets"`

	// IterationsUsed counts decrements of b, including the one that tripped
	// the cap when CapHit is true.
	IterationsUsed int `json:"iterations_used" yaml:"iterations_used"`

	// CapHit reports that the search stopped before b reached 1, so the
	// absence of further solutions is not proven.
	CapHit bool `json:"cap_hit" yaml:"cap_hit"`

	// Primitives lists the found quadruplets whose components have GCD 1.
	// Only populated by SearchWithFamilies.
	Primitives []Quadruplet `json:"primitives,omitempty" yaml:"primitives,omitempty"`

	// Families groups found and generated quadruplets by primitive form.
	// Only populated by SearchWithFamilies.
	Families []Family `json:"families,omitempty" yaml:"families,omitempty"`
}

// RangeResult holds the outcome of a search across an (a, n) grid.
type RangeResult struct {
	// Quadruplets lists every solution in grid order: a ascending, then n
	// ascending, then b descending; generated family members follow.
	Quadruplets []Quadruplet `json:"quadruplets" yaml:"quadruplets"`

	// Primitives lists the primitive solutions found in grid order.
	Primitives []Quadruplet `json:"primitives" yaml:"primitives"`

	// Combinations is the number of (a, n) pairs searched.
	Combinations int `json:"combinations" yaml:"combinations"`

	// CombinationsWithSolutions counts pairs that produced at least one
	// solution directly.
	CombinationsWithSolutions int `json:"combinations_with_solutions" yaml:"combinations_with_solutions"`

	// CappedCombinations counts pairs whose search hit the iteration cap.
	CappedCombinations int `json:"capped_combinations" yaml:"capped_combinations"`

	// Generated counts quadruplets added by family scaling.
	Generated int `json:"generated" yaml:"generated"`
}

// Truncated reports whether any combination stopped at the iteration cap.
func (r RangeResult) Truncated() bool {
	return r.CappedCombinations > 0
}
