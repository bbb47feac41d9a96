// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OrderingChecks records each ordering constraint independently.
type OrderingChecks struct {
	DGreaterA bool `json:"d_greater_a" yaml:"d_greater_a"`
	AGreaterB bool `json:"a_greater_b" yaml:"a_greater_b"`
	BGreaterC bool `json:"b_greater_c" yaml:"b_greater_c"`
	CPositive bool `json:"c_positive" yaml:"c_positive"`
}

// All reports whether every ordering constraint holds.
func (o OrderingChecks) All() bool {
	return o.DGreaterA && o.AGreaterB && o.BGreaterC && o.CPositive
}

// Verification is the report produced for a literal quadruplet. Cube and
// side values are decimal strings so they stay exact for any int64 input.
type Verification struct {
	Quadruplet Quadruplet `json:"quadruplet" yaml:"quadruplet"`

	CubeA string `json:"a3" yaml:"a3"`
	CubeB string `json:"b3" yaml:"b3"`
	CubeC string `json:"c3" yaml:"c3"`
	CubeD string `json:"d3" yaml:"d3"`

	// LeftSide is d³ − a³.
	LeftSide string `json:"d3_minus_a3" yaml:"d3_minus_a3"`

	// RightSide is b³ + c³.
	RightSide string `json:"b3_plus_c3" yaml:"b3_plus_c3"`

	// Difference is |LeftSide − RightSide|; "0" when the equation holds.
	Difference string `json:"difference" yaml:"difference"`

	EquationSatisfied bool           `json:"equation_satisfied" yaml:"equation_satisfied"`
	Ordering          OrderingChecks `json:"ordering" yaml:"ordering"`
}

// Valid reports whether the equation and all ordering constraints hold.
func (v Verification) Valid() bool {
	return v.EquationSatisfied && v.Ordering.All()
}
