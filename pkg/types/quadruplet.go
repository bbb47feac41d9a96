// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for cube quadruplet search.
// A quadruplet (a, b, c, d) satisfies a³ + b³ + c³ = d³ with d > a > b > c > 0.
// Search results, families, and verification reports are plain values:
// nothing here is mutated after a search returns it.
package types

import "fmt"

// Quadruplet is an ordered 4-tuple of positive integers (a, b, c, d).
// Values produced by the search always satisfy a³+b³+c³ = d³ and
// d > a > b > c > 0; values built by callers carry no such guarantee
// until checked with verify.Quadruplet.
type Quadruplet struct {
	A int64 `json:"a" yaml:"a"`
	B int64 `json:"b" yaml:"b"`
	C int64 `json:"c" yaml:"c"`
	D int64 `json:"d" yaml:"d"`
}

// N returns the gap d − a.
func (q Quadruplet) N() int64 {
	return q.D - q.A
}

// Scale multiplies every component by f.
func (q Quadruplet) Scale(f int64) Quadruplet {
	return Quadruplet{A: q.A * f, B: q.B * f, C: q.C * f, D: q.D * f}
}

// Values returns the components in (a, b, c, d) order.
func (q Quadruplet) Values() [4]int64 {
	return [4]int64{q.A, q.B, q.C, q.D}
}

// Less orders quadruplets lexicographically by (a, b, c, d).
func (q Quadruplet) Less(o Quadruplet) bool {
	if q.A != o.A {
		return q.A < o.A
	}
	if q.B != o.B {
		return q.B < o.B
	}
	if q.C != o.C {
		return q.C < o.C
	}
	return q.D < o.D
}

func (q Quadruplet) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", q.A, q.B, q.C, q.D)
}

// PrimitiveForm is a quadruplet divided by the GCD of its components,
// together with that GCD. Primitive.Scale(Factor) reproduces the original.
type PrimitiveForm struct {
	Primitive Quadruplet `json:"primitive" yaml:"primitive"`
	Factor    int64      `json:"factor" yaml:"factor"`
}

// IsPrimitive reports whether the original quadruplet was already primitive.
func (p PrimitiveForm) IsPrimitive() bool {
	return p.Factor == 1
}

// FamilyMember is a quadruplet together with the factor that scales its
// family's primitive into it.
type FamilyMember struct {
	Quadruplet Quadruplet `json:"quadruplet" yaml:"quadruplet"`
	Factor     int64      `json:"factor" yaml:"factor"`
}

// Family groups the known members derived from one primitive quadruplet.
// Members are listed in the order they were discovered or generated.
type Family struct {
	Primitive Quadruplet     `json:"primitive" yaml:"primitive"`
	Members   []FamilyMember `json:"members" yaml:"members"`
}
