// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// Bounds decides whether a scaled quadruplet belongs in a result set.
// A nil Bounds accepts everything whose components have exact cubes.
type Bounds func(types.Quadruplet) bool

// GenerateFamilies scales each primitive p by every f in [2, maxFactor]
// and keeps f·p when within(f·p) holds and f·p is not already in existing
// or generated earlier in the same call. One Family is returned per
// primitive, in input order, holding only the newly generated members.
//
// Scaling preserves a³ + b³ + c³ = d³ because the equation is homogeneous,
// so members are not re-verified. Factors whose product would leave the
// exact int64 range stop the scan for that primitive.
func GenerateFamilies(primitives []types.Quadruplet, maxFactor int64, within Bounds, existing []types.Quadruplet) ([]types.Family, error) {
	if maxFactor <= 0 {
		return nil, invalid("max factor must be a positive integer, got %d", maxFactor)
	}

	seen := make(map[types.Quadruplet]bool, len(existing))
	for _, q := range existing {
		seen[q] = true
	}

	families := make([]types.Family, 0, len(primitives))
	for _, p := range primitives {
		fam := types.Family{Primitive: p, Members: []types.FamilyMember{}}
		largest := p.D
		for _, v := range p.Values() {
			if v > largest {
				largest = v
			}
		}

		for f := int64(2); f <= maxFactor; f++ {
			if largest <= 0 || f > arith.MaxComponent/largest {
				break
			}
			scaled := p.Scale(f)
			if within != nil && !within(scaled) {
				continue
			}
			if seen[scaled] {
				continue
			}
			seen[scaled] = true
			fam.Members = append(fam.Members, types.FamilyMember{Quadruplet: scaled, Factor: f})
		}
		families = append(families, fam)
	}
	return families, nil
}

// familySet groups quadruplets by primitive form, keeping first-seen order
// for both primitives and members.
type familySet struct {
	index map[types.Quadruplet]int
	fams  []types.Family
}

func groupByPrimitive(qs []types.Quadruplet) *familySet {
	fs := &familySet{index: make(map[types.Quadruplet]int)}
	for _, q := range qs {
		pf := arith.PrimitiveForm(q)
		fs.add(q, pf.Factor, pf.Primitive)
	}
	return fs
}

func (fs *familySet) add(q types.Quadruplet, factor int64, primitive types.Quadruplet) {
	i, ok := fs.index[primitive]
	if !ok {
		i = len(fs.fams)
		fs.index[primitive] = i
		fs.fams = append(fs.fams, types.Family{Primitive: primitive})
	}
	fs.fams[i].Members = append(fs.fams[i].Members, types.FamilyMember{Quadruplet: q, Factor: factor})
}

func (fs *familySet) list() []types.Family {
	if len(fs.fams) == 0 {
		return []types.Family{}
	}
	return fs.fams
}
