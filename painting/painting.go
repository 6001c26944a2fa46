// Package painting implements the seam-painting lookup: two disjoint
// triangle sets (enforcers, blockers) gathered from painted model volumes,
// each backed by its own spatial tree, answering radius-bounded
// enforced/blocked queries. Grounded on SeamPainting.{hpp,cpp}.
package painting

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/spatial"
)

// Painting answers is_enforced/is_blocked queries against the painted
// facet sets of an object's model volumes.
type Painting struct {
	enforcers *spatial.Tree
	blockers  *spatial.Tree
}

// Build constructs a Painting from already-transformed (object-space)
// enforcer and blocker triangle sets, one list per painted volume, merged
// here exactly as SeamPainting.cpp's constructor merges per-volume facet
// sets before building the two trees.
func Build(enforcerTriangles, blockerTriangles [][]spatial.Triangle) *Painting {
	return &Painting{
		enforcers: spatial.Build(flatten(enforcerTriangles)),
		blockers:  spatial.Build(flatten(blockerTriangles)),
	}
}

func flatten(groups [][]spatial.Triangle) []spatial.Triangle {
	var out []spatial.Triangle
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// IsEnforced reports whether any enforcer triangle lies within radius of
// position. Returns false trivially if there are no enforcer triangles.
func (p *Painting) IsEnforced(position geom.Point3, radius float64) bool {
	if p == nil || len(p.enforcers.Triangles) == 0 {
		return false
	}
	return p.enforcers.IsAnyTriangleInRadius(position, radius)
}

// IsBlocked mirrors IsEnforced for the blocker set.
func (p *Painting) IsBlocked(position geom.Point3, radius float64) bool {
	if p == nil || len(p.blockers.Triangles) == 0 {
		return false
	}
	return p.blockers.IsAnyTriangleInRadius(position, radius)
}
