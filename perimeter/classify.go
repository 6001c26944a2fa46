package perimeter

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
)

// Boundary is a simple closed polygon used as a distance/containment
// reference for overhang and embedding classification: the previous
// layer's island outline (overhang) or the current layer's island outline
// (embedding). Grounded on SeamGeometry.hpp's use of a Polygon for these
// same two lookups in SeamPerimeters.cpp's get_overhangs/get_embedding.
type Boundary struct {
	Contour []geom.Point2
}

// Inside reports whether p lies within the contour (even-odd ray-casting
// rule). An empty contour contains nothing.
func (b Boundary) Inside(p geom.Point2) bool {
	n := len(b.Contour)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, c := b.Contour[i], b.Contour[j]
		if (a.Y > p.Y) != (c.Y > p.Y) {
			xIntersect := (c.X-a.X)*(p.Y-a.Y)/(c.Y-a.Y) + a.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// DistanceToBoundary returns the distance from p to the nearest edge of the
// contour. Returns +Inf for a contour with fewer than 2 vertices.
func (b Boundary) DistanceToBoundary(p geom.Point2) float64 {
	n := len(b.Contour)
	if n < 2 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		d2 := geom.DistanceToSegmentSquared(p, b.Contour[j], b.Contour[i])
		if d2 < best {
			best = d2
		}
	}
	return math.Sqrt(best)
}

// OutsideDistance returns, for the overhang sweep, how far outside the
// boundary p lies: 0 if p is inside (or the boundary is degenerate),
// otherwise the distance to the nearest edge. Grounded on
// SeamPerimeters.cpp's get_overhangs, which feeds exactly this quantity to
// GetOverhangAngle.
func (b Boundary) OutsideDistance(p geom.Point2) float64 {
	if len(b.Contour) < 3 || b.Inside(p) {
		return 0
	}
	return b.DistanceToBoundary(p)
}

// EmbeddingDepth returns, for the embedding classification, how far inside
// the boundary p lies: 0 if p is outside (or on a degenerate boundary),
// otherwise the distance to the nearest edge. Grounded on
// SeamPerimeters.cpp's get_embedding.
func (b Boundary) EmbeddingDepth(p geom.Point2) float64 {
	if len(b.Contour) < 3 || !b.Inside(p) {
		return 0
	}
	return b.DistanceToBoundary(p)
}
