// Package polyop implements the polygon offset operations the perimeter
// builder needs: the layer-0 elephant-foot outward offset, and the
// extrusion-polygon outward expansion used as ProjectToGeometry's fallback
// when no boundary island is close enough. github.com/ctessum/polyclip-go
// (a Go port of Clipper) implements polygon boolean ops but, unlike the C++
// Clipper library the original slicer calls for offsetting, has no offset
// operator of its own — so the actual outward push is a hand-rolled
// per-vertex normal offset (documented gap, see DESIGN.md), and
// polyclip-go's UNION op is used immediately afterward to resolve the
// self-intersections a naive per-vertex push introduces at sharp concave
// corners.
package polyop

import (
	"github.com/ctessum/polyclip-go"
	"github.com/lamina3d/seamcore/geom"
)

func toPolyclip(polygon []geom.Point2) polyclip.Polygon {
	contour := make(polyclip.Contour, len(polygon))
	for i, p := range polygon {
		contour[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return polyclip.Polygon{contour}
}

func fromPolyclip(p polyclip.Polygon) []geom.Point2 {
	if len(p) == 0 {
		return nil
	}
	// The largest contour by vertex count is taken as the outer boundary;
	// offsetting a single simple polygon should yield exactly one contour
	// in the ordinary case.
	best := p[0]
	for _, c := range p[1:] {
		if len(c) > len(best) {
			best = c
		}
	}
	out := make([]geom.Point2, len(best))
	for i, pt := range best {
		out[i] = geom.Point2{X: pt.X, Y: pt.Y}
	}
	return out
}

// Union returns the boolean union of two polygons via polyclip-go.
func Union(a, b []geom.Point2) []geom.Point2 {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	result := toPolyclip(a).Construct(polyclip.UNION, toPolyclip(b))
	return fromPolyclip(result)
}

// normalPush offsets every vertex outward along its local vertex normal by
// delta (negative delta offsets inward). Grounded on the original's use of
// Clipper's offset for elephant-foot compensation and extrusion fallback
// expansion; this is the hand-rolled substitute polyclip-go's boolean-only
// API cannot provide directly.
func normalPush(polygon []geom.Point2, delta float64) []geom.Point2 {
	n := len(polygon)
	if n < 3 {
		return polygon
	}
	out := make([]geom.Point2, n)
	for i := range polygon {
		prev := polygon[(i-1+n)%n]
		next := polygon[(i+1)%n]
		normal, ok := geom.GetPolygonNormal(polygon, i, 1e-6)
		if !ok {
			// Degenerate local neighborhood (coincident points): fall back
			// to the edge-bisector normal without requiring an arm length.
			edge := next.Sub(prev)
			normal = geom.Normal(edge).Normalized()
		}
		// Both normals above are left-hand normals, which point inward on a
		// counter-clockwise loop, so the outward push subtracts them.
		out[i] = polygon[i].Sub(normal.Scale(delta))
	}
	return out
}

// Expand returns polygon offset outward by delta, self-intersections
// resolved by unioning the naive offset with the original polygon. Returns
// the unmodified polygon if the offset is geometrically impossible (fewer
// than 3 vertices, or the union degenerates to nothing) — per spec.md §7,
// geometric impossibility silently falls back to the untransformed input,
// never an error.
func Expand(polygon []geom.Point2, delta float64) []geom.Point2 {
	if len(polygon) < 3 || delta == 0 {
		return polygon
	}
	pushed := normalPush(polygon, delta)
	merged := Union(polygon, pushed)
	if len(merged) < 3 {
		return polygon
	}
	return merged
}
