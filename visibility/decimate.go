package visibility

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/spatial"
)

// decimate implements a short-edge-collapse simplification: vertices closer
// together than a progressively widened snap distance are merged, and any
// triangle that degenerates (two or more merged corners) is dropped. This
// mirrors the role of ModelVisibility.cpp's its_short_edge_collapse call —
// reduce triangle count toward a target before the (expensive) ray-cast
// pass — without attempting to reproduce its exact quadric-error heuristic.
func decimate(triangles []spatial.Triangle, target int) []spatial.Triangle {
	if target <= 0 || len(triangles) <= target {
		return append([]spatial.Triangle(nil), triangles...)
	}

	cur := triangles
	// Estimate an initial snap distance from the mesh's bounding diagonal
	// and grow it geometrically until the triangle count is at or below
	// target, capped to avoid runaway iteration on pathological inputs.
	diag := boundingDiagonal(triangles)
	if diag == 0 {
		return append([]spatial.Triangle(nil), triangles...)
	}
	snap := diag * 1e-4
	for iter := 0; iter < 40 && len(cur) > target; iter++ {
		collapsed := collapseShortEdges(cur, snap)
		if len(collapsed) == len(cur) {
			snap *= 1.6
			continue
		}
		cur = collapsed
		snap *= 1.2
	}
	return cur
}

func boundingDiagonal(triangles []spatial.Triangle) float64 {
	if len(triangles) == 0 {
		return 0
	}
	min := triangles[0].A
	max := triangles[0].A
	for _, t := range triangles {
		for _, v := range [3]geom.Point3{t.A, t.B, t.C} {
			min = geom.Point3{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
			max = geom.Point3{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
		}
	}
	return max.Distance(min)
}

// collapseShortEdges snaps together vertices within snapDist of each other
// (using a grid-quantized key, avoiding an O(n^2) all-pairs compare) and
// drops triangles that degenerate to zero area as a result.
func collapseShortEdges(triangles []spatial.Triangle, snapDist float64) []spatial.Triangle {
	if snapDist <= 0 {
		return triangles
	}
	snap := func(p geom.Point3) geom.Point3 {
		q := func(v float64) float64 { return math.Round(v/snapDist) * snapDist }
		return geom.Point3{X: q(p.X), Y: q(p.Y), Z: q(p.Z)}
	}
	out := make([]spatial.Triangle, 0, len(triangles))
	for _, t := range triangles {
		a, b, c := snap(t.A), snap(t.B), snap(t.C)
		if a == b || b == c || a == c {
			continue
		}
		out = append(out, spatial.Triangle{A: a, B: b, C: c, Negative: t.Negative})
	}
	return out
}
