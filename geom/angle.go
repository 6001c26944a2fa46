package geom

import "math"

// armEndpoint walks from index along direction (+1 forward, -1 backward)
// accumulating arclength over the cyclic point list until at least armLength
// has been covered, returning the point reached and whether an arm of that
// length exists at all (false if the cap of maxVisitSteps is hit first).
func armEndpoint(positions []Point2, index, direction int, armLength float64) (Point2, bool) {
	n := len(positions)
	if n == 0 {
		return Point2{}, false
	}
	acc := 0.0
	prev := positions[index]
	idx := index
	found := false
	visit := func(next int) bool {
		cur := positions[next]
		acc += prev.Distance(cur)
		prev = cur
		idx = next
		if acc >= armLength {
			found = true
			return true
		}
		return false
	}
	if direction > 0 {
		VisitNearForward(index, n, visit)
	} else {
		VisitNearBackward(index, n, visit)
	}
	if !found {
		return Point2{}, false
	}
	return positions[idx], true
}

// GetPolygonNormal returns the unit left-hand normal at positions[index]
// (pointing inward on a counter-clockwise loop, outward on a clockwise one),
// derived from arms of at least armLength arclength on either side. Returns
// ok=false (zero vector) if either arm cannot be found, per spec.md §4.1:
// the caller then treats this vertex as having "no reliable normal".
func GetPolygonNormal(positions []Point2, index int, armLength float64) (Point2, bool) {
	back, ok1 := armEndpoint(positions, index, -1, armLength)
	fwd, ok2 := armEndpoint(positions, index, 1, armLength)
	if !ok1 || !ok2 {
		return Point2{}, false
	}
	in := positions[index].Sub(back)
	out := fwd.Sub(positions[index])
	edge := in.Add(out)
	normal := Normal(edge).Normalized()
	if normal == (Point2{}) {
		return Point2{}, false
	}
	return normal, true
}

// GetVertexAngle returns the signed turning angle at positions[index] using
// arms of at least armLength arclength, positive for convex (as seen from
// outside a counter-clockwise-wound loop), ok=false if an arm is unavailable.
func GetVertexAngle(positions []Point2, index int, armLength float64) (float64, bool) {
	back, ok1 := armEndpoint(positions, index, -1, armLength)
	fwd, ok2 := armEndpoint(positions, index, 1, armLength)
	if !ok1 || !ok2 {
		return 0, false
	}
	in := positions[index].Sub(back)
	out := fwd.Sub(positions[index])
	angle := math.Atan2(in.Cross(out), in.Dot(out))
	return angle, true
}

// GetOverhangAngle implements the overhang-exposure formula from
// SeamPerimeters.cpp's get_overhangs: π/2 - atan(layerHeight/dist) when
// dist>0, else 0 (dist is how far the point lies outside the previous
// outline, so a point on or inside it is never an overhang by this formula
// alone).
func GetOverhangAngle(dist, layerHeight float64) float64 {
	if dist <= 0 {
		return 0
	}
	return math.Pi/2 - math.Atan(layerHeight/dist)
}
