package perimeter

import "github.com/lamina3d/seamcore/geom"

// classifyAngle applies the convex/concave threshold split described in
// spec.md §4.1: angle beyond +convexThreshold is Convex, beyond
// -concaveThreshold is Concave, otherwise Smooth.
func classifyAngle(angle, convexThreshold, concaveThreshold float64) AngleType {
	switch {
	case angle > convexThreshold:
		return Convex
	case angle < -concaveThreshold:
		return Concave
	default:
		return Smooth
	}
}

// angleTypeAt computes the merged angle classification at index i, per
// SPEC_FULL.md §4.4's merge_angle_types: the long (smooth) arm wins
// whenever it disagrees with Smooth; otherwise the short (sharp) arm is
// given the final say, since it is the one capable of noticing a real
// corner that a long averaging arm smooths away. Only the vertex's own
// sharp-arm angle is consulted; neighbouring vertices are not searched. The
// smooth-arm angle is returned alongside the type so callers can record it
// as the vertex's reported Angle.
func angleTypeAt(positions []geom.Point2, i int, p Params) (angle float64, at AngleType) {
	smoothAngle, ok := geom.GetVertexAngle(positions, i, p.SmoothAngleArmLength)
	if !ok {
		return 0, Smooth
	}
	smoothType := classifyAngle(smoothAngle, p.ConvexThreshold, p.ConcaveThreshold)
	if smoothType != Smooth {
		return smoothAngle, smoothType
	}
	sharpAngle, ok := geom.GetVertexAngle(positions, i, p.SharpAngleArmLength)
	if !ok {
		return smoothAngle, Smooth
	}
	if sharpType := classifyAngle(sharpAngle, p.ConvexThreshold, p.ConcaveThreshold); sharpType != Smooth {
		return smoothAngle, sharpType
	}
	return smoothAngle, Smooth
}

// signedArea returns twice the signed area of the closed polygon (positive
// for counter-clockwise winding), used to derive IsHole.
func signedArea(positions []geom.Point2) float64 {
	n := len(positions)
	var sum float64
	for i := 0; i < n; i++ {
		a, b := positions[i], positions[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}
