package placer

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
)

// nearestFootOnLoop finds the edge of loop closest to p, returning that
// edge's starting index and the foot-of-perpendicular on it.
func nearestFootOnLoop(loop []geom.Point2, p geom.Point2) (edgeIdx int, foot geom.Point2) {
	n := len(loop)
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		d := geom.DistanceToSegmentSquared(p, a, b)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best == -1 {
		return 0, p
	}
	return best, geom.FootOnSegment(p, loop[best], loop[(best+1)%n])
}

// advanceAlongLoop walks forward (or backward, if offset is negative) from
// (edgeIdx, foot) along the loop's own polyline by |offset| arclength,
// wrapping at the loop's full perimeter.
func advanceAlongLoop(loop []geom.Point2, edgeIdx int, foot geom.Point2, offset float64) geom.Point2 {
	n := len(loop)
	if n == 0 {
		return foot
	}
	direction := 1
	remaining := offset
	if remaining < 0 {
		direction = -1
		remaining = -remaining
	}

	pos := foot
	idx := edgeIdx
	for step := 0; step < 4*n+4; step++ { // hard cap: a few full loop traversals at most
		var next geom.Point2
		if direction > 0 {
			next = loop[(idx+1)%n]
		} else {
			next = loop[idx]
		}
		segLen := pos.Distance(next)
		if segLen >= remaining {
			if segLen == 0 {
				return next
			}
			t := remaining / segLen
			return pos.Add(next.Sub(pos).Scale(t))
		}
		remaining -= segLen
		pos = next
		if direction > 0 {
			idx = (idx + 1) % n
		} else {
			idx = (idx - 1 + n) % n
		}
	}
	return pos
}

// finalizeSeamPosition projects a chosen Perimeter-space seam onto the
// actual extrusion loop, optionally staggering an inner-perimeter seam away
// from the outer loop. Grounded on SeamPlacer.cpp's finalize_seam_position,
// with the exact staggering formula SPEC_FULL.md §4.8 pins from spec.md
// §4.8: depth = |foot-chosen| - width/2; for a convex chosen vertex
// (angle>0): initial=angle/2*depth, additional=depth; otherwise: initial=0,
// additional=cos(angle/2)*depth; offset = initial+additional.
func finalizeSeamPosition(p *perimeter.Perimeter, choice seam.Choice, loop []geom.Point2, width float64, isInnerPerimeter, staggeredInnerSeams bool) geom.Point2 {
	edgeIdx, foot := nearestFootOnLoop(loop, choice.Position)
	if !staggeredInnerSeams || !isInnerPerimeter {
		return foot
	}

	angle := 0.0
	if choice.PreviousIndex == choice.NextIndex {
		angle = p.Angles[choice.PreviousIndex]
	}
	depth := foot.Distance(choice.Position) - width/2
	if depth <= 0 {
		return foot
	}

	var initial, additional float64
	if angle > 0 {
		initial = angle / 2 * depth
		additional = depth
	} else {
		additional = math.Cos(angle/2) * depth
	}
	return advanceAlongLoop(loop, edgeIdx, foot, initial+additional)
}
