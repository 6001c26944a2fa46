package perimeter

import "github.com/lamina3d/seamcore/geom"

// OverhangRegion is the two-case sum type SPEC_FULL.md §4.4 pins from
// SeamPerimeters.cpp's variant visitor over caller-supplied overhang
// shapes: either an open arc between two points on the loop, or a marker
// that the whole loop is an overhang (e.g. a bridge's first layer).
type OverhangRegion struct {
	WholeLoop  bool
	Start, End geom.Point2 // meaningless if WholeLoop
}

// splicePoint is an interior point produced while projecting an overhang
// arc onto the loop, tagged with the classification it must receive.
type splicePoint struct {
	pos   geom.Point2
	class PointClassification
}

// projectArc finds the two loop edges nearest Start and End and returns the
// four-point splice (common-before, overhang-start, overhang-end,
// common-after) SPEC_FULL.md §4.4 describes, along with the insertion
// index (into the edge starting at that index). Grounded on
// SeamPerimeters.cpp's project_overhang_arc.
func projectArc(positions []geom.Point2, region OverhangRegion) (insertAt int, pts []splicePoint) {
	n := len(positions)
	if n < 2 {
		return 0, nil
	}
	startEdge, startFoot := nearestEdge(positions, region.Start)
	endEdge, endFoot := nearestEdge(positions, region.End)
	// Splice at the earlier edge; if both land on the same edge, the arc is
	// fully contained within it.
	at := startEdge
	if endEdge < startEdge {
		at = endEdge
	}
	return at, []splicePoint{
		{pos: positions[at], class: ClassCommon},
		{pos: startFoot, class: Overhang},
		{pos: endFoot, class: Overhang},
		{pos: positions[(at+1)%n], class: ClassCommon},
	}
}

// nearestEdge returns the index of the edge (positions[i], positions[i+1])
// nearest to p, and the closest point on that edge.
func nearestEdge(positions []geom.Point2, p geom.Point2) (int, geom.Point2) {
	n := len(positions)
	best := -1
	bestDist := -1.0
	var bestFoot geom.Point2
	for i := 0; i < n; i++ {
		a, b := positions[i], positions[(i+1)%n]
		d := geom.DistanceToSegmentSquared(p, a, b)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
			bestFoot = geom.FootOnSegment(p, a, b)
		}
	}
	return best, bestFoot
}
