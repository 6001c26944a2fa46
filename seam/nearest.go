package seam

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
)

// Nearest picks the qualifying vertex closest to PreferredPosition, then
// attempts to snap onto a nearby sharp vertex within MaxDetour arclength —
// preferring convex, falling back to concave — if that vertex outranks the
// raw nearest pick on perimeter.PointValue. Grounded on SeamChoice.cpp's
// Nearest chooser.
type Nearest struct {
	PreferredPosition geom.Point2
	MaxDetour         float64
}

func (n Nearest) Pick(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) (Choice, bool) {
	tree := p.Tree(t, c)
	if tree.Empty() {
		return Choice{}, false
	}
	idx, ok := tree.FindNearest([]float64{n.PreferredPosition.X, n.PreferredPosition.Y})
	if !ok {
		return Choice{}, false
	}

	foot := footOnNearestEdge(p, idx, n.PreferredPosition)
	best := foot
	bestValue := perimeter.PointValue(t, c)

	if snapped, snappedValue, ok := snapToAngle(p, idx, n.MaxDetour, t, c); ok && snappedValue > bestValue {
		best = snapped
		bestValue = snappedValue
	}
	return best, true
}

// footOnNearestEdge examines the two edges adjacent to idx and returns the
// foot-of-perpendicular on whichever is closer to query.
func footOnNearestEdge(p *perimeter.Perimeter, idx int, query geom.Point2) Choice {
	n := p.N()
	prev := (idx - 1 + n) % n
	next := (idx + 1) % n
	da := geom.DistanceToSegmentSquared(query, p.Positions[prev], p.Positions[idx])
	db := geom.DistanceToSegmentSquared(query, p.Positions[idx], p.Positions[next])
	if da <= db {
		foot := geom.FootOnSegment(query, p.Positions[prev], p.Positions[idx])
		if foot == p.Positions[idx] {
			return Choice{PreviousIndex: idx, NextIndex: idx, Position: foot}
		}
		return Choice{PreviousIndex: prev, NextIndex: idx, Position: foot}
	}
	foot := geom.FootOnSegment(query, p.Positions[idx], p.Positions[next])
	if foot == p.Positions[idx] {
		return Choice{PreviousIndex: idx, NextIndex: idx, Position: foot}
	}
	return Choice{PreviousIndex: idx, NextIndex: next, Position: foot}
}

// snapToAngle searches outward from idx (both directions, bounded) for the
// nearest non-Smooth vertex within maxDetour arclength, preferring Convex
// over Concave when both are found within range. Grounded on
// SeamChoice.cpp's snap-to-angle step.
func snapToAngle(p *perimeter.Perimeter, idx int, maxDetour float64, t perimeter.PointType, c perimeter.PointClassification) (Choice, int, bool) {
	n := p.N()
	var convexIdx, concaveIdx = -1, -1
	scan := func(direction int) {
		acc := 0.0
		prev := p.Positions[idx]
		cur := idx
		visit := func(next int) bool {
			acc += prev.Distance(p.Positions[next])
			prev = p.Positions[next]
			cur = next
			if acc > maxDetour {
				return true
			}
			if p.PointTypes[cur] == t && p.PointClassifications[cur] == c {
				switch p.AngleTypes[cur] {
				case perimeter.Convex:
					if convexIdx == -1 {
						convexIdx = cur
					}
				case perimeter.Concave:
					if concaveIdx == -1 {
						concaveIdx = cur
					}
				}
			}
			return convexIdx != -1
		}
		if direction > 0 {
			geom.VisitNearForward(idx, n, visit)
		} else {
			geom.VisitNearBackward(idx, n, visit)
		}
	}
	scan(1)
	if convexIdx == -1 {
		scan(-1)
	}

	chosen := convexIdx
	if chosen == -1 {
		chosen = concaveIdx
	}
	if chosen == -1 {
		return Choice{}, 0, false
	}
	return Choice{PreviousIndex: chosen, NextIndex: chosen, Position: p.Positions[chosen]},
		perimeter.PointValue(t, c), true
}
