package seam

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
)

// Rearest picks a point near the back (max-Y) of the qualifying vertices,
// blending toward the bbox top when the nearest qualifying edge falls
// short of it by less than RearTolerance, or snapping to the highest
// qualifying vertex when it falls short by more. Grounded on
// SeamRear.{hpp,cpp}'s RearestPointCalculator, with the exact blend
// mechanics pinned in SPEC_FULL.md §4.6.
type Rearest struct {
	RearYOffset   float64
	RearTolerance float64
}

func (r Rearest) Pick(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) (Choice, bool) {
	n := p.N()
	var box geom.BBox2
	var qualifying []int
	for i := 0; i < n; i++ {
		if p.PointTypes[i] == t && p.PointClassifications[i] == c {
			qualifying = append(qualifying, i)
		}
	}
	if len(qualifying) == 0 {
		return Choice{}, false
	}
	box = geom.BBoxOf(p.Positions)

	preferred := geom.Point2{X: box.Center().X, Y: box.Max.Y + r.RearYOffset}
	atBBoxTop := geom.Point2{X: box.Center().X, Y: box.Max.Y}

	preferredEdge, preferredFoot := nearestQualifyingEdge(p, qualifying, preferred)
	topEdge, topFoot := nearestQualifyingEdge(p, qualifying, atBBoxTop)
	if preferredEdge.PreviousIndex == -1 || topEdge.PreviousIndex == -1 {
		return Choice{}, false
	}

	yDistance := preferredFoot.Y - topFoot.Y
	result := preferredEdge
	switch {
	case yDistance < 0:
		result = topEdge
	case r.RearTolerance > 0 && yDistance <= r.RearTolerance:
		factor := yDistance / r.RearTolerance
		blended := topFoot.Add(preferredFoot.Sub(topFoot).Scale(factor))
		result = Choice{PreviousIndex: preferredEdge.PreviousIndex, NextIndex: preferredEdge.NextIndex, Position: blended}
	}
	if box.Max.Y-result.Position.Y > r.RearTolerance {
		highest := -1
		for _, i := range qualifying {
			if p.Positions[i].Y > result.Position.Y && (highest == -1 || p.Positions[i].Y > p.Positions[highest].Y) {
				highest = i
			}
		}
		if highest != -1 {
			result = Choice{PreviousIndex: highest, NextIndex: highest, Position: p.Positions[highest]}
		}
	}
	return result, true
}

// nearestQualifyingEdge returns the Choice on whichever qualifying
// consecutive-vertex edge lies closest to query, along with the foot
// point itself (duplicated into the Choice.Position already, returned
// again for callers that need it before blending).
func nearestQualifyingEdge(p *perimeter.Perimeter, qualifying []int, query geom.Point2) (Choice, geom.Point2) {
	n := p.N()
	qset := make(map[int]bool, len(qualifying))
	for _, i := range qualifying {
		qset[i] = true
	}
	best := Choice{PreviousIndex: -1, NextIndex: -1}
	bestDist := 0.0
	for _, i := range qualifying {
		next := (i + 1) % n
		if !qset[next] {
			// Lone qualifying vertex with no qualifying successor: treat as
			// a degenerate zero-length edge at the vertex itself.
			d := query.Distance(p.Positions[i])
			if best.PreviousIndex == -1 || d < bestDist {
				best = Choice{PreviousIndex: i, NextIndex: i, Position: p.Positions[i]}
				bestDist = d
			}
			continue
		}
		foot := geom.FootOnSegment(query, p.Positions[i], p.Positions[next])
		d := query.Distance(foot)
		if best.PreviousIndex == -1 || d < bestDist {
			best = Choice{PreviousIndex: i, NextIndex: next, Position: foot}
			bestDist = d
		}
	}
	return best, best.Position
}
