package geom

import "math"

// OversampleEdge returns the interior lattice points p+i*step, i=1..n-1,
// where n = ceil(|p-q|/maxD)+1 and step=(q-p)/(n-1). Grounded on
// SeamGeometry.cpp's oversample_edge. Returns nil if the edge would produce
// fewer than 3 total points (start+interior+end), i.e. n<3 — a short edge is
// left alone rather than getting a single redundant midpoint.
func OversampleEdge(p, q Point2, maxD float64) []Point2 {
	if maxD <= 0 {
		return nil
	}
	dist := p.Distance(q)
	n := int(math.Ceil(dist/maxD)) + 1
	if n < 3 {
		return nil
	}
	step := q.Sub(p).Scale(1 / float64(n-1))
	out := make([]Point2, 0, n-2)
	for i := 1; i < n-1; i++ {
		out = append(out, p.Add(step.Scale(float64(i))))
	}
	return out
}

// DistanceToSegmentSquared returns the squared distance from p to the
// segment [a,b].
func DistanceToSegmentSquared(p, a, b Point2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Dot(p.Sub(a))
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	d := p.Sub(proj)
	return d.Dot(d)
}

// FootOnSegment returns the closest point to p on segment [a,b].
func FootOnSegment(p, a, b Point2) Point2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
