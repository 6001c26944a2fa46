package seam

import (
	"math/rand"

	"github.com/lamina3d/seamcore/perimeter"
)

// segment is a maximal contiguous run of vertices (by cyclic edge walk)
// all matching the chooser's (type, classification), expressed as its
// endpoints and arclength so Random can sample it with probability
// proportional to that length. Grounded on SeamRandom.cpp's
// collect_segments.
type segment struct {
	startIdx, endIdx int // edge list: [startIdx..endIdx] inclusive of vertices, endIdx = startIdx if single vertex
	length           float64
}

// Random samples a point uniformly along the arclength of the maximal
// contiguous qualifying segments, each segment weighted by its own
// arclength. Deterministic given Rand — callers own a single
// *rand.Rand per object, used from one goroutine only (spec.md §5's
// single-thread RNG requirement). Grounded on SeamRandom.{hpp,cpp}.
type Random struct {
	Rand *rand.Rand
}

func (r Random) Pick(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) (Choice, bool) {
	segs := collectSegments(p, t, c)
	if len(segs) == 0 {
		return Choice{}, false
	}
	total := 0.0
	for _, s := range segs {
		total += s.length
	}
	target := r.Rand.Float64() * total
	var chosen segment
	for _, s := range segs {
		if target <= s.length {
			chosen = s
			break
		}
		target -= s.length
	}

	n := p.N()
	acc := 0.0
	idx := chosen.startIdx
	for idx != chosen.endIdx {
		next := (idx + 1) % n
		edgeLen := p.Positions[idx].Distance(p.Positions[next])
		if acc+edgeLen >= target {
			frac := 0.0
			if edgeLen > 0 {
				frac = (target - acc) / edgeLen
			}
			pos := p.Positions[idx].Add(p.Positions[next].Sub(p.Positions[idx]).Scale(frac))
			return Choice{PreviousIndex: idx, NextIndex: next, Position: pos}, true
		}
		acc += edgeLen
		idx = next
	}
	return Choice{PreviousIndex: chosen.endIdx, NextIndex: chosen.endIdx, Position: p.Positions[chosen.endIdx]}, true
}

// collectSegments walks the loop once, grouping consecutive vertices that
// all match (t, c) into segments, and computing each segment's arclength
// (sum of its internal edge lengths; a single-vertex segment has length 0
// but is still given a minimal weight so it can be picked).
func collectSegments(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) []segment {
	n := p.N()
	matches := make([]bool, n)
	any := false
	for i := 0; i < n; i++ {
		matches[i] = p.PointTypes[i] == t && p.PointClassifications[i] == c
		any = any || matches[i]
	}
	if !any {
		return nil
	}

	allMatch := true
	anchor := -1
	for i, m := range matches {
		if !m {
			allMatch = false
			anchor = i
			break
		}
	}
	if allMatch {
		return []segment{{startIdx: 0, endIdx: n - 1, length: segmentLength(p, 0, n-1)}}
	}

	// anchor is a non-matching index, so rotating the scan to start just
	// after it guarantees no run wraps across the loop's 0-index boundary.
	var segs []segment
	start := -1
	for step := 1; step <= n; step++ {
		idx := (anchor + step) % n
		if matches[idx] {
			if start == -1 {
				start = idx
			}
			continue
		}
		if start != -1 {
			end := (idx - 1 + n) % n
			segs = append(segs, segment{startIdx: start, endIdx: end, length: segmentLength(p, start, end)})
			start = -1
		}
	}
	for i := range segs {
		if segs[i].length <= 0 {
			segs[i].length = minSegmentWeight
		}
	}
	return segs
}

const minSegmentWeight = 1e-9

func segmentLength(p *perimeter.Perimeter, start, end int) float64 {
	n := p.N()
	total := 0.0
	idx := start
	for idx != end {
		next := (idx + 1) % n
		total += p.Positions[idx].Distance(p.Positions[next])
		idx = next
	}
	return total
}
