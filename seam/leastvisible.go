package seam

import "github.com/lamina3d/seamcore/perimeter"

// LeastVisible picks the qualifying vertex with the minimum value in a
// precomputed per-vertex visibility array (same length and indexing as the
// perimeter's parallel arrays). Grounded on SeamChoice.cpp's LeastVisible
// chooser.
type LeastVisible struct {
	Visibility []float64
}

func (lv LeastVisible) Pick(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) (Choice, bool) {
	best := -1
	bestVal := 0.0
	for i := 0; i < p.N(); i++ {
		if p.PointTypes[i] != t || p.PointClassifications[i] != c {
			continue
		}
		if best == -1 || lv.Visibility[i] < bestVal {
			best = i
			bestVal = lv.Visibility[i]
		}
	}
	if best == -1 {
		return Choice{}, false
	}
	return Choice{PreviousIndex: best, NextIndex: best, Position: p.Positions[best]}, true
}
