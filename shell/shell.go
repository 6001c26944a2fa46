// Package shell groups each layer's Perimeters into Shells: vertical chains
// that link a perimeter on layer L to at most one perimeter on layer L+1 by
// nearest bounding-box distance. Grounded on SeamShells.{hpp,cpp}.
package shell

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
)

// Slice is one layer's contribution to a Shell.
type Slice struct {
	Perimeter  *perimeter.Perimeter
	LayerIndex int
}

// Shell is an ordered, layer-ascending chain of Slices. Invariant (spec.md
// §3): consecutive entries differ in LayerIndex by exactly 1.
type Shell []Slice

// Create groups layers' perimeters into Shells. layers[l] holds every
// perimeter on layer l in arbitrary but stable order; maxDistance is the
// bbox-distance cutoff beyond which two perimeters are never linked
// (spec.md §4.5). cancel is checked once, before the (cheap, O(n))
// bucket-mapping fold runs — consistent with spec.md §5's placement of
// cancellation checks at phase boundaries rather than mid-fold.
func Create(layers [][]*perimeter.Perimeter, maxDistance float64, cancel func() error) ([]Shell, error) {
	if cancel != nil {
		if err := cancel(); err != nil {
			return nil, err
		}
	}

	sizes := make([]int, len(layers))
	boxes := make([][]geom.BBox2, len(layers))
	for l, ps := range layers {
		sizes[l] = len(ps)
		boxes[l] = make([]geom.BBox2, len(ps))
		for i, p := range ps {
			boxes[l][i] = geom.BBoxOf(p.Positions)
		}
	}

	op := func(l, i int) (geom.MappingLink, bool) {
		if l+1 >= len(layers) || len(layers[l+1]) == 0 {
			return geom.MappingLink{}, false
		}
		idx, dist := geom.PickClosestBoundingBox(boxes[l][i], boxes[l+1])
		if dist > maxDistance {
			return geom.MappingLink{}, false
		}
		weight := math.Inf(1)
		if dist > 0 {
			weight = 1 / dist
		}
		return geom.MappingLink{Target: idx, Weight: weight}, true
	}

	mapping, count := geom.GetMapping(sizes, op)

	result := make([]Shell, count)
	for l, ps := range layers {
		for i, p := range ps {
			id := mapping[l][i]
			result[id] = append(result[id], Slice{Perimeter: p, LayerIndex: l})
		}
	}
	return result, nil
}
