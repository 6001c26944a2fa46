package aligned

import (
	"github.com/grailbio/base/traverse"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
	"github.com/lamina3d/seamcore/shell"
)

// Precompute builds, for every slice across every shell, the per-vertex
// visibility array (spec.md §4.7 step 1) keyed by that slice's Perimeter,
// running in parallel over the flattened (shell, slice) table (spec.md §5).
func Precompute(shells []shell.Shell, calc Calculator, cancel func() error) (map[*perimeter.Perimeter][]float64, error) {
	type slot struct {
		shellIdx, sliceIdx int
	}
	var slots []slot
	for si, s := range shells {
		for ki := range s {
			slots = append(slots, slot{si, ki})
		}
	}
	out := make(map[*perimeter.Perimeter][]float64, len(slots))
	for _, sl := range slots {
		p := shells[sl.shellIdx][sl.sliceIdx].Perimeter
		out[p] = make([]float64, p.N())
	}
	if len(slots) == 0 {
		return out, nil
	}

	err := traverse.Each(len(slots), func(idx int) error {
		if idx%256 == 0 && cancel != nil {
			if err := cancel(); err != nil {
				return err
			}
		}
		sl := slots[idx]
		p := shells[sl.shellIdx][sl.sliceIdx].Perimeter
		values := out[p]
		for i := 0; i < p.N(); i++ {
			values[i] = calc.Value(p.Positions[i], p.SliceZ, p.Angles[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LeastVisiblePerSlice runs the LeastVisible chooser (through the outer
// dispatcher, so it still honors category priority) against every slice in
// every shell, keyed the same way as Precompute's output. Grounded on
// spec.md §4.7 step 2.
func LeastVisiblePerSlice(shells []shell.Shell, precomputed map[*perimeter.Perimeter][]float64) map[*perimeter.Perimeter]seam.Choice {
	out := make(map[*perimeter.Perimeter]seam.Choice)
	for _, s := range shells {
		for _, slice := range s {
			p := slice.Perimeter
			chooser := seam.LeastVisible{Visibility: precomputed[p]}
			if choice, ok := seam.ChooseSeamPoint(chooser, p); ok {
				out[p] = choice
			} else {
				out[p] = seam.ChooseDegenerateSeamPoint(p)
			}
		}
	}
	return out
}
