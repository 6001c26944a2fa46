package perimeter

import "github.com/grailbio/base/traverse"

// LayerInput is one layer's worth of loops to build, flattened alongside
// every other layer into a single index table by Create so the bounded
// parallel-for in spec.md §5 ("Per-layer perimeter construction (one range
// over a flattened (layer, polygon) index table)") can run over all of
// them at once rather than one traverse.Each call per layer.
type LayerInput struct {
	Layer LayerInfo
	Loops []Input
}

// Create builds every Perimeter across every layer in layers, in parallel,
// preserving layer and within-layer order in the result. cancel is checked
// periodically; a non-nil return aborts the remaining work and is
// propagated to the caller unchanged (spec.md §7: cancellation is the only
// error kind that crosses this boundary).
func Create(layers []LayerInput, params Params, cancel func() error) ([][]*Perimeter, error) {
	out := make([][]*Perimeter, len(layers))
	type slot struct{ layer, loop int }
	var slots []slot
	for l, layer := range layers {
		out[l] = make([]*Perimeter, len(layer.Loops))
		for i := range layer.Loops {
			slots = append(slots, slot{l, i})
		}
	}
	if len(slots) == 0 {
		return out, nil
	}
	err := traverse.Each(len(slots), func(idx int) error {
		if idx%256 == 0 {
			if cancel != nil {
				if err := cancel(); err != nil {
					return err
				}
			}
		}
		s := slots[idx]
		out[s.layer][s.loop] = Build(layers[s.layer].Loops[s.loop], layers[s.layer].Layer, params)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
