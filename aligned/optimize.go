package aligned

import (
	"encoding/binary"
	"sort"

	"github.com/lamina3d/seamcore/geom"
	kdt "github.com/lamina3d/seamcore/internal/kdtree"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
	"github.com/lamina3d/seamcore/shell"
	"github.com/minio/highwayhash"
)

// tieBreakKey expands Params.RandomSeed into a 32-byte HighwayHash key
// (the algorithm's required key size), used only to order otherwise-equal-
// score candidate chains deterministically — never as a substitute for the
// Random chooser's own RNG (that determinism contract is spec.md §6's, and
// belongs to package seam alone).
func tieBreakKey(seed uint64) []byte {
	key := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed+uint64(i)*0x9E3779B97F4A7C15)
	}
	return key
}

// tieBreakHash returns a deterministic ordering value for (shellIndex,
// startIndex) under the given seed, used to break exact score ties between
// two candidate chains without depending on slice/map iteration order.
func tieBreakHash(key []byte, shellIndex, startIndex int) uint64 {
	h, err := highwayhash.New64(key)
	if err != nil {
		// A 32-byte key is always valid for HighwayHash; this path is
		// unreachable in practice but degrades to a stable non-random
		// ordering rather than panicking.
		return uint64(shellIndex)<<32 | uint64(startIndex)
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(shellIndex))
	binary.LittleEndian.PutUint64(buf[8:], uint64(startIndex))
	h.Write(buf[:])
	return h.Sum64()
}

// Result is the outcome of optimizing one shell: the winning chain's
// per-slice choices, in the shell's own layer-ascending order.
type Result struct {
	Shell   shell.Shell
	Choices []seam.Choice
}

func firstLayerOf(s shell.Shell) int {
	if len(s) == 0 {
		return 0
	}
	return s[0].LayerIndex
}

// GetObjectSeams runs the Aligned strategy over every shell and scatters
// each winning chain's choices into layerSeams[layer_index]. Grounded on
// spec.md §4.7's top-level driver and §4.8's "the result is scattered into
// layer_seams[layer_index]."
//
// A shell's continuity bonus depends only on seams already committed on
// the layer directly below its first slice (spec.md §5: "the aligned
// optimizer's per-shell decision does not depend on shell-processing
// order"). Because a shell can only ever contribute seams to layers at or
// above its own first slice, that invariant holds only if every shell is
// optimized no earlier than every shell starting on a lower layer — so
// shells here are batched by their first slice's layer index, processed in
// ascending order, and a batch's seams are folded into layerSeams and
// trees only once the whole batch has committed. Shells within a batch
// never read each other's seams (only the fully-settled layer below the
// batch), so their relative order inside the batch is immaterial. The
// input order of shells is otherwise not significant and the caller may
// supply shells in any order.
func GetObjectSeams(shells []shell.Shell, precomputed map[*perimeter.Perimeter][]float64, leastVisible map[*perimeter.Perimeter]seam.Choice, calc Calculator, cancel func() error) ([]Result, map[int][]geom.Point2, error) {
	key := tieBreakKey(calc.Params.RandomSeed)
	layerSeams := make(map[int][]geom.Point2)
	trees := make(map[int]*kdt.Tree)
	results := make([]Result, len(shells))
	kept := make([]bool, len(shells))

	order := make([]int, len(shells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return firstLayerOf(shells[order[a]]) < firstLayerOf(shells[order[b]])
	})

	processed := 0
	for i := 0; i < len(order); {
		batchLayer := firstLayerOf(shells[order[i]])
		touched := make(map[int]bool)
		for i < len(order) && firstLayerOf(shells[order[i]]) == batchLayer {
			si := order[i]
			s := shells[si]
			if cancel != nil && processed%64 == 0 {
				if err := cancel(); err != nil {
					return nil, nil, err
				}
			}
			processed++

			starts := StartingPositions(s)
			var best chain
			haveBest := false
			var bestTie uint64
			for startIdx, start := range starts {
				c := traceChain(s, start, precomputed, leastVisible, calc)
				c = c.finalize(s, precomputed, calc, trees, layerSeams)
				tie := tieBreakHash(key, si, startIdx)
				if !haveBest || c.score < best.score || (c.score == best.score && tie < bestTie) {
					best = c
					bestTie = tie
					haveBest = true
				}
			}
			i++
			if !haveBest {
				continue
			}
			results[si] = Result{Shell: s, Choices: best.choices}
			kept[si] = true
			for slIdx, slice := range s {
				layerSeams[slice.LayerIndex] = append(layerSeams[slice.LayerIndex], best.choices[slIdx].Position)
				touched[slice.LayerIndex] = true
			}
		}
		for layer := range touched {
			trees[layer] = BuildPreviousLayerTree(layerSeams[layer])
		}
	}

	out := make([]Result, 0, len(shells))
	for si, r := range results {
		if kept[si] {
			out = append(out, r)
		}
	}
	return out, layerSeams, nil
}
