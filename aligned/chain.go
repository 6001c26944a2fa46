package aligned

import (
	"github.com/lamina3d/seamcore/geom"
	kdt "github.com/lamina3d/seamcore/internal/kdtree"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
	"github.com/lamina3d/seamcore/shell"
)

// StartingPositions returns the shell's candidate starting XYs from its
// first slice: enforcers if any exist, else commons, else every vertex.
// Grounded on spec.md §4.7 step 3.
func StartingPositions(s shell.Shell) []geom.Point2 {
	if len(s) == 0 {
		return nil
	}
	first := s[0].Perimeter
	if pts := positionsOfType(first, perimeter.Enforcer); len(pts) > 0 {
		return pts
	}
	if pts := positionsOfType(first, perimeter.Common); len(pts) > 0 {
		return pts
	}
	return append([]geom.Point2(nil), first.Positions...)
}

func positionsOfType(p *perimeter.Perimeter, t perimeter.PointType) []geom.Point2 {
	var out []geom.Point2
	for i, pt := range p.PointTypes {
		if pt == t {
			out = append(out, p.Positions[i])
		}
	}
	return out
}

// chain is one candidate seam sequence through a shell, one Choice per
// slice in the shell's layer-ascending order.
type chain struct {
	choices []seam.Choice
	score   float64
}

// traceChain walks a shell from startXY, applying spec.md §4.7 step 4's
// Nearest-with-least-visible-override rule at every slice.
func traceChain(s shell.Shell, startXY geom.Point2, precomputed map[*perimeter.Perimeter][]float64, leastVisible map[*perimeter.Perimeter]seam.Choice, calc Calculator) chain {
	previous := startXY
	choices := make([]seam.Choice, len(s))
	for i, slice := range s {
		p := slice.Perimeter
		nearest := seam.Nearest{PreferredPosition: previous, MaxDetour: calc.Params.MaxDetour}
		candidate, ok := seam.ChooseSeamPoint(nearest, p)
		if !ok {
			candidate = seam.ChooseDegenerateSeamPoint(p)
		}

		candidateVis := vertexOrEdgeValue(p, candidate.PreviousIndex, candidate.NextIndex, candidate.Position, precomputed[p], calc, p.SliceZ)
		anchor := leastVisible[p]
		anchorVis := vertexOrEdgeValue(p, anchor.PreviousIndex, anchor.NextIndex, anchor.Position, precomputed[p], calc, p.SliceZ)

		drifted := previous.Distance(candidate.Position) > calc.Params.MaxDetour
		anchorOnSharpVertex := anchor.PreviousIndex == anchor.NextIndex && p.AngleTypes[anchor.PreviousIndex] != perimeter.Smooth
		tooExposed := candidateVis > anchorVis+calc.Params.JumpVisibilityThreshold && anchorOnSharpVertex

		chosen := candidate
		if drifted || tooExposed {
			chosen = anchor
		}
		choices[i] = chosen
		previous = chosen.Position
	}
	return chain{choices: choices}
}

// finalize computes spec.md §4.7 step 5's chain score: sum of per-slice
// visibilities, plus a continuity bonus toward a seam on the previous
// printed layer (the layer directly below this shell's first slice).
// previousLayerSeams indexes, by layer index, a k-d tree over that layer's
// already-chosen seam positions — built by the caller from the layer
// immediately below the shell currently being optimized. Lower is better.
func (c chain) finalize(s shell.Shell, precomputed map[*perimeter.Perimeter][]float64, calc Calculator, previousLayerSeams map[int]*kdt.Tree, previousLayerPositions map[int][]geom.Point2) chain {
	total := 0.0
	for i, slice := range s {
		p := slice.Perimeter
		total += vertexOrEdgeValue(p, c.choices[i].PreviousIndex, c.choices[i].NextIndex, c.choices[i].Position, precomputed[p], calc, p.SliceZ)
	}
	total += continuityBonus(s, c.choices, calc.Params, previousLayerSeams, previousLayerPositions)
	c.score = total
	return c
}

func continuityBonus(s shell.Shell, choices []seam.Choice, params Params, trees map[int]*kdt.Tree, positions map[int][]geom.Point2) float64 {
	if len(s) == 0 {
		return 0
	}
	firstLayer := s[0].LayerIndex
	tree := trees[firstLayer-1]
	if tree.Empty() {
		return 0
	}
	firstPos := choices[0].Position
	idx, ok := tree.FindNearest([]float64{firstPos.X, firstPos.Y})
	if !ok {
		return 0
	}
	d := firstPos.Distance(positions[firstLayer-1][idx])
	if d > params.MaxDetour || params.MaxDetour <= 0 {
		return 0
	}
	return -params.ContinuityModifier * (params.MaxDetour - d) / params.MaxDetour
}

// BuildPreviousLayerTree indexes a layer's already-committed seam positions
// into a k-d tree for the next shell's continuity-bonus lookup.
func BuildPreviousLayerTree(positions []geom.Point2) *kdt.Tree {
	indices := make([]int, len(positions))
	for i := range indices {
		indices[i] = i
	}
	return kdt.New(2, indices, func(i, dim int) float64 {
		if dim == 0 {
			return positions[i].X
		}
		return positions[i].Y
	})
}
