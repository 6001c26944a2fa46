// Package aligned implements the Aligned seam optimizer: per shell, it
// traces a candidate chain of seam points from each starting XY using the
// Nearest chooser, overriding to the slice's least-visible anchor when the
// chain drifts or gets too exposed, then keeps the best-scoring chain.
// Grounded on SeamAligned.{hpp,cpp}.
package aligned

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/visibility"
)

// Params controls the aligned optimizer's thresholds. Grounded on
// spec.md §3's Params (the aligned-relevant subset).
type Params struct {
	MaxDetour                float64
	JumpVisibilityThreshold   float64
	ContinuityModifier        float64
	ConvexVisibilityModifier  float64
	ConcaveVisibilityModifier float64
	RandomSeed                uint64
}

// Calculator computes a position's visibility score, folding the base
// visibility field value together with an angle correction. Grounded on
// spec.md §4.7 step 1.
type Calculator struct {
	Field  *visibility.Visibility
	Params Params
}

// Value implements VisibilityCalculator(position, sliceZ, angle) =
// v(3D(position, sliceZ)) + angleModifier(angle), the exact formula from
// spec.md §4.7 step 1, with the smooth-blend correction SPEC_FULL.md §4.7
// pins precisely (superseding spec.md's looser paraphrase):
//
//	weight_max := convexModifier if angle>0 else concaveModifier
//	a := abs(angle)
//	if a > pi/2: return v - weight_max
//	linear := a/(pi/2)
//	smooth := linear*weight_max + ((pi/2-a)/(pi/2))*linear
//	return v - smooth
func (c Calculator) Value(position geom.Point2, sliceZ, angle float64) float64 {
	v := c.Field.PointVisibility(position.To3(sliceZ))
	return v + angleModifier(angle, c.Params.ConvexVisibilityModifier, c.Params.ConcaveVisibilityModifier)
}

func angleModifier(angle, convexModifier, concaveModifier float64) float64 {
	weightMax := concaveModifier
	if angle > 0 {
		weightMax = convexModifier
	}
	a := math.Abs(angle)
	if a > math.Pi/2 {
		return -weightMax
	}
	linear := a / (math.Pi / 2)
	smooth := linear*weightMax + ((math.Pi/2-a)/(math.Pi/2))*linear
	return -smooth
}

// vertexOrEdgeValue implements the chain-walk's visibility lookup from
// spec.md §4.7 step 4: a candidate resting exactly on a non-Smooth vertex
// reads its visibility straight out of precomputed; any other candidate
// (an edge-interior point, or a Smooth vertex) is evaluated fresh via the
// calculator. Edge-interior points carry no angle classification of their
// own, so they are evaluated with angle=0; a Smooth vertex is evaluated
// with angle=0 as well.
func vertexOrEdgeValue(p *perimeter.Perimeter, idx, nextIdx int, position geom.Point2, precomputed []float64, calc Calculator, sliceZ float64) float64 {
	if idx == nextIdx && p.AngleTypes[idx] != perimeter.Smooth {
		return precomputed[idx]
	}
	return calc.Value(position, sliceZ, 0)
}
