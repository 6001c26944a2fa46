// Package placer implements the seam-placement façade: it owns Painting,
// Visibility, and Perimeters for a set of objects, runs the appropriate
// strategy-specific precomputation at Init, and answers PlaceSeam queries
// by projecting the chosen 2D seam back onto the actual extrusion loop.
// Grounded on SeamPlacer.{hpp,cpp}.
package placer

import (
	"github.com/lamina3d/seamcore/aligned"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/visibility"
)

// Strategy selects which seam-candidate policy governs an object.
type Strategy int

const (
	StrategyNearest Strategy = iota
	StrategyAligned
	StrategyRear
	StrategyRandom
)

// Params is the closed parameter set from spec.md §3.
type Params struct {
	MaxDetour                float64
	JumpVisibilityThreshold  float64
	ContinuityModifier       float64
	ConvexVisibilityModifier float64
	ConcaveVisibilityModifier float64
	MaxDistance              float64
	MaxNearestDetour         float64
	RearTolerance            float64
	RearYOffset              float64
	RandomSeed               uint64
	StaggeredInnerSeams      bool

	Perimeter  perimeter.Params
	Visibility visibility.Params
}

// DefaultParams returns the slicer's stock parameter set, grounded on
// SeamPlacer.cpp's Placer::get_params defaults.
func DefaultParams() Params {
	return Params{
		MaxDetour:                 1.0,
		JumpVisibilityThreshold:   0.6,
		ContinuityModifier:        2.0,
		ConvexVisibilityModifier:  1.1,
		ConcaveVisibilityModifier: 0.9,
		MaxDistance:               5.0,
		MaxNearestDetour:          1.0,
		RearTolerance:             0.2,
		RearYOffset:               20.0,
		RandomSeed:                12345,
		StaggeredInnerSeams:       false,
		Perimeter: perimeter.Params{
			ElephantFootCompensation: 0.1,
			OversamplingMaxDistance:  0.2,
			EmbeddingThreshold:       0.5,
			OverhangThreshold:        0.96,  // ~55 degrees
			ConvexThreshold:          0.175, // ~10 degrees
			ConcaveThreshold:         0.262, // ~15 degrees
			PaintingRadius:           0.1,
			SimplificationEpsilon:    0.001,
			SmoothAngleArmLength:     0.2,
			SharpAngleArmLength:      0.05,
		},
		Visibility: visibility.Params{
			RaycastingVisibilitySamplesCount:  30000,
			FastDecimationTriangleCountTarget: 16000,
			SqrRaysPerSamplePoint:              5,
		},
	}
}

func (p Params) alignedParams() aligned.Params {
	return aligned.Params{
		MaxDetour:                 p.MaxDetour,
		JumpVisibilityThreshold:   p.JumpVisibilityThreshold,
		ContinuityModifier:        p.ContinuityModifier,
		ConvexVisibilityModifier:  p.ConvexVisibilityModifier,
		ConcaveVisibilityModifier: p.ConcaveVisibilityModifier,
		RandomSeed:                p.RandomSeed,
	}
}
