package aligned

import (
	"math"
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/shell"
	"github.com/lamina3d/seamcore/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []geom.Point2 {
	return []geom.Point2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
}

func buildPerimeter(t *testing.T, layerIndex int) *perimeter.Perimeter {
	t.Helper()
	p := perimeter.Build(perimeter.Input{Polygon: square()}, perimeter.LayerInfo{LayerIndex: layerIndex, SliceZ: float64(layerIndex) * 0.2}, perimeter.Params{
		SimplificationEpsilon: 1e-6,
		SmoothAngleArmLength:  1,
		SharpAngleArmLength:   0.2,
		ConvexThreshold:       0.2,
		ConcaveThreshold:      0.2,
		OverhangThreshold:     10,
		EmbeddingThreshold:    1000,
	})
	require.False(t, p.IsDegenerate)
	return p
}

func TestAngleModifierSaturatesPastRightAngle(t *testing.T) {
	assert.Equal(t, -1.0, angleModifier(math.Pi, 1, 1))
}

func TestAngleModifierZeroAtZeroAngle(t *testing.T) {
	assert.Equal(t, 0.0, angleModifier(0, 1, 1))
}

func TestStartingPositionsUsesCommonsWithoutEnforcers(t *testing.T) {
	p := buildPerimeter(t, 0)
	s := shell.Shell{{Perimeter: p, LayerIndex: 0}}
	starts := StartingPositions(s)
	assert.Len(t, starts, p.N())
}

func TestGetObjectSeamsProducesOneChoicePerSlice(t *testing.T) {
	empty := &visibility.Visibility{}
	calc := Calculator{Field: empty, Params: Params{MaxDetour: 10, ConvexVisibilityModifier: 0.1, ConcaveVisibilityModifier: 0.1}}

	shells := []shell.Shell{{
		{Perimeter: buildPerimeter(t, 0), LayerIndex: 0},
		{Perimeter: buildPerimeter(t, 1), LayerIndex: 1},
	}}
	precomputed, err := Precompute(shells, calc, nil)
	require.NoError(t, err)
	leastVisible := LeastVisiblePerSlice(shells, precomputed)

	results, layerSeams, err := GetObjectSeams(shells, precomputed, leastVisible, calc, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Choices, 2)
	assert.Len(t, layerSeams[0], 1)
	assert.Len(t, layerSeams[1], 1)
}
