package seam

import (
	"math/rand"
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSquare(t *testing.T) *perimeter.Perimeter {
	t.Helper()
	square := []geom.Point2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	p := perimeter.Build(perimeter.Input{Polygon: square}, perimeter.LayerInfo{}, perimeter.Params{
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

func TestChooseSeamPointFindsCommonVertex(t *testing.T) {
	p := buildSquare(t)
	chooser := Nearest{PreferredPosition: geom.Point2{X: 0, Y: 0}, MaxDetour: 0.5}
	choice, ok := ChooseSeamPoint(chooser, p)
	require.True(t, ok)
	assert.GreaterOrEqual(t, choice.PreviousIndex, 0)
}

func TestLeastVisiblePicksMinimum(t *testing.T) {
	p := buildSquare(t)
	vis := make([]float64, p.N())
	for i := range vis {
		vis[i] = 1.0
	}
	vis[2] = 0.1
	chooser := LeastVisible{Visibility: vis}
	choice, ok := chooser.Pick(p, perimeter.Common, perimeter.ClassCommon)
	require.True(t, ok)
	assert.Equal(t, 2, choice.PreviousIndex)
}

func TestRandomIsDeterministicForFixedSeed(t *testing.T) {
	p := buildSquare(t)
	c1 := Random{Rand: rand.New(rand.NewSource(42))}
	c2 := Random{Rand: rand.New(rand.NewSource(42))}
	choice1, ok1 := c1.Pick(p, perimeter.Common, perimeter.ClassCommon)
	choice2, ok2 := c2.Pick(p, perimeter.Common, perimeter.ClassCommon)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, choice1, choice2)
}

func TestRearestPicksMaxYVertex(t *testing.T) {
	p := buildSquare(t)
	chooser := Rearest{RearYOffset: 1, RearTolerance: 0.5}
	choice, ok := chooser.Pick(p, perimeter.Common, perimeter.ClassCommon)
	require.True(t, ok)
	assert.InDelta(t, 4.0, choice.Position.Y, 1e-6)
}

func TestChooseDegenerateSeamPointIsFirstVertex(t *testing.T) {
	p := buildSquare(t)
	choice := ChooseDegenerateSeamPoint(p)
	assert.Equal(t, p.Positions[0], choice.Position)
}
