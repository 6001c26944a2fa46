package shell

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(offset float64) []geom.Point2 {
	return []geom.Point2{
		{X: offset + 0, Y: 0}, {X: offset + 4, Y: 0}, {X: offset + 4, Y: 4}, {X: offset + 0, Y: 4},
	}
}

func buildPerimeter(t *testing.T, polygon []geom.Point2, layerIndex int) *perimeter.Perimeter {
	t.Helper()
	p := perimeter.Build(perimeter.Input{Polygon: polygon}, perimeter.LayerInfo{LayerIndex: layerIndex}, perimeter.Params{
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

func TestCreateLinksVerticallyAlignedSquares(t *testing.T) {
	layers := [][]*perimeter.Perimeter{
		{buildPerimeter(t, square(0), 0)},
		{buildPerimeter(t, square(0), 1)},
		{buildPerimeter(t, square(0), 2)},
	}
	shells, err := Create(layers, 1.0, nil)
	require.NoError(t, err)
	require.Len(t, shells, 1)
	require.Len(t, shells[0], 3)
	for i, s := range shells[0] {
		assert.Equal(t, i, s.LayerIndex)
	}
}

func TestCreateKeepsDistantSquaresInSeparateShells(t *testing.T) {
	layers := [][]*perimeter.Perimeter{
		{buildPerimeter(t, square(0), 0), buildPerimeter(t, square(100), 0)},
		{buildPerimeter(t, square(0), 1), buildPerimeter(t, square(100), 1)},
	}
	shells, err := Create(layers, 1.0, nil)
	require.NoError(t, err)
	require.Len(t, shells, 2)
	for _, s := range shells {
		require.Len(t, s, 2)
		assert.Equal(t, s[0].Perimeter.Positions[0].X, s[1].Perimeter.Positions[0].X)
	}
}

func TestCreatePropagatesCancellation(t *testing.T) {
	_, err := Create(nil, 1.0, func() error { return assertErr{"stop"} })
	assert.Equal(t, assertErr{"stop"}, err)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
