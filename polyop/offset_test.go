package polyop

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() []geom.Point2 {
	return []geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestExpandGrowsBoundingBox(t *testing.T) {
	square := unitSquare()
	expanded := Expand(square, 0.1)
	require.NotEmpty(t, expanded)
	box := geom.BBoxOf(expanded)
	original := geom.BBoxOf(square)
	assert.LessOrEqual(t, box.Min.X, original.Min.X)
	assert.GreaterOrEqual(t, box.Max.X, original.Max.X)
}

func TestExpandDegenerateFallsBackToInput(t *testing.T) {
	line := []geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}
	assert.Equal(t, line, Expand(line, 0.1))
}

func TestExpandZeroDeltaIsIdentity(t *testing.T) {
	square := unitSquare()
	assert.Equal(t, square, Expand(square, 0))
}

func TestUnionOfOverlappingSquares(t *testing.T) {
	a := unitSquare()
	b := []geom.Point2{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1.5}, {X: 0.5, Y: 1.5}}
	merged := Union(a, b)
	require.NotEmpty(t, merged)
	box := geom.BBoxOf(merged)
	assert.InDelta(t, 1.5, box.Max.X, 1e-9)
	assert.InDelta(t, 1.5, box.Max.Y, 1e-9)
}
