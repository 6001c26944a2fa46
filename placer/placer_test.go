package placer

import (
	"errors"
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/seam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(side float64) []geom.Point2 {
	return []geom.Point2{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func oneLayerObject(strategy Strategy) Object {
	return Object{
		Strategy: strategy,
		Layers: []Layer{
			{SliceZ: 0.2, Height: 0.2, Islands: []Island{{Contour: square(4), Width: 0.4}}},
			{SliceZ: 0.4, Height: 0.2, Islands: []Island{{Contour: square(4), Width: 0.4}}},
		},
	}
}

func TestInitBuildsOneStatePerObject(t *testing.T) {
	f, err := Init([]Object{oneLayerObject(StrategyNearest), oneLayerObject(StrategyRear)}, DefaultParams(), nil)
	require.NoError(t, err)
	assert.Len(t, f.objects, 2)
	assert.Len(t, f.objects[0].perimeters, 2)
}

func TestInitPropagatesCancellation(t *testing.T) {
	wantErr := errors.New("canceled")
	_, err := Init([]Object{oneLayerObject(StrategyAligned)}, DefaultParams(), func() error { return wantErr })
	require.Error(t, err)
}

func TestPlaceSeamNearestStaysOnLoop(t *testing.T) {
	f, err := Init([]Object{oneLayerObject(StrategyNearest)}, DefaultParams(), nil)
	require.NoError(t, err)

	loop := square(4)
	p, err := f.PlaceSeam(0, 0, loop, 0.4, false, geom.Point2{X: 0, Y: 0})
	require.NoError(t, err)

	box := geom.BBoxOf(loop)
	assert.GreaterOrEqual(t, p.X, box.Min.X-1e-6)
	assert.LessOrEqual(t, p.X, box.Max.X+1e-6)
	assert.GreaterOrEqual(t, p.Y, box.Min.Y-1e-6)
	assert.LessOrEqual(t, p.Y, box.Max.Y+1e-6)
}

func TestPlaceSeamRearPicksBackOfObject(t *testing.T) {
	f, err := Init([]Object{oneLayerObject(StrategyRear)}, DefaultParams(), nil)
	require.NoError(t, err)

	loop := square(4)
	p, err := f.PlaceSeam(0, 0, loop, 0.4, false, geom.Point2{})
	require.NoError(t, err)
	assert.Greater(t, p.Y, 1.0) // rear strategy should favor the max-Y side of the loop
}

func TestPlaceSeamOutOfRangeIndicesError(t *testing.T) {
	f, err := Init([]Object{oneLayerObject(StrategyNearest)}, DefaultParams(), nil)
	require.NoError(t, err)

	_, err = f.PlaceSeam(5, 0, square(4), 0.4, false, geom.Point2{})
	assert.Error(t, err)

	_, err = f.PlaceSeam(0, 99, square(4), 0.4, false, geom.Point2{})
	assert.Error(t, err)
}

func TestPlaceSeamAlignedReturnsOnePerLayer(t *testing.T) {
	f, err := Init([]Object{oneLayerObject(StrategyAligned)}, DefaultParams(), nil)
	require.NoError(t, err)

	p0, err := f.PlaceSeam(0, 0, square(4), 0.4, false, geom.Point2{})
	require.NoError(t, err)
	p1, err := f.PlaceSeam(0, 1, square(4), 0.4, false, geom.Point2{})
	require.NoError(t, err)

	box := geom.BBoxOf(square(4))
	for _, p := range []geom.Point2{p0, p1} {
		assert.GreaterOrEqual(t, p.X, box.Min.X-1e-6)
		assert.LessOrEqual(t, p.X, box.Max.X+1e-6)
	}
}

func TestFinalizeSeamPositionSkipsStaggerForOuterPerimeter(t *testing.T) {
	loop := square(4)
	choice := seam.Choice{Position: geom.Point2{X: 2, Y: 0}}
	p := finalizeSeamPosition(nil, choice, loop, 0.4, false, true)
	assert.InDelta(t, 0, p.Y, 1e-9)
}
