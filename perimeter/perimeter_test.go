package perimeter

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() []geom.Point2 {
	return []geom.Point2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
}

func defaultParams() Params {
	return Params{
		EmbeddingThreshold:    100,
		OverhangThreshold:     1.0, // radians, high so ordinary points never qualify
		ConvexThreshold:       0.2,
		ConcaveThreshold:      0.2,
		SimplificationEpsilon: 1e-6,
		SmoothAngleArmLength:  1.0,
		SharpAngleArmLength:   0.2,
	}
}

func TestBuildDegenerateOnShortPolygon(t *testing.T) {
	p := Build(Input{Polygon: []geom.Point2{{X: 1, Y: 2}}}, LayerInfo{}, defaultParams())
	require.True(t, p.IsDegenerate)
	assert.Equal(t, geom.Point2{X: 1, Y: 2}, p.Positions[0])
	assert.NotNil(t, p.Tree(Common, ClassCommon))
}

func TestBuildCCWSquareIsNotHole(t *testing.T) {
	p := Build(Input{Polygon: unitSquare()}, LayerInfo{}, defaultParams())
	require.False(t, p.IsDegenerate)
	assert.False(t, p.IsHole)
	assert.Equal(t, 4, p.N())
	for _, at := range p.AngleTypes {
		assert.Equal(t, Convex, at)
	}
}

func TestBuildClockwisePolygonIsHole(t *testing.T) {
	cw := []geom.Point2{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}
	p := Build(Input{Polygon: cw}, LayerInfo{}, defaultParams())
	assert.True(t, p.IsHole)
}

func TestWholeLoopOverhangMarksEveryVertex(t *testing.T) {
	p := Build(Input{
		Polygon:         unitSquare(),
		OverhangRegions: []OverhangRegion{{WholeLoop: true}},
	}, LayerInfo{}, defaultParams())
	for _, c := range p.PointClassifications {
		assert.Equal(t, Overhang, c)
	}
}

func TestPointValueTable(t *testing.T) {
	assert.Equal(t, 9, PointValue(Enforcer, Embedded))
	assert.Equal(t, 1, PointValue(Blocker, Overhang))
	assert.Greater(t, PointValue(Enforcer, Overhang), PointValue(Blocker, Embedded))
}

func TestCreateParallelPreservesShape(t *testing.T) {
	layers := []LayerInput{
		{Layer: LayerInfo{LayerIndex: 0}, Loops: []Input{{Polygon: unitSquare()}}},
		{Layer: LayerInfo{LayerIndex: 1}, Loops: []Input{{Polygon: unitSquare()}, {Polygon: unitSquare()}}},
	}
	out, err := Create(layers, defaultParams(), func() error { return nil })
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 1)
	assert.Len(t, out[1], 2)
	for _, layer := range out {
		for _, p := range layer {
			assert.NotNil(t, p)
		}
	}
}

func TestCreatePropagatesCancellation(t *testing.T) {
	cancel := assertErr{"stop"}
	layers := []LayerInput{{Layer: LayerInfo{}, Loops: []Input{{Polygon: unitSquare()}}}}
	_, err := Create(layers, defaultParams(), func() error { return cancel })
	assert.Equal(t, cancel, err)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
