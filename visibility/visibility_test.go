package visibility

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeTriangles() []spatial.Triangle {
	// A simple open box bottom (single quad as two triangles), enough to
	// exercise the no-negative-volumes ray-cast path without a closed mesh.
	p := func(x, y, z float64) geom.Point3 { return geom.Point3{X: x, Y: y, Z: z} }
	return []spatial.Triangle{
		{A: p(0, 0, 0), B: p(1, 0, 0), C: p(1, 1, 0)},
		{A: p(0, 0, 0), B: p(1, 1, 0), C: p(0, 1, 0)},
	}
}

func TestBuildNoNegativeVolumes(t *testing.T) {
	params := Params{RaycastingVisibilitySamplesCount: 50, FastDecimationTriangleCountTarget: 1000, SqrRaysPerSamplePoint: 2}
	v, err := Build(cubeTriangles(), nil, params, func() error { return nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	for _, val := range v.Values {
		assert.GreaterOrEqual(t, val, 0.0)
		assert.LessOrEqual(t, val, 1.0)
	}
}

func TestBuildPropagatesCancellation(t *testing.T) {
	cancel := errCanceled
	params := Params{RaycastingVisibilitySamplesCount: 10, FastDecimationTriangleCountTarget: 10, SqrRaysPerSamplePoint: 1}
	_, err := Build(cubeTriangles(), nil, params, func() error { return cancel })
	assert.Equal(t, cancel, err)
}

func TestPointVisibilityNoSamplesReturnsOne(t *testing.T) {
	v := &Visibility{}
	v.tree = nil
	assert.Equal(t, 1.0, v.PointVisibility(geom.Point3{}))
}

func TestSearchRadiusFormula(t *testing.T) {
	r := searchRadius(100, 100)
	assert.Greater(t, r, 0.0)
}

var errCanceled = assertError{"canceled"}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
