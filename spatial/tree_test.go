package spatial

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquareTriangles(z float64) []Triangle {
	return []Triangle{
		{A: geom.Point3{X: 0, Y: 0, Z: z}, B: geom.Point3{X: 1, Y: 0, Z: z}, C: geom.Point3{X: 1, Y: 1, Z: z}},
		{A: geom.Point3{X: 0, Y: 0, Z: z}, B: geom.Point3{X: 1, Y: 1, Z: z}, C: geom.Point3{X: 0, Y: 1, Z: z}},
	}
}

func TestIntersectRayFirstHit(t *testing.T) {
	tree := Build(unitSquareTriangles(1))
	hit, ok := tree.IntersectRayFirstHit(geom.Point3{X: 0.25, Y: 0.25, Z: 0}, geom.Point3{X: 0, Y: 0, Z: 1}, 10)
	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.T, 1e-9)
}

func TestIntersectRayMisses(t *testing.T) {
	tree := Build(unitSquareTriangles(1))
	_, ok := tree.IntersectRayFirstHit(geom.Point3{X: 5, Y: 5, Z: 0}, geom.Point3{X: 0, Y: 0, Z: 1}, 10)
	assert.False(t, ok)
}

func TestIntersectRayAllHitsOrdered(t *testing.T) {
	tris := append(unitSquareTriangles(1), unitSquareTriangles(2)...)
	tree := Build(tris)
	hits := tree.IntersectRayAllHits(geom.Point3{X: 0.25, Y: 0.25, Z: 0}, geom.Point3{X: 0, Y: 0, Z: 1}, 10)
	require.Len(t, hits, 2)
	assert.Less(t, hits[0].T, hits[1].T)
}

func TestIsAnyTriangleInRadius(t *testing.T) {
	tree := Build(unitSquareTriangles(0))
	assert.True(t, tree.IsAnyTriangleInRadius(geom.Point3{X: 0.5, Y: 0.5, Z: 0}, 0.01))
	assert.False(t, tree.IsAnyTriangleInRadius(geom.Point3{X: 50, Y: 50, Z: 50}, 0.01))
}
