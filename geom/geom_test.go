package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxDistance(t *testing.T) {
	a := BBox2{Min: Point2{0, 0}, Max: Point2{1, 1}}
	b := BBox2{Min: Point2{2, 0}, Max: Point2{3, 1}}
	assert.Equal(t, 1.0, a.Distance(b))

	c := BBox2{Min: Point2{0.5, 0.5}, Max: Point2{2, 2}}
	assert.Equal(t, 0.0, a.Distance(c))
}

func TestPickClosestBoundingBox(t *testing.T) {
	target := BBox2{Min: Point2{0, 0}, Max: Point2{1, 1}}
	choices := []BBox2{
		{Min: Point2{10, 10}, Max: Point2{11, 11}},
		{Min: Point2{1.5, 0}, Max: Point2{2.5, 1}},
	}
	idx, dist := PickClosestBoundingBox(target, choices)
	require.Equal(t, 1, idx)
	assert.InDelta(t, 0.5, dist, 1e-9)
}

func TestOversampleEdgeShortEdgeNoPoints(t *testing.T) {
	p, q := Point2{0, 0}, Point2{1, 0}
	assert.Nil(t, OversampleEdge(p, q, 10))
}

func TestOversampleEdgeInteriorPoints(t *testing.T) {
	p, q := Point2{0, 0}, Point2{3, 0}
	pts := OversampleEdge(p, q, 1)
	require.Len(t, pts, 2)
	assert.InDelta(t, 1.0, pts[0].X, 1e-9)
	assert.InDelta(t, 2.0, pts[1].X, 1e-9)
}

func TestVisitForwardWraps(t *testing.T) {
	var visited []int
	VisitForward(3, 4, func(i int) bool {
		visited = append(visited, i)
		return len(visited) == 5
	})
	assert.Equal(t, []int{0, 1, 2, 3, 0}, visited)
}

func TestSimplifyRunsKeepsRunBoundaries(t *testing.T) {
	// A nearly-straight run of 5 points, category constant, should collapse
	// to endpoints; a lone different-category point must survive untouched.
	positions := []Point2{
		{0, 0}, {1, 0.0001}, {2, 0}, {3, 0.0001}, {4, 0}, {5, 5},
	}
	category := []int{0, 0, 0, 0, 0, 1}
	kept := SimplifyRuns(positions, category, 0.01)
	assert.Contains(t, kept, 0)
	assert.Contains(t, kept, 4)
	assert.Contains(t, kept, 5)
	assert.Less(t, len(kept), len(positions))
}

func TestGetVertexAngleConvexSquare(t *testing.T) {
	// CCW unit square; every corner is a 90-degree convex turn.
	square := []Point2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	angle, ok := GetVertexAngle(square, 1, 0.5)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, angle, 1e-6)
}

func TestGetOverhangAngle(t *testing.T) {
	assert.Equal(t, 0.0, GetOverhangAngle(0, 0.2))
	assert.Equal(t, 0.0, GetOverhangAngle(-1, 0.2))
	assert.Greater(t, GetOverhangAngle(1, 0.2), 0.0)
}

func TestGetMappingLinksAndFreshIDs(t *testing.T) {
	sizes := []int{2, 2}
	op := func(l, i int) (MappingLink, bool) {
		if l != 0 {
			return MappingLink{}, false
		}
		if i == 0 {
			return MappingLink{Target: 0, Weight: 1}, true
		}
		// Item 1 also proposes target 0 but with lower weight, so it loses
		// and must receive a fresh id; target 1 on layer 1 receives no
		// proposal and must also receive a fresh id.
		return MappingLink{Target: 0, Weight: 0.5}, true
	}
	mapping, count := GetMapping(sizes, op)
	assert.Equal(t, mapping[0][0], mapping[1][0])
	assert.NotEqual(t, mapping[0][1], mapping[1][1])
	assert.Equal(t, 3, count)
}
