package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearest2D(t *testing.T) {
	points := [][]float64{{0, 0}, {5, 5}, {1, 1}, {9, 9}, {1, 0}}
	coord := func(i, dim int) float64 { return points[i][dim] }
	tree := New(2, []int{0, 1, 2, 3, 4}, coord)

	idx, ok := tree.FindNearest([]float64{1.1, 0.1})
	require.True(t, ok)
	assert.Equal(t, 4, idx)
}

func TestRangeQuery(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 1}, {0, 2}, {10, 10}}
	coord := func(i, dim int) float64 { return points[i][dim] }
	tree := New(2, []int{0, 1, 2, 3}, coord)

	got := tree.RangeQuery([]float64{0, 0}, 1.5)
	assert.ElementsMatch(t, []int{0, 1}, got)
}

func TestEmptyTree(t *testing.T) {
	tree := New(2, nil, func(i, d int) float64 { return 0 })
	assert.True(t, tree.Empty())
	_, ok := tree.FindNearest([]float64{0, 0})
	assert.False(t, ok)
	assert.Nil(t, tree.RangeQuery([]float64{0, 0}, 1))
}

func TestFindNearest3D(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 1, 1}, {-1, -1, -1}}
	coord := func(i, dim int) float64 { return points[i][dim] }
	tree := New(3, []int{0, 1, 2}, coord)
	idx, ok := tree.FindNearest([]float64{0.9, 0.9, 0.9})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
