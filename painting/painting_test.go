package painting

import (
	"testing"

	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/spatial"
	"github.com/stretchr/testify/assert"
)

func TestIsEnforcedAndBlockedAreIndependent(t *testing.T) {
	enforcer := spatial.Triangle{
		A: geom.Point3{X: 0, Y: 0, Z: 0}, B: geom.Point3{X: 1, Y: 0, Z: 0}, C: geom.Point3{X: 0, Y: 1, Z: 0},
	}
	blocker := spatial.Triangle{
		A: geom.Point3{X: 10, Y: 10, Z: 10}, B: geom.Point3{X: 11, Y: 10, Z: 10}, C: geom.Point3{X: 10, Y: 11, Z: 10},
	}
	p := Build([][]spatial.Triangle{{enforcer}}, [][]spatial.Triangle{{blocker}})

	assert.True(t, p.IsEnforced(geom.Point3{X: 0.1, Y: 0.1, Z: 0}, 0.05))
	assert.False(t, p.IsBlocked(geom.Point3{X: 0.1, Y: 0.1, Z: 0}, 0.05))
	assert.True(t, p.IsBlocked(geom.Point3{X: 10.1, Y: 10.1, Z: 10}, 0.05))
}

func TestEmptySetsReturnFalse(t *testing.T) {
	p := Build(nil, nil)
	assert.False(t, p.IsEnforced(geom.Point3{}, 1))
	assert.False(t, p.IsBlocked(geom.Point3{}, 1))
}
