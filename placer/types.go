package placer

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/spatial"
)

// VolumeType classifies a model volume's role. Grounded on spec.md §6.
type VolumeType int

const (
	ModelPart VolumeType = iota
	NegativeVolume
	SeamEnforcer
	SeamBlocker
)

// Volume is one model volume, already transformed into object space by the
// caller (per-volume transform, then object transform, both baked in —
// spec.md §6 treats mesh I/O and transform application as an external
// collaborator).
type Volume struct {
	Type               VolumeType
	Triangles          []spatial.Triangle
	EnforcerTriangles  []spatial.Triangle
	BlockerTriangles   []spatial.Triangle
}

// Island is one closed printed region on a layer: its external-perimeter
// extrusion loop(s), its 2D boundary (contour plus holes) used for
// overhang/embedding distance queries and as a ProjectToGeometry
// candidate, the overhang regions the slicer detected against the layer
// below, and the external-perimeter extrusion width.
type Island struct {
	Loops           [][]geom.Point2
	Contour         []geom.Point2
	Holes           [][]geom.Point2
	OverhangRegions []perimeter.OverhangRegion
	Width           float64
}

// Layer is one sliced Z height's worth of islands.
type Layer struct {
	SliceZ  float64
	Height  float64
	Islands []Island
}

// Object is one sliceable model: its volumes (for Painting/Visibility) and
// its sliced layers (for Perimeters/Shells/seam choice).
type Object struct {
	Volumes []Volume
	Layers  []Layer
	Strategy Strategy
}
