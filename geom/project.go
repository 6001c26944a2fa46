package geom

// BoundedPolygon pairs a closed polygon with its precomputed bounding box,
// the shape consumed by the shell grouper and the seam choosers' bbox
// picks. Grounded on SeamGeometry.hpp's BoundedPolygon.
type BoundedPolygon struct {
	Positions []Point2
	Box       BBox2
}

// NewBoundedPolygon computes Box from Positions.
func NewBoundedPolygon(positions []Point2) BoundedPolygon {
	return BoundedPolygon{Positions: positions, Box: BBoxOf(positions)}
}

// ProjectToGeometry picks, for one extrusion loop, the boundary polygon
// (island contour or hole) whose bounding box is closest to the loop's own
// bounding box; if that distance exceeds maxDistance, it falls back to the
// loop itself expanded outward by width/2. Grounded on SeamGeometry.cpp's
// project_to_geometry. expand must perform the outward offset (supplied by
// package polyop, to avoid an import cycle); it returns the original
// polygon unchanged if the offset is geometrically impossible (§7:
// geometric impossibility degrades to the untransformed input).
func ProjectToGeometry(
	loop []Point2,
	width float64,
	boundaries []BoundedPolygon,
	maxDistance float64,
	expand func(polygon []Point2, delta float64) []Point2,
) BoundedPolygon {
	loopBox := BBoxOf(loop)
	if len(boundaries) > 0 {
		boxes := make([]BBox2, len(boundaries))
		for i, b := range boundaries {
			boxes[i] = b.Box
		}
		idx, dist := PickClosestBoundingBox(loopBox, boxes)
		if dist <= maxDistance {
			return boundaries[idx]
		}
	}
	expanded := expand(loop, width/2)
	if len(expanded) == 0 {
		expanded = loop
	}
	return NewBoundedPolygon(expanded)
}
