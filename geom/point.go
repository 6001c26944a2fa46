// Package geom implements the 2D/3D primitives shared by every component of
// the seam-placement core: points, bounding boxes, the cyclic bounded
// visitor used for angle lookups, edge oversampling, category-preserving
// Douglas-Peucker simplification, and the bucket-mapping scheme used to link
// ordered lists across layers.
package geom

import "math"

// Point2 is a 2D double-precision vector.
type Point2 struct {
	X, Y float64
}

// Add returns p+q.
func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Y - q.Y} }

// Scale returns p*s.
func (p Point2) Scale(s float64) Point2 { return Point2{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point2) Dot(q Point2) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2D cross product (z-component) of p and q.
func (p Point2) Cross(q Point2) float64 { return p.X*q.Y - p.Y*q.X }

// Norm returns the Euclidean length of p.
func (p Point2) Norm() float64 { return math.Sqrt(p.Dot(p)) }

// Normalized returns p scaled to unit length; the zero vector if p is zero.
func (p Point2) Normalized() Point2 {
	n := p.Norm()
	if n == 0 {
		return Point2{}
	}
	return p.Scale(1 / n)
}

// Normal returns the left-hand perpendicular of the edge vector p, unnormalized.
func Normal(edge Point2) Point2 { return Point2{-edge.Y, edge.X} }

// Distance returns the Euclidean distance between p and q.
func (p Point2) Distance(q Point2) float64 { return p.Sub(q).Norm() }

// Point3 is a 3D double-precision vector.
type Point3 struct {
	X, Y, Z float64
}

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p-q.
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p*s.
func (p Point3) Scale(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }

// Cross returns the 3D cross product of p and q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Norm returns the Euclidean length of p.
func (p Point3) Norm() float64 { return math.Sqrt(p.Dot(p)) }

// Normalized returns p scaled to unit length; the zero vector if p is zero.
func (p Point3) Normalized() Point3 {
	n := p.Norm()
	if n == 0 {
		return Point3{}
	}
	return p.Scale(1 / n)
}

// Distance returns the Euclidean distance between p and q.
func (p Point3) Distance(q Point3) float64 { return p.Sub(q).Norm() }

// To3 lifts p to 3D at the given z (slice_z).
func (p Point2) To3(z float64) Point3 { return Point3{p.X, p.Y, z} }

// BBox2 is an axis-aligned 2D bounding box. An empty box has Min.X > Max.X.
type BBox2 struct {
	Min, Max Point2
}

// EmptyBBox2 returns an empty bounding box, ready for Extend calls.
func EmptyBBox2() BBox2 {
	return BBox2{
		Min: Point2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Empty reports whether the box has never been extended.
func (b BBox2) Empty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Extend grows b to include p, returning the new box.
func (b BBox2) Extend(p Point2) BBox2 {
	if b.Empty() {
		return BBox2{Min: p, Max: p}
	}
	return BBox2{
		Min: Point2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// BBoxOf returns the bounding box of the given points.
func BBoxOf(points []Point2) BBox2 {
	b := EmptyBBox2()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Center returns the midpoint of the box.
func (b BBox2) Center() Point2 {
	return Point2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Distance returns the distance between two boxes (0 if they overlap).
func (b BBox2) Distance(o BBox2) float64 {
	dx := math.Max(0, math.Max(b.Min.X-o.Max.X, o.Min.X-b.Max.X))
	dy := math.Max(0, math.Max(b.Min.Y-o.Max.Y, o.Min.Y-b.Max.Y))
	return math.Sqrt(dx*dx + dy*dy)
}

// PickClosestBoundingBox returns the index into choices whose box is nearest
// to target, and that distance. Grounded on SeamGeometry.cpp's
// pick_closest_bounding_box/bounding_box_distance. If choices is empty it
// returns index 0 and a distance of +Inf, so callers check for an empty list
// themselves before using the index (a layer with no perimeters has nothing
// to pick from).
func PickClosestBoundingBox(target BBox2, choices []BBox2) (index int, distance float64) {
	best := math.Inf(1)
	bestIdx := 0
	for i, c := range choices {
		d := target.Distance(c)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	return bestIdx, best
}
