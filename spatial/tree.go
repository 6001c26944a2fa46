// Package spatial wraps github.com/dhconnelly/rtreego as the bounding-volume
// tree over triangle sets used by the visibility field's occlusion query and
// the painting field's enforcer/blocker radius queries. It plays the role of
// the original's AABBTreeIndirect: a tree over triangle bounding boxes, with
// ray-triangle and point-radius tests performed on the narrow candidate set
// the tree returns.
package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lamina3d/seamcore/geom"
)

// Triangle is one triangle of a merged triangle set, carrying the source
// volume's sign (positive model material, or a negative-volume cavity) so
// callers can implement the even-odd negative-volume rule.
type Triangle struct {
	A, B, C  geom.Point3
	Negative bool
}

// Normal returns the triangle's (unnormalized winding) normal.
func (t Triangle) Normal() geom.Point3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// boundedTriangle adapts Triangle to rtreego.Spatial.
type boundedTriangle struct {
	Triangle
	index int
	rect  *rtreego.Rect
}

func (b *boundedTriangle) Bounds() *rtreego.Rect { return b.rect }

func triangleRect(t Triangle) *rtreego.Rect {
	min := geom.Point3{
		X: math.Min(t.A.X, math.Min(t.B.X, t.C.X)),
		Y: math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)),
		Z: math.Min(t.A.Z, math.Min(t.B.Z, t.C.Z)),
	}
	max := geom.Point3{
		X: math.Max(t.A.X, math.Max(t.B.X, t.C.X)),
		Y: math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)),
		Z: math.Max(t.A.Z, math.Max(t.B.Z, t.C.Z)),
	}
	const eps = 1e-9
	lengths := []float64{max.X - min.X + eps, max.Y - min.Y + eps, max.Z - min.Z + eps}
	rect, err := rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, lengths)
	if err != nil {
		// A degenerate (zero-volume) triangle still needs a valid rect;
		// widen it minimally rather than propagating a construction error
		// for a condition with no caller-visible consequence.
		rect, _ = rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, []float64{eps, eps, eps})
	}
	return rect
}

// Tree is an R-tree over a triangle set.
type Tree struct {
	rt        *rtreego.Rtree
	Triangles []Triangle
}

// Build constructs a Tree over triangles.
func Build(triangles []Triangle) *Tree {
	rt := rtreego.NewTree(3, 4, 16)
	for i, tr := range triangles {
		rt.Insert(&boundedTriangle{Triangle: tr, index: i, rect: triangleRect(tr)})
	}
	return &Tree{rt: rt, Triangles: triangles}
}

// Hit is one ray-triangle intersection.
type Hit struct {
	TriangleIndex int
	T             float64 // distance along the ray, in units of |dir|.
	Triangle      Triangle
}

func (t *Tree) candidatesAlong(origin, dir geom.Point3, maxDist float64) []Triangle {
	end := origin.Add(dir.Scale(maxDist))
	min := geom.Point3{X: math.Min(origin.X, end.X), Y: math.Min(origin.Y, end.Y), Z: math.Min(origin.Z, end.Z)}
	max := geom.Point3{X: math.Max(origin.X, end.X), Y: math.Max(origin.Y, end.Y), Z: math.Max(origin.Z, end.Z)}
	const pad = 1e-6
	lengths := []float64{max.X - min.X + pad, max.Y - min.Y + pad, max.Z - min.Z + pad}
	rect, err := rtreego.NewRect(rtreego.Point{min.X - pad/2, min.Y - pad/2, min.Z - pad/2}, lengths)
	if err != nil {
		return nil
	}
	results := t.rt.SearchIntersect(rect)
	out := make([]Triangle, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*boundedTriangle).Triangle)
	}
	return out
}

// rayTriangle performs a Moeller-Trumbore intersection test, returning the
// ray parameter t (origin + t*dir) and whether the ray hits the triangle
// within [epsilon, maxDist].
func rayTriangle(origin, dir geom.Point3, tri Triangle, maxDist float64) (float64, bool) {
	const epsilon = 1e-9
	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}
	f := 1 / a
	s := origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := f * edge2.Dot(q)
	if t <= epsilon || t > maxDist {
		return 0, false
	}
	return t, true
}

// IntersectRayFirstHit returns the nearest triangle the ray hits, if any.
func (t *Tree) IntersectRayFirstHit(origin, dir geom.Point3, maxDist float64) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := false
	for i, tri := range t.candidatesAlong(origin, dir, maxDist) {
		if d, ok := rayTriangle(origin, dir, tri, maxDist); ok && d < best.T {
			best = Hit{TriangleIndex: i, T: d, Triangle: tri}
			found = true
		}
	}
	return best, found
}

// IntersectRayAllHits returns every triangle the ray hits, ordered nearest
// to furthest.
func (t *Tree) IntersectRayAllHits(origin, dir geom.Point3, maxDist float64) []Hit {
	cands := t.candidatesAlong(origin, dir, maxDist)
	var hits []Hit
	for i, tri := range cands {
		if d, ok := rayTriangle(origin, dir, tri, maxDist); ok {
			hits = append(hits, Hit{TriangleIndex: i, T: d, Triangle: tri})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j-1].T > hits[j].T; j-- {
			hits[j-1], hits[j] = hits[j], hits[j-1]
		}
	}
	return hits
}

// IsAnyTriangleInRadius reports whether any triangle (its vertices, edges or
// interior) comes within radius of point (grounded on AABBTreeIndirect::is_any_triangle_in_radius,
// used by the painting field's enforced/blocked queries).
func (t *Tree) IsAnyTriangleInRadius(point geom.Point3, radius float64) bool {
	pad := radius
	rect, err := rtreego.NewRect(
		rtreego.Point{point.X - pad, point.Y - pad, point.Z - pad},
		[]float64{2 * pad, 2 * pad, 2 * pad},
	)
	if err != nil {
		return false
	}
	r2 := radius * radius
	for _, r := range t.rt.SearchIntersect(rect) {
		tri := r.(*boundedTriangle).Triangle
		if sqrDist3(point, tri.A) <= r2 || sqrDist3(point, tri.B) <= r2 || sqrDist3(point, tri.C) <= r2 {
			return true
		}
		if distPointTriangleSqr(point, tri) <= r2 {
			return true
		}
	}
	return false
}

func sqrDist3(a, b geom.Point3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// distPointTriangleSqr returns the squared distance from p to the closest
// point on triangle tri (including its interior), via barycentric clamping.
func distPointTriangleSqr(p geom.Point3, tri Triangle) float64 {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	ap := p.Sub(tri.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return sqrDist3(p, tri.A)
	}
	bp := p.Sub(tri.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return sqrDist3(p, tri.B)
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return sqrDist3(p, tri.A.Add(ab.Scale(v)))
	}
	cp := p.Sub(tri.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return sqrDist3(p, tri.C)
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return sqrDist3(p, tri.A.Add(ac.Scale(w)))
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return sqrDist3(p, tri.B.Add(tri.C.Sub(tri.B).Scale(w)))
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	closest := tri.A.Add(ab.Scale(v)).Add(ac.Scale(w))
	return sqrDist3(p, closest)
}
