// Package visibility implements the model-visibility field: one occlusion
// tree over the (positive + negative volume) model surface, a uniform
// surface sample, a per-sample visibility scalar in [0,1] computed by
// stratified-hemisphere ray casting, and a radius-weighted point query.
// Grounded on ModelVisibility.{hpp,cpp}.
package visibility

import (
	"math"

	"github.com/lamina3d/seamcore/geom"
	kdt "github.com/lamina3d/seamcore/internal/kdtree"
	"github.com/lamina3d/seamcore/spatial"
)

// Params controls sampling density and ray-cast resolution. Grounded on
// ModelVisibility.hpp's Visibility::Params.
type Params struct {
	RaycastingVisibilitySamplesCount int
	FastDecimationTriangleCountTarget int
	SqrRaysPerSamplePoint             int
}

// Samples is a uniformly-distributed surface sample with equal-length
// parallel arrays. Grounded on spec.md §3's TriangleSetSamples.
type Samples struct {
	TotalArea        float64
	Positions        []geom.Point3
	Normals          []geom.Point3
	TriangleIndices  []int
}

// Visibility is the constructed field: per-sample visibility scalars plus a
// 3D k-d tree for spatial lookup.
type Visibility struct {
	Samples    Samples
	Values     []float64
	tree       *kdt.Tree
	Radius     float64
}

// Build constructs a Visibility field from the merged positive-volume
// triangles (posTriangles) and negative-volume triangles (negTriangles),
// already transformed into object space by the caller. throwIfCanceled is
// invoked between major phases (decimation, sampling, AABB build, ray
// casting) and should return a non-nil error to abort construction — the
// only condition visibility.Build itself propagates (spec.md §7).
func Build(posTriangles, negTriangles []spatial.Triangle, params Params, throwIfCanceled func() error) (*Visibility, error) {
	if err := throwIfCanceled(); err != nil {
		return nil, err
	}
	pos := decimate(posTriangles, params.FastDecimationTriangleCountTarget)
	neg := decimate(negTriangles, params.FastDecimationTriangleCountTarget)
	if err := throwIfCanceled(); err != nil {
		return nil, err
	}

	negStart := len(pos)
	for i := range neg {
		neg[i].Negative = true
	}
	all := append(append([]spatial.Triangle(nil), pos...), neg...)

	samples := sampleUniform(all, params.RaycastingVisibilitySamplesCount)
	if err := throwIfCanceled(); err != nil {
		return nil, err
	}

	occlusion := spatial.Build(all)
	if err := throwIfCanceled(); err != nil {
		return nil, err
	}

	values, err := raycastVisibility(occlusion, samples, negStart, params, throwIfCanceled)
	if err != nil {
		return nil, err
	}

	tree := kdt.New(3, indexRange(len(samples.Positions)), func(i, dim int) float64 {
		switch dim {
		case 0:
			return samples.Positions[i].X
		case 1:
			return samples.Positions[i].Y
		default:
			return samples.Positions[i].Z
		}
	})

	radius := searchRadius(len(samples.Positions), samples.TotalArea)

	return &Visibility{Samples: samples, Values: values, tree: tree, Radius: radius}, nil
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// searchRadius implements ModelVisibility.cpp's radius formula:
// r = sqrt(s/(-ln(p)*density*pi)), s=4, p=0.9.
func searchRadius(sampleCount int, totalArea float64) float64 {
	if totalArea <= 0 || sampleCount == 0 {
		return 0
	}
	const s = 4.0
	const p = 0.9
	density := float64(sampleCount) / totalArea
	return math.Sqrt(s / (-math.Log(p) * density * math.Pi))
}

// triangleArea returns a triangle's area.
func triangleArea(t spatial.Triangle) float64 {
	return t.Normal().Norm() / 2
}

// sampleUniform places up to samplesCount points on the surface of
// triangles, with per-triangle density proportional to area (grounded on
// ModelVisibility.cpp's uniform surface sampling): each triangle gets its
// area share of samplesCount rounded to the nearest integer, so the total
// can fall slightly short of samplesCount. Deterministic: samples follow one
// fixed low-discrepancy (Halton) sequence continued across triangles rather
// than drawn from an RNG, so the sample set depends only on the mesh, never
// on a seed.
func sampleUniform(triangles []spatial.Triangle, samplesCount int) Samples {
	var totalArea float64
	areas := make([]float64, len(triangles))
	for i, t := range triangles {
		areas[i] = triangleArea(t)
		totalArea += areas[i]
	}
	out := Samples{TotalArea: totalArea}
	if totalArea <= 0 || samplesCount <= 0 {
		return out
	}
	assigned := 0
	for i, t := range triangles {
		n := int(math.Round(areas[i] / totalArea * float64(samplesCount)))
		for j := 0; j < n && assigned < samplesCount; j++ {
			u, v := halton(assigned, 2), halton(assigned, 3)
			if u+v > 1 {
				u, v = 1-u, 1-v
			}
			p := t.A.Add(t.B.Sub(t.A).Scale(u)).Add(t.C.Sub(t.A).Scale(v))
			out.Positions = append(out.Positions, p)
			out.Normals = append(out.Normals, t.Normal().Normalized())
			out.TriangleIndices = append(out.TriangleIndices, i)
			assigned++
		}
	}
	return out
}

// halton returns the i-th term (0-indexed) of the Halton sequence in the
// given prime base.
func halton(i, base int) float64 {
	f := 1.0
	r := 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// PointVisibility implements ModelVisibility.cpp's
// calculate_point_visibility: a radius-weighted mean over nearby samples,
// 1.0 if none are found.
func (v *Visibility) PointVisibility(p geom.Point3) float64 {
	if v.tree.Empty() || v.Radius <= 0 {
		return 1.0
	}
	nearby := v.tree.RangeQuery([]float64{p.X, p.Y, p.Z}, v.Radius)
	if len(nearby) == 0 {
		return 1.0
	}
	var weightedSum, weightTotal float64
	for _, i := range nearby {
		sp := v.Samples.Positions[i]
		sn := v.Samples.Normals[i]
		toTangent := sp.Add(sn.Scale(-sn.Dot(p.Sub(sp))))
		tangentDist := p.Distance(toTangent)
		euclideanDist := p.Distance(sp)
		weight := (v.Radius - tangentDist) + (v.Radius - euclideanDist)
		if weight < 0 {
			weight = 0
		}
		weightedSum += weight * v.Values[i]
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 1.0
	}
	return weightedSum / weightTotal
}
