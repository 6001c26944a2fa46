package visibility

import (
	"math"

	"github.com/grailbio/base/traverse"
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/spatial"
)

// hemisphereDirections returns a fixed k*k stratified grid of cosine-
// weighted directions over the +Z hemisphere in local frame coordinates.
// Grounded on ModelVisibility.cpp's sample_hemisphere_uniform: the grid is
// built once and reused for every sample, which is what keeps the ray cast
// deterministic and independent of parallel reduction order (spec.md §9).
func hemisphereDirections(k int) []geom.Point3 {
	if k <= 0 {
		return nil
	}
	out := make([]geom.Point3, 0, k*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			u := (float64(i) + 0.5) / float64(k)
			v := (float64(j) + 0.5) / float64(k)
			r := math.Sqrt(u)
			theta := 2 * math.Pi * v
			x := r * math.Cos(theta)
			y := r * math.Sin(theta)
			z := math.Sqrt(math.Max(0, 1-u))
			out = append(out, geom.Point3{X: x, Y: y, Z: z})
		}
	}
	return out
}

// localFrame builds a stable orthonormal frame with +Z aligned to normal,
// grounded on ModelVisibility.cpp's Frame::set_from_z: seed the tangent with
// the world X axis, or the Y axis when |normal.X| > 0.9, then cross.
func localFrame(normal geom.Point3) (tangent, bitangent, z geom.Point3) {
	z = normal.Normalized()
	seed := geom.Point3{X: 1, Y: 0, Z: 0}
	if math.Abs(z.X) > 0.9 {
		seed = geom.Point3{X: 0, Y: 1, Z: 0}
	}
	tangent = seed.Cross(z).Normalized()
	bitangent = z.Cross(tangent)
	return tangent, bitangent, z
}

func toWorld(tangent, bitangent, z, local geom.Point3) geom.Point3 {
	return tangent.Scale(local.X).Add(bitangent.Scale(local.Y)).Add(z.Scale(local.Z))
}

// raycastVisibility implements ModelVisibility.cpp's raycast_visibility.
func raycastVisibility(
	tree *spatial.Tree,
	samples Samples,
	negStart int,
	params Params,
	throwIfCanceled func() error,
) ([]float64, error) {
	n := len(samples.Positions)
	values := make([]float64, n)
	for i := range values {
		values[i] = 1.0
	}
	if n == 0 {
		return values, nil
	}

	dirs := hemisphereDirections(params.SqrRaysPerSamplePoint)
	k2 := float64(len(dirs))
	if k2 == 0 {
		return values, nil
	}
	hasNegative := negStart < len(tree.Triangles)

	err := traverse.Each(n, func(i int) error {
		if i%4096 == 0 {
			if err := throwIfCanceled(); err != nil {
				return err
			}
		}
		p := samples.Positions[i]
		normal := samples.Normals[i]
		isNegativeSample := samples.TriangleIndices[i] >= negStart && hasNegative

		tangent, bitangent, z := localFrame(normal)

		var occludedCount float64
		for _, d := range dirs {
			dir := toWorld(tangent, bitangent, z, d)

			origin := p.Add(normal.Scale(0.01))
			rayDir := dir
			if isNegativeSample {
				origin = p.Sub(normal.Scale(0.01))
				rayDir = dir.Scale(-1)
			}

			if !hasNegative {
				hit, ok := tree.IntersectRayFirstHit(origin, rayDir, 1e6)
				if ok && hit.Triangle.Normal().Dot(rayDir) <= 0 {
					occludedCount++
				}
				continue
			}

			hits := tree.IntersectRayAllHits(origin, rayDir, 1e6)
			counter := 0
			for h := len(hits) - 1; h >= 0; h-- {
				sign := sgn(hits[h].Triangle.Normal().Dot(rayDir))
				if hits[h].Triangle.Negative {
					counter -= sign
				} else {
					counter += sign
				}
			}
			if counter != 0 {
				occludedCount++
			}
		}
		values[i] = 1.0 - occludedCount/k2
		if values[i] < 0 {
			values[i] = 0
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func sgn(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
