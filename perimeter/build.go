package perimeter

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/painting"
	"github.com/lamina3d/seamcore/polyop"
)

// LayerInfo is the per-layer context every Perimeter in that layer is built
// against: its Z height, the height of one layer (for the overhang-angle
// formula), and its index (layer 0 gets elephant-foot compensation).
// Grounded on SeamPerimeters.hpp's LayerInfo.
type LayerInfo struct {
	SliceZ      float64
	LayerHeight float64
	LayerIndex  int
}

// Input bundles everything Build needs for one loop: the raw polygon
// (open winding as produced by slicing — Build derives IsHole from it via
// signedArea, so callers must not pre-reorder it), the
// caller-identified overhang regions for this specific loop, and the
// previous/current layer outlines used for overhang/embedding distance
// queries (an empty Boundary is a legitimate "no reference surface",
// e.g. layer 0 has no previous outline).
type Input struct {
	Polygon          []geom.Point2
	OverhangRegions  []OverhangRegion
	PreviousOutline  Boundary
	CurrentOutline   Boundary
	Painting         *painting.Painting
}

// Build runs the full perimeter construction pipeline described in
// spec.md §4.4 / SPEC_FULL.md §4.4: degenerate check, elephant-foot
// expansion, overhang projection and threshold sweep, embedding
// classification, painted oversampling, per-vertex painting lookup,
// redundancy removal, angle computation, and k-d tree construction.
func Build(in Input, layer LayerInfo, params Params) *Perimeter {
	polygon := in.Polygon
	if len(polygon) < 3 {
		return degenerateFrom(polygon, layer)
	}

	if layer.LayerIndex == 0 && params.ElephantFootCompensation > 0 {
		polygon = polyop.Expand(polygon, params.ElephantFootCompensation)
		if len(polygon) < 3 {
			return degenerateFrom(in.Polygon, layer)
		}
	}

	positions, classifications := applyOverhangRegions(polygon, in.OverhangRegions)
	positions, classifications = sweepOverhangThreshold(positions, classifications, in.PreviousOutline, layer.LayerHeight, params.OverhangThreshold)
	classifications = classifyEmbedding(positions, classifications, in.CurrentOutline, params.EmbeddingThreshold)

	positions, classifications = oversamplePainted(positions, classifications, layer.SliceZ, in.Painting, params.OversamplingMaxDistance)
	pointTypes := classifyPainting(positions, layer.SliceZ, in.Painting, params.PaintingRadius)

	positions, classifications, pointTypes = removeRedundant(positions, classifications, pointTypes, params.SimplificationEpsilon)

	p := &Perimeter{
		SliceZ:                layer.SliceZ,
		LayerIndex:             layer.LayerIndex,
		IsHole:                 signedArea(positions) < 0,
		Positions:              positions,
		PointClassifications:   classifications,
		PointTypes:             pointTypes,
		Angles:                 make([]float64, len(positions)),
		AngleTypes:             make([]AngleType, len(positions)),
	}
	for i := range positions {
		angle, at := angleTypeAt(positions, i, params)
		p.Angles[i] = angle
		p.AngleTypes[i] = at
	}
	p.buildTrees()
	return p
}

func degenerateFrom(polygon []geom.Point2, layer LayerInfo) *Perimeter {
	var point geom.Point2
	if len(polygon) == 1 {
		point = polygon[0]
	} else if len(polygon) > 1 {
		box := geom.BBoxOf(polygon)
		point = box.Center()
	}
	return CreateDegenerate(point, layer.SliceZ, layer.LayerIndex)
}

// applyOverhangRegions splices each region into the loop, returning the
// grown position list and a parallel classification list (ClassCommon
// everywhere a region hasn't marked Overhang).
func applyOverhangRegions(polygon []geom.Point2, regions []OverhangRegion) ([]geom.Point2, []PointClassification) {
	classifications := make([]PointClassification, len(polygon))
	for _, r := range regions {
		if r.WholeLoop {
			for i := range classifications {
				classifications[i] = Overhang
			}
		}
	}
	positions := polygon
	for _, r := range regions {
		if r.WholeLoop {
			continue
		}
		at, splice := projectArc(positions, r)
		if splice == nil {
			continue
		}
		newPositions := make([]geom.Point2, 0, len(positions)+len(splice))
		newClass := make([]PointClassification, 0, len(classifications)+len(splice))
		newPositions = append(newPositions, positions[:at+1]...)
		newClass = append(newClass, classifications[:at+1]...)
		for _, sp := range splice[1:3] {
			newPositions = append(newPositions, sp.pos)
			newClass = append(newClass, sp.class)
		}
		newPositions = append(newPositions, positions[at+1:]...)
		newClass = append(newClass, classifications[at+1:]...)
		positions, classifications = newPositions, newClass
	}
	return positions, classifications
}

// sweepOverhangThreshold marks any still-ClassCommon vertex whose exposure
// angle (relative to the previous layer's outline) exceeds
// overhangThreshold as Overhang. Grounded on SeamPerimeters.cpp's
// get_overhangs.
func sweepOverhangThreshold(positions []geom.Point2, classifications []PointClassification, prev Boundary, layerHeight, overhangThreshold float64) ([]geom.Point2, []PointClassification) {
	for i, p := range positions {
		if classifications[i] != ClassCommon {
			continue
		}
		dist := prev.OutsideDistance(p)
		if geom.GetOverhangAngle(dist, layerHeight) > overhangThreshold {
			classifications[i] = Overhang
		}
	}
	return positions, classifications
}

// classifyEmbedding marks any still-ClassCommon vertex buried at least
// embeddingThreshold deep inside the current layer's outline as Embedded.
// Grounded on SeamPerimeters.cpp's get_embedding.
func classifyEmbedding(positions []geom.Point2, classifications []PointClassification, cur Boundary, embeddingThreshold float64) []PointClassification {
	for i, p := range positions {
		if classifications[i] != ClassCommon {
			continue
		}
		if cur.EmbeddingDepth(p) >= embeddingThreshold {
			classifications[i] = Embedded
		}
	}
	return classifications
}

// oversamplePainted inserts interior points along an edge only when its
// midpoint lies within maxDistance/2 of a painted (enforcer or blocker)
// triangle — giving the painting lookup enough resolution to follow that
// region's boundary without oversampling the whole loop. Grounded on
// spec.md §4.4 step 5 / SeamPerimeters.cpp's oversampling pass.
func oversamplePainted(positions []geom.Point2, classifications []PointClassification, sliceZ float64, paint *painting.Painting, maxDistance float64) ([]geom.Point2, []PointClassification) {
	if maxDistance <= 0 {
		return positions, classifications
	}
	n := len(positions)
	newPositions := make([]geom.Point2, 0, n)
	newClass := make([]PointClassification, 0, n)
	radius := maxDistance / 2
	for i := 0; i < n; i++ {
		a, b := positions[i], positions[(i+1)%n]
		newPositions = append(newPositions, a)
		newClass = append(newClass, classifications[i])
		mid := a.Add(b).Scale(0.5).To3(sliceZ)
		if !paint.IsEnforced(mid, radius) && !paint.IsBlocked(mid, radius) {
			continue
		}
		for _, pt := range geom.OversampleEdge(a, b, maxDistance) {
			newPositions = append(newPositions, pt)
			newClass = append(newClass, classifications[i])
		}
	}
	return newPositions, newClass
}

// classifyPainting looks up each vertex against the painting field,
// blocker-before-enforcer (SPEC_FULL.md §4.4 step 6).
func classifyPainting(positions []geom.Point2, sliceZ float64, paint *painting.Painting, radius float64) []PointType {
	out := make([]PointType, len(positions))
	for i, p := range positions {
		pos3 := p.To3(sliceZ)
		switch {
		case paint.IsBlocked(pos3, radius):
			out[i] = Blocker
		case paint.IsEnforced(pos3, radius):
			out[i] = Enforcer
		default:
			out[i] = Common
		}
	}
	return out
}

// category packs (PointType, PointClassification) into the single int key
// geom.SimplifyRuns needs to avoid crossing a category boundary.
func category(t PointType, c PointClassification) int { return int(t)*3 + int(c) }

func removeRedundant(positions []geom.Point2, classifications []PointClassification, types []PointType, epsilon float64) ([]geom.Point2, []PointClassification, []PointType) {
	cats := make([]int, len(positions))
	for i := range positions {
		cats[i] = category(types[i], classifications[i])
	}
	keep := geom.SimplifyRuns(positions, cats, epsilon)
	outP := make([]geom.Point2, len(keep))
	outC := make([]PointClassification, len(keep))
	outT := make([]PointType, len(keep))
	for i, idx := range keep {
		outP[i] = positions[idx]
		outC[i] = classifications[idx]
		outT[i] = types[idx]
	}
	return outP, outC, outT
}
