// Package perimeter builds a Perimeter — one layer's closed 2D loop after
// elephant-foot compensation, overhang/embedding/painting classification,
// painted-region oversampling, redundancy removal, and per-vertex angle
// classification. Grounded on SeamPerimeters.{hpp,cpp}.
package perimeter

import (
	"github.com/lamina3d/seamcore/geom"
	kdt "github.com/lamina3d/seamcore/internal/kdtree"
)

// PointType classifies a vertex by painted-region membership.
type PointType int

const (
	Common PointType = iota
	Enforcer
	Blocker
)

// PointClassification classifies a vertex by overhang/embedding.
type PointClassification int

const (
	ClassCommon PointClassification = iota
	Overhang
	Embedded
)

// AngleType classifies a vertex's local curvature.
type AngleType int

const (
	Smooth AngleType = iota
	Convex
	Concave
)

// Params controls every threshold and arm length used to build a
// Perimeter. Grounded on SeamPerimeters.hpp's PerimeterParams.
type Params struct {
	ElephantFootCompensation float64
	OversamplingMaxDistance  float64
	EmbeddingThreshold       float64
	OverhangThreshold        float64
	ConvexThreshold          float64
	ConcaveThreshold         float64
	PaintingRadius           float64
	SimplificationEpsilon    float64
	SmoothAngleArmLength     float64
	SharpAngleArmLength      float64
}

// treeKey packs (PointType, PointClassification) into one comparable key
// for the nine per-category k-d trees.
type treeKey struct {
	t PointType
	c PointClassification
}

// Perimeter is one closed, ordered, processed loop. Grounded on
// SeamPerimeters.hpp's Perimeter.
type Perimeter struct {
	SliceZ      float64
	LayerIndex  int
	IsHole      bool
	IsDegenerate bool

	Positions           []geom.Point2
	Angles              []float64
	PointTypes          []PointType
	PointClassifications []PointClassification
	AngleTypes          []AngleType

	trees map[treeKey]*kdt.Tree
}

// N returns the vertex count.
func (p *Perimeter) N() int { return len(p.Positions) }

// Tree returns the k-d tree over vertices matching (t, c), or nil if none
// match (spec.md §3: "present only if non-empty").
func (p *Perimeter) Tree(t PointType, c PointClassification) *kdt.Tree {
	return p.trees[treeKey{t, c}]
}

func (p *Perimeter) buildTrees() {
	p.trees = make(map[treeKey]*kdt.Tree)
	buckets := make(map[treeKey][]int)
	for i := 0; i < p.N(); i++ {
		key := treeKey{p.PointTypes[i], p.PointClassifications[i]}
		buckets[key] = append(buckets[key], i)
	}
	for key, indices := range buckets {
		p.trees[key] = kdt.New(2, indices, func(i, dim int) float64 {
			if dim == 0 {
				return p.Positions[i].X
			}
			return p.Positions[i].Y
		})
	}
}

// pointValueTable is the literal priority table from SeamPerimeters.cpp's
// get_point_value, pinned in SPEC_FULL.md §4.6.
var pointValueTable = map[PointType]map[PointClassification]int{
	Enforcer: {Embedded: 9, ClassCommon: 8, Overhang: 7},
	Common:   {Embedded: 6, ClassCommon: 5, Overhang: 4},
	Blocker:  {Embedded: 3, ClassCommon: 2, Overhang: 1},
}

// PointValue implements SeamPerimeters.cpp's get_point_value priority
// table, used by the Nearest chooser to compare candidate seam options.
func PointValue(t PointType, c PointClassification) int {
	return pointValueTable[t][c]
}

// CreateDegenerate builds a single-vertex Perimeter for a polygon with
// fewer than 3 points, per spec.md §4.4 step 1. point is the sole vertex;
// Build passes the input's single point, the bounding-box centre of a
// longer input, or the origin for an empty one.
func CreateDegenerate(point geom.Point2, sliceZ float64, layerIndex int) *Perimeter {
	p := &Perimeter{
		SliceZ:                sliceZ,
		LayerIndex:            layerIndex,
		IsDegenerate:          true,
		Positions:             []geom.Point2{point},
		Angles:                []float64{0},
		PointTypes:            []PointType{Common},
		PointClassifications:  []PointClassification{ClassCommon},
		AngleTypes:            []AngleType{Smooth},
	}
	p.buildTrees()
	return p
}
