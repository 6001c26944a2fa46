// Package seam implements the four seam-candidate choosers (Nearest,
// LeastVisible, Random, Rearest) and the outer dispatcher that tries
// (type, classification) categories in priority order. Grounded on
// SeamChoice.{hpp,cpp}, SeamRear.{hpp,cpp}, SeamRandom.{hpp,cpp}.
package seam

import (
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
)

// Choice is the result of a successful pick: a position on the perimeter,
// identified either by a single vertex (previousIndex == nextIndex) or by
// its location on the edge between two consecutive vertices. Grounded on
// spec.md §3's SeamChoice.
type Choice struct {
	PreviousIndex, NextIndex int
	Position                 geom.Point2
}

// Chooser is the common contract every seam-candidate policy implements.
// Grounded on spec.md §4.6: "pick(perimeter, allowed_type,
// allowed_classification) -> Option<SeamChoice>".
type Chooser interface {
	Pick(p *perimeter.Perimeter, t perimeter.PointType, c perimeter.PointClassification) (Choice, bool)
}

// typeOrder is the outer dispatcher's type scan order.
var typeOrder = []perimeter.PointType{perimeter.Enforcer, perimeter.Common, perimeter.Blocker}

// classOrder is the outer dispatcher's classification scan order within a
// type.
var classOrder = []perimeter.PointClassification{perimeter.Embedded, perimeter.ClassCommon, perimeter.Overhang}

// typeIsEmpty reports whether p has no vertex of type t at all (across every
// classification).
func typeIsEmpty(p *perimeter.Perimeter, t perimeter.PointType) bool {
	for _, pt := range p.PointTypes {
		if pt == t {
			return false
		}
	}
	return true
}

// ChooseSeamPoint implements the outer choose_seam_point contract from
// spec.md §4.6: scan types {Enforcer, Common, Blocker} in order; for each
// non-empty type, scan classifications {Embedded, Common, Overhang} in
// order and return the first successful pick. If a type has any points at
// all but no classification under it can be picked, stop entirely and
// report failure — never fall through to a weaker type (the
// "empty-category-only fall-through" rule recorded in DESIGN.md's
// open-question decisions). Callers fall back to ChooseDegenerateSeamPoint
// whenever this reports failure.
func ChooseSeamPoint(chooser Chooser, p *perimeter.Perimeter) (Choice, bool) {
	for _, t := range typeOrder {
		if typeIsEmpty(p, t) {
			continue
		}
		for _, c := range classOrder {
			if choice, ok := chooser.Pick(p, t, c); ok {
				return choice, true
			}
		}
		return Choice{}, false
	}
	return Choice{}, false
}

// ChooseDegenerateSeamPoint is the last-resort fallback from spec.md §4.6:
// the perimeter's first vertex, used when every type is empty or the
// non-empty type's categories all failed to pick.
func ChooseDegenerateSeamPoint(p *perimeter.Perimeter) Choice {
	return Choice{PreviousIndex: 0, NextIndex: 0, Position: p.Positions[0]}
}
