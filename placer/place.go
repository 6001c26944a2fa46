package placer

import (
	stderrors "errors"

	"github.com/grailbio/base/errors"
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
)

var errIndexRange = stderrors.New("index out of range")

// PlaceSeam answers one extrusion loop's seam query: objectIdx/layerIndex
// select the precomputed (or, for Nearest, live) seam state; loop is the
// actual extrusion polyline (which may differ from the Perimeter's own
// geometry by elephant-foot compensation or offsetting); width is that
// loop's extrusion width; isInnerPerimeter marks any loop that is not the
// outermost perimeter of its island, for StaggeredInnerSeams; lastPos is
// the previous loop's placed seam, used only by the Nearest strategy.
// Grounded on SeamPlacer.cpp's Placer::place_seam.
func (f *Facade) PlaceSeam(objectIdx, layerIndex int, loop []geom.Point2, width float64, isInnerPerimeter bool, lastPos geom.Point2) (geom.Point2, error) {
	if objectIdx < 0 || objectIdx >= len(f.objects) {
		return geom.Point2{}, errors.E(errIndexRange, "placer: object index", objectIdx)
	}
	state := f.objects[objectIdx]
	if layerIndex < 0 || layerIndex >= len(state.perimeters) {
		return geom.Point2{}, errors.E(errIndexRange, "placer: layer index", layerIndex)
	}

	if state.strategy == StrategyNearest {
		p, choice, ok := f.pickNearestLive(state, layerIndex, loop, lastPos)
		if !ok {
			return loopCenter(loop), nil
		}
		return finalizeSeamPosition(p, choice, loop, width, isInnerPerimeter, f.params.StaggeredInnerSeams), nil
	}

	records := state.layerSeams[layerIndex]
	if len(records) == 0 {
		return loopCenter(loop), nil
	}
	record := pickRecordForLoop(records, loop)
	return finalizeSeamPosition(record.Perimeter, record.Choice, loop, width, isInnerPerimeter, f.params.StaggeredInnerSeams), nil
}

// pickNearestLive selects the Perimeter on this layer whose bbox is
// closest to the query loop's bbox, then runs the Nearest chooser against
// it directly — the Nearest strategy defers all chooser work to query
// time (spec.md §4.7's closing note).
func (f *Facade) pickNearestLive(state *objectState, layerIndex int, loop []geom.Point2, lastPos geom.Point2) (*perimeter.Perimeter, seam.Choice, bool) {
	candidates := state.perimeters[layerIndex]
	if len(candidates) == 0 {
		return nil, seam.Choice{}, false
	}
	loopBox := geom.BBoxOf(loop)
	boxes := make([]geom.BBox2, len(candidates))
	for i, c := range candidates {
		boxes[i] = geom.BBoxOf(c.Positions)
	}
	idx, _ := geom.PickClosestBoundingBox(loopBox, boxes)
	p := candidates[idx]

	chooser := seam.Nearest{PreferredPosition: lastPos, MaxDetour: f.params.MaxNearestDetour}
	choice, ok := seam.ChooseSeamPoint(chooser, p)
	if !ok {
		choice = seam.ChooseDegenerateSeamPoint(p)
	}
	return p, choice, true
}

// pickRecordForLoop selects the precomputed record whose Perimeter bbox is
// closest to loop's bbox, with a hole-vs-contour override: when the layer
// holds exactly 2 or 3 perimeters and the bbox-closest match is a hole,
// prefer the non-hole record instead (spec.md §4.8's "loop matching"
// heuristic for islands with one or two holes).
func pickRecordForLoop(records []seamRecord, loop []geom.Point2) seamRecord {
	loopBox := geom.BBoxOf(loop)
	boxes := make([]geom.BBox2, len(records))
	for i, r := range records {
		boxes[i] = geom.BBoxOf(r.Perimeter.Positions)
	}
	idx, _ := geom.PickClosestBoundingBox(loopBox, boxes)
	chosen := records[idx]

	if (len(records) == 2 || len(records) == 3) && chosen.Perimeter.IsHole {
		for _, r := range records {
			if !r.Perimeter.IsHole {
				return r
			}
		}
	}
	return chosen
}

func loopCenter(loop []geom.Point2) geom.Point2 {
	if len(loop) == 0 {
		return geom.Point2{}
	}
	return geom.BBoxOf(loop).Center()
}
