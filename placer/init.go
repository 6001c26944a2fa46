package placer

import (
	"math/rand"

	"github.com/grailbio/base/log"
	"github.com/lamina3d/seamcore/aligned"
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/painting"
	"github.com/lamina3d/seamcore/perimeter"
	"github.com/lamina3d/seamcore/seam"
	"github.com/lamina3d/seamcore/shell"
	"github.com/lamina3d/seamcore/spatial"
	"github.com/lamina3d/seamcore/visibility"
)

// seamRecord pairs a precomputed seam choice with the Perimeter it was
// chosen against, so PlaceSeam can recover angle/index information for
// finalizeSeamPosition without re-running the chooser.
type seamRecord struct {
	Perimeter *perimeter.Perimeter
	Choice    seam.Choice
}

// objectState is everything Init precomputes for one Object.
type objectState struct {
	strategy   Strategy
	perimeters [][]*perimeter.Perimeter // per layer, in Object.Layers order
	layerSeams map[int][]seamRecord     // populated for Aligned/Rear/Random; empty for Nearest
}

// Facade owns the precomputed state for a batch of objects and answers
// PlaceSeam queries against it. Grounded on SeamPlacer.{hpp,cpp}.
type Facade struct {
	params  Params
	objects []*objectState
}

// Init builds Painting, Perimeters, and (strategy-permitting) Visibility,
// Shells, and seam choices for every object. Grounded on SeamPlacer.cpp's
// Placer::init: "Visibility and Painting are built once per object at
// init; Perimeters are built once per object at init and held immutably
// for the object's lifetime."
func Init(objects []Object, params Params, cancel func() error) (*Facade, error) {
	f := &Facade{params: params}
	for _, obj := range objects {
		state, err := initObject(obj, params, cancel)
		if err != nil {
			return nil, err
		}
		f.objects = append(f.objects, state)
	}
	return f, nil
}

func initObject(obj Object, params Params, cancel func() error) (*objectState, error) {
	log.Debug.Printf("placer: init object, %d layers, strategy %d", len(obj.Layers), obj.Strategy)
	paint := buildPainting(obj.Volumes)

	layerInputs := make([]perimeter.LayerInput, len(obj.Layers))
	for li, layer := range obj.Layers {
		var prevContours [][]geom.Point2
		if li > 0 {
			for _, isl := range obj.Layers[li-1].Islands {
				prevContours = append(prevContours, isl.Contour)
			}
		}
		layerHeight := layer.Height
		info := perimeter.LayerInfo{SliceZ: layer.SliceZ, LayerHeight: layerHeight, LayerIndex: li}
		var loops []perimeter.Input
		for _, isl := range layer.Islands {
			loops = append(loops, loopInputs(isl, prevContours, paint)...)
		}
		layerInputs[li] = perimeter.LayerInput{Layer: info, Loops: loops}
	}

	perimeters, err := perimeter.Create(layerInputs, params.Perimeter, cancel)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("placer: perimeters built for %d layers", len(perimeters))

	state := &objectState{
		strategy:   obj.Strategy,
		perimeters: perimeters,
		layerSeams: make(map[int][]seamRecord),
	}

	switch obj.Strategy {
	case StrategyNearest:
		// Perimeters are already built; PlaceSeam runs Nearest live.
	case StrategyRear:
		chooser := seam.Rearest{RearYOffset: params.RearYOffset, RearTolerance: params.RearTolerance}
		precomputeFlat(state, chooser)
	case StrategyRandom:
		rng := rand.New(rand.NewSource(int64(params.RandomSeed)))
		chooser := seam.Random{Rand: rng}
		precomputeFlat(state, chooser)
	case StrategyAligned:
		if err := precomputeAligned(state, obj.Volumes, params, cancel); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// buildPainting gathers every volume's enforcer/blocker facets, regardless
// of the volume's own type (paint can be applied to model parts and
// negative volumes alike).
func buildPainting(volumes []Volume) *painting.Painting {
	var enforcers, blockers [][]spatial.Triangle
	for _, v := range volumes {
		enforcers = append(enforcers, v.EnforcerTriangles)
		blockers = append(blockers, v.BlockerTriangles)
	}
	return painting.Build(enforcers, blockers)
}

// loopInputs builds one perimeter.Input per closed loop of an island (its
// outer contour, then each hole), matching each against the closest-bbox
// island contour on the previous layer for the overhang reference surface,
// and using the island's own contour as the embedding reference surface
// (a same-layer simplification: the union of all islands on the layer is
// not built).
func loopInputs(isl Island, prevContours [][]geom.Point2, paint *painting.Painting) []perimeter.Input {
	prev := nearestBoundary(isl.Contour, prevContours)
	current := perimeter.Boundary{Contour: isl.Contour}

	inputs := []perimeter.Input{{
		Polygon:         isl.Contour,
		OverhangRegions: isl.OverhangRegions,
		PreviousOutline: prev,
		CurrentOutline:  current,
		Painting:        paint,
	}}
	for _, hole := range isl.Holes {
		inputs = append(inputs, perimeter.Input{
			Polygon:         hole,
			OverhangRegions: nil,
			PreviousOutline: prev,
			CurrentOutline:  current,
			Painting:        paint,
		})
	}
	return inputs
}

func nearestBoundary(contour []geom.Point2, candidates [][]geom.Point2) perimeter.Boundary {
	if len(candidates) == 0 || len(contour) == 0 {
		return perimeter.Boundary{}
	}
	box := geom.BBoxOf(contour)
	boxes := make([]geom.BBox2, len(candidates))
	for i, c := range candidates {
		boxes[i] = geom.BBoxOf(c)
	}
	idx, _ := geom.PickClosestBoundingBox(box, boxes)
	return perimeter.Boundary{Contour: candidates[idx]}
}

// precomputeFlat runs chooser against every Perimeter independently (no
// shell/chain machinery), per spec.md §4.7's closing note that Rear and
// Random "build seams per-slice independently."
func precomputeFlat(state *objectState, chooser seam.Chooser) {
	for li, layer := range state.perimeters {
		for _, p := range layer {
			choice, ok := seam.ChooseSeamPoint(chooser, p)
			if !ok {
				choice = seam.ChooseDegenerateSeamPoint(p)
			}
			state.layerSeams[li] = append(state.layerSeams[li], seamRecord{Perimeter: p, Choice: choice})
		}
	}
}

func precomputeAligned(state *objectState, volumes []Volume, params Params, cancel func() error) error {
	var pos, neg []spatial.Triangle
	for _, v := range volumes {
		switch v.Type {
		case ModelPart:
			pos = append(pos, v.Triangles...)
		case NegativeVolume:
			neg = append(neg, v.Triangles...)
		}
	}
	throwIfCanceled := cancel
	if throwIfCanceled == nil {
		throwIfCanceled = func() error { return nil }
	}
	field, err := visibility.Build(pos, neg, params.Visibility, throwIfCanceled)
	if err != nil {
		return err
	}
	log.Debug.Printf("placer: visibility field built, %d samples", len(field.Samples.Positions))

	shells, err := shell.Create(state.perimeters, params.MaxDistance, cancel)
	if err != nil {
		return err
	}
	log.Debug.Printf("placer: %d shells formed", len(shells))

	calc := aligned.Calculator{Field: field, Params: params.alignedParams()}
	precomputed, err := aligned.Precompute(shells, calc, cancel)
	if err != nil {
		return err
	}
	leastVisible := aligned.LeastVisiblePerSlice(shells, precomputed)

	results, _, err := aligned.GetObjectSeams(shells, precomputed, leastVisible, calc, cancel)
	if err != nil {
		return err
	}
	for _, result := range results {
		for i, slice := range result.Shell {
			state.layerSeams[slice.LayerIndex] = append(state.layerSeams[slice.LayerIndex], seamRecord{
				Perimeter: slice.Perimeter,
				Choice:    result.Choices[i],
			})
		}
	}
	return nil
}
