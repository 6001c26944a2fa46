package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/lamina3d/seamcore/geom"
	"github.com/lamina3d/seamcore/placer"
	"github.com/lamina3d/seamcore/spatial"
)

var (
	strategy    = flag.String("strategy", "aligned", "seam strategy: nearest, aligned, rear, or random")
	numLayers   = flag.Int("layers", 100, "number of synthetic layers to generate")
	side        = flag.Float64("side", 40, "square footprint side length, mm")
	layerHeight = flag.Float64("layer-height", 0.2, "layer height, mm")
	width       = flag.Float64("width", 0.4, "extrusion width, mm")
	withHole    = flag.Bool("holes", false, "give every layer a concentric square hole")
)

func parseStrategy(s string) (placer.Strategy, error) {
	switch s {
	case "nearest":
		return placer.StrategyNearest, nil
	case "aligned":
		return placer.StrategyAligned, nil
	case "rear":
		return placer.StrategyRear, nil
	case "random":
		return placer.StrategyRandom, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

func squareContour(center geom.Point2, s float64) []geom.Point2 {
	h := s / 2
	return []geom.Point2{
		{X: center.X - h, Y: center.Y - h},
		{X: center.X + h, Y: center.Y - h},
		{X: center.X + h, Y: center.Y + h},
		{X: center.X - h, Y: center.Y + h},
	}
}

// boxTriangles builds the 12 triangles of a closed rectangular box, used
// as the synthetic model volume the Aligned strategy's visibility field
// is raycast against.
func boxTriangles(minZ, maxZ, s float64) []spatial.Triangle {
	h := s / 2
	corners := [8]geom.Point3{
		{X: -h, Y: -h, Z: minZ}, {X: h, Y: -h, Z: minZ}, {X: h, Y: h, Z: minZ}, {X: -h, Y: h, Z: minZ},
		{X: -h, Y: -h, Z: maxZ}, {X: h, Y: -h, Z: maxZ}, {X: h, Y: h, Z: maxZ}, {X: -h, Y: h, Z: maxZ},
	}
	quad := func(a, b, c, d int) []spatial.Triangle {
		return []spatial.Triangle{
			{A: corners[a], B: corners[b], C: corners[c]},
			{A: corners[a], B: corners[c], C: corners[d]},
		}
	}
	var tris []spatial.Triangle
	tris = append(tris, quad(0, 1, 2, 3)...) // bottom
	tris = append(tris, quad(4, 7, 6, 5)...) // top
	tris = append(tris, quad(0, 4, 5, 1)...) // front
	tris = append(tris, quad(1, 5, 6, 2)...) // right
	tris = append(tris, quad(2, 6, 7, 3)...) // back
	tris = append(tris, quad(3, 7, 4, 0)...) // left
	return tris
}

func syntheticObject(strat placer.Strategy) placer.Object {
	obj := placer.Object{Strategy: strat}
	for i := 0; i < *numLayers; i++ {
		z := float64(i) * *layerHeight
		island := placer.Island{Contour: squareContour(geom.Point2{}, *side), Width: *width}
		if *withHole {
			island.Holes = [][]geom.Point2{squareContour(geom.Point2{}, *side/3)}
		}
		obj.Layers = append(obj.Layers, placer.Layer{
			SliceZ:  z,
			Height:  *layerHeight,
			Islands: []placer.Island{island},
		})
	}
	maxZ := float64(*numLayers) * *layerHeight
	obj.Volumes = []placer.Volume{{
		Type:      placer.ModelPart,
		Triangles: boxTriangles(0, maxZ, *side),
	}}
	return obj
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	strat, err := parseStrategy(*strategy)
	if err != nil {
		log.Fatalf("seamcore-bench: %v", err)
	}
	obj := syntheticObject(strat)

	initStart := time.Now()
	facade, err := placer.Init([]placer.Object{obj}, placer.DefaultParams(), nil)
	if err != nil {
		log.Fatalf("seamcore-bench: Init failed: %v", err)
	}
	initElapsed := time.Since(initStart)

	placeStart := time.Now()
	last := geom.Point2{}
	placed := 0
	for li, layer := range obj.Layers {
		for _, isl := range layer.Islands {
			p, err := facade.PlaceSeam(0, li, isl.Contour, isl.Width, false, last)
			if err != nil {
				log.Fatalf("seamcore-bench: PlaceSeam failed at layer %d: %v", li, err)
			}
			last = p
			placed++
			for hi, hole := range isl.Holes {
				hp, err := facade.PlaceSeam(0, li, hole, isl.Width, hi > 0, last)
				if err != nil {
					log.Fatalf("seamcore-bench: PlaceSeam failed at layer %d hole %d: %v", li, hi, err)
				}
				last = hp
				placed++
			}
		}
	}
	placeElapsed := time.Since(placeStart)

	fmt.Printf("strategy=%s layers=%d init=%v place=%v (%d seams, %v/seam)\n",
		*strategy, *numLayers, initElapsed, placeElapsed, placed, placeElapsed/time.Duration(placed))
}
