package geom

// maxVisitSteps is the hard cap on bounded cyclic visits, a safety valve
// against pathological (near-degenerate) loops turning an angle lookup into
// an unbounded scan. Grounded on SeamGeometry.cpp's visit_near_forward /
// visit_near_backward.
const maxVisitSteps = 30

// VisitForward walks forward (increasing index, wrapping modulo n) starting
// at the index after start, calling visit(index) for each step until visit
// returns true or the step cap is reached. It reports whether visit ever
// returned true.
func VisitForward(start, n int, visit func(index int) bool) bool {
	return visitCyclic(start, n, 1, visit)
}

// VisitBackward is VisitForward with the opposite direction.
func VisitBackward(start, n int, visit func(index int) bool) bool {
	return visitCyclic(start, n, -1, visit)
}

func visitCyclic(start, n, step int, visit func(index int) bool) bool {
	if n == 0 {
		return false
	}
	idx := start
	for i := 0; i < maxVisitSteps; i++ {
		idx = ((idx+step)%n + n) % n
		if visit(idx) {
			return true
		}
	}
	return false
}

// VisitNearForward is the variant used by angle-arm lookups: identical
// mechanics to VisitForward, kept as a distinct name because the original
// source has two call sites with different semantic roles (arm search vs.
// angle-type merge / snap-to-angle) sharing one implementation.
func VisitNearForward(start, n int, visit func(index int) bool) bool {
	return VisitForward(start, n, visit)
}

// VisitNearBackward mirrors VisitNearForward.
func VisitNearBackward(start, n int, visit func(index int) bool) bool {
	return VisitBackward(start, n, visit)
}
