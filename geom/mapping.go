package geom

import "github.com/biogo/store/llrb"

// MappingLink is the result of an oracle call for one item: the winning
// target-layer index it proposes to link to, and the weight of that
// proposal (higher wins contention). Grounded on SeamGeometry.cpp's
// MappingImpl::Link.
type MappingLink struct {
	Target int
	Weight float64
}

// MappingOperator proposes a link from item i on layer l to an item on
// layer l+1, or reports no link at all.
type MappingOperator func(layer, index int) (link MappingLink, ok bool)

// claim is an llrb.Comparable ordering proposals by target index, used to
// resolve contention deterministically (by ascending target index, not map
// iteration order) when more than one source item on layer l proposes the
// same target on layer l+1.
type claim struct {
	target int
	weight float64
	source int
}

func (c *claim) Compare(o llrb.Comparable) int {
	other := o.(*claim)
	switch {
	case c.target < other.target:
		return -1
	case c.target > other.target:
		return 1
	default:
		return 0
	}
}

const unassigned = -1

// GetMapping links items across consecutive layers into dense, stable
// bucket ids. Grounded on SeamGeometry.cpp's get_mapping /
// MappingImpl::assign_buckets: for each pair of adjacent layers, every
// source item proposes at most one (target, weight) link; when multiple
// sources on layer l contend for the same target on layer l+1, the
// heaviest-weight proposal wins (ties broken by the lowest source index, a
// determinism choice this module pins — see SPEC_FULL.md §4.1); every other item
// (contention losers, and any item with no proposal at all) is assigned a
// fresh, dense bucket id. layerSizes[l] is the item count of layer l.
// Returns mapping[l][i] = bucket id of item i on layer l, and the total
// bucket count.
func GetMapping(layerSizes []int, op MappingOperator) (mapping [][]int, bucketCount int) {
	mapping = make([][]int, len(layerSizes))
	for l := range layerSizes {
		mapping[l] = make([]int, layerSizes[l])
		for i := range mapping[l] {
			mapping[l][i] = unassigned
		}
	}

	nextID := 0
	for l := 0; l < len(layerSizes); l++ {
		// Any item on this layer not claimed by the previous iteration's
		// winning links gets a fresh bucket id now.
		for i := 0; i < layerSizes[l]; i++ {
			if mapping[l][i] == unassigned {
				mapping[l][i] = nextID
				nextID++
			}
		}
		if l == len(layerSizes)-1 {
			break
		}

		tree := &llrb.Tree{}
		winners := map[int]int{} // target index on layer l+1 -> winning source index on layer l
		for i := 0; i < layerSizes[l]; i++ {
			link, ok := op(l, i)
			if !ok {
				continue
			}
			if existing := tree.Get(&claim{target: link.Target}); existing == nil {
				tree.Insert(&claim{target: link.Target, weight: link.Weight, source: i})
				winners[link.Target] = i
			} else if cur := existing.(*claim); link.Weight > cur.weight {
				tree.Insert(&claim{target: link.Target, weight: link.Weight, source: i})
				winners[link.Target] = i
			}
		}
		for target, source := range winners {
			mapping[l+1][target] = mapping[l][source]
		}
	}
	return mapping, nextID
}
