package coarsen

import (
	"fmt"
	"sort"

	"hypercoarsen/pkg/hypergraph"
)

// communitySizes accumulates, for one hyperedge, how many pin slots each
// community touching it will need to write during merge-back.
//
// The quantity being reserved is incidence-array capacity (pin slots), so
// this accumulates pin counts rather than node weights — each pin
// contributes exactly one slot regardless of its hypernode's weight.
type communitySizes map[hypergraph.PartitionID]uint32

// add records one more pin belonging to community c.
func (cs communitySizes) add(c hypergraph.PartitionID) { cs[c]++ }

// slotFor is SlotPlanner: it returns the half-open window [start, end)
// reserved for community c inside the hyperedge's incidence slot, measured
// relative to the slot's own start (i.e. relative to H.FirstEntry(e)).
//
// Communities are ordered ascending by id; c's start offset is the sum of
// every smaller community's size, and its length is its own size.
func slotFor(sizes communitySizes, c hypergraph.PartitionID) (start, end uint32, err error) {
	size, ok := sizes[c]
	if !ok {
		return 0, 0, fmt.Errorf("coarsen: slotFor: community %d has no pins recorded for this hyperedge", c)
	}

	ids := make([]hypergraph.PartitionID, 0, len(sizes))
	for id := range sizes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var offset uint32
	for _, id := range ids {
		if id == c {
			return offset, offset + size, nil
		}
		offset += sizes[id]
	}
	// unreachable: c is guaranteed to be in ids since sizes[c] was found above.
	return 0, 0, fmt.Errorf("coarsen: slotFor: community %d missing from sorted order", c)
}
