// Package coarsen implements the community-induced subhypergraph
// extraction and merge-back protocol: split a hypergraph into
// independent per-community sections, let an external coarsener mutate
// each section, then reconcile all sections back into the original
// hypergraph under a disjoint-write-window scheme that needs no locks.
package coarsen

import "hypercoarsen/pkg/hypergraph"

// CommunityHyperedge is one hyperedge as seen from a CommunitySubhypergraph:
// which hyperedge in H it came from, and the sub-range of H's incidence
// slot for that hyperedge this community owns.
type CommunityHyperedge struct {
	OriginalHE          uint32
	IncidenceArrayStart uint32
	IncidenceArrayEnd   uint32
}

// CommunitySubhypergraph is S(C): the section of H induced by community C,
// plus enough bookkeeping to fold coarsened results back into H.
type CommunitySubhypergraph struct {
	ID hypergraph.PartitionID

	// LocalToGlobalHN maps a local hypernode id (dense, from 0) to its id
	// in H. Local ids 0..len-1.
	LocalToGlobalHN []uint32

	// LocalToGlobalHE holds one entry per hyperedge local to the child
	// hypergraph, in the same order as the child's hyperedges.
	LocalToGlobalHE []CommunityHyperedge

	// NumHNNotInCommunity / NumPinsNotInCommunity count local hypernodes
	// and pins that belong to some other community (the "V'" border in
	// the community-induced section).
	NumHNNotInCommunity   int
	NumPinsNotInCommunity int

	// Child is the owned hypergraph instance an external coarsener
	// mutates. Nil until Extract populates it (always non-nil after
	// Extract returns, even for an empty community — see Extract).
	Child *hypergraph.Hypergraph
}

// GlobalToLocalHN is the dense inverse of LocalToGlobalHN, built once per
// extraction and discarded once the hyperedge-construction pass is done.
type GlobalToLocalHN struct {
	slots []int32 // len |V(H)|, -1 where unmapped
}

func newGlobalToLocalHN(n uint32) *GlobalToLocalHN {
	slots := make([]int32, n)
	for i := range slots {
		slots[i] = -1
	}
	return &GlobalToLocalHN{slots: slots}
}

func (g *GlobalToLocalHN) set(global uint32, local int32) { g.slots[global] = local }

func (g *GlobalToLocalHN) get(global uint32) (int32, bool) {
	v := g.slots[global]
	return v, v >= 0
}

// ContractionMemento records one contraction: hypernode V was merged away
// (into some representative not tracked by this protocol) at the point
// this memento occupies in the global history.
type ContractionMemento struct {
	V uint32
}
