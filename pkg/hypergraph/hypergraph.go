// Package hypergraph implements the flat, CSR-style hypergraph container
// used by the community-section extraction and merge-back protocol: a
// single incidence array with per-hyperedge offsets, rather than a
// slice-of-slices per hyperedge.
package hypergraph

import "sync/atomic"

// EdgeHashSeed is the seed value hyperedge hashes are reset to before
// recomputation in MergeBack's incidence-array normalization phase.
const EdgeHashSeed uint64 = 0x9e3779b97f4a7c15

// PartitionID identifies a community. -1 means "no community assigned".
type PartitionID = int32

// Hypergraph is the mutable container H. Hypernodes and hyperedges are
// numbered 0..n-1 / 0..m-1 and never renumbered — disabled elements stay
// at their original index with a cleared enabled flag.
type Hypergraph struct {
	initialNumNodes uint32
	initialNumEdges uint32

	// IncidenceArray is the flat pin storage. Hyperedge e's slot is
	// [heFirstEntry[e], heFirstEntry[e+1]); within that slot the prefix
	// [heFirstEntry[e], heFirstInvalid[e]) holds enabled pins and the
	// remainder holds disabled pins. Exposed directly so MergeBack can
	// write into reserved sub-ranges without going through an accessor.
	IncidenceArray []uint32

	heFirstEntry   []uint32 // len initialNumEdges+1
	heFirstInvalid []uint32 // len initialNumEdges, mutable
	heWeight       []uint32 // len initialNumEdges, mutated via atomic max
	heEnabled      []int32  // len initialNumEdges, 0/1, mutated atomically
	heHash         []uint64 // len initialNumEdges

	hnWeight        []uint32
	hnEnabled       []bool
	hnCommunity     []PartitionID
	hnIncidentEdges [][]uint32

	currentNumHypernodes int64
	currentNumPins       int64
	currentNumHyperedges int64
}

// New allocates a Hypergraph for the given static sizes. Callers fill in
// the incidence array and per-element metadata (see builder.go for the
// usual construction path from a parsed hMETIS file).
func New(numNodes, numEdges uint32) *Hypergraph {
	return &Hypergraph{
		initialNumNodes: numNodes,
		initialNumEdges: numEdges,
		heFirstEntry:    make([]uint32, numEdges+1),
		heFirstInvalid:  make([]uint32, numEdges),
		heWeight:        make([]uint32, numEdges),
		heEnabled:       make([]int32, numEdges),
		heHash:          make([]uint64, numEdges),
		hnWeight:        make([]uint32, numNodes),
		hnEnabled:       make([]bool, numNodes),
		hnCommunity:     make([]PartitionID, numNodes),
		hnIncidentEdges: make([][]uint32, numNodes),
	}
}

// InitialNumNodes returns the number of hypernodes H was built with.
func (h *Hypergraph) InitialNumNodes() uint32 { return h.initialNumNodes }

// InitialNumEdges returns the number of hyperedges H was built with.
func (h *Hypergraph) InitialNumEdges() uint32 { return h.initialNumEdges }

// Nodes enumerates all hypernode ids in stable (ascending) order.
func (h *Hypergraph) Nodes() []uint32 {
	nodes := make([]uint32, h.initialNumNodes)
	for i := range nodes {
		nodes[i] = uint32(i)
	}
	return nodes
}

// Edges enumerates all hyperedge ids in stable (ascending) order.
func (h *Hypergraph) Edges() []uint32 {
	edges := make([]uint32, h.initialNumEdges)
	for i := range edges {
		edges[i] = uint32(i)
	}
	return edges
}

// IncidentEdges returns the hyperedges incident to hypernode v, in the
// order they were last assigned (insertion order, not sorted).
func (h *Hypergraph) IncidentEdges(v uint32) []uint32 { return h.hnIncidentEdges[v] }

// SetIncidentEdges overwrites the incident-edge list for hypernode v.
// Used by MergeBack Phase 1 to install the freshly rebuilt list.
func (h *Hypergraph) SetIncidentEdges(v uint32, edges []uint32) { h.hnIncidentEdges[v] = edges }

// Pins returns the currently enabled pins of hyperedge e, in incidence-array
// order.
func (h *Hypergraph) Pins(e uint32) []uint32 {
	return h.IncidenceArray[h.heFirstEntry[e]:h.heFirstInvalid[e]]
}

// AllPins returns every pin (enabled and disabled) in hyperedge e's slot.
func (h *Hypergraph) AllPins(e uint32) []uint32 {
	return h.IncidenceArray[h.heFirstEntry[e]:h.heFirstEntry[e+1]]
}

// CommunityID returns the community label of hypernode v.
func (h *Hypergraph) CommunityID(v uint32) PartitionID { return h.hnCommunity[v] }

// SetCommunityID assigns a community label to hypernode v.
func (h *Hypergraph) SetCommunityID(v uint32, c PartitionID) { h.hnCommunity[v] = c }

// NodeWeight returns the weight of hypernode v.
func (h *Hypergraph) NodeWeight(v uint32) uint32 { return h.hnWeight[v] }

// SetNodeWeight sets the weight of hypernode v.
func (h *Hypergraph) SetNodeWeight(v uint32, w uint32) { h.hnWeight[v] = w }

// NodeEnabled reports whether hypernode v is currently enabled.
func (h *Hypergraph) NodeEnabled(v uint32) bool { return h.hnEnabled[v] }

// SetNodeEnabled sets the enabled flag of hypernode v.
func (h *Hypergraph) SetNodeEnabled(v uint32, enabled bool) { h.hnEnabled[v] = enabled }

// EdgeWeight returns the weight of hyperedge e.
func (h *Hypergraph) EdgeWeight(e uint32) uint32 { return atomic.LoadUint32(&h.heWeight[e]) }

// SetWeight sets the weight of hyperedge e unconditionally.
func (h *Hypergraph) SetWeight(e uint32, w uint32) { atomic.StoreUint32(&h.heWeight[e], w) }

// RaiseWeight atomically sets hyperedge e's weight to max(current, w). Used
// during merge-back, where two communities' goroutines may race to raise
// the same hyperedge's weight.
func (h *Hypergraph) RaiseWeight(e uint32, w uint32) {
	for {
		cur := atomic.LoadUint32(&h.heWeight[e])
		if w <= cur {
			return
		}
		if atomic.CompareAndSwapUint32(&h.heWeight[e], cur, w) {
			return
		}
	}
}

// FirstEntry returns the start offset of hyperedge e's slot in the
// incidence array. FirstEntry(InitialNumEdges()) is the total incidence
// length.
func (h *Hypergraph) FirstEntry(e uint32) uint32 { return h.heFirstEntry[e] }

// FirstInvalidEntry returns the offset one past the last enabled pin of
// hyperedge e.
func (h *Hypergraph) FirstInvalidEntry(e uint32) uint32 { return h.heFirstInvalid[e] }

// DecrementSize shrinks hyperedge e's enabled-pin count by one, i.e. moves
// firstInvalidEntry(e) back by one slot.
func (h *Hypergraph) DecrementSize(e uint32) { h.heFirstInvalid[e]-- }

// IsDisabled reports whether hyperedge e is currently disabled.
func (h *Hypergraph) IsDisabled(e uint32) bool { return atomic.LoadInt32(&h.heEnabled[e]) == 0 }

// Disable marks hyperedge e disabled. Safe to call concurrently with other
// communities' merge-back goroutines touching the same e: a hyperedge
// becomes disabled inside at most one community.
func (h *Hypergraph) Disable(e uint32) { atomic.StoreInt32(&h.heEnabled[e], 0) }

// Enable marks hyperedge e enabled.
func (h *Hypergraph) Enable(e uint32) { atomic.StoreInt32(&h.heEnabled[e], 1) }

// EdgeHash returns the current incremental hash of hyperedge e.
func (h *Hypergraph) EdgeHash(e uint32) uint64 { return h.heHash[e] }

// SetEdgeHash overwrites the incremental hash of hyperedge e.
func (h *Hypergraph) SetEdgeHash(e uint32, hash uint64) { h.heHash[e] = hash }

// CurrentNumHypernodes returns the live aggregate hypernode count.
func (h *Hypergraph) CurrentNumHypernodes() int64 { return atomic.LoadInt64(&h.currentNumHypernodes) }

// AddCurrentNumHypernodes adjusts the live hypernode count by delta.
func (h *Hypergraph) AddCurrentNumHypernodes(delta int64) {
	atomic.AddInt64(&h.currentNumHypernodes, delta)
}

// SetCurrentNumHypernodes overwrites the live hypernode count.
func (h *Hypergraph) SetCurrentNumHypernodes(v int64) { atomic.StoreInt64(&h.currentNumHypernodes, v) }

// CurrentNumPins returns the live aggregate pin count.
func (h *Hypergraph) CurrentNumPins() int64 { return atomic.LoadInt64(&h.currentNumPins) }

// AddCurrentNumPins adjusts the live pin count by delta.
func (h *Hypergraph) AddCurrentNumPins(delta int64) { atomic.AddInt64(&h.currentNumPins, delta) }

// SetCurrentNumPins overwrites the live pin count.
func (h *Hypergraph) SetCurrentNumPins(v int64) { atomic.StoreInt64(&h.currentNumPins, v) }

// CurrentNumHyperedges returns the live aggregate hyperedge count.
func (h *Hypergraph) CurrentNumHyperedges() int64 { return atomic.LoadInt64(&h.currentNumHyperedges) }

// AddCurrentNumHyperedges adjusts the live hyperedge count by delta.
func (h *Hypergraph) AddCurrentNumHyperedges(delta int64) {
	atomic.AddInt64(&h.currentNumHyperedges, delta)
}

// SetCurrentNumHyperedges overwrites the live hyperedge count.
func (h *Hypergraph) SetCurrentNumHyperedges(v int64) {
	atomic.StoreInt64(&h.currentNumHyperedges, v)
}
