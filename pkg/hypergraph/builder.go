package hypergraph

// RawHyperedge is one hyperedge as read from an hMETIS file: an ordered
// list of 0-based pin ids plus its weight.
type RawHyperedge struct {
	Pins   []uint32
	Weight uint32
}

// BuildInput bundles everything Build needs to construct a Hypergraph —
// the shape built from `hmetis.Parse`'s ParseResult and `pkg/hypergraph.Build`
// consumes, mirroring the builder-from-parse-result split in
// map_router/pkg/graph.Build(*osmparser.ParseResult).
type BuildInput struct {
	NumNodes    uint32
	Hyperedges  []RawHyperedge
	NodeWeights []uint32      // len NumNodes; defaults to 1 per node if nil
	Communities []PartitionID // len NumNodes; defaults to -1 (unassigned) if nil
}

// Build constructs a Hypergraph's CSR arrays from parsed input. Every
// hypernode and hyperedge starts enabled; aggregate counters start equal
// to the initial sizes.
func Build(in BuildInput) *Hypergraph {
	numEdges := uint32(len(in.Hyperedges))
	h := New(in.NumNodes, numEdges)

	totalPins := 0
	for _, he := range in.Hyperedges {
		totalPins += len(he.Pins)
	}
	h.IncidenceArray = make([]uint32, 0, totalPins)

	incidentCount := make([]uint32, in.NumNodes)

	for e, he := range in.Hyperedges {
		h.heFirstEntry[e] = uint32(len(h.IncidenceArray))
		h.heWeight[e] = he.Weight
		h.heEnabled[e] = 1
		h.heHash[e] = EdgeHashSeed
		for _, p := range he.Pins {
			h.IncidenceArray = append(h.IncidenceArray, p)
			h.heHash[e] += Hash(p)
			incidentCount[p]++
		}
		h.heFirstInvalid[e] = uint32(len(h.IncidenceArray))
	}
	h.heFirstEntry[numEdges] = uint32(len(h.IncidenceArray))

	h.hnIncidentEdges = make([][]uint32, in.NumNodes)
	for v, cnt := range incidentCount {
		if cnt > 0 {
			h.hnIncidentEdges[v] = make([]uint32, 0, cnt)
		}
	}
	for e, he := range in.Hyperedges {
		for _, p := range he.Pins {
			h.hnIncidentEdges[p] = append(h.hnIncidentEdges[p], uint32(e))
		}
	}

	for v := uint32(0); v < in.NumNodes; v++ {
		h.hnEnabled[v] = true
		if in.NodeWeights != nil {
			h.hnWeight[v] = in.NodeWeights[v]
		} else {
			h.hnWeight[v] = 1
		}
		if in.Communities != nil {
			h.hnCommunity[v] = in.Communities[v]
		} else {
			h.hnCommunity[v] = -1
		}
	}

	h.currentNumHypernodes = int64(in.NumNodes)
	h.currentNumPins = int64(len(h.IncidenceArray))
	h.currentNumHyperedges = int64(numEdges)

	return h
}

// Hash is the pin contribution to a hyperedge's incremental hash, used
// both at construction and when MergeBack Phase 3 recomputes it.
func Hash(p uint32) uint64 {
	x := uint64(p) + 1
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
