package coarsen

import (
	"fmt"
	"sort"

	"hypercoarsen/pkg/assert"
	"hypercoarsen/pkg/bitset"
	"hypercoarsen/pkg/hypergraph"
)

// Extract builds the community-induced section subhypergraph S(C): every
// hyperedge touching community c, in full (including pins outside c),
// renumbered to a dense local id space. If respectOrder is true, local ids
// are assigned in ascending global-id order.
func Extract(h *hypergraph.Hypergraph, c hypergraph.PartitionID, respectOrder bool) (*CommunitySubhypergraph, error) {
	visited := bitset.NewCombined(int(h.InitialNumNodes()), int(h.InitialNumEdges()))

	s := &CommunitySubhypergraph{ID: c}

	numPinsNotInCommunity := 0

	// Pin collection pass.
	for _, v := range h.Nodes() {
		if h.CommunityID(v) != c {
			continue
		}
		for _, e := range h.IncidentEdges(v) {
			if visited.TestEdge(int(e)) {
				continue
			}
			for _, p := range h.Pins(e) {
				if !visited.TestNode(int(p)) {
					s.LocalToGlobalHN = append(s.LocalToGlobalHN, p)
					visited.SetNode(int(p))
				}
				if h.CommunityID(p) != c {
					numPinsNotInCommunity++
				}
			}
			visited.SetEdge(int(e))
		}
	}

	if respectOrder {
		sort.SliceStable(s.LocalToGlobalHN, func(i, j int) bool {
			return s.LocalToGlobalHN[i] < s.LocalToGlobalHN[j]
		})
	}
	s.NumPinsNotInCommunity = numPinsNotInCommunity

	if len(s.LocalToGlobalHN) == 0 {
		s.Child = hypergraph.Build(hypergraph.BuildInput{NumNodes: 0})
		return s, nil
	}

	g2l := newGlobalToLocalHN(h.InitialNumNodes())
	numHNNotInCommunity := 0
	for local, global := range s.LocalToGlobalHN {
		g2l.set(global, int32(local))
		if h.CommunityID(global) != c {
			numHNNotInCommunity++
		}
	}
	s.NumHNNotInCommunity = numHNNotInCommunity

	localNodeWeights := make([]uint32, len(s.LocalToGlobalHN))
	localCommunities := make([]hypergraph.PartitionID, len(s.LocalToGlobalHN))
	for local, global := range s.LocalToGlobalHN {
		localNodeWeights[local] = h.NodeWeight(global)
		localCommunities[local] = h.CommunityID(global)
	}

	var rawHyperedges []hypergraph.RawHyperedge

	// Hyperedge construction pass, in H's enumeration order.
	for _, e := range h.Edges() {
		if !visited.TestEdge(int(e)) {
			continue
		}

		pins := h.Pins(e)
		localPins := make([]uint32, len(pins))
		sizes := make(communitySizes, 4)
		for i, p := range pins {
			local, ok := g2l.get(p)
			assert.Thatf(ok, "coarsen: extract: pin %d of hyperedge %d has no local mapping in community %d", p, e, c)
			localPins[i] = uint32(local)
			sizes.add(h.CommunityID(p))
		}

		start, end, err := slotFor(sizes, c)
		if err != nil {
			return nil, fmt.Errorf("coarsen: extract: hyperedge %d: %w", e, err)
		}

		rawHyperedges = append(rawHyperedges, hypergraph.RawHyperedge{
			Pins:   localPins,
			Weight: h.EdgeWeight(e),
		})
		s.LocalToGlobalHE = append(s.LocalToGlobalHE, CommunityHyperedge{
			OriginalHE:          e,
			IncidenceArrayStart: start,
			IncidenceArrayEnd:   end,
		})
	}

	s.Child = hypergraph.Build(hypergraph.BuildInput{
		NumNodes:    uint32(len(s.LocalToGlobalHN)),
		Hyperedges:  rawHyperedges,
		NodeWeights: localNodeWeights,
		Communities: localCommunities,
	})

	return s, nil
}
