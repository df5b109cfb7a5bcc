package coarsen

import (
	"fmt"
	"sort"

	"hypercoarsen/pkg/assert"
	"hypercoarsen/pkg/bitset"
	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

// Merge is MergeBack: it folds every coarsened community section back into
// h, in three pool-barrier-separated phases, then derives contraction
// indices from history and normalizes every hyperedge's incidence-array
// layout so enabled pins occupy the prefix and disabled pins form a
// descending-contraction-index suffix.
func Merge(h *hypergraph.Hypergraph, pool *workerpool.Pool, subs []*CommunitySubhypergraph, history []ContractionMemento) error {
	adjustAggregateCounts(h, subs)

	if err := phaseOneWriteBack(h, pool, subs); err != nil {
		return err
	}

	contractionIndex, err := ComputeContractionIndex(h, pool, history)
	if err != nil {
		return err
	}

	return phaseThreeNormalize(h, pool, contractionIndex)
}

// adjustAggregateCounts is the pre-phase: serial bookkeeping of h's live
// aggregate counters, since every community's child hypergraph tracked its
// own counts independently during inner coarsening. Every hypernode and
// pin is owned by exactly one community's section, so the hypernode/pin
// sums below are the new live totals outright rather than increments —
// only the hyperedge count is a true decrement from h's existing value,
// since a hyperedge can only become disabled inside one community but is
// visible to every community it touches.
func adjustAggregateCounts(h *hypergraph.Hypergraph, subs []*CommunitySubhypergraph) {
	var liveHN, livePins, lostHE int64
	for _, s := range subs {
		liveHN += s.Child.CurrentNumHypernodes() - int64(s.NumHNNotInCommunity)
		livePins += s.Child.CurrentNumPins() - int64(s.NumPinsNotInCommunity)
		lostHE += int64(s.Child.InitialNumEdges()) - s.Child.CurrentNumHyperedges()
	}
	h.SetCurrentNumHypernodes(liveHN)
	h.SetCurrentNumPins(livePins)
	h.AddCurrentNumHyperedges(-lostHE)
}

// phaseOneWriteBack runs a single pool phase with one task per community
// section, each writing only into the disjoint incidence-array windows
// SlotPlanner reserved for it.
func phaseOneWriteBack(h *hypergraph.Hypergraph, pool *workerpool.Pool, subs []*CommunitySubhypergraph) error {
	fns := make([]func() error, len(subs))
	for i, s := range subs {
		s := s
		fns[i] = func() error { return writeBackOne(h, s) }
	}
	return pool.Phase(fns...)
}

func writeBackOne(h *hypergraph.Hypergraph, s *CommunitySubhypergraph) error {
	child := s.Child
	if child.InitialNumNodes() == 0 {
		return nil
	}

	visitedLocally := bitset.New(int(child.InitialNumEdges()))

	for hn := uint32(0); hn < child.InitialNumNodes(); hn++ {
		if child.CommunityID(hn) != s.ID {
			continue
		}
		originalHN := s.LocalToGlobalHN[hn]

		localIncident := child.IncidentEdges(hn)
		incidentNets := make([]uint32, len(localIncident))
		for i, localHE := range localIncident {
			incidentNets[i] = s.LocalToGlobalHE[localHE].OriginalHE
		}

		for _, localHE := range localIncident {
			if visitedLocally.Test(int(localHE)) {
				continue
			}
			he := s.LocalToGlobalHE[localHE]
			writeCursor := h.FirstEntry(he.OriginalHE) + he.IncidenceArrayStart
			windowEnd := h.FirstEntry(he.OriginalHE) + he.IncidenceArrayEnd

			for _, localPin := range child.Pins(localHE) {
				if child.CommunityID(localPin) != s.ID {
					continue
				}
				h.IncidenceArray[writeCursor] = s.LocalToGlobalHN[localPin]
				writeCursor++
			}

			if w := child.EdgeWeight(localHE); w > h.EdgeWeight(he.OriginalHE) {
				h.RaiseWeight(he.OriginalHE, w)
			}
			if child.IsDisabled(localHE) {
				h.Disable(he.OriginalHE)
			}

			assert.Thatf(writeCursor == windowEnd,
				"coarsen: mergeback: community %d write cursor %d != window end %d for hyperedge %d",
				s.ID, writeCursor, windowEnd, he.OriginalHE)

			visitedLocally.Set(int(localHE))
		}

		h.SetNodeWeight(originalHN, child.NodeWeight(hn))
		h.SetNodeEnabled(originalHN, child.NodeEnabled(hn))
		h.SetIncidentEdges(originalHN, incidentNets)
	}

	return nil
}

// phaseThreeNormalize restores, for every hyperedge, the invariant that
// the enabled-pin prefix is contiguous and the disabled suffix is sorted
// by strictly descending contraction index.
func phaseThreeNormalize(h *hypergraph.Hypergraph, pool *workerpool.Pool, contractionIndex []int32) error {
	numEdges := int(h.InitialNumEdges())
	return pool.RunRange(numEdges, func(start, end int) error {
		for e := start; e < end; e++ {
			if err := normalizeEdge(h, uint32(e), contractionIndex); err != nil {
				return err
			}
		}
		return nil
	})
}

func normalizeEdge(h *hypergraph.Hypergraph, e uint32, contractionIndex []int32) error {
	wasDisabled := h.IsDisabled(e)
	if wasDisabled {
		h.Enable(e)
	}

	h.SetEdgeHash(e, hypergraph.EdgeHashSeed)

	j := h.FirstEntry(e)
	for j < h.FirstInvalidEntry(e) {
		p := h.IncidenceArray[j]
		if !h.NodeEnabled(p) {
			last := h.FirstInvalidEntry(e) - 1
			h.IncidenceArray[j], h.IncidenceArray[last] = h.IncidenceArray[last], h.IncidenceArray[j]
			h.DecrementSize(e)
			continue
		}
		h.SetEdgeHash(e, h.EdgeHash(e)+hypergraph.Hash(p))
		j++
	}

	suffixStart := h.FirstInvalidEntry(e)
	suffixEnd := h.FirstEntry(e + 1)
	suffix := h.IncidenceArray[suffixStart:suffixEnd]
	sort.Slice(suffix, func(i, j int) bool {
		return contractionIndex[suffix[i]] > contractionIndex[suffix[j]]
	})
	for _, p := range suffix {
		if contractionIndex[p] == -1 {
			return fmt.Errorf("coarsen: mergeback: disabled pin %d in hyperedge %d has no contraction index", p, e)
		}
	}

	if wasDisabled {
		h.Disable(e)
	}
	return nil
}
