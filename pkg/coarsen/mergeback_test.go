package coarsen

import (
	"testing"

	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

// TestMergeE3DisabledHyperedgePropagates checks that when coarsening
// inside S(A) disables a hyperedge, Phase 1 marks the corresponding
// global hyperedge disabled in H.
func TestMergeE3DisabledHyperedgePropagates(t *testing.T) {
	h := buildE1()
	sA, err := Extract(h, 0, true)
	if err != nil {
		t.Fatalf("Extract(A): %v", err)
	}
	sB, err := Extract(h, 1, true)
	if err != nil {
		t.Fatalf("Extract(B): %v", err)
	}
	sA.Child.Disable(0)

	pool := workerpool.New(2)
	if err := Merge(h, pool, []*CommunitySubhypergraph{sA, sB}, nil); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !h.IsDisabled(0) {
		t.Error("expected global hyperedge 0 disabled after merge")
	}
}

// TestMergeE6WeightMonotonicity checks that when two communities both
// touch e, whichever order Phase 1 dispatches them, H ends up with the
// larger weight.
func TestMergeE6WeightMonotonicity(t *testing.T) {
	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		h := buildE1()
		sA, err := Extract(h, 0, true)
		if err != nil {
			t.Fatalf("Extract(A): %v", err)
		}
		sB, err := Extract(h, 1, true)
		if err != nil {
			t.Fatalf("Extract(B): %v", err)
		}
		sA.Child.SetWeight(0, 5)
		sB.Child.SetWeight(0, 3)

		subs := []*CommunitySubhypergraph{sA, sB}
		ordered := []*CommunitySubhypergraph{subs[order[0]], subs[order[1]]}

		pool := workerpool.New(2)
		if err := Merge(h, pool, ordered, nil); err != nil {
			t.Fatalf("Merge: %v", err)
		}
		if got := h.EdgeWeight(0); got != 5 {
			t.Errorf("order %v: EdgeWeight(0) = %d, want 5", order, got)
		}
	}
}

// TestMergeE4ContractionOrdering checks that after Phase 2, a hyperedge
// containing one enabled pin and three disabled pins ends up with its
// disabled suffix sorted by strictly descending contraction index.
func TestMergeE4ContractionOrdering(t *testing.T) {
	h := hypergraph.Build(hypergraph.BuildInput{
		NumNodes: 8,
		Hyperedges: []hypergraph.RawHyperedge{
			{Pins: []uint32{1, 3, 5, 7}, Weight: 1},
		},
	})
	h.SetNodeEnabled(3, false)
	h.SetNodeEnabled(5, false)
	h.SetNodeEnabled(7, false)

	history := []ContractionMemento{{V: 5}, {V: 3}, {V: 7}}

	pool := workerpool.New(2)
	if err := Merge(h, pool, nil, history); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if got := h.Pins(0); len(got) != 1 || got[0] != 1 {
		t.Errorf("enabled prefix = %v, want [1]", got)
	}
	all := h.AllPins(0)
	suffix := all[h.FirstInvalidEntry(0)-h.FirstEntry(0):]
	want := []uint32{7, 3, 5}
	if len(suffix) != len(want) {
		t.Fatalf("disabled suffix = %v, want %v", suffix, want)
	}
	for i, p := range suffix {
		if p != want[i] {
			t.Errorf("suffix[%d] = %d, want %d (full=%v)", i, p, want[i], all)
		}
	}
}

// TestMergeRoundTripIsIdentity checks the round-trip property: extract,
// run the no-op coarsener, merge — H's incidence array is unchanged
// (modulo recomputed hashes).
func TestMergeRoundTripIsIdentity(t *testing.T) {
	h := buildE1()
	before := append([]uint32(nil), h.IncidenceArray...)

	sA, err := Extract(h, 0, true)
	if err != nil {
		t.Fatalf("Extract(A): %v", err)
	}
	sB, err := Extract(h, 1, true)
	if err != nil {
		t.Fatalf("Extract(B): %v", err)
	}
	var coarsener NoOpCoarsener
	if err := coarsener.Coarsen(sA.Child); err != nil {
		t.Fatalf("Coarsen(A): %v", err)
	}
	if err := coarsener.Coarsen(sB.Child); err != nil {
		t.Fatalf("Coarsen(B): %v", err)
	}

	pool := workerpool.New(2)
	if err := Merge(h, pool, []*CommunitySubhypergraph{sA, sB}, nil); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	after := h.IncidenceArray
	if len(after) != len(before) {
		t.Fatalf("incidence array length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("incidence_array[%d] = %d, want %d (unchanged)", i, after[i], before[i])
		}
	}
}
