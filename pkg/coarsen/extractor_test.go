package coarsen

import (
	"testing"

	"hypercoarsen/pkg/hypergraph"
)

// buildE1 builds a small two-community hypergraph: 4 hypernodes
// {0,1,2,3}, communities {0:A, 1:A, 2:B, 3:B}, a single hyperedge
// e0 = {0,1,2,3} of weight 1.
func buildE1() *hypergraph.Hypergraph {
	return hypergraph.Build(hypergraph.BuildInput{
		NumNodes: 4,
		Hyperedges: []hypergraph.RawHyperedge{
			{Pins: []uint32{0, 1, 2, 3}, Weight: 1},
		},
		Communities: []hypergraph.PartitionID{0, 0, 1, 1},
	})
}

func TestExtractE1WindowsAndRenumbering(t *testing.T) {
	h := buildE1()

	sA, err := Extract(h, 0, true)
	if err != nil {
		t.Fatalf("Extract(A): %v", err)
	}
	if len(sA.LocalToGlobalHN) != 4 {
		t.Fatalf("len(local_to_global_hn) = %d, want 4", len(sA.LocalToGlobalHN))
	}
	if len(sA.LocalToGlobalHE) != 1 {
		t.Fatalf("len(local_to_global_he) = %d, want 1", len(sA.LocalToGlobalHE))
	}
	he := sA.LocalToGlobalHE[0]
	if he.IncidenceArrayStart != 0 || he.IncidenceArrayEnd != 2 {
		t.Errorf("window_A = [%d,%d), want [0,2)", he.IncidenceArrayStart, he.IncidenceArrayEnd)
	}
	if sA.NumHNNotInCommunity != 2 {
		t.Errorf("NumHNNotInCommunity = %d, want 2", sA.NumHNNotInCommunity)
	}

	sB, err := Extract(h, 1, true)
	if err != nil {
		t.Fatalf("Extract(B): %v", err)
	}
	he = sB.LocalToGlobalHE[0]
	if he.IncidenceArrayStart != 2 || he.IncidenceArrayEnd != 4 {
		t.Errorf("window_B = [%d,%d), want [2,4)", he.IncidenceArrayStart, he.IncidenceArrayEnd)
	}
}

// TestExtractEmptyCommunity covers a community with no members: it
// produces an empty child with no error.
func TestExtractEmptyCommunity(t *testing.T) {
	h := buildE1()
	s, err := Extract(h, 77, true)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(s.LocalToGlobalHN) != 0 {
		t.Errorf("expected empty local_to_global_hn, got %v", s.LocalToGlobalHN)
	}
	if s.Child == nil || s.Child.InitialNumNodes() != 0 {
		t.Errorf("expected empty child hypergraph")
	}
}

// TestExtractOrderingRespected checks that with respectOrder, local ids
// increase strictly with global id.
func TestExtractOrderingRespected(t *testing.T) {
	h := hypergraph.Build(hypergraph.BuildInput{
		NumNodes: 5,
		Hyperedges: []hypergraph.RawHyperedge{
			{Pins: []uint32{4, 1, 3, 0}, Weight: 1},
		},
		Communities: []hypergraph.PartitionID{0, 0, 5, 0, 0},
	})
	s, err := Extract(h, 0, true)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i := 1; i < len(s.LocalToGlobalHN); i++ {
		if s.LocalToGlobalHN[i-1] >= s.LocalToGlobalHN[i] {
			t.Fatalf("local_to_global_hn not strictly increasing: %v", s.LocalToGlobalHN)
		}
	}
}

// TestExtractCompleteness checks that every hyperedge with >=1 pin in C
// appears in S(C) with all its original pins, and that the distinct-pin
// count matches the collected local node count.
func TestExtractCompleteness(t *testing.T) {
	h := hypergraph.Build(hypergraph.BuildInput{
		NumNodes: 6,
		Hyperedges: []hypergraph.RawHyperedge{
			{Pins: []uint32{0, 1, 2}, Weight: 1},
			{Pins: []uint32{2, 3, 4}, Weight: 1},
			{Pins: []uint32{4, 5}, Weight: 1},
		},
		Communities: []hypergraph.PartitionID{0, 0, 0, 1, 1, 1},
	})

	s, err := Extract(h, 0, true)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// Community 0 touches hyperedges 0 and 1 (via pins 0,1,2), not edge 2.
	if len(s.LocalToGlobalHE) != 2 {
		t.Fatalf("len(local_to_global_he) = %d, want 2", len(s.LocalToGlobalHE))
	}
	wantDistinctPins := map[uint32]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	if len(s.LocalToGlobalHN) != len(wantDistinctPins) {
		t.Fatalf("len(local_to_global_hn) = %d, want %d", len(s.LocalToGlobalHN), len(wantDistinctPins))
	}
	for _, g := range s.LocalToGlobalHN {
		if !wantDistinctPins[g] {
			t.Errorf("unexpected global id %d in local_to_global_hn", g)
		}
	}
}
