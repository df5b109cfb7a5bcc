package coarsen

import (
	"testing"

	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

func TestComputeContractionIndexAssignsPositions(t *testing.T) {
	h := hypergraph.New(8, 0)
	pool := workerpool.New(2)
	history := []ContractionMemento{{V: 5}, {V: 3}, {V: 7}}

	idx, err := ComputeContractionIndex(h, pool, history)
	if err != nil {
		t.Fatalf("ComputeContractionIndex: %v", err)
	}
	want := map[uint32]int32{5: 0, 3: 1, 7: 2}
	for v, wantIdx := range want {
		if idx[v] != wantIdx {
			t.Errorf("idx[%d] = %d, want %d", v, idx[v], wantIdx)
		}
	}
	for v, got := range idx {
		if _, contracted := want[uint32(v)]; !contracted && got != -1 {
			t.Errorf("idx[%d] = %d, want -1 (never contracted)", v, got)
		}
	}
}

func TestComputeContractionIndexEmptyHistory(t *testing.T) {
	h := hypergraph.New(3, 0)
	pool := workerpool.New(2)
	idx, err := ComputeContractionIndex(h, pool, nil)
	if err != nil {
		t.Fatalf("ComputeContractionIndex: %v", err)
	}
	for v, got := range idx {
		if got != -1 {
			t.Errorf("idx[%d] = %d, want -1", v, got)
		}
	}
}

func TestComputeContractionIndexRejectsDuplicateNode(t *testing.T) {
	h := hypergraph.New(4, 0)
	pool := workerpool.New(1)
	history := []ContractionMemento{{V: 1}, {V: 1}}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for hypernode appearing twice in history")
		}
	}()
	_, _ = ComputeContractionIndex(h, pool, history)
}
