package hmetis

import (
	"strings"
	"testing"
)

// TestParseTypeEleven covers a hypergraph_type 11 file: edge weights and
// node weights both present.
func TestParseTypeEleven(t *testing.T) {
	input := "3 4 11\n2 1 2\n3 2 3 4\n1 4\n5\n6\n7\n8\n"

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if result.NumHypernodes != 4 {
		t.Fatalf("NumHypernodes = %d, want 4", result.NumHypernodes)
	}
	if len(result.Hyperedges) != 3 {
		t.Fatalf("len(Hyperedges) = %d, want 3", len(result.Hyperedges))
	}

	wantWeights := []uint32{2, 3, 1}
	wantPins := [][]uint32{{0, 1}, {1, 2, 3}, {3}}
	for i, he := range result.Hyperedges {
		if he.Weight != wantWeights[i] {
			t.Errorf("Hyperedges[%d].Weight = %d, want %d", i, he.Weight, wantWeights[i])
		}
		if !equalUint32(he.Pins, wantPins[i]) {
			t.Errorf("Hyperedges[%d].Pins = %v, want %v", i, he.Pins, wantPins[i])
		}
	}

	wantNodeWeights := []uint32{5, 6, 7, 8}
	if !equalUint32(result.NodeWeights, wantNodeWeights) {
		t.Errorf("NodeWeights = %v, want %v", result.NodeWeights, wantNodeWeights)
	}
}

func TestParseSkipsCommentLines(t *testing.T) {
	input := "% this is a comment\n% so is this\n1 3 0\n1 2 3\n"
	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.NumHypernodes != 3 || len(result.Hyperedges) != 1 {
		t.Fatalf("got nodes=%d edges=%d, want 3/1", result.NumHypernodes, len(result.Hyperedges))
	}
}

func TestParseRejectsBadType(t *testing.T) {
	input := "1 2 5\n1 2\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for hypergraph_type 5")
	}
}

func TestParseRejectsOutOfRangePin(t *testing.T) {
	input := "1 2 0\n1 5\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for pin id >= num_hypernodes")
	}
}

func equalUint32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
