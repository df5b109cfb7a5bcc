package bitset

import "testing"

func TestSetBasic(t *testing.T) {
	s := New(130) // spans more than two words
	if s.Test(5) {
		t.Fatal("bit 5 should start clear")
	}
	s.Set(5)
	s.Set(129)
	if !s.Test(5) || !s.Test(129) {
		t.Fatal("expected bits 5 and 129 to be set")
	}
	if s.Test(6) {
		t.Fatal("bit 6 should remain clear")
	}
	s.Clear(5)
	if s.Test(5) {
		t.Fatal("bit 5 should be clear after Clear")
	}
	s.Reset()
	if s.Test(129) {
		t.Fatal("Reset should clear every bit")
	}
}

func TestCombinedDomains(t *testing.T) {
	c := NewCombined(4, 3)
	c.SetNode(0)
	c.SetEdge(0)
	c.SetEdge(2)

	if !c.TestNode(0) {
		t.Error("node 0 should be visited")
	}
	if c.TestNode(1) {
		t.Error("node 1 should not be visited")
	}
	if !c.TestEdge(0) || !c.TestEdge(2) {
		t.Error("edges 0 and 2 should be visited")
	}
	if c.TestEdge(1) {
		t.Error("edge 1 should not be visited")
	}
}
