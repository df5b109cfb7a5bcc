package coarsen

import "testing"

// TestSlotForOrdersByAscendingCommunity covers a single hyperedge split
// 2/2 between communities 0 and 1: windows [0,2) and [2,4).
func TestSlotForOrdersByAscendingCommunity(t *testing.T) {
	sizes := communitySizes{0: 2, 1: 2}

	start, end, err := slotFor(sizes, 0)
	if err != nil {
		t.Fatalf("slotFor(0): %v", err)
	}
	if start != 0 || end != 2 {
		t.Errorf("window for community 0 = [%d,%d), want [0,2)", start, end)
	}

	start, end, err = slotFor(sizes, 1)
	if err != nil {
		t.Fatalf("slotFor(1): %v", err)
	}
	if start != 2 || end != 4 {
		t.Errorf("window for community 1 = [%d,%d), want [2,4)", start, end)
	}
}

// TestSlotForDisjointAndCovering checks the slot-disjointness invariant:
// windows for every community touching a hyperedge are disjoint and
// their union covers the full reserved range.
func TestSlotForDisjointAndCovering(t *testing.T) {
	sizes := communitySizes{5: 3, 1: 1, 9: 2}
	total := uint32(0)
	for _, n := range sizes {
		total += n
	}

	type window struct{ start, end uint32 }
	var windows []window
	for c := range sizes {
		start, end, err := slotFor(sizes, c)
		if err != nil {
			t.Fatalf("slotFor(%d): %v", c, err)
		}
		windows = append(windows, window{start, end})
	}

	covered := make([]bool, total)
	for _, w := range windows {
		for i := w.start; i < w.end; i++ {
			if covered[i] {
				t.Fatalf("position %d covered by more than one community window", i)
			}
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Errorf("position %d not covered by any community window", i)
		}
	}
}

func TestSlotForMissingCommunityErrors(t *testing.T) {
	sizes := communitySizes{0: 1}
	if _, _, err := slotFor(sizes, 99); err == nil {
		t.Fatal("expected error for community absent from size map")
	}
}
