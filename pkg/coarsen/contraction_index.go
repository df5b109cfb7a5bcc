package coarsen

import (
	"sync/atomic"

	"hypercoarsen/pkg/assert"
	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

// ComputeContractionIndex is ContractionIndexer: it derives, for every
// hypernode of h, its position in the global contraction history (-1 if
// the hypernode was never contracted). Each hypernode may appear in
// history at most once; a violation is a programming bug, not a
// recoverable condition.
//
// For histories too small to profit from parallel dispatch the slices
// would be smaller than the pool's chunking can usefully split — in that
// case the work runs on the calling goroutine instead of through pool.
func ComputeContractionIndex(h *hypergraph.Hypergraph, pool *workerpool.Pool, history []ContractionMemento) ([]int32, error) {
	contractionIndex := make([]int32, h.InitialNumNodes())
	for i := range contractionIndex {
		contractionIndex[i] = -1
	}
	if len(history) == 0 {
		return contractionIndex, nil
	}

	assign := func(start, end int) error {
		for i := start; i < end; i++ {
			v := history[i].V
			swapped := atomic.CompareAndSwapInt32(&contractionIndex[v], -1, int32(i))
			assert.Thatf(swapped, "coarsen: contraction index: hypernode %d appears more than once in history", v)
		}
		return nil
	}

	// step < 1 means the pool would carve out slices smaller than one
	// element per worker; run sequentially instead of paying dispatch
	// overhead for no parallelism gain.
	step := len(history) / max(pool.Workers(), 1)
	if step < 1 {
		return contractionIndex, assign(0, len(history))
	}

	return contractionIndex, pool.RunRange(len(history), assign)
}
