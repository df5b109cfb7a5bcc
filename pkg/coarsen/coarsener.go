package coarsen

import "hypercoarsen/pkg/hypergraph"

// Coarsener is the inner coarsening policy run independently on each
// community's child hypergraph: any rating-driven contraction strategy.
// Treated as an external collaborator — this package only needs to call
// it between Extract and Merge, never its internals.
type Coarsener interface {
	Coarsen(child *hypergraph.Hypergraph) error
}

// NoOpCoarsener leaves its child hypergraph untouched. Useful for the
// round-trip property (extract, run the identity coarsener, merge leaves H
// unchanged modulo recomputed hashes) and as the CLI's default when no
// inner coarsening policy is wired in.
type NoOpCoarsener struct{}

func (NoOpCoarsener) Coarsen(*hypergraph.Hypergraph) error { return nil }
