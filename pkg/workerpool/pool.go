// Package workerpool is a closure-accepting worker pool that exposes a
// barrier between phases. It wraps golang.org/x/sync/errgroup, the
// idiomatic Go answer to fan-out-then-join.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool runs closures concurrently in bounded phases. Each phase is one
// Go/Wait cycle; Wait is the barrier a multi-phase reducer needs between
// its pre-phase and each subsequent phase.
type Pool struct {
	workers int
}

// New creates a Pool that runs up to workers closures concurrently. A
// workers value <= 0 means unlimited (errgroup.SetLimit is left unset).
func New(workers int) *Pool {
	return &Pool{workers: workers}
}

// Workers returns the configured concurrency.
func (p *Pool) Workers() int { return p.workers }

// Phase runs a new barrier-delimited batch: each of fns is submitted as a
// goroutine, and Phase blocks until every one has returned, then returns
// the first non-nil error (standard errgroup semantics; the others are not
// cancelled). If a closure panics, the panic is re-raised on the calling
// goroutine once the barrier is reached.
func (p *Pool) Phase(fns ...func() error) error {
	g, _ := errgroup.WithContext(context.Background())
	if p.workers > 0 {
		g.SetLimit(p.workers)
	}
	var panicOnce sync.Once
	var panicVal any
	for _, fn := range fns {
		fn := fn
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			return fn()
		})
	}
	err := g.Wait()
	if panicVal != nil {
		panic(panicVal)
	}
	return err
}

// RunRange splits [0, n) into up to p.Workers() contiguous chunks (via
// Bounds) and runs fn once per chunk as one Phase.
func (p *Pool) RunRange(n int, fn func(start, end int) error) error {
	workers := p.workers
	if workers <= 0 {
		workers = 1
	}
	bounds := Bounds(n, workers)
	fns := make([]func() error, 0, len(bounds))
	for _, b := range bounds {
		start, end := b.Start, b.End
		fns = append(fns, func() error { return fn(start, end) })
	}
	return p.Phase(fns...)
}

// Range is a contiguous half-open chunk [Start, End).
type Range struct {
	Start, End int
}

// Bounds splits [0, n) into `chunks` contiguous ranges, front-loading the
// remainder so earlier chunks get at most one extra element.
func Bounds(n, chunks int) []Range {
	if chunks <= 0 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	if n == 0 || chunks == 0 {
		return nil
	}

	bounds := make([]Range, 0, chunks)
	chunkSize := n / chunks
	extra := n % chunks
	start := 0
	for i := 0; i < chunks; i++ {
		size := chunkSize
		if i < extra {
			size++
		}
		end := start + size
		bounds = append(bounds, Range{Start: start, End: end})
		start = end
	}
	return bounds
}
