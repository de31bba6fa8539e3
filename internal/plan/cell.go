package plan

import (
	"context"
	"sync"
	"sync/atomic"
)

// Cell memoizes a plan computed exactly once.
//
// Concurrent first callers block until the single computation finishes and
// all of them observe the same *Plan.
type Cell struct {
	mu      sync.Mutex
	plan    atomic.Pointer[Plan]
	compute func(ctx context.Context) *Plan
	onPanic func(rec any)
}

// NewCell creates a cell around compute.
//
// A nil result is memoized as Empty(). A panic inside compute is recovered
// and reported to onPanic (which may be nil). That caller gets Empty(), but
// nothing is memoized, so the next Get computes again.
func NewCell(compute func(ctx context.Context) *Plan, onPanic func(rec any)) *Cell {
	return &Cell{compute: compute, onPanic: onPanic}
}

// Get returns the plan, computing it on first use.
//
// The first caller's context values are passed to compute without its
// cancellation, so an abandoned first query cannot poison the plan. A nil
// ctx is treated as context.Background().
func (c *Cell) Get(ctx context.Context) *Plan {
	if p := c.plan.Load(); p != nil {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p := c.plan.Load(); p != nil {
		return p
	}

	if ctx == nil {
		ctx = context.Background()
	}

	p, ok := c.run(context.WithoutCancel(ctx))
	if !ok {
		return Empty()
	}
	if p == nil {
		p = Empty()
	}
	c.plan.Store(p)

	return p
}

// Computed reports whether a plan has been memoized.
func (c *Cell) Computed() bool {
	return c.plan.Load() != nil
}

func (c *Cell) run(ctx context.Context) (p *Plan, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			p, ok = nil, false
			if c.onPanic != nil {
				c.onPanic(rec)
			}
		}
	}()

	return c.compute(ctx), true
}
