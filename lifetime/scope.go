// Package lifetime provides liveness handles for background work.
package lifetime

import (
	"context"

	"github.com/yhekr/abexp/types"
)

// Scope is a liveness handle backed by a context.
//
// A scope is alive until Terminate is called or its parent context ends.
// Work queued for a scope checks Alive before acting and becomes a no-op
// once the scope is gone.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

var _ types.Lifetime = (*Scope)(nil)

// New creates a scope that ends with parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)

	return &Scope{ctx: ctx, cancel: cancel}
}

// Alive reports whether the scope is still active.
func (s *Scope) Alive() bool {
	return s.ctx.Err() == nil
}

// Terminate ends the scope. Safe to call more than once.
func (s *Scope) Terminate() {
	s.cancel()
}

// Context returns a context cancelled when the scope ends.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Done is closed when the scope ends.
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}
