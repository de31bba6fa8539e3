// Package fanout provides an ordered, failure-isolated listener registry.
package fanout

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yhekr/abexp/types"
)

type entry[T any] struct {
	id       uint64
	listener T
}

// Registry holds listeners in registration order.
//
// Reads take an immutable snapshot without locking, so notification never
// blocks registration and a listener may register or unregister others
// while being notified. Writes are copy-on-write under a mutex.
type Registry[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries atomic.Pointer[[]entry[T]]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	r := &Registry[T]{}
	empty := make([]entry[T], 0)
	r.entries.Store(&empty)

	return r
}

// Add appends listener and returns a function that removes it.
//
// The returned function is idempotent.
func (r *Registry[T]) Add(listener T) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID

	cur := *r.entries.Load()
	next := make([]entry[T], len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, entry[T]{id: id, listener: listener})
	r.entries.Store(&next)

	return func() { r.remove(id) }
}

func (r *Registry[T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.entries.Load()
	next := make([]entry[T], 0, len(cur))
	for _, e := range cur {
		if e.id != id {
			next = append(next, e)
		}
	}
	r.entries.Store(&next)
}

// Len returns the number of registered listeners.
func (r *Registry[T]) Len() int {
	return len(*r.entries.Load())
}

// Notify calls fn for every listener in registration order.
//
// Each call is isolated: an error or a panic from one listener is passed to
// onFailure (panics wrapped in types.ErrListenerPanic) and the remaining
// listeners are still notified.
//
// Parameters:
//   - fn: Invokes a single listener
//   - onFailure: Receives the listener position and its failure; may be nil
//
// Returns:
//   - int: Number of listeners that failed
func (r *Registry[T]) Notify(fn func(T) error, onFailure func(idx int, err error)) int {
	failed := 0
	for i, e := range *r.entries.Load() {
		if err := Call(fn, e.listener); err != nil {
			failed++
			if onFailure != nil {
				onFailure(i, err)
			}
		}
	}

	return failed
}

// Call invokes fn(listener), converting a panic into an error.
func Call[T any](fn func(T) error, listener T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", types.ErrListenerPanic, rec)
		}
	}()

	return fn(listener)
}
