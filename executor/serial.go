// Package executor provides background execution contexts.
package executor

import (
	"context"
	"sync"

	"github.com/eapache/queue"

	"github.com/yhekr/abexp/internal/fanout"
	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/types"
)

// Serial runs submitted tasks one at a time, in submission order, on a
// single background goroutine.
//
// The queue is unbounded so Submit never blocks the caller, which makes it
// safe to call from latency-sensitive paths.
//
// Thread Safety: Submit, Sync and Close are safe for concurrent use.
type Serial struct {
	mu     sync.Mutex
	tasks  *queue.Queue
	closed bool

	wake chan struct{}
	done chan struct{}

	logger types.Logger
}

var _ types.Executor = (*Serial)(nil)

// NewSerial starts a serial executor.
//
// Parameters:
//   - log: Receives task panics (nil means discard)
//
// Returns:
//   - *Serial: Running executor; call Close to stop it
func NewSerial(log types.Logger) *Serial {
	if log == nil {
		log = logger.NewNop()
	}

	s := &Serial{
		tasks:  queue.New(),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: log,
	}
	go s.run()

	return s
}

// Submit queues task for execution.
//
// Returns:
//   - error: types.ErrExecutorClosed after Close was called
func (s *Serial) Submit(task func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.ErrExecutorClosed
	}
	s.tasks.Add(task)
	s.mu.Unlock()

	s.signal()

	return nil
}

// Pending returns the number of queued tasks not yet started.
func (s *Serial) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tasks.Length()
}

// Sync waits until every task submitted before the call has run.
//
// Returns:
//   - error: ctx.Err() on cancellation, types.ErrExecutorClosed if closed
func (s *Serial) Sync(ctx context.Context) error {
	reached := make(chan struct{})
	if err := s.Submit(func() { close(reached) }); err != nil {
		return err
	}

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, runs the tasks already queued and waits for
// the worker to exit. Calling Close more than once is safe.
//
// Returns:
//   - error: ctx.Err() if the queue did not drain in time
func (s *Serial) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.signal()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the worker exited after Close.
func (s *Serial) Done() <-chan struct{} {
	return s.done
}

func (s *Serial) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Serial) run() {
	defer close(s.done)

	for {
		s.mu.Lock()
		if s.tasks.Length() == 0 {
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			<-s.wake

			continue
		}
		task, _ := s.tasks.Remove().(func())
		s.mu.Unlock()

		s.exec(task)
	}
}

func (s *Serial) exec(task func()) {
	if task == nil {
		return
	}

	err := fanout.Call(func(fn func()) error {
		fn()
		return nil
	}, task)
	if err != nil {
		s.logger.Error("background task failed", "error", err)
	}
}
