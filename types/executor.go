package types

// Executor runs units of work asynchronously.
//
// Tasks submitted through the same Executor run one at a time in FIFO order.
type Executor interface {
	// Submit queues task for execution. It never runs task on the calling goroutine.
	//
	// Returns:
	//   - error: ErrExecutorClosed if the executor no longer accepts work
	Submit(task func()) error
}

// Lifetime reports whether the owning scope is still active.
type Lifetime interface {
	Alive() bool
}
