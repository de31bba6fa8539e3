package types

import "errors"

// Sentinel errors for the abexp library.
//
// Components wrap external errors with context using fmt.Errorf("%s: %w", msg, err)
// so callers can match them with errors.Is().

// Engine errors - returned by NewEngine and the override mutation surface.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExperimentSourceRequired is returned when the experiment source is nil.
	ErrExperimentSourceRequired = errors.New("experiment source is required")

	// ErrOverrideStoreRequired is returned when the override store is nil.
	ErrOverrideStoreRequired = errors.New("override store is required")

	// ErrEmptyKey is returned when an override is mutated with an empty experiment key.
	ErrEmptyKey = errors.New("experiment key is empty")
)

// Collaborator errors.
var (
	// ErrExperimentSource wraps failures of the experiment catalog.
	ErrExperimentSource = errors.New("experiment source failure")

	// ErrOverrideStore wraps failures of the override store.
	ErrOverrideStore = errors.New("override store failure")

	// ErrStoreUnavailable marks store failures caused by lost connectivity.
	ErrStoreUnavailable = errors.New("override store unavailable")

	// ErrMachineID is returned when no machine identifier can be obtained.
	ErrMachineID = errors.New("machine identifier unavailable")

	// ErrExecutorClosed is returned by Executor.Submit after the executor stopped.
	ErrExecutorClosed = errors.New("executor closed")

	// ErrListenerPanic wraps a panic raised by an observer, subscriber or task.
	ErrListenerPanic = errors.New("listener panicked")
)
