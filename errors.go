package abexp

import "github.com/yhekr/abexp/types"

// Sentinel errors, re-exported from the types package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrExperimentSourceRequired is returned when the experiment source is nil.
	ErrExperimentSourceRequired = types.ErrExperimentSourceRequired

	// ErrOverrideStoreRequired is returned when the override store is nil.
	ErrOverrideStoreRequired = types.ErrOverrideStoreRequired

	// ErrEmptyKey is returned when an override is mutated with an empty key.
	ErrEmptyKey = types.ErrEmptyKey

	// ErrExperimentSource wraps failures of the experiment catalog.
	ErrExperimentSource = types.ErrExperimentSource

	// ErrOverrideStore wraps failures of the override store.
	ErrOverrideStore = types.ErrOverrideStore

	// ErrStoreUnavailable marks store failures caused by lost connectivity.
	ErrStoreUnavailable = types.ErrStoreUnavailable

	// ErrMachineID is returned when no machine identifier can be obtained.
	ErrMachineID = types.ErrMachineID
)
