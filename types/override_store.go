package types

import "context"

// OverrideStore persists forced cohort values keyed by experiment key.
//
// The store is owned outside the engine (settings file, KV bucket, ...).
// The engine never caches its content: every query performs a Lookup so
// edits made by a settings editor are visible immediately.
//
// Implementations must be safe for concurrent use.
type OverrideStore interface {
	// Lookup returns the override for key.
	//
	// Returns:
	//   - enabled: Forced value (meaningful only when found is true)
	//   - found: true if an override exists for key
	//   - err: Storage failure
	Lookup(ctx context.Context, key string) (enabled bool, found bool, err error)

	// Set forces the experiment into the experimental (true) or control (false) group.
	Set(ctx context.Context, key string, enabled bool) error

	// Remove deletes the override for key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// List returns a copy of all overrides.
	List(ctx context.Context) (map[string]bool, error)
}
