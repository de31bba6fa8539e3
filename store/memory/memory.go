// Package memory provides an in-process override store.
package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/yhekr/abexp/types"
)

// Store keeps overrides in a concurrent map.
type Store struct {
	overrides *xsync.Map[string, bool]
}

var _ types.OverrideStore = (*Store)(nil)

// New creates a store seeded with initial overrides (may be nil).
func New(initial map[string]bool) *Store {
	s := &Store{overrides: xsync.NewMap[string, bool]()}
	for key, enabled := range initial {
		s.overrides.Store(key, enabled)
	}

	return s
}

// Lookup returns the override for key.
func (s *Store) Lookup(_ context.Context, key string) (bool, bool, error) {
	enabled, found := s.overrides.Load(key)

	return enabled, found, nil
}

// Set stores an override.
func (s *Store) Set(_ context.Context, key string, enabled bool) error {
	s.overrides.Store(key, enabled)

	return nil
}

// Remove deletes an override.
func (s *Store) Remove(_ context.Context, key string) error {
	s.overrides.Delete(key)

	return nil
}

// List returns a copy of all overrides.
func (s *Store) List(_ context.Context) (map[string]bool, error) {
	out := make(map[string]bool, s.overrides.Size())
	s.overrides.Range(func(key string, enabled bool) bool {
		out[key] = enabled
		return true
	})

	return out, nil
}
