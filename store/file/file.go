// Package file provides an override store backed by a YAML settings file.
//
// The file is read on every lookup so that edits made by another process,
// or by hand, take effect on the next query. The layout is:
//
//	overrides:
//	  dark-mode: true
//	  new-search: false
//
// A missing file is an empty store.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yhekr/abexp/types"
)

// document is the on-disk layout.
type document struct {
	Overrides map[string]bool `yaml:"overrides"`
}

// Store persists overrides in a YAML file.
//
// Writes from this process are serialized; each write replaces the file
// atomically (temp file + rename) so readers never observe a partial file.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ types.OverrideStore = (*Store)(nil)

// New creates a store for path. The file is created on the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup reads the file and returns the override for key.
func (s *Store) Lookup(_ context.Context, key string) (bool, bool, error) {
	doc, err := s.read()
	if err != nil {
		return false, false, err
	}
	enabled, found := doc.Overrides[key]

	return enabled, found, nil
}

// Set writes an override.
func (s *Store) Set(_ context.Context, key string, enabled bool) error {
	return s.update(func(doc *document) bool {
		if cur, ok := doc.Overrides[key]; ok && cur == enabled {
			return false
		}
		doc.Overrides[key] = enabled

		return true
	})
}

// Remove deletes an override.
func (s *Store) Remove(_ context.Context, key string) error {
	return s.update(func(doc *document) bool {
		if _, ok := doc.Overrides[key]; !ok {
			return false
		}
		delete(doc.Overrides, key)

		return true
	})
}

// List returns all overrides in the file.
func (s *Store) List(_ context.Context) (map[string]bool, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	return doc.Overrides, nil
}

func (s *Store) read() (*document, error) {
	doc := &document{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc.Overrides = map[string]bool{}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrOverrideStore, s.path, err)
	}

	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", types.ErrOverrideStore, s.path, err)
	}
	if doc.Overrides == nil {
		doc.Overrides = map[string]bool{}
	}

	return doc, nil
}

// update applies mutate under the write lock and persists the result when
// mutate reports a change.
func (s *Store) update(mutate func(*document) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if !mutate(doc) {
		return nil
	}

	return s.write(doc)
}

func (s *Store) write(doc *document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", types.ErrOverrideStore, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", types.ErrOverrideStore, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".overrides-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", types.ErrOverrideStore, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", types.ErrOverrideStore, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", types.ErrOverrideStore, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", types.ErrOverrideStore, s.path, err)
	}

	return nil
}
