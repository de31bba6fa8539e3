// Package natskv provides an override store backed by a NATS JetStream
// KeyValue bucket, shared by every process connected to the same cluster.
//
// Each override is one key holding "true" or "false". Removing an override
// deletes the key.
package natskv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/yhekr/abexp/internal/kvutil"
	"github.com/yhekr/abexp/internal/natsutil"
	"github.com/yhekr/abexp/types"
)

// DefaultBucket is the bucket used when Config.Bucket is empty.
const DefaultBucket = "abexp-overrides"

// ErrBucketConflict is returned by New when the bucket already exists with a
// history depth or storage backend other than the override layout.
var ErrBucketConflict = kvutil.ErrBucketConflict

// Config describes the KV bucket backing the store.
type Config struct {
	// Bucket is the KV bucket name.
	Bucket string `yaml:"bucket"`

	// Replicas is the number of bucket replicas (1 if zero).
	Replicas int `yaml:"replicas"`

	// InMemory selects memory storage instead of file storage.
	InMemory bool `yaml:"inMemory"`

	// MaxRetries bounds bucket creation attempts (kvutil.DefaultMaxRetries if zero).
	MaxRetries int `yaml:"maxRetries"`
}

// Store implements types.OverrideStore on a JetStream KV bucket.
type Store struct {
	kv jetstream.KeyValue
}

var _ types.OverrideStore = (*Store)(nil)

// New creates or opens the override bucket and returns a store for it.
//
// Parameters:
//   - ctx: Bounds bucket creation
//   - nc: Connected NATS client
//   - cfg: Bucket configuration
//
// Returns:
//   - *Store: Store bound to the bucket
//   - error: JetStream setup failure, wrapped with types.ErrOverrideStore
//
// Example:
//
//	nc, _ := nats.Connect(nats.DefaultURL)
//	overrides, err := natskv.New(ctx, nc, natskv.Config{Bucket: "abexp-overrides"})
//	if err != nil { /* handle */ }
func New(ctx context.Context, nc *nats.Conn, cfg Config) (*Store, error) {
	if nc == nil {
		return nil, fmt.Errorf("%w: NATS connection is required", types.ErrOverrideStore)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, natsutil.WrapStoreError("jetstream", err)
	}

	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Replicas <= 0 {
		cfg.Replicas = 1
	}
	storage := jetstream.FileStorage
	if cfg.InMemory {
		storage = jetstream.MemoryStorage
	}

	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "abexp cohort overrides",
		History:     1,
		Storage:     storage,
		Replicas:    cfg.Replicas,
	}, cfg.MaxRetries)
	if err != nil {
		return nil, natsutil.WrapStoreError("ensure bucket "+cfg.Bucket, err)
	}

	return NewFromKV(kv), nil
}

// NewFromKV wraps an existing bucket.
func NewFromKV(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// Lookup returns the override stored under key.
func (s *Store) Lookup(ctx context.Context, key string) (bool, bool, error) {
	entry, err := s.kv.Get(ctx, key)
	if isMissing(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, natsutil.WrapStoreError("get "+key, err)
	}

	enabled, err := decode(entry.Value())
	if err != nil {
		return false, false, fmt.Errorf("%w: key %s: %w", types.ErrOverrideStore, key, err)
	}

	return enabled, true, nil
}

// Set stores an override.
func (s *Store) Set(ctx context.Context, key string, enabled bool) error {
	if _, err := s.kv.Put(ctx, key, encode(enabled)); err != nil {
		return natsutil.WrapStoreError("put "+key, err)
	}

	return nil
}

// Remove deletes an override.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil && !isMissing(err) {
		return natsutil.WrapStoreError("delete "+key, err)
	}

	return nil
}

// List returns every override in the bucket.
//
// Keys holding values other than "true" or "false" are skipped.
func (s *Store) List(ctx context.Context) (map[string]bool, error) {
	out := map[string]bool{}

	lister, err := s.kv.ListKeys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return out, nil
	}
	if err != nil {
		return nil, natsutil.WrapStoreError("list", err)
	}
	defer lister.Stop() //nolint:errcheck

	keys := make([]string, 0)
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	for _, key := range keys {
		enabled, found, err := s.Lookup(ctx, key)
		if errors.Is(err, types.ErrStoreUnavailable) {
			return nil, err
		}
		if err != nil || !found {
			continue
		}
		out[key] = enabled
	}

	return out, nil
}

func isMissing(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted)
}

func encode(enabled bool) []byte {
	return []byte(strconv.FormatBool(enabled))
}

func decode(value []byte) (bool, error) {
	switch string(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected override value %q", value)
	}
}
