// Package kvutil provides utilities for working with NATS JetStream KeyValue stores.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultMaxRetries is used when EnsureBucket is given a non-positive retry count.
const DefaultMaxRetries = 3

// ErrBucketConflict is returned when a bucket with the requested name already
// exists but its layout (history depth or storage backend) differs from the
// requested one. Such a bucket is never reused.
var ErrBucketConflict = errors.New("kv bucket exists with a different layout")

// EnsureBucket creates or opens a KV bucket with retry logic.
//
// Several machines may race to create the same override bucket on first
// start. Losing the race surfaces as jetstream.ErrBucketExists; the existing
// bucket is then opened and checked with CheckLayout. Transient failures are
// retried with exponential backoff (10ms, 20ms, 40ms, ...). A layout conflict
// is final and is not retried.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: KV bucket configuration
//   - maxRetries: Maximum number of attempts (DefaultMaxRetries if <= 0)
//
// Returns:
//   - jetstream.KeyValue: The KV bucket instance
//   - error: ErrBucketConflict, the context error, or the last failure
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
//	    Bucket:  "abexp-overrides",
//	    History: 1,
//	}, 3)
func EnsureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.KeyValueConfig,
	maxRetries int,
) (jetstream.KeyValue, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var lastErr error
	for attempt := range maxRetries {
		kv, err := createOrOpen(ctx, js, config)
		if err == nil || errors.Is(err, ErrBucketConflict) {
			return kv, err
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}

		backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded by maxRetries
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("ensure bucket %s: %w", config.Bucket, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("ensure bucket %s after %d attempts: %w", config.Bucket, maxRetries, lastErr)
}

func createOrOpen(ctx context.Context, js jetstream.JetStream, config jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, config)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketExists) {
		return nil, err
	}

	kv, err = js.KeyValue(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("open existing bucket: %w", err)
	}
	if err := CheckLayout(ctx, kv, config); err != nil {
		return nil, err
	}

	return kv, nil
}

// CheckLayout verifies that an opened bucket keeps the history depth and
// storage backend requested in config. Description and replica count are not
// compared. A zero History in config means one entry, as in JetStream.
//
// Returns:
//   - error: ErrBucketConflict describing the first mismatch, or a status failure
func CheckLayout(ctx context.Context, kv jetstream.KeyValue, config jetstream.KeyValueConfig) error {
	status, err := kv.Status(ctx)
	if err != nil {
		return fmt.Errorf("bucket status: %w", err)
	}

	wantHistory := int64(config.History)
	if wantHistory == 0 {
		wantHistory = 1
	}
	if got := status.History(); got != wantHistory {
		return fmt.Errorf("%w: bucket %s keeps %d revisions, want %d",
			ErrBucketConflict, config.Bucket, got, wantHistory)
	}

	if bs, ok := status.(*jetstream.KeyValueBucketStatus); ok && bs.StreamInfo() != nil {
		if got := bs.StreamInfo().Config.Storage; got != config.Storage {
			return fmt.Errorf("%w: bucket %s uses %s storage, want %s",
				ErrBucketConflict, config.Bucket, got, config.Storage)
		}
	}

	return nil
}
