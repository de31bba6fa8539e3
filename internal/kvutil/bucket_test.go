package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	abtest "github.com/yhekr/abexp/testing"
)

func TestEnsureBucket(t *testing.T) {
	_, nc := abtest.StartEmbeddedNATS(t)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	t.Run("creates missing bucket", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		kv, err := EnsureBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "fresh", History: 1}, 3)
		require.NoError(t, err)
		require.Equal(t, "fresh", kv.Bucket())
	})

	t.Run("opens existing bucket", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg := jetstream.KeyValueConfig{Bucket: "existing", History: 1}
		first, err := EnsureBucket(ctx, js, cfg, 0)
		require.NoError(t, err)
		_, err = first.Put(ctx, "dark-mode", []byte("true"))
		require.NoError(t, err)

		second, err := EnsureBucket(ctx, js, cfg, 0)
		require.NoError(t, err)
		entry, err := second.Get(ctx, "dark-mode")
		require.NoError(t, err)
		require.Equal(t, "true", string(entry.Value()))
	})

	t.Run("concurrent creates of the same bucket", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = EnsureBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "shared", History: 1}, 5)
			}()
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "worker %d", i)
		}
	})

	t.Run("existing bucket with different history", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: "deep-history", History: 5})
		require.NoError(t, err)

		_, err = EnsureBucket(ctx, js, jetstream.KeyValueConfig{
			Bucket:      "deep-history",
			Description: "overrides",
			History:     1,
		}, 3)
		require.ErrorIs(t, err, ErrBucketConflict)
		require.Contains(t, err.Error(), "keeps 5 revisions, want 1")
	})

	t.Run("existing bucket with different storage", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  "in-memory",
			History: 1,
			Storage: jetstream.MemoryStorage,
		})
		require.NoError(t, err)

		_, err = EnsureBucket(ctx, js, jetstream.KeyValueConfig{
			Bucket:      "in-memory",
			Description: "overrides",
			History:     1,
			Storage:     jetstream.FileStorage,
		}, 3)
		require.ErrorIs(t, err, ErrBucketConflict)
	})

	t.Run("existing bucket with other description is reused", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: "described", History: 1})
		require.NoError(t, err)

		kv, err := EnsureBucket(ctx, js, jetstream.KeyValueConfig{
			Bucket:      "described",
			Description: "abexp cohort overrides",
			History:     1,
		}, 3)
		require.NoError(t, err)
		require.Equal(t, "described", kv.Bucket())
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := EnsureBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "never"}, 3)
		require.Error(t, err)
	})
}
