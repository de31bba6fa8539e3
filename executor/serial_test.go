package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/types"
)

func newSerial(t *testing.T) *Serial {
	t.Helper()

	s := NewSerial(logger.NewTest(t))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})

	return s
}

func syncOrFail(t *testing.T, s *Serial) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Sync(ctx))
}

func TestSerial_FIFO(t *testing.T) {
	s := newSerial(t)

	var order []int
	for i := range 100 {
		require.NoError(t, s.Submit(func() { order = append(order, i) }))
	}
	syncOrFail(t, s)

	require.Len(t, order, 100)
	for i, v := range order {
		require.Equal(t, i, v)
	}
}

func TestSerial_NeverRunsOnCaller(t *testing.T) {
	s := newSerial(t)

	gate := make(chan struct{})
	require.NoError(t, s.Submit(func() { <-gate }))

	var ran atomic.Bool
	require.NoError(t, s.Submit(func() { ran.Store(true) }))

	require.False(t, ran.Load())
	require.Equal(t, 1, s.Pending())

	close(gate)
	syncOrFail(t, s)
	require.True(t, ran.Load())
}

func TestSerial_OneAtATime(t *testing.T) {
	s := newSerial(t)

	var (
		running atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = s.Submit(func() {
					n := running.Add(1)
					if n > maxSeen.Load() {
						maxSeen.Store(n)
					}
					running.Add(-1)
				})
			}
		}()
	}
	wg.Wait()
	syncOrFail(t, s)

	require.Equal(t, int32(1), maxSeen.Load())
}

func TestSerial_PanicIsolation(t *testing.T) {
	s := newSerial(t)

	require.NoError(t, s.Submit(func() { panic("task exploded") }))

	var ran atomic.Bool
	require.NoError(t, s.Submit(func() { ran.Store(true) }))
	syncOrFail(t, s)

	require.True(t, ran.Load())
}

func TestSerial_Close(t *testing.T) {
	s := NewSerial(nil)

	var count atomic.Int32
	for range 10 {
		require.NoError(t, s.Submit(func() { count.Add(1) }))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))

	require.Equal(t, int32(10), count.Load(), "queued tasks drain before close completes")
	require.ErrorIs(t, s.Submit(func() {}), types.ErrExecutorClosed)
	require.ErrorIs(t, s.Sync(ctx), types.ErrExecutorClosed)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done must be closed after Close")
	}
}

func TestSerial_CloseTimeout(t *testing.T) {
	s := NewSerial(nil)

	gate := make(chan struct{})
	require.NoError(t, s.Submit(func() { <-gate }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, s.Close(ctx), context.DeadlineExceeded)

	close(gate)
	<-s.Done()
}
