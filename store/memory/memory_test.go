package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New(map[string]bool{"dark-mode": true})

	enabled, found, err := s.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, enabled)

	_, found, err = s.Lookup(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "new-search", false))
	enabled, found, err = s.Lookup(ctx, "new-search")
	require.NoError(t, err)
	require.True(t, found)
	require.False(t, enabled)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"dark-mode": true, "new-search": false}, all)

	require.NoError(t, s.Remove(ctx, "dark-mode"))
	require.NoError(t, s.Remove(ctx, "dark-mode"))
	_, found, err = s.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStore_ListIsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	require.NoError(t, s.Set(ctx, "a", true))

	all, err := s.List(ctx)
	require.NoError(t, err)
	all["a"] = false
	all["b"] = true

	enabled, _, _ := s.Lookup(ctx, "a")
	require.True(t, enabled)
	_, found, _ := s.Lookup(ctx, "b")
	require.False(t, found)
}

func TestStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	var g errgroup.Group
	for i := range 16 {
		g.Go(func() error {
			key := fmt.Sprintf("exp-%d", i%4)
			for j := range 100 {
				if err := s.Set(ctx, key, j%2 == 0); err != nil {
					return err
				}
				if _, _, err := s.Lookup(ctx, key); err != nil {
					return err
				}
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}
