package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "overrides.yaml"))

	_, found, err := s.Lookup(context.Background(), "dark-mode")
	require.NoError(t, err)
	require.False(t, found)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestStore_SetRemove(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "overrides.yaml")
	s := New(path)
	require.Equal(t, path, s.Path())

	require.NoError(t, s.Set(ctx, "dark-mode", true))
	require.NoError(t, s.Set(ctx, "new-search", false))

	enabled, found, err := s.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, enabled)

	// A second store on the same file sees the writes.
	other := New(path)
	all, err := other.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"dark-mode": true, "new-search": false}, all)

	require.NoError(t, s.Remove(ctx, "dark-mode"))
	require.NoError(t, s.Remove(ctx, "dark-mode"))
	_, found, err = other.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.False(t, found)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_ExternalEditIsLive(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	s := New(path)

	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  dark-mode: false\n"), 0o600))
	enabled, found, err := s.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.True(t, found)
	require.False(t, enabled)

	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  dark-mode: true\n"), 0o600))
	enabled, found, err = s.Lookup(ctx, "dark-mode")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, enabled)
}

func TestStore_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# no overrides yet\n"), 0o600))

	s := New(path)
	require.NoError(t, s.Set(context.Background(), "dark-mode", true))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"dark-mode": true}, all)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides: [not, a, map"), 0o600))

	s := New(path)
	_, _, err := s.Lookup(context.Background(), "dark-mode")
	require.ErrorIs(t, err, types.ErrOverrideStore)

	err = s.Set(context.Background(), "dark-mode", true)
	require.ErrorIs(t, err, types.ErrOverrideStore)
}
