package lifetime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	t.Run("terminate ends scope", func(t *testing.T) {
		s := New(context.Background())
		require.True(t, s.Alive())

		s.Terminate()
		s.Terminate()

		require.False(t, s.Alive())
		require.ErrorIs(t, s.Context().Err(), context.Canceled)
		<-s.Done()
	})

	t.Run("parent cancellation ends scope", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		s := New(parent)
		require.True(t, s.Alive())

		cancel()

		require.False(t, s.Alive())
	})
}
