package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestStatic_ListExperiments(t *testing.T) {
	t.Run("returns all experiments in order", func(t *testing.T) {
		experiments := []types.Experiment{
			{Key: "dark-mode", Fraction: types.Float(0.3)},
			{Key: "new-search"},
			{Key: "compact-menu"},
		}
		src := NewStatic(experiments)

		result, err := src.ListExperiments(context.Background())

		require.NoError(t, err)
		require.Equal(t, experiments, result)
	})

	t.Run("returns empty list when no experiments", func(t *testing.T) {
		src := NewStatic(nil)

		result, err := src.ListExperiments(context.Background())

		require.NoError(t, err)
		require.Empty(t, result)
	})

	t.Run("does not share fractions with callers", func(t *testing.T) {
		fraction := 0.3
		src := NewStatic([]types.Experiment{{Key: "dark-mode", Fraction: &fraction}})
		fraction = 0.9

		result, err := src.ListExperiments(context.Background())
		require.NoError(t, err)
		*result[0].Fraction = 0.1

		again, _ := src.ListExperiments(context.Background())
		require.InDelta(t, 0.3, *again[0].Fraction, 1e-12)
	})
}

func TestStatic_RegisterAndUpdate(t *testing.T) {
	src := NewStatic(nil)
	src.Register("dark-mode", types.Float(0.2))
	src.Register("new-search", nil)

	result, err := src.ListExperiments(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "dark-mode", result[0].Key)
	require.True(t, result[0].HasFraction())
	require.False(t, result[1].HasFraction())

	src.Update([]types.Experiment{{Key: "only"}})
	result, err = src.ListExperiments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.Experiment{{Key: "only"}}, result)
}
