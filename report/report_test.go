package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestStatusText(t *testing.T) {
	snap := types.Snapshot{
		Seed: 320,
		Decisions: []types.CohortDecision{
			{Key: "zeta", Enabled: true},
			{Key: "Beta", Enabled: false},
			{Key: "alpha", Enabled: true},
		},
	}

	want := "Optional Features Status:\n" +
		"alpha: on\n" +
		"Beta: off\n" +
		"zeta: on\n"
	require.Equal(t, want, StatusText(snap))
	require.Equal(t, "zeta", snap.Decisions[0].Key, "input must not be reordered")
}

func TestStatusText_Empty(t *testing.T) {
	require.Equal(t, "Optional Features Status:\n", StatusText(types.Snapshot{}))
}

func TestSettingsLines(t *testing.T) {
	lines := SettingsLines([]types.ExperimentStatus{
		{Key: "dark-mode", Enabled: true, Forced: true},
		{Key: "new-search", Enabled: false, Forced: true},
		{Key: "compact-menu", Enabled: true},
		{Key: "tooltips", Enabled: false},
	})

	require.Equal(t, []string{
		"dark-mode: force experimental group",
		"new-search: force control group",
		"compact-menu: auto experimental group",
		"tooltips: auto control group",
	}, lines)
}

func TestThresholdTable(t *testing.T) {
	snap := types.Snapshot{
		Seed:       42,
		Thresholds: []types.Threshold{{Key: "A", Limit: 300}, {Key: "long-key", Limit: 350}},
	}

	want := "seed: 42\n" +
		"A         300\n" +
		"long-key  350\n"
	require.Equal(t, want, ThresholdTable(snap))
}
