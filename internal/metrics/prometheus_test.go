package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestPrometheusCollector_Assignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordPlanComputed(3, 250)
	p.RecordDecision("a", true, types.DecisionSourcePlan)
	p.RecordDecision("a", true, types.DecisionSourcePlan)
	p.RecordDecision("a", false, types.DecisionSourceOverride)
	p.RecordObserverFailure("a")

	require.InDelta(t, 3, testutil.ToFloat64(p.planExperiments), 0)
	require.InDelta(t, 250, testutil.ToFloat64(p.planSeed), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.decisions.WithLabelValues("a", "true", "plan")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.decisions.WithLabelValues("a", "false", "override")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.observerFailures.WithLabelValues("a")), 0)
}

func TestPrometheusCollector_Menu(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")

	for range 4 {
		p.RecordProbe()
	}
	p.RecordProbeRejected()
	p.RecordMenuOpened(1)
	p.RecordSubscriberFailure()

	require.InDelta(t, 4, testutil.ToFloat64(p.probes), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.probesRejected), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.menuOpened), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.subscriberFailures), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "abexp_menu_probes_total")
	require.Contains(t, names, "abexp_assignment_seed")
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "lazy")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}
