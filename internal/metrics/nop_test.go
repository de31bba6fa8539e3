package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_NoPanics(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordPlanComputed(3, 250)
		metrics.RecordPlanComputed(0, 0)
		metrics.RecordDecision("exp", true, types.DecisionSourcePlan)
		metrics.RecordDecision("", false, "")
		metrics.RecordObserverFailure("exp")
		metrics.RecordProbe()
		metrics.RecordProbeRejected()
		metrics.RecordMenuOpened(-1)
		metrics.RecordSubscriberFailure()
	})
}
