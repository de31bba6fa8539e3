// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/yhekr/abexp/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used as the default when no collector is configured.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	engine, err := abexp.NewEngine(&cfg, src, store, abexp.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// AssignmentMetrics implementation

// RecordPlanComputed discards the plan metric.
func (n *NopMetrics) RecordPlanComputed(_ /* experiments */ int, _ /* seed */ int) {}

// RecordDecision discards the decision metric.
func (n *NopMetrics) RecordDecision(_ /* key */ string, _ /* enabled */ bool, _ /* source */ string) {}

// RecordObserverFailure discards the observer failure metric.
func (n *NopMetrics) RecordObserverFailure(_ /* key */ string) {}

// ProbeMetrics implementation

// RecordProbe discards the probe metric.
func (n *NopMetrics) RecordProbe() {}

// RecordProbeRejected discards the rejected probe metric.
func (n *NopMetrics) RecordProbeRejected() {}

// RecordMenuOpened discards the menu-open metric.
func (n *NopMetrics) RecordMenuOpened(_ /* count */ int) {}

// RecordSubscriberFailure discards the subscriber failure metric.
func (n *NopMetrics) RecordSubscriberFailure() {}
