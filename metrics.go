package abexp

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yhekr/abexp/internal/metrics"
)

// NewPrometheusMetrics returns a MetricsCollector backed by Prometheus.
//
// Metrics are registered with reg (prometheus.DefaultRegisterer if nil) on
// first use, under namespace ("abexp" if empty).
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	engine, err := abexp.NewEngine(&cfg, src, store, abexp.WithMetrics(abexp.NewPrometheusMetrics(reg, "")))
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewNopMetrics returns a MetricsCollector that discards everything.
func NewNopMetrics() MetricsCollector {
	return metrics.NewNop()
}
