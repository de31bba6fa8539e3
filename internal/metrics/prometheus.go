package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yhekr/abexp/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use so that an
// unused collector never touches the registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Assignment metrics
	planExperiments  prometheus.Gauge
	planSeed         prometheus.Gauge
	decisions        *prometheus.CounterVec
	observerFailures *prometheus.CounterVec

	// Menu probe metrics
	probes             prometheus.Counter
	probesRejected     prometheus.Counter
	menuOpened         prometheus.Gauge
	subscriberFailures prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "abexp" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "abexp"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.planExperiments = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "planned_experiments",
			Help:      "Number of experiments in the assignment plan.",
		})
		p.planSeed = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "seed",
			Help:      "Installation point per mille used for cohort assignment.",
		})
		p.decisions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "decisions_total",
			Help:      "Cohort decisions by experiment, result and source (override, plan, unknown, failure).",
		}, []string{"experiment", "enabled", "source"})
		p.observerFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "observer_failures_total",
			Help:      "Observer invocations that returned an error or panicked.",
		}, []string{"experiment"})

		p.probes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "menu",
			Name:      "probes_total",
			Help:      "Raw menu probe signals received.",
		})
		p.probesRejected = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "menu",
			Name:      "probes_rejected_total",
			Help:      "Probe signals whose task could not be queued.",
		})
		p.menuOpened = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "menu",
			Name:      "opened_count",
			Help:      "Number of genuine menu opens counted so far.",
		})
		p.subscriberFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "menu",
			Name:      "subscriber_failures_total",
			Help:      "Subscriber invocations that returned an error or panicked.",
		})

		p.reg.MustRegister(p.planExperiments)
		p.reg.MustRegister(p.planSeed)
		p.reg.MustRegister(p.decisions)
		p.reg.MustRegister(p.observerFailures)
		p.reg.MustRegister(p.probes)
		p.reg.MustRegister(p.probesRejected)
		p.reg.MustRegister(p.menuOpened)
		p.reg.MustRegister(p.subscriberFailures)
	})
}

// AssignmentMetrics implementation

// RecordPlanComputed sets the plan size and seed gauges.
func (p *PrometheusCollector) RecordPlanComputed(experiments int, seed int) {
	p.ensureRegistered()
	p.planExperiments.Set(float64(experiments))
	p.planSeed.Set(float64(seed))
}

// RecordDecision increments the decision counter.
func (p *PrometheusCollector) RecordDecision(key string, enabled bool, source string) {
	p.ensureRegistered()
	p.decisions.WithLabelValues(key, strconv.FormatBool(enabled), source).Inc()
}

// RecordObserverFailure increments the observer failure counter.
func (p *PrometheusCollector) RecordObserverFailure(key string) {
	p.ensureRegistered()
	p.observerFailures.WithLabelValues(key).Inc()
}

// ProbeMetrics implementation

// RecordProbe increments the raw probe counter.
func (p *PrometheusCollector) RecordProbe() {
	p.ensureRegistered()
	p.probes.Inc()
}

// RecordProbeRejected increments the rejected probe counter.
func (p *PrometheusCollector) RecordProbeRejected() {
	p.ensureRegistered()
	p.probesRejected.Inc()
}

// RecordMenuOpened sets the menu-open gauge.
func (p *PrometheusCollector) RecordMenuOpened(count int) {
	p.ensureRegistered()
	p.menuOpened.Set(float64(count))
}

// RecordSubscriberFailure increments the subscriber failure counter.
func (p *PrometheusCollector) RecordSubscriberFailure() {
	p.ensureRegistered()
	p.subscriberFailures.Inc()
}
