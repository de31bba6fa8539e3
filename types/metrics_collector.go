package types

// Decision sources reported to AssignmentMetrics.RecordDecision.
const (
	DecisionSourceOverride = "override"
	DecisionSourcePlan     = "plan"
	DecisionSourceUnknown  = "unknown"
	DecisionSourceFailure  = "failure"
)

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called concurrently from querying goroutines and from the
// menu counter's executor.
type MetricsCollector interface {
	AssignmentMetrics
	ProbeMetrics
}

// AssignmentMetrics defines metrics for cohort assignment.
type AssignmentMetrics interface {
	// RecordPlanComputed records the one-time plan computation.
	//
	// Parameters:
	//   - experiments: Number of experiments in the plan
	//   - seed: Installation point in [0, 999]
	RecordPlanComputed(experiments int, seed int)

	// RecordDecision records a cohort decision.
	//
	// Parameters:
	//   - key: Experiment key
	//   - enabled: Decision value
	//   - source: One of the DecisionSource* constants
	RecordDecision(key string, enabled bool, source string)

	// RecordObserverFailure records an observer that returned an error or panicked.
	RecordObserverFailure(key string)
}

// ProbeMetrics defines metrics for the menu-open counter.
type ProbeMetrics interface {
	// RecordProbe records a raw probe signal.
	RecordProbe()

	// RecordProbeRejected records a probe whose task could not be queued.
	RecordProbeRejected()

	// RecordMenuOpened records a genuine menu-open increment.
	RecordMenuOpened(count int)

	// RecordSubscriberFailure records a subscriber that returned an error or panicked.
	RecordSubscriberFailure()
}
