package abexp

import "github.com/yhekr/abexp/types"

// Re-export types from the types package.
//
// Internal packages depend on types without depending on the root package,
// while users get abexp.Experiment, abexp.Logger, etc.
type (
	Experiment       = types.Experiment
	Threshold        = types.Threshold
	CohortDecision   = types.CohortDecision
	Snapshot         = types.Snapshot
	ExperimentStatus = types.ExperimentStatus
)

// Re-export interfaces from the types package for convenience.
type (
	ExperimentSource   = types.ExperimentSource
	OverrideStore      = types.OverrideStore
	MachineIDSource    = types.MachineIDSource
	SeedSource         = types.SeedSource
	Observer           = types.Observer
	ObserverFunc       = types.ObserverFunc
	MenuSubscriber     = types.MenuSubscriber
	MenuSubscriberFunc = types.MenuSubscriberFunc
	Executor           = types.Executor
	Lifetime           = types.Lifetime
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
)

// Float returns a pointer to v, for use as Experiment.Fraction.
func Float(v float64) *float64 {
	return types.Float(v)
}
