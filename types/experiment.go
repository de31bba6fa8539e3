package types

// Experiment describes a registered A/B experiment.
//
// An experiment is identified by a stable string key assigned at registration.
// Users that are not selected for an experiment stay in its control group.
type Experiment struct {
	// Key uniquely identifies the experiment. Used as the override store key.
	Key string `json:"key" validate:"required" yaml:"key"`

	// Fraction is the desired share of installations in the experimental
	// group. Explicit fractions are capped at 0.5 by the planner.
	// A nil Fraction shares the capacity left over by explicit experiments
	// evenly with the other unspecified experiments.
	Fraction *float64 `json:"fraction,omitempty" yaml:"fraction,omitempty"`
}

// HasFraction reports whether the experiment declares an explicit fraction.
func (e Experiment) HasFraction() bool {
	return e.Fraction != nil
}

// Float returns a pointer to v, for use as Experiment.Fraction.
//
// Example:
//
//	exp := types.Experiment{Key: "new-onboarding", Fraction: types.Float(0.2)}
func Float(v float64) *float64 {
	return &v
}

// Threshold is the seed cutoff below which an experiment is enabled.
type Threshold struct {
	Key   string `json:"key"`
	Limit int    `json:"limit"`
}

// CohortDecision is the result of a single cohort query.
type CohortDecision struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// Snapshot is the diagnostics view of all planned experiments.
type Snapshot struct {
	// Seed is the installation point in [0, 999].
	Seed int `json:"seed"`

	// Decisions holds one entry per planned experiment, in plan order.
	Decisions []CohortDecision `json:"decisions"`

	// Thresholds holds the plan limits, in plan order.
	Thresholds []Threshold `json:"thresholds"`
}

// ExperimentStatus is the settings-editor view of an experiment.
type ExperimentStatus struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`

	// Forced is true when the value comes from an override instead of the plan.
	Forced bool `json:"forced"`
}
