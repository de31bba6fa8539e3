package types

import "context"

// ExperimentSource enumerates the registered experiments.
//
// Implementations can be backed by:
//   - Static: fixed list registered at startup (source.Static)
//   - Config: experiments declared in the YAML configuration
//   - Custom: any registration mechanism
//
// The engine calls ListExperiments once, when the assignment plan is first
// needed. Experiments registered afterwards are treated as unknown.
type ExperimentSource interface {
	// ListExperiments returns all registered experiments in a stable order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Experiment: Registered experiments
	//   - error: Enumeration error (the engine falls back to an empty plan)
	ListExperiments(ctx context.Context) ([]Experiment, error)
}
