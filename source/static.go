package source

import (
	"context"
	"sync"

	"github.com/yhekr/abexp/types"
)

// Static implements an experiment source with an in-memory list.
type Static struct {
	mu          sync.RWMutex
	experiments []types.Experiment
}

var _ types.ExperimentSource = (*Static)(nil)

// NewStatic creates a new static experiment source.
//
// The order of experiments is preserved; it determines the order of the
// assignment plan and of describe-all output.
//
// Parameters:
//   - experiments: Initial catalog (copied)
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.Experiment{
//	    {Key: "dark-mode", Fraction: types.Float(0.3)},
//	    {Key: "new-search"},
//	})
//	engine, err := abexp.NewEngine(&cfg, src, memory.New(nil))
//	if err != nil { /* handle */ }
func NewStatic(experiments []types.Experiment) *Static {
	return &Static{experiments: clone(experiments)}
}

// Register appends an experiment to the catalog.
//
// Registration only affects engines whose plan has not been computed yet.
//
// Parameters:
//   - key: Experiment key
//   - fraction: Requested share of installations, or nil for an even split of the remainder
func (s *Static) Register(key string, fraction *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.experiments = append(s.experiments, cloneOne(types.Experiment{Key: key, Fraction: fraction}))
}

// ListExperiments returns a copy of the catalog.
//
// Returns:
//   - []types.Experiment: Experiments in registration order
//   - error: Always nil (never fails)
func (s *Static) ListExperiments(_ context.Context) ([]types.Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.experiments), nil
}

// Update replaces the catalog.
//
// This is mostly useful in tests that build several engines over one source.
func (s *Static) Update(experiments []types.Experiment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.experiments = clone(experiments)
}

func clone(experiments []types.Experiment) []types.Experiment {
	out := make([]types.Experiment, len(experiments))
	for i, e := range experiments {
		out[i] = cloneOne(e)
	}

	return out
}

func cloneOne(e types.Experiment) types.Experiment {
	if e.Fraction != nil {
		e.Fraction = types.Float(*e.Fraction)
	}

	return e
}
