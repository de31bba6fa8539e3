// Package plan computes the one-time cohort assignment plan.
//
// A plan pairs the installation seed with a per-experiment inclusion limit.
// An experiment is enabled for the installation when seed < limit.
// Limits are independent cutoffs, not a partition of a single dial: one seed
// may fall under several limits at once.
package plan

import (
	"math"

	"github.com/yhekr/abexp/types"
)

const (
	// Resolution is the number of seed points; seeds live in [0, Resolution).
	Resolution = 1000

	// MaxExplicitFraction caps every explicitly requested fraction.
	MaxExplicitFraction = 0.5

	// epsilon absorbs float error so that e.g. 0.35*1000 floors to 350, not 349.
	epsilon = 1e-9
)

// Plan is an immutable assignment plan.
type Plan struct {
	seed       int
	thresholds []types.Threshold
	index      map[string]int
}

// New creates a plan from a seed and thresholds. The thresholds slice is copied.
func New(seed int, thresholds []types.Threshold) *Plan {
	p := &Plan{
		seed:       seed,
		thresholds: append([]types.Threshold(nil), thresholds...),
		index:      make(map[string]int, len(thresholds)),
	}
	for i, t := range p.thresholds {
		p.index[t.Key] = i
	}

	return p
}

// Empty returns a plan with seed 0 and no experiments.
func Empty() *Plan {
	return New(0, nil)
}

// Seed returns the installation point.
func (p *Plan) Seed() int {
	return p.seed
}

// Limit returns the threshold for key and whether key is planned.
func (p *Plan) Limit(key string) (int, bool) {
	i, ok := p.index[key]
	if !ok {
		return 0, false
	}

	return p.thresholds[i].Limit, true
}

// Enabled reports seed < limit for key. Unknown keys report (false, false).
func (p *Plan) Enabled(key string) (enabled bool, known bool) {
	limit, ok := p.Limit(key)
	if !ok {
		return false, false
	}

	return p.seed < limit, true
}

// Len returns the number of planned experiments.
func (p *Plan) Len() int {
	return len(p.thresholds)
}

// Thresholds returns a copy of the plan thresholds in plan order.
func (p *Plan) Thresholds() []types.Threshold {
	return append([]types.Threshold(nil), p.thresholds...)
}

// Limits partitions capacity among experiments.
//
// Algorithm:
//  1. Experiments with an explicit fraction use min(fraction, 0.5) and get
//     limit floor(fraction * 1000). Their fractions are summed.
//  2. The remaining capacity max(0, 1 - sum) is split evenly among the
//     experiments without a fraction.
//  3. Capacity left when every experiment is explicit is not allocated.
//
// Negative fractions are not rejected: they produce a negative limit (never
// enabled) and enlarge the remainder. NaN and -Inf are treated as 0.
// Duplicate keys keep their first occurrence.
//
// Parameters:
//   - experiments: Registered experiments in catalog order
//   - logger: Receives warnings about ignored or degenerate entries
//
// Returns:
//   - []types.Threshold: One entry per distinct key, in catalog order
func Limits(experiments []types.Experiment, logger types.Logger) []types.Threshold {
	result := make([]types.Threshold, 0, len(experiments))
	seen := make(map[string]struct{}, len(experiments))

	used := 0.0
	implicit := make([]int, 0, len(experiments))

	for _, exp := range experiments {
		if _, dup := seen[exp.Key]; dup {
			logger.Warn("duplicate experiment key ignored", "experiment", exp.Key)
			continue
		}
		seen[exp.Key] = struct{}{}

		if !exp.HasFraction() {
			implicit = append(implicit, len(result))
			result = append(result, types.Threshold{Key: exp.Key})

			continue
		}

		fraction := *exp.Fraction
		if math.IsNaN(fraction) || math.IsInf(fraction, -1) {
			logger.Warn("experiment fraction is not a number, treating as 0",
				"experiment", exp.Key, "fraction", fraction)
			fraction = 0
		}

		effective := math.Min(fraction, MaxExplicitFraction)
		used += effective
		result = append(result, types.Threshold{Key: exp.Key, Limit: limitFor(effective)})
	}

	if len(implicit) > 0 {
		remaining := math.Max(0, 1-used)
		limit := limitFor(remaining / float64(len(implicit)))
		for _, i := range implicit {
			result[i].Limit = limit
		}
	}

	return result
}

// limitFor converts a fraction into a per-mille limit, flooring.
// Limits below -Resolution are clamped; they are disabled either way.
func limitFor(fraction float64) int {
	limit := math.Floor(fraction*Resolution + epsilon)
	if limit < -Resolution {
		return -Resolution
	}

	return int(limit)
}
