package menuopen

import "github.com/yhekr/abexp/types"

type options struct {
	logger  types.Logger
	metrics types.ProbeMetrics
}

// Option configures a Counter.
type Option func(*options)

// WithLogger sets the logger for subscriber failures and rejected probes.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the probe metrics collector.
func WithMetrics(metrics types.ProbeMetrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}
