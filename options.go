package abexp

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	logger    Logger
	metrics   MetricsCollector
	observers []Observer
	seeds     SeedSource
	machineID MachineIDSource
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	engine, err := abexp.NewEngine(&cfg, src, store, abexp.WithLogger(abexp.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	metrics := abexp.NewPrometheusMetrics(prometheus.DefaultRegisterer, "")
//	engine, err := abexp.NewEngine(&cfg, src, store, abexp.WithMetrics(metrics))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithObservers registers observers at construction time, in order.
//
// Observers registered this way cannot be removed; use
// Engine.RegisterObserver for a removable registration.
func WithObservers(observers ...Observer) Option {
	return func(o *engineOptions) {
		o.observers = append(o.observers, observers...)
	}
}

// WithSeedSource replaces the machine-derived seed.
//
// Mostly used in tests and diagnostics, e.g. identity.FixedSeed(250).
func WithSeedSource(seeds SeedSource) Option {
	return func(o *engineOptions) {
		o.seeds = seeds
	}
}

// WithMachineIDSource replaces the machine identifier selected by
// Config.Identity. Ignored when WithSeedSource is also given.
func WithMachineIDSource(src MachineIDSource) Option {
	return func(o *engineOptions) {
		o.machineID = src
	}
}
