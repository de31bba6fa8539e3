package abexp

import (
	"context"
	"fmt"
	"sort"

	"github.com/yhekr/abexp/identity"
	"github.com/yhekr/abexp/internal/fanout"
	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/internal/metrics"
	"github.com/yhekr/abexp/internal/plan"
	"github.com/yhekr/abexp/types"
)

// Engine answers cohort queries for registered experiments.
//
// The engine owns the assignment plan, computed once on first use from the
// experiment catalog and the installation seed. Every query consults the
// override store first, then the plan. Queries never fail: any error
// degrades to the control group (false) and is logged.
//
// Every decision is delivered synchronously to the registered observers, in
// registration order, on the querying goroutine.
//
// Thread Safety: All methods are safe for concurrent use.
type Engine struct {
	cfg       Config
	source    ExperimentSource
	store     OverrideStore
	seeds     SeedSource
	plan      *plan.Cell
	observers *fanout.Registry[Observer]

	logger  Logger
	metrics MetricsCollector
}

// NewEngine creates an engine.
//
// The plan is not computed here; it is computed on the first query.
//
// Parameters:
//   - cfg: Configuration (defaults are applied in place)
//   - src: Experiment catalog
//   - store: Override store, consulted on every query
//   - opts: Optional logger, metrics, observers and seed source
//
// Returns:
//   - *Engine: Ready engine
//   - error: ErrInvalidConfig, ErrExperimentSourceRequired or ErrOverrideStoreRequired
//
// Example:
//
//	cfg := abexp.DefaultConfig()
//	src := source.NewStatic([]abexp.Experiment{
//	    {Key: "dark-mode", Fraction: abexp.Float(0.3)},
//	    {Key: "new-search"},
//	})
//	engine, err := abexp.NewEngine(&cfg, src, memory.New(nil))
//	if err != nil { /* handle */ }
//	if engine.IsEnabled(ctx, "dark-mode") { /* experimental group */ }
func NewEngine(cfg *Config, src ExperimentSource, store OverrideStore, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if src == nil {
		return nil, ErrExperimentSourceRequired
	}
	if store == nil {
		return nil, ErrOverrideStoreRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	seeds := options.seeds
	if seeds == nil {
		machineID := options.machineID
		if machineID == nil {
			machineID = NewMachineIDSource(cfg.Identity)
		}
		seeds = identity.NewHashSeed(machineID, loggerInstance)
	}

	e := &Engine{
		cfg:       *cfg,
		source:    src,
		store:     store,
		seeds:     seeds,
		observers: fanout.New[Observer](),
		logger:    loggerInstance,
		metrics:   metricsCollector,
	}
	e.plan = plan.NewCell(e.computePlan, func(rec any) {
		e.logger.Error("assignment plan computation panicked, using empty plan", "panic", rec)
	})

	for _, obs := range options.observers {
		e.observers.Add(obs)
	}

	return e, nil
}

// IsEnabled reports whether the installation is in the experimental group
// of the experiment identified by key.
//
// Precedence:
//  1. An override in the store wins.
//  2. Otherwise the plan decides: seed < limit.
//  3. Unknown keys are in the control group; a warning is logged.
//
// A store failure or any panic during evaluation yields false. Observers are
// notified of the returned value in every case.
//
// Parameters:
//   - ctx: Bounds the override lookup (and the plan computation on first use)
//   - key: Experiment key
//
// Returns:
//   - bool: true for the experimental group, false for the control group
func (e *Engine) IsEnabled(ctx context.Context, key string) (enabled bool) {
	ctx = orBackground(ctx)
	source := types.DecisionSourceFailure

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("cohort evaluation panicked, using control group",
				"experiment", key,
				"panic", rec,
			)
			enabled = false
			source = types.DecisionSourceFailure
		}

		e.metrics.RecordDecision(key, enabled, source)
		e.notify(key, enabled)
	}()

	enabled, source = e.evaluate(ctx, key)

	return enabled
}

// DescribeAll evaluates every planned experiment, in plan order.
//
// Each experiment goes through IsEnabled, so overrides apply and observers
// are notified exactly as for individual queries.
//
// Returns:
//   - Snapshot: Seed, one decision per planned experiment, and the plan thresholds
func (e *Engine) DescribeAll(ctx context.Context) Snapshot {
	ctx = orBackground(ctx)
	p := e.plan.Get(ctx)
	thresholds := p.Thresholds()

	decisions := make([]CohortDecision, 0, len(thresholds))
	for _, t := range thresholds {
		decisions = append(decisions, CohortDecision{
			Key:     t.Key,
			Enabled: e.IsEnabled(ctx, t.Key),
		})
	}

	return Snapshot{
		Seed:       p.Seed(),
		Decisions:  decisions,
		Thresholds: thresholds,
	}
}

// Statuses lists planned experiments for a settings editor, sorted by key.
//
// Unlike DescribeAll, Statuses does not notify observers. If the override
// store cannot be listed, plan values are reported and the failure is logged.
func (e *Engine) Statuses(ctx context.Context) []ExperimentStatus {
	ctx = orBackground(ctx)
	p := e.plan.Get(ctx)

	var overrides map[string]bool
	err := e.withStore(ctx, "list overrides", func(opCtx context.Context) error {
		var listErr error
		overrides, listErr = e.store.List(opCtx)
		return listErr
	})
	if err != nil {
		e.logger.Error("failed to list overrides", "error", err)
		overrides = nil
	}

	thresholds := p.Thresholds()
	statuses := make([]ExperimentStatus, 0, len(thresholds))
	for _, t := range thresholds {
		status := ExperimentStatus{Key: t.Key, Enabled: p.Seed() < t.Limit}
		if forced, ok := overrides[t.Key]; ok {
			status.Enabled = forced
			status.Forced = true
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Key < statuses[j].Key
	})

	return statuses
}

// Seed returns the installation seed, computing the plan if needed.
func (e *Engine) Seed(ctx context.Context) int {
	return e.plan.Get(orBackground(ctx)).Seed()
}

// SetOverride forces an experiment into the experimental (true) or control
// (false) group. The next query observes the new value.
//
// Returns:
//   - error: ErrEmptyKey, or the store failure (wrapping ErrOverrideStore)
func (e *Engine) SetOverride(ctx context.Context, key string, enabled bool) error {
	if key == "" {
		return ErrEmptyKey
	}

	err := e.withStore(orBackground(ctx), "set override", func(opCtx context.Context) error {
		return e.store.Set(opCtx, key, enabled)
	})
	if err != nil {
		e.logger.Error("failed to set override", "experiment", key, "enabled", enabled, "error", err)
		return fmt.Errorf("set override %s: %w", key, err)
	}

	e.logger.Info("override set", "experiment", key, "enabled", enabled)

	return nil
}

// ClearOverride removes an override so the plan decides again.
//
// Returns:
//   - error: ErrEmptyKey, or the store failure (wrapping ErrOverrideStore)
func (e *Engine) ClearOverride(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	err := e.withStore(orBackground(ctx), "clear override", func(opCtx context.Context) error {
		return e.store.Remove(opCtx, key)
	})
	if err != nil {
		e.logger.Error("failed to clear override", "experiment", key, "error", err)
		return fmt.Errorf("clear override %s: %w", key, err)
	}

	e.logger.Info("override cleared", "experiment", key)

	return nil
}

// RegisterObserver adds an observer and returns a function that removes it.
//
// The returned function is idempotent. Observers are notified in
// registration order.
func (e *Engine) RegisterObserver(obs Observer) func() {
	return e.observers.Add(obs)
}

func (e *Engine) evaluate(ctx context.Context, key string) (bool, string) {
	var forced, found bool
	err := e.withStore(ctx, "lookup override", func(opCtx context.Context) error {
		var lookupErr error
		forced, found, lookupErr = e.store.Lookup(opCtx, key)
		return lookupErr
	})
	if err != nil {
		e.logger.Error("override lookup failed, using control group",
			"experiment", key,
			"error", err,
		)

		return false, types.DecisionSourceFailure
	}
	if found {
		return forced, types.DecisionSourceOverride
	}

	if enabled, known := e.plan.Get(ctx).Enabled(key); known {
		return enabled, types.DecisionSourcePlan
	}

	e.logger.Warn("experiment is not registered, using control group", "experiment", key)

	return false, types.DecisionSourceUnknown
}

func (e *Engine) notify(key string, enabled bool) {
	e.observers.Notify(func(obs Observer) error {
		return obs.OnDecision(key, enabled)
	}, func(idx int, err error) {
		e.metrics.RecordObserverFailure(key)
		e.logger.Error("experiment observer failed",
			"experiment", key,
			"observer", idx,
			"error", err,
		)
	})
}

func (e *Engine) computePlan(ctx context.Context) *plan.Plan {
	seed := e.seed()

	experiments, err := e.listExperiments(ctx)
	if err != nil {
		e.logger.Error("failed to list experiments, using empty plan", "error", err)
		experiments = nil
	}

	p := plan.New(seed, plan.Limits(experiments, e.logger))

	e.metrics.RecordPlanComputed(p.Len(), seed)
	e.logger.Info("assignment plan computed", "experiments", p.Len(), "seed", seed)

	return p
}

// seed reads the seed source. A panicking source yields seed 0.
func (e *Engine) seed() (seed int) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("seed source panicked, using seed 0", "panic", rec)
			seed = 0
		}
	}()

	return e.seeds.Seed()
}

func (e *Engine) listExperiments(ctx context.Context) (experiments []Experiment, err error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			experiments, err = nil, fmt.Errorf("%w: catalog panicked: %v", ErrExperimentSource, rec)
		}
	}()

	return e.source.ListExperiments(opCtx)
}

// withStore runs fn against the override store under the operation timeout.
// A panic in the store is returned as an error wrapping ErrOverrideStore.
func (e *Engine) withStore(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrOverrideStore, op, rec)
		}
	}()

	return fn(opCtx)
}

func (e *Engine) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(orBackground(ctx), e.cfg.OperationTimeout)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
