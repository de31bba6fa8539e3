package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/yhekr/abexp/types"
)

// Option configures a collector.
type Option func(*collectorOptions)

type collectorOptions struct {
	now func() time.Time
}

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(o *collectorOptions) {
		o.now = now
	}
}

func buildOptions(opts []Option) collectorOptions {
	o := collectorOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// DecisionCollector emits an event for every cohort decision.
//
// Register it with Engine.RegisterObserver.
type DecisionCollector struct {
	sink EventSink
	now  func() time.Time
}

var _ types.Observer = (*DecisionCollector)(nil)

// NewDecisionCollector creates a decision collector.
func NewDecisionCollector(sink EventSink, opts ...Option) *DecisionCollector {
	o := buildOptions(opts)

	return &DecisionCollector{sink: sink, now: o.now}
}

// OnDecision emits abExperiments.isEnabledCalled.
func (c *DecisionCollector) OnDecision(key string, enabled bool) error {
	return c.sink.Emit(context.Background(), Event{
		Name:   EventIsEnabledCalled,
		Fields: map[string]any{"experiment": key, "enabled": enabled},
		Time:   c.now(),
	})
}

// MenuOpenedCollector emits an event for every genuine menu open.
//
// Register it with menuopen.Counter.RegisterSubscriber.
type MenuOpenedCollector struct {
	sink EventSink
	now  func() time.Time
}

var _ types.MenuSubscriber = (*MenuOpenedCollector)(nil)

// NewMenuOpenedCollector creates a menu-open collector.
func NewMenuOpenedCollector(sink EventSink, opts ...Option) *MenuOpenedCollector {
	o := buildOptions(opts)

	return &MenuOpenedCollector{sink: sink, now: o.now}
}

// OnMenuOpened emits menu.opened.
func (c *MenuOpenedCollector) OnMenuOpened(count int) error {
	return c.sink.Emit(context.Background(), Event{
		Name:   EventMenuOpened,
		Fields: map[string]any{"count": count},
		Time:   c.now(),
	})
}

// Describer produces the engine snapshot. *abexp.Engine implements it.
type Describer interface {
	DescribeAll(ctx context.Context) types.Snapshot
}

// UsageCollector reports the installation's assignment state.
type UsageCollector struct {
	engine Describer
	sink   EventSink
	now    func() time.Time
}

// NewUsageCollector creates a usage collector over engine.
func NewUsageCollector(engine Describer, sink EventSink, opts ...Option) *UsageCollector {
	o := buildOptions(opts)

	return &UsageCollector{engine: engine, sink: sink, now: o.now}
}

// Collect emits the seed, then one status event per experiment, then one
// limit event per experiment, all in plan order.
//
// Collecting goes through Engine.DescribeAll, so observers see one decision
// per experiment. Emission continues past individual sink failures.
//
// Returns:
//   - error: All sink failures joined, nil if every event was emitted
func (c *UsageCollector) Collect(ctx context.Context) error {
	snap := c.engine.DescribeAll(ctx)
	at := c.now()

	events := make([]Event, 0, 1+len(snap.Decisions)+len(snap.Thresholds))
	events = append(events, Event{
		Name:   EventUserInfo,
		Fields: map[string]any{"pointPerMille": snap.Seed},
		Time:   at,
	})
	for _, d := range snap.Decisions {
		events = append(events, Event{
			Name:   EventExperimentStatus,
			Fields: map[string]any{"experiment": d.Key, "enabled": d.Enabled},
			Time:   at,
		})
	}
	for _, t := range snap.Thresholds {
		events = append(events, Event{
			Name:   EventGroupLimit,
			Fields: map[string]any{"experiment": t.Key, "limit": t.Limit},
			Time:   at,
		})
	}

	var errs []error
	for _, ev := range events {
		if err := c.sink.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
