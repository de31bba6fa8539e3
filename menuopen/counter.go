package menuopen

import (
	"sync/atomic"

	"github.com/yhekr/abexp/internal/fanout"
	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/internal/metrics"
	"github.com/yhekr/abexp/types"
)

// startupProbes is the number of probes the host fires before the first
// real opening.
const startupProbes = 2

// probesPerOpen is the number of probes fired by one real opening.
const probesPerOpen = 2

// OpenCount maps a raw probe count to the number of genuine menu openings.
//
// Counts at or below the start-up noise map to zero.
func OpenCount(raw int) int {
	if raw < startupProbes {
		return 0
	}

	return (raw - startupProbes) / probesPerOpen
}

// Counter debounces menu probes into menu-open notifications.
//
// Thread Safety: OnProbe and RegisterSubscriber may be called from any
// goroutine. The raw counter is only touched by tasks running on the
// executor, which must run tasks one at a time.
type Counter struct {
	lifetime    types.Lifetime
	exec        types.Executor
	subscribers *fanout.Registry[types.MenuSubscriber]

	// raw is owned by the executor.
	raw int
	// rawView mirrors raw for diagnostics.
	rawView atomic.Int64

	logger  types.Logger
	metrics types.ProbeMetrics
}

// NewCounter creates a counter bound to a lifetime and a serial executor.
//
// Parameters:
//   - lifetime: Liveness of the owner; probes are ignored once it ends (nil means always alive)
//   - exec: Serial executor that runs the counting steps; must not be nil
//   - opts: Optional logger and metrics
//
// Returns:
//   - *Counter: Counter with no subscribers
//
// Example:
//
//	exec := executor.NewSerial(logger)
//	scope := lifetime.New(ctx)
//	counter := menuopen.NewCounter(scope, exec, menuopen.WithLogger(logger))
//	unsubscribe := counter.RegisterSubscriber(types.MenuSubscriberFunc(func(n int) error {
//	    fmt.Println("menu opened", n)
//	    return nil
//	}))
//	defer unsubscribe()
func NewCounter(lifetime types.Lifetime, exec types.Executor, opts ...Option) *Counter {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}
	if lifetime == nil {
		lifetime = alwaysAlive{}
	}

	return &Counter{
		lifetime:    lifetime,
		exec:        exec,
		subscribers: fanout.New[types.MenuSubscriber](),
		logger:      o.logger,
		metrics:     o.metrics,
	}
}

// OnProbe records one raw probe signal.
//
// It queues the counting step on the executor and returns immediately. If
// the executor no longer accepts work the probe is dropped.
func (c *Counter) OnProbe() {
	c.metrics.RecordProbe()

	if err := c.exec.Submit(c.step); err != nil {
		c.metrics.RecordProbeRejected()
		c.logger.Debug("menu probe dropped", "error", err)
	}
}

// RegisterSubscriber adds a subscriber and returns a function that removes it.
//
// Subscribers are notified in registration order on the executor.
func (c *Counter) RegisterSubscriber(sub types.MenuSubscriber) func() {
	return c.subscribers.Add(sub)
}

// RawCount returns the number of probes counted so far.
//
// Probes still waiting on the executor are not included.
func (c *Counter) RawCount() int {
	return int(c.rawView.Load())
}

func (c *Counter) step() {
	if !c.lifetime.Alive() {
		return
	}

	c.raw++
	c.rawView.Store(int64(c.raw))

	current := OpenCount(c.raw)
	previous := OpenCount(c.raw - 1)
	if current == 0 || current != previous+1 {
		return
	}

	c.metrics.RecordMenuOpened(current)
	c.subscribers.Notify(func(sub types.MenuSubscriber) error {
		return sub.OnMenuOpened(current)
	}, func(idx int, err error) {
		c.metrics.RecordSubscriberFailure()
		c.logger.Error("menu subscriber failed", "subscriber", idx, "count", current, "error", err)
	})
}

type alwaysAlive struct{}

func (alwaysAlive) Alive() bool { return true }
