package types

// Observer is notified on every cohort decision made by the engine.
//
// Observers are invoked synchronously on the querying goroutine, in
// registration order. Queries may run concurrently, so implementations must
// tolerate concurrent calls. A returned error (or a panic) is logged by the
// engine and does not affect other observers or the query result.
type Observer interface {
	OnDecision(key string, enabled bool) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(key string, enabled bool) error

// OnDecision calls f(key, enabled).
func (f ObserverFunc) OnDecision(key string, enabled bool) error {
	return f(key, enabled)
}

// MenuSubscriber is notified each time the menu-open count increases.
//
// Subscribers run on the counter's background executor, one at a time.
type MenuSubscriber interface {
	OnMenuOpened(count int) error
}

// MenuSubscriberFunc adapts a function to the MenuSubscriber interface.
type MenuSubscriberFunc func(count int) error

// OnMenuOpened calls f(count).
func (f MenuSubscriberFunc) OnMenuOpened(count int) error {
	return f(count)
}
