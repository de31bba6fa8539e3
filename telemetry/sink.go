package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yhekr/abexp/types"
)

// Event names.
const (
	EventIsEnabledCalled  = "abExperiments.isEnabledCalled"
	EventMenuOpened       = "menu.opened"
	EventUserInfo         = "abExperiments.userInfo"
	EventExperimentStatus = "abExperiments.experimentStatus"
	EventGroupLimit       = "abExperiments.groupLimit"
)

// Event is a single usage event.
type Event struct {
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields,omitempty"`
	Time   time.Time      `json:"time"`
}

// EventSink delivers events.
//
// Implementations must be safe for concurrent use: decision events are
// emitted on querying goroutines.
type EventSink interface {
	Emit(ctx context.Context, event Event) error
}

// LogSink writes events to a logger at Info level.
type LogSink struct {
	logger types.Logger
}

var _ EventSink = (*LogSink)(nil)

// NewLogSink creates a sink that logs every event.
func NewLogSink(logger types.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs the event with its fields sorted by name.
func (s *LogSink) Emit(_ context.Context, event Event) error {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2+2*len(keys))
	kv = append(kv, "event", event.Name)
	for _, k := range keys {
		kv = append(kv, k, event.Fields[k])
	}
	s.logger.Info("usage event", kv...)

	return nil
}

// Publisher is the subset of *nats.Conn used by NATSSink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSSink publishes events as JSON on NATS core subjects.
//
// The subject is "<prefix>.<event name>", e.g.
// "abexp.telemetry.abExperiments.isEnabledCalled".
type NATSSink struct {
	pub    Publisher
	prefix string
}

var _ EventSink = (*NATSSink)(nil)

// NewNATSSink creates a sink publishing through pub.
//
// Parameters:
//   - pub: NATS connection (or any Publisher)
//   - subjectPrefix: Prefix for event subjects; empty means the bare event name
//
// Returns:
//   - *NATSSink: Sink ready for use
//
// Example:
//
//	nc, _ := nats.Connect(cfg.Telemetry.NATSURL)
//	sink := telemetry.NewNATSSink(nc, cfg.Telemetry.SubjectPrefix)
//	engine.RegisterObserver(telemetry.NewDecisionCollector(sink))
func NewNATSSink(pub Publisher, subjectPrefix string) *NATSSink {
	return &NATSSink{pub: pub, prefix: strings.TrimSuffix(subjectPrefix, ".")}
}

// Subject returns the subject an event is published on.
func (s *NATSSink) Subject(name string) string {
	if s.prefix == "" {
		return name
	}

	return s.prefix + "." + name
}

// Emit publishes the event. It does not wait for delivery.
func (s *NATSSink) Emit(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Name, err)
	}

	if err := s.pub.Publish(s.Subject(event.Name), data); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Name, err)
	}

	return nil
}
