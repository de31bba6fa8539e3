package testing

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/yhekr/abexp/types"
)

// NewTestLogger creates a logger that writes to the testing.T logger.
// This is useful for seeing log output during test runs.
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Logf("DEBUG: %s %v", msg, keysAndValues)
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.t.Logf("INFO: %s %v", msg, keysAndValues)
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Logf("WARN: %s %v", msg, keysAndValues)
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.t.Logf("ERROR: %s %v", msg, keysAndValues)
}

// LogEntry is a single message captured by RecordingLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// RecordingLogger captures log entries for assertions.
//
// It is safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ types.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record("DEBUG", msg, keysAndValues)
}

func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record("INFO", msg, keysAndValues)
}

func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record("WARN", msg, keysAndValues)
}

func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record("ERROR", msg, keysAndValues)
}

// Entries returns a copy of the captured entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Count returns how many entries were logged at level whose message
// contains substr. An empty level matches every level.
func (l *RecordingLogger) Count(level, substr string) int {
	n := 0
	for _, e := range l.Entries() {
		if (level == "" || e.Level == level) && strings.Contains(e.Message, substr) {
			n++
		}
	}

	return n
}

// Reset discards captured entries.
func (l *RecordingLogger) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

func (l *RecordingLogger) record(level, msg string, keysAndValues []any) {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields[key] = keysAndValues[i+1]
		} else {
			fields[key] = nil
		}
	}

	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: fields})
	l.mu.Unlock()
}
