package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yhekr/abexp/types"
)

// TestLogger implements types.Logger using testing.TB for output.
// This ensures log messages appear in test output.
type TestLogger struct {
	tb testing.TB
}

// Compile-time assertion that TestLogger implements Logger.
var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a new test logger that writes to tb.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    logger := logger.NewTest(t)
//	    logger.Info("test started", "id", 123)
//	}
func NewTest(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.tb.Logf("DEBUG: %s %s", msg, FormatKeyValues(keysAndValues))
}

// Info logs an info-level message with optional key-value pairs.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.tb.Logf("INFO: %s %s", msg, FormatKeyValues(keysAndValues))
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.tb.Logf("WARN: %s %s", msg, FormatKeyValues(keysAndValues))
}

// Error logs an error-level message with optional key-value pairs.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.tb.Logf("ERROR: %s %s", msg, FormatKeyValues(keysAndValues))
}

// FormatKeyValues renders key-value pairs as "k1=v1 k2=v2".
// A trailing key without a value is rendered as "k=<missing>".
func FormatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v=<missing>", keysAndValues[i])
		}
	}

	return b.String()
}
