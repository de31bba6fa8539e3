package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yhekr/abexp/types"
)

// ZerologLogger implements types.Logger on top of rs/zerolog.
//
// Used by the CLI for human-readable console output.
type ZerologLogger struct {
	logger zerolog.Logger
}

var _ types.Logger = (*ZerologLogger)(nil)

// NewZerolog wraps an existing zerolog.Logger.
func NewZerolog(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// NewZerologConsole creates a zerolog logger with a console writer.
//
// Parameters:
//   - w: Destination writer
//   - level: Level name (debug, info, warn, error); unknown values mean info
//
// Returns:
//   - *ZerologLogger: Configured logger with timestamps
func NewZerologConsole(w io.Writer, level string) *ZerologLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	return NewZerolog(zerolog.New(out).Level(lvl).With().Timestamp().Logger())
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Info logs an info-level message with optional key-value pairs.
func (l *ZerologLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

// Error logs an error-level message with optional key-value pairs.
func (l *ZerologLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}
