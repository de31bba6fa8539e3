package abexp

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/internal/logging"
)

// NewSlogLogger adapts a *slog.Logger to Logger (slog.Default() if nil).
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(l)
}

// NewZerologLogger adapts a zerolog.Logger to Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return logging.NewZerolog(l)
}

// NewConsoleLogger returns a human-readable zerolog logger writing to w.
func NewConsoleLogger(w io.Writer, level string) Logger {
	return logging.NewZerologConsole(w, level)
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return logger.NewNop()
}
