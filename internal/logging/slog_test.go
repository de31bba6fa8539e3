package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	t.Helper()
	var _ types.Logger = (*SlogLogger)(nil)
}

func TestNewSlogDefault(t *testing.T) {
	logger := NewSlogDefault()

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "experiment", "onboarding")
	logger.Warn("warn message", "seed", 250)
	logger.Error("error message", "error", "boom")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "experiment=onboarding")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "seed=250")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "error=boom")
}

func TestNewSlogWriter(t *testing.T) {
	t.Run("json handler respects level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewSlogWriter(buf, "warn", true)

		logger.Info("hidden")
		logger.Warn("shown", "key", "k1")

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, `"msg":"shown"`)
		assert.Contains(t, output, `"key":"k1"`)
	})

	t.Run("text handler", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewSlogWriter(buf, "debug", false)

		logger.Debug("visible")

		assert.Contains(t, buf.String(), "msg=visible")
	})
}

func TestParseSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseSlogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseSlogLevel("warning"))
	require.Equal(t, slog.LevelError, ParseSlogLevel(" error "))
	require.Equal(t, slog.LevelInfo, ParseSlogLevel("bogus"))
	require.Equal(t, slog.LevelInfo, ParseSlogLevel(""))
}
