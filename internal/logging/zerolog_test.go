package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerolog(zerolog.New(buf))

	logger.Warn("unknown experiment", "experiment", "missing", "seed", 42)

	output := buf.String()
	assert.Contains(t, output, `"level":"warn"`)
	assert.Contains(t, output, `"experiment":"missing"`)
	assert.Contains(t, output, `"seed":42`)
	assert.Contains(t, output, `"message":"unknown experiment"`)
}

func TestNewZerologConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerologConsole(buf, "info")
	require.NotNil(t, logger)

	logger.Debug("dropped")
	logger.Info("kept", "key", "value")

	output := buf.String()
	assert.NotContains(t, output, "dropped")
	assert.Contains(t, output, "kept")
	assert.Contains(t, output, "key=")
}
