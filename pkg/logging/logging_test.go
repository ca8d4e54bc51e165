package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestStructuredLoggerAddsModuleAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "tunerd", "v1.2.3", slog.LevelInfo)

	logger.Info("upgrade applied", "motorcycle", "r1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tunerd", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "r1", entry["motorcycle"])
	assert.Equal(t, "upgrade applied", entry["msg"])
	assert.NotContains(t, entry, "source")
}

func TestStructuredLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "tuner", "dev", slog.LevelWarn)

	logger.Info("ignored")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestDebugLoggerIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "tuner", "dev", slog.LevelDebug)

	logger.Debug("trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "source")
}
