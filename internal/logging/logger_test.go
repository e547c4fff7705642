package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLogLevel(tt.input), "input %q", tt.input)
	}
}

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"}), &buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(LogLevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Empty(t, buf.String())

	logger.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Equal(t, LogLevelDebug, logger.Level())
}

func TestLogger_FormatArgs(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)
	logger.Info("matched %q at %d", "wor", 6)
	assert.Contains(t, buf.String(), `matched "wor" at 6`)
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	logger.WithComponent("mention").WithFields(map[string]any{"from": 6}).Info("enter")

	out := buf.String()
	assert.Contains(t, out, "component=mention")
	assert.Contains(t, out, "from=6")
	assert.Contains(t, out, "test")
}

func TestLogger_DisableEnable(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	logger.Disable()
	logger.Error("hidden")
	assert.Empty(t, buf.String())

	logger.Enable()
	logger.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().WithField("k", "v").Error("nothing")
	})
}

func TestDefault(t *testing.T) {
	custom, buf := newTestLogger(LogLevelInfo)
	SetDefault(custom)
	Default().Info("via default")
	assert.Contains(t, buf.String(), "via default")
}
