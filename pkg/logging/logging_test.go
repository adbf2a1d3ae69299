package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelCritical, "CRITICAL"},
		{LevelFatal, "FATAL"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected LogLevel
	}{
		{"DEBUG", LevelDebug},
		{"WARN", LevelWarn},
		{"CRITICAL", LevelCritical},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.name))
	}
}

func TestGetReturnsSameLoggerForSameName(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, nil, LevelInfo, LevelInfo)

	a := Get("router")
	b := Get("router")
	assert.Same(t, a, b)

	other := Get("dispatch")
	assert.NotSame(t, a, other)
}

func TestConsoleSinkReceivesMessages(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, nil, LevelInfo, LevelInfo)

	Info("test-subsystem", "hello %s", "world")

	output := buf.String()
	assert.Contains(t, output, "hello world")
	assert.Contains(t, output, "test-subsystem")
}

func TestScreenLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, nil, LevelInfo, LevelInfo)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	assert.False(t, strings.Contains(output, "debug message"), "debug message should be filtered at INFO level")
	assert.True(t, strings.Contains(output, "info message"))
}

func TestFileSinkDisabledByNilWriter(t *testing.T) {
	var screen bytes.Buffer
	Configure(&screen, nil, LevelInfo, LevelDebug)

	Info("test", "only on screen")
	assert.Contains(t, screen.String(), "only on screen")
}

func TestIndependentSinkLevels(t *testing.T) {
	var screen, file bytes.Buffer
	Configure(&screen, &file, LevelError, LevelDebug)

	Debug("test", "debug message")
	Info("test", "info message")

	require.NotContains(t, screen.String(), "debug message")
	require.NotContains(t, screen.String(), "info message")
	require.Contains(t, file.String(), "debug message")
	require.Contains(t, file.String(), "info message")
}

func TestErrorIncludesErrAttribute(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, nil, LevelInfo, LevelInfo)

	Error("test", errors.New("boom"), "operation failed")

	output := buf.String()
	assert.Contains(t, output, "operation failed")
	assert.Contains(t, output, "boom")
}
