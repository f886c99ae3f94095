package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, ParseFormatter(""))
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "logfmt"})

	logger.Info("hidden")
	logger.Warn("shown", "task_id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "task_id=7")
}

func TestNew_DebugEnvForcesDebugLevel(t *testing.T) {
	t.Setenv("TODO_DEBUG", "1")

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "error"})
	logger.Debug("verbose")

	assert.Contains(t, buf.String(), "verbose")
}
