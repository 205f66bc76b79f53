package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *Logger)
		want string
	}{
		{name: "info", log: func(l *Logger) { l.Info("loaded %s", "NASA") }, want: "✓ loaded NASA\n"},
		{name: "warn", log: func(l *Logger) { l.Warn("careful") }, want: "⚠ careful\n"},
		{name: "error", log: func(l *Logger) { l.Error("failed: %d", 3) }, want: "✗ failed: 3\n"},
		{name: "debug", log: func(l *Logger) { l.Debug("workspace %q", "/tmp") }, want: "[DEBUG] workspace \"/tmp\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWithWriter(&buf, true, true))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false, true)

	l.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestColorOutputKeepsMessage(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, false, false).Info("plain text survives")
	assert.Contains(t, buf.String(), "plain text survives")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("nothing")
		l.Warn("nothing")
		l.Error("nothing")
		l.Debug("nothing")
	})
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("OzdmSGV76EmKWVS-MzhWMAa3B4c_oFdbuX8_iSDqbZo=")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "password is W@t3r@ccounting",
			secrets:  []string{"W@t3r@ccounting"},
			expected: "password is [REDACTED]",
		},
		{
			name:     "multiple secrets redacted",
			input:    "user guest with password hunter22",
			secrets:  []string{"guest", "hunter22"},
			expected: "user [REDACTED] with password [REDACTED]",
		},
		{name: "empty secret ignored", input: "nothing here", secrets: []string{""}, expected: "nothing here"},
		{name: "short secret ignored", input: "pin: abc", secrets: []string{"abc"}, expected: "pin: abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Redact(tt.input, tt.secrets))
		})
	}
}
