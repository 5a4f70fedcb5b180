package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{
			name: "explicit level and output",
			config: &Config{
				Level:  LevelDebug,
				Output: &bytes.Buffer{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			if logger == nil {
				t.Error("NewLogger() returned nil")
			}
		})
	}
}

func TestLoggerLevelGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("expected debug/info to be suppressed at LevelWarn, got: %s", buf.String())
	}

	logger.Warn("warning message", "key", "value")
	output := buf.String()
	if !strings.Contains(output, "warning message") {
		t.Errorf("expected warning message in output, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected key=value in output, got: %s", output)
	}
}

func TestLoggerSilentStillAccumulatesDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelSilent, Output: &buf})

	logger.Error("something failed", "op", "GET_TREE")
	if buf.Len() != 0 {
		t.Errorf("expected no printed output at LevelSilent, got: %s", buf.String())
	}

	diag := logger.Diagnostic()
	if !strings.Contains(diag, "something failed") {
		t.Errorf("expected diagnostic buffer to retain message, got: %s", diag)
	}
	if !strings.Contains(diag, "op=GET_TREE") {
		t.Errorf("expected diagnostic buffer to retain args, got: %s", diag)
	}

	logger.ClearDiagnostic()
	if logger.Diagnostic() != "" {
		t.Error("expected ClearDiagnostic to reset the buffer")
	}
}

func TestLoggerDiagnosticAccumulatesAcrossLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelError, Output: &buf})

	logger.Debug("connecting")
	logger.Info("subscribed to window events")
	logger.Error("socket closed")

	diag := logger.Diagnostic()
	for _, want := range []string{"connecting", "subscribed to window events", "socket closed"} {
		if !strings.Contains(diag, want) {
			t.Errorf("expected diagnostic to contain %q, got: %s", want, diag)
		}
	}

	if !strings.Contains(buf.String(), "socket closed") {
		t.Errorf("expected printed output to contain the error line, got: %s", buf.String())
	}
	if strings.Contains(buf.String(), "connecting") {
		t.Errorf("expected printed output to omit the debug line, got: %s", buf.String())
	}
}

func TestGlobalLoggerFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(&Config{Level: LevelDebug, Output: &buf}))

	Debug("debug message", "key", "value")
	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("expected debug message, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected key=value, got: %s", output)
	}

	buf.Reset()
	Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("expected info message, got: %s", buf.String())
	}

	buf.Reset()
	Warn("warning message")
	if !strings.Contains(buf.String(), "warning message") {
		t.Errorf("expected warning message, got: %s", buf.String())
	}

	buf.Reset()
	Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("expected error message, got: %s", buf.String())
	}
}

func TestDefaultReturnsSameLogger(t *testing.T) {
	SetDefault(nil)
	first := Default()
	second := Default()
	if first != second {
		t.Error("expected Default() to return the same logger instance on repeated calls")
	}
}
