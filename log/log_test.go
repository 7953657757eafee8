package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestMake_NilWriterDiscards(t *testing.T) {
	logger := Make(nil)
	logger.Info("dropped")
}

func TestLogger_LevelFiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged at Debug level")
	}

	buf.Reset()
	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("test message", slog.String("key", "value"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if result["msg"] != "test message" {
		t.Errorf("expected msg=test message, got %v", result["msg"])
	}

	if result["key"] != "value" {
		t.Errorf("expected key=value, got %v", result["key"])
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText))
	logger.Warn("something odd", slog.Int("count", 3))

	output := buf.String()

	if !strings.Contains(output, "msg=") {
		t.Errorf("expected text key=value output, got: %s", output)
	}

	if !strings.Contains(output, "count=3") {
		t.Errorf("expected count attribute, got: %s", output)
	}

	if strings.Contains(output, "\033[") {
		t.Errorf("unexpected color codes without pretty: %s", output)
	}
}

func TestLogger_PrettyTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText), WithPretty(true))
	logger.Info("colorful", slog.Bool("ok", true))

	output := buf.String()

	if !strings.Contains(output, "\033[") {
		t.Errorf("expected color codes in pretty output, got: %s", output)
	}

	if !strings.Contains(output, "colorful") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON), WithCaller(true))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "source") {
		t.Error("caller info not included when enabled")
	}

	buf.Reset()
	logger = Make(&buf, WithFormat(FormatJSON), WithCaller(false))
	logger.Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf).With(slog.String("component", "engine"))

	logger.Info("first")
	logger.Info("second")

	output := buf.String()

	if strings.Count(output, "component=engine") != 2 {
		t.Errorf("expected component attribute in every message, got: %s", output)
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelError))
	verbose := base.Wrap(WithLevel(LevelDebug))

	base.Debug("quiet")

	if buf.Len() > 0 {
		t.Error("base logger emitted below its level")
	}

	verbose.Debug("loud")

	if !strings.Contains(buf.String(), "loud") {
		t.Error("wrapped logger did not emit at its level")
	}

	if base.Level() != LevelError {
		t.Errorf("wrap mutated base level: %v", base.Level())
	}
}

func TestLogger_ZeroValueIsSafe(t *testing.T) {
	var logger Logger

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero value level = %v", logger.Level())
	}

	if got := logger.With(slog.String("k", "v")); got.Logger != nil {
		t.Error("With on zero value should remain zero")
	}
}

func TestDefaultLogger_Config(t *testing.T) {
	var buf bytes.Buffer

	prev := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = prev
		defaultMu.Unlock()
	}()

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatText))

	Debug("shared debug")
	Info("shared info", slog.String("k", "v"))

	output := buf.String()

	if !strings.Contains(output, "shared debug") {
		t.Errorf("default logger dropped debug message: %s", output)
	}

	if !strings.Contains(output, "k=v") {
		t.Errorf("default logger dropped attribute: %s", output)
	}
}

func TestDefaultLogger_With(t *testing.T) {
	var buf bytes.Buffer

	prev := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = prev
		defaultMu.Unlock()
	}()

	Config(WithOutput(&buf), WithFormat(FormatText))

	With(slog.String("scope", "test")).Info("tagged")

	if !strings.Contains(buf.String(), "scope=test") {
		t.Errorf("expected attribute from With, got: %s", buf.String())
	}
}
