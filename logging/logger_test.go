package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Unmarshal failed: %v (%q)", err, buf.String())
	}
	return data
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LogLevelTrace).WithCategory("Test")

	logger.Info("Hello", Field{Key: "key", Value: "val"}, Field{Key: "count", Value: 3})

	data := decodeLine(t, &buf)
	if data["level"] != "info" {
		t.Errorf("Expected level info, got %v", data["level"])
	}
	if data["category"] != "Test" {
		t.Errorf("Expected category Test, got %v", data["category"])
	}
	if data["message"] != "Hello" {
		t.Errorf("Expected message Hello, got %v", data["message"])
	}
	if data["key"] != "val" {
		t.Error("Expected key=val")
	}
	if data["count"] != float64(3) {
		t.Error("Expected count=3")
	}
}

func TestLogger_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LogLevelTrace)

	logger.Error("failed", Field{Key: "error", Value: errors.New("boom")})

	data := decodeLine(t, &buf)
	if data["error"] != "boom" {
		t.Errorf("Expected error=boom, got %v", data["error"])
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LogLevelTrace).WithFields(Field{Key: "driver", Value: "memory"})

	logger.Debug("fetching")

	data := decodeLine(t, &buf)
	if data["driver"] != "memory" {
		t.Error("Expected inherited field driver=memory")
	}
}

func TestLogger_MinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output below minimum level, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected warn message to be written")
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatText, NoColor: true}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("Hello", Field{Key: "key", Value: "val"})

	out := buf.String()
	if !strings.Contains(out, "INF") {
		t.Errorf("Expected level INF in %q", out)
	}
	if !strings.Contains(out, "key=val") {
		t.Errorf("Expected key=val in %q", out)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{Level: "loud"}, nil); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}, nil); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace":   LogLevelTrace,
		"DEBUG":   LogLevelDebug,
		"":        LogLevelInfo,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"fatal":   LogLevelFatal,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("discarded", Field{Key: "k", Value: "v"})
	logger.WithCategory("x").WithFields(Field{Key: "a", Value: 1}).Error("discarded")
}
