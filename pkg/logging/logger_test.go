package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{" info ", InfoLevel, false},
		{"WARNING", WarnLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"", InfoLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	text, err := WarnLevel.MarshalText()
	if err != nil || string(text) != "warn" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}

	var l Level
	if err := l.UnmarshalText([]byte("debug")); err != nil || l != DebugLevel {
		t.Errorf("UnmarshalText(debug) = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText(loud) should fail")
	}
	if l != DebugLevel {
		t.Errorf("failed UnmarshalText changed level to %v", l)
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := Stage("edges"); f.Key != "stage" || f.Value != "edges" {
		t.Errorf("Stage() = %+v", f)
	}
	if f := Method("louvain"); f.Key != "method" || f.Value != "louvain" {
		t.Errorf("Method() = %+v", f)
	}
	if f := Latency(5 * time.Second); f.Key != "latency" || f.Value != "5s" {
		t.Errorf("Latency() = %+v", f)
	}
	if f := Modularity(0.25); f.Key != "modularity" || f.Value != 0.25 {
		t.Errorf("Modularity() = %+v", f)
	}
	if f := Modularity(math.NaN()); f.Value != nil {
		t.Errorf("Modularity(NaN) = %+v", f)
	}
	if f := Error(errors.New("boom")); f.Key != "error" || f.Value != "boom" {
		t.Errorf("Error() = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("stage finished", Stage("community"), Int("communities", 7))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "stage finished" {
		t.Errorf("Message = %v", entry.Message)
	}
	if entry.Fields["stage"] != "community" {
		t.Errorf("Fields[stage] = %v", entry.Fields["stage"])
	}
	if entry.Fields["communities"] != float64(7) {
		t.Errorf("Fields[communities] = %v", entry.Fields["communities"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected fields to be omitted, got %s", buf.String())
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("run-1"), Component("pipeline"))
	child.Info("started", Stage("edges"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for key, want := range map[string]string{"run_id": "run-1", "component": "pipeline", "stage": "edges"} {
		if entry.Fields[key] != want {
			t.Errorf("%s field = %v, want %s", key, entry.Fields[key], want)
		}
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	logger.SetLevel(ErrorLevel)

	if logger.GetLevel() != ErrorLevel {
		t.Errorf("After SetLevel, level = %v, want ErrorLevel", logger.GetLevel())
	}
	logger.Info("info")
	if buf.Len() != 0 {
		t.Error("Expected no output for Info at ErrorLevel")
	}
	logger.Error("error")
	if buf.Len() == 0 {
		t.Error("Expected output for Error at ErrorLevel")
	}
}

func TestGlobalHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	t.Cleanup(func() { SetDefaultLogger(NewNopLogger()) })

	Info("info msg")
	Warn("warn msg")
	ErrorLog("error msg")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(lines))
	}
	for i, want := range []string{"INFO", "WARN", "ERROR"} {
		var entry LogEntry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("Failed to unmarshal entry %d: %v", i, err)
		}
		if entry.Level != want {
			t.Errorf("Entry %d level = %v, want %v", i, entry.Level, want)
		}
	}
}

func TestTimedOperation_End(t *testing.T) {
	var buf bytes.Buffer
	timer := StartTimer(NewJSONLogger(&buf, InfoLevel), "stage complete", Stage("centrality"))

	if elapsed := timer.End(Int("vertices", 3)); elapsed < 0 {
		t.Errorf("negative elapsed %v", elapsed)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["latency"] == nil {
		t.Error("expected latency field")
	}
	if entry.Fields["vertices"] != float64(3) {
		t.Errorf("vertices field = %v", entry.Fields["vertices"])
	}
}

func TestTimedOperation_NilLogger(t *testing.T) {
	timer := StartTimer(nil, "noop")
	timer.EndError(errors.New("ignored"))
}

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := WrapZap(zap.New(core), InfoLevel)

	logger.Debug("hidden")
	logger.With(RunID("r1")).Warn("non-convergence", Attribute("continent"))

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("level = %v", entry.Level)
	}
	ctx := entry.ContextMap()
	if ctx["run_id"] != "r1" || ctx["attribute"] != "continent" {
		t.Errorf("context = %v", ctx)
	}

	logger.SetLevel(DebugLevel)
	if logger.GetLevel() != DebugLevel {
		t.Errorf("GetLevel() = %v", logger.GetLevel())
	}
	logger.Debug("visible")
	if logs.Len() != 2 {
		t.Errorf("expected debug entry after SetLevel, got %d entries", logs.Len())
	}
}
