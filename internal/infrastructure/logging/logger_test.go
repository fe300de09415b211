package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/woods-config/internal/infrastructure/config"
)

// decodeRecord parses the single JSON record in buf.
func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decoding record %q: %v", buf.String(), err)
	}
	return rec
}

func TestNewWithWriter_JSONDefaultAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, "1.2.3", &buf)

	logger.Info("component validated", "component", "camera")

	rec := decodeRecord(t, &buf)
	want := map[string]string{
		"msg":       "component validated",
		"service":   "woods-config",
		"version":   "1.2.3",
		"component": "camera",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("record[%q] = %v, want %q", k, rec[k], v)
		}
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Format: "TEXT"}, "dev", &buf)

	logger.Info("cache filled", "entries", 2)

	out := buf.String()
	for _, want := range []string{"msg=\"cache filled\"", "entries=2", "service=woods-config"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output = %q, want it to contain %s", out, want)
		}
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(config.LoggingConfig{Level: tt.level, Format: "text"}, "dev", &buf)

			logger.Debug("debug-record")
			logger.Info("info-record")
			logger.Warn("warn-record")

			out := buf.String()
			if got := strings.Contains(out, "debug-record"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-record"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "warn-record"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestNewWithWriter_ReadableDurations(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Format: "json"}, "dev", &buf)

	logger.Info("component configurations loaded", "duration", 1500*time.Microsecond)

	rec := decodeRecord(t, &buf)
	if rec["duration"] != "1.5ms" {
		t.Errorf("record[duration] = %v, want 1.5ms", rec["duration"])
	}
}

func TestLogger_Subsystem(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Format: "json"}, "dev", &buf)

	child := logger.Subsystem("cache")
	if child == logger {
		t.Fatal("Subsystem() returned the parent logger")
	}
	child.Info("cache cleared")

	rec := decodeRecord(t, &buf)
	if rec["subsystem"] != "cache" || rec["service"] != "woods-config" {
		t.Errorf("record = %v, want subsystem=cache with service attr", rec)
	}
}

func TestOutputWriter(t *testing.T) {
	tests := []struct {
		output string
		want   io.Writer
	}{
		{"stdout", os.Stdout},
		{"", os.Stdout},
		{"stderr", os.Stderr},
		{"Discard", io.Discard},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			if got := outputWriter(tt.output); got != tt.want {
				t.Errorf("outputWriter(%q) = %v, want %v", tt.output, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() = nil")
	}
}
