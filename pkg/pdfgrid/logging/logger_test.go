package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
)

func TestSetLogger(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var buf bytes.Buffer
	logging.SetLogger(logging.New(&buf, slog.LevelDebug, "text"))

	logging.Logger().Debug("test message", slog.String("key", "value"))

	if !strings.Contains(buf.String(), "test message") {
		t.Error("expected SetLogger to configure the package logger")
	}
}

func TestSetLoggerNilSilences(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	logging.SetLogger(nil)

	log := logging.Logger()
	if log == nil {
		t.Fatal("Logger() returned nil after SetLogger(nil)")
	}
	if log.Handler() != slog.DiscardHandler {
		t.Error("SetLogger(nil) should leave a discarding logger installed")
	}
}

func TestNewJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, slog.LevelInfo, "JSON")
	log.Debug("hidden")
	log.Info("shown", "page", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "shown" || record["page"] != float64(3) {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLoggerConcurrentSwap(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			logging.SetLogger(nil)
		}()
		go func() {
			defer wg.Done()
			logging.Logger().Debug("concurrent")
		}()
	}
	wg.Wait()
}
