package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestLogger_WritesKeyValueFieldsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, FormatJSON, LevelInfo)

	logger.Info("leaderboard built", "segment_id", "8428538", "ranked", 3, "error", errors.New("boom"))

	var entry map[string]any
	if err := jsoniter.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if got, _ := entry["msg"].(string); got != "leaderboard built" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if got, _ := entry["segment_id"].(string); got != "8428538" {
		t.Fatalf("unexpected segment_id: %v", entry["segment_id"])
	}
	if got, _ := entry["ranked"].(float64); got != 3 {
		t.Fatalf("unexpected ranked: %v", entry["ranked"])
	}
	if got, _ := entry["error"].(string); got != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, FormatJSON, LevelWarn)

	logger.InfoContext(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	logger.WarnContext(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestZapFields_DanglingKeyAndNonStringKey(t *testing.T) {
	fields := zapFields([]any{42, "value", "dangling"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "arg" {
		t.Fatalf("expected non-string key to become arg, got %q", fields[0].Key)
	}
	if fields[1].Key != "dangling" {
		t.Fatalf("expected dangling key to be kept, got %q", fields[1].Key)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}
