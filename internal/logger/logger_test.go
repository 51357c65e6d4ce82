package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, InfoLevel, JSONFormat).Named("runner")

	log.Infow("simulate_done", "run_id", "abc", "points", 3)
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %q (%v)", buf.String(), err)
	}
	if entry["msg"] != "simulate_done" || entry["run_id"] != "abc" || entry["logger"] != "runner" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, WarnLevel, ConsoleFormat)

	log.Infow("dropped")
	log.Warnw("kept", "k", "v")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("level filtering failed: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Fatalf("console encoder should print capital levels: %q", out)
	}
}

func TestToZapLevel_UnknownFallsBackToDebug(t *testing.T) {
	if toZapLevel("verbose") != defaultZapLevel {
		t.Fatalf("unknown level should map to default")
	}
}
