package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"comicgrabr/internal/logging"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "search")
	logger.Info("hub search submitted", logging.String("title", "Saga 60"), logging.Int("attempt", 1))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO search: hub search submitted") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, `title="Saga 60"`) || !strings.Contains(line, "attempt=1") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestJSONHandlerLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("backend slow")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if record["msg"] != "backend slow" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := logging.ParseLevel("verbose"); got.String() != "INFO" {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := logging.ParseLevel("DEBUG"); got.String() != "DEBUG" {
		t.Fatalf("unexpected level: %v", got)
	}
}

func TestCleanupOldRunLogsKeepsCurrentAndRecent(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "comicgrabr_2020-01-01_00-00-00.log")
	if err := os.WriteFile(old, []byte("old"), 0o644); err != nil {
		t.Fatalf("write old log: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	current := logging.RunLogPath(dir, time.Now())
	if err := os.WriteFile(current, []byte("current"), 0o644); err != nil {
		t.Fatalf("write current log: %v", err)
	}
	if err := os.Chtimes(current, stale, stale); err != nil {
		t.Fatalf("chtimes current: %v", err)
	}

	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}

	logging.CleanupOldRunLogs(logging.NewNop(), dir, 7, current)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("expected old run log to be pruned")
	}
	if _, err := os.Stat(current); err != nil {
		t.Fatalf("expected current run log to survive: %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("expected unrelated file to survive: %v", err)
	}
}
