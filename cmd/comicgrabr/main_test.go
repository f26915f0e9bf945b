package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig drops a minimal config pointing all paths into the test's
// temporary directory and returns the config path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[airdcpp]
api_url = "http://localhost:5600/api/v1"
username = "reader"
password = "stack-of-wednesdays"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeTestSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestRootShowsHelpWithoutArgs(t *testing.T) {
	out, err := executeCommand(t, "--config", writeTestConfig(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestConfigNewWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCommand(t, "config", "new", "--path", target)
	if err != nil {
		t.Fatalf("config new: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, err := executeCommand(t, "config", "new", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestConfigShowRedactsSecrets(t *testing.T) {
	out, err := executeCommand(t, "--config", writeTestConfig(t), "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "stack-of-wednesdays") {
		t.Fatalf("password leaked in output:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(out), "wednesday") {
		t.Fatalf("expected resolved defaults in output:\n%s", out)
	}
}

func TestSyncThenPulls(t *testing.T) {
	cfgPath := writeTestConfig(t)
	snapshot := writeTestSnapshot(t, `Comic,Release
Saga #72,2999-09-02
`)

	out, err := executeCommand(t, "--config", cfgPath, "sync", snapshot)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !strings.Contains(out, "1 upcoming releases") {
		t.Fatalf("unexpected sync output %q", out)
	}

	out, err = executeCommand(t, "--config", cfgPath, "pulls")
	if err != nil {
		t.Fatalf("pulls: %v", err)
	}
	if !strings.Contains(out, "Saga 72") || !strings.Contains(out, "2999-09-02") {
		t.Fatalf("expected the synced release in the table:\n%s", out)
	}
}

func TestPullsWithEmptyStore(t *testing.T) {
	out, err := executeCommand(t, "--config", writeTestConfig(t), "pulls")
	if err != nil {
		t.Fatalf("pulls: %v", err)
	}
	if !strings.Contains(out, "Pull list is empty") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunRequiresSnapshotOrStore(t *testing.T) {
	_, err := executeCommand(t, "--config", writeTestConfig(t), "run")
	if err == nil || !strings.Contains(err.Error(), "pull list is empty") {
		t.Fatalf("expected empty-store setup failure, got %v", err)
	}
}

func TestSyncSkipsBadSnapshotRows(t *testing.T) {
	cfgPath := writeTestConfig(t)
	snapshot := writeTestSnapshot(t, `Comic,Release
Saga #72,someday
`)

	out, err := executeCommand(t, "--config", cfgPath, "sync", snapshot)
	if err != nil {
		t.Fatalf("expected the unparseable row skipped, got %v", err)
	}
	if !strings.Contains(out, "0 upcoming releases") {
		t.Fatalf("unexpected sync output %q", out)
	}
}

func TestTestNotifyWithoutWebhook(t *testing.T) {
	out, err := executeCommand(t, "--config", writeTestConfig(t), "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	if !strings.Contains(out, "No Discord webhook configured") {
		t.Fatalf("unexpected output %q", out)
	}
}
