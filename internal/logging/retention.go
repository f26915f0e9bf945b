package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupOldRunLogs removes run log files under logDir older than
// retentionDays. The current run's log (currentLog) is always kept. A
// retentionDays value of 0 disables pruning.
func CleanupOldRunLogs(logger *slog.Logger, logDir string, retentionDays int, currentLog string) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	current := ""
	if trimmed := strings.TrimSpace(currentLog); trimmed != "" {
		if abs, err := filepath.Abs(trimmed); err == nil {
			current = abs
		}
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, runLogPrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		fullPath := filepath.Join(logDir, name)
		if abs, err := filepath.Abs(fullPath); err == nil {
			fullPath = abs
		}
		if fullPath == current {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			if logger != nil {
				logger.Warn("log retention remove failed; file remains",
					String("path", fullPath),
					Error(err),
				)
			}
			continue
		}
		if logger != nil {
			logger.Debug("log pruned", String("path", fullPath))
		}
	}
}
