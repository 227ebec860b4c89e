package logstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogError appends a turn failure to the per-session error log at
// logDir/<sessionID>/errors.log, out of band from the sqlite store so a
// broken store cannot swallow the report.
func LogError(logDir, sessionID, where string, cause error) error {
	dir := filepath.Join(logDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create error log dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "errors.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open error log: %w", err)
	}
	defer f.Close()

	ts := time.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(f, "[%s] %s: %v\n", ts, where, cause); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
