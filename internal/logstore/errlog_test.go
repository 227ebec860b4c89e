package logstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogErrorAppends(t *testing.T) {
	dir := t.TempDir()

	if err := LogError(dir, "s1", "workflow.run", fmt.Errorf("observer timed out")); err != nil {
		t.Fatal(err)
	}
	if err := LogError(dir, "s1", "workflow.run", fmt.Errorf("store unavailable")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "s1", "errors.log"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %q", len(lines), string(data))
	}
	if !strings.Contains(lines[0], "workflow.run: observer timed out") {
		t.Errorf("first entry = %q", lines[0])
	}
	if !strings.Contains(lines[1], "store unavailable") {
		t.Errorf("second entry = %q", lines[1])
	}
}

func TestLogErrorSeparatesSessions(t *testing.T) {
	dir := t.TempDir()
	if err := LogError(dir, "a", "workflow.run", fmt.Errorf("boom")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b", "errors.log")); !os.IsNotExist(err) {
		t.Error("session b must not have an error log")
	}
}
