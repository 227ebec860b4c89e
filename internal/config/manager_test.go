package config

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	isolateUserConfig(t)
	mgr, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	return mgr
}

func TestManagerLoadMissingFile(t *testing.T) {
	mgr := newTestManager(t)

	if mgr.Exists() {
		t.Error("Exists() = true before any Save")
	}
	cfg, err := mgr.Load()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != (FileConfig{}) {
		t.Errorf("Load of missing file = %+v, want empty config", cfg)
	}
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	want := &FileConfig{
		Provider: "anthropic",
		APIKey:   "ak-file",
		Model:    "claude-3-5-haiku-20241022",
		LogDir:   "interview-logs",
		BankPath: "banks/python.yaml",
	}
	if err := mgr.Save(want); err != nil {
		t.Fatal(err)
	}
	if !mgr.Exists() {
		t.Error("Exists() = false after Save")
	}

	got, err := mgr.Load()
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadUsesFileDefaultsUnderEnv(t *testing.T) {
	mgr := newTestManager(t)
	err := mgr.Save(&FileConfig{
		Provider: "openai",
		APIKey:   "sk-from-file",
		Model:    "file-model",
		LogDir:   "file-logs",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("INTERVO_MODEL", "env-model")
	t.Setenv("INTERVO_LOG_DIR", "")
	t.Setenv("INTERVO_TIMEOUT_S", "")
	t.Setenv("INTERVO_MAX_ATTEMPTS", "")

	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.APIKey != "sk-from-file" {
		t.Errorf("APIKey = %q, want file value", s.APIKey)
	}
	if s.DefaultModel != "env-model" {
		t.Errorf("DefaultModel = %q, env must win over the file", s.DefaultModel)
	}
	if s.LogDir != "file-logs" {
		t.Errorf("LogDir = %q, want file value", s.LogDir)
	}
}

func TestManagerConfigPath(t *testing.T) {
	mgr := newTestManager(t)
	path := mgr.GetConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("config path = %q", path)
	}
	if filepath.Base(filepath.Dir(path)) != "intervo" {
		t.Errorf("config dir = %q", filepath.Dir(path))
	}
}
