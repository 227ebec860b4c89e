package config

import (
	"testing"
	"time"
)

// isolateUserConfig keeps Load from picking up a real config.json on the
// machine running the tests.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("INTERVO_MODEL", "")
	t.Setenv("INTERVO_TIMEOUT_S", "")
	t.Setenv("INTERVO_MAX_ATTEMPTS", "")
	t.Setenv("INTERVO_LOG_DIR", "")

	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Provider != "openai" {
		t.Errorf("Provider = %q", s.Provider)
	}
	if s.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", s.APIKey)
	}
	if s.DefaultModel == "" {
		t.Error("DefaultModel must have a default")
	}
	if s.DefaultTimeout != 60*time.Second {
		t.Errorf("DefaultTimeout = %v", s.DefaultTimeout)
	}
	if s.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d", s.MaxAttempts)
	}
	if s.LogDir != "logs" {
		t.Errorf("LogDir = %q", s.LogDir)
	}
}

func TestLoadAnthropicProvider(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("INTERVO_MODEL", "")

	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Provider != "anthropic" || s.APIKey != "ak-test" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("LLM_PROVIDER", "bedrock")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("INTERVO_TIMEOUT_S", "zero")
	if _, err := Load(); err == nil {
		t.Error("expected error for bad timeout")
	}

	t.Setenv("INTERVO_TIMEOUT_S", "")
	t.Setenv("INTERVO_MAX_ATTEMPTS", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for bad attempt count")
	}
}

func TestModelForRole(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("INTERVO_MODEL", "base-model")
	t.Setenv("INTERVO_MODEL_OBSERVER", "observer-model")
	t.Setenv("INTERVO_MODEL_INTERVIEWER", "")
	t.Setenv("INTERVO_MAX_ATTEMPTS", "")
	t.Setenv("INTERVO_TIMEOUT_S", "")

	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := s.ModelForRole(RoleObserver); got != "observer-model" {
		t.Errorf("observer model = %q", got)
	}
	if got := s.ModelForRole(RoleInterviewer); got != "base-model" {
		t.Errorf("interviewer model = %q", got)
	}
}
