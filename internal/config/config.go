// Package config loads interview runtime settings from the environment.
// The cmd layer is expected to call godotenv.Load() before Load so a local
// .env file works the same as exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds provider credentials and per-role model selection.
type Settings struct {
	Provider string // "openai" (default) or "anthropic"
	APIKey   string
	BaseURL  string // optional override for OpenAI-compatible APIs

	// Per-role model names. Empty entries fall back to DefaultModel.
	DefaultModel string
	RoleModels   map[string]string

	DefaultTimeout time.Duration
	MaxAttempts    int

	LogDir string
	// Optional question bank file; empty means the built-in bank.
	BankPath string
}

// Roles known to the factory and the agents layer.
const (
	RoleInterviewer      = "interviewer"
	RoleObserver         = "observer"
	RoleFactChecker      = "factchecker"
	RoleHiringManager    = "hiring_manager"
	RoleStopIntent       = "stop_intent"
	RoleProfileExtractor = "profile_extractor"
)

var roleModelEnv = map[string]string{
	RoleInterviewer:      "INTERVO_MODEL_INTERVIEWER",
	RoleObserver:         "INTERVO_MODEL_OBSERVER",
	RoleFactChecker:      "INTERVO_MODEL_FACTCHECKER",
	RoleHiringManager:    "INTERVO_MODEL_HIRING_MANAGER",
	RoleStopIntent:       "INTERVO_MODEL_STOP_INTENT",
	RoleProfileExtractor: "INTERVO_MODEL_PROFILE_EXTRACTOR",
}

// Load reads settings from environment variables. Values missing from the
// environment fall back to the persistent file config when one exists.
func Load() (*Settings, error) {
	file := &FileConfig{}
	if mgr, err := NewManager(); err == nil {
		if cfg, err := mgr.Load(); err == nil {
			file = cfg
		}
	}

	provider := firstNonEmpty(os.Getenv("LLM_PROVIDER"), file.Provider, "openai")

	var apiKey string
	switch provider {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
	if apiKey == "" {
		apiKey = file.APIKey
	}

	defaultModel := firstNonEmpty(os.Getenv("INTERVO_MODEL"), file.Model)
	if defaultModel == "" {
		switch provider {
		case "anthropic":
			defaultModel = "claude-3-5-haiku-20241022"
		default:
			defaultModel = "gpt-4o-mini"
		}
	}

	roleModels := make(map[string]string, len(roleModelEnv))
	for role, envName := range roleModelEnv {
		if v := os.Getenv(envName); v != "" {
			roleModels[role] = v
		}
	}

	timeout := 60 * time.Second
	if v := os.Getenv("INTERVO_TIMEOUT_S"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid INTERVO_TIMEOUT_S value %q", v)
		}
		timeout = time.Duration(secs) * time.Second
	}

	attempts := 2
	if v := os.Getenv("INTERVO_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid INTERVO_MAX_ATTEMPTS value %q", v)
		}
		attempts = n
	}

	logDir := firstNonEmpty(os.Getenv("INTERVO_LOG_DIR"), file.LogDir, "logs")

	return &Settings{
		Provider:       provider,
		APIKey:         apiKey,
		BaseURL:        firstNonEmpty(os.Getenv("OPENAI_BASE_URL"), file.BaseURL),
		DefaultModel:   defaultModel,
		RoleModels:     roleModels,
		DefaultTimeout: timeout,
		MaxAttempts:    attempts,
		LogDir:         logDir,
		BankPath:       firstNonEmpty(os.Getenv("INTERVO_BANK_PATH"), file.BankPath),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ModelForRole returns the configured model for a role, falling back to the
// default model.
func (s *Settings) ModelForRole(role string) string {
	if m, ok := s.RoleModels[role]; ok {
		return m
	}
	return s.DefaultModel
}
