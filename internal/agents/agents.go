// Package agents wraps one language-model role per type: each agent builds
// its prompt from the relevant slice of session state, runs a structured
// call, and substitutes its deterministic fallback when attempts are
// exhausted. Agents never return a result-less error; callers always get a
// usable value, plus the underlying failure for out-of-band logging.
package agents

import (
	"fmt"
	"strings"

	"intervo/internal/config"
	"intervo/internal/prompts"
	"intervo/internal/state"
	"intervo/internal/structcall"
)

func callOptions(role string, settings *config.Settings) structcall.Options {
	return structcall.Options{
		Role:        role,
		MaxAttempts: settings.MaxAttempts,
		Timeout:     settings.DefaultTimeout,
	}
}

func systemPrompt(role string) string {
	p, err := prompts.DefaultRegistry().GetLatest(role)
	if err != nil {
		// Registration happens in package init; a missing role is a
		// programming error.
		panic(fmt.Sprintf("prompt for role %s not registered: %v", role, err))
	}
	return p.Content
}

func promptBuilder(id string) *prompts.PromptBuilder {
	b, err := prompts.NewPromptBuilder(prompts.DefaultRegistry(), id, prompts.PromptV1)
	if err != nil {
		panic(fmt.Sprintf("prompt template %s not registered: %v", id, err))
	}
	return b
}

// renderHistory flattens conversation history into a prompt fragment,
// keeping at most the last n entries.
func renderHistory(history []state.HistoryEntry, n int) string {
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, h := range history[start:] {
		fmt.Fprintf(&b, "%s: %s\n", h.Role, h.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
