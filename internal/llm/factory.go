package llm

import (
	"fmt"

	"intervo/internal/config"
)

// NewClientForRole creates a Client for the given role using the configured
// provider and the role's model. Each role gets its own client so model
// selection and temperature stay independent across roles.
func NewClientForRole(settings *config.Settings, role string) (Client, error) {
	model := settings.ModelForRole(role)
	if model == "" {
		return nil, fmt.Errorf("no model configured for role %q", role)
	}

	switch settings.Provider {
	case "openai":
		if settings.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAIClient(settings.APIKey, model, settings.BaseURL)
	case "anthropic":
		if settings.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return NewAnthropicClient(settings.APIKey, model)
	default:
		return nil, fmt.Errorf("unknown provider %q", settings.Provider)
	}
}
