package agents

import (
	"context"
	"fmt"

	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/schema"
	"intervo/internal/structcall"
)

// StopIntent classifies whether a message asks to end the session.
type StopIntent struct {
	client   llm.Client
	settings *config.Settings
}

func NewStopIntent(client llm.Client, settings *config.Settings) *StopIntent {
	return &StopIntent{client: client, settings: settings}
}

// Classify returns the stop verdict for one candidate message. On
// exhausted attempts it returns the non-stop fallback so a broken
// classifier can never end a session by itself.
func (s *StopIntent) Classify(ctx context.Context, message string) (*schema.StopIntentOutput, error) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleStopIntent)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Candidate message:\n%s", message)},
	}
	var out schema.StopIntentOutput
	if err := structcall.ForJSON(ctx, s.client, messages, &out, callOptions(config.RoleStopIntent, s.settings)); err != nil {
		return StopIntentFallback(), err
	}
	return &out, nil
}

// StopIntentFallback declares no stop at zero confidence.
func StopIntentFallback() *schema.StopIntentOutput {
	return &schema.StopIntentOutput{
		Stop:       false,
		Confidence: 0,
		Rationale:  "classifier unavailable",
	}
}
