package agents

import (
	"context"
	"fmt"

	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/schema"
	"intervo/internal/structcall"
)

// FactChecker verifies a single candidate claim.
type FactChecker struct {
	client   llm.Client
	settings *config.Settings
}

func NewFactChecker(client llm.Client, settings *config.Settings) *FactChecker {
	return &FactChecker{client: client, settings: settings}
}

// Check verifies one claim string. On exhausted attempts it returns the
// uncertain-verdict fallback.
func (f *FactChecker) Check(ctx context.Context, claim string) (*schema.FactCheckVerdict, error) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleFactChecker)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Claim to verify:\n%s", claim)},
	}
	var out schema.FactCheckVerdict
	if err := structcall.ForJSON(ctx, f.client, messages, &out, callOptions(config.RoleFactChecker, f.settings)); err != nil {
		return FactCheckFallback(), err
	}
	return &out, nil
}

// FactCheckFallback is the deterministic verdict when verification is
// unavailable: uncertain at 50, with a neutral safe response.
func FactCheckFallback() *schema.FactCheckVerdict {
	return &schema.FactCheckVerdict{
		Label:        "uncertain",
		Confidence:   50,
		Explanation:  "Verification unavailable.",
		SafeResponse: "Interesting point; let's set it aside and move on for now.",
	}
}
