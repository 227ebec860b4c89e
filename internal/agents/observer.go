package agents

import (
	"context"
	"fmt"

	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/schema"
	"intervo/internal/skills"
	"intervo/internal/structcall"
)

// Observer evaluates one candidate answer per turn.
type Observer struct {
	client   llm.Client
	settings *config.Settings
}

func NewObserver(client llm.Client, settings *config.Settings) *Observer {
	return &Observer{client: client, settings: settings}
}

// Evaluate returns the structured evaluation of an answer. On exhausted
// attempts the fixed fallback is returned together with the failure.
func (o *Observer) Evaluate(ctx context.Context, question, answer string) (*schema.ObserverOutput, error) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleObserver)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Question:\n%s\n\nCandidate answer:\n%s", question, answer)},
	}
	var out schema.ObserverOutput
	if err := structcall.ForJSON(ctx, o.client, messages, &out, callOptions(config.RoleObserver, o.settings)); err != nil {
		return ObserverFallback(), err
	}
	return &out, nil
}

// ObserverFallback is the deterministic stand-in evaluation: unknown
// correctness, slightly eased difficulty, a clarifying follow-up, and no
// robustness flags.
func ObserverFallback() *schema.ObserverOutput {
	return &schema.ObserverOutput{
		Summary: "Evaluation unavailable; proceeding cautiously.",
		AnswerQuality: schema.AnswerQuality{
			Correctness: "unknown",
			Confidence:  "low",
		},
		DifficultyDelta: -1,
		NextAction: schema.NextAction{
			Type:                     "clarify",
			InstructionToInterviewer: "Ask the candidate to restate their last answer in their own words.",
		},
	}
}

// statusKnown guards against evaluator typos leaking into the matrix.
func statusKnown(status string) bool {
	switch status {
	case skills.StatusGap, skills.StatusUncertain, skills.StatusConfirmed, skills.StatusUnknown:
		return true
	}
	return false
}

// SanitizeSkillUpdates drops updates with unknown statuses or empty topics.
func SanitizeSkillUpdates(updates []schema.SkillUpdate) []schema.SkillUpdate {
	var out []schema.SkillUpdate
	for _, u := range updates {
		if u.Topic == "" || !statusKnown(u.Status) {
			continue
		}
		out = append(out, u)
	}
	return out
}
