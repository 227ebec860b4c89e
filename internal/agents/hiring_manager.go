package agents

import (
	"context"

	"intervo/internal/config"
	"intervo/internal/feedback"
	"intervo/internal/llm"
	"intervo/internal/logstore"
	"intervo/internal/schema"
	"intervo/internal/state"
	"intervo/internal/structcall"
)

// HiringManager produces the final structured feedback for a session.
type HiringManager struct {
	client   llm.Client
	settings *config.Settings
}

func NewHiringManager(client llm.Client, settings *config.Settings) *HiringManager {
	return &HiringManager{client: client, settings: settings}
}

// Assess renders the final feedback from the persisted session log and
// the in-memory state. On exhausted attempts it returns the
// insufficient-data fallback.
func (h *HiringManager) Assess(ctx context.Context, sess *state.Session, log *logstore.SessionLog) (*schema.FinalFeedback, error) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleHiringManager)},
		{Role: llm.RoleUser, Content: feedback.AssessmentInput(sess, log)},
	}
	var out schema.FinalFeedback
	if err := structcall.ForJSON(ctx, h.client, messages, &out, callOptions(config.RoleHiringManager, h.settings)); err != nil {
		return HiringManagerFallback(), err
	}
	return &out, nil
}

// HiringManagerFallback grades conservatively when assessment is
// unavailable: Junior, No Hire, low confidence, one explicit
// insufficient-data roadmap step.
func HiringManagerFallback() *schema.FinalFeedback {
	return &schema.FinalFeedback{
		Decision: schema.Decision{
			Grade:                "Junior",
			HiringRecommendation: "No Hire",
			ConfidenceScore:      20,
		},
		HardSkills: schema.HardSkills{},
		SoftSkills: schema.SoftSkills{
			Clarity:    "Medium",
			Honesty:    "Medium",
			Engagement: "Medium",
			Notes:      "Assessment generation failed; ratings are placeholders.",
		},
		Roadmap: schema.Roadmap{
			NextSteps: []schema.RoadmapStep{
				{Topic: "general", Why: "insufficient data to produce a reliable assessment"},
			},
		},
		Summary: "The session could not be assessed automatically. Treat this result as insufficient data rather than a judgement of the candidate.",
	}
}
