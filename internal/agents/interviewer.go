package agents

import (
	"context"
	"fmt"
	"strconv"

	"intervo/internal/bank"
	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/schema"
	"intervo/internal/state"
	"intervo/internal/structcall"
)

// Interviewer produces the candidate-facing message each turn.
type Interviewer struct {
	client   llm.Client
	settings *config.Settings
	bank     bank.Source
}

func NewInterviewer(client llm.Client, settings *config.Settings, b bank.Source) *Interviewer {
	return &Interviewer{client: client, settings: settings, bank: b}
}

// Generate renders the next interviewer turn from the session's planned
// question or planned response. On exhausted attempts it falls back to the
// first unasked bank question verbatim.
func (iv *Interviewer) Generate(ctx context.Context, sess *state.Session) (*schema.InterviewerOutput, error) {
	pb := promptBuilder("interviewer_turn").
		SetVariable("history", renderHistory(sess.History, 12)).
		SetVariable("action", sess.ActionType).
		SetVariable("topic", sess.Topics.Current).
		SetVariable("difficulty", strconv.Itoa(sess.Difficulty))
	if sess.PlannedQuestion != nil {
		pb.AddFragment(fmt.Sprintf("Planned question (id %s): %s", sess.PlannedQuestion.ID, sess.PlannedQuestion.Prompt))
	}
	if sess.PlannedResponse != nil {
		pb.AddFragment(fmt.Sprintf("Planned response payload: kind=%s instruction=%s payload=%s",
			sess.PlannedResponse.Kind, sess.PlannedResponse.Instruction, sess.PlannedResponse.Payload))
	}

	b := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt(config.RoleInterviewer)},
		{Role: llm.RoleUser, Content: pb.Build()},
	}

	var out schema.InterviewerOutput
	if err := structcall.ForJSON(ctx, iv.client, b, &out, callOptions(config.RoleInterviewer, iv.settings)); err != nil {
		return iv.fallback(sess), err
	}
	return &out, nil
}

func (iv *Interviewer) fallback(sess *state.Session) *schema.InterviewerOutput {
	q, ok := iv.bank.Bank().FirstUnasked(sess.AskedQuestions)
	if !ok {
		return &schema.InterviewerOutput{
			AgentVisibleMessage: "Thank you. Let's pause here for a moment while I review my notes.",
			Metadata: schema.InterviewerMetadata{
				Topic:      sess.Topics.Current,
				Intent:     "ask",
				Difficulty: sess.Difficulty,
			},
		}
	}
	return &schema.InterviewerOutput{
		AgentVisibleMessage: q.Prompt,
		Metadata: schema.InterviewerMetadata{
			Topic:      q.Topic,
			Intent:     "ask",
			Difficulty: q.Difficulty,
		},
	}
}
