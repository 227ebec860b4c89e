package graph

import (
	"context"
	"fmt"
	"strings"

	"intervo/internal/agents"
	"intervo/internal/bank"
	"intervo/internal/logstore"
	"intervo/internal/policy"
	"intervo/internal/state"
)

// Step names. The topology in Build refers to these.
const (
	NodeIntake          = "intake"
	NodeProfileExtract  = "profile_extract"
	NodeStopIntent      = "stop_intent"
	NodeObserverEval    = "observer_evaluate"
	NodeRobustness      = "robustness_detect"
	NodePolicyUpdate    = "policy_update"
	NodeAnswerCandidate = "answer_candidate"
	NodeRefocus         = "refocus"
	NodeFactCheck       = "factcheck"
	NodeHallucination   = "hallucination"
	NodeInterviewer     = "interviewer_generate"
	NodeLogger          = "logger"
	NodeFinalFeedback   = "final_feedback"
	NodeFinalLogger     = "final_logger"
)

// Deps carries the collaborators the workflow steps delegate to. Bank is
// a Source so a hot-reloaded pool reaches steps mid-session.
type Deps struct {
	Bank             bank.Source
	Store            *logstore.Store
	Observer         *agents.Observer
	Interviewer      *agents.Interviewer
	FactChecker      *agents.FactChecker
	HiringManager    *agents.HiringManager
	StopIntent       *agents.StopIntent
	ProfileExtractor *agents.ProfileExtractor
}

type nodes struct {
	deps Deps
}

func (n *nodes) intake(_ context.Context, s *state.Session) (*state.Update, error) {
	if s.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if s.AskedQuestions == nil || s.Skills == nil {
		return nil, fmt.Errorf("session record not initialized")
	}
	normalized := policy.NormalizeCandidateInput(s.Input)
	if normalized == "" {
		return nil, fmt.Errorf("candidate input is empty after normalization")
	}
	// Per-turn ephemera from the previous turn are dropped here, not by
	// the caller.
	noQuestion := ""
	return &state.Update{
		Input:                &normalized,
		ClearPlannedQuestion: true,
		ClearPlannedResponse: true,
		ClearNotes:           true,
		CandidateQuestion:    &noQuestion,
	}, nil
}

func (n *nodes) profileExtract(ctx context.Context, s *state.Session) (*state.Update, error) {
	// Runs exactly once, on the pre-first-turn sentinel.
	if s.ProfileExtracted || s.TurnID != state.TurnSentinel || s.Input == "" {
		return nil, nil
	}
	profile, err := n.deps.ProfileExtractor.Extract(ctx, s.Input)
	extracted := true
	update := &state.Update{Profile: profile, ProfileExtracted: &extracted}
	if err != nil {
		update.AppendNotes = []string{fmt.Sprintf("[ProfileExtractor] fallback engaged: %v", err)}
	}
	if storeErr := n.deps.Store.SetProfile(ctx, s.SessionID, profile); storeErr != nil {
		return nil, storeErr
	}
	return update, nil
}

func (n *nodes) stopIntent(ctx context.Context, s *state.Session) (*state.Update, error) {
	verdict, err := n.deps.StopIntent.Classify(ctx, s.Input)
	stop := policy.ShouldStop(verdict.Stop, verdict.Confidence, s.Input)
	update := &state.Update{
		StopIntent:    verdict,
		StopRequested: &stop,
		AppendNotes: []string{fmt.Sprintf("[StopIntent] stop=%v confidence=%d rationale=%s",
			verdict.Stop, verdict.Confidence, verdict.Rationale)},
	}
	if err != nil {
		update.AppendNotes = append(update.AppendNotes,
			fmt.Sprintf("[StopIntent] fallback engaged: %v", err))
	}
	return update, nil
}

func (n *nodes) observerEvaluate(ctx context.Context, s *state.Session) (*state.Update, error) {
	evaluation, err := n.deps.Observer.Evaluate(ctx, s.LastAgentMessage, s.Input)
	update := &state.Update{
		Observer: evaluation,
		AppendHistory: []state.HistoryEntry{
			{Role: state.RoleCandidate, Content: s.Input},
		},
		SkillUpdates: agents.SanitizeSkillUpdates(evaluation.SkillUpdates),
		AppendNotes: []string{fmt.Sprintf("[Observer] correctness=%s confidence=%s summary=%s",
			evaluation.AnswerQuality.Correctness, evaluation.AnswerQuality.Confidence, evaluation.Summary)},
	}
	if err != nil {
		update.AppendNotes = append(update.AppendNotes,
			fmt.Sprintf("[Observer] fallback engaged: %v", err))
	}
	return update, nil
}

func (n *nodes) robustnessDetect(_ context.Context, s *state.Session) (*state.Update, error) {
	flags := s.Observer.Robustness
	route := policy.ChooseRoute(false, flags)
	update := &state.Update{
		Robustness: &flags,
		Route:      &route,
		AppendNotes: []string{fmt.Sprintf("[RobustnessDetector] route=%s off_topic=%v role_reversal=%v hallucination=%v",
			route, flags.OffTopic, flags.RoleReversal, flags.HallucinationClaim)},
	}
	if flags.RoleReversal {
		q := policy.ExtractCandidateQuestion(s.Input)
		update.CandidateQuestion = &q
	}
	return update, nil
}

// questionTypeForAction maps an action type to the bank question type the
// picker should prefer.
func questionTypeForAction(action string) string {
	switch action {
	case policy.ActionClarify:
		return bank.TypeClarify
	case policy.ActionSimplify:
		return bank.TypeSimplify
	case policy.ActionHint:
		return bank.TypeHint
	default:
		return bank.TypeBase
	}
}

func (n *nodes) policyUpdate(_ context.Context, s *state.Session) (*state.Update, error) {
	evaluation := s.Observer
	difficulty := policy.ApplyDifficulty(s.Difficulty, evaluation.DifficultyDelta)

	action := s.Route
	if s.Route == policy.RouteNormal {
		action = policy.DecideActionType(evaluation.Robustness, evaluation.AnswerQuality, s.LastAction)
	}

	pool := n.deps.Bank.Bank()
	master := pool.Topics()
	var exclude map[string]bool
	var notes []string
	if policy.DetectLoop(s.Topics.LastPromptHashes) && s.Topics.Current != "" {
		exclude = map[string]bool{s.Topics.Current: true}
		notes = append(notes, fmt.Sprintf("[Observer] loop detected on topic %s, forcing reselection", s.Topics.Current))
	}
	topic := policy.SelectNextTopic(s.Skills, master, s.Topics.RecentTopics, evaluation.NextAction.Topic, exclude)

	update := &state.Update{
		Difficulty: &difficulty,
		ActionType: &action,
		LastAction: &action,
		AppendNotes: append(notes,
			fmt.Sprintf("[Observer] difficulty=%d action=%s topic=%s", difficulty, action, topic)),
	}

	current := topic
	if question, ok := pool.PickNext(topic, difficulty, questionTypeForAction(action), s.AskedQuestions); ok {
		update.PlannedQuestion = &question
		update.PushHash = policy.HashPrompt(question.Prompt)
		// The picker may have relaxed away from the selected topic.
		current = question.Topic
	} else {
		update.AppendNotes = append(update.AppendNotes, "[Observer] question bank exhausted")
	}
	update.CurrentTopic = &current
	return update, nil
}

func (n *nodes) answerCandidate(_ context.Context, s *state.Session) (*state.Update, error) {
	return &state.Update{
		PlannedResponse: &state.PlannedResponse{
			Kind:        policy.RouteAnswerCandidate,
			Instruction: "Answer the candidate's question briefly, then steer back to the interview.",
			Payload:     s.CandidateQuestion,
		},
	}, nil
}

func (n *nodes) refocus(_ context.Context, s *state.Session) (*state.Update, error) {
	return &state.Update{
		PlannedResponse: &state.PlannedResponse{
			Kind:        policy.RouteRefocus,
			Instruction: "Politely steer the conversation back to the current topic.",
			Payload:     s.Topics.Current,
		},
	}, nil
}

func (n *nodes) factCheck(ctx context.Context, s *state.Session) (*state.Update, error) {
	claim := ""
	if len(s.Observer.DetectedClaims) > 0 {
		claim = s.Observer.DetectedClaims[0].Claim
	}
	if claim == "" {
		claim = s.Input
	}
	verdict, err := n.deps.FactChecker.Check(ctx, claim)
	update := &state.Update{
		FactCheck: verdict,
		AppendNotes: []string{fmt.Sprintf("[FactChecker] label=%s confidence=%d claim=%s",
			verdict.Label, verdict.Confidence, claim)},
	}
	if err != nil {
		update.AppendNotes = append(update.AppendNotes,
			fmt.Sprintf("[FactChecker] fallback engaged: %v", err))
	}
	return update, nil
}

func (n *nodes) hallucination(_ context.Context, s *state.Session) (*state.Update, error) {
	payload := ""
	if s.FactCheck != nil {
		payload = s.FactCheck.SafeResponse
		if s.FactCheck.Correction != "" {
			payload = fmt.Sprintf("%s Correction: %s", payload, s.FactCheck.Correction)
		}
	}
	return &state.Update{
		PlannedResponse: &state.PlannedResponse{
			Kind:        policy.RouteHallucination,
			Instruction: "Gently address the incorrect claim without lecturing, then continue.",
			Payload:     payload,
		},
	}, nil
}

func (n *nodes) interviewerGenerate(ctx context.Context, s *state.Session) (*state.Update, error) {
	out, err := n.deps.Interviewer.Generate(ctx, s)
	message := policy.NormalizeText(out.AgentVisibleMessage, policy.MaxAgentMessageLen)
	update := &state.Update{
		LastAgentMessage: &message,
		AppendHistory: []state.HistoryEntry{
			{Role: state.RoleInterviewer, Content: message},
		},
		PushTopic: out.Metadata.Topic,
	}
	if s.PlannedQuestion != nil && !s.AskedQuestions[s.PlannedQuestion.ID] {
		update.AskQuestion = s.PlannedQuestion.ID
	}
	if err != nil {
		update.AppendNotes = []string{fmt.Sprintf("[Observer] interviewer fallback engaged: %v", err)}
	}
	return update, nil
}

func (n *nodes) logger(ctx context.Context, s *state.Session) (*state.Update, error) {
	turnID := s.TurnID + 1
	record := logstore.TurnRecord{
		TurnID:           turnID,
		CandidateMessage: s.Input,
		AgentMessage:     s.LastAgentMessage,
		InternalNotes:    strings.Join(s.InternalNotes, "\n"),
	}
	if record.InternalNotes == "" {
		record.InternalNotes = "[Observer] no notes recorded"
	}
	if err := n.deps.Store.AppendTurn(ctx, s.SessionID, record); err != nil {
		return nil, err
	}
	return &state.Update{TurnID: &turnID}, nil
}

func (n *nodes) finalFeedback(ctx context.Context, s *state.Session) (*state.Update, error) {
	sessionLog, err := n.deps.Store.Load(ctx, s.SessionID)
	if err != nil {
		return nil, err
	}
	feedback, err := n.deps.HiringManager.Assess(ctx, s, sessionLog)
	update := &state.Update{FinalFeedback: feedback}
	if err != nil {
		update.AppendNotes = []string{fmt.Sprintf("[Observer] hiring manager fallback engaged: %v", err)}
	}
	return update, nil
}

func (n *nodes) finalLogger(ctx context.Context, s *state.Session) (*state.Update, error) {
	if err := n.deps.Store.SetFinalFeedback(ctx, s.SessionID, s.FinalFeedback); err != nil {
		return nil, err
	}
	turnID := s.TurnID + 1
	record := logstore.TurnRecord{
		TurnID:           turnID,
		CandidateMessage: s.Input,
		AgentMessage:     s.FinalFeedback.Summary,
		InternalNotes:    strings.Join(append(s.InternalNotes, "[Observer] session ended"), "\n"),
	}
	if err := n.deps.Store.AppendTurn(ctx, s.SessionID, record); err != nil {
		return nil, err
	}
	return &state.Update{TurnID: &turnID}, nil
}
