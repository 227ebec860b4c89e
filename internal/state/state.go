// Package state defines the session record threaded through the interview
// workflow and the partial-update mechanism steps use to mutate it.
package state

import (
	"fmt"

	"intervo/internal/bank"
	"intervo/internal/schema"
	"intervo/internal/skills"
)

// TurnSentinel is the turn counter value before the first logged turn.
const TurnSentinel = -1

// Roles used in conversation history entries.
const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
)

// HistoryEntry is one role-tagged message in the conversation.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// promptHashRingSize bounds the recent-prompt ring used for loop detection.
const promptHashRingSize = 5

// TopicState tracks topic coverage and recent planning activity.
type TopicState struct {
	Current          string         `json:"current"`
	RecentTopics     []string       `json:"recent_topics"`
	Coverage         map[string]int `json:"coverage"`
	LastPromptHashes []string       `json:"last_prompt_hashes"`
}

// PushPromptHash appends a planned-question prompt hash, keeping the ring
// capped at five entries.
func (t *TopicState) PushPromptHash(h string) {
	t.LastPromptHashes = append(t.LastPromptHashes, h)
	if len(t.LastPromptHashes) > promptHashRingSize {
		t.LastPromptHashes = t.LastPromptHashes[len(t.LastPromptHashes)-promptHashRingSize:]
	}
}

// PushTopic records a served topic on the recent-topic history and bumps
// its coverage counter.
func (t *TopicState) PushTopic(topic string) {
	if topic == "" {
		return
	}
	t.Current = topic
	t.RecentTopics = append(t.RecentTopics, topic)
	if len(t.RecentTopics) > promptHashRingSize {
		t.RecentTopics = t.RecentTopics[len(t.RecentTopics)-promptHashRingSize:]
	}
	if t.Coverage == nil {
		t.Coverage = make(map[string]int)
	}
	t.Coverage[topic]++
}

// PlannedResponse is the short structured payload the special-action steps
// hand to the interviewer instead of free text.
type PlannedResponse struct {
	Kind        string `json:"kind"`
	Instruction string `json:"instruction"`
	Payload     string `json:"payload"`
}

// Session is the single mutable record for one interview session. It is
// owned by exactly one in-flight turn at a time; the engine mutates it
// only by merging Updates produced by steps.
type Session struct {
	SessionID string

	// TurnID starts at the pre-turn sentinel and increases once per
	// logged turn.
	TurnID int

	// Input is the candidate message for the current invocation.
	Input string

	Profile          *schema.CandidateProfile
	ProfileExtracted bool

	History        []HistoryEntry
	AskedQuestions map[string]bool

	Difficulty int
	Topics     TopicState
	Skills     skills.Matrix

	// Last structured outputs per role, nil until produced.
	Observer   *schema.ObserverOutput
	Robustness *schema.RobustnessFlags
	FactCheck  *schema.FactCheckVerdict
	StopIntent *schema.StopIntentOutput

	// CandidateQuestion is the extracted question substring when role
	// reversal is flagged.
	CandidateQuestion string

	// Ephemeral per-turn planning, overwritten every turn.
	PlannedQuestion *bank.Question
	PlannedResponse *PlannedResponse

	ActionType string
	LastAction string
	Route      string

	// LastAgentMessage is the interviewer message emitted this turn.
	LastAgentMessage string

	// InternalNotes collects tagged diagnostic lines for the turn log.
	InternalNotes []string

	StopRequested bool
	FinalFeedback *schema.FinalFeedback
}

// NewSession creates a fresh session record.
func NewSession(id string) *Session {
	return &Session{
		SessionID:      id,
		TurnID:         TurnSentinel,
		AskedQuestions: make(map[string]bool),
		Difficulty:     1,
		Skills:         skills.NewMatrix(),
	}
}

// Update is a partial diff produced by one workflow step. Nil fields leave
// the session untouched; set fields replace or append as documented.
type Update struct {
	TurnID *int
	Input  *string

	Profile          *schema.CandidateProfile
	ProfileExtracted *bool

	AppendHistory []HistoryEntry
	AskQuestion   string // question id to record as asked

	Difficulty *int
	Topics     *TopicState
	// CurrentTopic retargets Topics.Current without touching the
	// recent-topic history or coverage counters.
	CurrentTopic *string
	PushTopic    string
	PushHash     string

	SkillUpdates []schema.SkillUpdate

	Observer   *schema.ObserverOutput
	Robustness *schema.RobustnessFlags
	FactCheck  *schema.FactCheckVerdict
	StopIntent *schema.StopIntentOutput

	CandidateQuestion *string

	PlannedQuestion      *bank.Question
	ClearPlannedQuestion bool
	PlannedResponse      *PlannedResponse
	ClearPlannedResponse bool

	ActionType *string
	LastAction *string
	Route      *string

	LastAgentMessage *string
	AppendNotes      []string
	// ClearNotes drops the previous turn's notes before AppendNotes is
	// applied.
	ClearNotes bool

	StopRequested *bool
	FinalFeedback *schema.FinalFeedback
}

// Merge folds an update into the session. History, asked questions,
// evidence, and notes are append-only; scalar fields replace.
func (s *Session) Merge(u *Update) error {
	if u == nil {
		return nil
	}
	if u.TurnID != nil {
		if *u.TurnID < s.TurnID {
			return fmt.Errorf("turn id must not decrease: %d -> %d", s.TurnID, *u.TurnID)
		}
		s.TurnID = *u.TurnID
	}
	if u.Input != nil {
		s.Input = *u.Input
	}
	if u.Profile != nil {
		s.Profile = u.Profile
	}
	if u.ProfileExtracted != nil {
		s.ProfileExtracted = *u.ProfileExtracted
	}
	s.History = append(s.History, u.AppendHistory...)
	if u.AskQuestion != "" {
		if s.AskedQuestions == nil {
			s.AskedQuestions = make(map[string]bool)
		}
		s.AskedQuestions[u.AskQuestion] = true
	}
	if u.Difficulty != nil {
		d := *u.Difficulty
		if d < 1 {
			d = 1
		}
		if d > 5 {
			d = 5
		}
		s.Difficulty = d
	}
	if u.Topics != nil {
		s.Topics = *u.Topics
	}
	if u.CurrentTopic != nil {
		s.Topics.Current = *u.CurrentTopic
	}
	if u.PushTopic != "" {
		s.Topics.PushTopic(u.PushTopic)
	}
	if u.PushHash != "" {
		s.Topics.PushPromptHash(u.PushHash)
	}
	if len(u.SkillUpdates) > 0 {
		if s.Skills == nil {
			s.Skills = skills.NewMatrix()
		}
		skills.ApplyUpdates(s.Skills, u.SkillUpdates)
	}
	if u.Observer != nil {
		s.Observer = u.Observer
	}
	if u.Robustness != nil {
		s.Robustness = u.Robustness
	}
	if u.FactCheck != nil {
		s.FactCheck = u.FactCheck
	}
	if u.StopIntent != nil {
		s.StopIntent = u.StopIntent
	}
	if u.CandidateQuestion != nil {
		s.CandidateQuestion = *u.CandidateQuestion
	}
	if u.ClearPlannedQuestion {
		s.PlannedQuestion = nil
	}
	if u.PlannedQuestion != nil {
		s.PlannedQuestion = u.PlannedQuestion
	}
	if u.ClearPlannedResponse {
		s.PlannedResponse = nil
	}
	if u.PlannedResponse != nil {
		s.PlannedResponse = u.PlannedResponse
	}
	if u.ActionType != nil {
		s.ActionType = *u.ActionType
	}
	if u.LastAction != nil {
		s.LastAction = *u.LastAction
	}
	if u.Route != nil {
		s.Route = *u.Route
	}
	if u.LastAgentMessage != nil {
		s.LastAgentMessage = *u.LastAgentMessage
	}
	if u.ClearNotes {
		s.InternalNotes = nil
	}
	s.InternalNotes = append(s.InternalNotes, u.AppendNotes...)
	if u.StopRequested != nil {
		s.StopRequested = *u.StopRequested
	}
	if u.FinalFeedback != nil {
		s.FinalFeedback = u.FinalFeedback
	}
	return nil
}
