package agents

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"intervo/internal/bank"
	"intervo/internal/config"
	"intervo/internal/llm"
	"intervo/internal/logstore"
	"intervo/internal/skills"
	"intervo/internal/state"
)

func testSettings() *config.Settings {
	return &config.Settings{
		MaxAttempts:    1,
		DefaultTimeout: 5 * time.Second,
	}
}

// scripted returns a client replaying canned responses in order.
func scripted(responses ...string) llm.Client {
	i := 0
	return llm.ClientFunc(func(context.Context, []llm.ChatMessage, llm.ChatOptions) (llm.Response, error) {
		if i >= len(responses) {
			return llm.Response{}, fmt.Errorf("no scripted response left")
		}
		r := responses[i]
		i++
		return llm.Response{Content: r}, nil
	})
}

func broken() llm.Client {
	return llm.ClientFunc(func(context.Context, []llm.ChatMessage, llm.ChatOptions) (llm.Response, error) {
		return llm.Response{}, fmt.Errorf("transport down")
	})
}

func TestObserverEvaluate(t *testing.T) {
	client := scripted(`{
		"summary": "solid answer",
		"answer_quality": {"correctness": "correct", "confidence": "high"},
		"detected_claims": [],
		"skill_updates": [{"topic": "sql_joins", "status": "confirmed", "evidence": "explained LEFT JOIN"}],
		"difficulty_delta": 1,
		"next_action": {"type": "ask", "topic": "sql_indexes", "instruction_to_interviewer": "Move to indexes."},
		"robustness": {"off_topic": false, "role_reversal": false, "hallucination_claim": false, "evasive": false}
	}`)
	out, err := NewObserver(client, testSettings()).Evaluate(context.Background(), "q", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DifficultyDelta != 1 || len(out.SkillUpdates) != 1 {
		t.Errorf("decoded wrong output: %+v", out)
	}
}

func TestObserverFallbackOnFailure(t *testing.T) {
	out, err := NewObserver(broken(), testSettings()).Evaluate(context.Background(), "q", "a")
	if err == nil {
		t.Fatal("expected the underlying failure to be reported")
	}
	if out == nil || out.DifficultyDelta != -1 {
		t.Fatalf("fallback malformed: %+v", out)
	}
	if out.NextAction.Type != "clarify" {
		t.Errorf("fallback action = %q", out.NextAction.Type)
	}
	if out.Robustness.OffTopic || out.Robustness.RoleReversal || out.Robustness.HallucinationClaim {
		t.Error("fallback must not raise robustness flags")
	}
}

func TestStopIntentFallbackNeverStops(t *testing.T) {
	out, err := NewStopIntent(broken(), testSettings()).Classify(context.Background(), "bye")
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Stop || out.Confidence != 0 {
		t.Errorf("fallback must not stop: %+v", out)
	}
}

func TestFactCheckFallback(t *testing.T) {
	out, err := NewFactChecker(broken(), testSettings()).Check(context.Background(), "the moon is cheese")
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Label != "uncertain" || out.Confidence != 50 {
		t.Errorf("fallback = %+v", out)
	}
	if out.SafeResponse == "" {
		t.Error("fallback must carry a safe response")
	}
}

func TestInterviewerFallbackUsesFirstUnasked(t *testing.T) {
	b := bank.Default()
	sess := state.NewSession("s1")
	first, _ := b.FirstUnasked(nil)
	sess.AskedQuestions[first.ID] = true

	out, err := NewInterviewer(broken(), testSettings(), b).Generate(context.Background(), sess)
	if err == nil {
		t.Fatal("expected error")
	}
	second, _ := b.FirstUnasked(sess.AskedQuestions)
	if out.AgentVisibleMessage != second.Prompt {
		t.Errorf("fallback message = %q, want prompt of %q", out.AgentVisibleMessage, second.ID)
	}
	if out.Metadata.Topic != second.Topic {
		t.Errorf("fallback topic = %q", out.Metadata.Topic)
	}
}

// capturing returns a client that records the user message it was sent.
func capturing(response string, lastUser *string) llm.Client {
	return llm.ClientFunc(func(_ context.Context, messages []llm.ChatMessage, _ llm.ChatOptions) (llm.Response, error) {
		for _, m := range messages {
			if m.Role == llm.RoleUser {
				*lastUser = m.Content
			}
		}
		return llm.Response{Content: response}, nil
	})
}

func TestInterviewerTurnPayloadComposition(t *testing.T) {
	sess := state.NewSession("s1")
	sess.ActionType = "clarify"
	sess.Difficulty = 3
	sess.Topics.Current = "sql_joins"
	sess.History = []state.HistoryEntry{
		{Role: state.RoleInterviewer, Content: "What is a LEFT JOIN?"},
		{Role: state.RoleCandidate, Content: "It keeps unmatched left rows."},
	}
	q := bank.Question{ID: "sql_join_1", Topic: "sql_joins", Difficulty: 1, Type: bank.TypeBase, Prompt: "Explain INNER vs LEFT JOIN."}
	sess.PlannedQuestion = &q

	var captured string
	client := capturing(`{
		"agent_visible_message": "Could you clarify what happens to unmatched rows?",
		"metadata": {"topic": "sql_joins", "intent": "clarify", "difficulty": 3}
	}`, &captured)
	if _, err := NewInterviewer(client, testSettings(), bank.Default()).Generate(context.Background(), sess); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Action type: clarify",
		"Topic: sql_joins",
		"Difficulty: 3",
		"candidate: It keeps unmatched left rows.",
		"Planned question (id sql_join_1)",
	} {
		if !strings.Contains(captured, want) {
			t.Errorf("payload missing %q:\n%s", want, captured)
		}
	}
	if strings.Contains(captured, "{{") {
		t.Errorf("unsubstituted template variable in payload:\n%s", captured)
	}
}

func TestHiringManagerAssessesFromLog(t *testing.T) {
	sess := state.NewSession("s1")
	sess.Skills["sql_joins"] = &skills.Entry{Status: skills.StatusConfirmed, Evidence: []string{"explained LEFT JOIN"}}
	sess.Skills["python_types"] = &skills.Entry{Status: skills.StatusGap}
	sessionLog := &logstore.SessionLog{
		SessionID: "s1",
		Turns: []logstore.TurnRecord{
			{TurnID: 0, AgentMessage: "What is a tuple?", CandidateMessage: "No idea.",
				InternalNotes: "[RobustnessDetector] route=refocus off_topic=true"},
		},
	}

	var captured string
	client := capturing(`{
		"Decision": {"Grade": "Junior", "HiringRecommendation": "No Hire", "ConfidenceScore": 60},
		"HardSkills": {"ConfirmedSkills": ["sql_joins"], "KnowledgeGaps": []},
		"SoftSkills": {"Clarity": "Medium", "Honesty": "High", "Engagement": "Medium", "Notes": ""},
		"Roadmap": {"NextSteps": []},
		"Summary": "A short session with one confirmed topic and one gap."
	}`, &captured)
	if _, err := NewHiringManager(client, testSettings()).Assess(context.Background(), sess, sessionLog); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"question: What is a tuple?",
		"answer: No idea.",
		"confirmed: sql_joins",
		"gaps: python_types",
		"turn 0: refocus",
	} {
		if !strings.Contains(captured, want) {
			t.Errorf("assessment input missing %q:\n%s", want, captured)
		}
	}
}

func TestHiringManagerFallback(t *testing.T) {
	sess := state.NewSession("s1")
	sessionLog := &logstore.SessionLog{SessionID: "s1"}
	out, err := NewHiringManager(broken(), testSettings()).Assess(context.Background(), sess, sessionLog)
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Decision.Grade != "Junior" || out.Decision.HiringRecommendation != "No Hire" || out.Decision.ConfidenceScore != 20 {
		t.Errorf("fallback decision = %+v", out.Decision)
	}
	if len(out.Roadmap.NextSteps) != 1 {
		t.Fatalf("fallback roadmap = %+v", out.Roadmap)
	}
	if out.Roadmap.NextSteps[0].Why == "" {
		t.Error("fallback roadmap step must explain itself")
	}
}

func TestProfileExtractNormalizes(t *testing.T) {
	client := scripted(`{
		"name": "Ada",
		"level": "Sr",
		"position": "Backend Engineer",
		"skills": ["python", "py", "cpp", "golang", "Rust"],
		"confidence": {"level": 0.9},
		"assumptions": []
	}`)
	out, err := NewProfileExtractor(client, testSettings()).Extract(context.Background(), "hi, I'm Ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Level != "senior" {
		t.Errorf("level = %q", out.Level)
	}
	want := []string{"Python", "C++", "Go", "Rust"}
	if len(out.Skills) != len(want) {
		t.Fatalf("skills = %v, want %v", out.Skills, want)
	}
	for i := range want {
		if out.Skills[i] != want[i] {
			t.Errorf("skills[%d] = %q, want %q", i, out.Skills[i], want[i])
		}
	}
}

func TestProfileFallback(t *testing.T) {
	out, err := NewProfileExtractor(broken(), testSettings()).Extract(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Name != "" || len(out.Skills) != 0 {
		t.Errorf("fallback must be empty: %+v", out)
	}
	if len(out.Assumptions) != 1 || out.Assumptions[0] != "LLM extraction failed" {
		t.Errorf("fallback assumptions = %v", out.Assumptions)
	}
}
