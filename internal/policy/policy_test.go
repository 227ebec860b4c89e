package policy

import (
	"testing"

	"intervo/internal/schema"
)

func TestApplyDifficulty(t *testing.T) {
	for base := 1; base <= 5; base++ {
		for delta := -2; delta <= 2; delta++ {
			got := ApplyDifficulty(base, delta)
			want := base + delta
			if want < 1 {
				want = 1
			}
			if want > 5 {
				want = 5
			}
			if got != want {
				t.Errorf("ApplyDifficulty(%d, %d) = %d, want %d", base, delta, got, want)
			}
		}
	}
	if ApplyDifficulty(1, -2) != 1 {
		t.Error("lower boundary broken")
	}
	if ApplyDifficulty(5, 2) != 5 {
		t.Error("upper boundary broken")
	}
}

func TestChooseRoute(t *testing.T) {
	tests := []struct {
		name  string
		stop  bool
		flags schema.RobustnessFlags
		want  string
	}{
		{"stop beats everything", true, schema.RobustnessFlags{OffTopic: true, RoleReversal: true, HallucinationClaim: true}, RouteFinal},
		{"role reversal beats hallucination", false, schema.RobustnessFlags{RoleReversal: true, HallucinationClaim: true, OffTopic: true}, RouteAnswerCandidate},
		{"hallucination beats off topic", false, schema.RobustnessFlags{HallucinationClaim: true, OffTopic: true}, RouteHallucination},
		{"off topic alone", false, schema.RobustnessFlags{OffTopic: true}, RouteRefocus},
		{"clean turn", false, schema.RobustnessFlags{}, RouteNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseRoute(tt.stop, tt.flags); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecideActionType(t *testing.T) {
	tests := []struct {
		name    string
		flags   schema.RobustnessFlags
		quality schema.AnswerQuality
		prev    string
		want    string
	}{
		{"off topic wins", schema.RobustnessFlags{OffTopic: true, RoleReversal: true}, schema.AnswerQuality{Correctness: "wrong"}, "", ActionRefocus},
		{"role reversal next", schema.RobustnessFlags{RoleReversal: true}, schema.AnswerQuality{Correctness: "wrong"}, "", ActionAnswerCandidate},
		{"wrong answer simplifies", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "wrong", Confidence: "high"}, "", ActionSimplify},
		{"incorrect answer simplifies", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "incorrect", Confidence: "high"}, "", ActionSimplify},
		{"low confidence simplifies", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "correct", Confidence: "low"}, "", ActionSimplify},
		{"partial clarifies", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "partial", Confidence: "high"}, "", ActionClarify},
		{"mixed clarifies", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "mixed", Confidence: "medium"}, "", ActionClarify},
		{"hint after simplify", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "correct", Confidence: "high"}, ActionSimplify, ActionHint},
		{"default ask", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "correct", Confidence: "high"}, ActionAsk, ActionAsk},
		{"case insensitive signals", schema.RobustnessFlags{}, schema.AnswerQuality{Correctness: "Partial", Confidence: "High"}, "", ActionClarify},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecideActionType(tt.flags, tt.quality, tt.prev); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCandidateQuestion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single question", "What does the role pay?", "What does the role pay?"},
		{"question after statement", "I am not sure. By the way, how large is the team?", "By the way, how large is the team?"},
		{"last question wins", "Is this remote? What stack do you use?", "What stack do you use?"},
		{"no question mark", "tell me about the company", "tell me about the company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCandidateQuestion(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
