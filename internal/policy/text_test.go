package policy

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "hello world", "hello world"},
		{"strips control chars", "hel\x00lo\x1b[31m", "hello[31m"},
		{"keeps newlines and tabs", "a\n\tb", "a\n\tb"},
		{"keeps cyrillic", "Привет, мир", "Привет, мир"},
		{"drops emoji", "fine 👍 answer", "fine  answer"},
		{"trims", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input, 0); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeCandidateInputCaps(t *testing.T) {
	long := strings.Repeat("a", MaxCandidateInputLen+500)
	got := NormalizeCandidateInput(long)
	if len([]rune(got)) != MaxCandidateInputLen {
		t.Errorf("len = %d, want %d", len([]rune(got)), MaxCandidateInputLen)
	}
}

func TestMatchesStopPhrase(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"please stop the interview now", true},
		{"STOP INTERVIEW", true},
		{"can we end interview here", true},
		{"final feedback please", true},
		{"I want to keep going", false},
		{"we should never stop learning", false},
	}
	for _, tt := range tests {
		if got := MatchesStopPhrase(tt.input); got != tt.want {
			t.Errorf("MatchesStopPhrase(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestShouldStop(t *testing.T) {
	if !ShouldStop(true, 85, "a normal answer") {
		t.Error("confident classifier verdict must stop")
	}
	if ShouldStop(true, 50, "a normal answer") {
		t.Error("low-confidence verdict alone must not stop")
	}
	if !ShouldStop(false, 0, "ok, stop the interview") {
		t.Error("fixed phrase must stop regardless of classifier")
	}
	if ShouldStop(false, 99, "a normal answer") {
		t.Error("no verdict and no phrase must not stop")
	}
}
