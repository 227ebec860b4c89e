package policy

import "strings"

// Length caps applied during normalization.
const (
	MaxCandidateInputLen = 2000
	MaxAgentMessageLen   = 4000
)

// NormalizeText strips control and unsupported characters from user-facing
// text, keeping printable ASCII, Cyrillic letters, and the tab/newline
// whitespace set, then enforces the length cap.
func NormalizeText(text string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		case r >= 0x0400 && r <= 0x04ff:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if maxLen > 0 && len([]rune(out)) > maxLen {
		out = string([]rune(out)[:maxLen])
	}
	return out
}

// NormalizeCandidateInput applies the candidate-side cap.
func NormalizeCandidateInput(text string) string {
	return NormalizeText(text, MaxCandidateInputLen)
}

// stopPhrases are the fixed termination phrases matched independently of
// the stop-intent classifier.
var stopPhrases = []string{
	"stop interview",
	"stop the interview",
	"end interview",
	"final feedback please",
}

// MatchesStopPhrase reports whether the message contains one of the fixed
// termination phrases.
func MatchesStopPhrase(message string) bool {
	lowered := strings.ToLower(message)
	for _, p := range stopPhrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// ShouldStop combines the classifier verdict with the fixed-phrase match:
// either a confident stop classification or an explicit phrase ends the
// session.
func ShouldStop(classifierStop bool, confidence int, message string) bool {
	if classifierStop && confidence >= 70 {
		return true
	}
	return MatchesStopPhrase(message)
}
