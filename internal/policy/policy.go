// Package policy holds the pure decision functions of the interview
// control layer: difficulty adaptation, action and route selection, topic
// ranking, loop breaking, and input normalization. Nothing here performs
// I/O; every function is deterministic over its arguments.
package policy

import (
	"strings"

	"intervo/internal/schema"
)

// Routes the workflow can take after robustness detection.
const (
	RouteFinal           = "final"
	RouteAnswerCandidate = "answer_candidate"
	RouteHallucination   = "hallucination"
	RouteRefocus         = "refocus"
	RouteNormal          = "normal"
)

// Action types for the interviewer's next response.
const (
	ActionRefocus         = "refocus"
	ActionAnswerCandidate = "answer_candidate"
	ActionSimplify        = "simplify"
	ActionClarify         = "clarify"
	ActionHint            = "hint"
	ActionAsk             = "ask"
)

// ApplyDifficulty clamps base+delta into [1,5]. The delta is already
// bounded to [-2,2] by the evaluator schema.
func ApplyDifficulty(base, delta int) int {
	d := base + delta
	if d < 1 {
		return 1
	}
	if d > 5 {
		return 5
	}
	return d
}

// ChooseRoute picks the workflow branch from the stop decision and the
// evaluator's robustness flags. Priority order is fixed; the first match
// wins.
func ChooseRoute(stopRequested bool, flags schema.RobustnessFlags) string {
	switch {
	case stopRequested:
		return RouteFinal
	case flags.RoleReversal:
		return RouteAnswerCandidate
	case flags.HallucinationClaim:
		return RouteHallucination
	case flags.OffTopic:
		return RouteRefocus
	default:
		return RouteNormal
	}
}

// DecideActionType picks the interviewer's next response category from the
// robustness flags, the answer-quality signal, and the previous action.
// A fixed priority chain: only the first matching condition applies.
func DecideActionType(flags schema.RobustnessFlags, quality schema.AnswerQuality, prevAction string) string {
	correctness := strings.ToLower(strings.TrimSpace(quality.Correctness))
	confidence := strings.ToLower(strings.TrimSpace(quality.Confidence))

	switch {
	case flags.OffTopic:
		return ActionRefocus
	case flags.RoleReversal:
		return ActionAnswerCandidate
	case correctness == "wrong" || correctness == "low" || correctness == "incorrect" || confidence == "low":
		return ActionSimplify
	case correctness == "partial" || correctness == "mixed":
		return ActionClarify
	case prevAction == ActionSimplify:
		return ActionHint
	default:
		return ActionAsk
	}
}

// ExtractCandidateQuestion pulls a best-effort question substring out of a
// role-reversing candidate message: the last '?'-terminated segment.
// Returns the whole trimmed message when no question mark is present.
func ExtractCandidateQuestion(message string) string {
	trimmed := strings.TrimSpace(message)
	idx := strings.LastIndex(trimmed, "?")
	if idx == -1 {
		return trimmed
	}
	head := trimmed[:idx]
	start := strings.LastIndexAny(head, ".!?")
	return strings.TrimSpace(trimmed[start+1 : idx+1])
}
