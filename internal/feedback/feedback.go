// Package feedback renders the final structured feedback for display and
// mines session logs for notable behaviors.
package feedback

import (
	"encoding/json"
	"fmt"
	"strings"

	"intervo/internal/logstore"
	"intervo/internal/schema"
	"intervo/internal/skills"
	"intervo/internal/state"
)

// NotableBehaviors extracts the non-normal route markers from the
// internal notes of a session log: off-topic excursions, role reversals,
// and hallucination checks, one line per occurrence.
func NotableBehaviors(log *logstore.SessionLog) []string {
	var out []string
	for _, turn := range log.Turns {
		for _, line := range strings.Split(turn.InternalNotes, "\n") {
			idx := strings.Index(line, "route=")
			if idx == -1 {
				continue
			}
			route := line[idx+len("route="):]
			if cut := strings.IndexByte(route, ' '); cut != -1 {
				route = route[:cut]
			}
			if route == "" || route == "normal" {
				continue
			}
			out = append(out, fmt.Sprintf("turn %d: %s", turn.TurnID, route))
		}
	}
	return out
}

// summarizeNotes compresses a turn's internal notes to its first two
// non-empty lines, clipped at 200 characters.
func summarizeNotes(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
		if len(lines) == 2 {
			break
		}
	}
	summary := strings.Join(lines, " ")
	if len(summary) > 200 {
		summary = summary[:200]
	}
	return summary
}

// AssessmentInput builds the compact hiring-manager context from the
// session state and its persisted log: profile, final difficulty, skill
// matrix, per-turn question/answer summaries, and highlights.
func AssessmentInput(sess *state.Session, log *logstore.SessionLog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", sess.SessionID)
	if sess.Profile != nil {
		profileJSON, _ := json.Marshal(sess.Profile)
		fmt.Fprintf(&b, "Candidate profile: %s\n", profileJSON)
	}
	fmt.Fprintf(&b, "Final difficulty: %d\n", sess.Difficulty)

	b.WriteString("\nSkill matrix:\n")
	for topic, entry := range sess.Skills {
		fmt.Fprintf(&b, "- %s: %s", topic, entry.Status)
		if len(entry.Evidence) > 0 {
			fmt.Fprintf(&b, " (evidence: %s)", strings.Join(entry.Evidence, "; "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTurns:\n")
	for _, turn := range log.Turns {
		fmt.Fprintf(&b, "turn %d\n  question: %s\n  answer: %s\n",
			turn.TurnID, turn.AgentMessage, turn.CandidateMessage)
		if notes := summarizeNotes(turn.InternalNotes); notes != "" {
			fmt.Fprintf(&b, "  notes: %s\n", notes)
		}
	}

	b.WriteString("\nHighlights:\n")
	fmt.Fprintf(&b, "confirmed: %s\n", strings.Join(skills.Confirmed(sess.Skills), ", "))
	fmt.Fprintf(&b, "gaps: %s\n", strings.Join(skills.Gaps(sess.Skills), ", "))
	fmt.Fprintf(&b, "notable behaviors: %s\n", strings.Join(NotableBehaviors(log), "; "))
	return b.String()
}

// Render formats the final feedback as readable text blocks.
func Render(f *schema.FinalFeedback) string {
	var b strings.Builder

	b.WriteString("=== Decision ===\n")
	fmt.Fprintf(&b, "Grade: %s\n", f.Decision.Grade)
	fmt.Fprintf(&b, "Recommendation: %s\n", f.Decision.HiringRecommendation)
	fmt.Fprintf(&b, "Confidence: %d/100\n", f.Decision.ConfidenceScore)

	b.WriteString("\n=== Hard Skills ===\n")
	if len(f.HardSkills.ConfirmedSkills) > 0 {
		fmt.Fprintf(&b, "Confirmed: %s\n", strings.Join(f.HardSkills.ConfirmedSkills, ", "))
	} else {
		b.WriteString("Confirmed: none\n")
	}
	for _, gap := range f.HardSkills.KnowledgeGaps {
		fmt.Fprintf(&b, "Gap [%s]: %s\n", gap.Topic, gap.WhatWentWrong)
		if gap.CorrectAnswer != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", gap.CorrectAnswer)
		}
	}

	b.WriteString("\n=== Soft Skills ===\n")
	fmt.Fprintf(&b, "Clarity: %s, Honesty: %s, Engagement: %s\n",
		f.SoftSkills.Clarity, f.SoftSkills.Honesty, f.SoftSkills.Engagement)
	if f.SoftSkills.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", f.SoftSkills.Notes)
	}

	if len(f.Roadmap.NextSteps) > 0 {
		b.WriteString("\n=== Roadmap ===\n")
		for i, step := range f.Roadmap.NextSteps {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, step.Topic, step.Why)
			for _, r := range step.Resources {
				fmt.Fprintf(&b, "   - %s\n", r)
			}
		}
	}

	b.WriteString("\n=== Summary ===\n")
	b.WriteString(f.Summary)
	b.WriteString("\n")
	return b.String()
}
