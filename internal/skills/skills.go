// Package skills accumulates the per-topic assessment matrix across turns.
package skills

import "intervo/internal/schema"

// Topic statuses, weakest to strongest.
const (
	StatusGap       = "gap"
	StatusUncertain = "uncertain"
	StatusUnknown   = "unknown"
	StatusConfirmed = "confirmed"
)

// Entry is the assessment for one topic.
type Entry struct {
	Status   string   `json:"status"`
	Evidence []string `json:"evidence"`
}

// Matrix maps topic to its assessment entry.
type Matrix map[string]*Entry

// NewMatrix returns an empty matrix.
func NewMatrix() Matrix {
	return make(Matrix)
}

// StatusPriority ranks statuses for topic selection; lower is picked
// first. Topics never seen rank as unknown.
func StatusPriority(status string) int {
	switch status {
	case StatusGap:
		return 0
	case StatusUncertain:
		return 1
	case StatusConfirmed:
		return 3
	default:
		return 2
	}
}

// ApplyUpdates folds structured skill updates into the matrix. Evidence
// always accumulates; a topic confirmed once never regresses to a weaker
// status.
func ApplyUpdates(m Matrix, updates []schema.SkillUpdate) {
	for _, u := range updates {
		if u.Topic == "" {
			continue
		}
		entry, ok := m[u.Topic]
		if !ok {
			entry = &Entry{Status: StatusUnknown}
			m[u.Topic] = entry
		}
		if u.Evidence != "" {
			entry.Evidence = append(entry.Evidence, u.Evidence)
		}
		if u.Status == "" {
			continue
		}
		if entry.Status == StatusConfirmed && u.Status != StatusConfirmed {
			continue
		}
		entry.Status = u.Status
	}
}

// Confirmed returns the topics currently confirmed, in map order.
func Confirmed(m Matrix) []string {
	var out []string
	for topic, e := range m {
		if e.Status == StatusConfirmed {
			out = append(out, topic)
		}
	}
	return out
}

// Gaps returns the topics currently assessed as gaps.
func Gaps(m Matrix) []string {
	var out []string
	for topic, e := range m {
		if e.Status == StatusGap {
			out = append(out, topic)
		}
	}
	return out
}
