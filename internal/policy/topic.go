package policy

import (
	"sort"
	"strings"

	"intervo/internal/skills"
)

// NormalizeTopic canonicalizes a model-suggested topic name against the
// master topic list: lowercase, spaces and dashes collapsed to
// underscores. Returns "" when the result is not a known topic.
func NormalizeTopic(raw string, master []string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, " ", "_")
	t = strings.ReplaceAll(t, "-", "_")
	for strings.Contains(t, "__") {
		t = strings.ReplaceAll(t, "__", "_")
	}
	for _, m := range master {
		if t == m {
			return m
		}
	}
	return ""
}

// usedRecently reports whether topic appears in the last n entries of the
// recent-topic history.
func usedRecently(topic string, recent []string, n int) bool {
	start := len(recent) - n
	if start < 0 {
		start = 0
	}
	for _, t := range recent[start:] {
		if t == topic {
			return true
		}
	}
	return false
}

// forcedSwitch reports whether the last two served topics are identical,
// which forces a move to the best-ranked alternative.
func forcedSwitch(recent []string) bool {
	n := len(recent)
	return n >= 2 && recent[n-1] == recent[n-2] && recent[n-1] != ""
}

// rankTopics orders the master list by skill-matrix status priority,
// breaking ties by master-list position. Excluded topics are dropped.
func rankTopics(matrix skills.Matrix, master []string, exclude map[string]bool) []string {
	type ranked struct {
		topic    string
		priority int
		pos      int
	}
	var rs []ranked
	for i, topic := range master {
		if exclude[topic] {
			continue
		}
		status := ""
		if e, ok := matrix[topic]; ok {
			status = e.Status
		}
		rs = append(rs, ranked{topic: topic, priority: skills.StatusPriority(status), pos: i})
	}
	sort.SliceStable(rs, func(a, b int) bool {
		if rs[a].priority != rs[b].priority {
			return rs[a].priority < rs[b].priority
		}
		return rs[a].pos < rs[b].pos
	})
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.topic
	}
	return out
}

// SelectNextTopic picks the next interview topic. A normalized soft
// suggestion wins unless it was served in either of the last two turns.
// Otherwise topics rank by matrix status (gaps first), master-list order
// breaking ties; a forced switch excludes the repeated current topic, as
// does loop breaking via the exclude set.
func SelectNextTopic(matrix skills.Matrix, master []string, recent []string, softTopic string, exclude map[string]bool) string {
	if soft := NormalizeTopic(softTopic, master); soft != "" && !exclude[soft] && !usedRecently(soft, recent, 2) {
		return soft
	}

	effectiveExclude := exclude
	if forcedSwitch(recent) && len(master) > 1 {
		effectiveExclude = make(map[string]bool, len(exclude)+1)
		for t := range exclude {
			effectiveExclude[t] = true
		}
		effectiveExclude[recent[len(recent)-1]] = true
	}

	ranked := rankTopics(matrix, master, effectiveExclude)
	if len(ranked) == 0 {
		// Everything excluded; fall back to the unrestricted ranking.
		ranked = rankTopics(matrix, master, nil)
		if len(ranked) == 0 {
			return ""
		}
	}
	return ranked[0]
}
