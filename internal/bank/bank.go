// Package bank holds the question bank: a fixed pool of interview
// questions addressed by topic, difficulty, and pedagogical type.
package bank

import (
	"fmt"
	"sort"
)

// Question types. "base" is a fresh question; the others are follow-up
// styles the policy layer requests by name.
const (
	TypeBase     = "base"
	TypeSimplify = "simplify"
	TypeClarify  = "clarify"
	TypeHint     = "hint"
)

// Question is one entry in the bank.
type Question struct {
	ID         string `yaml:"id" json:"id"`
	Topic      string `yaml:"topic" json:"topic"`
	Difficulty int    `yaml:"difficulty" json:"difficulty"`
	Type       string `yaml:"type" json:"type"`
	Prompt     string `yaml:"prompt" json:"prompt"`
}

// Bank is an immutable snapshot of the question pool.
type Bank struct {
	questions []Question
}

// Source supplies the current bank snapshot. A bare *Bank is a fixed
// source; *Watcher serves the latest successful reload. Callers must
// resolve the snapshot per use rather than caching it.
type Source interface {
	Bank() *Bank
}

// Bank returns the bank itself, making a fixed pool usable as a Source.
func (b *Bank) Bank() *Bank { return b }

// New builds a bank from a question list, rejecting malformed entries.
func New(questions []Question) (*Bank, error) {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" || q.Topic == "" || q.Prompt == "" {
			return nil, fmt.Errorf("question %q: id, topic and prompt are required", q.ID)
		}
		if q.Difficulty < 1 || q.Difficulty > 5 {
			return nil, fmt.Errorf("question %q: difficulty %d out of range 1..5", q.ID, q.Difficulty)
		}
		switch q.Type {
		case TypeBase, TypeSimplify, TypeClarify, TypeHint:
		default:
			return nil, fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return &Bank{questions: questions}, nil
}

// Default returns the built-in question pool.
func Default() *Bank {
	b, err := New(defaultQuestions)
	if err != nil {
		panic(err) // built-in data, validated by tests
	}
	return b
}

var defaultQuestions = []Question{
	{ID: "py_types_1", Topic: "python_types", Difficulty: 1, Type: TypeBase,
		Prompt: "What is the difference between a list and a tuple in Python?"},
	{ID: "py_types_1_simplify", Topic: "python_types", Difficulty: 1, Type: TypeSimplify,
		Prompt: "Can you change the contents of a tuple after creating it? Why or why not?"},
	{ID: "py_types_1_hint", Topic: "python_types", Difficulty: 1, Type: TypeHint,
		Prompt: "Think about mutability. Which of the two can be used as a dictionary key, and what does that tell you?"},
	{ID: "py_iter_2", Topic: "python_iterators", Difficulty: 2, Type: TypeBase,
		Prompt: "What is the difference between an iterator and a generator in Python?"},
	{ID: "py_iter_2_clarify", Topic: "python_iterators", Difficulty: 2, Type: TypeClarify,
		Prompt: "You mentioned generators. Could you clarify what the yield keyword actually does when the function is called?"},
	{ID: "sql_join_1", Topic: "sql_joins", Difficulty: 1, Type: TypeBase,
		Prompt: "What is the difference between an INNER JOIN and a LEFT JOIN?"},
	{ID: "sql_join_1_simplify", Topic: "sql_joins", Difficulty: 1, Type: TypeSimplify,
		Prompt: "If you join two tables and a row in the left table has no match on the right, what happens with a LEFT JOIN?"},
	{ID: "py_oop_3", Topic: "python_oop", Difficulty: 3, Type: TypeBase,
		Prompt: "How does method resolution order work in Python with multiple inheritance?"},
	{ID: "sql_index_3", Topic: "sql_indexes", Difficulty: 3, Type: TypeBase,
		Prompt: "When can adding an index make a query slower instead of faster?"},
	{ID: "git_rebase_1", Topic: "git_basics", Difficulty: 1, Type: TypeBase,
		Prompt: "What is the difference between git merge and git rebase?"},
	{ID: "git_rebase_1_clarify", Topic: "git_basics", Difficulty: 1, Type: TypeClarify,
		Prompt: "You touched on rebase. Could you clarify what actually happens to the commits being rebased?"},
}

// Questions returns a copy of the pool.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Topics returns the distinct topics in the bank, sorted.
func (b *Bank) Topics() []string {
	set := make(map[string]bool)
	for _, q := range b.questions {
		set[q.Topic] = true
	}
	topics := make([]string, 0, len(set))
	for t := range set {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// ByID looks up one question.
func (b *Bank) ByID(id string) (Question, bool) {
	for _, q := range b.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Candidates returns unasked questions matching the filter. Zero-value
// filter fields match everything.
func (b *Bank) Candidates(topic string, difficulty int, qtype string, asked map[string]bool) []Question {
	var out []Question
	for _, q := range b.questions {
		if asked[q.ID] {
			continue
		}
		if topic != "" && q.Topic != topic {
			continue
		}
		if difficulty != 0 && q.Difficulty != difficulty {
			continue
		}
		if qtype != "" && q.Type != qtype {
			continue
		}
		out = append(out, q)
	}
	return out
}

// PickNext selects the next question for a topic, difficulty, and type,
// relaxing constraints progressively when the exact request cannot be
// served: first the type is dropped, then the topic, then every
// difficulty from 1 to 5 is swept. Returns false only when the bank has
// no unasked question at all.
func (b *Bank) PickNext(topic string, difficulty int, qtype string, asked map[string]bool) (Question, bool) {
	if qs := b.Candidates(topic, difficulty, qtype, asked); len(qs) > 0 {
		return qs[0], true
	}
	if qs := b.Candidates(topic, difficulty, "", asked); len(qs) > 0 {
		return qs[0], true
	}
	if qs := b.Candidates("", difficulty, "", asked); len(qs) > 0 {
		return qs[0], true
	}
	for d := 1; d <= 5; d++ {
		if qs := b.Candidates("", d, "", asked); len(qs) > 0 {
			return qs[0], true
		}
	}
	return Question{}, false
}

// FirstUnasked returns the first unasked question regardless of filters.
// Used as the interviewer fallback when generation fails.
func (b *Bank) FirstUnasked(asked map[string]bool) (Question, bool) {
	for _, q := range b.questions {
		if !asked[q.ID] {
			return q, true
		}
	}
	return Question{}, false
}
