package skills

import (
	"testing"

	"intervo/internal/schema"
)

func TestApplyUpdatesCreatesEntries(t *testing.T) {
	m := NewMatrix()
	ApplyUpdates(m, []schema.SkillUpdate{
		{Topic: "sql_joins", Status: StatusGap, Evidence: "confused LEFT with INNER"},
	})
	e, ok := m["sql_joins"]
	if !ok {
		t.Fatal("entry not created")
	}
	if e.Status != StatusGap {
		t.Errorf("status = %q", e.Status)
	}
	if len(e.Evidence) != 1 {
		t.Errorf("evidence = %v", e.Evidence)
	}
}

func TestApplyUpdatesMonotonicConfirmation(t *testing.T) {
	m := NewMatrix()
	ApplyUpdates(m, []schema.SkillUpdate{
		{Topic: "python_types", Status: StatusConfirmed, Evidence: "solid tuple answer"},
	})
	ApplyUpdates(m, []schema.SkillUpdate{
		{Topic: "python_types", Status: StatusGap, Evidence: "stumbled on a harder follow-up"},
		{Topic: "python_types", Status: StatusUncertain, Evidence: "hedged"},
	})
	e := m["python_types"]
	if e.Status != StatusConfirmed {
		t.Errorf("status regressed to %q", e.Status)
	}
	if len(e.Evidence) != 3 {
		t.Errorf("evidence should still accumulate, got %d entries", len(e.Evidence))
	}
	// Re-confirmation stays allowed.
	ApplyUpdates(m, []schema.SkillUpdate{{Topic: "python_types", Status: StatusConfirmed}})
	if e.Status != StatusConfirmed {
		t.Errorf("status = %q", e.Status)
	}
}

func TestApplyUpdatesIgnoresEmpty(t *testing.T) {
	m := NewMatrix()
	ApplyUpdates(m, []schema.SkillUpdate{
		{Topic: "", Status: StatusGap},
		{Topic: "git_basics", Evidence: "mentioned rebase"},
	})
	if len(m) != 1 {
		t.Fatalf("matrix = %v", m)
	}
	e := m["git_basics"]
	if e.Status != StatusUnknown {
		t.Errorf("empty status should leave the default, got %q", e.Status)
	}
}

func TestStatusPriority(t *testing.T) {
	order := []string{StatusGap, StatusUncertain, StatusUnknown, StatusConfirmed}
	for i := 1; i < len(order); i++ {
		if StatusPriority(order[i-1]) >= StatusPriority(order[i]) {
			t.Errorf("priority(%s) should be below priority(%s)", order[i-1], order[i])
		}
	}
	if StatusPriority("bogus") != StatusPriority(StatusUnknown) {
		t.Error("unrecognized status should rank as unknown")
	}
}

func TestConfirmedAndGaps(t *testing.T) {
	m := NewMatrix()
	ApplyUpdates(m, []schema.SkillUpdate{
		{Topic: "a", Status: StatusConfirmed},
		{Topic: "b", Status: StatusGap},
		{Topic: "c", Status: StatusUncertain},
	})
	if got := Confirmed(m); len(got) != 1 || got[0] != "a" {
		t.Errorf("Confirmed = %v", got)
	}
	if got := Gaps(m); len(got) != 1 || got[0] != "b" {
		t.Errorf("Gaps = %v", got)
	}
}
