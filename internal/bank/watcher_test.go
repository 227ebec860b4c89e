package bank

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const bankV1 = `questions:
  - id: q1
    topic: topic_a
    difficulty: 1
    type: base
    prompt: "First question?"
`

const bankV2 = bankV1 + `  - id: q2
    topic: topic_b
    difficulty: 2
    type: base
    prompt: "Second question?"
`

func writeBankFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitForTopic(t *testing.T, src Source, topic string) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, got := range src.Bank().Topics() {
			if got == topic {
				return true
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

func TestWatcherInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	writeBankFile(t, path, bankV1)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, ok := w.Bank().ByID("q1"); !ok {
		t.Error("initial bank missing q1")
	}
}

func TestWatcherReloadReachesHeldSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	writeBankFile(t, path, bankV1)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	w.debounceTime = 20 * time.Millisecond
	w.Start()
	defer w.Stop()

	// The workflow holds the watcher through the Source interface and
	// resolves snapshots per call, so edits land mid-session.
	var src Source = w
	writeBankFile(t, path, bankV2)

	if !waitForTopic(t, src, "topic_b") {
		t.Fatalf("held source never saw reloaded bank, topics = %v", src.Bank().Topics())
	}
	if _, ok := src.Bank().ByID("q2"); !ok {
		t.Error("reloaded bank missing q2")
	}
}

func TestWatcherKeepsLastGoodBankOnBadEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	writeBankFile(t, path, bankV2)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	w.debounceTime = 20 * time.Millisecond
	w.Start()
	defer w.Stop()

	writeBankFile(t, path, "questions: []\n")
	time.Sleep(200 * time.Millisecond)

	if _, ok := w.Bank().ByID("q2"); !ok {
		t.Error("bad edit must not evict the last good bank")
	}
}

func TestFixedBankIsASource(t *testing.T) {
	b := Default()
	var src Source = b
	if src.Bank() != b {
		t.Error("fixed bank source must return the bank itself")
	}
}
