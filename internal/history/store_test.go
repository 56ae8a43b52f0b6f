package history

import (
	"sync"
	"testing"

	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/tts"
)

func result(id, text string) generate.Result {
	return generate.Result{
		ID:          id,
		Text:        text,
		Provider:    tts.ProviderSpitch,
		AudioBase64: "eA==",
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()

	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if got := s.All(); len(got) != 0 {
		t.Errorf("All() returned %d results, want 0", len(got))
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get() on an empty store should report not found")
	}
}

func TestSaveOrdersNewestFirst(t *testing.T) {
	s := New()
	s.Save(result("r1", "first"))
	s.Save(result("r2", "second"))
	s.Save(result("r3", "third"))

	got := s.All()
	if len(got) != 3 {
		t.Fatalf("All() returned %d results, want 3", len(got))
	}
	wantOrder := []string{"r3", "r2", "r1"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("All()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestSaveKeepsDuplicates(t *testing.T) {
	s := New()
	s.Save(result("r1", "same"))
	s.Save(result("r1", "same"))

	if got := s.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (no dedup)", got)
	}
}

func TestGet(t *testing.T) {
	s := New()
	s.Save(result("r1", "hello"))

	got, ok := s.Get("r1")
	if !ok {
		t.Fatal("Get(r1) should find the saved result")
	}
	if got.Text != "hello" {
		t.Errorf("Get(r1).Text = %q, want %q", got.Text, "hello")
	}

	if _, ok := s.Get("r2"); ok {
		t.Error("Get(r2) should report not found")
	}
}

func TestAllReturnsASnapshot(t *testing.T) {
	s := New()
	s.Save(result("r1", "original"))

	snapshot := s.All()
	snapshot[0].Text = "mutated"

	got, _ := s.Get("r1")
	if got.Text != "original" {
		t.Errorf("store entry Text = %q, mutation of a snapshot must not leak in", got.Text)
	}
}

func TestConcurrentSaves(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Save(result("r", "converging"))
		}()
	}
	wg.Wait()

	if got := s.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}
}
