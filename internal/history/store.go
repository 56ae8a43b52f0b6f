// Package history keeps the session's saved generation results in memory.
// Nothing is persisted: the store starts empty and vanishes with the process.
package history

import (
	"sync"

	"github.com/muryalabs/murya/internal/generate"
)

// Store is an unbounded, newest-first collection of saved results. It is
// safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	results []generate.Result
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Save records a result. Saving is append-only; the same result can be
// saved more than once and nothing is ever deduplicated or evicted.
func (s *Store) Save(result generate.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// All returns a snapshot of every saved result, newest first.
func (s *Store) All() []generate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]generate.Result, len(s.results))
	for i, r := range s.results {
		out[len(s.results)-1-i] = r
	}
	return out
}

// Get returns the saved result with the given ID. When the same ID was
// saved multiple times the entries are identical, so any match serves.
func (s *Store) Get(id string) (generate.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.results {
		if r.ID == id {
			return r, true
		}
	}
	return generate.Result{}, false
}

// Len reports how many results have been saved.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
