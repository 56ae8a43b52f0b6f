// Package session holds the per-session comparison state: the latest
// successful, not-yet-saved generation for each provider.
package session

import (
	"sync"

	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/tts"
)

// State tracks one current result slot per provider. A new success for a
// provider replaces that provider's slot and never touches the other one;
// failed generations never reach the state at all.
type State struct {
	mu      sync.Mutex
	current map[tts.Provider]generate.Result
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{current: make(map[tts.Provider]generate.Result)}
}

// SetCurrent stores result in the slot of its provider, replacing whatever
// was there. Last write wins.
func (s *State) SetCurrent(result generate.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[result.Provider] = result
}

// Current returns the pending result for provider, if any.
func (s *State) Current(provider tts.Provider) (generate.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.current[provider]
	return r, ok
}

// Snapshot returns a copy of all occupied slots keyed by provider.
func (s *State) Snapshot() map[tts.Provider]generate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[tts.Provider]generate.Result, len(s.current))
	for p, r := range s.current {
		out[p] = r
	}
	return out
}

// Clear empties every slot. Saved history is not affected.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = make(map[tts.Provider]generate.Result)
}
