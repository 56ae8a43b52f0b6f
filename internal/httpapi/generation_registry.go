package httpapi

import (
	"sync"
	"sync/atomic"
)

// GenerationRegistry tracks in-flight synthesis requests and supports
// graceful draining. While draining, new generations are refused and the
// ones already running finish naturally; a provider call is never cancelled
// mid-flight.
//
// The mutex makes the draining check and wg.Add atomic in Add(), so no
// generation can slip in between StartDraining and Wait.
type GenerationRegistry struct {
	mu       sync.Mutex
	draining bool
	wg       sync.WaitGroup
	count    atomic.Int64
}

// NewGenerationRegistry creates a new GenerationRegistry.
func NewGenerationRegistry() *GenerationRegistry {
	return &GenerationRegistry{}
}

// Add registers a new in-flight generation. It returns false if the
// registry is draining, meaning the request must be refused.
func (gr *GenerationRegistry) Add() bool {
	gr.mu.Lock()
	defer gr.mu.Unlock()
	if gr.draining {
		return false
	}
	gr.wg.Add(1)
	gr.count.Add(1)
	return true
}

// Done marks a generation as finished. Must be called exactly once per
// successful Add.
func (gr *GenerationRegistry) Done() {
	gr.count.Add(-1)
	gr.wg.Done()
}

// StartDraining makes all future Add calls return false.
func (gr *GenerationRegistry) StartDraining() {
	gr.mu.Lock()
	defer gr.mu.Unlock()
	gr.draining = true
}

// IsDraining reports whether the registry is in draining mode.
func (gr *GenerationRegistry) IsDraining() bool {
	gr.mu.Lock()
	defer gr.mu.Unlock()
	return gr.draining
}

// ActiveCount returns the number of generations currently in flight.
func (gr *GenerationRegistry) ActiveCount() int64 {
	return gr.count.Load()
}

// Wait blocks until every accepted generation has called Done.
func (gr *GenerationRegistry) Wait() {
	gr.wg.Wait()
}
