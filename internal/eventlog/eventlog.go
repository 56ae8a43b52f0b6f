package eventlog

import (
	"sync"
	"time"
)

// EventType represents the type of session event
type EventType string

const (
	EventGenerationStarted   EventType = "generation_started"
	EventGenerationCompleted EventType = "generation_completed"
	EventGenerationFailed    EventType = "generation_failed"
	EventResultSaved         EventType = "result_saved"
	EventSessionCleared      EventType = "session_cleared"
)

// Event is one entry in the session's event feed.
type Event struct {
	Type     EventType      `json:"type"`
	Provider string         `json:"provider,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	At       time.Time      `json:"at"`
}

// maxEvents bounds the in-memory backlog; older entries are dropped.
const maxEvents = 256

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls behind loses events rather than blocking the generation path.
const subscriberBuffer = 16

// Logger keeps a bounded in-memory log of session events and fans new
// events out to live subscribers. Events exist for the lifetime of the
// process only. Log and Recent tolerate a nil receiver.
type Logger struct {
	mu     sync.Mutex
	events []Event
	subs   map[int]chan Event
	nextID int
}

// New creates a new event logger.
func New() *Logger {
	return &Logger{subs: make(map[int]chan Event)}
}

// Log records an event and delivers it to all current subscribers.
func (l *Logger) Log(eventType EventType, provider string, data map[string]any) {
	if l == nil {
		return
	}

	e := Event{
		Type:     eventType,
		Provider: provider,
		Data:     data,
		At:       time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
	if len(l.events) > maxEvents {
		l.events = l.events[len(l.events)-maxEvents:]
	}

	for _, ch := range l.subs {
		select {
		case ch <- e:
		default: // drop for slow subscribers, never block
		}
	}
}

// Recent returns up to n of the latest events, oldest first.
func (l *Logger) Recent(n int) []Event {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.events) {
		n = len(l.events)
	}
	out := make([]Event, n)
	copy(out, l.events[len(l.events)-n:])
	return out
}

// Subscribe registers a listener for future events. The returned cancel
// function releases the subscription and closes the channel.
func (l *Logger) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = ch
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
