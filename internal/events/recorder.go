package events

import (
	"log"
	"sync"
)

// Recorder keeps every event it sees, in delivery order
type Recorder struct {
	id       string
	priority int
	mu       sync.Mutex
	events   []Event
}

func NewRecorder(id string) *Recorder {
	return &Recorder{id: id, priority: 1000}
}

func (r *Recorder) HandleEvent(event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Priority() int { return r.priority }
func (r *Recorder) ID() string    { return r.id }

// Events returns a copy of everything recorded
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType filters recorded events
func (r *Recorder) OfType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogListener writes each event summary to the standard logger
type LogListener struct{}

func (LogListener) HandleEvent(event Event) error {
	log.Printf("[COMBAT %s] %s", event.CombatID, event.Summary())
	return nil
}

func (LogListener) Priority() int { return 2000 }
func (LogListener) ID() string    { return "log" }
