package events

import (
	"log"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
)

// Publisher stamps and delivers events
type Publisher interface {
	Publish(event Event) Event
}

// Stream is the ordered outbound event feed of one combat. It stamps each
// event with the combat id, the next sequence number and its own clock,
// then hands it to the bus. While held, stamped events queue until Release.
type Stream struct {
	combatID string
	clock    clock.Clock
	bus      *Bus
	seq      uint64

	held    bool
	pending []Event
}

// NewStream creates a stream for combatID. A nil bus gets a fresh one.
func NewStream(combatID string, clk clock.Clock, bus *Bus) *Stream {
	if clk == nil {
		clk = clock.Real{}
	}
	if bus == nil {
		bus = NewBus()
	}
	return &Stream{
		combatID: combatID,
		clock:    clk,
		bus:      bus,
	}
}

// NewCombatID returns a fresh identifier for a stream
func NewCombatID(gen uuid.Generator) string {
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return gen.New()
}

// Publish stamps event and delivers it. Listener failures are logged; the
// combat never stalls on an observer.
func (s *Stream) Publish(event Event) Event {
	s.seq++
	event.Seq = s.seq
	event.CombatID = s.combatID
	event.At = s.clock.Now()

	if s.held {
		s.pending = append(s.pending, event)
		return event
	}
	s.emit(event)
	return event
}

// Hold queues published events instead of delivering them. Stamping still
// happens at publish time, so sequence numbers keep their order.
func (s *Stream) Hold() {
	s.held = true
}

// Release stops holding and hands back the queued events for Deliver
func (s *Stream) Release() []Event {
	pending := s.pending
	s.pending = nil
	s.held = false
	return pending
}

// Deliver emits already stamped events in order. It touches only the bus,
// so the owner may call it after dropping its own lock.
func (s *Stream) Deliver(events []Event) {
	for _, event := range events {
		s.emit(event)
	}
}

func (s *Stream) emit(event Event) {
	if err := s.bus.Emit(event); err != nil {
		log.Printf("[EVENTS] Failed to deliver %s #%d: %v", event.Type, event.Seq, err)
	}
}

func (s *Stream) Bus() *Bus {
	return s.bus
}

func (s *Stream) CombatID() string {
	return s.combatID
}

// Seq returns the last sequence number handed out
func (s *Stream) Seq() uint64 {
	return s.seq
}
