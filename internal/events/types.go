package events

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EventType names a combat event
type EventType string

const (
	// EventTypeAll subscribes a listener to every event
	EventTypeAll EventType = "*"

	EventTypeCombatStarted      EventType = "combat_started"
	EventTypeCombatEnded        EventType = "combat_ended"
	EventTypeTurnChanged        EventType = "turn_changed"
	EventTypeCardPlayed         EventType = "card_played"
	EventTypeCardsDrawn         EventType = "cards_drawn"
	EventTypeCardGained         EventType = "card_gained"
	EventTypeCardUpgraded       EventType = "card_upgraded"
	EventTypeDamageDealt        EventType = "damage_dealt"
	EventTypeBlockGained        EventType = "block_gained"
	EventTypeHealed             EventType = "healed"
	EventTypeStatusApplied      EventType = "status_applied"
	EventTypeStatusExpired      EventType = "status_expired"
	EventTypeSandChanged        EventType = "sand_changed"
	EventTypeMaxSandIncreased   EventType = "max_sand_increased"
	EventTypeMaxHealthIncreased EventType = "max_health_increased"
	EventTypeBlessingSet        EventType = "blessing_set"
	EventTypeBlessingConsumed   EventType = "blessing_consumed"
	EventTypeGoldChanged        EventType = "gold_changed"
	EventTypeDivinityChanneled  EventType = "divinity_channeled"
)

// Display returns the type in title case, e.g. "Damage Dealt"
func (t EventType) Display() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

// Event is one outbound record. Seq is strictly increasing within a combat.
type Event struct {
	Seq      uint64    `json:"seq"`
	At       time.Time `json:"at"`
	Type     EventType `json:"type"`
	CombatID string    `json:"combat_id"`
	Actor    string    `json:"actor,omitempty"`
	Target   string    `json:"target,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// Summary renders the event as a single human-readable line
func (e Event) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", e.Seq, e.Type.Display())
	if e.Actor != "" {
		fmt.Fprintf(&b, " by %s", e.Actor)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " on %s", e.Target)
	}
	if e.Amount != 0 {
		fmt.Fprintf(&b, " (%d)", e.Amount)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", cases.Title(language.English).String(strings.ReplaceAll(e.Detail, "_", " ")))
	}
	return b.String()
}
