// Package status tracks the stacking, duration-limited statuses on a combatant.
package status

import (
	"sort"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

// Registry holds one combatant's statuses. Multipliers are computed on
// demand from the live entries and never cached.
type Registry struct {
	tuning  Tuning
	entries map[Kind]*Entry
}

// NewRegistry creates an empty registry
func NewRegistry(tuning Tuning) *Registry {
	return &Registry{
		tuning:  tuning,
		entries: make(map[Kind]*Entry),
	}
}

// Apply adds or merges a status. A duration of zero or less, or any duration
// at or above Permanent, is stored as Permanent.
func (r *Registry) Apply(kind Kind, stacks, duration int) (Entry, error) {
	rule, ok := RuleFor(kind)
	if !ok {
		return Entry{}, duaterr.InvalidArgumentf("unknown status kind %q", kind)
	}
	if stacks <= 0 {
		return Entry{}, duaterr.InvalidArgumentf("status %s needs positive stacks, got %d", kind, stacks)
	}
	if duration <= 0 || duration >= Permanent {
		duration = Permanent
	}

	existing, found := r.entries[kind]
	if !found {
		e := &Entry{Kind: kind, Stacks: stacks, Duration: duration}
		r.entries[kind] = e
		return *e, nil
	}

	switch rule {
	case StackingRefresh:
		existing.Stacks = max(existing.Stacks, stacks)
	case StackingAdditive:
		existing.Stacks += stacks
	}
	existing.Duration = max(existing.Duration, duration)

	return *existing, nil
}

// Get returns the entry for kind
func (r *Registry) Get(kind Kind) (Entry, bool) {
	e, ok := r.entries[kind]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (r *Registry) Has(kind Kind) bool {
	_, ok := r.entries[kind]
	return ok
}

func (r *Registry) Stacks(kind Kind) int {
	if e, ok := r.entries[kind]; ok {
		return e.Stacks
	}
	return 0
}

// AdvanceTurn is called once per turn boundary. Finite durations drop by
// one and entries reaching zero are removed and returned.
func (r *Registry) AdvanceTurn() []Entry {
	var expired []Entry
	for kind, e := range r.entries {
		if e.IsPermanent() {
			continue
		}
		e.Duration--
		if e.Duration <= 0 {
			expired = append(expired, *e)
			delete(r.entries, kind)
		}
	}
	sortEntries(expired)
	return expired
}

// Remove drops kind if present
func (r *Registry) Remove(kind Kind) bool {
	if _, ok := r.entries[kind]; !ok {
		return false
	}
	delete(r.entries, kind)
	return true
}

// Clear removes everything. Called when combat ends.
func (r *Registry) Clear() {
	r.entries = make(map[Kind]*Entry)
}

// Entries returns a sorted copy of all active statuses
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	sortEntries(out)
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// VulnerableMultiplier scales damage this combatant takes
func (r *Registry) VulnerableMultiplier() float64 {
	if r.Has(KindVulnerable) {
		return r.tuning.VulnerableMultiplier
	}
	return 1
}

// WeakMultiplier scales damage this combatant deals
func (r *Registry) WeakMultiplier() float64 {
	if r.Has(KindWeak) {
		return r.tuning.WeakMultiplier
	}
	return 1
}

// StrengthFactor is added to 1 when scaling outgoing damage
func (r *Registry) StrengthFactor() float64 {
	return float64(r.Stacks(KindStrength)) * r.tuning.StrengthPerStack
}

// DexterityFactor is added to 1 when scaling block gained
func (r *Registry) DexterityFactor() float64 {
	return float64(r.Stacks(KindDexterity)) * r.tuning.DexterityPerStack
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Kind < entries[j].Kind
	})
}
