package resolver

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

// DivinitySandMastery lowers every card cost by one for the rest of combat
const DivinitySandMastery = "sand_mastery"

// DivinityFunc runs a channeled divinity. It may mutate the caster directly
// and may return further effects, which resolve in order right away.
type DivinityFunc func(ctx context.Context, caster, opponent *combatant.Combatant) ([]cards.Effect, error)

// DivinityRegistry maps divinity names to behavior. Each combat manager owns
// its own registry; nothing is shared between combats.
type DivinityRegistry struct {
	mu      sync.RWMutex
	entries map[string]DivinityFunc
}

func NewDivinityRegistry() *DivinityRegistry {
	return &DivinityRegistry{entries: make(map[string]DivinityFunc)}
}

// Register adds or replaces a divinity
func (r *DivinityRegistry) Register(name string, fn DivinityFunc) error {
	if name == "" {
		return duaterr.InvalidArgument("divinity name is required")
	}
	if fn == nil {
		return duaterr.InvalidArgumentf("divinity %s has no callback", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		log.Printf("[RESOLVER] Replacing divinity %s", name)
	}
	r.entries[name] = fn
	return nil
}

// Lookup returns the callback for name
func (r *DivinityRegistry) Lookup(name string) (DivinityFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.entries[name]
	return fn, ok
}

func (r *DivinityRegistry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns registered divinities, sorted
func (r *DivinityRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterDefaults installs the stock divinities
func RegisterDefaults(r *DivinityRegistry) {
	_ = r.Register(DivinitySandMastery, func(_ context.Context, caster, _ *combatant.Combatant) ([]cards.Effect, error) {
		caster.AddCostReduction(1)
		return nil, nil
	})
}
