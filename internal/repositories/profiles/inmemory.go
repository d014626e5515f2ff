package profiles

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

type inMemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	clock    clock.Clock
}

// NewInMemoryRepository creates a process-local repository for tests and
// offline runs
func NewInMemoryRepository(clk clock.Clock) Repository {
	if clk == nil {
		clk = clock.Real{}
	}
	return &inMemoryRepo{
		profiles: make(map[string]*Profile),
		clock:    clk,
	}
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, duaterr.InvalidArgument("profile id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, duaterr.NotFoundf("profile %s not found", id)
	}

	copied := *p
	copied.OwnedCards = append([]string(nil), p.OwnedCards...)
	return &copied, nil
}

func (r *inMemoryRepo) AddGold(_ context.Context, id string, delta int) (int, error) {
	if id == "" {
		return 0, duaterr.InvalidArgument("profile id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.touch(id)
	p.Gold = max(p.Gold+delta, 0)
	return p.Gold, nil
}

func (r *inMemoryRepo) AddBonusMaxSand(_ context.Context, id string, amount int) (int, error) {
	if id == "" {
		return 0, duaterr.InvalidArgument("profile id is required")
	}
	if amount < 0 {
		return 0, duaterr.InvalidArgumentf("max sand increase must not be negative, got %d", amount)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.touch(id)
	p.BonusMaxSand += amount
	return p.BonusMaxSand, nil
}

func (r *inMemoryRepo) AddOwnedCards(_ context.Context, id string, cardIDs ...string) error {
	if id == "" {
		return duaterr.InvalidArgument("profile id is required")
	}
	if len(cardIDs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.touch(id)
	seen := make(map[string]bool, len(p.OwnedCards))
	for _, c := range p.OwnedCards {
		seen[c] = true
	}
	for _, c := range cardIDs {
		if !seen[c] {
			seen[c] = true
			p.OwnedCards = append(p.OwnedCards, c)
		}
	}
	sort.Strings(p.OwnedCards)
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

// touch returns the profile for id, creating it, and stamps UpdatedAt.
// Callers hold the write lock.
func (r *inMemoryRepo) touch(id string) *Profile {
	p, ok := r.profiles[id]
	if !ok {
		p = &Profile{ID: id}
		r.profiles[id] = p
	}
	p.UpdatedAt = r.clock.Now().UTC()
	return p
}
