package dice

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// randomRoller implements Roller with a PCG source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the runtime
func NewRandomRoller() Roller {
	return &randomRoller{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRoller creates a reproducible roller
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (r *randomRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("invalid die size d%d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(sides) + 1, nil
}
