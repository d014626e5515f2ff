// Package profiles stores the progress that outlives a single combat: gold,
// permanent max sand and the cards a player has collected.
package profiles

//go:generate mockgen -destination=mock/mock_repository.go -package=mockprofiles -source=repository.go

import (
	"context"
	"time"
)

// Profile is one player's persistent progress
type Profile struct {
	ID           string    `json:"id"`
	Gold         int       `json:"gold"`
	BonusMaxSand int       `json:"bonus_max_sand"`
	OwnedCards   []string  `json:"owned_cards"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines profile storage. Counters on a profile that does not
// exist yet start from zero.
type Repository interface {
	// Get returns NotFound when nothing was ever recorded for id
	Get(ctx context.Context, id string) (*Profile, error)

	// AddGold applies delta and returns the new balance, floored at zero
	AddGold(ctx context.Context, id string, delta int) (int, error)

	// AddBonusMaxSand records a permanent max sand increase and returns the
	// new total
	AddBonusMaxSand(ctx context.Context, id string, amount int) (int, error)

	// AddOwnedCards adds card ids to the collection
	AddOwnedCards(ctx context.Context, id string, cardIDs ...string) error

	Delete(ctx context.Context, id string) error
}
