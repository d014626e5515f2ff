package combatant

import (
	"context"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
)

//go:generate mockgen -destination=mock/mock_collaborators.go -package=mockcombatant -source=collaborators.go

// HandDeck is the owner's draw pile, hand and discard pile
type HandDeck interface {
	Draw(ctx context.Context, n int) ([]cards.Card, error)
	ShuffleDiscardIntoDeck(ctx context.Context) error
	AddCard(ctx context.Context, card cards.Card) (cards.Card, error)
	ReplaceCard(ctx context.Context, oldUID string, next cards.Card) error
	InHand(uid string) (cards.Card, bool)
	Discard(ctx context.Context, uid string) error
	Hand() []cards.Card
}

// Collection is the pool of card templates available to discover and gain
type Collection interface {
	Discover(ctx context.Context, filter cards.DiscoverFilter) ([]cards.Card, error)
	Card(ctx context.Context, id string) (cards.Card, error)
}

// Profile persists progress that outlives a combat
type Profile interface {
	ApplyPermanentSandIncrease(ctx context.Context, amount int) error
	// ApplyGoldDelta adds amount (possibly negative) and returns the new
	// balance, never below zero
	ApplyGoldDelta(ctx context.Context, amount int) (int, error)
}
