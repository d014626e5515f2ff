package resolver

import (
	"context"

	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

//go:generate mockgen -destination=mock/mock_chooser.go -package=mockresolver -source=chooser.go

// Chooser picks exactly one card out of a discover pool. offer is how many
// options would be shown; a UI chooser presents them, the random one rolls.
type Chooser interface {
	Choose(ctx context.Context, pool []cards.Card, offer int) (cards.Card, error)
}

type randomChooser struct {
	roller dice.Roller
}

// NewRandomChooser samples offer cards from the pool and picks one of them
func NewRandomChooser(roller dice.Roller) Chooser {
	if roller == nil {
		panic("roller is required")
	}
	return &randomChooser{roller: roller}
}

func (c *randomChooser) Choose(_ context.Context, pool []cards.Card, offer int) (cards.Card, error) {
	if len(pool) == 0 {
		return cards.Card{}, duaterr.NotFoundf("empty discover pool")
	}

	options := append([]cards.Card(nil), pool...)
	if err := dice.Shuffle(c.roller, len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	}); err != nil {
		return cards.Card{}, err
	}
	if offer > 0 && offer < len(options) {
		options = options[:offer]
	}

	idx, err := dice.Pick(c.roller, len(options))
	if err != nil {
		return cards.Card{}, err
	}
	return options[idx], nil
}
