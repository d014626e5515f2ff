package combat

import (
	"context"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/config"
	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	"github.com/KirkDiggler/duat-combat/internal/domain/deck"
	"github.com/KirkDiggler/duat-combat/internal/domain/hourglass"
	"github.com/KirkDiggler/duat-combat/internal/domain/status"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
)

// PlayerSetup is what a host knows about the player before a fight
type PlayerSetup struct {
	ID      string
	Catalog *cards.Catalog
	Profile combatant.Profile
	Roller  dice.Roller
	IDs     uuid.Generator

	// BonusMaxSand comes from permanent upgrades earned in earlier combats
	BonusMaxSand int
}

// NewPlayer builds the player combatant from the catalog's template with a
// shuffled starter deck
func NewPlayer(ctx context.Context, setup PlayerSetup, balance *config.Balance, now time.Time) (*combatant.Combatant, error) {
	if setup.Catalog == nil {
		return nil, duaterr.InvalidArgument("catalog is required")
	}
	if setup.Roller == nil {
		return nil, duaterr.InvalidArgument("roller is required")
	}
	if balance == nil {
		balance = config.DefaultBalance()
	}
	if setup.ID == "" {
		setup.ID = string(combatant.SidePlayer)
	}

	starter, err := setup.Catalog.StarterDeck(ctx)
	if err != nil {
		return nil, duaterr.Wrap(err, "failed to build starter deck")
	}

	d, err := deck.New(deck.Config{
		HandLimit: balance.Turn.HandLimit,
		Roller:    setup.Roller,
		IDs:       setup.IDs,
	}, starter)
	if err != nil {
		return nil, duaterr.Wrap(err, "failed to shuffle starter deck")
	}

	tmpl := setup.Catalog.Player()
	sand := sandConfig(balance, balance.Sand.PlayerStart)
	sand.Max += setup.BonusMaxSand
	if sand.Max > sand.Cap {
		sand.Max = sand.Cap
	}

	return combatant.New(combatant.Config{
		ID:         setup.ID,
		Name:       tmpl.Name,
		Side:       combatant.SidePlayer,
		Health:     tmpl.Health,
		Sand:       sand,
		Tuning:     tuning(balance),
		Momentum:   balance.Sand.Momentum,
		Deck:       d,
		Collection: setup.Catalog,
		Profile:    setup.Profile,
	}, now), nil
}

// NewEnemy builds an AI combatant from its template, resolving each intent
// to a card
func NewEnemy(ctx context.Context, catalog *cards.Catalog, enemyID string, balance *config.Balance, now time.Time) (*combatant.Combatant, error) {
	if catalog == nil {
		return nil, duaterr.InvalidArgument("catalog is required")
	}
	if balance == nil {
		balance = config.DefaultBalance()
	}

	tmpl, err := catalog.Enemy(enemyID)
	if err != nil {
		return nil, err
	}

	intents := make([]combatant.Intent, 0, len(tmpl.Intents))
	for _, in := range tmpl.Intents {
		card, err := catalog.Card(ctx, in.CardID)
		if err != nil {
			return nil, duaterr.Wrapf(err, "enemy %s intent", enemyID)
		}
		intents = append(intents, combatant.Intent{Card: card, Weight: in.Weight})
	}

	return combatant.New(combatant.Config{
		ID:      tmpl.ID,
		Name:    tmpl.Name,
		Side:    combatant.SideEnemy,
		Health:  tmpl.Health,
		Sand:    sandConfig(balance, balance.Sand.EnemyStart),
		Tuning:  tuning(balance),
		Intents: intents,
	}, now), nil
}

func sandConfig(b *config.Balance, start int) hourglass.Config {
	return hourglass.Config{
		Start:        start,
		Max:          b.Sand.Max,
		Cap:          b.Sand.Cap,
		RegenRate:    b.Sand.RegenRate,
		MaxTickDelta: b.Sand.MaxTickDelta,
	}
}

func tuning(b *config.Balance) status.Tuning {
	return status.Tuning{
		VulnerableMultiplier: b.Status.VulnerableMultiplier,
		WeakMultiplier:       b.Status.WeakMultiplier,
		StrengthPerStack:     b.Status.StrengthPerStack,
		DexterityPerStack:    b.Status.DexterityPerStack,
	}
}
