package testutils

import (
	"testing"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/stretchr/testify/require"
)

// AttackCard creates a card that deals damage to the opponent
func AttackCard(id string, cost, damage int) cards.Card {
	return cards.Card{
		ID:     id,
		Name:   id,
		Cost:   cost,
		Rarity: cards.RarityCommon,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: damage, Target: cards.TargetEnemy},
		},
	}
}

// GuardCard creates a card that blocks for its owner
func GuardCard(id string, cost, block int) cards.Card {
	return cards.Card{
		ID:     id,
		Name:   id,
		Cost:   cost,
		Rarity: cards.RarityCommon,
		Effects: []cards.Effect{
			{Kind: cards.EffectBlock, Magnitude: block, Target: cards.TargetSelf},
		},
	}
}

// CreateTestCatalog returns a small catalog: a 40 hp player with strikes and
// guards against a 20 hp training dummy
func CreateTestCatalog(t *testing.T) *cards.Catalog {
	t.Helper()

	catalog, err := cards.NewCatalog(
		[]cards.Card{
			AttackCard("strike", 1, 6),
			GuardCard("guard", 1, 5),
			AttackCard("dummy_swing", 1, 3),
		},
		[]cards.EnemyTemplate{
			{
				ID:      "training_dummy",
				Name:    "Training Dummy",
				Health:  20,
				Intents: []cards.Intent{{CardID: "dummy_swing", Weight: 1}},
			},
		},
		cards.PlayerTemplate{
			Name:   "Tester",
			Health: 40,
			Deck:   []string{"strike", "strike", "strike", "strike", "guard", "guard"},
		},
	)
	require.NoError(t, err)
	return catalog
}
