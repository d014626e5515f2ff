package simulation

import (
	"context"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	"github.com/KirkDiggler/duat-combat/internal/services/combat"
)

// playerStep plays the most expensive affordable card. With nothing
// affordable it waits for sand, and ends the turn once the hourglass is full
// or the hand is empty.
func playerStep(ctx context.Context, m *combat.Manager, out *Outcome) error {
	player := m.Player()

	if card, ok := pickCard(player, player.Deck.Hand()); ok {
		out.CardsPlayed++
		return m.PlayCard(ctx, combatant.SidePlayer, card)
	}

	if len(player.Deck.Hand()) == 0 || player.Sand.Current() >= player.Sand.Max() {
		return m.EndTurn(ctx)
	}
	return nil
}

// enemyStep lets the enemy act as soon as any intent is affordable, or
// once its sand is full
func enemyStep(ctx context.Context, m *combat.Manager) error {
	enemy := m.Enemy()
	for _, in := range enemy.Intents {
		if enemy.Sand.CanAfford(enemy.CostOf(in.Card)) {
			return m.TakeEnemyTurn(ctx)
		}
	}
	if enemy.Sand.Current() >= enemy.Sand.Max() {
		return m.TakeEnemyTurn(ctx)
	}
	return nil
}

func pickCard(c *combatant.Combatant, hand []cards.Card) (cards.Card, bool) {
	best, found := cards.Card{}, false
	for _, card := range hand {
		cost := c.CostOf(card)
		if !c.Sand.CanAfford(cost) {
			continue
		}
		if !found || cost > c.CostOf(best) {
			best, found = card, true
		}
	}
	return best, found
}
