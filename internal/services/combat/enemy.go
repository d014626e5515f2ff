package combat

import (
	"context"
	"log"

	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

// NextIntent picks the enemy's next action among the intents it can afford.
// Below the low-health threshold blocking intents weigh more, otherwise
// damaging ones do. ok is false when nothing is affordable.
func (m *Manager) NextIntent() (card cards.Card, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextIntent()
}

func (m *Manager) nextIntent() (cards.Card, bool, error) {
	enemy := m.enemy
	tuning := m.balance.Enemy
	hurt := enemy.HealthFraction() < tuning.LowHealthThreshold

	var (
		options []cards.Card
		weights []float64
	)
	for _, in := range enemy.Intents {
		if !enemy.Sand.CanAfford(enemy.CostOf(in.Card)) {
			continue
		}
		w := in.Weight
		if w <= 0 {
			w = 1
		}
		switch {
		case hurt && in.Card.HasKind(cards.EffectBlock):
			w *= tuning.DefensiveWeight
		case !hurt && in.Card.HasKind(cards.EffectDamage):
			w *= tuning.AggressiveWeight
		}
		options = append(options, in.Card)
		weights = append(weights, w)
	}

	if len(options) == 0 {
		return cards.Card{}, false, nil
	}

	idx, err := dice.WeightedIndex(m.roller, weights)
	if err != nil {
		return cards.Card{}, false, duaterr.Wrap(err, "failed to pick intent")
	}
	return options[idx], true, nil
}

// TakeEnemyTurn plays one intent if the enemy can afford any, then ends the
// turn unless the combat finished.
func (m *Manager) TakeEnemyTurn(ctx context.Context) error {
	if phase := m.Phase(); phase != PhaseEnemyTurn {
		return duaterr.WrongPhasef("enemy cannot act during %s", phase)
	}

	m.mu.Lock()
	card, ok, err := m.nextIntent()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if ok {
		if err := m.PlayCard(ctx, combatant.SideEnemy, card); err != nil {
			if !duaterr.IsContentIntegrity(err) {
				return err
			}
			log.Printf("[COMBAT] Enemy %s skipped broken intent %s: %v", m.enemy.ID, card.ID, err)
		}
	}

	if m.Phase().IsTerminal() {
		return nil
	}
	return m.EndTurn(ctx)
}
