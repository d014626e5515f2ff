package combat

import "github.com/KirkDiggler/duat-combat/internal/domain/combatant"

// Snapshot is a read-only view for a host UI
type Snapshot struct {
	ID     string             `json:"id"`
	Phase  Phase              `json:"phase"`
	Active combatant.Side     `json:"active"`
	Turn   int                `json:"turn"`
	Player combatant.Snapshot `json:"player"`
	Enemy  combatant.Snapshot `json:"enemy"`
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		ID:     m.id,
		Phase:  m.phase,
		Active: m.active,
		Turn:   m.turn,
		Player: m.player.Snapshot(),
		Enemy:  m.enemy.Snapshot(),
	}
}

// Turn is the round counter; it advances when control returns to the player
func (m *Manager) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

func (m *Manager) Active() combatant.Side {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
