package combat

import "github.com/KirkDiggler/duat-combat/internal/domain/combatant"

// Phase is the combat state machine position
type Phase string

const (
	PhaseSetup            Phase = "SETUP"
	PhasePlayerTurn       Phase = "PLAYER_TURN"
	PhaseEnemyTurn        Phase = "ENEMY_TURN"
	PhaseResolvingEffects Phase = "RESOLVING_EFFECTS"
	PhaseVictory          Phase = "VICTORY"
	PhaseDefeat           Phase = "DEFEAT"
	PhaseAborted          Phase = "ABORTED"
)

// IsTerminal reports whether the combat is over
func (p Phase) IsTerminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseAborted
}

func turnPhase(side combatant.Side) Phase {
	if side == combatant.SidePlayer {
		return PhasePlayerTurn
	}
	return PhaseEnemyTurn
}
