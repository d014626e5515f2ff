package combat

import (
	"github.com/KirkDiggler/duat-combat/internal/config"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
)

// dynamicRegen scales a combatant's regeneration for the coming frame.
// Hurt or blessed combatants refill faster; a nearly full hourglass slows.
func dynamicRegen(c *combatant.Combatant, d config.DynamicRegenBalance) float64 {
	rate := 1.0

	switch hp := c.HealthFraction(); {
	case hp < d.LowHealth:
		rate *= d.LowHealthMultiplier
	case hp < d.MidHealth:
		rate *= d.MidHealthMultiplier
	}

	if c.Sand.Current() >= c.Sand.Max()-1 {
		rate *= d.NearFullMultiplier
	}
	if len(c.Blessings()) > 0 {
		rate *= d.BlessedMultiplier
	}

	return rate
}
