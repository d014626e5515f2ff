// Package cards defines card templates, their effects and the content catalog.
package cards

import (
	"strings"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

// MaxCost is the highest printed sand cost
const MaxCost = 6

// UpgradeSuffix marks the id and name of an upgraded card
const UpgradeSuffix = "+"

// EffectKind names one atomic thing a card does
type EffectKind string

const (
	EffectDamage                EffectKind = "DAMAGE"
	EffectHeal                  EffectKind = "HEAL"
	EffectBlock                 EffectKind = "BLOCK"
	EffectApplyVulnerable       EffectKind = "APPLY_VULNERABLE"
	EffectApplyWeak             EffectKind = "APPLY_WEAK"
	EffectApplyStrength         EffectKind = "APPLY_STRENGTH"
	EffectApplyDexterity        EffectKind = "APPLY_DEXTERITY"
	EffectGainSand              EffectKind = "GAIN_SAND"
	EffectPermanentSandIncrease EffectKind = "PERMANENT_SAND_INCREASE"
	EffectMaxHealthIncrease     EffectKind = "MAX_HEALTH_INCREASE"
	EffectDrawCards             EffectKind = "DRAW_CARDS"
	EffectBlessing              EffectKind = "BLESSING"
	EffectChannelDivinity       EffectKind = "CHANNEL_DIVINITY"
	EffectDiscoverCard          EffectKind = "DISCOVER_CARD"
	EffectGainCard              EffectKind = "GAIN_CARD"
	EffectUpgradeCard           EffectKind = "UPGRADE_CARD"
	EffectLoseGold              EffectKind = "LOSE_GOLD"
)

var knownKinds = map[EffectKind]bool{
	EffectDamage: true, EffectHeal: true, EffectBlock: true,
	EffectApplyVulnerable: true, EffectApplyWeak: true,
	EffectApplyStrength: true, EffectApplyDexterity: true,
	EffectGainSand: true, EffectPermanentSandIncrease: true,
	EffectMaxHealthIncrease: true, EffectDrawCards: true,
	EffectBlessing: true, EffectChannelDivinity: true,
	EffectDiscoverCard: true, EffectGainCard: true,
	EffectUpgradeCard: true, EffectLoseGold: true,
}

// IsKnown reports whether the engine can resolve kind
func (k EffectKind) IsKnown() bool {
	return knownKinds[k]
}

// Target picks who an effect lands on, relative to whoever plays the card
type Target string

const (
	TargetSelf  Target = "self"
	TargetEnemy Target = "enemy"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Effect is one step of a card. Param names the blessing, divinity, card id
// or discover rarity depending on Kind.
type Effect struct {
	Kind      EffectKind `yaml:"kind" json:"kind"`
	Magnitude int        `yaml:"magnitude,omitempty" json:"magnitude,omitempty"`
	Duration  int        `yaml:"duration,omitempty" json:"duration,omitempty"`
	Target    Target     `yaml:"target" json:"target"`
	Param     string     `yaml:"param,omitempty" json:"param,omitempty"`
}

// Card is an immutable template. UID is set once a copy enters a deck.
type Card struct {
	ID          string   `yaml:"id" json:"id"`
	UID         string   `yaml:"-" json:"uid,omitempty"`
	Name        string   `yaml:"name" json:"name"`
	Cost        int      `yaml:"cost" json:"cost"`
	Rarity      Rarity   `yaml:"rarity" json:"rarity"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Effects     []Effect `yaml:"effects" json:"effects"`
	Upgraded    bool     `yaml:"upgraded,omitempty" json:"upgraded,omitempty"`
}

// Validate checks the static shape of a template. Unknown effect kinds are
// allowed here and caught at resolution.
func (c Card) Validate() error {
	if c.ID == "" {
		return duaterr.InvalidArgument("card without id")
	}
	if c.Name == "" {
		return duaterr.InvalidArgumentf("card %s: missing name", c.ID)
	}
	if c.Cost < 0 || c.Cost > MaxCost {
		return duaterr.InvalidArgumentf("card %s: cost %d outside 0..%d", c.ID, c.Cost, MaxCost)
	}
	for i, e := range c.Effects {
		if e.Target != TargetSelf && e.Target != TargetEnemy {
			return duaterr.InvalidArgumentf("card %s: effect %d has target %q", c.ID, i, e.Target)
		}
		if e.Magnitude < 0 {
			return duaterr.InvalidArgumentf("card %s: effect %d has negative magnitude", c.ID, i)
		}
	}
	return nil
}

// UpgradeBonus is how much an upgrade adds to each effect kind
type UpgradeBonus struct {
	Amount int
	Draw   int
}

// DefaultUpgradeBonus adds 3 to damage, heal and block and 1 to draws
func DefaultUpgradeBonus() UpgradeBonus {
	return UpgradeBonus{Amount: 3, Draw: 1}
}

// Upgrade returns the upgraded variant with the stock bonus
func (c Card) Upgrade() Card {
	return c.UpgradeWith(DefaultUpgradeBonus())
}

// UpgradeWith returns a new template; the receiver is never modified.
// An already upgraded card comes back unchanged.
func (c Card) UpgradeWith(bonus UpgradeBonus) Card {
	if c.Upgraded {
		return c
	}

	up := c
	up.ID = c.ID + UpgradeSuffix
	up.Name = c.Name + UpgradeSuffix
	up.Upgraded = true
	up.Effects = make([]Effect, len(c.Effects))
	for i, e := range c.Effects {
		switch e.Kind {
		case EffectDamage, EffectHeal, EffectBlock:
			e.Magnitude += bonus.Amount
		case EffectDrawCards:
			e.Magnitude += bonus.Draw
		}
		up.Effects[i] = e
	}
	return up
}

// BaseID strips the upgrade suffix
func BaseID(id string) string {
	return strings.TrimSuffix(id, UpgradeSuffix)
}

// HasKind reports whether any effect of the card is kind
func (c Card) HasKind(kind EffectKind) bool {
	for _, e := range c.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
