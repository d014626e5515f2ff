package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RegenPolicy decides which hourglasses refill during a frame
type RegenPolicy string

const (
	// RegenAlways refills both sides every frame
	RegenAlways RegenPolicy = "always"
	// RegenActiveOnly pauses the side that is not acting
	RegenActiveOnly RegenPolicy = "active_only"
)

// BlockResetPolicy decides when block is cleared
type BlockResetPolicy string

const (
	// BlockResetTurnStart clears block when its owner's turn begins
	BlockResetTurnStart BlockResetPolicy = "turn_start"
	// BlockResetTurnEnd clears block when its owner ends the turn
	BlockResetTurnEnd BlockResetPolicy = "turn_end"
)

// Balance holds the tunable numbers of the combat rules
type Balance struct {
	Sand    SandBalance    `yaml:"sand"`
	Status  StatusBalance  `yaml:"status"`
	Turn    TurnBalance    `yaml:"turn"`
	Upgrade UpgradeBalance `yaml:"upgrade"`
	Enemy   EnemyBalance   `yaml:"enemy"`
}

type SandBalance struct {
	Max          int           `yaml:"max"`
	Cap          int           `yaml:"cap"`
	RegenRate    float64       `yaml:"regen_rate"`
	MaxTickDelta time.Duration `yaml:"max_tick_delta"`
	PlayerStart  int           `yaml:"player_start"`
	EnemyStart   int           `yaml:"enemy_start"`
	Regen        RegenPolicy   `yaml:"regen"`

	// Momentum lets a card cheaper than the one played before it build
	// stacks that lower later costs
	Momentum bool `yaml:"momentum"`

	Dynamic DynamicRegenBalance `yaml:"dynamic"`
}

// DynamicRegenBalance scales regeneration by the combatant's situation each
// frame. Off by default.
type DynamicRegenBalance struct {
	Enabled             bool    `yaml:"enabled"`
	LowHealth           float64 `yaml:"low_health"`
	LowHealthMultiplier float64 `yaml:"low_health_multiplier"`
	MidHealth           float64 `yaml:"mid_health"`
	MidHealthMultiplier float64 `yaml:"mid_health_multiplier"`
	NearFullMultiplier  float64 `yaml:"near_full_multiplier"`
	BlessedMultiplier   float64 `yaml:"blessed_multiplier"`
}

type StatusBalance struct {
	VulnerableMultiplier float64 `yaml:"vulnerable_multiplier"`
	WeakMultiplier       float64 `yaml:"weak_multiplier"`
	StrengthPerStack     float64 `yaml:"strength_per_stack"`
	DexterityPerStack    float64 `yaml:"dexterity_per_stack"`
}

// TurnBalance covers turn boundaries. At the start of each player turn the
// hand is refilled to HandSize, never past HandLimit.
type TurnBalance struct {
	BlockReset BlockResetPolicy `yaml:"block_reset"`
	HandLimit  int              `yaml:"hand_limit"`
	HandSize   int              `yaml:"hand_size"`
}

type UpgradeBalance struct {
	Bonus     int `yaml:"bonus"`
	DrawBonus int `yaml:"draw_bonus"`
}

// EnemyBalance tunes intent weighting for AI-controlled combatants
type EnemyBalance struct {
	LowHealthThreshold float64 `yaml:"low_health_threshold"`
	DefensiveWeight    float64 `yaml:"defensive_weight"`
	AggressiveWeight   float64 `yaml:"aggressive_weight"`
}

// DefaultBalance returns the stock rules
func DefaultBalance() *Balance {
	return &Balance{
		Sand: SandBalance{
			Max:          6,
			Cap:          8,
			RegenRate:    1.0,
			MaxTickDelta: 50 * time.Millisecond,
			PlayerStart:  3,
			EnemyStart:   2,
			Regen:        RegenAlways,
			Dynamic: DynamicRegenBalance{
				LowHealth:           0.3,
				LowHealthMultiplier: 1.5,
				MidHealth:           0.6,
				MidHealthMultiplier: 1.2,
				NearFullMultiplier:  0.5,
				BlessedMultiplier:   1.25,
			},
		},
		Status: StatusBalance{
			VulnerableMultiplier: 1.5,
			WeakMultiplier:       0.75,
			StrengthPerStack:     0.25,
			DexterityPerStack:    0.25,
		},
		Turn: TurnBalance{
			BlockReset: BlockResetTurnEnd,
			HandLimit:  10,
			HandSize:   5,
		},
		Upgrade: UpgradeBalance{
			Bonus:     3,
			DrawBonus: 1,
		},
		Enemy: EnemyBalance{
			LowHealthThreshold: 0.3,
			DefensiveWeight:    1.5,
			AggressiveWeight:   1.2,
		},
	}
}

// LoadBalance reads a balance file over the defaults. An empty path yields
// the defaults; keys missing from the file keep their default value.
func LoadBalance(path string) (*Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse balance file %s: %w", path, err)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("balance file %s: %w", path, err)
	}

	return b, nil
}

// Validate rejects numbers the engine cannot run with
func (b *Balance) Validate() error {
	switch {
	case b.Sand.Max < 1:
		return fmt.Errorf("sand.max must be positive, got %d", b.Sand.Max)
	case b.Sand.Cap < b.Sand.Max:
		return fmt.Errorf("sand.cap %d below sand.max %d", b.Sand.Cap, b.Sand.Max)
	case b.Sand.RegenRate < 0:
		return fmt.Errorf("sand.regen_rate must not be negative")
	case b.Sand.MaxTickDelta <= 0:
		return fmt.Errorf("sand.max_tick_delta must be positive")
	case b.Turn.HandLimit < 1:
		return fmt.Errorf("turn.hand_limit must be positive")
	case b.Turn.HandSize < 0 || b.Turn.HandSize > b.Turn.HandLimit:
		return fmt.Errorf("turn.hand_size %d outside 0..%d", b.Turn.HandSize, b.Turn.HandLimit)
	}

	if d := b.Sand.Dynamic; d.Enabled {
		switch {
		case d.LowHealth < 0 || d.MidHealth < d.LowHealth || d.MidHealth > 1:
			return fmt.Errorf("sand.dynamic thresholds must satisfy 0 <= low_health <= mid_health <= 1")
		case d.LowHealthMultiplier < 0 || d.MidHealthMultiplier < 0 || d.NearFullMultiplier < 0 || d.BlessedMultiplier < 0:
			return fmt.Errorf("sand.dynamic multipliers must not be negative")
		}
	}

	switch b.Sand.Regen {
	case RegenAlways, RegenActiveOnly:
	default:
		return fmt.Errorf("unknown sand.regen policy %q", b.Sand.Regen)
	}

	switch b.Turn.BlockReset {
	case BlockResetTurnStart, BlockResetTurnEnd:
	default:
		return fmt.Errorf("unknown turn.block_reset policy %q", b.Turn.BlockReset)
	}

	return nil
}
