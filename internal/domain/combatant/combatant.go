// Package combatant models one side of a fight: health, block, sand, statuses
// and blessings, plus references to the collaborators that outlive combat.
package combatant

import (
	"sort"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/hourglass"
	"github.com/KirkDiggler/duat-combat/internal/domain/status"
)

type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Intent is a resolved AI action
type Intent struct {
	Card   cards.Card
	Weight float64
}

// Config is the template a combatant is built from at combat start
type Config struct {
	ID         string
	Name       string
	Side       Side
	Health     int
	MaxHealth  int
	Sand       hourglass.Config
	Tuning     status.Tuning
	Deck       HandDeck
	Collection Collection
	Profile    Profile
	Intents    []Intent

	// Momentum turns on cost reduction for descending-cost play
	Momentum bool
}

// Combatant is mutated only by the combat manager and effect resolver
type Combatant struct {
	ID   string
	Name string
	Side Side

	health    int
	maxHealth int
	block     int
	blessings map[string]bool

	// costReduction lowers every card's cost for the rest of the combat
	costReduction int

	momentum       bool
	momentumStacks int
	lastCardCost   int

	Sand     *hourglass.HourGlass
	Statuses *status.Registry

	Deck       HandDeck
	Collection Collection
	Profile    Profile
	Intents    []Intent
}

// New builds a combatant whose hourglass is anchored at now
func New(cfg Config, now time.Time) *Combatant {
	if cfg.MaxHealth <= 0 {
		cfg.MaxHealth = cfg.Health
	}
	if cfg.Health > cfg.MaxHealth {
		cfg.Health = cfg.MaxHealth
	}
	if cfg.Tuning == (status.Tuning{}) {
		cfg.Tuning = status.DefaultTuning()
	}

	return &Combatant{
		ID:         cfg.ID,
		Name:       cfg.Name,
		Side:       cfg.Side,
		health:     max(cfg.Health, 0),
		maxHealth:  cfg.MaxHealth,
		blessings:  make(map[string]bool),
		Sand:       hourglass.New(cfg.Sand, now),
		Statuses:   status.NewRegistry(cfg.Tuning),
		Deck:       cfg.Deck,
		Collection: cfg.Collection,
		Profile:    cfg.Profile,
		Intents:    cfg.Intents,
		momentum:   cfg.Momentum,
	}
}

func (c *Combatant) Health() int    { return c.health }
func (c *Combatant) MaxHealth() int { return c.maxHealth }
func (c *Combatant) Block() int     { return c.block }

func (c *Combatant) IsAlive() bool {
	return c.health > 0
}

// HealthFraction is health over max health
func (c *Combatant) HealthFraction() float64 {
	if c.maxHealth == 0 {
		return 0
	}
	return float64(c.health) / float64(c.maxHealth)
}

// TakeDamage runs amount through block first. It returns how much block
// absorbed and how much health was lost.
func (c *Combatant) TakeDamage(amount int) (absorbed, lost int) {
	if amount <= 0 {
		return 0, 0
	}
	absorbed = min(c.block, amount)
	c.block -= absorbed

	lost = min(c.health, amount-absorbed)
	c.health -= lost
	return absorbed, lost
}

// Heal restores health up to max and returns the amount restored
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	healed := min(amount, c.maxHealth-c.health)
	c.health += healed
	return healed
}

// GainBlock adds block and returns the amount added
func (c *Combatant) GainBlock(amount int) int {
	if amount <= 0 {
		return 0
	}
	c.block += amount
	return amount
}

// ResetBlock clears block and returns what was removed
func (c *Combatant) ResetBlock() int {
	removed := c.block
	c.block = 0
	return removed
}

// IncreaseMaxHealth raises max and current health together
func (c *Combatant) IncreaseMaxHealth(amount int) int {
	if amount <= 0 {
		return 0
	}
	c.maxHealth += amount
	if c.IsAlive() {
		c.health += amount
	}
	return amount
}

// SetBlessing raises a named flag. It reports false if the flag was
// already set; a name is held at most once.
func (c *Combatant) SetBlessing(name string) bool {
	if c.blessings[name] {
		return false
	}
	c.blessings[name] = true
	return true
}

func (c *Combatant) HasBlessing(name string) bool {
	return c.blessings[name]
}

// ConsumeBlessing clears a flag, reporting whether it was set
func (c *Combatant) ConsumeBlessing(name string) bool {
	if !c.blessings[name] {
		return false
	}
	delete(c.blessings, name)
	return true
}

// Blessings returns the active flags, sorted
func (c *Combatant) Blessings() []string {
	out := make([]string, 0, len(c.blessings))
	for name := range c.blessings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BlessingSwiftSand makes the holder's next card cost one less
const BlessingSwiftSand = "swift_sand"

// AddCostReduction lowers card costs for the rest of the combat
func (c *Combatant) AddCostReduction(n int) {
	if n > 0 {
		c.costReduction += n
	}
}

func (c *Combatant) CostReduction() int {
	return c.costReduction
}

const (
	MaxMomentumStacks    = 5
	MaxMomentumReduction = 3
)

// RecordPlay feeds a played card's printed cost into momentum. A card
// cheaper than the previous one adds a stack; anything else resets.
func (c *Combatant) RecordPlay(card cards.Card) {
	if !c.momentum {
		return
	}
	if card.Cost < c.lastCardCost {
		c.momentumStacks = min(c.momentumStacks+1, MaxMomentumStacks)
	} else {
		c.momentumStacks = 0
	}
	c.lastCardCost = card.Cost
}

func (c *Combatant) Momentum() int {
	return c.momentumStacks
}

// CostOf returns what card would cost this combatant right now, never below 0
func (c *Combatant) CostOf(card cards.Card) int {
	cost := card.Cost - c.costReduction - min(c.momentumStacks, MaxMomentumReduction)
	if c.HasBlessing(BlessingSwiftSand) {
		cost--
	}
	return max(cost, 0)
}

// ClearCombatState drops everything scoped to one combat
func (c *Combatant) ClearCombatState() {
	c.Statuses.Clear()
	c.blessings = make(map[string]bool)
	c.block = 0
	c.costReduction = 0
	c.momentumStacks = 0
	c.lastCardCost = 0
}

// Snapshot is a read-only copy for hosts and tests
type Snapshot struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Side      Side               `json:"side"`
	Health    int                `json:"health"`
	MaxHealth int                `json:"max_health"`
	Block     int                `json:"block"`
	Sand      hourglass.Snapshot `json:"sand"`
	Statuses  []status.Entry     `json:"statuses"`
	Blessings []string           `json:"blessings"`
	HandSize  int                `json:"hand_size"`

	CostReduction int `json:"cost_reduction"`
	Momentum      int `json:"momentum"`
}

func (c *Combatant) Snapshot() Snapshot {
	s := Snapshot{
		ID:        c.ID,
		Name:      c.Name,
		Side:      c.Side,
		Health:    c.health,
		MaxHealth: c.maxHealth,
		Block:     c.block,
		Sand:      c.Sand.Snapshot(),
		Statuses:  c.Statuses.Entries(),
		Blessings: c.Blessings(),

		CostReduction: c.costReduction,
		Momentum:      c.momentumStacks,
	}
	if c.Deck != nil {
		s.HandSize = len(c.Deck.Hand())
	}
	return s
}
