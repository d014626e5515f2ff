// Package combat runs one fight: the turn state machine, card plays and the
// per-frame sand tick.
package combat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	"github.com/KirkDiggler/duat-combat/internal/config"
	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/events"
	"github.com/KirkDiggler/duat-combat/internal/services/resolver"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
)

// ManagerConfig holds the dependencies of a Manager. Player and Enemy are
// required; everything else has a default.
type ManagerConfig struct {
	Player     *combatant.Combatant
	Enemy      *combatant.Combatant
	Balance    *config.Balance
	Clock      clock.Clock
	Roller     dice.Roller
	Bus        *events.Bus
	IDs        uuid.Generator
	Chooser    resolver.Chooser
	Divinities *resolver.DivinityRegistry
}

// Manager owns one combat. Its methods are safe to call from several
// goroutines, though a host normally drives it from one loop. Events raised
// by a call reach listeners after the call has released the manager, so a
// listener may read state back through Snapshot and friends.
type Manager struct {
	mu sync.Mutex

	id      string
	phase   Phase
	active  combatant.Side
	turn    int
	balance *config.Balance

	player *combatant.Combatant
	enemy  *combatant.Combatant

	clock      clock.Clock
	roller     dice.Roller
	stream     *events.Stream
	resolver   *resolver.Resolver
	divinities *resolver.DivinityRegistry
}

// NewManager creates a combat in SETUP
func NewManager(cfg *ManagerConfig) *Manager {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Player == nil {
		panic("player is required")
	}
	if cfg.Enemy == nil {
		panic("enemy is required")
	}
	if cfg.Balance == nil {
		cfg.Balance = config.DefaultBalance()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.NewRandomRoller()
	}
	if cfg.Chooser == nil {
		cfg.Chooser = resolver.NewRandomChooser(cfg.Roller)
	}
	if cfg.Divinities == nil {
		cfg.Divinities = resolver.NewDivinityRegistry()
		resolver.RegisterDefaults(cfg.Divinities)
	}

	id := events.NewCombatID(cfg.IDs)
	stream := events.NewStream(id, cfg.Clock, cfg.Bus)

	return &Manager{
		id:         id,
		phase:      PhaseSetup,
		active:     combatant.SidePlayer,
		balance:    cfg.Balance,
		player:     cfg.Player,
		enemy:      cfg.Enemy,
		clock:      cfg.Clock,
		roller:     cfg.Roller,
		stream:     stream,
		divinities: cfg.Divinities,
		resolver: resolver.New(&resolver.Config{
			Divinities: cfg.Divinities,
			Chooser:    cfg.Chooser,
			Publisher:  stream,
		}),
	}
}

func (m *Manager) ID() string {
	return m.id
}

func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Divinities is this combat's registry; register custom divinities here
// before Start
func (m *Manager) Divinities() *resolver.DivinityRegistry {
	return m.divinities
}

// Events is the bus the outbound stream publishes to
func (m *Manager) Events() *events.Bus {
	return m.stream.Bus()
}

func (m *Manager) Player() *combatant.Combatant { return m.player }
func (m *Manager) Enemy() *combatant.Combatant  { return m.enemy }

// Start moves SETUP to the player's first turn and deals the opening hand
func (m *Manager) Start(ctx context.Context) error {
	m.lock()
	defer m.unlock()

	if m.phase != PhaseSetup {
		return duaterr.WrongPhasef("combat %s already started (%s)", m.id, m.phase)
	}

	log.Printf("[COMBAT] Starting %s: %s (%d hp) vs %s (%d hp)",
		m.id, m.player.ID, m.player.Health(), m.enemy.ID, m.enemy.Health())

	m.turn = 1
	m.active = combatant.SidePlayer
	m.phase = PhasePlayerTurn
	m.applyRegenPolicy()

	m.publish(events.EventTypeCombatStarted, m.player, m.enemy, 0, "")
	m.publish(events.EventTypeTurnChanged, m.player, nil, m.turn, string(m.active))

	return m.refillHand(ctx, m.player)
}

// Tick advances both hourglasses. The host calls it every frame whatever
// the phase; it never changes the phase.
func (m *Manager) Tick(now time.Time) {
	m.lock()
	defer m.unlock()

	for _, c := range []*combatant.Combatant{m.player, m.enemy} {
		if m.balance.Sand.Dynamic.Enabled {
			c.Sand.SetRegenMultiplier(dynamicRegen(c, m.balance.Sand.Dynamic))
		}
		if gained := c.Sand.Tick(now); gained > 0 {
			m.publish(events.EventTypeSandChanged, c, c, gained, "regenerated")
		}
	}
}

// PlayCard validates and resolves a card for side. Validation happens
// before any mutation: the phase, then ownership, then affordability.
// Once paid for, effects resolve in order; after the combat ends mid-card
// only effects targeting the caster still run. A content error aborts the
// rest of the card but not the combat.
func (m *Manager) PlayCard(ctx context.Context, side combatant.Side, card cards.Card) error {
	m.lock()
	defer m.unlock()

	if m.phase != turnPhase(side) {
		return duaterr.WrongPhasef("%s cannot play during %s", side, m.phase).
			WithMeta("phase", string(m.phase))
	}

	actor, opponent := m.sides(side)

	played, err := m.owned(actor, card)
	if err != nil {
		return err
	}

	cost := actor.CostOf(played)
	if err := actor.Sand.Spend(cost); err != nil {
		return duaterr.Wrapf(err, "cannot play %s", played.ID)
	}

	// committed from here on
	actor.RecordPlay(played)
	if actor.ConsumeBlessing(combatant.BlessingSwiftSand) {
		m.publish(events.EventTypeBlessingConsumed, actor, actor, 1, combatant.BlessingSwiftSand)
	}
	m.publish(events.EventTypeSandChanged, actor, actor, -cost, "spent")

	if actor.Deck != nil {
		if err := actor.Deck.Discard(ctx, played.UID); err != nil {
			return duaterr.Wrapf(err, "failed to discard %s", played.UID)
		}
	}
	m.publish(events.EventTypeCardPlayed, actor, opponent, cost, played.ID)

	m.phase = PhaseResolvingEffects
	_, resolveErr := m.resolver.Resolve(ctx, actor, opponent, played.Effects, m.gate)

	if outcome, over := m.outcome(); over {
		if !m.phase.IsTerminal() {
			m.end(outcome)
		}
		m.clearCombatState()
	} else {
		m.phase = turnPhase(side)
	}

	if resolveErr != nil {
		if duaterr.IsContentIntegrity(resolveErr) {
			log.Printf("[COMBAT] Content error in card %s: %v", played.ID, resolveErr)
		}
		return duaterr.Wrapf(resolveErr, "card %s", played.ID)
	}
	return nil
}

// gate runs before each effect. The first time it sees the fight decided
// the phase switches; after that only effects on the caster complete.
func (m *Manager) gate(effect cards.Effect) bool {
	outcome, over := m.outcome()
	if !over {
		return true
	}
	if !m.phase.IsTerminal() {
		m.end(outcome)
	}
	return effect.Target == cards.TargetSelf
}

// EndTurn closes the active side's turn: its statuses tick down once, block
// resets per policy and the other side becomes active.
func (m *Manager) EndTurn(ctx context.Context) error {
	m.lock()
	defer m.unlock()
	return m.endTurn(ctx)
}

func (m *Manager) endTurn(ctx context.Context) error {
	if m.phase != PhasePlayerTurn && m.phase != PhaseEnemyTurn {
		return duaterr.WrongPhasef("cannot end turn during %s", m.phase)
	}

	outgoing, incoming := m.sides(m.active)

	for _, expired := range outgoing.Statuses.AdvanceTurn() {
		m.publish(events.EventTypeStatusExpired, outgoing, outgoing, expired.Stacks, string(expired.Kind))
	}
	if m.balance.Turn.BlockReset == config.BlockResetTurnEnd {
		outgoing.ResetBlock()
	}

	m.active = incoming.Side
	if m.active == combatant.SidePlayer {
		m.turn++
	}
	if m.balance.Turn.BlockReset == config.BlockResetTurnStart {
		incoming.ResetBlock()
	}
	m.applyRegenPolicy()

	m.phase = turnPhase(m.active)
	m.publish(events.EventTypeTurnChanged, incoming, nil, m.turn, string(m.active))

	if m.active == combatant.SidePlayer {
		return m.refillHand(ctx, incoming)
	}
	return nil
}

// Abort ends the combat without a winner. Progress already persisted
// through the profile stays.
func (m *Manager) Abort(_ context.Context) {
	m.lock()
	defer m.unlock()

	if m.phase.IsTerminal() {
		return
	}
	m.finish(PhaseAborted)
}

func (m *Manager) owned(actor *combatant.Combatant, card cards.Card) (cards.Card, error) {
	if actor.Deck != nil {
		held, ok := actor.Deck.InHand(card.UID)
		if !ok {
			return cards.Card{}, duaterr.NotOwnedf("%s does not hold %s", actor.ID, card.ID).
				WithMeta("uid", card.UID)
		}
		return held, nil
	}

	for _, in := range actor.Intents {
		if in.Card.ID == card.ID {
			return in.Card, nil
		}
	}
	return cards.Card{}, duaterr.NotOwnedf("%s has no action %s", actor.ID, card.ID)
}

// outcome checks health. The player falling takes precedence.
func (m *Manager) outcome() (Phase, bool) {
	if !m.player.IsAlive() {
		return PhaseDefeat, true
	}
	if !m.enemy.IsAlive() {
		return PhaseVictory, true
	}
	return "", false
}

func (m *Manager) finish(phase Phase) {
	m.end(phase)
	m.clearCombatState()
}

// end moves to a terminal phase and announces it
func (m *Manager) end(phase Phase) {
	m.phase = phase
	log.Printf("[COMBAT] %s ended: %s on turn %d", m.id, phase, m.turn)
	m.publish(events.EventTypeCombatEnded, m.player, m.enemy, m.turn, string(phase))
}

func (m *Manager) clearCombatState() {
	for _, c := range []*combatant.Combatant{m.player, m.enemy} {
		c.ClearCombatState()
		c.Sand.Pause()
	}
}

func (m *Manager) applyRegenPolicy() {
	if m.balance.Sand.Regen != config.RegenActiveOnly {
		m.player.Sand.Resume()
		m.enemy.Sand.Resume()
		return
	}
	active, inactive := m.sides(m.active)
	active.Sand.Resume()
	inactive.Sand.Pause()
}

func (m *Manager) refillHand(ctx context.Context, c *combatant.Combatant) error {
	if c.Deck == nil {
		return nil
	}
	missing := m.balance.Turn.HandSize - len(c.Deck.Hand())
	if missing <= 0 {
		return nil
	}
	drawn, err := c.Deck.Draw(ctx, missing)
	if err != nil {
		return duaterr.Wrap(err, "failed to refill hand")
	}
	m.publish(events.EventTypeCardsDrawn, c, c, len(drawn), "")
	return nil
}

// lock takes the manager and holds back events until unlock
func (m *Manager) lock() {
	m.mu.Lock()
	m.stream.Hold()
}

// unlock releases the manager, then delivers what the call published
func (m *Manager) unlock() {
	pending := m.stream.Release()
	m.mu.Unlock()
	m.stream.Deliver(pending)
}

func (m *Manager) sides(side combatant.Side) (actor, opponent *combatant.Combatant) {
	if side == combatant.SidePlayer {
		return m.player, m.enemy
	}
	return m.enemy, m.player
}

func (m *Manager) publish(t events.EventType, actor, target *combatant.Combatant, amount int, detail string) {
	e := events.Event{Type: t, Amount: amount, Detail: detail}
	if actor != nil {
		e.Actor = actor.ID
	}
	if target != nil {
		e.Target = target.ID
	}
	m.stream.Publish(e)
}
