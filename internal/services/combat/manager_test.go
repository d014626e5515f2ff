package combat_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	"github.com/KirkDiggler/duat-combat/internal/config"
	mockdice "github.com/KirkDiggler/duat-combat/internal/dice/mock"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	"github.com/KirkDiggler/duat-combat/internal/domain/deck"
	"github.com/KirkDiggler/duat-combat/internal/domain/hourglass"
	"github.com/KirkDiggler/duat-combat/internal/domain/status"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/events"
	"github.com/KirkDiggler/duat-combat/internal/services/combat"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
	"github.com/stretchr/testify/suite"
)

var (
	sandStrike = cards.Card{
		ID:   "sand_strike",
		Name: "Sand Strike",
		Cost: 2,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: 10, Target: cards.TargetEnemy},
			{Kind: cards.EffectApplyWeak, Magnitude: 1, Duration: 1, Target: cards.TargetEnemy},
		},
	}
	finisher = cards.Card{
		ID:   "finisher",
		Cost: 1,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: 10, Target: cards.TargetEnemy},
			{Kind: cards.EffectApplyVulnerable, Magnitude: 1, Duration: 2, Target: cards.TargetEnemy},
			{Kind: cards.EffectBlock, Magnitude: 5, Target: cards.TargetSelf},
		},
	}
	brokenCard = cards.Card{
		ID:   "broken",
		Cost: 1,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: 3, Target: cards.TargetEnemy},
			{Kind: "TELEPORT", Target: cards.TargetEnemy},
			{Kind: cards.EffectDamage, Magnitude: 3, Target: cards.TargetEnemy},
		},
	}
	scarabBite = cards.Card{
		ID:      "scarab_bite",
		Cost:    1,
		Effects: []cards.Effect{{Kind: cards.EffectDamage, Magnitude: 4, Target: cards.TargetEnemy}},
	}
	chitinHarden = cards.Card{
		ID:      "chitin_harden",
		Cost:    1,
		Effects: []cards.Effect{{Kind: cards.EffectBlock, Magnitude: 6, Target: cards.TargetSelf}},
	}
)

type ManagerSuite struct {
	suite.Suite
	ctx      context.Context
	t0       time.Time
	clock    *clock.Fake
	roller   *mockdice.ManualMockRoller
	balance  *config.Balance
	recorder *events.Recorder
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewFake(s.t0)
	s.roller = mockdice.NewManualMockRoller()
	s.balance = config.DefaultBalance()
	s.recorder = events.NewRecorder("test")
}

func (s *ManagerSuite) newManager(hand []cards.Card, enemyHealth int) *combat.Manager {
	d, err := deck.New(deck.Config{
		HandLimit: s.balance.Turn.HandLimit,
		Roller:    mockdice.HighRoller{},
		IDs:       uuid.NewSequenceGenerator("card"),
	}, hand)
	s.Require().NoError(err)

	player := combatant.New(combatant.Config{
		ID:     "player",
		Side:   combatant.SidePlayer,
		Health: 30,
		Sand:   hourglass.Config{Start: 3, MaxTickDelta: 10 * time.Second},
		Deck:   d,

		Momentum: s.balance.Sand.Momentum,
	}, s.t0)
	enemy := combatant.New(combatant.Config{
		ID:     "tomb_scarab",
		Side:   combatant.SideEnemy,
		Health: enemyHealth,
		Sand:   hourglass.Config{Start: 2, MaxTickDelta: 10 * time.Second},
		Intents: []combatant.Intent{
			{Card: scarabBite, Weight: 1},
			{Card: chitinHarden, Weight: 1},
		},
	}, s.t0)

	bus := events.NewBus()
	bus.Subscribe(events.EventTypeAll, s.recorder)

	return combat.NewManager(&combat.ManagerConfig{
		Player:  player,
		Enemy:   enemy,
		Balance: s.balance,
		Clock:   s.clock,
		Roller:  s.roller,
		Bus:     bus,
		IDs:     uuid.NewSequenceGenerator("combat"),
	})
}

func (s *ManagerSuite) started(hand []cards.Card, enemyHealth int) *combat.Manager {
	m := s.newManager(hand, enemyHealth)
	s.Require().NoError(m.Start(s.ctx))
	return m
}

func (s *ManagerSuite) handCard(m *combat.Manager, id string) cards.Card {
	for _, c := range m.Player().Deck.Hand() {
		if c.ID == id {
			return c
		}
	}
	s.FailNow("card not in hand", id)
	return cards.Card{}
}

func (s *ManagerSuite) TestStart() {
	m := s.newManager([]cards.Card{sandStrike, sandStrike}, 30)
	s.Equal(combat.PhaseSetup, m.Phase())

	s.Require().NoError(m.Start(s.ctx))

	snap := m.Snapshot()
	s.Equal(combat.PhasePlayerTurn, snap.Phase)
	s.Equal(combatant.SidePlayer, snap.Active)
	s.Equal(1, snap.Turn)
	s.Equal(2, snap.Player.HandSize)
	s.Len(s.recorder.OfType(events.EventTypeCombatStarted), 1)

	err := m.Start(s.ctx)
	s.True(duaterr.Is(err, duaterr.CodeWrongPhase))
}

func (s *ManagerSuite) TestPlayCard_DamageAndWeak() {
	m := s.started([]cards.Card{sandStrike}, 30)

	err := m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "sand_strike"))
	s.Require().NoError(err)

	s.Equal(1, m.Player().Sand.Current())
	s.Equal(20, m.Enemy().Health())

	weak, ok := m.Enemy().Statuses.Get(status.KindWeak)
	s.Require().True(ok)
	s.Equal(1, weak.Stacks)
	s.Equal(1, weak.Duration)

	s.Equal(combat.PhasePlayerTurn, m.Phase())
	s.Empty(m.Player().Deck.Hand())

	played := s.recorder.OfType(events.EventTypeCardPlayed)
	s.Require().Len(played, 1)
	s.Equal("sand_strike", played[0].Detail)
	s.Equal(2, played[0].Amount)
}

func (s *ManagerSuite) TestPlayCard_EventsAreOrdered() {
	m := s.started([]cards.Card{sandStrike}, 30)
	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "sand_strike")))

	all := s.recorder.Events()
	s.Require().NotEmpty(all)
	for i, e := range all {
		s.Equal(uint64(i+1), e.Seq)
		s.Equal(m.ID(), e.CombatID)
	}
}

func (s *ManagerSuite) TestPlayCard_LethalStopsEnemyEffects() {
	m := s.started([]cards.Card{finisher}, 5)

	err := m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "finisher"))
	s.Require().NoError(err)

	s.Equal(combat.PhaseVictory, m.Phase())
	s.Empty(s.recorder.OfType(events.EventTypeStatusApplied))

	// the caster's own block still resolved
	blocks := s.recorder.OfType(events.EventTypeBlockGained)
	s.Require().Len(blocks, 1)
	s.Equal("player", blocks[0].Target)

	ended := s.recorder.OfType(events.EventTypeCombatEnded)
	s.Require().Len(ended, 1)
	s.Equal(string(combat.PhaseVictory), ended[0].Detail)

	// the fight was decided before the caster's block resolved
	s.Less(ended[0].Seq, blocks[0].Seq)

	// combat-scoped state is gone
	s.Zero(m.Player().Block())
	s.True(m.Player().Sand.Paused())
}

func (s *ManagerSuite) TestPlayCard_PlayerFallingIsDefeat() {
	selfHarm := cards.Card{
		ID:   "blood_price",
		Cost: 0,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: 40, Target: cards.TargetSelf},
		},
	}
	m := s.started([]cards.Card{selfHarm}, 30)

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "blood_price")))
	s.Equal(combat.PhaseDefeat, m.Phase())
}

func (s *ManagerSuite) TestPlayCard_CasterFallingStillFinishesSelfEffects() {
	pyrrhic := cards.Card{
		ID:   "pyrrhic_rite",
		Cost: 0,
		Effects: []cards.Effect{
			{Kind: cards.EffectDamage, Magnitude: 40, Target: cards.TargetSelf},
			{Kind: cards.EffectGainSand, Magnitude: 1, Target: cards.TargetSelf},
			{Kind: cards.EffectDamage, Magnitude: 5, Target: cards.TargetEnemy},
		},
	}
	m := s.started([]cards.Card{pyrrhic}, 30)

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "pyrrhic_rite")))

	s.Equal(combat.PhaseDefeat, m.Phase())
	s.Equal(30, m.Enemy().Health())
	s.Equal(4, m.Player().Sand.Current())

	var granted []events.Event
	for _, e := range s.recorder.OfType(events.EventTypeSandChanged) {
		if e.Detail == "granted" {
			granted = append(granted, e)
		}
	}
	s.Require().Len(granted, 1)
	s.Equal("player", granted[0].Target)

	for _, e := range s.recorder.OfType(events.EventTypeDamageDealt) {
		s.NotEqual("tomb_scarab", e.Target)
	}

	ended := s.recorder.OfType(events.EventTypeCombatEnded)
	s.Require().Len(ended, 1)
	s.Equal(string(combat.PhaseDefeat), ended[0].Detail)
	s.Less(ended[0].Seq, granted[0].Seq)
}

func (s *ManagerSuite) TestPlayCard_ListenerMayReadStateBack() {
	m := s.started([]cards.Card{sandStrike}, 30)
	hud := &snapshotListener{manager: m}
	m.Events().Subscribe(events.EventTypeDamageDealt, hud)

	card := s.handCard(m, "sand_strike")
	done := make(chan error, 1)
	go func() {
		done <- m.PlayCard(s.ctx, combatant.SidePlayer, card)
	}()

	select {
	case err := <-done:
		s.Require().NoError(err)
	case <-time.After(2 * time.Second):
		s.FailNow("PlayCard did not return while a listener read the snapshot")
	}

	s.Require().Len(hud.seen, 1)
	s.Equal(20, hud.seen[0].Enemy.Health)
	s.Equal(combat.PhasePlayerTurn, hud.seen[0].Phase)
}

func (s *ManagerSuite) TestPlayCard_MomentumLowersLaterCosts() {
	s.balance.Sand.Momentum = true
	m := s.started([]cards.Card{sandStrike, scarabBite}, 60)

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "sand_strike")))
	s.Zero(m.Player().Momentum())

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "scarab_bite")))
	s.Equal(1, m.Player().Momentum())
	s.Zero(m.Player().Sand.Current())
	s.Equal(1, m.Player().CostOf(sandStrike))
}

func (s *ManagerSuite) TestPlayCard_WrongPhase() {
	m := s.newManager([]cards.Card{sandStrike}, 30)

	err := m.PlayCard(s.ctx, combatant.SidePlayer, sandStrike)
	s.True(duaterr.Is(err, duaterr.CodeWrongPhase))

	s.Require().NoError(m.Start(s.ctx))
	err = m.PlayCard(s.ctx, combatant.SideEnemy, scarabBite)
	s.True(duaterr.Is(err, duaterr.CodeWrongPhase))
	s.Equal(2, m.Enemy().Sand.Current())
}

func (s *ManagerSuite) TestPlayCard_InsufficientSandChangesNothing() {
	m := s.started([]cards.Card{sandStrike, sandStrike}, 30)
	m.Player().Sand.SetSand(1)
	before := m.Snapshot()
	eventsBefore := len(s.recorder.Events())

	err := m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "sand_strike"))
	s.True(duaterr.IsInsufficientResource(err))
	s.True(duaterr.IsValidation(err))

	s.Equal(before, m.Snapshot())
	s.Len(s.recorder.Events(), eventsBefore)
}

func (s *ManagerSuite) TestPlayCard_NotOwned() {
	m := s.started([]cards.Card{sandStrike}, 30)

	stranger := sandStrike
	stranger.UID = "not-in-hand"
	err := m.PlayCard(s.ctx, combatant.SidePlayer, stranger)
	s.True(duaterr.Is(err, duaterr.CodeNotOwned))
	s.Equal(3, m.Player().Sand.Current())
}

func (s *ManagerSuite) TestPlayCard_UnknownEffectAbortsCard() {
	m := s.started([]cards.Card{brokenCard}, 30)

	err := m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "broken"))
	s.Require().Error(err)
	s.True(duaterr.IsContentIntegrity(err))

	// first damage landed, the one after the bad effect did not
	s.Equal(27, m.Enemy().Health())
	s.Equal(combat.PhasePlayerTurn, m.Phase())
	s.Equal(2, m.Player().Sand.Current())
}

func (s *ManagerSuite) TestPlayCard_SwiftSandBlessing() {
	m := s.started([]cards.Card{sandStrike}, 30)
	m.Player().SetBlessing(combatant.BlessingSwiftSand)

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, s.handCard(m, "sand_strike")))

	s.Equal(2, m.Player().Sand.Current())
	s.False(m.Player().HasBlessing(combatant.BlessingSwiftSand))
	s.Len(s.recorder.OfType(events.EventTypeBlessingConsumed), 1)
}

func (s *ManagerSuite) TestTick_RunsInEveryPhase() {
	m := s.newManager([]cards.Card{sandStrike}, 30)

	m.Tick(s.clock.Advance(1500 * time.Millisecond))
	s.Equal(4, m.Player().Sand.Current())
	s.Equal(3, m.Enemy().Sand.Current())
	s.Equal(combat.PhaseSetup, m.Phase())

	gains := s.recorder.OfType(events.EventTypeSandChanged)
	s.Len(gains, 2)
}

func (s *ManagerSuite) TestTick_StampsEventsWithManagerClock() {
	m := s.newManager([]cards.Card{sandStrike}, 30)

	// host time runs ahead of the injected clock
	m.Tick(s.t0.Add(2 * time.Second))

	gains := s.recorder.OfType(events.EventTypeSandChanged)
	s.Require().Len(gains, 2)
	for _, e := range gains {
		s.Equal(s.clock.Now(), e.At)
	}
}

func (s *ManagerSuite) TestTick_DynamicRegen() {
	s.balance.Sand.Dynamic.Enabled = true
	m := s.started([]cards.Card{sandStrike}, 30)
	m.Enemy().TakeDamage(25)

	m.Tick(s.clock.Advance(2 * time.Second))
	s.Equal(5, m.Player().Sand.Current())
	s.Equal(5, m.Enemy().Sand.Current(), "desperate enemy refills at 1.5x")
	s.Equal(1.5, m.Enemy().Sand.RegenMultiplier())

	m.Player().SetBlessing(combatant.BlessingSwiftSand)
	m.Tick(s.clock.Advance(time.Second))
	s.Equal(0.625, m.Player().Sand.RegenMultiplier(), "nearly full and blessed")
	s.Equal(5, m.Player().Sand.Current())
}

func (s *ManagerSuite) TestTick_ActiveOnlyPausesIdleSide() {
	s.balance.Sand.Regen = config.RegenActiveOnly
	m := s.started([]cards.Card{sandStrike}, 30)

	m.Tick(s.clock.Advance(2 * time.Second))
	s.Equal(5, m.Player().Sand.Current())
	s.Equal(2, m.Enemy().Sand.Current())

	s.Require().NoError(m.EndTurn(s.ctx))
	m.Tick(s.clock.Advance(2 * time.Second))
	s.Equal(5, m.Player().Sand.Current())
	s.Equal(4, m.Enemy().Sand.Current())
}

func (s *ManagerSuite) TestEndTurn_StatusesTickForOutgoingSide() {
	m := s.started([]cards.Card{sandStrike}, 30)
	_, err := m.Player().Statuses.Apply(status.KindStrength, 2, status.Permanent)
	s.Require().NoError(err)
	_, err = m.Player().Statuses.Apply(status.KindVulnerable, 1, 1)
	s.Require().NoError(err)
	_, err = m.Enemy().Statuses.Apply(status.KindWeak, 1, 1)
	s.Require().NoError(err)

	s.Require().NoError(m.EndTurn(s.ctx))

	s.False(m.Player().Statuses.Has(status.KindVulnerable))
	s.True(m.Enemy().Statuses.Has(status.KindWeak))
	s.Equal(combat.PhaseEnemyTurn, m.Phase())

	expired := s.recorder.OfType(events.EventTypeStatusExpired)
	s.Require().Len(expired, 1)
	s.Equal(string(status.KindVulnerable), expired[0].Detail)

	for i := 0; i < 20; i++ {
		s.Require().NoError(m.EndTurn(s.ctx))
	}
	s.Equal(2, m.Player().Statuses.Stacks(status.KindStrength))
}

func (s *ManagerSuite) TestEndTurn_TurnCounter() {
	m := s.started([]cards.Card{sandStrike}, 30)

	s.Require().NoError(m.EndTurn(s.ctx))
	s.Equal(1, m.Turn())
	s.Equal(combatant.SideEnemy, m.Active())

	s.Require().NoError(m.EndTurn(s.ctx))
	s.Equal(2, m.Turn())
	s.Equal(combatant.SidePlayer, m.Active())
}

func (s *ManagerSuite) TestEndTurn_BlockResetPolicies() {
	tests := []struct {
		name   string
		policy config.BlockResetPolicy
		// player block after the player ends the turn, then after the
		// enemy hands control back
		afterOwnEnd, afterReturn int
	}{
		{name: "turn start", policy: config.BlockResetTurnStart, afterOwnEnd: 7, afterReturn: 0},
		{name: "turn end", policy: config.BlockResetTurnEnd, afterOwnEnd: 0, afterReturn: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.balance = config.DefaultBalance()
			s.balance.Turn.BlockReset = tt.policy
			m := s.started([]cards.Card{sandStrike}, 30)
			m.Player().GainBlock(7)

			s.Require().NoError(m.EndTurn(s.ctx))
			s.Equal(tt.afterOwnEnd, m.Player().Block())

			s.Require().NoError(m.EndTurn(s.ctx))
			s.Equal(tt.afterReturn, m.Player().Block())
		})
	}
}

func (s *ManagerSuite) TestEndTurn_RefillsPlayerHand() {
	hand := []cards.Card{sandStrike, sandStrike, sandStrike, sandStrike, sandStrike, sandStrike, sandStrike}
	m := s.started(hand, 100)
	s.Len(m.Player().Deck.Hand(), 5)

	s.Require().NoError(m.PlayCard(s.ctx, combatant.SidePlayer, m.Player().Deck.Hand()[0]))
	s.Len(m.Player().Deck.Hand(), 4)

	s.Require().NoError(m.EndTurn(s.ctx))
	s.Require().NoError(m.EndTurn(s.ctx))
	s.Len(m.Player().Deck.Hand(), 5)
}

func (s *ManagerSuite) TestNextIntent_Weighting() {
	tests := []struct {
		name   string
		health int
		roll   int
		want   string
	}{
		// healthy: bite 1.2, harden 1.0
		{name: "healthy low roll", health: 30, roll: 1200, want: "scarab_bite"},
		{name: "healthy high roll", health: 30, roll: 1201, want: "chitin_harden"},
		// hurt: bite 1.0, harden 1.5
		{name: "hurt low roll", health: 5, roll: 1000, want: "scarab_bite"},
		{name: "hurt high roll", health: 5, roll: 1001, want: "chitin_harden"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			m := s.started([]cards.Card{sandStrike}, 30)
			m.Enemy().TakeDamage(30 - tt.health)
			s.roller.SetRolls([]int{tt.roll})

			card, ok, err := m.NextIntent()
			s.Require().NoError(err)
			s.Require().True(ok)
			s.Equal(tt.want, card.ID)
		})
	}
}

func (s *ManagerSuite) TestNextIntent_NothingAffordable() {
	m := s.started([]cards.Card{sandStrike}, 30)
	m.Enemy().Sand.SetSand(0)

	_, ok, err := m.NextIntent()
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ManagerSuite) TestTakeEnemyTurn() {
	m := s.started([]cards.Card{sandStrike}, 30)

	err := m.TakeEnemyTurn(s.ctx)
	s.True(duaterr.Is(err, duaterr.CodeWrongPhase))

	s.Require().NoError(m.EndTurn(s.ctx))
	s.roller.SetRolls([]int{1})

	s.Require().NoError(m.TakeEnemyTurn(s.ctx))
	s.Equal(26, m.Player().Health())
	s.Equal(1, m.Enemy().Sand.Current())
	s.Equal(combat.PhasePlayerTurn, m.Phase())
	s.Equal(2, m.Turn())
}

func (s *ManagerSuite) TestAbort() {
	m := s.started([]cards.Card{sandStrike}, 30)
	m.Player().GainBlock(4)

	m.Abort(s.ctx)
	s.Equal(combat.PhaseAborted, m.Phase())
	s.Zero(m.Player().Block())

	err := m.EndTurn(s.ctx)
	s.True(duaterr.Is(err, duaterr.CodeWrongPhase))

	// a second abort is a no-op
	m.Abort(s.ctx)
	s.Len(s.recorder.OfType(events.EventTypeCombatEnded), 1)
}

func (s *ManagerSuite) TestDivinitiesArePerCombat() {
	a := s.newManager(nil, 30)
	b := s.newManager(nil, 30)

	s.Require().NoError(a.Divinities().Register("ra", func(context.Context, *combatant.Combatant, *combatant.Combatant) ([]cards.Effect, error) {
		return nil, nil
	}))
	s.True(a.Divinities().Has("ra"))
	s.False(b.Divinities().Has("ra"))
}

type snapshotListener struct {
	manager *combat.Manager
	seen    []combat.Snapshot
}

func (l *snapshotListener) HandleEvent(events.Event) error {
	l.seen = append(l.seen, l.manager.Snapshot())
	return nil
}

func (l *snapshotListener) Priority() int { return 500 }
func (l *snapshotListener) ID() string    { return "hud" }

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}
