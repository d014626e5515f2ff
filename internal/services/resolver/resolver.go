// Package resolver turns card effects into combatant mutations, strictly in
// the order they are printed.
package resolver

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	"github.com/KirkDiggler/duat-combat/internal/domain/status"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/events"
)

const (
	// BlessingAegis negates the next damage instance its holder takes
	BlessingAegis = "aegis"

	// MaxDivinityDepth bounds divinities that channel other divinities
	MaxDivinityDepth = 8

	defaultDiscoverOffer = 3
)

// Gate decides whether an effect still runs. The combat manager uses it to
// skip enemy-targeted effects once the fight is over.
type Gate func(effect cards.Effect) bool

// Result counts what happened to a list of effects
type Result struct {
	Applied int
	Skipped int
}

// Config holds the resolver's collaborators
type Config struct {
	Divinities *DivinityRegistry
	Chooser    Chooser
	Publisher  events.Publisher
}

// Resolver applies effects. It holds no per-combat state besides its
// collaborators, so one resolver serves one combat.
type Resolver struct {
	divinities *DivinityRegistry
	chooser    Chooser
	publisher  events.Publisher
}

// New creates a resolver
func New(cfg *Config) *Resolver {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Divinities == nil {
		panic("divinity registry is required")
	}
	if cfg.Chooser == nil {
		panic("chooser is required")
	}
	if cfg.Publisher == nil {
		panic("publisher is required")
	}

	return &Resolver{
		divinities: cfg.Divinities,
		chooser:    cfg.Chooser,
		publisher:  cfg.Publisher,
	}
}

// Resolve applies effects in order. The first error aborts the remaining
// effects; the returned Result still counts what completed.
func (r *Resolver) Resolve(ctx context.Context, source, opponent *combatant.Combatant, effects []cards.Effect, allow Gate) (Result, error) {
	return r.resolve(ctx, source, opponent, effects, allow, 0)
}

// Apply applies a single effect
func (r *Resolver) Apply(ctx context.Context, source, opponent *combatant.Combatant, effect cards.Effect) error {
	_, err := r.resolve(ctx, source, opponent, []cards.Effect{effect}, nil, 0)
	return err
}

func (r *Resolver) resolve(ctx context.Context, source, opponent *combatant.Combatant, effects []cards.Effect, allow Gate, depth int) (Result, error) {
	var res Result
	for i, effect := range effects {
		if allow != nil && !allow(effect) {
			res.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		nested, err := r.apply(ctx, source, opponent, effect, allow, depth)
		res.Applied += nested.Applied
		res.Skipped += nested.Skipped
		if err != nil {
			return res, duaterr.Wrapf(err, "effect %d (%s)", i, effect.Kind)
		}
		res.Applied++
	}
	return res, nil
}

func (r *Resolver) apply(ctx context.Context, source, opponent *combatant.Combatant, e cards.Effect, allow Gate, depth int) (Result, error) {
	target := source
	if e.Target == cards.TargetEnemy {
		target = opponent
	}

	switch e.Kind {
	case cards.EffectDamage:
		r.damage(source, target, e.Magnitude)

	case cards.EffectHeal:
		healed := target.Heal(e.Magnitude)
		r.publish(events.EventTypeHealed, source, target, healed, "")

	case cards.EffectBlock:
		amount := round(float64(e.Magnitude) * (1 + source.Statuses.DexterityFactor()))
		gained := target.GainBlock(amount)
		r.publish(events.EventTypeBlockGained, source, target, gained, "")

	case cards.EffectApplyVulnerable:
		return Result{}, r.applyStatus(source, target, status.KindVulnerable, e)
	case cards.EffectApplyWeak:
		return Result{}, r.applyStatus(source, target, status.KindWeak, e)
	case cards.EffectApplyStrength:
		return Result{}, r.applyStatus(source, target, status.KindStrength, e)
	case cards.EffectApplyDexterity:
		return Result{}, r.applyStatus(source, target, status.KindDexterity, e)

	case cards.EffectGainSand:
		gained := target.Sand.Grant(e.Magnitude)
		r.publish(events.EventTypeSandChanged, source, target, gained, "granted")

	case cards.EffectPermanentSandIncrease:
		return Result{}, r.permanentSand(ctx, source, target, e.Magnitude)

	case cards.EffectMaxHealthIncrease:
		added := target.IncreaseMaxHealth(e.Magnitude)
		r.publish(events.EventTypeMaxHealthIncreased, source, target, added, "")

	case cards.EffectDrawCards:
		return Result{}, r.draw(ctx, source, target, e.Magnitude)

	case cards.EffectBlessing:
		if e.Param == "" {
			return Result{}, duaterr.InvalidArgument("blessing without a name")
		}
		if target.SetBlessing(e.Param) {
			r.publish(events.EventTypeBlessingSet, source, target, 0, e.Param)
		}

	case cards.EffectChannelDivinity:
		return r.channel(ctx, source, opponent, e, allow, depth)

	case cards.EffectDiscoverCard:
		return Result{}, r.discover(ctx, source, target, e)

	case cards.EffectGainCard:
		return Result{}, r.gainCard(ctx, source, target, e)

	case cards.EffectUpgradeCard:
		return Result{}, r.upgradeCard(ctx, source, target, e.Param)

	case cards.EffectLoseGold:
		return Result{}, r.loseGold(ctx, source, target, e.Magnitude)

	default:
		return Result{}, duaterr.UnknownEffectf("unknown effect kind %q", e.Kind).
			WithMeta("kind", string(e.Kind))
	}

	return Result{}, nil
}

// DamageAgainst computes the final damage source would deal to target for a
// printed base, before block and blessings
func DamageAgainst(source, target *combatant.Combatant, base int) int {
	final := float64(base) *
		target.Statuses.VulnerableMultiplier() *
		source.Statuses.WeakMultiplier() *
		(1 + source.Statuses.StrengthFactor())
	return round(final)
}

func (r *Resolver) damage(source, target *combatant.Combatant, base int) {
	final := DamageAgainst(source, target, base)
	if final > 0 && target.ConsumeBlessing(BlessingAegis) {
		r.publish(events.EventTypeBlessingConsumed, source, target, final, BlessingAegis)
		return
	}

	absorbed, lost := target.TakeDamage(final)
	detail := ""
	if absorbed > 0 {
		detail = fmt.Sprintf("%d blocked", absorbed)
	}
	r.publish(events.EventTypeDamageDealt, source, target, lost, detail)
}

func (r *Resolver) applyStatus(source, target *combatant.Combatant, kind status.Kind, e cards.Effect) error {
	stacks := max(e.Magnitude, 1)
	entry, err := target.Statuses.Apply(kind, stacks, e.Duration)
	if err != nil {
		return err
	}
	r.publish(events.EventTypeStatusApplied, source, target, entry.Stacks, string(kind))
	return nil
}

func (r *Resolver) permanentSand(ctx context.Context, source, target *combatant.Combatant, amount int) error {
	applied := target.Sand.IncreaseMax(amount)
	if applied == 0 {
		log.Printf("[RESOLVER] %s is at the sand cap, permanent increase ignored", target.ID)
		return nil
	}
	r.publish(events.EventTypeMaxSandIncreased, source, target, applied, "")

	if target.Profile == nil {
		return nil
	}
	if err := target.Profile.ApplyPermanentSandIncrease(ctx, applied); err != nil {
		return duaterr.Wrap(err, "failed to persist sand increase")
	}
	return nil
}

func (r *Resolver) draw(ctx context.Context, source, target *combatant.Combatant, n int) error {
	if target.Deck == nil || n <= 0 {
		return nil
	}
	drawn, err := target.Deck.Draw(ctx, n)
	if err != nil {
		return duaterr.Wrap(err, "failed to draw")
	}
	r.publish(events.EventTypeCardsDrawn, source, target, len(drawn), "")
	return nil
}

func (r *Resolver) channel(ctx context.Context, caster, opponent *combatant.Combatant, e cards.Effect, allow Gate, depth int) (Result, error) {
	fn, ok := r.divinities.Lookup(e.Param)
	if !ok {
		return Result{}, duaterr.UnimplementedDivinityf("divinity %q is not registered", e.Param).
			WithMeta("divinity", e.Param)
	}
	if depth >= MaxDivinityDepth {
		return Result{}, duaterr.Internalf("divinity %s nested deeper than %d", e.Param, MaxDivinityDepth)
	}

	r.publish(events.EventTypeDivinityChanneled, caster, caster, 0, e.Param)

	followUps, err := fn(ctx, caster, opponent)
	if err != nil {
		return Result{}, duaterr.Wrapf(err, "divinity %s failed", e.Param)
	}
	return r.resolve(ctx, caster, opponent, followUps, allow, depth+1)
}

func (r *Resolver) discover(ctx context.Context, source, target *combatant.Combatant, e cards.Effect) error {
	if target.Collection == nil || target.Deck == nil {
		return nil
	}

	pool, err := target.Collection.Discover(ctx, cards.DiscoverFilter{Rarity: cards.Rarity(e.Param)})
	if err != nil {
		return duaterr.Wrap(err, "failed to build discover pool")
	}
	if len(pool) == 0 {
		log.Printf("[RESOLVER] Discover pool %q is empty", e.Param)
		return nil
	}

	offer := e.Magnitude
	if offer <= 0 {
		offer = defaultDiscoverOffer
	}
	chosen, err := r.chooser.Choose(ctx, pool, offer)
	if err != nil {
		return duaterr.Wrap(err, "failed to choose discovered card")
	}

	added, err := target.Deck.AddCard(ctx, chosen)
	if err != nil {
		return duaterr.Wrap(err, "failed to add discovered card")
	}
	r.publish(events.EventTypeCardGained, source, target, 1, added.ID)
	return nil
}

func (r *Resolver) gainCard(ctx context.Context, source, target *combatant.Combatant, e cards.Effect) error {
	if target.Collection == nil || target.Deck == nil {
		return nil
	}

	card, err := target.Collection.Card(ctx, e.Param)
	if err != nil {
		return duaterr.Wrapf(err, "failed to gain card %s", e.Param)
	}

	copies := max(e.Magnitude, 1)
	for i := 0; i < copies; i++ {
		if _, err := target.Deck.AddCard(ctx, card); err != nil {
			return duaterr.Wrapf(err, "failed to add card %s", e.Param)
		}
	}
	r.publish(events.EventTypeCardGained, source, target, copies, card.ID)
	return nil
}

// upgradeCard upgrades the first matching card in hand. An empty id matches
// any card that is not upgraded yet.
func (r *Resolver) upgradeCard(ctx context.Context, source, target *combatant.Combatant, id string) error {
	if target.Deck == nil {
		return nil
	}

	var found *cards.Card
	for _, c := range target.Deck.Hand() {
		if c.Upgraded {
			continue
		}
		if id == "" || cards.BaseID(c.ID) == id {
			found = &c
			break
		}
	}
	if found == nil {
		return nil
	}

	upgraded := found.Upgrade()
	if target.Collection != nil {
		fromCatalog, err := target.Collection.Card(ctx, found.ID+cards.UpgradeSuffix)
		if err != nil {
			return duaterr.Wrapf(err, "failed to look up upgrade of %s", found.ID)
		}
		upgraded = fromCatalog
	}

	if err := target.Deck.ReplaceCard(ctx, found.UID, upgraded); err != nil {
		return duaterr.Wrapf(err, "failed to replace %s", found.UID)
	}
	r.publish(events.EventTypeCardUpgraded, source, target, 1, upgraded.ID)
	return nil
}

func (r *Resolver) loseGold(ctx context.Context, source, target *combatant.Combatant, amount int) error {
	if target.Profile == nil || amount <= 0 {
		return nil
	}
	balance, err := target.Profile.ApplyGoldDelta(ctx, -amount)
	if err != nil {
		return duaterr.Wrap(err, "failed to apply gold loss")
	}
	r.publish(events.EventTypeGoldChanged, source, target, -amount, fmt.Sprintf("balance %d", balance))
	return nil
}

func (r *Resolver) publish(t events.EventType, actor, target *combatant.Combatant, amount int, detail string) {
	r.publisher.Publish(events.Event{
		Type:   t,
		Actor:  actor.ID,
		Target: target.ID,
		Amount: amount,
		Detail: detail,
	})
}

func round(v float64) int {
	return int(math.Round(v))
}
