// Package simulation plays batches of headless combats with a greedy player
// policy. It is how balance and content changes get checked before release.
package simulation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	"github.com/KirkDiggler/duat-combat/internal/config"
	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/domain/combatant"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/services/combat"
	"github.com/KirkDiggler/duat-combat/internal/services/profile"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
	"golang.org/x/sync/errgroup"
)

// FrameDelta is the simulated time between two ticks
const FrameDelta = 16 * time.Millisecond

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Config describes a batch
type Config struct {
	Catalog *cards.Catalog
	Balance *config.Balance

	// Profiles is optional. When set, permanent upgrades and gold changes
	// made during the batch are written to ProfileID.
	Profiles    profile.Service
	ProfileID   string
	VictoryGold int

	// EnemyID fights every combat; empty rotates through the catalog
	EnemyID string

	Combats   int
	Workers   int
	MaxFrames int
	Seed      int64
}

// Outcome is the result of one simulated combat
type Outcome struct {
	Index         int          `json:"index"`
	EnemyID       string       `json:"enemy_id"`
	Phase         combat.Phase `json:"phase"`
	Turns         int          `json:"turns"`
	Frames        int          `json:"frames"`
	CardsPlayed   int          `json:"cards_played"`
	PlayerHealth  int          `json:"player_health"`
	ContentErrors int          `json:"content_errors"`
}

// Report aggregates a batch
type Report struct {
	Combats         int       `json:"combats"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Timeouts        int       `json:"timeouts"`
	AvgTurns        float64   `json:"avg_turns"`
	ContentFailures int       `json:"content_failures"`
	Outcomes        []Outcome `json:"outcomes"`
}

func (r *Report) String() string {
	return fmt.Sprintf("%d combats: %d wins, %d losses, %d timeouts, %.1f avg turns, %d content failures",
		r.Combats, r.Wins, r.Losses, r.Timeouts, r.AvgTurns, r.ContentFailures)
}

// Run plays cfg.Combats combats on at most cfg.Workers goroutines. Each
// combat gets its own roller seeded from cfg.Seed and its index, so a
// batch replays identically whatever the worker count.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Catalog == nil {
		return nil, duaterr.InvalidArgument("catalog is required")
	}
	if cfg.Balance == nil {
		cfg.Balance = config.DefaultBalance()
	}
	if cfg.Combats < 1 {
		return nil, duaterr.InvalidArgumentf("combats must be positive, got %d", cfg.Combats)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxFrames < 1 {
		cfg.MaxFrames = 20000
	}

	enemies := cfg.Catalog.EnemyIDs()
	if cfg.EnemyID != "" {
		enemies = []string{cfg.EnemyID}
	}
	if len(enemies) == 0 {
		return nil, duaterr.InvalidArgument("catalog has no enemies")
	}

	bonusSand := 0
	if cfg.Profiles != nil {
		p, err := cfg.Profiles.Load(ctx, cfg.ProfileID)
		if err != nil {
			return nil, err
		}
		bonusSand = p.BonusMaxSand
	}

	outcomes := make([]Outcome, cfg.Combats)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Combats; i++ {
		g.Go(func() error {
			out, err := runOne(gctx, cfg, i, enemies[i%len(enemies)], bonusSand)
			if err != nil {
				return fmt.Errorf("combat %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := summarize(outcomes)
	log.Printf("[SIM] %s", report)
	return report, nil
}

func runOne(ctx context.Context, cfg Config, index int, enemyID string, bonusSand int) (Outcome, error) {
	roller := dice.NewSeededRoller(cfg.Seed + int64(index))
	clk := clock.NewFake(epoch)

	var ledger combatant.Profile
	if cfg.Profiles != nil {
		ledger = cfg.Profiles.Ledger(cfg.ProfileID)
	}

	player, err := combat.NewPlayer(ctx, combat.PlayerSetup{
		Catalog:      cfg.Catalog,
		Profile:      ledger,
		Roller:       roller,
		IDs:          uuid.NewSequenceGenerator(fmt.Sprintf("sim%d-card", index)),
		BonusMaxSand: bonusSand,
	}, cfg.Balance, clk.Now())
	if err != nil {
		return Outcome{}, err
	}

	enemy, err := combat.NewEnemy(ctx, cfg.Catalog, enemyID, cfg.Balance, clk.Now())
	if err != nil {
		return Outcome{}, err
	}

	m := combat.NewManager(&combat.ManagerConfig{
		Player:  player,
		Enemy:   enemy,
		Balance: cfg.Balance,
		Clock:   clk,
		Roller:  roller,
		IDs:     uuid.NewSequenceGenerator(fmt.Sprintf("sim%d", index)),
	})

	out := Outcome{Index: index, EnemyID: enemyID}
	if err := m.Start(ctx); err != nil {
		return out, err
	}

	for out.Frames = 0; out.Frames < cfg.MaxFrames && !m.Phase().IsTerminal(); out.Frames++ {
		if err := ctx.Err(); err != nil {
			m.Abort(ctx)
			return out, err
		}

		m.Tick(clk.Advance(FrameDelta))

		err = nil
		switch m.Phase() {
		case combat.PhasePlayerTurn:
			err = playerStep(ctx, m, &out)
		case combat.PhaseEnemyTurn:
			err = enemyStep(ctx, m)
		}
		if err != nil {
			if !duaterr.IsContentIntegrity(err) {
				return out, err
			}
			out.ContentErrors++
		}
	}

	if !m.Phase().IsTerminal() {
		m.Abort(ctx)
	}

	out.Phase = m.Phase()
	out.Turns = m.Turn()
	out.PlayerHealth = m.Player().Health()

	if out.Phase == combat.PhaseVictory && cfg.Profiles != nil && cfg.VictoryGold > 0 {
		if err := cfg.Profiles.Reward(ctx, cfg.ProfileID, cfg.VictoryGold); err != nil {
			return out, err
		}
	}

	return out, nil
}

func summarize(outcomes []Outcome) *Report {
	r := &Report{Combats: len(outcomes), Outcomes: outcomes}
	turns := 0
	for _, o := range outcomes {
		switch o.Phase {
		case combat.PhaseVictory:
			r.Wins++
		case combat.PhaseDefeat:
			r.Losses++
		default:
			r.Timeouts++
		}
		turns += o.Turns
		if o.ContentErrors > 0 {
			r.ContentFailures++
		}
	}
	if len(outcomes) > 0 {
		r.AvgTurns = float64(turns) / float64(len(outcomes))
	}
	return r
}
