package simulation_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/repositories/profiles"
	"github.com/KirkDiggler/duat-combat/internal/services/combat"
	"github.com/KirkDiggler/duat-combat/internal/services/profile"
	"github.com/KirkDiggler/duat-combat/internal/services/simulation"
	"github.com/KirkDiggler/duat-combat/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PlayerBeatsTrainingDummy(t *testing.T) {
	report, err := simulation.Run(context.Background(), simulation.Config{
		Catalog: testutils.CreateTestCatalog(t),
		Combats: 6,
		Workers: 3,
		Seed:    7,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Combats)
	assert.Equal(t, 6, report.Wins)
	assert.Zero(t, report.Losses)
	assert.Zero(t, report.Timeouts)
	assert.Zero(t, report.ContentFailures)
	assert.Greater(t, report.AvgTurns, 0.0)

	for i, o := range report.Outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, "training_dummy", o.EnemyID)
		assert.Equal(t, combat.PhaseVictory, o.Phase)
		assert.Positive(t, o.CardsPlayed)
	}
}

func TestRun_ReplaysIdenticallyAcrossWorkerCounts(t *testing.T) {
	catalog := testutils.CreateTestCatalog(t)

	serial, err := simulation.Run(context.Background(), simulation.Config{
		Catalog: catalog, Combats: 5, Workers: 1, Seed: 42,
	})
	require.NoError(t, err)

	parallel, err := simulation.Run(context.Background(), simulation.Config{
		Catalog: catalog, Combats: 5, Workers: 5, Seed: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, serial.Outcomes, parallel.Outcomes)
}

func TestRun_RewardsProfile(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewInMemoryRepository(nil)
	svc := profile.NewService(&profile.ServiceConfig{Repository: repo})

	report, err := simulation.Run(ctx, simulation.Config{
		Catalog:     testutils.CreateTestCatalog(t),
		Profiles:    svc,
		ProfileID:   "sim",
		VictoryGold: 5,
		Combats:     4,
		Workers:     2,
		Seed:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 4, report.Wins)

	p, err := svc.Load(ctx, "sim")
	require.NoError(t, err)
	assert.Equal(t, 20, p.Gold)
}

func TestRun_CountsContentFailures(t *testing.T) {
	glitch := testutils.AttackCard("glitch", 1, 6)
	glitch.Effects = append(glitch.Effects, cards.Effect{Kind: "TELEPORT", Target: cards.TargetEnemy})

	catalog, err := cards.NewCatalog(
		[]cards.Card{glitch, testutils.AttackCard("swing", 1, 2)},
		[]cards.EnemyTemplate{{
			ID:      "dummy",
			Name:    "Dummy",
			Health:  18,
			Intents: []cards.Intent{{CardID: "swing", Weight: 1}},
		}},
		cards.PlayerTemplate{Name: "Tester", Health: 30, Deck: []string{"glitch", "glitch", "glitch"}},
	)
	require.NoError(t, err)

	report, err := simulation.Run(context.Background(), simulation.Config{
		Catalog: catalog,
		Combats: 3,
		Seed:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.ContentFailures)
	assert.Equal(t, 3, report.Wins)
	for _, o := range report.Outcomes {
		assert.Equal(t, 2, o.ContentErrors)
	}
}

func TestRun_FrameCapAborts(t *testing.T) {
	report, err := simulation.Run(context.Background(), simulation.Config{
		Catalog:   testutils.CreateTestCatalog(t),
		Combats:   2,
		MaxFrames: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Timeouts)
	for _, o := range report.Outcomes {
		assert.Equal(t, combat.PhaseAborted, o.Phase)
		assert.Equal(t, 1, o.Frames)
	}
}

func TestRun_Validation(t *testing.T) {
	_, err := simulation.Run(context.Background(), simulation.Config{Combats: 1})
	assert.True(t, duaterr.IsInvalidArgument(err))

	_, err = simulation.Run(context.Background(), simulation.Config{
		Catalog: testutils.CreateTestCatalog(t),
	})
	assert.True(t, duaterr.IsInvalidArgument(err))

	_, err = simulation.Run(context.Background(), simulation.Config{
		Catalog: testutils.CreateTestCatalog(t),
		Combats: 1,
		EnemyID: "nobody",
	})
	assert.True(t, duaterr.IsNotFound(err))
}
