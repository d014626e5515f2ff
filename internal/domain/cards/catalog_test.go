package cards_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testCatalog = `
cards:
  - id: strike
    name: Strike
    cost: 1
    rarity: common
    effects:
      - {kind: DAMAGE, magnitude: 6, target: enemy}
  - id: guard
    name: Guard
    cost: 1
    rarity: common
    effects:
      - {kind: BLOCK, magnitude: 5, target: self}
  - id: meteor
    name: Meteor
    cost: 5
    rarity: rare
    effects:
      - {kind: DAMAGE, magnitude: 30, target: enemy}
  - id: glitch
    name: Glitch
    cost: 0
    rarity: rare
    effects:
      - {kind: TELEPORT, target: self}
      - {kind: CHANNEL_DIVINITY, param: wrath_of_set, target: self}
enemies:
  - id: rat
    name: Rat
    health: 10
    intents:
      - {card: strike, weight: 1}
player:
  name: Hero
  health: 40
  deck: [strike, strike, guard, strike+]
`

type CatalogSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *cards.Catalog
}

func (s *CatalogSuite) SetupTest() {
	s.ctx = context.Background()

	var err error
	s.catalog, err = cards.ParseCatalog([]byte(testCatalog))
	s.Require().NoError(err)
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestCardLookup() {
	card, err := s.catalog.Card(s.ctx, "strike")
	s.Require().NoError(err)
	s.Equal("Strike", card.Name)

	up, err := s.catalog.Card(s.ctx, "strike+")
	s.Require().NoError(err)
	s.True(up.Upgraded)
	s.Equal(9, up.Effects[0].Magnitude)

	_, err = s.catalog.Card(s.ctx, "nope")
	s.True(duaterr.IsNotFound(err))
}

func (s *CatalogSuite) TestDiscoverFilters() {
	pool, err := s.catalog.Discover(s.ctx, cards.DiscoverFilter{Rarity: cards.RarityCommon})
	s.Require().NoError(err)
	s.Equal([]string{"strike", "guard"}, ids(pool))

	pool, err = s.catalog.Discover(s.ctx, cards.DiscoverFilter{MaxCost: 1, Exclude: []string{"guard"}})
	s.Require().NoError(err)
	s.Equal([]string{"strike", "glitch"}, ids(pool))

	pool, err = s.catalog.Discover(s.ctx, cards.DiscoverFilter{Rarity: cards.RarityLegendary})
	s.Require().NoError(err)
	s.Empty(pool)
}

func (s *CatalogSuite) TestStarterDeck() {
	deck, err := s.catalog.StarterDeck(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"strike", "strike", "guard", "strike+"}, ids(deck))
	s.Equal(40, s.catalog.Player().Health)
}

func (s *CatalogSuite) TestEnemies() {
	rat, err := s.catalog.Enemy("rat")
	s.Require().NoError(err)
	s.Equal(10, rat.Health)
	s.Equal([]string{"rat"}, s.catalog.EnemyIDs())

	_, err = s.catalog.Enemy("dragon")
	s.True(duaterr.IsNotFound(err))
}

func (s *CatalogSuite) TestLint() {
	problems := s.catalog.Lint(func(name string) bool { return name == "sand_mastery" })
	s.Require().Len(problems, 2)
	s.True(duaterr.Is(problems[0], duaterr.CodeUnknownEffect))
	s.True(duaterr.Is(problems[1], duaterr.CodeUnimplementedDivinity))
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate card", "cards:\n  - {id: a, name: A, cost: 1}\n  - {id: a, name: A, cost: 1}\n"},
		{"cost over six", "cards:\n  - {id: a, name: A, cost: 9}\n"},
		{"enemy intent missing", "enemies:\n  - {id: e, name: E, health: 5, intents: [{card: zap, weight: 1}]}\n"},
		{"enemy without intents", "enemies:\n  - {id: e, name: E, health: 5}\n"},
		{"starter card missing", "player: {name: P, health: 5, deck: [ghost]}\n"},
		{"not yaml", "cards: [:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cards.ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
			assert.True(t, duaterr.IsInvalidArgument(err))
		})
	}
}

func TestLoadCatalog_ShippedContent(t *testing.T) {
	catalog, err := cards.LoadCatalog("../../../content/catalog.yaml")
	require.NoError(t, err)

	assert.NotZero(t, catalog.Len())
	assert.NotEmpty(t, catalog.EnemyIDs())

	problems := catalog.Lint(func(name string) bool { return name == "sand_mastery" })
	assert.Empty(t, problems)

	deck, err := catalog.StarterDeck(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, deck)
}

func ids(cs []cards.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
