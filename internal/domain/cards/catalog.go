package cards

import (
	"context"
	"os"
	"sort"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"gopkg.in/yaml.v3"
)

// DiscoverFilter narrows the pool DISCOVER_CARD draws from
type DiscoverFilter struct {
	Rarity  Rarity
	MaxCost int
	Exclude []string
}

// Intent is one weighted action an AI-controlled combatant can take
type Intent struct {
	CardID string  `yaml:"card"`
	Weight float64 `yaml:"weight"`
}

// EnemyTemplate describes an AI-controlled combatant
type EnemyTemplate struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Health  int      `yaml:"health"`
	Intents []Intent `yaml:"intents"`
}

// PlayerTemplate describes the player's starting combatant
type PlayerTemplate struct {
	Name   string   `yaml:"name"`
	Health int      `yaml:"health"`
	Deck   []string `yaml:"deck"`
}

type catalogFile struct {
	Cards   []Card          `yaml:"cards"`
	Enemies []EnemyTemplate `yaml:"enemies"`
	Player  PlayerTemplate  `yaml:"player"`
}

// Catalog is the read-only content set: every card template, enemy and the
// starter deck. It serves as the collection collaborator during combat.
type Catalog struct {
	cards   map[string]Card
	order   []string
	enemies map[string]EnemyTemplate
	player  PlayerTemplate
	bonus   UpgradeBonus
}

// CatalogOption configures a Catalog
type CatalogOption func(*Catalog)

// WithUpgradeBonus overrides the bonus used for "+" card lookups
func WithUpgradeBonus(b UpgradeBonus) CatalogOption {
	return func(c *Catalog) {
		c.bonus = b
	}
}

// LoadCatalog reads a catalog file
func LoadCatalog(path string, opts ...CatalogOption) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, duaterr.Wrapf(err, "read catalog %s", path)
	}
	return ParseCatalog(data, opts...)
}

// ParseCatalog builds a catalog from YAML
func ParseCatalog(data []byte, opts ...CatalogOption) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, duaterr.WrapWithCode(err, duaterr.CodeInvalidArgument, "parse catalog")
	}
	return NewCatalog(file.Cards, file.Enemies, file.Player, opts...)
}

// NewCatalog validates and indexes content
func NewCatalog(cards []Card, enemies []EnemyTemplate, player PlayerTemplate, opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		cards:   make(map[string]Card, len(cards)),
		enemies: make(map[string]EnemyTemplate, len(enemies)),
		player:  player,
		bonus:   DefaultUpgradeBonus(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, duaterr.InvalidArgumentf("duplicate card id %s", card.ID)
		}
		c.cards[card.ID] = card
		c.order = append(c.order, card.ID)
	}

	for _, enemy := range enemies {
		if enemy.ID == "" || enemy.Health <= 0 {
			return nil, duaterr.InvalidArgumentf("enemy %q needs an id and positive health", enemy.ID)
		}
		if len(enemy.Intents) == 0 {
			return nil, duaterr.InvalidArgumentf("enemy %s has no intents", enemy.ID)
		}
		for _, in := range enemy.Intents {
			if _, ok := c.cards[in.CardID]; !ok {
				return nil, duaterr.InvalidArgumentf("enemy %s: unknown intent card %s", enemy.ID, in.CardID)
			}
		}
		c.enemies[enemy.ID] = enemy
	}

	for _, id := range player.Deck {
		if _, ok := c.cards[BaseID(id)]; !ok {
			return nil, duaterr.InvalidArgumentf("starter deck: unknown card %s", id)
		}
	}

	return c, nil
}

// Card looks up a template by id. "<id>+" resolves to the upgraded variant.
func (c *Catalog) Card(_ context.Context, id string) (Card, error) {
	base, ok := c.cards[BaseID(id)]
	if !ok {
		return Card{}, duaterr.NotFoundf("card %s not found", id)
	}
	if id != base.ID {
		return base.UpgradeWith(c.bonus), nil
	}
	return base, nil
}

// Discover returns every base template matching filter, in catalog order
func (c *Catalog) Discover(_ context.Context, filter DiscoverFilter) ([]Card, error) {
	excluded := make(map[string]bool, len(filter.Exclude))
	for _, id := range filter.Exclude {
		excluded[id] = true
	}

	var pool []Card
	for _, id := range c.order {
		card := c.cards[id]
		if excluded[id] {
			continue
		}
		if filter.Rarity != "" && card.Rarity != filter.Rarity {
			continue
		}
		if filter.MaxCost > 0 && card.Cost > filter.MaxCost {
			continue
		}
		pool = append(pool, card)
	}
	return pool, nil
}

// Upgrade returns the upgraded variant of card using the catalog's bonus
func (c *Catalog) Upgrade(card Card) Card {
	return card.UpgradeWith(c.bonus)
}

func (c *Catalog) Enemy(id string) (EnemyTemplate, error) {
	e, ok := c.enemies[id]
	if !ok {
		return EnemyTemplate{}, duaterr.NotFoundf("enemy %s not found", id)
	}
	return e, nil
}

// EnemyIDs returns every enemy id, sorted
func (c *Catalog) EnemyIDs() []string {
	ids := make([]string, 0, len(c.enemies))
	for id := range c.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Player() PlayerTemplate {
	return c.player
}

// StarterDeck returns fresh copies of the player's starting cards
func (c *Catalog) StarterDeck(ctx context.Context) ([]Card, error) {
	deck := make([]Card, 0, len(c.player.Deck))
	for _, id := range c.player.Deck {
		card, err := c.Card(ctx, id)
		if err != nil {
			return nil, err
		}
		deck = append(deck, card)
	}
	return deck, nil
}

// Len returns the number of base templates
func (c *Catalog) Len() int {
	return len(c.order)
}

// Lint reports content the engine would reject at play time: unknown effect
// kinds and divinities missing from known.
func (c *Catalog) Lint(knownDivinity func(name string) bool) []error {
	var problems []error
	for _, id := range c.order {
		for i, e := range c.cards[id].Effects {
			if !e.Kind.IsKnown() {
				problems = append(problems, duaterr.UnknownEffectf("card %s effect %d: unknown kind %q", id, i, e.Kind))
				continue
			}
			if e.Kind == EffectChannelDivinity && knownDivinity != nil && !knownDivinity(e.Param) {
				problems = append(problems, duaterr.UnimplementedDivinityf("card %s effect %d: divinity %q not registered", id, i, e.Param))
			}
		}
	}
	return problems
}
