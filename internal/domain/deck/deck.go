// Package deck keeps a combatant's draw pile, hand and discard pile.
package deck

import (
	"context"
	"log"

	"github.com/KirkDiggler/duat-combat/internal/dice"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/uuid"
)

const DefaultHandLimit = 10

// Config holds the collaborators a Deck needs
type Config struct {
	HandLimit int
	Roller    dice.Roller
	IDs       uuid.Generator
}

// Deck implements the hand/deck collaborator for one combatant
type Deck struct {
	draw      []cards.Card
	hand      []cards.Card
	discard   []cards.Card
	handLimit int
	roller    dice.Roller
	ids       uuid.Generator
}

// New shuffles cards into a fresh draw pile. Each copy gets its own UID.
func New(cfg Config, initial []cards.Card) (*Deck, error) {
	if cfg.Roller == nil {
		panic("roller is required")
	}
	if cfg.IDs == nil {
		cfg.IDs = uuid.NewGoogleUUIDGenerator()
	}
	if cfg.HandLimit <= 0 {
		cfg.HandLimit = DefaultHandLimit
	}

	d := &Deck{
		handLimit: cfg.HandLimit,
		roller:    cfg.Roller,
		ids:       cfg.IDs,
	}
	for _, c := range initial {
		d.draw = append(d.draw, d.stamp(c))
	}
	if err := d.shuffle(d.draw); err != nil {
		return nil, err
	}
	return d, nil
}

// Draw moves up to n cards into the hand, reshuffling the discard pile when
// the draw pile runs out. It returns fewer cards when both piles are empty
// or the hand is full.
func (d *Deck) Draw(ctx context.Context, n int) ([]cards.Card, error) {
	var drawn []cards.Card
	for i := 0; i < n; i++ {
		if len(d.hand) >= d.handLimit {
			break
		}
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			if err := d.ShuffleDiscardIntoDeck(ctx); err != nil {
				return drawn, err
			}
		}

		top := d.draw[0]
		d.draw = d.draw[1:]
		d.hand = append(d.hand, top)
		drawn = append(drawn, top)
	}
	return drawn, nil
}

// ShuffleDiscardIntoDeck moves the discard pile under the draw pile and
// shuffles the result
func (d *Deck) ShuffleDiscardIntoDeck(_ context.Context) error {
	if len(d.discard) == 0 {
		return nil
	}
	log.Printf("[DECK] Reshuffling %d discarded cards into draw pile", len(d.discard))
	d.draw = append(d.draw, d.discard...)
	d.discard = nil
	return d.shuffle(d.draw)
}

// AddCard puts a new copy in the hand, or on the discard pile when the hand
// is full. The stamped copy is returned.
func (d *Deck) AddCard(_ context.Context, card cards.Card) (cards.Card, error) {
	card.UID = ""
	stamped := d.stamp(card)
	if len(d.hand) >= d.handLimit {
		d.discard = append(d.discard, stamped)
		return stamped, nil
	}
	d.hand = append(d.hand, stamped)
	return stamped, nil
}

// ReplaceCard swaps the copy identified by oldUID, wherever it is, for next.
// The replacement keeps the old UID.
func (d *Deck) ReplaceCard(_ context.Context, oldUID string, next cards.Card) error {
	for _, pile := range [][]cards.Card{d.hand, d.draw, d.discard} {
		for i := range pile {
			if pile[i].UID == oldUID {
				next.UID = oldUID
				pile[i] = next
				return nil
			}
		}
	}
	return duaterr.NotFoundf("card %s not in deck", oldUID)
}

// InHand returns the hand copy with uid
func (d *Deck) InHand(uid string) (cards.Card, bool) {
	for _, c := range d.hand {
		if c.UID == uid {
			return c, true
		}
	}
	return cards.Card{}, false
}

// Discard moves a played card from hand to the discard pile
func (d *Deck) Discard(_ context.Context, uid string) error {
	for i, c := range d.hand {
		if c.UID == uid {
			d.hand = append(d.hand[:i], d.hand[i+1:]...)
			d.discard = append(d.discard, c)
			return nil
		}
	}
	return duaterr.NotOwnedf("card %s not in hand", uid)
}

// DiscardHand empties the hand onto the discard pile
func (d *Deck) DiscardHand(_ context.Context) int {
	n := len(d.hand)
	d.discard = append(d.discard, d.hand...)
	d.hand = nil
	return n
}

// Hand returns a copy of the hand in draw order
func (d *Deck) Hand() []cards.Card {
	return append([]cards.Card(nil), d.hand...)
}

func (d *Deck) DrawPileSize() int {
	return len(d.draw)
}

func (d *Deck) DiscardPileSize() int {
	return len(d.discard)
}

func (d *Deck) HandLimit() int {
	return d.handLimit
}

func (d *Deck) stamp(c cards.Card) cards.Card {
	if c.UID == "" {
		c.UID = d.ids.New()
	}
	return c
}

func (d *Deck) shuffle(pile []cards.Card) error {
	return dice.Shuffle(d.roller, len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
}
