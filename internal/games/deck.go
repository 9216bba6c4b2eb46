package games

import "casino-hub/core/internal/rng"

// Deck is an ordered shoe of cards, consumed front to back after a
// shuffle. No card repeats within one deck instance.
type Deck struct {
	Game  string `json:"game"`
	Cards []Card `json:"cards"`
}

// NewDeck returns a fresh 52-card deck shuffled with an unbiased
// Fisher-Yates pass over the injected source. The game tag is carried
// into dealing errors.
func NewDeck(game string, src rng.Source) *Deck {
	cards := make([]Card, len(fullDeck))
	copy(cards, fullDeck[:])
	for i := len(cards) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{Game: game, Cards: cards}
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// Draw removes and returns the next n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.Cards) {
		return nil, &InsufficientCardsError{Game: d.Game, Requested: n, Remaining: len(d.Cards)}
	}
	cards := d.Cards[:n:n]
	d.Cards = d.Cards[n:]
	return cards, nil
}

// DrawOne removes and returns the next card.
func (d *Deck) DrawOne() (Card, error) {
	cards, err := d.Draw(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}
