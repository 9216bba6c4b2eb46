package games

import (
	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// Blackjack round states. A round moves Betting -> PlayerTurn ->
// DealerTurn -> Settled; naturals and busts jump straight to Settled.
const (
	BlackjackBetting    = "betting"
	BlackjackPlayerTurn = "player_turn"
	BlackjackDealerTurn = "dealer_turn"
	BlackjackSettled    = "settled"
)

// dealerStandScore: dealer stands at 17 or higher, soft or hard.
const dealerStandScore = 17

// BlackjackEngine resolves blackjack rounds against a per-round
// shuffled deck. Payouts: natural 3:2, ordinary win 1:1, push returns
// the stake, loss forfeits it.
type BlackjackEngine struct {
	payouts map[string]decimal.Decimal
}

// DefaultBlackjackPayouts is the standard payout table keyed by
// classification.
func DefaultBlackjackPayouts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"blackjack":   decimal.RequireFromString("1.5"),
		"win":         decimal.NewFromInt(1),
		"dealer_bust": decimal.NewFromInt(1),
	}
}

// NewBlackjackEngine validates the payout table and returns the
// engine.
func NewBlackjackEngine(payouts map[string]decimal.Decimal) (*BlackjackEngine, error) {
	if len(payouts) == 0 {
		return nil, &InvalidTableError{Game: "blackjack", Table: "payout", Reason: "empty"}
	}
	for _, key := range []string{"blackjack", "win", "dealer_bust"} {
		m, ok := payouts[key]
		if !ok {
			return nil, &InvalidTableError{Game: "blackjack", Table: "payout", Reason: "missing entry " + key}
		}
		if m.Sign() <= 0 {
			return nil, &InvalidTableError{Game: "blackjack", Table: "payout", Reason: "entry " + key + " must be > 0"}
		}
	}
	return &BlackjackEngine{payouts: payouts}, nil
}

// Spec returns metadata about the Blackjack game.
func (e *BlackjackEngine) Spec() GameSpec {
	return GameSpec{ID: "blackjack", Name: "Blackjack"}
}

// BlackjackRound is the explicit, serializable state of one round.
// Callers round-trip it between actions; the engine holds nothing.
type BlackjackRound struct {
	State       string       `json:"state"`
	Stake       int64        `json:"stake"`
	Deck        *Deck        `json:"deck"`
	PlayerCards []Card       `json:"playerCards"`
	DealerCards []Card       `json:"dealerCards"`
	Result      *RoundResult `json:"result,omitempty"`
}

// PlayerScore is the best blackjack value of the player hand.
func (r *BlackjackRound) PlayerScore() int {
	return BlackjackHandValue(r.PlayerCards)
}

// DealerScore is the best blackjack value of the dealer hand.
func (r *BlackjackRound) DealerScore() int {
	return BlackjackHandValue(r.DealerCards)
}

func blackjackNatural(cards []Card) bool {
	return len(cards) == 2 && BlackjackHandValue(cards) == 21
}

// Start deals two cards each to player and dealer from a fresh shuffled
// deck. The dealer's second card is hidden by the presentation layer,
// not by the engine. Naturals settle immediately.
func (e *BlackjackEngine) Start(stake int64, src rng.Source) (*BlackjackRound, error) {
	return e.StartWithDeck(stake, NewDeck("blackjack", src))
}

// StartWithDeck deals from a prepared shoe.
func (e *BlackjackEngine) StartWithDeck(stake int64, deck *Deck) (*BlackjackRound, error) {
	if err := validateStake("blackjack", stake); err != nil {
		return nil, err
	}

	round := &BlackjackRound{
		State: BlackjackBetting,
		Stake: stake,
		Deck:  deck,
	}

	// Standard deal order: player, dealer, player, dealer.
	cards, err := deck.Draw(4)
	if err != nil {
		return nil, err
	}
	round.PlayerCards = []Card{cards[0], cards[2]}
	round.DealerCards = []Card{cards[1], cards[3]}
	round.State = BlackjackPlayerTurn

	switch {
	case blackjackNatural(round.PlayerCards) && blackjackNatural(round.DealerCards):
		e.settle(round, "push")
	case blackjackNatural(round.PlayerCards):
		e.settle(round, "blackjack")
	case blackjackNatural(round.DealerCards):
		e.settle(round, "dealer_blackjack")
	}

	return round, nil
}

// Hit draws one card to the player. Score over 21 is an immediate
// bust; exactly 21 stands automatically.
func (e *BlackjackEngine) Hit(round *BlackjackRound) error {
	if round.State != BlackjackPlayerTurn {
		return &InvalidStateTransitionError{Game: "blackjack", Action: "hit", State: round.State}
	}

	card, err := round.Deck.DrawOne()
	if err != nil {
		return err
	}
	round.PlayerCards = append(round.PlayerCards, card)

	switch score := round.PlayerScore(); {
	case score > 21:
		e.settle(round, "bust")
	case score == 21:
		return e.Stand(round)
	}
	return nil
}

// Stand ends the player turn: the dealer draws to 17 or higher, then
// the hands are compared.
func (e *BlackjackEngine) Stand(round *BlackjackRound) error {
	if round.State != BlackjackPlayerTurn {
		return &InvalidStateTransitionError{Game: "blackjack", Action: "stand", State: round.State}
	}
	round.State = BlackjackDealerTurn

	for round.DealerScore() < dealerStandScore {
		card, err := round.Deck.DrawOne()
		if err != nil {
			return err
		}
		round.DealerCards = append(round.DealerCards, card)
	}

	playerScore := round.PlayerScore()
	dealerScore := round.DealerScore()
	switch {
	case dealerScore > 21:
		e.settle(round, "dealer_bust")
	case playerScore > dealerScore:
		e.settle(round, "win")
	case playerScore == dealerScore:
		e.settle(round, "push")
	default:
		e.settle(round, "loss")
	}
	return nil
}

func (e *BlackjackEngine) settle(round *BlackjackRound, classification string) {
	multiplier := e.payouts[classification] // zero value for push/losses

	round.State = BlackjackSettled
	round.Result = &RoundResult{
		Game:           "blackjack",
		Won:            multiplier.Sign() > 0,
		Multiplier:     multiplier,
		Payout:         payoutAmount(round.Stake, multiplier),
		Classification: classification,
		Details: map[string]any{
			"player_cards": cardStrings(round.PlayerCards),
			"dealer_cards": cardStrings(round.DealerCards),
			"player_score": round.PlayerScore(),
			"dealer_score": round.DealerScore(),
		},
	}
}
