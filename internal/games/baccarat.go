package games

import (
	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// Baccarat bet sides.
const (
	BaccaratPlayer = "player"
	BaccaratBanker = "banker"
	BaccaratTie    = "tie"
)

// DefaultBaccaratPayouts maps winning side to multiplier: Player even
// money, Banker even money minus the 5% house commission, Tie 8:1.
func DefaultBaccaratPayouts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		BaccaratPlayer: decimal.NewFromInt(1),
		BaccaratBanker: decimal.RequireFromString("0.95"),
		BaccaratTie:    decimal.NewFromInt(8),
	}
}

// bankerDrawTable is the standard baccarat tableau: row = banker score
// after two cards (0-7), column = point value of the player's third
// card (0-9). Only consulted when the player drew a third card.
var bankerDrawTable = [8][10]bool{
	0: {true, true, true, true, true, true, true, true, true, true},
	1: {true, true, true, true, true, true, true, true, true, true},
	2: {true, true, true, true, true, true, true, true, true, true},
	3: {true, true, true, true, true, true, true, true, false, true},
	4: {false, false, true, true, true, true, true, true, false, false},
	5: {false, false, false, false, true, true, true, true, false, false},
	6: {false, false, false, false, false, false, true, true, false, false},
	7: {false, false, false, false, false, false, false, false, false, false},
}

// BaccaratEngine deals one round per call from a fresh shoe. The
// third-card rule is mechanical, never player-chosen.
type BaccaratEngine struct {
	payouts map[string]decimal.Decimal
}

// NewBaccaratEngine validates the payout table and returns the engine.
func NewBaccaratEngine(payouts map[string]decimal.Decimal) (*BaccaratEngine, error) {
	for _, side := range []string{BaccaratPlayer, BaccaratBanker, BaccaratTie} {
		m, ok := payouts[side]
		if !ok {
			return nil, &InvalidTableError{Game: "baccarat", Table: "payout", Reason: "missing multiplier for " + side}
		}
		if m.Sign() <= 0 {
			return nil, &InvalidTableError{Game: "baccarat", Table: "payout", Reason: "multiplier for " + side + " must be > 0"}
		}
	}
	return &BaccaratEngine{payouts: payouts}, nil
}

// Spec returns metadata about the Baccarat game.
func (e *BaccaratEngine) Spec() GameSpec {
	return GameSpec{ID: "baccarat", Name: "Baccarat"}
}

// Play deals the round from a fresh shoe and evaluates a bet on the
// given side.
func (e *BaccaratEngine) Play(stake int64, side string, src rng.Source) (RoundResult, error) {
	return e.PlayWithDeck(stake, side, NewDeck("baccarat", src))
}

// PlayWithDeck deals the round from a prepared shoe.
func (e *BaccaratEngine) PlayWithDeck(stake int64, side string, deck *Deck) (RoundResult, error) {
	if err := validateStake("baccarat", stake); err != nil {
		return RoundResult{}, err
	}
	switch side {
	case BaccaratPlayer, BaccaratBanker, BaccaratTie:
	default:
		return RoundResult{}, &InvalidSelectionError{Game: "baccarat", Field: "side", Value: side, Reason: "must be player, banker or tie"}
	}

	// Standard deal order: player, banker, player, banker.
	cards, err := deck.Draw(4)
	if err != nil {
		return RoundResult{}, err
	}
	playerCards := []Card{cards[0], cards[2]}
	bankerCards := []Card{cards[1], cards[3]}

	playerScore := BaccaratHandScore(playerCards)
	bankerScore := BaccaratHandScore(bankerCards)

	playerDrew := false
	bankerDrew := false

	// A natural 8 or 9 on either side stops all drawing.
	if playerScore < 8 && bankerScore < 8 {
		if playerScore <= 5 {
			third, err := deck.DrawOne()
			if err != nil {
				return RoundResult{}, err
			}
			playerDrew = true
			playerCards = append(playerCards, third)
			playerScore = BaccaratHandScore(playerCards)
			bankerDrew = bankerDrawTable[bankerScore][BaccaratValue(third.Rank)]
		} else {
			// Player stood: banker draws on 0-5, stands on 6-7.
			bankerDrew = bankerScore <= 5
		}

		if bankerDrew {
			third, err := deck.DrawOne()
			if err != nil {
				return RoundResult{}, err
			}
			bankerCards = append(bankerCards, third)
			bankerScore = BaccaratHandScore(bankerCards)
		}
	}

	var winner string
	switch {
	case playerScore > bankerScore:
		winner = BaccaratPlayer
	case bankerScore > playerScore:
		winner = BaccaratBanker
	default:
		winner = BaccaratTie
	}

	won := side == winner
	multiplier := decimal.Zero
	if won {
		multiplier = e.payouts[winner]
	}

	return RoundResult{
		Game:           "baccarat",
		Won:            won,
		Multiplier:     multiplier,
		Payout:         payoutAmount(stake, multiplier),
		Classification: winner,
		Details: map[string]any{
			"player_cards": cardStrings(playerCards),
			"banker_cards": cardStrings(bankerCards),
			"player_score": playerScore,
			"banker_score": bankerScore,
			"player_drew":  playerDrew,
			"banker_drew":  bankerDrew,
		},
	}, nil
}
