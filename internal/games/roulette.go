package games

import (
	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// Roulette bet kinds.
const (
	RouletteBetNumber = "number"
	RouletteBetColor  = "color"
	RouletteBetParity = "parity"
	RouletteBetDozen  = "dozen"
	RouletteBetColumn = "column"
)

// RoulettePocket is one of the 37 numbered slots on a European wheel.
type RoulettePocket struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
}

// DefaultRoulettePockets returns the European wheel in layout order:
// 0 green, 1-36 split into 18 red and 18 black.
func DefaultRoulettePockets() []RoulettePocket {
	return []RoulettePocket{
		{0, "green"}, {32, "red"}, {15, "black"}, {19, "red"}, {4, "black"}, {21, "red"},
		{2, "black"}, {25, "red"}, {17, "black"}, {34, "red"}, {6, "black"}, {27, "red"},
		{13, "black"}, {36, "red"}, {11, "black"}, {30, "red"}, {8, "black"}, {23, "red"},
		{10, "black"}, {5, "red"}, {24, "black"}, {16, "red"}, {33, "black"}, {1, "red"},
		{20, "black"}, {14, "red"}, {31, "black"}, {9, "red"}, {22, "black"}, {18, "red"},
		{29, "black"}, {7, "red"}, {28, "black"}, {12, "red"}, {35, "black"}, {3, "red"}, {26, "black"},
	}
}

// DefaultRoulettePayouts maps bet kind to winning multiplier.
func DefaultRoulettePayouts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		RouletteBetNumber: decimal.NewFromInt(35),
		RouletteBetColor:  decimal.NewFromInt(1),
		RouletteBetParity: decimal.NewFromInt(1),
		RouletteBetDozen:  decimal.NewFromInt(2),
		RouletteBetColumn: decimal.NewFromInt(2),
	}
}

// RouletteBet is one wager on the layout. Number carries the target
// for number (0-36), dozen (1-3) and column (1-3) bets; Choice carries
// "red"/"black" or "odd"/"even".
type RouletteBet struct {
	Kind   string `json:"kind"`
	Number int    `json:"number,omitempty"`
	Choice string `json:"choice,omitempty"`
}

// RouletteEngine resolves spins over a fixed pocket table.
type RouletteEngine struct {
	pockets []RoulettePocket
	payouts map[string]decimal.Decimal
}

// NewRouletteEngine validates the pocket layout (37 unique pockets,
// 18 red, 18 black, a green zero) and the payout table.
func NewRouletteEngine(pockets []RoulettePocket, payouts map[string]decimal.Decimal) (*RouletteEngine, error) {
	if len(pockets) != 37 {
		return nil, &InvalidTableError{Game: "roulette", Table: "pocket", Reason: "must have exactly 37 pockets"}
	}
	seen := make(map[int]bool, 37)
	colors := make(map[string]int, 3)
	for _, p := range pockets {
		if p.Number < 0 || p.Number > 36 {
			return nil, &InvalidTableError{Game: "roulette", Table: "pocket", Reason: "pocket number out of range 0-36"}
		}
		if seen[p.Number] {
			return nil, &InvalidTableError{Game: "roulette", Table: "pocket", Reason: "duplicate pocket"}
		}
		seen[p.Number] = true
		colors[p.Color]++
	}
	if colors["red"] != 18 || colors["black"] != 18 || colors["green"] != 1 {
		return nil, &InvalidTableError{Game: "roulette", Table: "pocket", Reason: "colors must be 18 red, 18 black, 1 green"}
	}

	for _, kind := range []string{RouletteBetNumber, RouletteBetColor, RouletteBetParity, RouletteBetDozen, RouletteBetColumn} {
		m, ok := payouts[kind]
		if !ok {
			return nil, &InvalidTableError{Game: "roulette", Table: "payout", Reason: "missing multiplier for " + kind}
		}
		if m.Sign() <= 0 {
			return nil, &InvalidTableError{Game: "roulette", Table: "payout", Reason: "multiplier for " + kind + " must be > 0"}
		}
	}

	return &RouletteEngine{pockets: pockets, payouts: payouts}, nil
}

// Spec returns metadata about the Roulette game.
func (e *RouletteEngine) Spec() GameSpec {
	return GameSpec{ID: "roulette", Name: "Roulette"}
}

func (e *RouletteEngine) validateBet(bet RouletteBet) error {
	switch bet.Kind {
	case RouletteBetNumber:
		if bet.Number < 0 || bet.Number > 36 {
			return &InvalidSelectionError{Game: "roulette", Field: "number", Value: bet.Number, Reason: "must be 0-36"}
		}
	case RouletteBetColor:
		if bet.Choice != "red" && bet.Choice != "black" {
			return &InvalidSelectionError{Game: "roulette", Field: "choice", Value: bet.Choice, Reason: "must be red or black"}
		}
	case RouletteBetParity:
		if bet.Choice != "odd" && bet.Choice != "even" {
			return &InvalidSelectionError{Game: "roulette", Field: "choice", Value: bet.Choice, Reason: "must be odd or even"}
		}
	case RouletteBetDozen, RouletteBetColumn:
		if bet.Number < 1 || bet.Number > 3 {
			return &InvalidSelectionError{Game: "roulette", Field: "number", Value: bet.Number, Reason: "must be 1-3"}
		}
	default:
		return &InvalidSelectionError{Game: "roulette", Field: "kind", Value: bet.Kind, Reason: "unknown bet kind"}
	}
	return nil
}

// betWins evaluates a bet against the winning pocket. Pocket 0 loses
// every bet except an exact number bet on 0.
func betWins(bet RouletteBet, pocket RoulettePocket) bool {
	switch bet.Kind {
	case RouletteBetNumber:
		return pocket.Number == bet.Number
	case RouletteBetColor:
		return pocket.Number != 0 && pocket.Color == bet.Choice
	case RouletteBetParity:
		if pocket.Number == 0 {
			return false
		}
		if pocket.Number%2 == 0 {
			return bet.Choice == "even"
		}
		return bet.Choice == "odd"
	case RouletteBetDozen:
		return pocket.Number != 0 && (pocket.Number-1)/12+1 == bet.Number
	case RouletteBetColumn:
		return pocket.Number != 0 && (pocket.Number-1)%3+1 == bet.Number
	}
	return false
}

// Spin picks a winning pocket uniformly over all 37 and evaluates the
// bet. Zero is not special-cased for randomness, only for payout.
func (e *RouletteEngine) Spin(stake int64, bet RouletteBet, src rng.Source) (RoundResult, error) {
	if err := validateStake("roulette", stake); err != nil {
		return RoundResult{}, err
	}
	if err := e.validateBet(bet); err != nil {
		return RoundResult{}, err
	}

	index := int(src.Float64() * float64(len(e.pockets)))
	if index >= len(e.pockets) {
		index = len(e.pockets) - 1
	}
	pocket := e.pockets[index]

	won := betWins(bet, pocket)
	multiplier := decimal.Zero
	classification := "loss"
	if won {
		multiplier = e.payouts[bet.Kind]
		classification = bet.Kind
	}

	return RoundResult{
		Game:           "roulette",
		Won:            won,
		Multiplier:     multiplier,
		Payout:         payoutAmount(stake, multiplier),
		Classification: classification,
		Details: map[string]any{
			"pocket": pocket.Number,
			"color":  pocket.Color,
		},
	}, nil
}
