package games

import (
	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// HiLo guesses.
const (
	HiLoHigher = "higher"
	HiLoLower  = "lower"
	HiLoTie    = "tie"
)

// HiLoPayout is the fixed payout row for one from-card rank. A zero
// multiplier marks a guess that can never win from that rank (higher
// from a King, lower from an Ace).
type HiLoPayout struct {
	Higher decimal.Decimal `json:"higher"`
	Lower  decimal.Decimal `json:"lower"`
}

// hiloMargin is the fixed house factor baked into the default curve.
const hiloMargin = "0.96"

// DefaultHiLoPayouts builds the fixed multiplier curve: margin/p per
// rank, floored at 1.01, rounded to cents. The curve is computed once
// here and then treated as static table content.
func DefaultHiLoPayouts() [14]HiLoPayout {
	margin := decimal.RequireFromString(hiloMargin)
	floor := decimal.RequireFromString("1.01")
	thirteen := decimal.NewFromInt(13)

	mult := func(outcomes int64) decimal.Decimal {
		if outcomes == 0 {
			return decimal.Zero
		}
		// margin * 13/outcomes
		m := margin.Mul(thirteen).Div(decimal.NewFromInt(outcomes)).Round(2)
		if m.Cmp(floor) < 0 {
			return floor
		}
		return m
	}

	var table [14]HiLoPayout
	for r := 1; r <= 13; r++ {
		table[r] = HiLoPayout{
			Higher: mult(int64(13 - r)),
			Lower:  mult(int64(r - 1)),
		}
	}
	return table
}

// DefaultHiLoTiePayout is the flat multiplier for a correct tie guess
// (a 1/13 outcome under uniform ranks).
func DefaultHiLoTiePayout() decimal.Decimal {
	return decimal.NewFromInt(10)
}

// HiLoEngine compares two independently drawn cards against a guess.
// The deck reshuffles every round, so draws are with replacement and
// ties are possible.
type HiLoEngine struct {
	payouts [14]HiLoPayout
	tie     decimal.Decimal
}

// NewHiLoEngine validates the payout curve and returns the engine.
func NewHiLoEngine(payouts [14]HiLoPayout, tie decimal.Decimal) (*HiLoEngine, error) {
	if tie.Sign() <= 0 {
		return nil, &InvalidTableError{Game: "hilo", Table: "payout", Reason: "tie multiplier must be > 0"}
	}
	for r := 1; r <= 13; r++ {
		row := payouts[r]
		if row.Higher.Sign() < 0 || row.Lower.Sign() < 0 {
			return nil, &InvalidTableError{Game: "hilo", Table: "payout", Reason: "negative multiplier"}
		}
		if r < 13 && row.Higher.Sign() == 0 {
			return nil, &InvalidTableError{Game: "hilo", Table: "payout", Reason: "higher must pay for ranks below king"}
		}
		if r > 1 && row.Lower.Sign() == 0 {
			return nil, &InvalidTableError{Game: "hilo", Table: "payout", Reason: "lower must pay for ranks above ace"}
		}
	}
	return &HiLoEngine{payouts: payouts, tie: tie}, nil
}

// Spec returns metadata about the HiLo game.
func (e *HiLoEngine) Spec() GameSpec {
	return GameSpec{ID: "hilo", Name: "HiLo"}
}

// Payouts exposes the fixed multiplier table.
func (e *HiLoEngine) Payouts() [14]HiLoPayout {
	return e.payouts
}

// WinProbability reports the chance of the guess winning from the
// given card under uniform ranks.
func (e *HiLoEngine) WinProbability(from Card, guess string) float64 {
	r := RankValue(from.Rank)
	switch guess {
	case HiLoHigher:
		return float64(13-r) / 13
	case HiLoLower:
		return float64(r-1) / 13
	case HiLoTie:
		return 1.0 / 13
	}
	return 0
}

// Play draws both cards and resolves the guess.
func (e *HiLoEngine) Play(stake int64, guess string, src rng.Source) (RoundResult, error) {
	from := cardFromFloat(src.Float64())
	return e.PlayFrom(stake, from, guess, src)
}

// PlayFrom resolves a guess against a caller-supplied current card,
// drawing only the "to" card.
func (e *HiLoEngine) PlayFrom(stake int64, from Card, guess string, src rng.Source) (RoundResult, error) {
	if err := validateStake("hilo", stake); err != nil {
		return RoundResult{}, err
	}
	switch guess {
	case HiLoHigher, HiLoLower, HiLoTie:
	default:
		return RoundResult{}, &InvalidSelectionError{Game: "hilo", Field: "guess", Value: guess, Reason: "must be higher, lower or tie"}
	}
	if RankValue(from.Rank) == 0 {
		return RoundResult{}, &InvalidSelectionError{Game: "hilo", Field: "from", Value: from.String(), Reason: "unknown rank"}
	}

	to := cardFromFloat(src.Float64())
	fromValue := RankValue(from.Rank)
	toValue := RankValue(to.Rank)

	var won bool
	switch guess {
	case HiLoHigher:
		won = toValue > fromValue
	case HiLoLower:
		won = toValue < fromValue
	case HiLoTie:
		won = toValue == fromValue
	}

	multiplier := decimal.Zero
	classification := "loss"
	if won {
		classification = guess
		if guess == HiLoTie {
			multiplier = e.tie
		} else if guess == HiLoHigher {
			multiplier = e.payouts[fromValue].Higher
		} else {
			multiplier = e.payouts[fromValue].Lower
		}
	}

	return RoundResult{
		Game:           "hilo",
		Won:            won,
		Multiplier:     multiplier,
		Payout:         payoutAmount(stake, multiplier),
		Classification: classification,
		Details: map[string]any{
			"from":      from.String(),
			"to":        to.String(),
			"fromValue": fromValue,
			"toValue":   toValue,
			"guess":     guess,
		},
	}, nil
}
