package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// ScratchPrize is one scratch card outcome: a stake multiplier and its
// rarity weight.
type ScratchPrize struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	Weight     float64         `json:"weight"`
}

// DefaultScratchPrizes mirrors the classic card: five equally likely
// panels from a blank up to 10x the stake.
func DefaultScratchPrizes() []ScratchPrize {
	multipliers := []int64{0, 1, 2, 4, 10}
	prizes := make([]ScratchPrize, len(multipliers))
	for i, m := range multipliers {
		prizes[i] = ScratchPrize{Multiplier: decimal.NewFromInt(m), Weight: 1}
	}
	return prizes
}

// ScratchEngine reveals one prize per card from a weighted table.
type ScratchEngine struct {
	prizes  []ScratchPrize
	weights *WeightedTable
}

// NewScratchEngine validates the prize table and returns the engine.
func NewScratchEngine(prizes []ScratchPrize) (*ScratchEngine, error) {
	if len(prizes) == 0 {
		return nil, &InvalidTableError{Game: "scratch", Table: "prize", Reason: "empty"}
	}
	weights := make([]float64, len(prizes))
	for i, p := range prizes {
		if p.Multiplier.Sign() < 0 {
			return nil, &InvalidTableError{Game: "scratch", Table: "prize", Reason: fmt.Sprintf("multiplier at index %d is negative", i)}
		}
		weights[i] = p.Weight
	}
	table, err := NewWeightedTable("scratch", weights)
	if err != nil {
		return nil, err
	}
	return &ScratchEngine{prizes: prizes, weights: table}, nil
}

// Spec returns metadata about the Scratch game.
func (e *ScratchEngine) Spec() GameSpec {
	return GameSpec{ID: "scratch", Name: "Scratch Card"}
}

// Play buys one card and reveals its prize.
func (e *ScratchEngine) Play(stake int64, src rng.Source) (RoundResult, error) {
	if err := validateStake("scratch", stake); err != nil {
		return RoundResult{}, err
	}

	idx := e.weights.Pick(src)
	prize := e.prizes[idx]
	won := prize.Multiplier.Sign() > 0

	classification := "blank"
	if won {
		classification = "prize"
	}

	return RoundResult{
		Game:           "scratch",
		Won:            won,
		Multiplier:     prize.Multiplier,
		Payout:         payoutAmount(stake, prize.Multiplier),
		Classification: classification,
		Details: map[string]any{
			"panel": idx,
		},
	}, nil
}
