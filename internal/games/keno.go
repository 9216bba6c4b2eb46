package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

const (
	KenoPoolSize  = 80
	KenoDrawCount = 20
	KenoMinPicks  = 1
	KenoMaxPicks  = 10
)

// KenoEngine draws 20 numbers from 1-80 and pays by a fixed
// (picks, hits) table.
type KenoEngine struct {
	payouts map[int][]int64
}

// NewKenoEngine validates the paytable: one row per pick count 1-10,
// each with hits entries 0..k, none negative.
func NewKenoEngine(payouts map[int][]int64) (*KenoEngine, error) {
	if len(payouts) == 0 {
		return nil, &InvalidTableError{Game: "keno", Table: "payout", Reason: "empty"}
	}
	for k := KenoMinPicks; k <= KenoMaxPicks; k++ {
		row, ok := payouts[k]
		if !ok {
			return nil, &InvalidTableError{Game: "keno", Table: "payout", Reason: fmt.Sprintf("missing row for %d picks", k)}
		}
		if len(row) != k+1 {
			return nil, &InvalidTableError{Game: "keno", Table: "payout", Reason: fmt.Sprintf("row for %d picks must have %d entries, got %d", k, k+1, len(row))}
		}
		for hits, m := range row {
			if m < 0 {
				return nil, &InvalidTableError{Game: "keno", Table: "payout", Reason: fmt.Sprintf("multiplier for %d/%d is negative", hits, k)}
			}
		}
	}
	return &KenoEngine{payouts: payouts}, nil
}

// Spec returns metadata about the Keno game.
func (e *KenoEngine) Spec() GameSpec {
	return GameSpec{ID: "keno", Name: "Keno"}
}

func validateKenoPicks(picks []int) error {
	if len(picks) < KenoMinPicks || len(picks) > KenoMaxPicks {
		return &InvalidSelectionError{Game: "keno", Field: "picks", Value: len(picks), Reason: fmt.Sprintf("must select %d-%d numbers", KenoMinPicks, KenoMaxPicks)}
	}
	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p < 1 || p > KenoPoolSize {
			return &InvalidSelectionError{Game: "keno", Field: "picks", Value: p, Reason: fmt.Sprintf("must be 1-%d", KenoPoolSize)}
		}
		if seen[p] {
			return &InvalidSelectionError{Game: "keno", Field: "picks", Value: p, Reason: "duplicate pick"}
		}
		seen[p] = true
	}
	return nil
}

// drawKenoNumbers selects 20 distinct numbers from 1-80 by Fisher-Yates
// selection over a shrinking pool.
func drawKenoNumbers(src rng.Source) []int {
	pool := make([]int, KenoPoolSize)
	for i := range pool {
		pool[i] = i + 1
	}

	drawn := make([]int, KenoDrawCount)
	for i := 0; i < KenoDrawCount; i++ {
		idx := int(src.Float64() * float64(len(pool)))
		if idx >= len(pool) {
			idx = len(pool) - 1
		}
		drawn[i] = pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return drawn
}

func countKenoHits(picks, drawn []int) int {
	drawnSet := make(map[int]bool, len(drawn))
	for _, d := range drawn {
		drawnSet[d] = true
	}
	hits := 0
	for _, p := range picks {
		if drawnSet[p] {
			hits++
		}
	}
	return hits
}

// Play draws the round and pays table[len(picks)][hits].
func (e *KenoEngine) Play(stake int64, picks []int, src rng.Source) (RoundResult, error) {
	if err := validateStake("keno", stake); err != nil {
		return RoundResult{}, err
	}
	if err := validateKenoPicks(picks); err != nil {
		return RoundResult{}, err
	}

	drawn := drawKenoNumbers(src)
	hits := countKenoHits(picks, drawn)
	multiplier := decimal.NewFromInt(e.payouts[len(picks)][hits])

	return RoundResult{
		Game:           "keno",
		Won:            multiplier.Sign() > 0,
		Multiplier:     multiplier,
		Payout:         payoutAmount(stake, multiplier),
		Classification: fmt.Sprintf("%d/%d", hits, len(picks)),
		Details: map[string]any{
			"picks": picks,
			"drawn": drawn,
			"hits":  hits,
		},
	}, nil
}
