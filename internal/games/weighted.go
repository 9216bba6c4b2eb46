package games

import (
	"fmt"

	"casino-hub/core/internal/rng"
)

// WeightedTable draws a biased index from a rarity table. Weights need
// not sum to 1; the cumulative sum normalizes internally.
type WeightedTable struct {
	cum   []float64
	total float64
}

// NewWeightedTable validates the weights and precomputes the
// cumulative sums. An empty table or any weight <= 0 is an
// InvalidTableError.
func NewWeightedTable(game string, weights []float64) (*WeightedTable, error) {
	if len(weights) == 0 {
		return nil, &InvalidTableError{Game: game, Table: "weight", Reason: "empty"}
	}
	t := &WeightedTable{cum: make([]float64, len(weights))}
	for i, w := range weights {
		if w <= 0 {
			return nil, &InvalidTableError{
				Game:   game,
				Table:  "weight",
				Reason: fmt.Sprintf("weight at index %d must be > 0, got %v", i, w),
			}
		}
		t.total += w
		t.cum[i] = t.total
	}
	return t, nil
}

// Len returns the number of entries.
func (t *WeightedTable) Len() int {
	return len(t.cum)
}

// Pick draws one index with probability weight/totalWeight using a
// single uniform draw in [0, totalWeight).
func (t *WeightedTable) Pick(src rng.Source) int {
	target := src.Float64() * t.total
	for i, c := range t.cum {
		if target < c {
			return i
		}
	}
	return len(t.cum) - 1
}
