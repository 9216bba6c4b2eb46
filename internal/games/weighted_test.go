package games

import (
	"errors"
	"testing"

	"casino-hub/core/internal/rng"
)

func TestNewWeightedTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
	}{
		{"empty", nil},
		{"zero weight", []float64{1, 0, 2}},
		{"negative weight", []float64{1, -0.5}},
	}
	for _, tt := range tests {
		_, err := NewWeightedTable("test", tt.weights)
		var tableErr *InvalidTableError
		if !errors.As(err, &tableErr) {
			t.Errorf("%s: expected InvalidTableError, got %v", tt.name, err)
		}
	}
}

func TestWeightedPick(t *testing.T) {
	table, err := NewWeightedTable("test", []float64{1, 1, 2})
	if err != nil {
		t.Fatalf("NewWeightedTable failed: %v", err)
	}

	// total weight 4; cumulative sums 1, 2, 4
	tests := []struct {
		f        float64
		expected int
	}{
		{0.0, 0},
		{0.24, 0},
		{0.26, 1},
		{0.49, 1},
		{0.51, 2},
		{0.999, 2},
	}
	for _, tt := range tests {
		if got := table.Pick(rng.NewFixed(tt.f)); got != tt.expected {
			t.Errorf("Pick with f=%v: expected index %d, got %d", tt.f, tt.expected, got)
		}
	}
}

func TestWeightedPickDistribution(t *testing.T) {
	table, err := NewWeightedTable("test", []float64{3, 1})
	if err != nil {
		t.Fatalf("NewWeightedTable failed: %v", err)
	}

	src := rng.NewStream("dist_server", "dist_client", 1, 0)
	const rounds = 20000
	counts := [2]int{}
	for i := 0; i < rounds; i++ {
		counts[table.Pick(src)]++
	}

	// Expected 75/25 split; allow generous slack.
	if counts[0] < rounds*70/100 || counts[0] > rounds*80/100 {
		t.Errorf("index 0 frequency out of range: %d of %d", counts[0], rounds)
	}
}
