package games

import (
	"errors"
	"testing"

	"casino-hub/core/internal/rng"
)

func newRoulette(t *testing.T) *RouletteEngine {
	t.Helper()
	e, err := NewRouletteEngine(DefaultRoulettePockets(), DefaultRoulettePayouts())
	if err != nil {
		t.Fatalf("NewRouletteEngine failed: %v", err)
	}
	return e
}

// pocketFloat returns a float that lands the spin on the given layout
// index.
func pocketFloat(index int) float64 {
	return (float64(index) + 0.5) / 37
}

func TestRouletteEngineValidation(t *testing.T) {
	var tableErr *InvalidTableError

	if _, err := NewRouletteEngine(nil, DefaultRoulettePayouts()); !errors.As(err, &tableErr) {
		t.Errorf("empty layout: expected InvalidTableError, got %v", err)
	}

	pockets := DefaultRoulettePockets()
	pockets[1] = pockets[2] // duplicate
	if _, err := NewRouletteEngine(pockets, DefaultRoulettePayouts()); !errors.As(err, &tableErr) {
		t.Errorf("duplicate pocket: expected InvalidTableError, got %v", err)
	}

	payouts := DefaultRoulettePayouts()
	delete(payouts, RouletteBetDozen)
	if _, err := NewRouletteEngine(DefaultRoulettePockets(), payouts); !errors.As(err, &tableErr) {
		t.Errorf("missing payout: expected InvalidTableError, got %v", err)
	}
}

func TestRouletteBetValidation(t *testing.T) {
	e := newRoulette(t)
	var selErr *InvalidSelectionError

	bad := []RouletteBet{
		{Kind: RouletteBetNumber, Number: 37},
		{Kind: RouletteBetNumber, Number: -1},
		{Kind: RouletteBetColor, Choice: "green"},
		{Kind: RouletteBetParity, Choice: "prime"},
		{Kind: RouletteBetDozen, Number: 0},
		{Kind: RouletteBetColumn, Number: 4},
		{Kind: "street"},
	}
	for _, bet := range bad {
		if _, err := e.Spin(10, bet, rng.NewFixed(0.5)); !errors.As(err, &selErr) {
			t.Errorf("bet %+v: expected InvalidSelectionError, got %v", bet, err)
		}
	}
}

func TestRouletteNumberBetPays35(t *testing.T) {
	e := newRoulette(t)

	// Pocket 17 sits at layout index 8.
	src := rng.NewFixed(pocketFloat(8))
	result, err := e.Spin(10, RouletteBet{Kind: RouletteBetNumber, Number: 17}, src)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}
	if !result.Won || result.Payout != 350 {
		t.Errorf("expected win with payout 350, got won=%v payout=%d", result.Won, result.Payout)
	}
	if result.Details["pocket"] != 17 {
		t.Errorf("expected pocket 17, got %v", result.Details["pocket"])
	}
}

func TestRouletteZeroLosesOutsideBets(t *testing.T) {
	e := newRoulette(t)
	zero := rng.NewFixed(pocketFloat(0)) // zero sits at layout index 0

	outside := []RouletteBet{
		{Kind: RouletteBetColor, Choice: "red"},
		{Kind: RouletteBetColor, Choice: "black"},
		{Kind: RouletteBetParity, Choice: "even"},
		{Kind: RouletteBetDozen, Number: 1},
		{Kind: RouletteBetColumn, Number: 1},
	}
	for _, bet := range outside {
		result, err := e.Spin(10, bet, zero)
		if err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
		if result.Won || result.Classification != "loss" {
			t.Errorf("bet %+v must lose on zero, got %+v", bet, result)
		}
	}

	// An exact number bet on 0 still wins.
	result, err := e.Spin(10, RouletteBet{Kind: RouletteBetNumber, Number: 0}, zero)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}
	if !result.Won || result.Payout != 350 {
		t.Errorf("number bet on zero must pay 35x, got %+v", result)
	}
}

func TestRouletteOutsideBets(t *testing.T) {
	e := newRoulette(t)

	// Pocket 14 (red, even, second dozen, second column) sits at index 25.
	src := func() rng.Source { return rng.NewFixed(pocketFloat(25)) }

	cases := []struct {
		bet    RouletteBet
		won    bool
		payout int64
	}{
		{RouletteBet{Kind: RouletteBetColor, Choice: "red"}, true, 10},
		{RouletteBet{Kind: RouletteBetColor, Choice: "black"}, false, 0},
		{RouletteBet{Kind: RouletteBetParity, Choice: "even"}, true, 10},
		{RouletteBet{Kind: RouletteBetParity, Choice: "odd"}, false, 0},
		{RouletteBet{Kind: RouletteBetDozen, Number: 2}, true, 20},
		{RouletteBet{Kind: RouletteBetDozen, Number: 1}, false, 0},
		{RouletteBet{Kind: RouletteBetColumn, Number: 2}, true, 20},
		{RouletteBet{Kind: RouletteBetColumn, Number: 3}, false, 0},
	}
	for _, tc := range cases {
		result, err := e.Spin(10, tc.bet, src())
		if err != nil {
			t.Fatalf("Spin %+v failed: %v", tc.bet, err)
		}
		if result.Won != tc.won || result.Payout != tc.payout {
			t.Errorf("bet %+v: expected won=%v payout=%d, got won=%v payout=%d",
				tc.bet, tc.won, tc.payout, result.Won, result.Payout)
		}
	}
}

func TestRouletteSpinDistribution(t *testing.T) {
	e := newRoulette(t)
	stream := rng.NewStream("server-seed", "client-seed", 1, 0)

	counts := make(map[int]int, 37)
	const rounds = 37000
	for i := 0; i < rounds; i++ {
		result, err := e.Spin(1, RouletteBet{Kind: RouletteBetColor, Choice: "red"}, stream)
		if err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
		counts[result.Details["pocket"].(int)]++
	}

	if len(counts) != 37 {
		t.Fatalf("expected all 37 pockets hit, got %d", len(counts))
	}
	for number, n := range counts {
		if n < rounds/37/2 || n > rounds/37*2 {
			t.Errorf("pocket %d hit %d times, far from expected %d", number, n, rounds/37)
		}
	}
}
