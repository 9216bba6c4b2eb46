package games

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newBaccarat(t *testing.T) *BaccaratEngine {
	t.Helper()
	e, err := NewBaccaratEngine(DefaultBaccaratPayouts())
	if err != nil {
		t.Fatalf("NewBaccaratEngine failed: %v", err)
	}
	return e
}

func TestBaccaratEngineValidation(t *testing.T) {
	var tableErr *InvalidTableError

	payouts := DefaultBaccaratPayouts()
	delete(payouts, BaccaratTie)
	if _, err := NewBaccaratEngine(payouts); !errors.As(err, &tableErr) {
		t.Errorf("missing side: expected InvalidTableError, got %v", err)
	}

	payouts = DefaultBaccaratPayouts()
	payouts[BaccaratPlayer] = decimal.Zero
	if _, err := NewBaccaratEngine(payouts); !errors.As(err, &tableErr) {
		t.Errorf("zero multiplier: expected InvalidTableError, got %v", err)
	}
}

func TestBaccaratInvalidSide(t *testing.T) {
	e := newBaccarat(t)
	var selErr *InvalidSelectionError
	deck := stacked("baccarat")
	if _, err := e.PlayWithDeck(10, "dragon", deck); !errors.As(err, &selErr) {
		t.Errorf("expected InvalidSelectionError, got %v", err)
	}
}

func TestBaccaratNaturalStopsDrawing(t *testing.T) {
	e := newBaccarat(t)

	// Player 4+5 = natural 9, banker 2+3 = 5: no third cards.
	deck := stacked("baccarat",
		Card{Rank: "4", Suit: "♠"},
		Card{Rank: "2", Suit: "♠"},
		Card{Rank: "5", Suit: "♠"},
		Card{Rank: "3", Suit: "♠"},
	)
	result, err := e.PlayWithDeck(100, BaccaratPlayer, deck)
	if err != nil {
		t.Fatalf("PlayWithDeck failed: %v", err)
	}

	if result.Classification != BaccaratPlayer || !result.Won {
		t.Fatalf("expected player win, got %+v", result)
	}
	if result.Payout != 100 {
		t.Errorf("player win pays even money, got %d", result.Payout)
	}
	if result.Details["player_drew"] != false || result.Details["banker_drew"] != false {
		t.Errorf("natural must stop all drawing: %+v", result.Details)
	}
}

func TestBaccaratBankerNaturalFreezesPlayer(t *testing.T) {
	e := newBaccarat(t)

	// Player has 5 and would normally draw, but the banker natural 8
	// ends the round.
	deck := stacked("baccarat",
		Card{Rank: "2", Suit: "♠"},
		Card{Rank: "K", Suit: "♠"},
		Card{Rank: "3", Suit: "♠"},
		Card{Rank: "8", Suit: "♥"},
	)
	result, err := e.PlayWithDeck(100, BaccaratBanker, deck)
	if err != nil {
		t.Fatalf("PlayWithDeck failed: %v", err)
	}

	if result.Details["player_drew"] != false {
		t.Errorf("player must not draw against a banker natural")
	}
	if result.Classification != BaccaratBanker {
		t.Errorf("expected banker win, got %s", result.Classification)
	}
	if result.Payout != 95 {
		t.Errorf("banker win pays 0.95 after commission, got %d", result.Payout)
	}
}

func TestBaccaratTableauPlayerThirdCard(t *testing.T) {
	e := newBaccarat(t)

	// Player 2+3 = 5 draws an 8; banker on 3 stands against a third
	// card of 8. Both end on 3: a tie.
	deck := stacked("baccarat",
		Card{Rank: "2", Suit: "♠"},
		Card{Rank: "A", Suit: "♠"},
		Card{Rank: "3", Suit: "♠"},
		Card{Rank: "2", Suit: "♥"},
		Card{Rank: "8", Suit: "♥"},
	)
	result, err := e.PlayWithDeck(10, BaccaratTie, deck)
	if err != nil {
		t.Fatalf("PlayWithDeck failed: %v", err)
	}

	if result.Details["player_drew"] != true || result.Details["banker_drew"] != false {
		t.Fatalf("expected player to draw and banker to stand: %+v", result.Details)
	}
	if result.Classification != BaccaratTie || !result.Won {
		t.Fatalf("expected tie, got %+v", result)
	}
	if result.Payout != 80 {
		t.Errorf("tie pays 8x, got %d", result.Payout)
	}
}

func TestBaccaratTableauBothDraw(t *testing.T) {
	e := newBaccarat(t)

	// Player 2+2 = 4 draws a 4; banker on 4 draws against a third card
	// of 4 and makes 9.
	deck := stacked("baccarat",
		Card{Rank: "2", Suit: "♠"},
		Card{Rank: "3", Suit: "♠"},
		Card{Rank: "2", Suit: "♦"},
		Card{Rank: "A", Suit: "♠"},
		Card{Rank: "4", Suit: "♥"},
		Card{Rank: "5", Suit: "♥"},
	)
	result, err := e.PlayWithDeck(10, BaccaratBanker, deck)
	if err != nil {
		t.Fatalf("PlayWithDeck failed: %v", err)
	}

	if result.Details["player_drew"] != true || result.Details["banker_drew"] != true {
		t.Fatalf("expected both sides to draw: %+v", result.Details)
	}
	if result.Details["player_score"] != 8 || result.Details["banker_score"] != 9 {
		t.Errorf("expected 8 vs 9, got %+v", result.Details)
	}
	if result.Classification != BaccaratBanker {
		t.Errorf("expected banker win, got %s", result.Classification)
	}
}

func TestBaccaratBankerStandsOnSix(t *testing.T) {
	e := newBaccarat(t)

	// Player stands on 6, banker stands on 7 with no player third card.
	deck := stacked("baccarat",
		Card{Rank: "6", Suit: "♠"},
		Card{Rank: "2", Suit: "♠"},
		Card{Rank: "K", Suit: "♠"},
		Card{Rank: "5", Suit: "♠"},
	)
	result, err := e.PlayWithDeck(10, BaccaratPlayer, deck)
	if err != nil {
		t.Fatalf("PlayWithDeck failed: %v", err)
	}

	if result.Details["banker_drew"] != false {
		t.Errorf("banker on 7 must stand when player stood")
	}
	if result.Classification != BaccaratBanker {
		t.Errorf("banker 7 beats player 6, got %s", result.Classification)
	}
	if result.Won || result.Payout != 0 {
		t.Errorf("player bet must lose, got %+v", result)
	}
}

func TestBankerDrawTableSpotChecks(t *testing.T) {
	cases := []struct {
		banker int
		third  int
		draws  bool
	}{
		{0, 0, true},
		{2, 9, true},
		{3, 8, false},
		{3, 9, true},
		{4, 1, false},
		{4, 2, true},
		{5, 3, false},
		{5, 4, true},
		{6, 5, false},
		{6, 6, true},
		{6, 7, true},
		{7, 7, false},
	}
	for _, tc := range cases {
		if got := bankerDrawTable[tc.banker][tc.third]; got != tc.draws {
			t.Errorf("banker %d vs third %d: expected draws=%v, got %v", tc.banker, tc.third, tc.draws, got)
		}
	}
}
