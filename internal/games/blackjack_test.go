package games

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

func newBlackjack(t *testing.T) *BlackjackEngine {
	t.Helper()
	e, err := NewBlackjackEngine(DefaultBlackjackPayouts())
	if err != nil {
		t.Fatalf("NewBlackjackEngine failed: %v", err)
	}
	return e
}

// stacked builds a shoe dealing the given cards in order, padded with
// the rest of the full deck.
func stacked(game string, cards ...Card) *Deck {
	used := make(map[Card]bool, len(cards))
	for _, c := range cards {
		used[c] = true
	}
	all := make([]Card, 0, 52)
	all = append(all, cards...)
	for _, c := range fullDeck {
		if !used[c] {
			all = append(all, c)
		}
	}
	return &Deck{Game: game, Cards: all}
}

func TestBlackjackEngineValidation(t *testing.T) {
	var tableErr *InvalidTableError

	_, err := NewBlackjackEngine(nil)
	if !errors.As(err, &tableErr) {
		t.Errorf("empty table: expected InvalidTableError, got %v", err)
	}

	payouts := DefaultBlackjackPayouts()
	delete(payouts, "blackjack")
	if _, err := NewBlackjackEngine(payouts); !errors.As(err, &tableErr) {
		t.Errorf("missing entry: expected InvalidTableError, got %v", err)
	}
}

func TestBlackjackNaturalPush(t *testing.T) {
	e := newBlackjack(t)

	// Deal order player, dealer, player, dealer: player A+K, dealer A+Q.
	deck := stacked("blackjack",
		Card{Rank: "A", Suit: "♠"},
		Card{Rank: "A", Suit: "♥"},
		Card{Rank: "K", Suit: "♠"},
		Card{Rank: "Q", Suit: "♥"},
	)
	round, err := e.StartWithDeck(100, deck)
	if err != nil {
		t.Fatalf("StartWithDeck failed: %v", err)
	}

	if round.State != BlackjackSettled {
		t.Fatalf("expected settled round, got state %s", round.State)
	}
	if round.Result.Classification != "push" {
		t.Errorf("expected push, got %s", round.Result.Classification)
	}
	if round.Result.Payout != 0 {
		t.Errorf("push payout must be 0, got %d", round.Result.Payout)
	}
}

func TestBlackjackNaturalPays3To2(t *testing.T) {
	e := newBlackjack(t)

	deck := stacked("blackjack",
		Card{Rank: "A", Suit: "♠"},
		Card{Rank: "5", Suit: "♥"},
		Card{Rank: "K", Suit: "♠"},
		Card{Rank: "9", Suit: "♥"},
	)
	round, err := e.StartWithDeck(100, deck)
	if err != nil {
		t.Fatalf("StartWithDeck failed: %v", err)
	}

	if round.Result == nil || round.Result.Classification != "blackjack" {
		t.Fatalf("expected blackjack settlement, got %+v", round.Result)
	}
	if round.Result.Payout != 150 {
		t.Errorf("expected payout 150 for stake 100, got %d", round.Result.Payout)
	}
	if !round.Result.Multiplier.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("expected multiplier 1.5, got %s", round.Result.Multiplier)
	}
}

func TestBlackjackHitBust(t *testing.T) {
	e := newBlackjack(t)

	deck := stacked("blackjack",
		Card{Rank: "10", Suit: "♠"},
		Card{Rank: "9", Suit: "♥"},
		Card{Rank: "5", Suit: "♠"},
		Card{Rank: "6", Suit: "♥"},
		Card{Rank: "K", Suit: "♦"}, // player hit card: 10+5+10 = 25
	)
	round, err := e.StartWithDeck(50, deck)
	if err != nil {
		t.Fatalf("StartWithDeck failed: %v", err)
	}
	if round.State != BlackjackPlayerTurn {
		t.Fatalf("expected player turn, got %s", round.State)
	}

	if err := e.Hit(round); err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if round.Result == nil || round.Result.Classification != "bust" {
		t.Fatalf("expected bust, got %+v", round.Result)
	}
	if round.Result.Payout != 0 || round.Result.Won {
		t.Errorf("bust must pay nothing")
	}

	// No silent no-ops after settlement.
	var stateErr *InvalidStateTransitionError
	if err := e.Hit(round); !errors.As(err, &stateErr) {
		t.Errorf("hit after settle: expected InvalidStateTransitionError, got %v", err)
	}
	if err := e.Stand(round); !errors.As(err, &stateErr) {
		t.Errorf("stand after settle: expected InvalidStateTransitionError, got %v", err)
	}
}

func TestBlackjackStandDealerDrawsTo17(t *testing.T) {
	e := newBlackjack(t)

	deck := stacked("blackjack",
		Card{Rank: "10", Suit: "♠"},
		Card{Rank: "2", Suit: "♥"},
		Card{Rank: "8", Suit: "♠"},
		Card{Rank: "5", Suit: "♥"},
		Card{Rank: "K", Suit: "♦"}, // dealer draw: 2+5+10 = 17, stands
	)
	round, err := e.StartWithDeck(100, deck)
	if err != nil {
		t.Fatalf("StartWithDeck failed: %v", err)
	}

	if err := e.Stand(round); err != nil {
		t.Fatalf("Stand failed: %v", err)
	}
	if got := round.DealerScore(); got != 17 {
		t.Errorf("expected dealer to stop at 17, got %d", got)
	}
	if round.Result.Classification != "win" {
		t.Errorf("player 18 beats dealer 17, got %s", round.Result.Classification)
	}
	if round.Result.Payout != 100 {
		t.Errorf("ordinary win pays 1x stake, got %d", round.Result.Payout)
	}
}

func TestBlackjackRoundSerialization(t *testing.T) {
	e := newBlackjack(t)

	deck := stacked("blackjack",
		Card{Rank: "10", Suit: "♠"},
		Card{Rank: "2", Suit: "♥"},
		Card{Rank: "8", Suit: "♠"},
		Card{Rank: "5", Suit: "♥"},
		Card{Rank: "K", Suit: "♦"},
	)
	round, err := e.StartWithDeck(100, deck)
	if err != nil {
		t.Fatalf("StartWithDeck failed: %v", err)
	}

	data, err := json.Marshal(round)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var restored BlackjackRound
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if err := e.Stand(&restored); err != nil {
		t.Fatalf("Stand on restored round failed: %v", err)
	}
	if restored.State != BlackjackSettled || restored.Result == nil {
		t.Errorf("restored round did not settle: %+v", restored)
	}
}

func TestBlackjackInvalidStake(t *testing.T) {
	e := newBlackjack(t)
	var selErr *InvalidSelectionError
	if _, err := e.Start(0, rng.NewCrypto()); !errors.As(err, &selErr) {
		t.Errorf("expected InvalidSelectionError for zero stake, got %v", err)
	}
}
