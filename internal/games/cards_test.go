package games

import "testing"

func TestFullDeckUnique(t *testing.T) {
	seen := make(map[Card]bool, 52)
	for _, c := range fullDeck {
		if seen[c] {
			t.Errorf("duplicate card in full deck: %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestRankValue(t *testing.T) {
	tests := []struct {
		rank     string
		expected int
	}{
		{"A", 1}, {"2", 2}, {"5", 5}, {"10", 10},
		{"J", 11}, {"Q", 12}, {"K", 13}, {"joker", 0},
	}
	for _, tt := range tests {
		if got := RankValue(tt.rank); got != tt.expected {
			t.Errorf("RankValue(%s): expected %d, got %d", tt.rank, tt.expected, got)
		}
	}
}

func TestBaccaratValue(t *testing.T) {
	tests := []struct {
		rank     string
		expected int
	}{
		{"A", 1}, {"2", 2}, {"9", 9},
		{"10", 0}, {"J", 0}, {"Q", 0}, {"K", 0},
	}
	for _, tt := range tests {
		if got := BaccaratValue(tt.rank); got != tt.expected {
			t.Errorf("BaccaratValue(%s): expected %d, got %d", tt.rank, tt.expected, got)
		}
	}
}

func TestBlackjackValue(t *testing.T) {
	tests := []struct {
		rank     string
		expected int
	}{
		{"A", 11}, {"2", 2}, {"9", 9}, {"10", 10},
		{"J", 10}, {"Q", 10}, {"K", 10},
	}
	for _, tt := range tests {
		if got := BlackjackValue(tt.rank); got != tt.expected {
			t.Errorf("BlackjackValue(%s): expected %d, got %d", tt.rank, tt.expected, got)
		}
	}
}

func TestBlackjackHandValue(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected int
	}{
		{"natural", []Card{{Rank: "A", Suit: "♠"}, {Rank: "K", Suit: "♥"}}, 21},
		{"soft ace demoted", []Card{{Rank: "A", Suit: "♠"}, {Rank: "K", Suit: "♥"}, {Rank: "5", Suit: "♦"}}, 16},
		{"two aces", []Card{{Rank: "A", Suit: "♠"}, {Rank: "A", Suit: "♥"}, {Rank: "9", Suit: "♦"}}, 21},
		{"two aces high", []Card{{Rank: "A", Suit: "♠"}, {Rank: "A", Suit: "♥"}, {Rank: "K", Suit: "♦"}}, 12},
		{"hard bust", []Card{{Rank: "10", Suit: "♠"}, {Rank: "9", Suit: "♥"}, {Rank: "5", Suit: "♦"}}, 24},
	}
	for _, tt := range tests {
		if got := BlackjackHandValue(tt.cards); got != tt.expected {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.expected, got)
		}
	}
}

func TestBaccaratHandScore(t *testing.T) {
	// 7+7 = 14, reported score is 4
	cards := []Card{{Rank: "7", Suit: "♠"}, {Rank: "7", Suit: "♦"}}
	if got := BaccaratHandScore(cards); got != 4 {
		t.Errorf("expected score 4 for 14, got %d", got)
	}

	// face cards are worth nothing
	cards = []Card{{Rank: "K", Suit: "♠"}, {Rank: "Q", Suit: "♦"}, {Rank: "9", Suit: "♥"}}
	if got := BaccaratHandScore(cards); got != 9 {
		t.Errorf("expected score 9, got %d", got)
	}
}
