package games

// Card represents a playing card with rank and suit. Immutable once
// drawn.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns a human-readable card representation like "♦2" or "♠A".
func (c Card) String() string {
	return c.Suit + c.Rank
}

var cardSuits = []string{"♠", "♥", "♦", "♣"}

// Ranks in order: A, 2-10, J, Q, K
var cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// The full 52-card deck, suit-major: ♠A, ♠2, ..., ♣K
var fullDeck [52]Card

func init() {
	i := 0
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			fullDeck[i] = Card{Rank: rank, Suit: suit}
			i++
		}
	}
}

// cardFromFloat converts a float [0,1) to one of the 52 cards. Used by
// games with independent draws (HiLo), where the deck reshuffles every
// round.
func cardFromFloat(f float64) Card {
	index := int(f * 52)
	if index < 0 {
		index = 0
	}
	if index >= 52 {
		index = 51
	}
	return fullDeck[index]
}

// RankValue returns the comparison value of a card rank.
// A=1, 2=2, ..., 10=10, J=11, Q=12, K=13
func RankValue(rank string) int {
	switch rank {
	case "A":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	case "10":
		return 10
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	default:
		return 0
	}
}

// BaccaratValue returns the baccarat point value of a card.
// 2-9: face value, 10/J/Q/K: 0, A: 1
func BaccaratValue(rank string) int {
	v := RankValue(rank)
	if v > 9 {
		return 0
	}
	return v
}

// BlackjackValue returns the blackjack point value of a card.
// 2-10: face value, J/Q/K: 10, A: 11 (soft; hand scoring demotes to 1)
func BlackjackValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	default:
		return RankValue(rank)
	}
}

// BlackjackHandValue calculates the best blackjack hand value: the
// maximum total ≤ 21 with each ace counted as 1 or 11, or the minimum
// total when every choice busts.
func BlackjackHandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += BlackjackValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// BaccaratHandScore calculates the baccarat hand score (sum of card
// values mod 10).
func BaccaratHandScore(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += BaccaratValue(c.Rank)
	}
	return total % 10
}

func cardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
