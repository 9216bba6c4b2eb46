package games

import "github.com/shopspring/decimal"

// DefaultSlotConfig is the classic 3-reel machine: nine symbols, two
// matching symbols pay 30% of the symbol multiplier, three pay it in
// full.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		ID:    "slot",
		Name:  "Slot Machine",
		Reels: 3,
		Symbols: []SlotSymbol{
			{ID: 1, Name: "Cherry", Emoji: "🍒", Multiplier: 2, Rarity: 0.25},
			{ID: 2, Name: "Lemon", Emoji: "🍋", Multiplier: 3, Rarity: 0.20},
			{ID: 3, Name: "Orange", Emoji: "🍊", Multiplier: 4, Rarity: 0.15},
			{ID: 4, Name: "Grapes", Emoji: "🍇", Multiplier: 6, Rarity: 0.12},
			{ID: 5, Name: "Bell", Emoji: "🔔", Multiplier: 8, Rarity: 0.10},
			{ID: 6, Name: "Star", Emoji: "⭐", Multiplier: 12, Rarity: 0.08},
			{ID: 7, Name: "Diamond", Emoji: "💎", Multiplier: 20, Rarity: 0.05},
			{ID: 8, Name: "Lucky 7", Emoji: "7️⃣", Multiplier: 50, Rarity: 0.03},
			{ID: 9, Name: "Crown", Emoji: "👑", Multiplier: 100, Rarity: 0.02},
		},
		MatchPayouts: map[int]decimal.Decimal{
			2: decimal.RequireFromString("0.3"),
			3: decimal.NewFromInt(1),
		},
	}
}

// DefaultProgressiveSlotConfig is the 5-reel progressive machine: six
// symbols, 4-of-a-kind pays triple and 5-of-a-kind tenfold the symbol
// multiplier; five Crowns pay the jackpot pool instead.
func DefaultProgressiveSlotConfig() SlotConfig {
	return SlotConfig{
		ID:    "progressive",
		Name:  "Progressive Slot",
		Reels: 5,
		Symbols: []SlotSymbol{
			{ID: 1, Name: "Cherry", Emoji: "🍒", Multiplier: 2, Rarity: 0.30},
			{ID: 2, Name: "Lemon", Emoji: "🍋", Multiplier: 3, Rarity: 0.25},
			{ID: 3, Name: "Bell", Emoji: "🔔", Multiplier: 5, Rarity: 0.20},
			{ID: 4, Name: "Diamond", Emoji: "💎", Multiplier: 10, Rarity: 0.15},
			{ID: 5, Name: "Star", Emoji: "⭐", Multiplier: 15, Rarity: 0.08},
			{ID: 6, Name: "Crown", Emoji: "👑", Multiplier: 25, Rarity: 0.02},
		},
		MatchPayouts: map[int]decimal.Decimal{
			3: decimal.NewFromInt(1),
			4: decimal.NewFromInt(3),
			5: decimal.NewFromInt(10),
		},
		JackpotSymbol: "Crown",
		JackpotRate:   decimal.RequireFromString("0.1"),
	}
}

// DefaultJackpotSeed is the value the progressive pool resets to after
// a jackpot payout.
const DefaultJackpotSeed = 50000
