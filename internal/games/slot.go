package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"casino-hub/core/internal/rng"
)

// SlotSymbol is one reel symbol with its payout multiplier and rarity
// weight.
type SlotSymbol struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Emoji      string  `json:"emoji"`
	Multiplier int64   `json:"multiplier"`
	Rarity     float64 `json:"rarity"`
}

// SlotConfig describes one slot variant. MatchPayouts maps a match
// count to the fraction of the symbol multiplier paid; the mapping is
// explicit game content, never inferred. A non-empty JackpotSymbol
// makes the variant progressive: an all-reels match on it pays the
// jackpot pool, and JackpotRate of every stake feeds the pool.
type SlotConfig struct {
	ID            string
	Name          string
	Reels         int
	Symbols       []SlotSymbol
	MatchPayouts  map[int]decimal.Decimal
	JackpotSymbol string
	JackpotRate   decimal.Decimal
}

// SlotEngine spins one variant. Each reel independently draws a symbol
// from the weighted rarity table.
type SlotEngine struct {
	cfg     SlotConfig
	weights *WeightedTable
	jackpot *JackpotPool
}

// NewSlotEngine validates the variant configuration. Progressive
// variants require a pool.
func NewSlotEngine(cfg SlotConfig, jackpot *JackpotPool) (*SlotEngine, error) {
	if cfg.Reels < 2 {
		return nil, &InvalidTableError{Game: cfg.ID, Table: "config", Reason: "must have at least 2 reels"}
	}
	if len(cfg.Symbols) == 0 {
		return nil, &InvalidTableError{Game: cfg.ID, Table: "symbol", Reason: "empty"}
	}
	weights := make([]float64, len(cfg.Symbols))
	for i, s := range cfg.Symbols {
		if s.Multiplier <= 0 {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "symbol", Reason: fmt.Sprintf("multiplier for %s must be > 0", s.Name)}
		}
		weights[i] = s.Rarity
	}
	table, err := NewWeightedTable(cfg.ID, weights)
	if err != nil {
		return nil, err
	}

	if len(cfg.MatchPayouts) == 0 {
		return nil, &InvalidTableError{Game: cfg.ID, Table: "match payout", Reason: "empty"}
	}
	for count, factor := range cfg.MatchPayouts {
		if count < 2 || count > cfg.Reels {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "match payout", Reason: fmt.Sprintf("match count %d out of range 2-%d", count, cfg.Reels)}
		}
		if factor.Sign() <= 0 {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "match payout", Reason: fmt.Sprintf("factor for %d matches must be > 0", count)}
		}
	}

	if cfg.JackpotSymbol != "" {
		found := false
		for _, s := range cfg.Symbols {
			if s.Name == cfg.JackpotSymbol {
				found = true
				break
			}
		}
		if !found {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "config", Reason: "jackpot symbol " + cfg.JackpotSymbol + " not in symbol table"}
		}
		if cfg.JackpotRate.Sign() <= 0 || cfg.JackpotRate.Cmp(decimal.NewFromInt(1)) >= 0 {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "config", Reason: "jackpot rate must be in (0,1)"}
		}
		if jackpot == nil {
			return nil, &InvalidTableError{Game: cfg.ID, Table: "config", Reason: "progressive variant requires a jackpot pool"}
		}
	}

	return &SlotEngine{cfg: cfg, weights: table, jackpot: jackpot}, nil
}

// Spec returns metadata about this slot variant.
func (e *SlotEngine) Spec() GameSpec {
	return GameSpec{ID: e.cfg.ID, Name: e.cfg.Name}
}

// Jackpot returns the pool for progressive variants, nil otherwise.
func (e *SlotEngine) Jackpot() *JackpotPool {
	return e.jackpot
}

// Spin draws one symbol per reel and evaluates the best match run.
func (e *SlotEngine) Spin(stake int64, src rng.Source) (RoundResult, error) {
	if err := validateStake(e.cfg.ID, stake); err != nil {
		return RoundResult{}, err
	}

	// The pool grows on every progressive stake, winning or not.
	if e.cfg.JackpotSymbol != "" {
		contribution := e.cfg.JackpotRate.Mul(decimal.NewFromInt(stake)).IntPart()
		e.jackpot.Add(contribution)
	}

	reels := make([]int, e.cfg.Reels)
	emojis := make([]string, e.cfg.Reels)
	counts := make(map[int]int, e.cfg.Reels)
	for i := range reels {
		idx := e.weights.Pick(src)
		reels[i] = idx
		emojis[i] = e.cfg.Symbols[idx].Emoji
		counts[idx]++
	}

	// Best symbol = highest match count, multiplier breaking ties.
	best := -1
	bestCount := 0
	for idx, count := range counts {
		if count > bestCount || (count == bestCount && best >= 0 && e.cfg.Symbols[idx].Multiplier > e.cfg.Symbols[best].Multiplier) {
			best = idx
			bestCount = count
		}
	}

	details := map[string]any{
		"reels":   reels,
		"symbols": emojis,
		"matches": bestCount,
	}

	symbol := e.cfg.Symbols[best]
	details["symbol"] = symbol.Name

	// Five crowns (all reels on the jackpot symbol) pay the pool, not
	// the listed multiplier.
	if e.cfg.JackpotSymbol != "" && bestCount == e.cfg.Reels && symbol.Name == e.cfg.JackpotSymbol {
		paid := e.jackpot.PayOut()
		details["jackpot"] = true
		return RoundResult{
			Game:           e.cfg.ID,
			Won:            true,
			Multiplier:     decimal.NewFromInt(paid).Div(decimal.NewFromInt(stake)),
			Payout:         paid,
			Classification: "jackpot",
			Details:        details,
		}, nil
	}

	factor, ok := e.cfg.MatchPayouts[bestCount]
	if !ok {
		return RoundResult{
			Game:           e.cfg.ID,
			Won:            false,
			Multiplier:     decimal.Zero,
			Payout:         0,
			Classification: "loss",
			Details:        details,
		}, nil
	}

	multiplier := decimal.NewFromInt(symbol.Multiplier).Mul(factor)
	return RoundResult{
		Game:           e.cfg.ID,
		Won:            true,
		Multiplier:     multiplier,
		Payout:         payoutAmount(stake, multiplier),
		Classification: fmt.Sprintf("%d_of_a_kind", bestCount),
		Details:        details,
	}, nil
}
