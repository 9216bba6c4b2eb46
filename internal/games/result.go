package games

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RoundResult is the outcome of one resolved round. Produced once,
// never partially filled. Payout is the signed winnings only; the
// stake itself is returned (or kept) by the caller's ledger.
type RoundResult struct {
	Game           string          `json:"game"`
	Won            bool            `json:"won"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Payout         int64           `json:"payout"`
	Classification string          `json:"classification"`
	Details        map[string]any  `json:"details,omitempty"`
}

// Push reports whether the round ended in a stake-returning tie.
func (r RoundResult) Push() bool {
	return r.Classification == "push"
}

// payoutAmount computes stake x multiplier exactly in decimal
// arithmetic, truncated toward zero for the integer wire value.
func payoutAmount(stake int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(stake).Mul(multiplier).IntPart()
}

// validateStake rejects non-positive stakes. Balance sufficiency is
// the caller's concern, never the engine's.
func validateStake(game string, stake int64) error {
	if stake <= 0 {
		return &InvalidSelectionError{Game: game, Field: "stake", Value: stake, Reason: "must be > 0"}
	}
	return nil
}

// GameSpec is the metadata the API layer exposes per game.
type GameSpec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Game is anything registered for listing. Round resolution stays on
// the concrete engine types; the registry only carries metadata.
type Game interface {
	Spec() GameSpec
}

// Registry holds the constructed engines for one process.
type Registry struct {
	games map[string]Game
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]Game)}
}

// Register adds a game, replacing any previous entry with the same ID.
func (r *Registry) Register(g Game) {
	r.games[g.Spec().ID] = g
}

// Get retrieves a game by ID.
func (r *Registry) Get(id string) (Game, bool) {
	g, ok := r.games[id]
	return g, ok
}

// List returns the specs of all registered games, sorted by ID.
func (r *Registry) List() []GameSpec {
	specs := make([]GameSpec, 0, len(r.games))
	for _, g := range r.games {
		specs = append(specs, g.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
