package api

import (
	"casino-hub/core/internal/games"
	"casino-hub/core/internal/sim"
	"casino-hub/core/internal/store"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeValidation    = "validation_error"
	ErrTypeInvalidParams = "invalid_params"

	// Game-related errors
	ErrTypeGameNotFound      = "game_not_found"
	ErrTypeInvalidSelection  = "invalid_selection"
	ErrTypeInvalidTransition = "invalid_state_transition"
	ErrTypeRoundNotFound     = "round_not_found"

	// Wallet errors
	ErrTypeInsufficientFunds = "insufficient_funds"

	// System errors
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryGame       ErrorCategory = "game"
	CategoryWallet     ErrorCategory = "wallet"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeValidation, ErrTypeInvalidParams:
		return CategoryValidation
	case ErrTypeGameNotFound, ErrTypeInvalidSelection, ErrTypeInvalidTransition, ErrTypeRoundNotFound:
		return CategoryGame
	case ErrTypeInsufficientFunds:
		return CategoryWallet
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// PlayRequest carries the stake plus the per-game selection fields.
// Each handler reads only the fields its game defines.
type PlayRequest struct {
	Stake int64 `json:"stake"`

	// roulette
	Bet *games.RouletteBet `json:"bet,omitempty"`

	// baccarat
	Side string `json:"side,omitempty"`

	// keno
	Picks []int `json:"picks,omitempty"`

	// hilo
	Guess string `json:"guess,omitempty"`
}

// PlayResponse is the settled outcome of a single-action round.
type PlayResponse struct {
	RoundID        string         `json:"round_id"`
	Game           string         `json:"game"`
	Won            bool           `json:"won"`
	Multiplier     string         `json:"multiplier"`
	Stake          int64          `json:"stake"`
	Payout         int64          `json:"payout"`
	Classification string         `json:"classification"`
	Details        map[string]any `json:"details,omitempty"`
	Balance        int64          `json:"balance"`
	EngineVersion  string         `json:"engine_version"`
}

// BlackjackActionRequest addresses an in-flight blackjack round.
type BlackjackActionRequest struct {
	RoundID string `json:"round_id"`
}

// BlackjackStateResponse is the player-visible view of a blackjack
// round. The dealer hole card stays hidden until the round settles.
type BlackjackStateResponse struct {
	RoundID       string         `json:"round_id"`
	State         string         `json:"state"`
	Stake         int64          `json:"stake"`
	PlayerCards   []string       `json:"player_cards"`
	PlayerScore   int            `json:"player_score"`
	DealerUpCard  string         `json:"dealer_up_card"`
	DealerCards   []string       `json:"dealer_cards,omitempty"`
	DealerScore   int            `json:"dealer_score,omitempty"`
	Result        *PlayResponse  `json:"result,omitempty"`
	EngineVersion string         `json:"engine_version"`
}

// GamesResponse represents the games metadata response
type GamesResponse struct {
	Games         []games.GameSpec `json:"games"`
	EngineVersion string           `json:"engine_version"`
}

// WalletResponse reports the balance and recent movements.
type WalletResponse struct {
	Balance       int64               `json:"balance"`
	Ledger        []store.LedgerEntry `json:"ledger,omitempty"`
	EngineVersion string              `json:"engine_version"`
}

// DepositRequest credits the wallet.
type DepositRequest struct {
	Amount int64 `json:"amount"`
}

// JackpotResponse reports the progressive pool.
type JackpotResponse struct {
	Amount        int64  `json:"amount"`
	EngineVersion string `json:"engine_version"`
}

// HiLoPayoutsResponse exposes the fixed multiplier curve so clients
// can render odds before betting.
type HiLoPayoutsResponse struct {
	Payouts       [14]games.HiLoPayout `json:"payouts"`
	TiePayout     string               `json:"tie_payout"`
	EngineVersion string               `json:"engine_version"`
}

// SimRequest describes a deterministic RTP simulation.
type SimRequest struct {
	Game string `json:"game"`
	sim.Request

	// Per-game selections, same shape as PlayRequest.
	Bet   *games.RouletteBet `json:"bet,omitempty"`
	Side  string             `json:"side,omitempty"`
	Picks []int              `json:"picks,omitempty"`
	Guess string             `json:"guess,omitempty"`
}

// SimResponse wraps the aggregate with the echoed request.
type SimResponse struct {
	Result        *sim.Result `json:"result"`
	EngineVersion string      `json:"engine_version"`
	Echo          SimRequest  `json:"echo"`
}

// RoundsResponse wraps a paginated round listing.
type RoundsResponse struct {
	*store.RoundsList
	EngineVersion string `json:"engine_version"`
}

// RecentRoundsResponse lists the latest settled rounds.
type RecentRoundsResponse struct {
	Rounds        []store.Round `json:"rounds"`
	EngineVersion string        `json:"engine_version"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engine_version"`
	Timestamp     string `json:"timestamp"`
}
