package store

import (
	"errors"
	"time"
)

// ErrInsufficientFunds is returned when the wallet cannot cover a stake.
var ErrInsufficientFunds = errors.New("store: insufficient funds")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// DB represents the persistence interface
type DB interface {
	Close() error
	Migrate() error

	InitWallet(balance int64) error
	Balance() (int64, error)
	Deposit(amount int64) (int64, error)
	SettleRound(round *Round, credit int64) (int64, error)
	LedgerEntries(limit int) ([]LedgerEntry, error)

	GetRound(id string) (*Round, error)
	ListRounds(query RoundsQuery) (*RoundsList, error)
	RecentRounds(limit int) ([]Round, error)

	JackpotAmount() (int64, error)
	SaveJackpot(amount int64) error
}

// Round is one settled game round as persisted
type Round struct {
	ID             string    `json:"id" db:"id"`
	Game           string    `json:"game" db:"game"`
	Stake          int64     `json:"stake" db:"stake"`
	Multiplier     string    `json:"multiplier" db:"multiplier"` // exact decimal text
	Payout         int64     `json:"payout" db:"payout"`
	Classification string    `json:"classification" db:"classification"`
	DetailsJSON    string    `json:"details_json" db:"details_json"` // JSON string
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// RoundsQuery represents query parameters for listing rounds
type RoundsQuery struct {
	Game    string `json:"game,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// RoundsList represents a paginated rounds response
type RoundsList struct {
	Rounds     []Round `json:"rounds"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	TotalPages int     `json:"totalPages"`
}

// LedgerEntry is one wallet movement. Every settled round writes a
// stake debit and, when the round returns anything, a credit.
type LedgerEntry struct {
	ID           int64     `json:"id" db:"id"`
	RoundID      string    `json:"round_id,omitempty" db:"round_id"`
	Kind         string    `json:"kind" db:"kind"` // stake, credit, deposit
	Delta        int64     `json:"delta" db:"delta"`
	BalanceAfter int64     `json:"balance_after" db:"balance_after"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
