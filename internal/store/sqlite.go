package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			stake INTEGER NOT NULL,
			multiplier TEXT NOT NULL DEFAULT '0',
			payout INTEGER NOT NULL DEFAULT 0,
			classification TEXT NOT NULL,
			details_json TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS wallet (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			balance INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT,
			kind TEXT NOT NULL,
			delta INTEGER NOT NULL,
			balance_after INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (round_id) REFERENCES rounds(id)
		)`,
		`CREATE TABLE IF NOT EXISTS jackpot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			amount INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_game_created ON rounds(game, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_round_id ON ledger(round_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// InitWallet seeds the wallet row if it does not exist yet. An
// existing balance is never overwritten.
func (s *SQLiteDB) InitWallet(balance int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO wallet (id, balance) VALUES (1, ?)", balance)
	if err != nil {
		return fmt.Errorf("failed to init wallet: %w", err)
	}
	return nil
}

// Balance returns the current wallet balance
func (s *SQLiteDB) Balance() (int64, error) {
	var balance int64
	err := s.db.QueryRow("SELECT balance FROM wallet WHERE id = 1").Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

// Deposit credits the wallet and records a ledger entry
func (s *SQLiteDB) Deposit(amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("store: deposit amount must be > 0, got %d", amount)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := addToWallet(tx, amount)
	if err != nil {
		return 0, err
	}
	if err := writeLedger(tx, "", "deposit", amount, balance); err != nil {
		return 0, err
	}

	return balance, tx.Commit()
}

// SettleRound persists a round and its wallet movements atomically:
// the stake is debited, the round inserted, and credit (winnings plus
// any returned stake) applied in a single transaction. Returns the
// balance afterwards, or ErrInsufficientFunds with nothing changed.
func (s *SQLiteDB) SettleRound(round *Round, credit int64) (int64, error) {
	if round.ID == "" {
		round.ID = uuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance int64
	if err := tx.QueryRow("SELECT balance FROM wallet WHERE id = 1").Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance < round.Stake {
		return 0, ErrInsufficientFunds
	}

	_, err = tx.Exec(`INSERT INTO rounds (
		id, game, stake, multiplier, payout, classification, details_json
	) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.Game, round.Stake, round.Multiplier,
		round.Payout, round.Classification, round.DetailsJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert round: %w", err)
	}

	balance, err = addToWallet(tx, -round.Stake)
	if err != nil {
		return 0, err
	}
	if err := writeLedger(tx, round.ID, "stake", -round.Stake, balance); err != nil {
		return 0, err
	}

	if credit > 0 {
		balance, err = addToWallet(tx, credit)
		if err != nil {
			return 0, err
		}
		if err := writeLedger(tx, round.ID, "credit", credit, balance); err != nil {
			return 0, err
		}
	}

	return balance, tx.Commit()
}

func addToWallet(tx *sql.Tx, delta int64) (int64, error) {
	if _, err := tx.Exec("UPDATE wallet SET balance = balance + ? WHERE id = 1", delta); err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}
	var balance int64
	if err := tx.QueryRow("SELECT balance FROM wallet WHERE id = 1").Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

func writeLedger(tx *sql.Tx, roundID, kind string, delta, balanceAfter int64) error {
	var round any
	if roundID != "" {
		round = roundID
	}
	_, err := tx.Exec(
		"INSERT INTO ledger (round_id, kind, delta, balance_after) VALUES (?, ?, ?, ?)",
		round, kind, delta, balanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to write ledger entry: %w", err)
	}
	return nil
}

// GetRound retrieves a round by ID
func (s *SQLiteDB) GetRound(id string) (*Round, error) {
	query := `SELECT id, game, stake, multiplier, payout, classification, details_json, created_at
		FROM rounds WHERE id = ?`

	var round Round
	var details sql.NullString
	err := s.db.QueryRow(query, id).Scan(
		&round.ID, &round.Game, &round.Stake, &round.Multiplier,
		&round.Payout, &round.Classification, &details, &round.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query round: %w", err)
	}

	if details.Valid {
		round.DetailsJSON = details.String
	}

	return &round, nil
}

// ListRounds retrieves rounds with pagination and filtering
func (s *SQLiteDB) ListRounds(query RoundsQuery) (*RoundsList, error) {
	whereClause := ""
	args := []any{}

	if query.Game != "" {
		whereClause = "WHERE game = ?"
		args = append(args, query.Game)
	}

	countQuery := "SELECT COUNT(*) FROM rounds " + whereClause
	var totalCount int
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50 // Default page size
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT id, game, stake, multiplier, payout, classification, details_json, created_at
		FROM rounds ` + whereClause + `
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`

	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	rounds, err := scanRounds(rows)
	if err != nil {
		return nil, err
	}

	return &RoundsList{
		Rounds:     rounds,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// RecentRounds returns the latest rounds across all games
func (s *SQLiteDB) RecentRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, game, stake, multiplier, payout, classification, details_json, created_at
		FROM rounds ORDER BY created_at DESC, id LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent rounds: %w", err)
	}
	defer rows.Close()

	return scanRounds(rows)
}

func scanRounds(rows *sql.Rows) ([]Round, error) {
	var rounds []Round
	for rows.Next() {
		var round Round
		var details sql.NullString

		err := rows.Scan(
			&round.ID, &round.Game, &round.Stake, &round.Multiplier,
			&round.Payout, &round.Classification, &details, &round.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}

		if details.Valid {
			round.DetailsJSON = details.String
		}

		rounds = append(rounds, round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rounds: %w", err)
	}

	return rounds, nil
}

// LedgerEntries returns the latest wallet movements
func (s *SQLiteDB) LedgerEntries(limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, round_id, kind, delta, balance_after, created_at
		FROM ledger ORDER BY id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var entry LedgerEntry
		var roundID sql.NullString

		err := rows.Scan(&entry.ID, &roundID, &entry.Kind, &entry.Delta, &entry.BalanceAfter, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		if roundID.Valid {
			entry.RoundID = roundID.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger: %w", err)
	}

	return entries, nil
}

// JackpotAmount returns the persisted progressive pool value,
// ErrNotFound before the first save.
func (s *SQLiteDB) JackpotAmount() (int64, error) {
	var amount int64
	err := s.db.QueryRow("SELECT amount FROM jackpot WHERE id = 1").Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read jackpot: %w", err)
	}
	return amount, nil
}

// SaveJackpot upserts the progressive pool value
func (s *SQLiteDB) SaveJackpot(amount int64) error {
	_, err := s.db.Exec(`INSERT INTO jackpot (id, amount) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET amount = excluded.amount`, amount)
	if err != nil {
		return fmt.Errorf("failed to save jackpot: %w", err)
	}
	return nil
}

// touchCreatedAt is only used by tests to backdate rows.
func (s *SQLiteDB) touchCreatedAt(roundID string, at time.Time) error {
	_, err := s.db.Exec("UPDATE rounds SET created_at = ? WHERE id = ?", at, roundID)
	return err
}
