package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultAddr            = ":8080"
	DefaultDatabasePath    = "casino.db"
	DefaultInitialBalance  = 1000
	DefaultJackpotSeed     = 50000
	DefaultShutdownTimeout = 10 * time.Second
)

// Config carries all process configuration. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Addr            string
	DatabasePath    string
	InitialBalance  int64
	JackpotSeed     int64
	SimWorkers      int
	ShutdownTimeout time.Duration
}

// Load reads configuration from a .env file (when present) and the
// process environment. Environment variables win over file entries.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            envString("CASINO_ADDR", DefaultAddr),
		DatabasePath:    envString("CASINO_DB_PATH", DefaultDatabasePath),
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	var err error
	if cfg.InitialBalance, err = envInt64("CASINO_INITIAL_BALANCE", DefaultInitialBalance); err != nil {
		return nil, err
	}
	if cfg.JackpotSeed, err = envInt64("CASINO_JACKPOT_SEED", DefaultJackpotSeed); err != nil {
		return nil, err
	}
	workers, err := envInt64("CASINO_SIM_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	cfg.SimWorkers = int(workers)

	if raw := os.Getenv("CASINO_SHUTDOWN_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid CASINO_SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		cfg.ShutdownTimeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	if c.InitialBalance < 0 {
		return fmt.Errorf("config: initial balance must be >= 0, got %d", c.InitialBalance)
	}
	if c.JackpotSeed < 0 {
		return fmt.Errorf("config: jackpot seed must be >= 0, got %d", c.JackpotSeed)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be > 0, got %s", c.ShutdownTimeout)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
