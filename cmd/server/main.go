package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casino-hub/core/internal/api"
	"casino-hub/core/internal/config"
	"casino-hub/core/internal/games"
	"casino-hub/core/internal/rng"
	"casino-hub/core/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	db, err := store.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	if err := db.InitWallet(cfg.InitialBalance); err != nil {
		logger.Fatalf("init wallet: %v", err)
	}

	jackpot, err := games.NewJackpotPool(cfg.JackpotSeed)
	if err != nil {
		logger.Fatalf("jackpot pool: %v", err)
	}
	// Resume the pool where the last run left it.
	if saved, err := db.JackpotAmount(); err == nil {
		jackpot.Restore(saved)
	} else if !errors.Is(err, store.ErrNotFound) {
		logger.Fatalf("load jackpot: %v", err)
	}

	engines, err := api.DefaultEngines(jackpot)
	if err != nil {
		logger.Fatalf("engines: %v", err)
	}

	server := api.NewServer(db, engines, jackpot, rng.NewCrypto(), cfg.SimWorkers)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening addr=%s version=%s", cfg.Addr, api.EngineVersion)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		logger.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
		if err := db.SaveJackpot(jackpot.Amount()); err != nil {
			logger.Printf("persist jackpot: %v", err)
		}
	}
}
