package sim

import (
	"context"
	"errors"
	"testing"

	"casino-hub/core/internal/games"
	"casino-hub/core/internal/rng"
)

func scratchPlay(t *testing.T, stake int64) PlayFunc {
	t.Helper()
	engine, err := games.NewScratchEngine(games.DefaultScratchPrizes())
	if err != nil {
		t.Fatalf("NewScratchEngine failed: %v", err)
	}
	return func(src rng.Source) (games.RoundResult, error) {
		return engine.Play(stake, src)
	}
}

func TestSimulatorRequestValidation(t *testing.T) {
	s := New(2)
	play := scratchPlay(t, 10)

	if _, err := s.Run(context.Background(), Request{Stake: 0, NonceEnd: 10}, play); err == nil {
		t.Error("expected error for zero stake")
	}
	if _, err := s.Run(context.Background(), Request{Stake: 10, NonceStart: 5, NonceEnd: 4}, play); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := s.Run(context.Background(), Request{Stake: 10, NonceStart: 0, NonceEnd: MaxRounds + 5}, play); err == nil {
		t.Error("expected error for oversized range")
	}
}

func TestSimulatorAggregates(t *testing.T) {
	s := New(4)
	req := Request{
		ServerSeed: "sim-server",
		ClientSeed: "sim-client",
		NonceStart: 1,
		NonceEnd:   2000,
		Stake:      10,
	}

	result, err := s.Run(context.Background(), req, scratchPlay(t, req.Stake))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Rounds != 2000 {
		t.Errorf("expected 2000 rounds, got %d", result.Rounds)
	}
	if result.TotalStaked != 20000 {
		t.Errorf("expected 20000 staked, got %d", result.TotalStaked)
	}
	if got := float64(result.TotalReturned) / float64(result.TotalStaked); got != result.RTP {
		t.Errorf("RTP %f inconsistent with totals %f", result.RTP, got)
	}

	var classified uint64
	for _, count := range result.Classifications {
		classified += count
	}
	if classified != result.Rounds {
		t.Errorf("classifications cover %d rounds of %d", classified, result.Rounds)
	}

	// Uniform panels pay 10x at best.
	if result.MaxPayout != 100 {
		t.Errorf("expected max payout 100, got %d", result.MaxPayout)
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	req := Request{
		ServerSeed: "sim-server",
		ClientSeed: "sim-client",
		NonceStart: 50,
		NonceEnd:   550,
		Stake:      25,
	}

	// Worker count must not change the aggregate.
	serial, err := New(1).Run(context.Background(), req, scratchPlay(t, req.Stake))
	if err != nil {
		t.Fatalf("serial run failed: %v", err)
	}
	parallel, err := New(8).Run(context.Background(), req, scratchPlay(t, req.Stake))
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}

	if serial.Rounds != parallel.Rounds ||
		serial.Wins != parallel.Wins ||
		serial.TotalReturned != parallel.TotalReturned ||
		serial.MaxPayout != parallel.MaxPayout ||
		serial.MaxPayoutNonce != parallel.MaxPayoutNonce {
		t.Errorf("aggregates differ:\nserial   %+v\nparallel %+v", serial, parallel)
	}
	for classification, count := range serial.Classifications {
		if parallel.Classifications[classification] != count {
			t.Errorf("classification %s: %d vs %d", classification, count, parallel.Classifications[classification])
		}
	}
}

func TestSimulatorPropagatesPlayError(t *testing.T) {
	s := New(2)
	boom := errors.New("bad table")
	play := func(src rng.Source) (games.RoundResult, error) {
		return games.RoundResult{}, boom
	}

	_, err := s.Run(context.Background(), Request{ServerSeed: "a", ClientSeed: "b", NonceStart: 1, NonceEnd: 100, Stake: 1}, play)
	if !errors.Is(err, boom) {
		t.Errorf("expected play error, got %v", err)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	s := New(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Request{ServerSeed: "a", ClientSeed: "b", NonceStart: 1, NonceEnd: 10000, Stake: 1}, scratchPlay(t, 1))
	if err != nil {
		t.Fatalf("cancelled run must return partial aggregate, got %v", err)
	}
	if result.Rounds > 10000 {
		t.Errorf("impossible round count %d", result.Rounds)
	}
}
