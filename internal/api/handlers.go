package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"casino-hub/core/internal/games"
	"casino-hub/core/internal/rng"
	"casino-hub/core/internal/sim"
	"casino-hub/core/internal/store"
)

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}

// handleListGames returns metadata for every registered game
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GamesResponse{
		Games:         s.registry.List(),
		EngineVersion: EngineVersion,
	})
}

// roundCredit is the amount the wallet gets back for a settled round:
// winnings plus the stake on a win, the bare stake on a push, nothing
// on a loss.
func roundCredit(stake int64, result games.RoundResult) int64 {
	switch {
	case result.Won:
		return stake + result.Payout
	case result.Push():
		return stake
	default:
		return 0
	}
}

// settleRound persists the outcome and wallet movements, returning the
// stored round ID and the new balance.
func (s *Server) settleRound(stake int64, result games.RoundResult) (string, int64, error) {
	detailsJSON, err := json.Marshal(result.Details)
	if err != nil {
		return "", 0, err
	}

	round := &store.Round{
		Game:           result.Game,
		Stake:          stake,
		Multiplier:     result.Multiplier.String(),
		Payout:         result.Payout,
		Classification: result.Classification,
		DetailsJSON:    string(detailsJSON),
	}

	balance, err := s.db.SettleRound(round, roundCredit(stake, result))
	if err != nil {
		return "", 0, err
	}
	return round.ID, balance, nil
}

func (s *Server) playResponse(roundID string, stake int64, result games.RoundResult, balance int64) PlayResponse {
	return PlayResponse{
		RoundID:        roundID,
		Game:           result.Game,
		Won:            result.Won,
		Multiplier:     result.Multiplier.String(),
		Stake:          stake,
		Payout:         result.Payout,
		Classification: result.Classification,
		Details:        result.Details,
		Balance:        balance,
		EngineVersion:  EngineVersion,
	}
}

// respondSettled runs the common tail of every single-action game
// handler: persist, then echo the outcome with the fresh balance.
func (s *Server) respondSettled(w http.ResponseWriter, r *http.Request, stake int64, result games.RoundResult) {
	roundID, balance, err := s.settleRound(stake, result)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, result.Game, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.playResponse(roundID, stake, result, balance))
}

func (s *Server) handlePlayRoulette(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Bet == nil {
		s.errorHandler.HandleValidationError(w, r, "bet", "a bet selection is required")
		return
	}

	result, err := s.engines.Roulette.Spin(req.Stake, *req.Bet, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "roulette", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handlePlayBaccarat(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.engines.Baccarat.Play(req.Stake, req.Side, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "baccarat", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handlePlayKeno(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.engines.Keno.Play(req.Stake, req.Picks, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "keno", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handlePlaySlot(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.engines.Slot.Spin(req.Stake, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "slot", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handlePlayProgressive(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// The spin feeds the pool before the wallet settles, so reject
	// unaffordable stakes up front instead of unwinding the pool.
	balance, err := s.db.Balance()
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "progressive", err)
		return
	}
	if req.Stake > 0 && balance < req.Stake {
		s.errorHandler.HandleGameError(w, r, "progressive", store.ErrInsufficientFunds)
		return
	}

	result, err := s.engines.Progressive.Spin(req.Stake, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "progressive", err)
		return
	}

	if err := s.db.SaveJackpot(s.jackpot.Amount()); err != nil {
		s.logger.Printf("jackpot_persist_failed error=%v", err)
	}

	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handlePlayHiLo(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.engines.HiLo.Play(req.Stake, req.Guess, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "hilo", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

func (s *Server) handleHiLoPayouts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HiLoPayoutsResponse{
		Payouts:       s.engines.HiLo.Payouts(),
		TiePayout:     games.DefaultHiLoTiePayout().String(),
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handlePlayScratch(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.engines.Scratch.Play(req.Stake, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "scratch", err)
		return
	}
	s.respondSettled(w, r, req.Stake, result)
}

// blackjackState builds the player-visible round view. The dealer hole
// card stays masked until the round settles.
func (s *Server) blackjackState(roundID string, round *games.BlackjackRound, result *PlayResponse) BlackjackStateResponse {
	resp := BlackjackStateResponse{
		RoundID:       roundID,
		State:         round.State,
		Stake:         round.Stake,
		PlayerScore:   round.PlayerScore(),
		EngineVersion: EngineVersion,
	}
	for _, c := range round.PlayerCards {
		resp.PlayerCards = append(resp.PlayerCards, c.String())
	}
	if len(round.DealerCards) > 0 {
		resp.DealerUpCard = round.DealerCards[0].String()
	}

	if round.State == games.BlackjackSettled {
		for _, c := range round.DealerCards {
			resp.DealerCards = append(resp.DealerCards, c.String())
		}
		resp.DealerScore = round.DealerScore()
		resp.Result = result
	}
	return resp
}

// settleBlackjack persists a settled round and builds the final view.
// Rounds settled on the deal never had a session ID; the stored round
// ID stands in for it.
func (s *Server) settleBlackjack(roundID string, round *games.BlackjackRound) (BlackjackStateResponse, error) {
	storedID, balance, err := s.settleRound(round.Stake, *round.Result)
	if err != nil {
		return BlackjackStateResponse{}, err
	}
	if roundID == "" {
		roundID = storedID
	}
	result := s.playResponse(storedID, round.Stake, *round.Result, balance)
	return s.blackjackState(roundID, round, &result), nil
}

func (s *Server) handleBlackjackStart(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// The stake settles only when the round does; make sure it can.
	balance, err := s.db.Balance()
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "blackjack", err)
		return
	}
	if req.Stake > 0 && balance < req.Stake {
		s.errorHandler.HandleGameError(w, r, "blackjack", store.ErrInsufficientFunds)
		return
	}

	round, err := s.engines.Blackjack.Start(req.Stake, s.src)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "blackjack", err)
		return
	}

	if round.State == games.BlackjackSettled {
		resp, err := s.settleBlackjack("", round)
		if err != nil {
			s.errorHandler.HandleGameError(w, r, "blackjack", err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	id := s.sessions.put(round)
	s.writeJSON(w, http.StatusOK, s.blackjackState(id, round, nil))
}

// handleBlackjackAction runs hit or stand against an in-flight round.
func (s *Server) handleBlackjackAction(w http.ResponseWriter, r *http.Request, action func(*games.BlackjackRound) error) {
	var req BlackjackActionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.RoundID == "" {
		s.errorHandler.HandleValidationError(w, r, "round_id", "round_id is required")
		return
	}

	var resp BlackjackStateResponse
	found, err := s.sessions.withRound(req.RoundID, func(round *games.BlackjackRound) (bool, error) {
		if err := action(round); err != nil {
			return false, err
		}
		if round.State != games.BlackjackSettled {
			resp = s.blackjackState(req.RoundID, round, nil)
			return false, nil
		}
		settled, err := s.settleBlackjack(req.RoundID, round)
		if err != nil {
			// The round is resolved either way; drop the session so a
			// retry cannot replay it.
			return true, err
		}
		resp = settled
		return true, nil
	})

	if !found {
		s.errorHandler.HandleNotFound(w, r, ErrTypeRoundNotFound, "blackjack round")
		return
	}
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "blackjack", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlackjackHit(w http.ResponseWriter, r *http.Request) {
	s.handleBlackjackAction(w, r, s.engines.Blackjack.Hit)
}

func (s *Server) handleBlackjackStand(w http.ResponseWriter, r *http.Request) {
	s.handleBlackjackAction(w, r, s.engines.Blackjack.Stand)
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	balance, err := s.db.Balance()
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "wallet", err)
		return
	}
	ledger, err := s.db.LedgerEntries(20)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "wallet", err)
		return
	}
	s.writeJSON(w, http.StatusOK, WalletResponse{
		Balance:       balance,
		Ledger:        ledger,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		s.errorHandler.HandleValidationError(w, r, "amount", "deposit amount must be > 0")
		return
	}

	balance, err := s.db.Deposit(req.Amount)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "wallet", err)
		return
	}
	s.writeJSON(w, http.StatusOK, WalletResponse{
		Balance:       balance,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleListRounds(w http.ResponseWriter, r *http.Request) {
	query := store.RoundsQuery{
		Game:    r.URL.Query().Get("game"),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
	}

	list, err := s.db.ListRounds(query)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "rounds", err)
		return
	}
	s.writeJSON(w, http.StatusOK, RoundsResponse{
		RoundsList:    list,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleRecentRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.db.RecentRounds(queryInt(r, "limit"))
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "rounds", err)
		return
	}
	s.writeJSON(w, http.StatusOK, RecentRoundsResponse{
		Rounds:        rounds,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	round, err := s.db.GetRound(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.errorHandler.HandleNotFound(w, r, ErrTypeRoundNotFound, "round")
		return
	}
	if err != nil {
		s.errorHandler.HandleGameError(w, r, "rounds", err)
		return
	}
	s.writeJSON(w, http.StatusOK, round)
}

func (s *Server) handleJackpot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, JackpotResponse{
		Amount:        s.jackpot.Amount(),
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleSim(w http.ResponseWriter, r *http.Request) {
	var req SimRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	play, ok := s.simPlayFunc(req)
	if !ok {
		s.errorHandler.HandleNotFound(w, r, ErrTypeGameNotFound, "game "+req.Game)
		return
	}

	result, err := s.simulator.Run(r.Context(), req.Request, play)
	if err != nil {
		s.errorHandler.HandleGameError(w, r, req.Game, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SimResponse{
		Result:        result,
		EngineVersion: EngineVersion,
		Echo:          req,
	})
}

// simPlayFunc maps a simulation request onto a per-round closure.
// Simulated progressive spins run against a private pool so they never
// touch the live jackpot.
func (s *Server) simPlayFunc(req SimRequest) (sim.PlayFunc, bool) {
	stake := req.Stake

	switch req.Game {
	case "roulette":
		bet := games.RouletteBet{}
		if req.Bet != nil {
			bet = *req.Bet
		}
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.Roulette.Spin(stake, bet, src)
		}, true

	case "baccarat":
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.Baccarat.Play(stake, req.Side, src)
		}, true

	case "keno":
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.Keno.Play(stake, req.Picks, src)
		}, true

	case "slot":
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.Slot.Spin(stake, src)
		}, true

	case "progressive":
		pool, err := games.NewJackpotPool(games.DefaultJackpotSeed)
		if err != nil {
			return nil, false
		}
		engine, err := games.NewSlotEngine(games.DefaultProgressiveSlotConfig(), pool)
		if err != nil {
			return nil, false
		}
		return func(src rng.Source) (games.RoundResult, error) {
			return engine.Spin(stake, src)
		}, true

	case "hilo":
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.HiLo.Play(stake, req.Guess, src)
		}, true

	case "scratch":
		return func(src rng.Source) (games.RoundResult, error) {
			return s.engines.Scratch.Play(stake, src)
		}, true

	case "blackjack":
		// Fixed policy: hit to 17, then stand, mirroring the dealer.
		return func(src rng.Source) (games.RoundResult, error) {
			round, err := s.engines.Blackjack.Start(stake, src)
			if err != nil {
				return games.RoundResult{}, err
			}
			for round.State == games.BlackjackPlayerTurn && round.PlayerScore() < 17 {
				if err := s.engines.Blackjack.Hit(round); err != nil {
					return games.RoundResult{}, err
				}
			}
			if round.State == games.BlackjackPlayerTurn {
				if err := s.engines.Blackjack.Stand(round); err != nil {
					return games.RoundResult{}, err
				}
			}
			return *round.Result, nil
		}, true
	}

	return nil, false
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
