package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"casino-hub/core/internal/games"
	"casino-hub/core/internal/rng"
	"casino-hub/core/internal/sim"
	"casino-hub/core/internal/store"
)

// Engines bundles the constructed game engines the server plays with.
type Engines struct {
	Blackjack   *games.BlackjackEngine
	Roulette    *games.RouletteEngine
	Baccarat    *games.BaccaratEngine
	Keno        *games.KenoEngine
	Slot        *games.SlotEngine
	Progressive *games.SlotEngine
	HiLo        *games.HiLoEngine
	Scratch     *games.ScratchEngine
}

// DefaultEngines wires every game with its stock tables. The
// progressive slot shares the given pool.
func DefaultEngines(jackpot *games.JackpotPool) (Engines, error) {
	blackjack, err := games.NewBlackjackEngine(games.DefaultBlackjackPayouts())
	if err != nil {
		return Engines{}, err
	}
	roulette, err := games.NewRouletteEngine(games.DefaultRoulettePockets(), games.DefaultRoulettePayouts())
	if err != nil {
		return Engines{}, err
	}
	baccarat, err := games.NewBaccaratEngine(games.DefaultBaccaratPayouts())
	if err != nil {
		return Engines{}, err
	}
	keno, err := games.NewKenoEngine(games.DefaultKenoPayouts())
	if err != nil {
		return Engines{}, err
	}
	slot, err := games.NewSlotEngine(games.DefaultSlotConfig(), nil)
	if err != nil {
		return Engines{}, err
	}
	progressive, err := games.NewSlotEngine(games.DefaultProgressiveSlotConfig(), jackpot)
	if err != nil {
		return Engines{}, err
	}
	hilo, err := games.NewHiLoEngine(games.DefaultHiLoPayouts(), games.DefaultHiLoTiePayout())
	if err != nil {
		return Engines{}, err
	}
	scratch, err := games.NewScratchEngine(games.DefaultScratchPrizes())
	if err != nil {
		return Engines{}, err
	}

	return Engines{
		Blackjack:   blackjack,
		Roulette:    roulette,
		Baccarat:    baccarat,
		Keno:        keno,
		Slot:        slot,
		Progressive: progressive,
		HiLo:        hilo,
		Scratch:     scratch,
	}, nil
}

// registry builds the metadata registry from the wired engines.
func (e Engines) registry() *games.Registry {
	r := games.NewRegistry()
	for _, g := range []games.Game{
		e.Blackjack, e.Roulette, e.Baccarat, e.Keno,
		e.Slot, e.Progressive, e.HiLo, e.Scratch,
	} {
		r.Register(g)
	}
	return r
}

// blackjackSessions holds in-flight blackjack rounds between actions.
// Rounds never outlive the process; the store only sees settled ones.
type blackjackSessions struct {
	mu     sync.Mutex
	rounds map[string]*games.BlackjackRound
}

func newBlackjackSessions() *blackjackSessions {
	return &blackjackSessions{rounds: make(map[string]*games.BlackjackRound)}
}

func (s *blackjackSessions) put(round *games.BlackjackRound) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.rounds[id] = round
	s.mu.Unlock()
	return id
}

// withRound runs fn on the identified round while holding the session
// lock, so concurrent actions on the same round serialize. When fn
// reports the round settled it is dropped from the session table.
func (s *blackjackSessions) withRound(id string, fn func(*games.BlackjackRound) (settled bool, err error)) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok {
		return false, nil
	}
	settled, err := fn(round)
	if settled {
		delete(s.rounds, id)
	}
	return true, err
}

// Server handles HTTP requests
type Server struct {
	db           store.DB
	engines      Engines
	registry     *games.Registry
	jackpot      *games.JackpotPool
	src          rng.Source
	simulator    *sim.Simulator
	sessions     *blackjackSessions
	errorHandler *ErrorHandler
	logger       *log.Logger
	startTime    time.Time
}

// NewServer creates a new API server
func NewServer(db store.DB, engines Engines, jackpot *games.JackpotPool, src rng.Source, simWorkers int) *Server {
	logger := log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile)

	return &Server{
		db:           db,
		engines:      engines,
		registry:     engines.registry(),
		jackpot:      jackpot,
		src:          src,
		simulator:    sim.New(simWorkers),
		sessions:     newBlackjackSessions(),
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		startTime:    time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health and monitoring endpoints
	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/games", s.handleListGames)

		r.Post("/roulette/play", s.handlePlayRoulette)
		r.Post("/baccarat/play", s.handlePlayBaccarat)
		r.Post("/keno/play", s.handlePlayKeno)
		r.Post("/slot/play", s.handlePlaySlot)
		r.Post("/progressive/play", s.handlePlayProgressive)
		r.Post("/hilo/play", s.handlePlayHiLo)
		r.Get("/hilo/payouts", s.handleHiLoPayouts)
		r.Post("/scratch/play", s.handlePlayScratch)

		r.Post("/blackjack/start", s.handleBlackjackStart)
		r.Post("/blackjack/hit", s.handleBlackjackHit)
		r.Post("/blackjack/stand", s.handleBlackjackStand)

		r.Get("/wallet", s.handleWallet)
		r.Post("/wallet/deposit", s.handleDeposit)

		r.Get("/rounds", s.handleListRounds)
		r.Get("/rounds/recent", s.handleRecentRounds)
		r.Get("/rounds/{id}", s.handleGetRound)

		r.Get("/jackpot", s.handleJackpot)

		r.Post("/sim", s.handleSim)
	})

	return r
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, try to write a simple error response
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown
// garbage early.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "request body is not valid JSON")
		return false
	}
	return true
}
