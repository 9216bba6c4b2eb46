package sim

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"casino-hub/core/internal/games"
	"casino-hub/core/internal/rng"
)

// MaxRounds caps a single simulation request.
const MaxRounds = 1_000_000

// PlayFunc resolves one round against a source. The simulator calls it
// once per nonce with a fresh deterministic stream.
type PlayFunc func(src rng.Source) (games.RoundResult, error)

// Request describes a deterministic simulation over a nonce range.
// Every nonce maps to one round: stream(serverSeed, clientSeed, nonce)
// drives the round, so results are reproducible and auditable.
type Request struct {
	ServerSeed string `json:"server_seed"`
	ClientSeed string `json:"client_seed"`
	NonceStart uint64 `json:"nonce_start"`
	NonceEnd   uint64 `json:"nonce_end"`
	Stake      int64  `json:"stake"`
}

// Result aggregates a finished simulation.
type Result struct {
	Rounds          uint64            `json:"rounds"`
	Wins            uint64            `json:"wins"`
	Pushes          uint64            `json:"pushes"`
	TotalStaked     int64             `json:"total_staked"`
	TotalReturned   int64             `json:"total_returned"`
	RTP             float64           `json:"rtp"`
	MaxPayout       int64             `json:"max_payout"`
	MaxPayoutNonce  uint64            `json:"max_payout_nonce"`
	Classifications map[string]uint64 `json:"classifications"`
}

// Simulator fans a nonce range out over a worker pool.
type Simulator struct {
	workers int
}

// New returns a simulator with the given worker count; zero or
// negative means one worker per CPU.
func New(workers int) *Simulator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Simulator{workers: workers}
}

type aggregate struct {
	rounds          uint64
	wins            uint64
	pushes          uint64
	totalReturned   int64
	maxPayout       int64
	maxPayoutNonce  uint64
	classifications map[string]uint64
}

func newAggregate() *aggregate {
	return &aggregate{classifications: make(map[string]uint64)}
}

func (a *aggregate) record(nonce uint64, stake int64, result games.RoundResult) {
	a.rounds++
	a.classifications[result.Classification]++

	returned := int64(0)
	switch {
	case result.Won:
		a.wins++
		returned = stake + result.Payout
	case result.Push():
		a.pushes++
		returned = stake
	}
	a.totalReturned += returned

	if result.Payout > a.maxPayout {
		a.maxPayout = result.Payout
		a.maxPayoutNonce = nonce
	}
}

func (a *aggregate) merge(other *aggregate) {
	a.rounds += other.rounds
	a.wins += other.wins
	a.pushes += other.pushes
	a.totalReturned += other.totalReturned
	for classification, count := range other.classifications {
		a.classifications[classification] += count
	}
	if other.maxPayout > a.maxPayout {
		a.maxPayout = other.maxPayout
		a.maxPayoutNonce = other.maxPayoutNonce
	}
}

// Run plays one round per nonce in [NonceStart, NonceEnd] and
// aggregates the outcomes. Cancelling the context returns the partial
// aggregate without error.
func (s *Simulator) Run(ctx context.Context, req Request, play PlayFunc) (*Result, error) {
	if req.Stake <= 0 {
		return nil, fmt.Errorf("sim: stake must be > 0, got %d", req.Stake)
	}
	if req.NonceEnd < req.NonceStart {
		return nil, fmt.Errorf("sim: nonce_end %d before nonce_start %d", req.NonceEnd, req.NonceStart)
	}
	span := req.NonceEnd - req.NonceStart + 1
	if span > MaxRounds {
		return nil, fmt.Errorf("sim: range of %d rounds exceeds limit of %d", span, MaxRounds)
	}

	// Workers claim nonces from a shared counter so uneven round costs
	// balance out.
	next := req.NonceStart
	nextPtr := &next

	total := newAggregate()
	var firstErr error
	var totalMu sync.Mutex

	var wg sync.WaitGroup

	workers := s.workers
	if uint64(workers) > span {
		workers = int(span)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newAggregate()

			for {
				select {
				case <-ctx.Done():
					totalMu.Lock()
					total.merge(local)
					totalMu.Unlock()
					return
				default:
				}

				nonce := atomic.AddUint64(nextPtr, 1) - 1
				if nonce > req.NonceEnd {
					break
				}

				stream := rng.NewStream(req.ServerSeed, req.ClientSeed, nonce, 0)
				result, err := play(stream)
				if err != nil {
					totalMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					totalMu.Unlock()
					break
				}
				local.record(nonce, req.Stake, result)
			}

			totalMu.Lock()
			total.merge(local)
			totalMu.Unlock()
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	totalStaked := int64(total.rounds) * req.Stake
	rtp := 0.0
	if totalStaked > 0 {
		rtp = float64(total.totalReturned) / float64(totalStaked)
	}

	return &Result{
		Rounds:          total.rounds,
		Wins:            total.wins,
		Pushes:          total.pushes,
		TotalStaked:     totalStaked,
		TotalReturned:   total.totalReturned,
		RTP:             rtp,
		MaxPayout:       total.maxPayout,
		MaxPayoutNonce:  total.maxPayoutNonce,
		Classifications: total.classifications,
	}, nil
}

// SortedClassifications returns the classification keys in sorted
// order, for stable presentation.
func (r *Result) SortedClassifications() []string {
	keys := make([]string, 0, len(r.Classifications))
	for k := range r.Classifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
