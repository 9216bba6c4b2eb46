package games

import "sync"

// JackpotPool is the progressive jackpot accumulator, the one piece of
// cross-round state in the core. Every access holds the mutex so a
// stake contribution and a payout-and-reset are each a single atomic
// read-modify-write.
type JackpotPool struct {
	mu     sync.Mutex
	amount int64
	seed   int64
}

// NewJackpotPool returns a pool holding its seed value.
func NewJackpotPool(seed int64) (*JackpotPool, error) {
	if seed < 0 {
		return nil, &InvalidTableError{Game: "progressive", Table: "jackpot", Reason: "seed must be >= 0"}
	}
	return &JackpotPool{amount: seed, seed: seed}, nil
}

// Amount returns the current pool value.
func (p *JackpotPool) Amount() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount
}

// Add credits the pool and returns the new value.
func (p *JackpotPool) Add(delta int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.amount += delta
	return p.amount
}

// PayOut empties the pool back to its seed value and returns the
// amount paid.
func (p *JackpotPool) PayOut() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	paid := p.amount
	p.amount = p.seed
	return paid
}

// Restore sets the pool from persisted state at start-up.
func (p *JackpotPool) Restore(amount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if amount > 0 {
		p.amount = amount
	}
}
