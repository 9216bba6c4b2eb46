package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source yields uniform floats in [0,1). Engines take a Source per
// round; callers substitute deterministic streams for testing and
// replay.
type Source interface {
	Float64() float64
}

// Crypto is the production source, backed by crypto/rand.
type Crypto struct{}

// NewCrypto returns a cryptographically strong Source.
func NewCrypto() *Crypto {
	return &Crypto{}
}

// Float64 returns a uniform float in [0,1) built from 53 random bits.
func (c *Crypto) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; if it does
		// the process cannot produce fair outcomes.
		panic(fmt.Sprintf("rng: crypto source failed: %v", err))
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// Fixed replays a fixed float sequence, wrapping when exhausted.
// Test helper for pinning exact deals.
type Fixed struct {
	values []float64
	next   int
}

// NewFixed returns a Source that replays values in order.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Fixed{values: values}
}

// Float64 returns the next value in the sequence.
func (f *Fixed) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
