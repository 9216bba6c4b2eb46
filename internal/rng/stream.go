package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
)

// Stream generates a deterministic byte stream with HMAC-SHA256 keyed
// by the server seed over "clientSeed:nonce:round" messages. Four bytes
// make one float, so a round pair covers auditable replay of any game
// outcome.
type Stream struct {
	serverSeed   string
	clientSeed   string
	nonce        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewStream creates a stream positioned at the given byte cursor.
func NewStream(serverSeed, clientSeed string, nonce, cursor uint64) *Stream {
	s := &Stream{
		serverSeed:   serverSeed,
		clientSeed:   clientSeed,
		nonce:        nonce,
		currentRound: cursor / 32,
		currentPos:   int(cursor % 32),
	}
	s.fill()
	return s
}

// NextByte returns the next byte from the stream.
func (s *Stream) NextByte() byte {
	if s.currentPos >= 32 {
		s.currentRound++
		s.currentPos = 0
		s.fill()
	}
	b := s.buffer[s.currentPos]
	s.currentPos++
	return b
}

// Float64 consumes exactly 4 bytes and returns a float in [0,1).
func (s *Stream) Float64() float64 {
	result := 0.0
	for i := 0; i < 4; i++ {
		divider := math.Pow(256, float64(i+1))
		result += float64(s.NextByte()) / divider
	}
	return result
}

func (s *Stream) fill() {
	h := hmac.New(sha256.New, []byte(s.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", s.clientSeed, s.nonce, s.currentRound)
	copy(s.buffer[:], h.Sum(nil))
}

// Floats generates count floats starting from the given cursor.
func Floats(serverSeed, clientSeed string, nonce, cursor uint64, count int) []float64 {
	s := NewStream(serverSeed, clientSeed, nonce, cursor)
	floats := make([]float64, count)
	for i := range floats {
		floats[i] = s.Float64()
	}
	return floats
}
