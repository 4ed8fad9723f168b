// internal/core/services/runtime.go
package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ammerola/roadie-bag/internal/core/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock in UTC
func SystemClock() ports.Clock { return systemClock{} }

// FixedClock always reports the same instant
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock frozen at t
func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{t: t} }

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// SystemRandom draws from the runtime-seeded global generator
func SystemRandom() ports.RandomSource { return globalRandom{} }

// seededRandom is a reproducible generator safe for concurrent use
type seededRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRandom returns a deterministic source for tests and replays
func NewSeededRandom(seed uint64) ports.RandomSource {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
