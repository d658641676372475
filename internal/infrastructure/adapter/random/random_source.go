package random

import (
	"math/rand/v2"
	"sync"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// Source implements core.RandomSource on math/rand/v2
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand // nil uses the runtime-seeded global generator
}

// NewRandomSource returns a source backed by the global generator
func NewRandomSource() core.RandomSource {
	return &Source{}
}

// NewSeededRandomSource returns a reproducible source, for load tests and fixtures
func NewSeededRandomSource(seed uint64) core.RandomSource {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a uniform value in [0, n)
func (s *Source) Intn(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
