package signal

import (
	"math/rand/v2"
	"sync"
)

// Source supplies the random term of the signal model. Float64 must return
// values in [0, 1) and be safe for concurrent use.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// GlobalSource draws from the process-wide, unseeded math/rand/v2 generator.
var GlobalSource Source = globalSource{}

type seededSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a reproducible Source. Two sources with the same
// seed yield the same sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// ConstSource always returns the same draw. Handy for isolating the
// deterministic part of the model.
type ConstSource float64

func (c ConstSource) Float64() float64 {
	return float64(c)
}
