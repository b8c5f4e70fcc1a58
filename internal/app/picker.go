package app

import (
	"math/rand/v2"
	"sync"
)

// RandomPicker picks uniformly distributed indexes.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker returns a picker. A zero seed uses the runtime's random
// source; any other seed gives a repeatable sequence.
func NewRandomPicker(seed uint64) *RandomPicker {
	if seed == 0 {
		return &RandomPicker{}
	}

	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns an index in [0, n).
func (p *RandomPicker) Pick(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rng.IntN(n)
}
