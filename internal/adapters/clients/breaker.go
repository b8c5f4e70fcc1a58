package clients

import (
	"sync"
	"time"
)

// State is the position of a Breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cooldown has passed.
	StateOpen

	// StateHalfOpen lets a limited number of probe requests through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}

	return "unknown"
}

// BreakerConfig tunes a Breaker.
type BreakerConfig struct {
	// MaxFailures is the run of consecutive failures that opens the breaker.
	MaxFailures int

	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration

	// Probes is both the number of concurrent probes allowed while half-open
	// and the run of probe successes needed to close again.
	Probes int
}

// Breaker stops calling a feed that keeps failing. A nil *Breaker is valid
// and never rejects.
type Breaker struct {
	cfg BreakerConfig
	now func() time.Time

	// onChange observes transitions; it runs with the lock released.
	onChange func(from, to State)

	mu        sync.Mutex
	state     State
	streak    int // consecutive failures while closed, successes while half-open
	inFlight  int // probes running while half-open
	openUntil time.Time
}

// NewBreaker creates a closed breaker. Non-positive settings fall back to one
// failure, one probe and no cooldown.
func NewBreaker(cfg BreakerConfig, onChange func(from, to State)) *Breaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.Probes = max(cfg.Probes, 1)

	return &Breaker{cfg: cfg, now: time.Now, onChange: onChange}
}

// Acquire reserves a slot for one request. It returns ErrCircuitOpen when the
// request must not be sent. Every successful Acquire must be paired with one
// Release.
func (b *Breaker) Acquire() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()

	from := b.state

	switch b.state {
	case StateOpen:
		if b.now().Before(b.openUntil) {
			b.mu.Unlock()
			return ErrCircuitOpen
		}

		b.set(StateHalfOpen)
		b.inFlight = 1
	case StateHalfOpen:
		if b.inFlight >= b.cfg.Probes {
			b.mu.Unlock()
			return ErrCircuitOpen
		}

		b.inFlight++
	}

	to := b.state
	b.mu.Unlock()

	b.notify(from, to)

	return nil
}

// Release reports the outcome of a request admitted by Acquire.
func (b *Breaker) Release(failed bool) {
	if b == nil {
		return
	}

	b.mu.Lock()

	from := b.state

	if b.state == StateHalfOpen {
		b.inFlight = max(b.inFlight-1, 0)
	}

	switch {
	case failed && b.state == StateHalfOpen:
		b.trip()
	case failed:
		b.streak++
		if b.streak >= b.cfg.MaxFailures {
			b.trip()
		}
	case b.state == StateHalfOpen:
		b.streak++
		if b.streak >= b.cfg.Probes {
			b.set(StateClosed)
		}
	default:
		b.streak = 0
	}

	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// State returns the current state. A nil breaker is always closed.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// trip opens the breaker. Caller holds mu.
func (b *Breaker) trip() {
	b.set(StateOpen)
	b.openUntil = b.now().Add(b.cfg.Cooldown)
}

// set moves to state and clears the streak. Caller holds mu.
func (b *Breaker) set(state State) {
	if b.state != state {
		b.state = state
		b.streak = 0
	}
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
