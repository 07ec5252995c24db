package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenProbes:   1,
	}
}

// Breaker trips after FailureThreshold consecutive failures and lets
// HalfOpenProbes requests through once OpenTimeout has elapsed.
type Breaker struct {
	mu sync.Mutex

	cfg      BreakerConfig
	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int
	now      func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenProbes < 1 {
		cfg.HalfOpenProbes = defaults.HalfOpenProbes
	}
	return &Breaker{cfg: cfg, state: StateClosed, now: time.Now}
}

// Do runs fn when the breaker admits it. isFailure decides which errors
// count toward tripping; nil means every error counts.
func (b *Breaker) Do(fn func() error, isFailure func(error) bool) error {
	if !b.cfg.Enabled {
		return fn()
	}
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.inFlight = 0
		b.passed = 0
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.state = StateClosed
			b.failures = 0
			b.passed = 0
		}
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		b.trip()
	case StateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.inFlight = 0
	b.passed = 0
}
