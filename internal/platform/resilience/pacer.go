package resilience

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a fixed minimum gap between consecutive calls. Providers
// such as OpenDota throttle anonymous clients, so requests are issued one at
// a time with a sleep in between.
type Pacer struct {
	mu   sync.Mutex
	gap  time.Duration
	last time.Time
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

func NewPacer(gap time.Duration) *Pacer {
	return &Pacer{gap: gap, now: time.Now, wait: sleepContext}
}

// Acquire blocks until the gap since the previous call has elapsed. The
// returned release must be called once the request has finished.
func (p *Pacer) Acquire(ctx context.Context) (func(), error) {
	p.mu.Lock()
	if p.gap > 0 && !p.last.IsZero() {
		if remaining := p.gap - p.now().Sub(p.last); remaining > 0 {
			if err := p.wait(ctx, remaining); err != nil {
				p.mu.Unlock()
				return nil, err
			}
		}
	}
	return func() {
		p.last = p.now()
		p.mu.Unlock()
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
