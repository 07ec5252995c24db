package usecase

import "context"

// runGate lets one full recompute run at a time. A caller that arrives
// while a run is in progress waits and then runs on its own snapshot, so
// its result always covers writes that finished before it was called.
type runGate chan struct{}

func newRunGate() runGate {
	return make(runGate, 1)
}

func (g runGate) enter(ctx context.Context) error {
	select {
	case g <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g runGate) leave() {
	<-g
}
