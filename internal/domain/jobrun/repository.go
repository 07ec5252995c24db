package jobrun

import "context"

// Repository is the batch job ledger.
type Repository interface {
	Start(ctx context.Context, run Run) error
	Finish(ctx context.Context, run Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}
