package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
)

type JobRunRepository struct {
	mu   sync.RWMutex
	runs map[string]jobrun.Run
}

func NewJobRunRepository() *JobRunRepository {
	return &JobRunRepository{runs: make(map[string]jobrun.Run)}
}

func (r *JobRunRepository) Start(_ context.Context, run jobrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return fmt.Errorf("job run %s already exists", run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

func (r *JobRunRepository) Finish(_ context.Context, run jobrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; !exists {
		return fmt.Errorf("job run %s not found", run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

func (r *JobRunRepository) ListRecent(_ context.Context, limit int) ([]jobrun.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobrun.Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
