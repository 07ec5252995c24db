package jobrun

import (
	"sync"
	"time"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// DetailStatus is the outcome of one item of a batch.
type DetailStatus string

const (
	DetailProcessed      DetailStatus = "processed"
	DetailSkipped        DetailStatus = "skipped"
	DetailError          DetailStatus = "error"
	DetailParseRequested DetailStatus = "parse_requested"
)

type Detail struct {
	ID      string       `json:"id"`
	Status  DetailStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// BatchSummary is returned by every batch operation so callers can tell
// "nothing changed" from partial and full success.
type BatchSummary struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Skipped   int      `json:"skipped"`
	Errored   int      `json:"errored"`
	Details   []Detail `json:"details"`
}

// Recorder collects details from concurrent workers.
type Recorder struct {
	mu      sync.Mutex
	summary BatchSummary
}

func NewRecorder(total int) *Recorder {
	return &Recorder{summary: BatchSummary{Total: total, Details: make([]Detail, 0, total)}}
}

func (r *Recorder) Add(d Detail) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch d.Status {
	case DetailProcessed, DetailParseRequested:
		r.summary.Succeeded++
	case DetailSkipped:
		r.summary.Skipped++
	case DetailError:
		r.summary.Errored++
	}
	r.summary.Details = append(r.summary.Details, d)
}

// Summary returns a copy of the collected summary.
func (r *Recorder) Summary() BatchSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.summary
	out.Details = append([]Detail(nil), r.summary.Details...)
	return out
}

// Run is one execution of a batch job.
type Run struct {
	ID         string
	Name       string
	Status     Status
	Summary    any
	Error      string
	TraceID    string
	StartedAt  time.Time
	FinishedAt *time.Time
}
