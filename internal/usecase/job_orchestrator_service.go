package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/id"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

type RecalcJobType string

const (
	RecalcStats     RecalcJobType = "stats"
	RecalcFantasy   RecalcJobType = "fantasy"
	RecalcStandings RecalcJobType = "standings"
	RecalcReprocess RecalcJobType = "reprocess"
)

func ParseRecalcJobType(value string) (RecalcJobType, bool) {
	switch RecalcJobType(strings.ToLower(strings.TrimSpace(value))) {
	case RecalcStats:
		return RecalcStats, true
	case RecalcFantasy:
		return RecalcFantasy, true
	case RecalcStandings:
		return RecalcStandings, true
	case RecalcReprocess:
		return RecalcReprocess, true
	default:
		return "", false
	}
}

// RecalcJob is the payload pushed onto the recalc queue.
type RecalcJob struct {
	ID         string            `json:"id"`
	Type       RecalcJobType     `json:"type"`
	Reprocess  *ReprocessOptions `json:"reprocess,omitempty"`
	DedupKey   string            `json:"dedupKey"`
	EnqueuedAt time.Time         `json:"enqueuedAt"`
}

type JobQueue interface {
	Enqueue(ctx context.Context, job RecalcJob) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(context.Context, RecalcJob) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type nopJobLedger struct{}

func (nopJobLedger) Start(context.Context, jobrun.Run) error  { return nil }
func (nopJobLedger) Finish(context.Context, jobrun.Run) error { return nil }
func (nopJobLedger) ListRecent(context.Context, int) ([]jobrun.Run, error) {
	return nil, nil
}

// NewNopJobLedger is used when no database is configured for job runs.
func NewNopJobLedger() jobrun.Repository {
	return nopJobLedger{}
}

type StandingsRecomputer interface {
	RecomputeStandings(ctx context.Context) ([]match.Group, error)
}

type Reprocessor interface {
	Reprocess(ctx context.Context, opts ReprocessOptions) (ReprocessResult, error)
}

// JobRunner records every batch job in the job ledger.
type JobRunner struct {
	ledger jobrun.Repository
	ids    id.Generator
	now    func() time.Time
	logger *logging.Logger
}

func NewJobRunner(ledger jobrun.Repository, ids id.Generator, logger *logging.Logger) *JobRunner {
	if ledger == nil {
		ledger = NewNopJobLedger()
	}
	if ids == nil {
		ids = id.NewNanoGenerator("run")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &JobRunner{ledger: ledger, ids: ids, now: time.Now, logger: logger.Named("jobs")}
}

// Run executes fn and records its outcome. Ledger failures are logged and
// never fail the job.
func (r *JobRunner) Run(ctx context.Context, name string, fn func(ctx context.Context) (any, error)) (jobrun.Run, error) {
	runID, err := r.ids.NewID()
	if err != nil {
		return jobrun.Run{}, fmt.Errorf("generate job run id: %w", err)
	}
	traceID, _ := traceMetaFromContext(ctx)
	run := jobrun.Run{
		ID:        runID,
		Name:      name,
		Status:    jobrun.StatusRunning,
		TraceID:   traceID,
		StartedAt: r.now().UTC(),
	}
	if err := r.ledger.Start(ctx, run); err != nil {
		r.logger.WarnContext(ctx, "record job start failed", "run_id", runID, "job", name, "error", err)
	}

	summary, jobErr := fn(ctx)
	finished := r.now().UTC()
	run.FinishedAt = &finished
	run.Summary = summary
	if jobErr != nil {
		run.Status = jobrun.StatusFailed
		run.Error = jobErr.Error()
	} else {
		run.Status = jobrun.StatusCompleted
	}

	if err := r.ledger.Finish(ctx, run); err != nil {
		r.logger.WarnContext(ctx, "record job finish failed", "run_id", runID, "job", name, "error", err)
	}
	r.logger.InfoContext(ctx, "job finished",
		"run_id", runID,
		"job", name,
		"status", string(run.Status),
		"duration_ms", finished.Sub(run.StartedAt).Milliseconds(),
	)
	return run, jobErr
}

func (r *JobRunner) ListRecent(ctx context.Context, limit int) ([]jobrun.Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	runs, err := r.ledger.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list job runs: %w", err)
	}
	return runs, nil
}

type JobOrchestratorConfig struct {
	// DedupWindow collapses identical jobs enqueued within the same window.
	DedupWindow time.Duration
}

// JobOrchestratorService enqueues recalc jobs and dispatches them, from the
// HTTP layer or the queue worker, to the services that run them.
type JobOrchestratorService struct {
	runner    *JobRunner
	stats     StatsCalculator
	fantasy   FantasyRefresher
	standings StandingsRecomputer
	reprocess Reprocessor
	queue     JobQueue
	ids       id.Generator
	cfg       JobOrchestratorConfig
	logger    *logging.Logger
	now       func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	runner *JobRunner,
	stats StatsCalculator,
	fantasy FantasyRefresher,
	standings StandingsRecomputer,
	reprocess Reprocessor,
	queue JobQueue,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if runner == nil {
		runner = NewJobRunner(nil, nil, logger)
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = time.Minute
	}

	return &JobOrchestratorService{
		runner:    runner,
		stats:     stats,
		fantasy:   fantasy,
		standings: standings,
		reprocess: reprocess,
		queue:     queue,
		ids:       id.NewNanoGenerator("job"),
		cfg:       cfg,
		logger:    logger.Named("jobs"),
		now:       time.Now,
	}
}

func (s *JobOrchestratorService) Enqueue(ctx context.Context, jobType string, reprocess *ReprocessOptions) (RecalcJob, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.Enqueue")
	defer span.End()

	kind, ok := ParseRecalcJobType(jobType)
	if !ok {
		return RecalcJob{}, fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, jobType)
	}
	if kind != RecalcReprocess {
		reprocess = nil
	}
	jobID, err := s.ids.NewID()
	if err != nil {
		return RecalcJob{}, fmt.Errorf("generate job id: %w", err)
	}

	now := s.now().UTC()
	job := RecalcJob{
		ID:         jobID,
		Type:       kind,
		Reprocess:  reprocess,
		DedupKey:   dedupKey("recalc", string(kind), now, s.cfg.DedupWindow),
		EnqueuedAt: now,
	}
	if kind == RecalcReprocess {
		job.DedupKey = dedupKey("recalc", string(kind)+"-"+jobID, now, s.cfg.DedupWindow)
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return RecalcJob{}, fmt.Errorf("%w: enqueue %s job: %v", ErrDependencyUnavailable, kind, err)
	}
	s.logger.InfoContext(ctx, "recalc job enqueued", "job_id", job.ID, "type", string(kind), "dedup_key", job.DedupKey)
	return job, nil
}

// Dispatch runs a job synchronously under the job runner.
func (s *JobOrchestratorService) Dispatch(ctx context.Context, job RecalcJob) (jobrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.Dispatch")
	defer span.End()

	var fn func(ctx context.Context) (any, error)
	switch job.Type {
	case RecalcStats:
		if s.stats == nil {
			return jobrun.Run{}, fmt.Errorf("%w: stats service is not configured", ErrDependencyUnavailable)
		}
		fn = func(ctx context.Context) (any, error) { return s.stats.CalculateAll(ctx) }
	case RecalcFantasy:
		if s.fantasy == nil {
			return jobrun.Run{}, fmt.Errorf("%w: fantasy service is not configured", ErrDependencyUnavailable)
		}
		fn = func(ctx context.Context) (any, error) { return s.fantasy.RecalculateAll(ctx) }
	case RecalcStandings:
		if s.standings == nil {
			return jobrun.Run{}, fmt.Errorf("%w: standings service is not configured", ErrDependencyUnavailable)
		}
		fn = func(ctx context.Context) (any, error) {
			groups, err := s.standings.RecomputeStandings(ctx)
			return map[string]int{"groups": len(groups)}, err
		}
	case RecalcReprocess:
		if s.reprocess == nil {
			return jobrun.Run{}, fmt.Errorf("%w: reprocess service is not configured", ErrDependencyUnavailable)
		}
		opts := ReprocessOptions{}
		if job.Reprocess != nil {
			opts = *job.Reprocess
		}
		fn = func(ctx context.Context) (any, error) { return s.reprocess.Reprocess(ctx, opts) }
	default:
		return jobrun.Run{}, fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, job.Type)
	}

	return s.runner.Run(ctx, "recalc:"+string(job.Type), fn)
}

func (s *JobOrchestratorService) RunStats(ctx context.Context) (jobrun.Run, error) {
	return s.Dispatch(ctx, RecalcJob{Type: RecalcStats})
}

func (s *JobOrchestratorService) RunFantasy(ctx context.Context) (jobrun.Run, error) {
	return s.Dispatch(ctx, RecalcJob{Type: RecalcFantasy})
}

func (s *JobOrchestratorService) ListRuns(ctx context.Context, limit int) ([]jobrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.ListRuns")
	defer span.End()

	return s.runner.ListRecent(ctx, limit)
}

func dedupKey(prefix, subject string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	subject = sanitizeDedupSegment(subject)
	return prefix + "-" + subject + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
