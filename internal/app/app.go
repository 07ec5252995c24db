package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Cienszki/automatic-tournament-sub000/external/opendota"
	"github.com/Cienszki/automatic-tournament-sub000/external/sheets"
	"github.com/Cienszki/automatic-tournament-sub000/internal/config"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/account/verifier"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/jobqueue"
	"github.com/Cienszki/automatic-tournament-sub000/internal/interfaces/httpapi"
	idgen "github.com/Cienszki/automatic-tournament-sub000/internal/platform/id"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/resilience"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

// App holds the wired service graph shared by the api and worker binaries.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	handler  *httpapi.Handler
	verifier *verifier.Client
	jobs     *usecase.JobOrchestratorService
	queue    *jobqueue.RedisQueue
	closers  []func() error
}

// New builds every repository, client and service from cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	repos, err := newRepositories(ctx, cfg, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("build repositories: %w", err)
	}
	a.closers = append(a.closers, repos.close)

	ledger, closeLedger, err := newJobLedger(ctx, cfg, logger.Named("ledger"))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build job ledger: %w", err)
	}
	a.closers = append(a.closers, closeLedger)

	var queue usecase.JobQueue = disabledQueue{}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		a.queue = jobqueue.NewRedisQueue(client, jobqueue.RedisQueueConfig{
			Name:       cfg.RecalcQueueName,
			MaxRetries: cfg.RecalcQueueMaxRetries,
			DedupTTL:   cfg.JobDedupWindow,
			Workers:    cfg.RecalcQueueWorkers,
		}, logger.Named("queue"))
		queue = a.queue
	} else {
		logger.Warn("recalc queue disabled", "reason", "REDIS_URL empty")
	}

	provider := opendota.NewClient(opendota.ClientConfig{
		BaseURL:    cfg.OpenDotaBaseURL,
		APIKey:     cfg.OpenDotaAPIKey,
		Timeout:    cfg.OpenDotaTimeout,
		MaxRetries: cfg.OpenDotaMaxRetries,
		RequestGap: cfg.OpenDotaRequestGap,
		Logger:     logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.OpenDotaCircuitEnabled,
			FailureThreshold: cfg.OpenDotaCircuitFailureCount,
			OpenTimeout:      cfg.OpenDotaCircuitOpenTimeout,
			HalfOpenProbes:   cfg.OpenDotaCircuitHalfOpenReq,
		},
	})

	var sheet usecase.SheetPublisher
	if cfg.PickemSheetID != "" {
		publisher, err := sheets.NewPublisher(ctx, sheets.Config{
			Spreadsheet:     cfg.PickemSheetID,
			SheetName:       cfg.PickemSheetName,
			CredentialsFile: cfg.GoogleSheetsCredentialsFile,
			Logger:          logger,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("build sheets publisher: %w", err)
		}
		sheet = publisher
	}

	a.verifier = verifier.NewClient(verifier.Config{
		VerifyURL:    cfg.AuthVerifyURL,
		ServiceKey:   cfg.AuthServiceKey,
		Timeout:      cfg.AuthTimeout,
		CacheTTL:     cfg.AuthCacheTTL,
		AdminUserIDs: cfg.AdminUserIDs,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenProbes:   cfg.AuthCircuitHalfOpenReq,
		},
		Logger: logger,
	})
	if cfg.AuthVerifyURL == "" {
		logger.Warn("token verification is not configured, admin routes will reject every request", "reason", "AUTH_VERIFY_URL empty")
	}

	scoring := usecase.NewMatchScoringService(repos.matches, repos.games, repos.groups, logger)
	stats := usecase.NewStatsService(repos.teams, repos.matches, repos.games, repos.stats, logger)
	fantasy := usecase.NewFantasyService(repos.teams, repos.matches, repos.games, repos.fantasy, logger)
	save := usecase.NewGameSaveService(repos.matches, repos.games, scoring, fantasy, stats, logger)
	ingestion := usecase.NewIngestionService(provider, repos.teams, logger)
	reprocess := usecase.NewReprocessService(
		repos.matches,
		repos.games,
		ingestion,
		save,
		scoring,
		stats,
		fantasy,
		cfg.JobWorkerPoolSize,
		logger,
	)
	a.jobs = usecase.NewJobOrchestratorService(
		usecase.NewJobRunner(ledger, idgen.NewNanoGenerator("run"), logger),
		stats,
		fantasy,
		scoring,
		reprocess,
		queue,
		usecase.JobOrchestratorConfig{DedupWindow: cfg.JobDedupWindow},
		logger,
	)

	a.handler = httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, repos.matches, repos.games),
		stats,
		fantasy,
		usecase.NewGameImportService(ingestion, save, logger),
		save,
		scoring,
		reprocess,
		a.jobs,
		usecase.NewPickemService(repos.pickems, repos.teams, sheet, logger),
		logger,
	)

	return a, nil
}

// NewHTTPServer wires the router over the app handler.
func (a *App) NewHTTPServer() (*http.Server, error) {
	if strings.TrimSpace(a.cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	router := httpapi.NewRouter(
		a.handler,
		a.verifier,
		a.logger,
		a.cfg.SwaggerEnabled,
		a.cfg.CORSAllowedOrigins,
		a.cfg.InternalJobToken,
	)
	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// ConsumeJobs blocks, dispatching queued recalc jobs until ctx is canceled.
func (a *App) ConsumeJobs(ctx context.Context) error {
	if a.queue == nil {
		return fmt.Errorf("%w: REDIS_URL is required to consume recalc jobs", usecase.ErrDependencyUnavailable)
	}
	return a.queue.Consume(ctx, func(ctx context.Context, job usecase.RecalcJob) error {
		run, err := a.jobs.Dispatch(ctx, job)
		if err != nil {
			return fmt.Errorf("dispatch %s job %s (run %s): %w", job.Type, job.ID, run.ID, err)
		}
		a.logger.InfoContext(ctx, "recalc job completed", "job_id", job.ID, "type", string(job.Type), "run_id", run.ID)
		return nil
	})
}

// Close releases clients in reverse construction order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] == nil {
			continue
		}
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type disabledQueue struct{}

func (disabledQueue) Enqueue(context.Context, usecase.RecalcJob) error {
	return fmt.Errorf("recalc queue is not configured")
}
