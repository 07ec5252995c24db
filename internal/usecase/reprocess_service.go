package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

const defaultReprocessWorkers = 4

type FantasyRefresher interface {
	RecalculateAll(ctx context.Context) (RecalcSummary, error)
}

type ReprocessOptions struct {
	// GameIDs limits the run to these provider game ids. Empty means every
	// stored game.
	GameIDs                   []string `json:"matchIds"`
	ForceReprocess            bool     `json:"forceReprocess"`
	RequestParsingForUnparsed bool     `json:"requestParsingForUnparsed"`
	UpdateFantasyScores       bool     `json:"updateFantasyScores"`
	DryRun                    bool     `json:"dryRun"`
}

type ReprocessResult struct {
	jobrun.BatchSummary
	PostSteps []StepResult `json:"postSteps,omitempty"`
}

type reprocessTarget struct {
	matchID string
	stored  game.Game
	known   bool
	gameID  string
}

// ReprocessService re-fetches stored games from the provider and saves the
// fresh data through the save gateway.
type ReprocessService struct {
	matchRepo match.Repository
	gameRepo  game.Repository
	ingestion *IngestionService
	saver     *GameSaveService
	scorer    MatchScorer
	stats     StatsCalculator
	fantasy   FantasyRefresher
	workers   int
	logger    *logging.Logger
}

func NewReprocessService(
	matchRepo match.Repository,
	gameRepo game.Repository,
	ingestion *IngestionService,
	saver *GameSaveService,
	scorer MatchScorer,
	stats StatsCalculator,
	fantasy FantasyRefresher,
	workers int,
	logger *logging.Logger,
) *ReprocessService {
	if workers <= 0 {
		workers = defaultReprocessWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReprocessService{
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		ingestion: ingestion,
		saver:     saver,
		scorer:    scorer,
		stats:     stats,
		fantasy:   fantasy,
		workers:   workers,
		logger:    logger.Named("reprocess").WithPrefix("[reprocess]"),
	}
}

func (s *ReprocessService) Reprocess(ctx context.Context, opts ReprocessOptions) (ReprocessResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReprocessService.Reprocess")
	defer span.End()

	targets, err := s.targets(ctx, opts.GameIDs)
	if err != nil {
		return ReprocessResult{}, err
	}
	rec := jobrun.NewRecorder(len(targets))
	if len(targets) == 0 {
		return ReprocessResult{BatchSummary: rec.Summary()}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(targets)))
	if err != nil {
		return ReprocessResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		affected = make(map[string]struct{})
	)
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			detail, saved := s.reprocessOne(ctx, target, opts)
			if saved {
				mu.Lock()
				affected[target.matchID] = struct{}{}
				mu.Unlock()
			}
			rec.Add(detail)
		}); err != nil {
			workers.Done()
			rec.Add(jobrun.Detail{ID: target.gameID, Status: jobrun.DetailError, Message: "submit to worker pool: " + err.Error()})
		}
	}
	workers.Wait()

	result := ReprocessResult{BatchSummary: rec.Summary()}
	sort.SliceStable(result.Details, func(i, j int) bool { return result.Details[i].ID < result.Details[j].ID })

	if len(affected) > 0 && !opts.DryRun {
		result.PostSteps = s.postProcess(ctx, affected, opts.UpdateFantasyScores)
	}
	s.logger.InfoContext(ctx, "reprocess finished",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"skipped", result.Skipped,
		"errored", result.Errored,
		"affected_matches", len(affected),
	)
	return result, nil
}

func (s *ReprocessService) targets(ctx context.Context, gameIDs []string) ([]reprocessTarget, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = false
		}
	}

	var out []reprocessTarget
	for _, m := range matches {
		games, err := s.gameRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list games match=%s: %w", m.ID, err)
		}
		for _, g := range games {
			if len(wanted) > 0 {
				if _, ok := wanted[g.ID]; !ok {
					continue
				}
				wanted[g.ID] = true
			}
			out = append(out, reprocessTarget{matchID: m.ID, stored: g, known: true, gameID: g.ID})
		}
	}
	for id, found := range wanted {
		if !found {
			out = append(out, reprocessTarget{gameID: id})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].gameID < out[j].gameID })
	return out, nil
}

func (s *ReprocessService) reprocessOne(ctx context.Context, target reprocessTarget, opts ReprocessOptions) (jobrun.Detail, bool) {
	detail := jobrun.Detail{ID: target.gameID}
	fail := func(format string, args ...any) (jobrun.Detail, bool) {
		detail.Status = jobrun.DetailError
		detail.Message = fmt.Sprintf(format, args...)
		s.logger.WarnContext(ctx, "reprocess item failed", "game_id", target.gameID, "error", detail.Message)
		return detail, false
	}
	skip := func(message string) (jobrun.Detail, bool) {
		detail.Status = jobrun.DetailSkipped
		detail.Message = message
		return detail, false
	}

	if !target.known {
		return fail("game %s is not stored under any match", target.gameID)
	}

	payload, err := s.ingestion.FetchMatch(ctx, target.gameID)
	if err != nil {
		return fail("fetch: %v", err)
	}
	if !IsParsed(payload) && opts.RequestParsingForUnparsed {
		if err := s.ingestion.RequestParse(ctx, target.gameID); err != nil {
			return fail("request parse: %v", err)
		}
		detail.Status = jobrun.DetailParseRequested
		detail.Message = "replay parse requested"
		return detail, false
	}
	if !IsParsed(payload) && !opts.ForceReprocess {
		return skip("Match not parsed and forceReprocess=false")
	}

	bundle, err := s.ingestion.Transform(ctx, payload, TeamMapping{
		RadiantTeamID: target.stored.RadiantTeam.ID,
		DireTeamID:    target.stored.DireTeam.ID,
	})
	if err != nil {
		return fail("transform: %v", err)
	}
	if reasons := PracticeGameReasons(bundle); len(reasons) > 0 {
		return skip(reasons[0])
	}
	if opts.DryRun {
		detail.Status = jobrun.DetailProcessed
		detail.Message = "dry run, nothing written"
		return detail, false
	}

	res, err := s.saver.Save(ctx, target.matchID, bundle, SaveOptions{SkipPostProcessing: true, LogPrefix: "[reprocess]"})
	if err != nil {
		return fail("save: %v", err)
	}
	if res.Skipped {
		return skip("match " + target.matchID + " no longer exists")
	}

	detail.Status = jobrun.DetailProcessed
	if bundle.Game.IsParsed {
		detail.Message = "reprocessed parsed game"
	} else {
		detail.Message = "reprocessed unparsed game"
	}
	return detail, true
}

// postProcess runs one recompute for everything the batch touched.
func (s *ReprocessService) postProcess(ctx context.Context, affected map[string]struct{}, updateFantasy bool) []StepResult {
	matchIDs := sortedKeys(affected)
	steps := []StepResult{{Name: StepMatchScores}, {Name: StepStats}, {Name: StepFantasy}}

	var errs []string
	for _, id := range matchIDs {
		if _, err := s.scorer.Recalculate(ctx, id); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", id, err))
		}
	}
	steps[0].OK = len(errs) == 0
	steps[0].Error = strings.Join(errs, "; ")

	if _, err := s.stats.CalculateAll(ctx); err != nil {
		steps[1].Error = err.Error()
	} else {
		steps[1].OK = true
	}

	switch {
	case !updateFantasy:
		steps[2].Skipped = true
	default:
		if _, err := s.fantasy.RecalculateAll(ctx); err != nil {
			steps[2].Error = err.Error()
		} else {
			steps[2].OK = true
		}
	}

	for _, step := range steps {
		if step.Error != "" {
			s.logger.ErrorContext(ctx, "reprocess post step failed", "step", step.Name, "error", step.Error)
		}
	}
	return steps
}
