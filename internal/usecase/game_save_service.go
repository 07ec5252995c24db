package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

const (
	StepMatchScores = "match_scores"
	StepFantasy     = "fantasy"
	StepStats       = "stats"
)

type MatchScorer interface {
	Recalculate(ctx context.Context, matchID string) (match.Result, error)
}

type FantasyRecalculator interface {
	RecalculateGame(ctx context.Context, roundID fantasy.RoundID, gameID string) (RecalcSummary, error)
}

type StatsCalculator interface {
	CalculateAll(ctx context.Context) (StatsSummary, error)
}

type SaveOptions struct {
	SkipPostProcessing bool
	SkipFantasyUpdates bool
	LogPrefix          string
}

// StepResult is the outcome of one post-save step. A failed step never
// undoes the save or stops later steps.
type StepResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SaveResult struct {
	MatchID string       `json:"matchId"`
	GameID  string       `json:"gameId"`
	Saved   bool         `json:"saved"`
	Skipped bool         `json:"skipped"`
	Steps   []StepResult `json:"steps"`
}

// Failed reports whether any post step failed.
func (r SaveResult) Failed() bool {
	for _, step := range r.Steps {
		if !step.OK && !step.Skipped {
			return true
		}
	}
	return false
}

// GameSaveService is the single write path for games and performances.
type GameSaveService struct {
	matchRepo match.Repository
	gameRepo  game.Repository
	scorer    MatchScorer
	fantasy   FantasyRecalculator
	stats     StatsCalculator
	logger    *logging.Logger
}

func NewGameSaveService(
	matchRepo match.Repository,
	gameRepo game.Repository,
	scorer MatchScorer,
	fantasy FantasyRecalculator,
	stats StatsCalculator,
	logger *logging.Logger,
) *GameSaveService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameSaveService{
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		scorer:    scorer,
		fantasy:   fantasy,
		stats:     stats,
		logger:    logger.Named("game-save"),
	}
}

// Save writes the game and its performances under the match in one batch
// and then runs the post steps. A missing match is a no-op.
func (s *GameSaveService) Save(ctx context.Context, matchID string, bundle game.Bundle, opts SaveOptions) (SaveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSaveService.Save")
	defer span.End()

	logger := s.logger
	if opts.LogPrefix != "" {
		logger = logger.WithPrefix(opts.LogPrefix)
	}

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return SaveResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	gameID := strings.TrimSpace(bundle.Game.ID)
	if gameID == "" {
		return SaveResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	result := SaveResult{MatchID: matchID, GameID: gameID}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return SaveResult{}, fmt.Errorf("get match id=%s: %w", matchID, err)
	}
	if !ok {
		logger.WarnContext(ctx, "match does not exist, skipping game save", "match_id", matchID, "game_id", gameID)
		result.Skipped = true
		return result, nil
	}

	bundle.Game.ID = gameID
	bundle.Game.MatchID = matchID
	if err := s.gameRepo.SaveBundle(ctx, matchID, bundle); err != nil {
		return SaveResult{}, fmt.Errorf("save game bundle match=%s game=%s: %w", matchID, gameID, err)
	}
	result.Saved = true
	logger.InfoContext(ctx, "game saved", "match_id", matchID, "game_id", gameID, "performances", len(bundle.Performances))

	if opts.SkipPostProcessing {
		result.Steps = []StepResult{
			{Name: StepMatchScores, Skipped: true},
			{Name: StepFantasy, Skipped: true},
			{Name: StepStats, Skipped: true},
		}
		return result, nil
	}

	result.Steps = append(result.Steps, s.runStep(ctx, logger, StepMatchScores, false, func(ctx context.Context) error {
		if s.scorer == nil {
			return fmt.Errorf("%w: match scorer is not configured", ErrDependencyUnavailable)
		}
		_, err := s.scorer.Recalculate(ctx, matchID)
		return err
	}))
	result.Steps = append(result.Steps, s.runStep(ctx, logger, StepFantasy, opts.SkipFantasyUpdates, func(ctx context.Context) error {
		if s.fantasy == nil {
			return fmt.Errorf("%w: fantasy recalculator is not configured", ErrDependencyUnavailable)
		}
		_, err := s.fantasy.RecalculateGame(ctx, fantasy.ClassifyRound(m), gameID)
		return err
	}))
	result.Steps = append(result.Steps, s.runStep(ctx, logger, StepStats, false, func(ctx context.Context) error {
		if s.stats == nil {
			return fmt.Errorf("%w: stats calculator is not configured", ErrDependencyUnavailable)
		}
		_, err := s.stats.CalculateAll(ctx)
		return err
	}))
	return result, nil
}

// SaveSafe validates the bundle before saving. Invalid input is returned as
// a *ValidationError and nothing is written.
func (s *GameSaveService) SaveSafe(ctx context.Context, matchID string, bundle game.Bundle, opts SaveOptions) (SaveResult, error) {
	if problems := ValidateGameData(bundle); len(problems) > 0 {
		return SaveResult{MatchID: matchID, GameID: bundle.Game.ID}, &ValidationError{Messages: problems}
	}
	return s.Save(ctx, matchID, bundle, opts)
}

func (s *GameSaveService) runStep(
	ctx context.Context,
	logger *logging.Logger,
	name string,
	skip bool,
	fn func(ctx context.Context) error,
) StepResult {
	step := StepResult{Name: name}
	if skip {
		step.Skipped = true
		return step
	}
	if err := fn(ctx); err != nil {
		logger.ErrorContext(ctx, "post-save step failed", "step", name, "error", err)
		step.Error = err.Error()
		return step
	}
	step.OK = true
	return step
}
