package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

// MatchScoringService derives series scores from saved games and replays
// group standings.
type MatchScoringService struct {
	matchRepo match.Repository
	gameRepo  game.Repository
	groupRepo match.GroupRepository
	now       func() time.Time
	logger    *logging.Logger
}

func NewMatchScoringService(
	matchRepo match.Repository,
	gameRepo game.Repository,
	groupRepo match.GroupRepository,
	logger *logging.Logger,
) *MatchScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchScoringService{
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		groupRepo: groupRepo,
		now:       time.Now,
		logger:    logger.Named("match-scoring"),
	}
}

func (s *MatchScoringService) Recalculate(ctx context.Context, matchID string) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.Recalculate")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Result{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Result{}, fmt.Errorf("get match id=%s: %w", matchID, err)
	}
	if !ok {
		return match.Result{}, fmt.Errorf("%w: match not found: %s", ErrNotFound, matchID)
	}

	games, err := s.gameRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Result{}, fmt.Errorf("list games match=%s: %w", matchID, err)
	}
	winners := make([]string, 0, len(games))
	for _, g := range games {
		winners = append(winners, g.WinnerTeamID())
	}

	result := match.ResolveSeries(m, winners)
	if result.Status == match.StatusCompleted {
		completedAt := s.now().UTC()
		if m.CompletedAt != nil {
			completedAt = *m.CompletedAt
		}
		result.CompletedAt = &completedAt
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, result); err != nil {
		return match.Result{}, fmt.Errorf("update match result id=%s: %w", matchID, err)
	}
	s.logger.InfoContext(ctx, "match score recalculated",
		"match_id", matchID,
		"games", len(games),
		"score_a", result.TeamAScore,
		"score_b", result.TeamBScore,
		"status", string(result.Status),
		"winner_id", result.WinnerID,
	)

	if result.Status == match.StatusCompleted && strings.TrimSpace(m.GroupID) != "" {
		if _, err := s.RecomputeStandings(ctx); err != nil {
			return result, fmt.Errorf("recompute standings after match=%s: %w", matchID, err)
		}
	}
	return result, nil
}

// RecomputeStandings rebuilds every group table from completed group matches.
func (s *MatchScoringService) RecomputeStandings(ctx context.Context) ([]match.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.RecomputeStandings")
	defer span.End()

	if s.groupRepo == nil {
		return nil, fmt.Errorf("%w: group repository is not configured", ErrDependencyUnavailable)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	grouped := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m.GroupID) != "" {
			grouped = append(grouped, m)
		}
	}

	replayed := match.ReplayStandings(groups, grouped)
	if err := s.groupRepo.ReplaceStandings(ctx, replayed); err != nil {
		return nil, fmt.Errorf("replace standings: %w", err)
	}
	s.logger.InfoContext(ctx, "group standings recomputed", "groups", len(replayed), "matches", len(grouped))
	return replayed, nil
}

// RecalculateMany recalculates each match once, in the given order.
func (s *MatchScoringService) RecalculateMany(ctx context.Context, matchIDs []string) error {
	seen := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.Recalculate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
