package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Cienszki/automatic-tournament-sub000/internal/aggregate"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

const snapshotConcurrency = 8

// StatsSummary reports what a full recalculation wrote.
type StatsSummary struct {
	TotalTeams   int       `json:"totalTeams"`
	TotalMatches int       `json:"totalMatches"`
	TotalGames   int       `json:"totalGames"`
	PlayerDocs   int       `json:"playerDocs"`
	TeamDocs     int       `json:"teamDocs"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

type StatsService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	gameRepo  game.Repository
	statsRepo stats.Repository
	gate      runGate
	now       func() time.Time
	logger    *logging.Logger
}

func NewStatsService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	gameRepo game.Repository,
	statsRepo stats.Repository,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		statsRepo: statsRepo,
		gate:      newRunGate(),
		now:       time.Now,
		logger:    logger.Named("stats"),
	}
}

// CalculateAll rebuilds every statistics document from the completed
// matches. Nothing is written when loading or folding fails. Runs are
// serialized, never shared.
func (s *StatsService) CalculateAll(ctx context.Context) (StatsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CalculateAll")
	defer span.End()

	if err := s.gate.enter(ctx); err != nil {
		return StatsSummary{}, fmt.Errorf("wait for running stats recalculation: %w", err)
	}
	defer s.gate.leave()
	return s.calculateAll(ctx)
}

func (s *StatsService) calculateAll(ctx context.Context) (StatsSummary, error) {
	start := time.Now()
	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return StatsSummary{}, err
	}

	result := aggregate.Build(snapshot)
	if err := s.statsRepo.ReplaceAll(ctx, result.Tournament, result.Players, result.Teams); err != nil {
		return StatsSummary{}, fmt.Errorf("write stats: %w", err)
	}

	summary := StatsSummary{
		TotalTeams:   result.Tournament.TotalTeams,
		TotalMatches: result.Tournament.TotalMatches,
		TotalGames:   result.Tournament.TotalGames,
		PlayerDocs:   len(result.Players),
		TeamDocs:     len(result.Teams),
		LastUpdated:  result.Tournament.LastUpdated,
	}
	s.logger.InfoContext(ctx, "tournament stats recalculated",
		"matches", summary.TotalMatches,
		"games", summary.TotalGames,
		"players", summary.PlayerDocs,
		"teams", summary.TeamDocs,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

func (s *StatsService) loadSnapshot(ctx context.Context) (aggregate.Snapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("list matches: %w", err)
	}

	p := pool.NewWithResults[aggregate.MatchData]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(snapshotConcurrency)
	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}
		m := m
		p.Go(func(ctx context.Context) (aggregate.MatchData, error) {
			return s.loadMatch(ctx, m)
		})
	}
	loaded, err := p.Wait()
	if err != nil {
		return aggregate.Snapshot{}, err
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Match.ID < loaded[j].Match.ID })

	return aggregate.Snapshot{Teams: teams, Matches: loaded, Now: s.now().UTC()}, nil
}

func (s *StatsService) loadMatch(ctx context.Context, m match.Match) (aggregate.MatchData, error) {
	games, err := s.gameRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return aggregate.MatchData{}, fmt.Errorf("list games match=%s: %w", m.ID, err)
	}
	data := aggregate.MatchData{Match: m, Games: make([]aggregate.GameData, 0, len(games))}
	for _, g := range games {
		perfs, err := s.gameRepo.ListPerformances(ctx, m.ID, g.ID)
		if err != nil {
			return aggregate.MatchData{}, fmt.Errorf("list performances match=%s game=%s: %w", m.ID, g.ID, err)
		}
		data.Games = append(data.Games, aggregate.GameData{Game: g, Performances: perfs})
	}
	return data, nil
}

func (s *StatsService) GetTournament(ctx context.Context) (stats.TournamentStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTournament")
	defer span.End()

	item, ok, err := s.statsRepo.GetTournament(ctx)
	if err != nil {
		return stats.TournamentStats{}, fmt.Errorf("get tournament stats: %w", err)
	}
	if !ok {
		return stats.TournamentStats{}, fmt.Errorf("%w: tournament stats have not been calculated", ErrNotFound)
	}
	return item, nil
}

func (s *StatsService) GetPlayer(ctx context.Context, playerID string) (stats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return stats.PlayerStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, ok, err := s.statsRepo.GetPlayer(ctx, playerID)
	if err != nil {
		return stats.PlayerStats{}, fmt.Errorf("get player stats id=%s: %w", playerID, err)
	}
	if !ok {
		return stats.PlayerStats{}, fmt.Errorf("%w: player stats not found: %s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *StatsService) GetTeam(ctx context.Context, teamID string) (stats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return stats.TeamStats{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, ok, err := s.statsRepo.GetTeam(ctx, teamID)
	if err != nil {
		return stats.TeamStats{}, fmt.Errorf("get team stats id=%s: %w", teamID, err)
	}
	if !ok {
		return stats.TeamStats{}, fmt.Errorf("%w: team stats not found: %s", ErrNotFound, teamID)
	}
	return item, nil
}
