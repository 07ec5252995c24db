package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

// RecalcSummary reports one fantasy recalculation.
type RecalcSummary struct {
	UsersProcessed  int       `json:"usersProcessed"`
	UsersWithScores int       `json:"usersWithScores"`
	RoundsMissing   int       `json:"roundsMissing"`
	GamesScored     int       `json:"gamesScored"`
	CompletedAt     time.Time `json:"completedAt"`
}

type scoredGame struct {
	matchID string
	points  map[string]float64
}

// roundPoints is round -> game id -> scored game.
type roundPoints map[fantasy.RoundID]map[string]scoredGame

type FantasyService struct {
	teamRepo    team.Repository
	matchRepo   match.Repository
	gameRepo    game.Repository
	fantasyRepo fantasy.Repository
	gate        runGate
	now         func() time.Time
	logger      *logging.Logger
}

func NewFantasyService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	gameRepo game.Repository,
	fantasyRepo fantasy.Repository,
	logger *logging.Logger,
) *FantasyService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FantasyService{
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		gameRepo:    gameRepo,
		fantasyRepo: fantasyRepo,
		gate:        newRunGate(),
		now:         time.Now,
		logger:      logger.Named("fantasy"),
	}
}

// RecalculateAll rescores every user lineup from the stored performances
// and rebuilds the leaderboard. Concurrent callers queue behind the running
// recalculation and then run on their own snapshot.
func (s *FantasyService) RecalculateAll(ctx context.Context) (RecalcSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.RecalculateAll")
	defer span.End()

	if err := s.gate.enter(ctx); err != nil {
		return RecalcSummary{}, fmt.Errorf("wait for running fantasy recalculation: %w", err)
	}
	defer s.gate.leave()
	return s.recalculate(ctx)
}

// RecalculateGame is the save gateway's entry point. Lineups span rounds so
// the whole state is rebuilt; round and game only annotate the run.
func (s *FantasyService) RecalculateGame(ctx context.Context, roundID fantasy.RoundID, gameID string) (RecalcSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.RecalculateGame")
	defer span.End()

	s.logger.InfoContext(ctx, "fantasy recalculation triggered by game", "round_id", string(roundID), "game_id", gameID)
	return s.RecalculateAll(ctx)
}

func (s *FantasyService) GetLeaderboard(ctx context.Context) (fantasy.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.GetLeaderboard")
	defer span.End()

	board, ok, err := s.fantasyRepo.GetLeaderboard(ctx)
	if err != nil {
		return fantasy.Leaderboard{}, fmt.Errorf("get leaderboard: %w", err)
	}
	if !ok {
		return fantasy.Leaderboard{}, fmt.Errorf("%w: fantasy leaderboard has not been calculated", ErrNotFound)
	}
	return board, nil
}

func (s *FantasyService) recalculate(ctx context.Context) (RecalcSummary, error) {
	now := s.now().UTC()

	lookup, gamesScored, err := s.buildLookup(ctx)
	if err != nil {
		return RecalcSummary{}, err
	}
	users, err := s.fantasyRepo.ListUserLineups(ctx)
	if err != nil {
		return RecalcSummary{}, fmt.Errorf("list user lineups: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return RecalcSummary{}, fmt.Errorf("list teams: %w", err)
	}

	summary := RecalcSummary{UsersProcessed: len(users), GamesScored: gamesScored}
	totals := make([]fantasy.UserTotals, 0, len(users))
	for _, u := range users {
		userTotals, missing := scoreUser(u, lookup, now)
		for _, roundID := range missing {
			s.logger.WarnContext(ctx, "lineup round has no scored games", "user_id", u.UserID, "round_id", string(roundID))
		}
		summary.RoundsMissing += len(missing)
		if userTotals.GamesPlayed > 0 {
			summary.UsersWithScores++
		}
		totals = append(totals, userTotals)
	}

	playerRounds := playerRoundStats(lookup)
	if err := s.fantasyRepo.SaveRecalculation(ctx, totals, playerRounds); err != nil {
		return RecalcSummary{}, fmt.Errorf("save fantasy recalculation: %w", err)
	}

	board := fantasy.Leaderboard{
		Overall:     overallLeaderboard(totals),
		ByRole:      roleLeaderboards(teams, lookup),
		GeneratedAt: now,
	}
	if err := s.fantasyRepo.SaveLeaderboard(ctx, board); err != nil {
		return RecalcSummary{}, fmt.Errorf("save leaderboard: %w", err)
	}

	summary.CompletedAt = now
	s.logger.InfoContext(ctx, "fantasy scores recalculated",
		"users", summary.UsersProcessed,
		"users_with_scores", summary.UsersWithScores,
		"rounds_missing", summary.RoundsMissing,
		"games", summary.GamesScored,
	)
	return summary, nil
}

func (s *FantasyService) buildLookup(ctx context.Context) (roundPoints, int, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}

	lookup := make(roundPoints)
	games := 0
	for _, m := range matches {
		list, err := s.gameRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("list games match=%s: %w", m.ID, err)
		}
		if len(list) == 0 {
			continue
		}
		round := fantasy.ClassifyRound(m)
		if lookup[round] == nil {
			lookup[round] = make(map[string]scoredGame)
		}
		for _, g := range list {
			perfs, err := s.gameRepo.ListPerformances(ctx, m.ID, g.ID)
			if err != nil {
				return nil, 0, fmt.Errorf("list performances match=%s game=%s: %w", m.ID, g.ID, err)
			}
			points := make(map[string]float64, len(perfs))
			for _, p := range perfs {
				points[p.PlayerID] = p.FantasyPoints
			}
			lookup[round][g.ID] = scoredGame{matchID: m.ID, points: points}
			games++
		}
	}
	return lookup, games, nil
}

// scoreUser sums each saved round's lineup over the round's games and
// returns the rounds that had no scored games.
func scoreUser(u fantasy.UserLineups, lookup roundPoints, now time.Time) (fantasy.UserTotals, []fantasy.RoundID) {
	totals := fantasy.UserTotals{
		UserID:             u.UserID,
		DisplayName:        u.DisplayName,
		RoundScores:        make(map[fantasy.RoundID]fantasy.UserRoundScore, len(u.Rounds)),
		LastRecalculatedAt: now,
	}

	var missing []fantasy.RoundID
	for _, round := range u.Rounds {
		score := fantasy.UserRoundScore{UserID: u.UserID, RoundID: round.RoundID}
		games, ok := lookup[round.RoundID]
		if !ok {
			missing = append(missing, round.RoundID)
			totals.RoundScores[round.RoundID] = score
			continue
		}

		gameIDs := sortedKeys(games)
		for _, role := range team.Roles {
			pick, ok := round.Lineup[role]
			if !ok || pick.ID == "" {
				continue
			}
			row := fantasy.LineupBreakdown{PlayerID: pick.ID, PlayerNickname: pick.Nickname, Role: role}
			for _, gameID := range gameIDs {
				if points, played := games[gameID].points[pick.ID]; played {
					row.Points += points
					row.Games++
				}
			}
			row.Points = fantasy.Round2(row.Points)
			score.TotalPoints += row.Points
			score.PlayerGames += row.Games
			score.Breakdown = append(score.Breakdown, row)
		}
		score.TotalPoints = fantasy.Round2(score.TotalPoints)
		score.Average = average(score.TotalPoints, score.PlayerGames)

		totals.RoundScores[round.RoundID] = score
		totals.TotalFantasyScore += score.TotalPoints
		totals.GamesPlayed += score.PlayerGames
	}

	totals.TotalFantasyScore = fantasy.Round2(totals.TotalFantasyScore)
	totals.AverageFantasyScore = average(totals.TotalFantasyScore, totals.GamesPlayed)
	return totals, missing
}

func playerRoundStats(lookup roundPoints) []fantasy.PlayerRoundStats {
	byKey := make(map[string]*fantasy.PlayerRoundStats)
	for round, games := range lookup {
		for _, gameID := range sortedKeys(games) {
			scored := games[gameID]
			for playerID, points := range scored.points {
				key := playerID + "::" + string(round)
				row, ok := byKey[key]
				if !ok {
					row = &fantasy.PlayerRoundStats{PlayerID: playerID, RoundID: round}
					byKey[key] = row
				}
				row.TotalPoints += points
				row.GamesPlayed++
				row.Games = append(row.Games, fantasy.GamePoints{MatchID: scored.matchID, GameID: gameID, Points: points})
			}
		}
	}

	out := make([]fantasy.PlayerRoundStats, 0, len(byKey))
	for _, row := range byKey {
		row.TotalPoints = fantasy.Round2(row.TotalPoints)
		row.Average = average(row.TotalPoints, row.GamesPlayed)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].RoundID < out[j].RoundID
	})
	return out
}

func overallLeaderboard(totals []fantasy.UserTotals) []fantasy.LeaderboardEntry {
	entries := make([]fantasy.LeaderboardEntry, 0, len(totals))
	for _, t := range totals {
		if t.GamesPlayed == 0 {
			continue
		}
		entries = append(entries, fantasy.LeaderboardEntry{
			UserID:       t.UserID,
			DisplayName:  t.DisplayName,
			TotalScore:   t.TotalFantasyScore,
			PlayerGames:  t.GamesPlayed,
			AverageScore: t.AverageFantasyScore,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func roleLeaderboards(teams []team.Team, lookup roundPoints) map[team.Role][]fantasy.PlayerLeaderboardEntry {
	type tally struct {
		points float64
		games  int
	}
	byPlayer := make(map[string]tally)
	for _, games := range lookup {
		for _, scored := range games {
			for playerID, points := range scored.points {
				t := byPlayer[playerID]
				t.points += points
				t.games++
				byPlayer[playerID] = t
			}
		}
	}

	out := make(map[team.Role][]fantasy.PlayerLeaderboardEntry, len(team.Roles))
	for _, t := range teams {
		for _, p := range t.Players {
			got, ok := byPlayer[p.ID]
			if !ok || p.Role == "" {
				continue
			}
			total := fantasy.Round2(got.points)
			out[p.Role] = append(out[p.Role], fantasy.PlayerLeaderboardEntry{
				PlayerID:     p.ID,
				Nickname:     p.Nickname,
				TeamName:     t.DisplayName(),
				AverageScore: average(total, got.games),
				TotalPoints:  total,
				TotalGames:   got.games,
			})
		}
	}
	for role, rows := range out {
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].AverageScore != rows[j].AverageScore {
				return rows[i].AverageScore > rows[j].AverageScore
			}
			return rows[i].PlayerID < rows[j].PlayerID
		})
		for i := range rows {
			rows[i].Rank = i + 1
		}
		out[role] = rows
	}
	return out
}

func average(total float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return fantasy.Round2(total / float64(games))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
