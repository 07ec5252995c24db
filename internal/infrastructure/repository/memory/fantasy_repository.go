package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

type FantasyRepository struct {
	mu           sync.RWMutex
	lineups      map[string]fantasy.UserLineups
	totals       map[string]fantasy.UserTotals
	playerRounds map[string]fantasy.PlayerRoundStats
	leaderboard  *fantasy.Leaderboard
}

func NewFantasyRepository(lineups []fantasy.UserLineups) *FantasyRepository {
	repo := &FantasyRepository{
		lineups:      make(map[string]fantasy.UserLineups, len(lineups)),
		totals:       make(map[string]fantasy.UserTotals),
		playerRounds: make(map[string]fantasy.PlayerRoundStats),
	}
	for _, item := range lineups {
		repo.lineups[item.UserID] = cloneUserLineups(item)
	}
	return repo
}

func (r *FantasyRepository) ListUserLineups(_ context.Context) ([]fantasy.UserLineups, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.UserLineups, 0, len(r.lineups))
	for _, item := range r.lineups {
		out = append(out, cloneUserLineups(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *FantasyRepository) SaveRecalculation(_ context.Context, totals []fantasy.UserTotals, playerRounds []fantasy.PlayerRoundStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range totals {
		r.totals[item.UserID] = item
	}
	for _, item := range playerRounds {
		r.playerRounds[item.PlayerID+"::"+string(item.RoundID)] = item
	}
	return nil
}

func (r *FantasyRepository) SaveLeaderboard(_ context.Context, board fantasy.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := cloneLeaderboard(board)
	r.leaderboard = &copied
	return nil
}

func (r *FantasyRepository) GetLeaderboard(_ context.Context) (fantasy.Leaderboard, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.leaderboard == nil {
		return fantasy.Leaderboard{}, false, nil
	}
	return cloneLeaderboard(*r.leaderboard), true, nil
}

// UserTotals returns the last saved totals of a user.
func (r *FantasyRepository) UserTotals(userID string) (fantasy.UserTotals, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.totals[userID]
	return item, ok
}

func (r *FantasyRepository) PlayerRound(playerID string, round fantasy.RoundID) (fantasy.PlayerRoundStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.playerRounds[playerID+"::"+string(round)]
	return item, ok
}

func cloneUserLineups(item fantasy.UserLineups) fantasy.UserLineups {
	copied := item
	copied.Rounds = make([]fantasy.RoundLineup, len(item.Rounds))
	for i, round := range item.Rounds {
		lineup := make(map[team.Role]fantasy.LineupPlayer, len(round.Lineup))
		for role, p := range round.Lineup {
			lineup[role] = p
		}
		copied.Rounds[i] = fantasy.RoundLineup{RoundID: round.RoundID, Lineup: lineup}
	}
	return copied
}

func cloneLeaderboard(board fantasy.Leaderboard) fantasy.Leaderboard {
	copied := fantasy.Leaderboard{
		Overall:     append([]fantasy.LeaderboardEntry(nil), board.Overall...),
		ByRole:      make(map[team.Role][]fantasy.PlayerLeaderboardEntry, len(board.ByRole)),
		GeneratedAt: board.GeneratedAt,
	}
	for role, rows := range board.ByRole {
		copied.ByRole[role] = append([]fantasy.PlayerLeaderboardEntry(nil), rows...)
	}
	return copied
}
