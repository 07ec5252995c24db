package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
)

func fantasyLineups() []fantasy.UserLineups {
	return []fantasy.UserLineups{
		{
			UserID:      "user-b",
			DisplayName: "Bea",
			Rounds: []fantasy.RoundLineup{{
				RoundID: fantasy.RoundGroupStage,
				Lineup: map[team.Role]fantasy.LineupPlayer{
					team.RoleCarry: {ID: "alpha-carry", Nickname: "Kaz"},
					team.RoleMid:   {ID: "bravo-mid", Nickname: "Sable"},
				},
			}},
		},
		{
			UserID:      "user-a",
			DisplayName: "Ada",
			Rounds: []fantasy.RoundLineup{{
				RoundID: fantasy.PlayoffRound(2),
				Lineup: map[team.Role]fantasy.LineupPlayer{
					team.RoleCarry: {ID: "alpha-carry"},
				},
			}},
		},
	}
}

func TestFantasyService_RecalculateAll(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t, fantasyLineups()...)
	ctx := t.Context()
	opts := SaveOptions{SkipPostProcessing: true}
	_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7001", true), opts)
	require.NoError(t, err)
	_, err = f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7002", false), opts)
	require.NoError(t, err)

	summary, err := f.fantasyS.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.UsersProcessed)
	assert.Equal(t, 1, summary.UsersWithScores)
	assert.Equal(t, 1, summary.RoundsMissing)
	assert.Equal(t, 2, summary.GamesScored)

	totals, ok := f.fantasy.UserTotals("user-b")
	require.True(t, ok)
	// alpha-carry scores 10 and bravo-mid 6 in each of the two games.
	assert.Equal(t, 32.0, totals.TotalFantasyScore)
	assert.Equal(t, 4, totals.GamesPlayed)
	assert.Equal(t, 8.0, totals.AverageFantasyScore)
	assert.Len(t, totals.RoundScores[fantasy.RoundGroupStage].Breakdown, 2)

	missing, ok := f.fantasy.UserTotals("user-a")
	require.True(t, ok)
	assert.Equal(t, 0, missing.GamesPlayed)
	assert.Equal(t, 0.0, missing.AverageFantasyScore)

	round, ok := f.fantasy.PlayerRound("alpha-carry", fantasy.RoundGroupStage)
	require.True(t, ok)
	assert.Equal(t, 20.0, round.TotalPoints)
	assert.Equal(t, 2, round.GamesPlayed)
	assert.Equal(t, memory.MatchIDGroupAlphaBravo, round.Games[0].MatchID)

	board, err := f.fantasyS.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board.Overall, 1)
	assert.Equal(t, "user-b", board.Overall[0].UserID)
	assert.Equal(t, 1, board.Overall[0].Rank)

	carries := board.ByRole[team.RoleCarry]
	require.Len(t, carries, 2)
	assert.Equal(t, "alpha-carry", carries[0].PlayerID)
	assert.Equal(t, 10.0, carries[0].AverageScore)
	assert.Equal(t, "Alpha Esports", carries[0].TeamName)
	assert.Equal(t, 2, carries[1].Rank)
}

func TestFantasyService_LeaderboardTieBreaksByUserID(t *testing.T) {
	t.Parallel()

	rows := overallLeaderboard([]fantasy.UserTotals{
		{UserID: "zed", GamesPlayed: 2, AverageFantasyScore: 12},
		{UserID: "amy", GamesPlayed: 3, AverageFantasyScore: 12},
		{UserID: "bob", GamesPlayed: 1, AverageFantasyScore: 20},
		{UserID: "none", GamesPlayed: 0},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"bob", "amy", "zed"}, []string{rows[0].UserID, rows[1].UserID, rows[2].UserID})
	assert.Equal(t, 3, rows[2].Rank)
}

func TestFantasyService_GetLeaderboardBeforeRecalculation(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	_, err := f.fantasyS.GetLeaderboard(t.Context())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFantasyService_RecalculateAll_WaitsForRunningRecalculation(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t, fantasyLineups()...)
	ctx := t.Context()
	_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7001", true), SaveOptions{SkipPostProcessing: true})
	require.NoError(t, err)

	require.NoError(t, f.fantasyS.gate.enter(ctx))

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = f.fantasyS.RecalculateAll(short)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, ok := f.fantasy.UserTotals("user-b")
	assert.False(t, ok)

	_, err = f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7002", false), SaveOptions{SkipPostProcessing: true})
	require.NoError(t, err)
	f.fantasyS.gate.leave()

	summary, err := f.fantasyS.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.GamesScored)
}
