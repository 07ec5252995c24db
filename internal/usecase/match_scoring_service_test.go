package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
)

func TestMatchScoringService_Recalculate_NoGamesIsPending(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	res, err := f.scoring.Recalculate(t.Context(), memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)
	assert.Equal(t, match.Result{Status: match.StatusPending}, res)
}

func TestMatchScoringService_Recalculate_Bo2DrawUpdatesStandings(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	ctx := t.Context()
	opts := SaveOptions{SkipPostProcessing: true}
	_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7001", true), opts)
	require.NoError(t, err)
	_, err = f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7002", false), opts)
	require.NoError(t, err)

	res, err := f.scoring.Recalculate(ctx, memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, res.Status)
	assert.Empty(t, res.WinnerID)
	assert.Equal(t, 1, res.TeamAScore)
	assert.Equal(t, 1, res.TeamBScore)

	groups, err := f.groups.List(ctx)
	require.NoError(t, err)
	alpha := groups[0].Standings[memory.TeamIDAlpha]
	bravo := groups[0].Standings[memory.TeamIDBravo]
	assert.Equal(t, 1, alpha.Draws)
	assert.Equal(t, 1, bravo.Draws)
	assert.Equal(t, 1, alpha.Points)
	assert.Equal(t, match.HeadToHeadDraw, alpha.HeadToHead[memory.TeamIDBravo])
	assert.Equal(t, match.HeadToHeadDraw, bravo.HeadToHead[memory.TeamIDAlpha])
}

func TestMatchScoringService_Recalculate_Bo3StaysPendingAfterOneWin(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	ctx := t.Context()
	_, err := f.save.Save(ctx, memory.MatchIDUpperR1, alphaBravoGame("9001", true), SaveOptions{SkipPostProcessing: true})
	require.NoError(t, err)

	res, err := f.scoring.Recalculate(ctx, memory.MatchIDUpperR1)
	require.NoError(t, err)
	assert.Equal(t, match.StatusPending, res.Status)
	assert.Equal(t, 1, res.TeamAScore)
	assert.Nil(t, res.CompletedAt)
}

func TestMatchScoringService_Recalculate_UnknownMatch(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	_, err := f.scoring.Recalculate(t.Context(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
