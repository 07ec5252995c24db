package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

func TestGameImportService_Import(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: providerMatch(2001, 2002, 2003, 2004, 2005)}}
	svc := NewGameImportService(NewIngestionService(provider, f.teams, logging.NewNop()), f.save, logging.NewNop())

	res, err := svc.Import(t.Context(), ImportGameInput{MatchID: memory.MatchIDGroupAlphaBravo, GameID: reprocessGameID})
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.False(t, res.Failed())

	details, err := NewTeamService(f.teams, f.matches, f.games).GetMatch(t.Context(), memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)
	require.Len(t, details.Games, 1)
	assert.Len(t, details.Games[0].Performances, 10)
	assert.Equal(t, 1, details.Match.TeamA.Score)
}

func TestGameImportService_RejectsPracticeGame(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	for i := range payload.Players {
		payload.Players[i].Kills, payload.Players[i].Deaths, payload.Players[i].Assists = 0, 0, 0
	}
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	svc := NewGameImportService(NewIngestionService(provider, f.teams, logging.NewNop()), f.save, logging.NewNop())

	_, err := svc.Import(t.Context(), ImportGameInput{MatchID: memory.MatchIDGroupAlphaBravo, GameID: reprocessGameID})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	m, _, _ := f.matches.GetByID(t.Context(), memory.MatchIDGroupAlphaBravo)
	assert.Empty(t, m.GameIDs)
}

func TestGameImportService_RequiresIDs(t *testing.T) {
	t.Parallel()

	svc := NewGameImportService(nil, nil, logging.NewNop())
	_, err := svc.Import(t.Context(), ImportGameInput{MatchID: "m"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTeamService_NotFound(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	svc := NewTeamService(f.teams, f.matches, f.games)

	_, err := svc.GetTeam(t.Context(), "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.GetMatch(t.Context(), "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))

	teams, err := svc.ListTeams(t.Context())
	require.NoError(t, err)
	assert.Len(t, teams, 3)
}
