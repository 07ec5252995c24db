package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

const reprocessGameID = "8123456789"

func newReprocessFixture(t *testing.T, provider *providerStub) (*tournamentFixture, *ReprocessService) {
	t.Helper()

	f := newTournamentFixture(t)
	ingestion := NewIngestionService(provider, f.teams, logging.NewNop())
	svc := NewReprocessService(f.matches, f.games, ingestion, f.save, f.scoring, f.statsS, f.fantasyS, 2, logging.NewNop())

	stored, err := ingestion.Transform(t.Context(), providerMatch(2001, 2002, 2003, 2004, 2005), TeamMapping{})
	require.NoError(t, err)
	_, err = f.save.Save(t.Context(), memory.MatchIDGroupAlphaBravo, stored, SaveOptions{SkipPostProcessing: true})
	require.NoError(t, err)
	return f, svc
}

func TestReprocessService_ProcessesAndReportsUnknownIDs(t *testing.T) {
	t.Parallel()

	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	payload.Version = intPtr(21)
	payload.Players[0].Kills = 9
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	f, svc := newReprocessFixture(t, provider)

	res, err := svc.Reprocess(t.Context(), ReprocessOptions{GameIDs: []string{reprocessGameID, "404"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Errored)
	assert.Equal(t, "404", res.Details[0].ID)
	assert.Equal(t, jobrun.DetailError, res.Details[0].Status)
	assert.Equal(t, jobrun.DetailProcessed, res.Details[1].Status)

	require.Len(t, res.PostSteps, 3)
	assert.True(t, res.PostSteps[0].OK)
	assert.True(t, res.PostSteps[1].OK)
	assert.True(t, res.PostSteps[2].Skipped)

	perfs, err := f.games.ListPerformances(t.Context(), memory.MatchIDGroupAlphaBravo, reprocessGameID)
	require.NoError(t, err)
	assert.Equal(t, 9, perfs[0].Kills)
}

func TestReprocessService_RequestsParsingForUnparsed(t *testing.T) {
	t.Parallel()

	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: providerMatch(2001, 2002, 2003, 2004, 2005)}}
	_, svc := newReprocessFixture(t, provider)

	res, err := svc.Reprocess(t.Context(), ReprocessOptions{RequestParsingForUnparsed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, jobrun.DetailParseRequested, res.Details[0].Status)
	assert.Equal(t, []string{reprocessGameID}, provider.parseRequest)
	assert.Empty(t, res.PostSteps)
}

func TestReprocessService_SkipsUnparsedGamesUnlessForced(t *testing.T) {
	t.Parallel()

	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	payload.Players[0].Kills = 7
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	f, svc := newReprocessFixture(t, provider)

	res, err := svc.Reprocess(t.Context(), ReprocessOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, jobrun.DetailSkipped, res.Details[0].Status)
	assert.Equal(t, "Match not parsed and forceReprocess=false", res.Details[0].Message)
	assert.Empty(t, res.PostSteps)
	assert.Empty(t, provider.parseRequest)

	perfs, err := f.games.ListPerformances(t.Context(), memory.MatchIDGroupAlphaBravo, reprocessGameID)
	require.NoError(t, err)
	assert.Equal(t, 4, perfs[0].Kills)

	res, err = svc.Reprocess(t.Context(), ReprocessOptions{ForceReprocess: true, UpdateFantasyScores: true})
	require.NoError(t, err)
	assert.Equal(t, jobrun.DetailProcessed, res.Details[0].Status)
	assert.Equal(t, "reprocessed unparsed game", res.Details[0].Message)
	require.Len(t, res.PostSteps, 3)
	assert.True(t, res.PostSteps[2].OK)

	perfs, err = f.games.ListPerformances(t.Context(), memory.MatchIDGroupAlphaBravo, reprocessGameID)
	require.NoError(t, err)
	assert.Equal(t, 7, perfs[0].Kills)
}

func TestReprocessService_ParsedGamesAreRewrittenWithoutForce(t *testing.T) {
	t.Parallel()

	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	payload.Version = intPtr(21)
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	_, svc := newReprocessFixture(t, provider)

	for range 2 {
		res, err := svc.Reprocess(t.Context(), ReprocessOptions{})
		require.NoError(t, err)
		assert.Equal(t, jobrun.DetailProcessed, res.Details[0].Status)
		assert.Equal(t, "reprocessed parsed game", res.Details[0].Message)
	}
}

func TestReprocessService_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	payload.Version = intPtr(21)
	payload.Players[0].Kills = 12
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	f, svc := newReprocessFixture(t, provider)

	res, err := svc.Reprocess(t.Context(), ReprocessOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Empty(t, res.PostSteps)

	perfs, err := f.games.ListPerformances(t.Context(), memory.MatchIDGroupAlphaBravo, reprocessGameID)
	require.NoError(t, err)
	assert.Equal(t, 4, perfs[0].Kills)
}

func TestReprocessService_PracticeGameIsSkipped(t *testing.T) {
	t.Parallel()

	payload := providerMatch(2001, 2002, 2003, 2004, 2005)
	for i := range payload.Players {
		payload.Players[i].Kills, payload.Players[i].Deaths, payload.Players[i].Assists = 0, 0, 0
	}
	provider := &providerStub{matches: map[string]ExternalMatch{reprocessGameID: payload}}
	_, svc := newReprocessFixture(t, provider)

	res, err := svc.Reprocess(t.Context(), ReprocessOptions{ForceReprocess: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, res.Details[0].Message, "practice game")
}
