package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

func TestStatsService_CalculateAll_OnlyCompletedMatches(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	ctx := t.Context()
	opts := SaveOptions{SkipPostProcessing: true}

	_, err := f.save.Save(ctx, memory.MatchIDUpperR1, alphaBravoGame("9001", true), opts)
	require.NoError(t, err)
	summary, err := f.statsS.CalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalGames)

	for _, id := range []string{"7001", "7002"} {
		_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame(id, true), opts)
		require.NoError(t, err)
	}
	_, err = f.scoring.Recalculate(ctx, memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)

	summary, err = f.statsS.CalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalMatches)
	assert.Equal(t, 2, summary.TotalGames)
	assert.Equal(t, 10, summary.PlayerDocs)
	assert.Equal(t, 2, summary.TeamDocs)

	tournament, err := f.statsS.GetTournament(ctx)
	require.NoError(t, err)
	assert.Equal(t, 70, tournament.TotalKills)

	player, err := f.statsS.GetPlayer(ctx, "alpha-carry")
	require.NoError(t, err)
	assert.Equal(t, 2, player.GamesPlayed)
	assert.Equal(t, "Kaz", player.PlayerName)

	teamStats, err := f.statsS.GetTeam(ctx, memory.TeamIDAlpha)
	require.NoError(t, err)
	assert.Equal(t, 2, teamStats.Wins)

	_, err = f.statsS.GetPlayer(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = f.statsS.GetTeam(ctx, " ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

type failingGameRepo struct {
	*memory.GameRepository
}

func (failingGameRepo) ListPerformances(context.Context, string, string) ([]game.Performance, error) {
	return nil, errors.New("read timeout")
}

func TestStatsService_CalculateAll_LoadFailureWritesNothing(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	ctx := t.Context()
	for _, id := range []string{"7001", "7002"} {
		_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame(id, true), SaveOptions{SkipPostProcessing: true})
		require.NoError(t, err)
	}
	_, err := f.scoring.Recalculate(ctx, memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)

	svc := NewStatsService(f.teams, f.matches, failingGameRepo{f.games}, f.stats, logging.NewNop())
	_, err = svc.CalculateAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read timeout")
	assert.Equal(t, 0, f.stats.Writes())
}

// pausingGameRepo blocks the first ListPerformances call until release is
// closed, holding a recalculation in the middle of its snapshot.
type pausingGameRepo struct {
	*memory.GameRepository
	once    sync.Once
	paused  chan struct{}
	release chan struct{}
}

func (r *pausingGameRepo) ListPerformances(ctx context.Context, matchID, gameID string) ([]game.Performance, error) {
	r.once.Do(func() {
		close(r.paused)
		<-r.release
	})
	return r.GameRepository.ListPerformances(ctx, matchID, gameID)
}

func TestStatsService_CalculateAll_CallerQueuedBehindRunSeesLaterSave(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	ctx := t.Context()
	for _, id := range []string{"7001", "7002"} {
		_, err := f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame(id, true), SaveOptions{SkipPostProcessing: true})
		require.NoError(t, err)
	}
	_, err := f.scoring.Recalculate(ctx, memory.MatchIDGroupAlphaBravo)
	require.NoError(t, err)

	repo := &pausingGameRepo{GameRepository: f.games, paused: make(chan struct{}), release: make(chan struct{})}
	svc := NewStatsService(f.teams, f.matches, repo, f.stats, logging.NewNop())

	firstDone := make(chan StatsSummary, 1)
	go func() {
		summary, err := svc.CalculateAll(ctx)
		assert.NoError(t, err)
		firstDone <- summary
	}()
	<-repo.paused

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.CalculateAll(canceled)
	require.ErrorIs(t, err, context.Canceled)

	_, err = f.save.Save(ctx, memory.MatchIDGroupAlphaBravo, alphaBravoGame("7003", false), SaveOptions{SkipPostProcessing: true})
	require.NoError(t, err)

	secondDone := make(chan StatsSummary, 1)
	go func() {
		summary, err := svc.CalculateAll(ctx)
		assert.NoError(t, err)
		secondDone <- summary
	}()
	// let the second caller reach the gate while the first run is paused
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	assert.Equal(t, 2, (<-firstDone).TotalGames)
	assert.Equal(t, 3, (<-secondDone).TotalGames)

	tournament, err := svc.GetTournament(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, tournament.TotalGames)
}
