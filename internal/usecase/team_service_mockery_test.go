package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	gamemock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/game"
	matchmock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/match"
	teammock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_GetTeam_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), gamemock.NewRepository(t))

	teamRepo.
		On("GetByID", mock.Anything, "team-alpha").
		Return(team.Team{ID: "team-alpha", Name: "Alpha"}, true, nil).
		Once()

	got, err := service.GetTeam(ctx, " team-alpha ")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Alpha" {
		t.Fatalf("unexpected team name %q", got.Name)
	}
}

func TestTeamService_GetTeam_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), gamemock.NewRepository(t))

	teamRepo.
		On("GetByID", mock.Anything, "missing").
		Return(team.Team{}, false, nil).
		Once()

	_, err := service.GetTeam(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_GetTeam_EmptyIDSkipsRepository(t *testing.T) {
	t.Parallel()

	service := NewTeamService(teammock.NewRepository(t), matchmock.NewRepository(t), gamemock.NewRepository(t))
	_, err := service.GetTeam(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_GetMatch_LoadsGamesAndPerformancesUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)
	service := NewTeamService(teammock.NewRepository(t), matchRepo, gameRepo)

	matchRepo.
		On("GetByID", mock.Anything, "match-1").
		Return(match.Match{ID: "match-1", TeamA: match.TeamRef{ID: "team-alpha"}, TeamB: match.TeamRef{ID: "team-bravo"}}, true, nil).
		Once()
	gameRepo.
		On("ListByMatch", mock.Anything, "match-1").
		Return([]game.Game{{ID: "7001"}, {ID: "7002"}}, nil).
		Once()
	gameRepo.
		On("ListPerformances", mock.Anything, "match-1", "7001").
		Return([]game.Performance{{PlayerID: "p1"}}, nil).
		Once()
	gameRepo.
		On("ListPerformances", mock.Anything, "match-1", "7002").
		Return([]game.Performance{{PlayerID: "p1"}, {PlayerID: "p2"}}, nil).
		Once()

	got, err := service.GetMatch(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if len(got.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got.Games))
	}
	if len(got.Games[1].Performances) != 2 {
		t.Fatalf("expected 2 performances on second game, got %d", len(got.Games[1].Performances))
	}
}

func TestTeamService_GetMatch_PerformanceErrorUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)
	service := NewTeamService(teammock.NewRepository(t), matchRepo, gameRepo)

	matchRepo.On("GetByID", mock.Anything, "match-1").Return(match.Match{ID: "match-1"}, true, nil).Once()
	gameRepo.On("ListByMatch", mock.Anything, "match-1").Return([]game.Game{{ID: "7001"}}, nil).Once()
	gameRepo.On("ListPerformances", mock.Anything, "match-1", "7001").Return(nil, errors.New("firestore down")).Once()

	if _, err := service.GetMatch(context.Background(), "match-1"); err == nil {
		t.Fatalf("expected error when performances fail to load")
	}
}

func TestTeamService_ListMatches_UsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewTeamService(teammock.NewRepository(t), matchRepo, gamemock.NewRepository(t))

	matchRepo.On("List", mock.Anything).Return([]match.Match{{ID: "m1"}, {ID: "m2"}}, nil).Once()

	got, err := service.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}
