package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	gamemock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/game"
	matchmock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/match"
	teammock "github.com/Cienszki/automatic-tournament-sub000/internal/mocks/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/id"
)

func newRoster() []team.Player {
	return []team.Player{
		{Nickname: "Nyx", Role: "carry", SteamID32: "9001", MMR: 5200},
		{Nickname: "Orb", Role: team.RoleMid, SteamID32: "9002", MMR: 5400},
		{Nickname: "Pax", Role: team.RoleOfflane, SteamID32: "9003", MMR: 5000},
		{Nickname: "Qin", Role: "soft support", SteamID32: "9004", MMR: 4800},
		{Nickname: "Rue", Role: team.RoleHardSupport, SteamID32: " 9005 ", MMR: 4700},
	}
}

func newRegistrationService(t *testing.T) (*TeamService, *memory.TeamRepository) {
	t.Helper()

	teams := memory.NewTeamRepository(memory.SeedTeams())
	svc := NewTeamService(teams, memory.NewMatchRepository(nil), memory.NewGameRepository(memory.NewMatchRepository(nil)))
	svc.ids = &id.Sequence{Prefix: "team-new-"}
	return svc, teams
}

func TestTeamService_RegisterStoresUnverifiedTeam(t *testing.T) {
	t.Parallel()

	svc, teams := newRegistrationService(t)

	got, err := svc.Register(t.Context(), RegisterTeamInput{
		CaptainID: "uid-captain",
		Name:      " Echo Five ",
		Tag:       "ECH",
		Players:   newRoster(),
	})
	require.NoError(t, err)
	assert.Equal(t, "team-new-1", got.ID)
	assert.Equal(t, "Echo Five", got.Name)
	assert.Equal(t, team.StatusNotVerified, got.Status)
	assert.Equal(t, "uid-captain", got.CaptainID)
	require.Len(t, got.Players, team.RosterSize)
	assert.Equal(t, team.RoleCarry, got.Players[0].Role)
	assert.Equal(t, "team-new-1-soft-support", got.Players[3].ID)
	assert.Equal(t, "9005", got.Players[4].SteamID32)

	stored, found, err := teams.GetByID(t.Context(), "team-new-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, got, stored)

	player, ok := stored.PlayerByAccount("9002")
	require.True(t, ok)
	assert.Equal(t, "team-new-1", player.TeamID)
}

func TestTeamService_RegisterRejectsInvalidRoster(t *testing.T) {
	t.Parallel()

	svc, teams := newRegistrationService(t)
	before, err := teams.List(t.Context())
	require.NoError(t, err)

	roster := newRoster()
	roster[1].Role = team.RoleCarry
	roster[2].SteamID32 = "9001"

	_, err = svc.Register(t.Context(), RegisterTeamInput{CaptainID: "uid-captain", Name: "Echo Five", Players: roster})
	require.ErrorIs(t, err, ErrInvalidInput)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{
		"role Carry is taken by more than one player",
		"steamId32 9001 is listed more than once",
	}, validationErr.Messages)

	after, err := teams.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestTeamService_RegisterConflicts(t *testing.T) {
	t.Parallel()

	svc, _ := newRegistrationService(t)

	_, err := svc.Register(t.Context(), RegisterTeamInput{CaptainID: "uid-captain", Name: "alpha esports", Players: newRoster()})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `team name "alpha esports" is taken`)

	roster := newRoster()
	roster[0].SteamID32 = "1001"
	_, err = svc.Register(t.Context(), RegisterTeamInput{CaptainID: "uid-captain", Name: "Echo Five", Players: roster})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "account 1001 already plays for Alpha Esports")

	_, err = svc.Register(t.Context(), RegisterTeamInput{Name: "Echo Five", Players: newRoster()})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTeamService_RegisterWrapsCreateErrorUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), gamemock.NewRepository(t))
	service.ids = &id.Sequence{Prefix: "t"}

	teamRepo.On("List", mock.Anything).Return([]team.Team{}, nil).Once()
	teamRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item team.Team) bool {
			return item.ID == "t1" && len(item.Players) == team.RosterSize
		})).
		Return(errors.New("already exists")).
		Once()

	_, err := service.Register(t.Context(), RegisterTeamInput{CaptainID: "uid", Name: "Echo", Players: newRoster()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create team: already exists")
}
