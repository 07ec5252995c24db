package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/id"
)

type GameDetails struct {
	Game         game.Game
	Performances []game.Performance
}

type MatchDetails struct {
	Match match.Match
	Games []GameDetails
}

// RegisterTeamInput is a captain's registration of a new team.
type RegisterTeamInput struct {
	CaptainID string
	Name      string
	Tag       string
	Players   []team.Player
}

// TeamService serves teams and matches and registers new teams.
type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	gameRepo  game.Repository
	ids       id.Generator
}

func NewTeamService(teamRepo team.Repository, matchRepo match.Repository, gameRepo game.Repository) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		ids:       id.NewNanoGenerator("team"),
	}
}

// Register stores a new team with a full roster in the Not Verified state.
// Names are unique ignoring case and an account plays for one team only.
func (s *TeamService) Register(ctx context.Context, input RegisterTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Register")
	defer span.End()

	if strings.TrimSpace(input.CaptainID) == "" {
		return team.Team{}, fmt.Errorf("%w: captain is required", ErrUnauthorized)
	}
	item := team.Team{
		Name:      strings.TrimSpace(input.Name),
		Tag:       strings.TrimSpace(input.Tag),
		CaptainID: strings.TrimSpace(input.CaptainID),
		Status:    team.StatusNotVerified,
		Players:   make([]team.Player, 0, len(input.Players)),
	}
	for _, p := range input.Players {
		if role, ok := team.ParseRole(string(p.Role)); ok {
			p.Role = role
		}
		p.Nickname = strings.TrimSpace(p.Nickname)
		p.SteamID32 = strings.TrimSpace(p.SteamID32)
		item.Players = append(item.Players, p)
	}

	var problems []string
	if item.Name == "" {
		problems = append(problems, "name is required")
	}
	problems = append(problems, item.RosterProblems()...)
	if len(problems) > 0 {
		return team.Team{}, &ValidationError{Messages: problems}
	}

	existing, err := s.teamRepo.List(ctx)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams: %w", err)
	}
	for _, other := range existing {
		if strings.EqualFold(strings.TrimSpace(other.Name), item.Name) {
			return team.Team{}, fmt.Errorf("%w: team name %q is taken", ErrConflict, item.Name)
		}
		accounts := other.AccountSet()
		for _, p := range item.Players {
			if _, taken := accounts[p.SteamID32]; taken {
				return team.Team{}, fmt.Errorf("%w: account %s already plays for %s", ErrConflict, p.SteamID32, other.DisplayName())
			}
		}
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("new team id: %w", err)
	}
	item.ID = teamID
	for i := range item.Players {
		item.Players[i].TeamID = teamID
		item.Players[i].ID = teamID + "-" + roleSlug(item.Players[i].Role)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}

func roleSlug(role team.Role) string {
	return strings.ReplaceAll(strings.ToLower(string(role)), " ", "-")
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team not found: %s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// GetMatch returns a match with every game and performance under it.
func (s *TeamService) GetMatch(ctx context.Context, matchID string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetails{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match by id: %w", err)
	}
	if !ok {
		return MatchDetails{}, fmt.Errorf("%w: match not found: %s", ErrNotFound, matchID)
	}

	games, err := s.gameRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("list games match=%s: %w", matchID, err)
	}
	out := MatchDetails{Match: m, Games: make([]GameDetails, 0, len(games))}
	for _, g := range games {
		perfs, err := s.gameRepo.ListPerformances(ctx, matchID, g.ID)
		if err != nil {
			return MatchDetails{}, fmt.Errorf("list performances match=%s game=%s: %w", matchID, g.ID, err)
		}
		out.Games = append(out.Games, GameDetails{Game: g, Performances: perfs})
	}
	return out, nil
}
