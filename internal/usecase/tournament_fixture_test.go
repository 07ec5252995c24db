package usecase

import (
	"testing"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

var (
	alphaPlayerIDs = []string{"alpha-carry", "alpha-mid", "alpha-off", "alpha-soft", "alpha-hard"}
	bravoPlayerIDs = []string{"bravo-carry", "bravo-mid", "bravo-off", "bravo-soft", "bravo-hard"}
)

type tournamentFixture struct {
	teams    *memory.TeamRepository
	matches  *memory.MatchRepository
	games    *memory.GameRepository
	groups   *memory.GroupRepository
	fantasy  *memory.FantasyRepository
	stats    *memory.StatsRepository
	scoring  *MatchScoringService
	fantasyS *FantasyService
	statsS   *StatsService
	save     *GameSaveService
}

func newTournamentFixture(t *testing.T, lineups ...fantasy.UserLineups) *tournamentFixture {
	t.Helper()

	logger := logging.NewNop()
	f := &tournamentFixture{
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		groups:  memory.NewGroupRepository(memory.SeedGroups()),
		fantasy: memory.NewFantasyRepository(lineups),
		stats:   memory.NewStatsRepository(),
	}
	f.games = memory.NewGameRepository(f.matches)
	f.scoring = NewMatchScoringService(f.matches, f.games, f.groups, logger)
	f.fantasyS = NewFantasyService(f.teams, f.matches, f.games, f.fantasy, logger)
	f.statsS = NewStatsService(f.teams, f.matches, f.games, f.stats, logger)
	f.save = NewGameSaveService(f.matches, f.games, f.scoring, f.fantasyS, f.statsS, logger)
	return f
}

// alphaBravoGame is a regular 40 minute game with alpha on radiant.
// Alpha players score 10..14 fantasy points and bravo players 5..9.
func alphaBravoGame(gameID string, radiantWin bool) game.Bundle {
	g := game.Game{
		ID:             gameID,
		RadiantWin:     radiantWin,
		Duration:       2400,
		StartTime:      time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC).Unix(),
		FirstBloodTime: 95,
		RadiantTeam:    game.TeamSnapshot{ID: memory.TeamIDAlpha, Name: "Alpha Esports"},
		DireTeam:       game.TeamSnapshot{ID: memory.TeamIDBravo, Name: "Bravo Five"},
	}

	perfs := make([]game.Performance, 0, 10)
	for i, id := range alphaPlayerIDs {
		perfs = append(perfs, game.Performance{
			PlayerID:          id,
			TeamID:            memory.TeamIDAlpha,
			AccountID:         int64(1001 + i),
			HeroID:            i + 1,
			Kills:             i + 2,
			Deaths:            i,
			Assists:           i + 3,
			GPM:               400 + i*50,
			XPM:               450 + i*40,
			HeroDamage:        5000 + i*1000,
			NetWorth:          12000 + i*1000,
			FirstBloodClaimed: i == 0,
			Win:               radiantWin,
			FantasyPoints:     float64(10 + i),
		})
	}
	for i, id := range bravoPlayerIDs {
		perfs = append(perfs, game.Performance{
			PlayerID:      id,
			TeamID:        memory.TeamIDBravo,
			AccountID:     int64(2001 + i),
			HeroID:        i + 10,
			Kills:         i + 1,
			Deaths:        i + 1,
			Assists:       i + 2,
			GPM:           380 + i*40,
			XPM:           420 + i*30,
			HeroDamage:    4000 + i*900,
			NetWorth:      11000 + i*800,
			Win:           !radiantWin,
			FantasyPoints: float64(5 + i),
		})
	}
	return game.Bundle{Game: g, Performances: perfs}
}
