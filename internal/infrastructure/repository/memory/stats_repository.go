package memory

import (
	"context"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

type StatsRepository struct {
	mu         sync.RWMutex
	tournament *stats.TournamentStats
	players    map[string]stats.PlayerStats
	teams      map[string]stats.TeamStats
	writes     int
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		players: make(map[string]stats.PlayerStats),
		teams:   make(map[string]stats.TeamStats),
	}
}

func (r *StatsRepository) ReplaceAll(_ context.Context, tournament stats.TournamentStats, players []stats.PlayerStats, teams []stats.TeamStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := tournament
	t.Top3PickedHeroes = append([]stats.HeroRecord(nil), tournament.Top3PickedHeroes...)
	r.tournament = &t
	r.players = make(map[string]stats.PlayerStats, len(players))
	for _, p := range players {
		r.players[p.PlayerID] = p
	}
	r.teams = make(map[string]stats.TeamStats, len(teams))
	for _, item := range teams {
		r.teams[item.TeamID] = item
	}
	r.writes++
	return nil
}

func (r *StatsRepository) GetTournament(_ context.Context) (stats.TournamentStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.tournament == nil {
		return stats.TournamentStats{}, false, nil
	}
	return *r.tournament, true, nil
}

func (r *StatsRepository) GetPlayer(_ context.Context, playerID string) (stats.PlayerStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *StatsRepository) GetTeam(_ context.Context, teamID string) (stats.TeamStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

// Writes counts ReplaceAll calls.
func (r *StatsRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.writes
}
