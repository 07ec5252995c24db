package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{teams: make(map[string]team.Team, len(teams))}
	_ = repo.UpsertTeams(context.Background(), teams)
	return repo
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(item), true, nil
}

// Create rejects an id that is already stored.
func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	teamID := strings.TrimSpace(item.ID)
	if teamID == "" {
		return fmt.Errorf("team id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[teamID]; exists {
		return fmt.Errorf("team %s already exists", teamID)
	}
	item.ID = teamID
	r.teams[teamID] = cloneTeam(item)
	return nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		teamID := strings.TrimSpace(item.ID)
		if teamID == "" {
			continue
		}
		item.ID = teamID
		r.teams[teamID] = cloneTeam(item)
	}

	return nil
}

func cloneTeam(item team.Team) team.Team {
	copied := item
	copied.Players = make([]team.Player, len(item.Players))
	for i, p := range item.Players {
		if p.TeamID == "" {
			p.TeamID = item.ID
		}
		copied.Players[i] = p
	}
	return copied
}
