package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
)

// MatchRepository holds matches together with their games and performances,
// mirroring the matches/{id}/games/{gameId}/performances tree.
type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	games   map[string]map[string]game.Game
	perfs   map[string][]game.Performance
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	repo := &MatchRepository{
		matches: make(map[string]match.Match, len(matches)),
		games:   make(map[string]map[string]game.Game),
		perfs:   make(map[string][]game.Performance),
	}
	_ = repo.UpsertMatches(context.Background(), matches)
	return repo
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		out = append(out, cloneMatch(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) UpdateResult(_ context.Context, matchID string, result match.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	item.TeamA.Score = result.TeamAScore
	item.TeamB.Score = result.TeamBScore
	item.Status = result.Status
	item.WinnerID = result.WinnerID
	item.CompletedAt = nil
	if result.CompletedAt != nil {
		at := *result.CompletedAt
		item.CompletedAt = &at
	}
	r.matches[matchID] = item

	return nil
}

func (r *MatchRepository) UpsertMatches(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		matchID := strings.TrimSpace(item.ID)
		if matchID == "" {
			continue
		}
		item.ID = matchID
		r.matches[matchID] = cloneMatch(item)
	}

	return nil
}

func (r *MatchRepository) listGames(matchID string) []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.games[matchID]
	out := make([]game.Game, 0, len(rows))
	for _, item := range rows {
		out = append(out, cloneGame(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MatchRepository) getGame(matchID, gameID string) (game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[matchID][gameID]
	if !ok {
		return game.Game{}, false
	}
	return cloneGame(item), true
}

func (r *MatchRepository) listPerformances(matchID, gameID string) []game.Performance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]game.Performance(nil), r.perfs[perfKey(matchID, gameID)]...)
}

func (r *MatchRepository) saveBundle(matchID string, bundle game.Bundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	gameID := bundle.Game.ID
	if !item.HasGame(gameID) {
		item.GameIDs = append(item.GameIDs, gameID)
		r.matches[matchID] = item
	}

	if r.games[matchID] == nil {
		r.games[matchID] = make(map[string]game.Game)
	}
	g := cloneGame(bundle.Game)
	g.MatchID = matchID
	r.games[matchID][gameID] = g
	r.perfs[perfKey(matchID, gameID)] = append([]game.Performance(nil), bundle.Performances...)

	return nil
}

func perfKey(matchID, gameID string) string {
	return matchID + "::" + gameID
}

func cloneMatch(item match.Match) match.Match {
	copied := item
	copied.GameIDs = append([]string(nil), item.GameIDs...)
	if item.CompletedAt != nil {
		at := *item.CompletedAt
		copied.CompletedAt = &at
	}
	return copied
}

func cloneGame(item game.Game) game.Game {
	copied := item
	copied.PicksBans = append([]game.PickBan(nil), item.PicksBans...)
	return copied
}

// GameRepository exposes the games stored by a MatchRepository.
type GameRepository struct {
	matches *MatchRepository
}

func NewGameRepository(matches *MatchRepository) *GameRepository {
	return &GameRepository{matches: matches}
}

func (r *GameRepository) ListByMatch(_ context.Context, matchID string) ([]game.Game, error) {
	return r.matches.listGames(matchID), nil
}

func (r *GameRepository) GetByID(_ context.Context, matchID, gameID string) (game.Game, bool, error) {
	item, ok := r.matches.getGame(matchID, gameID)
	return item, ok, nil
}

func (r *GameRepository) ListPerformances(_ context.Context, matchID, gameID string) ([]game.Performance, error) {
	return r.matches.listPerformances(matchID, gameID), nil
}

func (r *GameRepository) SaveBundle(_ context.Context, matchID string, bundle game.Bundle) error {
	return r.matches.saveBundle(matchID, bundle)
}

type GroupRepository struct {
	mu     sync.RWMutex
	groups map[string]match.Group
}

func NewGroupRepository(groups []match.Group) *GroupRepository {
	repo := &GroupRepository{groups: make(map[string]match.Group, len(groups))}
	for _, g := range groups {
		repo.groups[g.ID] = cloneGroup(g)
	}
	return repo
}

func (r *GroupRepository) List(_ context.Context) ([]match.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, cloneGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GroupRepository) ReplaceStandings(_ context.Context, groups []match.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range groups {
		r.groups[g.ID] = cloneGroup(g)
	}
	return nil
}

func cloneGroup(g match.Group) match.Group {
	copied := match.Group{ID: g.ID, Name: g.Name, Standings: make(map[string]match.Standing, len(g.Standings))}
	for teamID, row := range g.Standings {
		h2h := make(map[string]match.HeadToHead, len(row.HeadToHead))
		for k, v := range row.HeadToHead {
			h2h[k] = v
		}
		row.HeadToHead = h2h
		copied.Standings[teamID] = row
	}
	return copied
}
