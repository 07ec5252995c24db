package cache

import (
	"context"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	basecache "github.com/Cienszki/automatic-tournament-sub000/internal/platform/cache"
)

type cachedLookup[T any] struct {
	value  T
	exists bool
}

func loadLookup[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	cached, err := basecache.Load(ctx, store, key, func(ctx context.Context) (cachedLookup[T], error) {
		value, exists, err := load(ctx)
		if err != nil {
			return cachedLookup[T]{}, err
		}
		return cachedLookup[T]{value: value, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return cached.value, cached.exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	item, exists, err := loadLookup(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
	if err != nil {
		return team.Team{}, false, err
	}
	item.Players = append([]team.Player(nil), item.Players...)
	return item, exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Players = append([]team.Player(nil), item.Players...)
	}
	return out
}

// MatchRepository caches match reads. Any result update drops every cached
// match.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	items, err := basecache.Load(ctx, r.cache, "match:list", r.next.List)
	if err != nil {
		return nil, err
	}
	out := make([]match.Match, len(items))
	for i, item := range items {
		out[i] = cloneMatch(item)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	item, exists, err := loadLookup(ctx, r.cache, "match:id:"+matchID, func(ctx context.Context) (match.Match, bool, error) {
		return r.next.GetByID(ctx, matchID)
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cloneMatch(item), exists, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID string, result match.Result) error {
	if err := r.next.UpdateResult(ctx, matchID, result); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func cloneMatch(item match.Match) match.Match {
	item.GameIDs = append([]string(nil), item.GameIDs...)
	if item.CompletedAt != nil {
		at := *item.CompletedAt
		item.CompletedAt = &at
	}
	return item
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListByMatch(ctx context.Context, matchID string) ([]game.Game, error) {
	items, err := basecache.Load(ctx, r.cache, "game:list:"+matchID, func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListByMatch(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	out := make([]game.Game, len(items))
	for i, item := range items {
		out[i] = item
		out[i].PicksBans = append([]game.PickBan(nil), item.PicksBans...)
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, matchID, gameID string) (game.Game, bool, error) {
	item, exists, err := loadLookup(ctx, r.cache, gameKey("game:id:", matchID, gameID), func(ctx context.Context) (game.Game, bool, error) {
		return r.next.GetByID(ctx, matchID, gameID)
	})
	if err != nil {
		return game.Game{}, false, err
	}
	item.PicksBans = append([]game.PickBan(nil), item.PicksBans...)
	return item, exists, nil
}

func (r *GameRepository) ListPerformances(ctx context.Context, matchID, gameID string) ([]game.Performance, error) {
	items, err := basecache.Load(ctx, r.cache, gameKey("game:perf:", matchID, gameID), func(ctx context.Context) ([]game.Performance, error) {
		return r.next.ListPerformances(ctx, matchID, gameID)
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Performance(nil), items...), nil
}

// SaveBundle also drops cached matches since the match gains a game id.
func (r *GameRepository) SaveBundle(ctx context.Context, matchID string, bundle game.Bundle) error {
	if err := r.next.SaveBundle(ctx, matchID, bundle); err != nil {
		return err
	}
	r.cache.Delete(ctx, "game:list:"+matchID)
	r.cache.Delete(ctx, gameKey("game:id:", matchID, bundle.Game.ID))
	r.cache.Delete(ctx, gameKey("game:perf:", matchID, bundle.Game.ID))
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func gameKey(prefix, matchID, gameID string) string {
	return prefix + matchID + ":" + gameID
}

type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) ReplaceAll(ctx context.Context, tournament stats.TournamentStats, players []stats.PlayerStats, teams []stats.TeamStats) error {
	if err := r.next.ReplaceAll(ctx, tournament, players, teams); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "stats:")
	return nil
}

func (r *StatsRepository) GetTournament(ctx context.Context) (stats.TournamentStats, bool, error) {
	item, exists, err := loadLookup(ctx, r.cache, "stats:tournament", r.next.GetTournament)
	if err != nil {
		return stats.TournamentStats{}, false, err
	}
	item.Top3PickedHeroes = append([]stats.HeroRecord(nil), item.Top3PickedHeroes...)
	return item, exists, nil
}

func (r *StatsRepository) GetPlayer(ctx context.Context, playerID string) (stats.PlayerStats, bool, error) {
	return loadLookup(ctx, r.cache, "stats:player:"+playerID, func(ctx context.Context) (stats.PlayerStats, bool, error) {
		return r.next.GetPlayer(ctx, playerID)
	})
}

func (r *StatsRepository) GetTeam(ctx context.Context, teamID string) (stats.TeamStats, bool, error) {
	return loadLookup(ctx, r.cache, "stats:team:"+teamID, func(ctx context.Context) (stats.TeamStats, bool, error) {
		return r.next.GetTeam(ctx, teamID)
	})
}

// FantasyRepository caches only the leaderboard; lineups are always read
// through.
type FantasyRepository struct {
	next  fantasy.Repository
	cache *basecache.Store
}

func NewFantasyRepository(next fantasy.Repository, cache *basecache.Store) *FantasyRepository {
	return &FantasyRepository{next: next, cache: cache}
}

func (r *FantasyRepository) ListUserLineups(ctx context.Context) ([]fantasy.UserLineups, error) {
	return r.next.ListUserLineups(ctx)
}

func (r *FantasyRepository) SaveRecalculation(ctx context.Context, totals []fantasy.UserTotals, playerRounds []fantasy.PlayerRoundStats) error {
	return r.next.SaveRecalculation(ctx, totals, playerRounds)
}

func (r *FantasyRepository) SaveLeaderboard(ctx context.Context, board fantasy.Leaderboard) error {
	if err := r.next.SaveLeaderboard(ctx, board); err != nil {
		return err
	}
	r.cache.Delete(ctx, "fantasy:leaderboard")
	return nil
}

func (r *FantasyRepository) GetLeaderboard(ctx context.Context) (fantasy.Leaderboard, bool, error) {
	board, exists, err := loadLookup(ctx, r.cache, "fantasy:leaderboard", r.next.GetLeaderboard)
	if err != nil {
		return fantasy.Leaderboard{}, false, err
	}
	out := board
	out.Overall = append([]fantasy.LeaderboardEntry(nil), board.Overall...)
	return out, exists, nil
}
