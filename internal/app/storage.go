package app

import (
	"context"
	"fmt"

	"github.com/Cienszki/automatic-tournament-sub000/internal/config"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
	cacherepo "github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/cache"
	firestorerepo "github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/firestore"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	basecache "github.com/Cienszki/automatic-tournament-sub000/internal/platform/cache"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

type repositories struct {
	teams   team.Repository
	matches match.Repository
	games   game.Repository
	groups  match.GroupRepository
	stats   stats.Repository
	fantasy fantasy.Repository
	pickems pickem.Repository
	close   func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)
	switch cfg.StorageBackend {
	case config.StorageMemory:
		repos, err = newMemoryRepositories(cfg.MemoryFixturePath)
	case config.StorageFirestore:
		repos, err = newFirestoreRepositories(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return repositories{}, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.games = cacherepo.NewGameRepository(repos.games, store)
		repos.stats = cacherepo.NewStatsRepository(repos.stats, store)
		repos.fantasy = cacherepo.NewFantasyRepository(repos.fantasy, store)
	}

	logger.Info("storage ready",
		"backend", cfg.StorageBackend,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)
	return repos, nil
}

func newMemoryRepositories(fixturePath string) (repositories, error) {
	seed, err := memory.LoadFixture(fixturePath)
	if err != nil {
		return repositories{}, err
	}

	matches := memory.NewMatchRepository(seed.Matches)
	return repositories{
		teams:   memory.NewTeamRepository(seed.Teams),
		matches: matches,
		games:   memory.NewGameRepository(matches),
		groups:  memory.NewGroupRepository(seed.Groups),
		stats:   memory.NewStatsRepository(),
		fantasy: memory.NewFantasyRepository(seed.Lineups),
		pickems: memory.NewPickemRepository(nil, nil),
		close:   func() error { return nil },
	}, nil
}

func newFirestoreRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	client, err := firestorerepo.NewClient(ctx, firestorerepo.Config{
		ProjectID:       cfg.FirestoreProjectID,
		CredentialsFile: cfg.FirestoreCredentialsFile,
	})
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		teams:   firestorerepo.NewTeamRepository(client),
		matches: firestorerepo.NewMatchRepository(client),
		games:   firestorerepo.NewGameRepository(client),
		groups:  firestorerepo.NewGroupRepository(client),
		stats:   firestorerepo.NewStatsRepository(client),
		fantasy: firestorerepo.NewFantasyRepository(client),
		pickems: firestorerepo.NewPickemRepository(client),
		close:   client.Close,
	}, nil
}
