package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	UpdateResult(ctx context.Context, matchID string, result Result) error
}

// GroupRepository stores group tables. ReplaceStandings writes every group
// in one batch.
type GroupRepository interface {
	List(ctx context.Context) ([]Group, error)
	ReplaceStandings(ctx context.Context, groups []Group) error
}
