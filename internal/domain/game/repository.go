package game

import "context"

// Repository stores games and performances under their parent match.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Game, error)
	GetByID(ctx context.Context, matchID, gameID string) (Game, bool, error)
	ListPerformances(ctx context.Context, matchID, gameID string) ([]Performance, error)
	// SaveBundle appends the game id to the match, writes the game and
	// replaces every performance under it in a single batch.
	SaveBundle(ctx context.Context, matchID string, bundle Bundle) error
}
