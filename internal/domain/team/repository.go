package team

import "context"

// Repository describes team persistence needs from use cases. Rosters are
// loaded together with the team.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	// Create stores a new team with its roster.
	Create(ctx context.Context, item Team) error
}
