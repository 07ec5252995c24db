package pickem

import "context"

type Repository interface {
	ListPickems(ctx context.Context) ([]Pickem, error)
	ListUserProfiles(ctx context.Context) ([]UserProfile, error)
	// SavePickem replaces the user's predictions.
	SavePickem(ctx context.Context, item Pickem) error
}
