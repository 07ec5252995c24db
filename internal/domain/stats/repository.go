package stats

import "context"

// Repository stores the derived statistics documents. They are never a
// source of truth and are always replaced wholesale.
type Repository interface {
	ReplaceAll(ctx context.Context, tournament TournamentStats, players []PlayerStats, teams []TeamStats) error
	GetTournament(ctx context.Context) (TournamentStats, bool, error)
	GetPlayer(ctx context.Context, playerID string) (PlayerStats, bool, error)
	GetTeam(ctx context.Context, teamID string) (TeamStats, bool, error)
}
