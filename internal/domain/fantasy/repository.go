package fantasy

import "context"

// Repository describes fantasy persistence needs from use cases.
type Repository interface {
	ListUserLineups(ctx context.Context) ([]UserLineups, error)
	// SaveRecalculation writes user totals, round scores and player round
	// stats. Large result sets may be split across several batches.
	SaveRecalculation(ctx context.Context, totals []UserTotals, playerRounds []PlayerRoundStats) error
	SaveLeaderboard(ctx context.Context, board Leaderboard) error
	GetLeaderboard(ctx context.Context) (Leaderboard, bool, error)
}
