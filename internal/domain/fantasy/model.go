package fantasy

import (
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

type LineupPlayer struct {
	ID       string
	Nickname string
}

// RoundLineup is the role to player selection a user saved for one round.
type RoundLineup struct {
	RoundID RoundID
	Lineup  map[team.Role]LineupPlayer
}

// UserLineups is a fantasy user together with every round they saved.
type UserLineups struct {
	UserID      string
	DisplayName string
	Rounds      []RoundLineup
}

type LineupBreakdown struct {
	PlayerID       string
	PlayerNickname string
	Role           team.Role
	Points         float64
	Games          int
}

type UserRoundScore struct {
	UserID      string
	RoundID     RoundID
	TotalPoints float64
	PlayerGames int
	Average     float64
	Breakdown   []LineupBreakdown
}

// UserTotals is the recomputed score written back onto fantasyLineups/{userId}.
type UserTotals struct {
	UserID              string
	DisplayName         string
	TotalFantasyScore   float64
	GamesPlayed         int
	AverageFantasyScore float64
	RoundScores         map[RoundID]UserRoundScore
	LastRecalculatedAt  time.Time
}

type GamePoints struct {
	MatchID string
	GameID  string
	Points  float64
}

// PlayerRoundStats is one player's points across every game of one round.
type PlayerRoundStats struct {
	PlayerID    string
	RoundID     RoundID
	TotalPoints float64
	GamesPlayed int
	Average     float64
	Games       []GamePoints
}

type LeaderboardEntry struct {
	Rank         int
	UserID       string
	DisplayName  string
	TotalScore   float64
	PlayerGames  int
	AverageScore float64
}

type PlayerLeaderboardEntry struct {
	Rank         int
	PlayerID     string
	Nickname     string
	TeamName     string
	AverageScore float64
	TotalPoints  float64
	TotalGames   int
}

type Leaderboard struct {
	Overall     []LeaderboardEntry
	ByRole      map[team.Role][]PlayerLeaderboardEntry
	GeneratedAt time.Time
}
