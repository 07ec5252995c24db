package firestore

import (
	"sort"
	"strings"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

type lineupUserDoc struct {
	DisplayName     string `firestore:"displayName"`
	DiscordUsername string `firestore:"discordUsername"`
}

type lineupPlayerDoc struct {
	ID       string `firestore:"id"`
	Nickname string `firestore:"nickname"`
}

type roundLineupDoc struct {
	RoundID string                     `firestore:"roundId"`
	Lineup  map[string]lineupPlayerDoc `firestore:"lineup"`
}

func displayNameFromDoc(doc lineupUserDoc) string {
	if name := strings.TrimSpace(doc.DiscordUsername); name != "" {
		return name
	}
	if name := strings.TrimSpace(doc.DisplayName); name != "" {
		return name
	}
	return "Anonymous"
}

// roundLineupFromDoc drops roles it does not know and slots without a player.
func roundLineupFromDoc(docID string, doc roundLineupDoc) fantasy.RoundLineup {
	roundID := strings.TrimSpace(doc.RoundID)
	if roundID == "" {
		roundID = docID
	}
	out := fantasy.RoundLineup{
		RoundID: fantasy.RoundID(roundID),
		Lineup:  make(map[team.Role]fantasy.LineupPlayer, len(doc.Lineup)),
	}
	for key, p := range doc.Lineup {
		role, ok := team.ParseRole(key)
		if !ok || strings.TrimSpace(p.ID) == "" {
			continue
		}
		out.Lineup[role] = fantasy.LineupPlayer{ID: p.ID, Nickname: p.Nickname}
	}
	return out
}

type lineupBreakdownDoc struct {
	PlayerID       string  `firestore:"playerId"`
	PlayerNickname string  `firestore:"playerNickname"`
	Role           string  `firestore:"role"`
	PlayerPoints   float64 `firestore:"playerPoints"`
	PlayerGames    int     `firestore:"playerGames"`
}

type userRoundScoreDoc struct {
	UserID           string               `firestore:"userId"`
	RoundID          string               `firestore:"roundId"`
	TotalPoints      float64              `firestore:"totalPoints"`
	TotalPlayerGames int                  `firestore:"totalPlayerGames"`
	AverageScore     float64              `firestore:"averageScore"`
	LineupBreakdown  []lineupBreakdownDoc `firestore:"lineupBreakdown"`
}

// userTotalsUpdate is merged onto fantasyLineups/{userId}; the lineup rounds
// subcollection is left alone.
func userTotalsUpdate(totals fantasy.UserTotals) map[string]any {
	rounds := make(map[string]userRoundScoreDoc, len(totals.RoundScores))
	for roundID, score := range totals.RoundScores {
		breakdown := make([]lineupBreakdownDoc, 0, len(score.Breakdown))
		for _, b := range score.Breakdown {
			breakdown = append(breakdown, lineupBreakdownDoc{
				PlayerID:       b.PlayerID,
				PlayerNickname: b.PlayerNickname,
				Role:           string(b.Role),
				PlayerPoints:   b.Points,
				PlayerGames:    b.Games,
			})
		}
		rounds[string(roundID)] = userRoundScoreDoc{
			UserID:           totals.UserID,
			RoundID:          string(roundID),
			TotalPoints:      score.TotalPoints,
			TotalPlayerGames: score.PlayerGames,
			AverageScore:     score.Average,
			LineupBreakdown:  breakdown,
		}
	}
	return map[string]any{
		"totalFantasyScore":   totals.TotalFantasyScore,
		"gamesPlayed":         totals.GamesPlayed,
		"averageFantasyScore": totals.AverageFantasyScore,
		"roundScores":         rounds,
		"lastRecalculatedAt":  totals.LastRecalculatedAt.UTC(),
	}
}

type gamePointsDoc struct {
	MatchID       string  `firestore:"matchId"`
	GameID        string  `firestore:"gameId"`
	FantasyPoints float64 `firestore:"fantasyPoints"`
}

type playerRoundStatsDoc struct {
	PlayerID            string          `firestore:"playerId"`
	RoundID             string          `firestore:"roundId"`
	TotalFantasyPoints  float64         `firestore:"totalFantasyPoints"`
	GamesPlayed         int             `firestore:"gamesPlayed"`
	AverageFantasyScore float64         `firestore:"averageFantasyScore"`
	GameBreakdown       []gamePointsDoc `firestore:"gameBreakdown"`
}

func playerRoundStatsID(playerID string, roundID fantasy.RoundID) string {
	return playerID + "_" + string(roundID)
}

func playerRoundStatsToDoc(item fantasy.PlayerRoundStats) playerRoundStatsDoc {
	games := make([]gamePointsDoc, 0, len(item.Games))
	for _, g := range item.Games {
		games = append(games, gamePointsDoc{MatchID: g.MatchID, GameID: g.GameID, FantasyPoints: g.Points})
	}
	return playerRoundStatsDoc{
		PlayerID:            item.PlayerID,
		RoundID:             string(item.RoundID),
		TotalFantasyPoints:  item.TotalPoints,
		GamesPlayed:         item.GamesPlayed,
		AverageFantasyScore: item.Average,
		GameBreakdown:       games,
	}
}

type leaderboardEntryDoc struct {
	Rank         int     `firestore:"rank"`
	UserID       string  `firestore:"userId"`
	DisplayName  string  `firestore:"displayName"`
	TotalScore   float64 `firestore:"totalScore"`
	PlayerGames  int     `firestore:"gamesPlayed"`
	AverageScore float64 `firestore:"averageScore"`
}

type playerLeaderboardEntryDoc struct {
	Rank         int     `firestore:"rank"`
	PlayerID     string  `firestore:"playerId"`
	Nickname     string  `firestore:"nickname"`
	TeamName     string  `firestore:"teamName"`
	AverageScore float64 `firestore:"averageScore"`
	TotalPoints  float64 `firestore:"totalPoints"`
	TotalGames   int     `firestore:"totalGames"`
}

type leaderboardDoc struct {
	Overall     []leaderboardEntryDoc                  `firestore:"overall"`
	ByRole      map[string][]playerLeaderboardEntryDoc `firestore:"byRole"`
	GeneratedAt time.Time                              `firestore:"lastUpdated"`
}

func leaderboardToDoc(board fantasy.Leaderboard) leaderboardDoc {
	doc := leaderboardDoc{
		Overall:     make([]leaderboardEntryDoc, 0, len(board.Overall)),
		ByRole:      make(map[string][]playerLeaderboardEntryDoc, len(board.ByRole)),
		GeneratedAt: board.GeneratedAt.UTC(),
	}
	for _, e := range board.Overall {
		doc.Overall = append(doc.Overall, leaderboardEntryDoc(e))
	}
	for role, rows := range board.ByRole {
		out := make([]playerLeaderboardEntryDoc, 0, len(rows))
		for _, e := range rows {
			out = append(out, playerLeaderboardEntryDoc(e))
		}
		doc.ByRole[string(role)] = out
	}
	return doc
}

func leaderboardFromDoc(doc leaderboardDoc) fantasy.Leaderboard {
	board := fantasy.Leaderboard{
		Overall:     make([]fantasy.LeaderboardEntry, 0, len(doc.Overall)),
		ByRole:      make(map[team.Role][]fantasy.PlayerLeaderboardEntry, len(doc.ByRole)),
		GeneratedAt: doc.GeneratedAt,
	}
	for _, e := range doc.Overall {
		board.Overall = append(board.Overall, fantasy.LeaderboardEntry(e))
	}
	sort.SliceStable(board.Overall, func(i, j int) bool { return board.Overall[i].Rank < board.Overall[j].Rank })
	for key, rows := range doc.ByRole {
		role, ok := team.ParseRole(key)
		if !ok {
			continue
		}
		out := make([]fantasy.PlayerLeaderboardEntry, 0, len(rows))
		for _, e := range rows {
			out = append(out, fantasy.PlayerLeaderboardEntry(e))
		}
		board.ByRole[role] = out
	}
	return board
}
