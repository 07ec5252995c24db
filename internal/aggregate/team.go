package aggregate

import (
	"sort"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

const lateGameSeconds = 40 * 60

// buildTeams produces one document per team that played. A team with no
// games and no performances gets no document at all.
func buildTeams(v view, teams []team.Team) []stats.TeamStats {
	ordered := make([]team.Team, len(teams))
	copy(ordered, teams)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var out []stats.TeamStats
	for _, t := range ordered {
		var games []gameRow
		for _, g := range v.games {
			if g.HasTeam(t.ID) {
				games = append(games, g)
			}
		}
		var perfs []perfRow
		for _, p := range v.perfs {
			if p.TeamID == t.ID {
				perfs = append(perfs, p)
			}
		}
		if len(games) == 0 && len(perfs) == 0 {
			continue
		}
		out = append(out, v.teamStats(t, games, perfs))
	}
	return out
}

func opponentName(g game.Game, teamID string) string {
	if g.RadiantTeam.ID == teamID {
		return g.DireTeam.Name
	}
	return g.RadiantTeam.Name
}

func (v view) teamStats(t team.Team, games []gameRow, perfs []perfRow) stats.TeamStats {
	out := stats.TeamStats{
		TeamID:      t.ID,
		TeamName:    t.DisplayName(),
		GamesPlayed: len(games),
	}
	record := func(value float64) stats.TeamRecord {
		return stats.TeamRecord{Value: value, TeamID: t.ID, TeamName: out.TeamName}
	}
	gameRecord := func(g gameRow, value float64) stats.TeamRecord {
		r := record(value)
		r.MatchID = g.MatchID
		r.GameID = g.ID
		r.Opponent = opponentName(g.Game, t.ID)
		return r
	}
	bucketRecord := func(b Bucket, value float64) stats.TeamRecord {
		if g, ok := v.gameMap[b.Key]; ok {
			return gameRecord(g, value)
		}
		return record(value)
	}
	bucketKey := func(b Bucket) string { return b.Key }
	bucketSum := func(b Bucket) float64 { return b.Sum }

	var wins []gameRow
	for _, g := range games {
		if g.WinnerTeamID() == t.ID {
			wins = append(wins, g)
		}
	}
	out.Wins = len(wins)
	duration := func(g gameRow) float64 { return float64(g.Duration) }

	out.ShortestGameWon = record(stats.NoWinDuration)
	if g, _, ok := MinBy(wins, gameRowID, duration); ok {
		out.ShortestGameWon = gameRecord(g, round0(g.DurationMinutes()))
	}
	out.LongestGameWon = record(0)
	if g, _, ok := MaxBy(wins, gameRowID, duration); ok {
		out.LongestGameWon = gameRecord(g, round0(g.DurationMinutes()))
	}

	totalSeconds := 0
	for _, g := range games {
		totalSeconds += g.Duration
	}
	out.AverageMatchDuration = record(0)
	if len(games) > 0 {
		out.AverageMatchDuration = record(round0(float64(totalSeconds) / float64(len(games)) / 60))
	}

	kills := GroupSum(perfs, perfRow.gameKey, func(p perfRow) float64 { return float64(p.Kills) })
	assists := GroupSum(perfs, perfRow.gameKey, func(p perfRow) float64 { return float64(p.Assists) })
	out.AverageKills = record(round1(bucketAverage(kills)))
	out.AverageAssists = record(round1(bucketAverage(assists)))
	out.OverallAssistsPerKill = record(round2(RatioOfSums(perfs,
		func(p perfRow) float64 { return float64(p.Assists) },
		func(p perfRow) float64 { return float64(p.Kills) },
	)))

	firstBloods := 0
	buybacks := 0
	for _, p := range perfs {
		if p.FirstBloodClaimed {
			firstBloods++
		}
		buybacks += p.BuybackCount
	}
	out.MostFirstBloods = record(float64(firstBloods))
	out.MostBuybacksUsed = record(float64(buybacks))

	out.MostKillsSingleGame = record(0)
	if b, value, ok := MaxBy(kills, bucketKey, bucketSum); ok {
		out.MostKillsSingleGame = bucketRecord(b, value)
	}
	out.FewestKillsSingleGame = record(0)
	if b, value, ok := MinBy(kills, bucketKey, bucketSum); ok {
		out.FewestKillsSingleGame = bucketRecord(b, value)
	}

	won := make(map[string]bool, len(wins))
	for _, g := range wins {
		won[g.ID] = true
	}
	var winKills []Bucket
	for _, b := range kills {
		if won[b.Key] {
			winKills = append(winKills, b)
		}
	}
	out.FewestKillsPerWin = record(0)
	if b, _, ok := MinBy(winKills, bucketKey, bucketSum); ok {
		out.FewestKillsPerWin = bucketRecord(b, round1(bucketAverage(winKills)))
	}

	towerDamage := GroupSum(perfs, perfRow.gameKey, func(p perfRow) float64 { return float64(p.TowerDamage) })
	out.HighestTowerDamage = record(0)
	if b, value, ok := MaxBy(towerDamage, bucketKey, bucketSum); ok {
		out.HighestTowerDamage = bucketRecord(b, value)
	}
	var towerRates []Bucket
	for _, b := range towerDamage {
		if g, ok := v.gameMap[b.Key]; ok {
			towerRates = append(towerRates, Bucket{Key: b.Key, Sum: perMinute(b.Sum, g.Duration), Count: b.Count})
		}
	}
	out.HighestTowerDamagePerMinute = record(0)
	if b, value, ok := MaxBy(towerRates, bucketKey, bucketSum); ok {
		out.HighestTowerDamagePerMinute = bucketRecord(b, round1(value))
	}

	out.MostDominantVictory = v.mostDominantVictory(t.ID, wins, record, gameRecord)
	out.TeamVersatility = record(float64(DistinctCount(heroesOf(perfs), func(id int) int { return id })))

	var claimed []gameRow
	for _, g := range games {
		if g.FirstBloodTime <= 0 {
			continue
		}
		for _, p := range v.byGame[g.ID] {
			if p.TeamID == t.ID && p.FirstBloodClaimed {
				claimed = append(claimed, g)
				break
			}
		}
	}
	out.FastestFirstBlood = record(stats.NoWinDuration)
	if g, value, ok := MinBy(claimed, gameRowID, func(g gameRow) float64 { return float64(g.FirstBloodTime) }); ok {
		out.FastestFirstBlood = gameRecord(g, value)
	}

	out.HighestAverageTeamNetWorth = record(0)
	if len(perfs) > 0 {
		out.HighestAverageTeamNetWorth = record(round0(sumInt(perfs, func(p perfRow) int { return p.NetWorth }) / float64(len(perfs))))
	}

	out.BestLateGameTeam = record(0)
	lateGames, lateWins := 0, 0
	for _, g := range games {
		if g.Duration > lateGameSeconds {
			lateGames++
			if g.WinnerTeamID() == t.ID {
				lateWins++
			}
		}
	}
	if lateGames > 0 {
		out.BestLateGameTeam = record(round1(float64(lateWins) / float64(lateGames) * 100))
	}

	wards := GroupSum(perfs, perfRow.gameKey, func(p perfRow) float64 { return float64(p.WardsPlaced()) })
	out.MostWardsPerGame = record(round1(bucketAverage(wards)))
	return out
}

// mostDominantVictory is the largest kill differential in a won game.
func (v view) mostDominantVictory(
	teamID string,
	wins []gameRow,
	record func(float64) stats.TeamRecord,
	gameRecord func(gameRow, float64) stats.TeamRecord,
) stats.TeamRecord {
	type margin struct {
		g     gameRow
		value float64
	}
	var margins []margin
	for _, g := range wins {
		ours, theirs := 0, 0
		for _, p := range v.byGame[g.ID] {
			if p.TeamID == teamID {
				ours += p.Kills
			} else {
				theirs += p.Kills
			}
		}
		margins = append(margins, margin{g: g, value: float64(ours - theirs)})
	}
	best, value, ok := MaxBy(margins, func(m margin) string { return m.g.ID }, func(m margin) float64 { return m.value })
	if !ok {
		return record(0)
	}
	return gameRecord(best.g, value)
}

func bucketAverage(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range buckets {
		total += b.Sum
	}
	return total / float64(len(buckets))
}

func heroesOf(perfs []perfRow) []int {
	out := make([]int, 0, len(perfs))
	for _, p := range perfs {
		if p.HeroID > 0 {
			out = append(out, p.HeroID)
		}
	}
	return out
}
