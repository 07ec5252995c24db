package aggregate

import (
	"strconv"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/hero"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

const (
	minGamesForHeroWinRate = 3
	topHeroes              = 3
)

func buildTournament(v view, totalTeams int) stats.TournamentStats {
	out := stats.TournamentStats{
		TotalTeams:   totalTeams,
		TotalMatches: len(v.matches),
		TotalGames:   len(v.games),
	}

	buildDurations(v, &out)
	buildCombat(v, &out)
	buildHeroes(v, &out)
	buildEconomy(v, &out)
	buildVision(v, &out)
	return out
}

func gameRowID(g gameRow) string { return g.ID }

func buildDurations(v view, out *stats.TournamentStats) {
	if len(v.games) == 0 {
		return
	}
	totalSeconds := 0
	for _, g := range v.games {
		totalSeconds += g.Duration
	}
	out.TotalHoursPlayed = round1(float64(totalSeconds) / 3600)
	out.AverageMatchDuration = round0(float64(totalSeconds) / float64(len(v.games)) / 60)

	duration := func(g gameRow) float64 { return float64(g.Duration) }
	if g, _, ok := MaxBy(v.games, gameRowID, duration); ok {
		out.LongestMatch = gameRecord(g, round0(g.DurationMinutes()))
	}
	if g, _, ok := MinBy(v.games, gameRowID, duration); ok {
		out.ShortestMatch = gameRecord(g, round0(g.DurationMinutes()))
	}

	days := TopNByFrequency(v.games, func(g gameRow) string {
		if g.StartTime <= 0 {
			return ""
		}
		return time.Unix(g.StartTime, 0).UTC().Format(time.DateOnly)
	}, 1)
	if len(days) == 1 {
		out.TotalMatchesInSingleDay = stats.DayRecord{Date: days[0].Key, Count: days[0].Count}
	}
}

func gameRecord(g gameRow, value float64) stats.GameRecord {
	return stats.GameRecord{Value: value, MatchID: g.MatchID, GameID: g.ID, TeamA: g.TeamA, TeamB: g.TeamB}
}

func buildCombat(v view, out *stats.TournamentStats) {
	for _, p := range v.perfs {
		out.TotalKills += p.Kills
		out.TotalDeaths += p.Deaths
		out.TotalAssists += p.Assists
		out.TotalRampages += p.Rampages
		out.TotalUltraKills += p.UltraKills
		out.TotalTripleKills += p.TripleKills
		if p.FirstBloodClaimed {
			out.TotalFirstBloods++
		}
	}

	kills := GroupSum(v.perfs, perfRow.gameKey, func(p perfRow) float64 { return float64(p.Kills) })
	bucketKey := func(b Bucket) string { return b.Key }
	bucketSum := func(b Bucket) float64 { return b.Sum }
	if b, value, ok := MaxBy(kills, bucketKey, bucketSum); ok {
		out.BloodiestMatch = gameRecord(v.gameMap[b.Key], value)
	}
	if b, value, ok := MinBy(kills, bucketKey, bucketSum); ok {
		out.MostPeacefulMatch = gameRecord(v.gameMap[b.Key], value)
	}

	var withFirstBlood []gameRow
	for _, g := range v.games {
		if g.FirstBloodTime > 0 {
			withFirstBlood = append(withFirstBlood, g)
		}
	}
	if g, _, ok := MinBy(withFirstBlood, gameRowID, func(g gameRow) float64 { return float64(g.FirstBloodTime) }); ok {
		record := stats.FirstBloodRecord{
			Minutes:    round2(float64(g.FirstBloodTime) / 60),
			MatchID:    g.MatchID,
			GameID:     g.ID,
			PlayerName: "Unknown",
			TeamName:   "Unknown",
		}
		for _, p := range v.byGame[g.ID] {
			if p.FirstBloodClaimed {
				record.PlayerID = p.PlayerID
				record.PlayerName = v.playerLabel(p.Performance)
				if p.TeamID != "" {
					record.TeamName = v.index.TeamName(p.TeamID)
				}
				break
			}
		}
		out.FastestFirstBlood = record
	}
}

type heroTally struct {
	id    int
	picks int
	wins  int
}

func buildHeroes(v view, out *stats.TournamentStats) {
	picked := make([]perfRow, 0, len(v.perfs))
	for _, p := range v.perfs {
		if p.HeroID > 0 {
			picked = append(picked, p)
		}
	}
	heroName := func(p perfRow) string { return hero.Name(p.HeroID) }
	ids := make(map[string]int)
	for _, p := range picked {
		ids[hero.Name(p.HeroID)] = p.HeroID
	}

	top := TopNByFrequency(picked, heroName, topHeroes)
	for _, f := range top {
		out.Top3PickedHeroes = append(out.Top3PickedHeroes, stats.HeroRecord{HeroID: ids[f.Key], HeroName: f.Key, Count: f.Count})
	}
	if len(out.Top3PickedHeroes) > 0 {
		out.MostPickedHero = out.Top3PickedHeroes[0]
	} else {
		out.MostPickedHero = stats.HeroRecord{HeroName: "Unknown"}
	}
	out.TotalUniqueHeroesPicked = DistinctCount(picked, func(p perfRow) int { return p.HeroID })

	tallies := make(map[int]*heroTally)
	for _, p := range picked {
		t, ok := tallies[p.HeroID]
		if !ok {
			t = &heroTally{id: p.HeroID}
			tallies[p.HeroID] = t
		}
		t.picks++
		if p.Win {
			t.wins++
		}
	}
	out.HighestWinRateHero = highestWinRate(tallies, minGamesForHeroWinRate)
	if out.HighestWinRateHero.GamesPlayed == 0 {
		out.HighestWinRateHero = highestWinRate(tallies, 1)
	}

	type ban struct{ heroID int }
	var bans []ban
	for _, g := range v.games {
		for _, pb := range g.PicksBans {
			if !pb.IsPick && pb.HeroID > 0 {
				bans = append(bans, ban{heroID: pb.HeroID})
			}
		}
	}
	banned := TopNByFrequency(bans, func(b ban) string { return strconv.Itoa(b.heroID) }, 1)
	out.MostBannedHero = stats.HeroRecord{HeroName: "Unknown"}
	if len(banned) == 1 {
		id, _ := strconv.Atoi(banned[0].Key)
		out.MostBannedHero = stats.HeroRecord{HeroID: id, HeroName: hero.Name(id), Count: banned[0].Count}
	}

	// Players without a roster role are stand-ins and are left out.
	var roleHeroes []string
	for _, p := range picked {
		pl, ok := v.index.Players[p.PlayerID]
		if !ok || pl.Role == "" {
			continue
		}
		roleHeroes = append(roleHeroes, string(pl.Role)+" "+hero.Name(p.HeroID))
	}
	out.MostPlayedRoleHero = "No Data"
	if top := TopNByFrequency(roleHeroes, func(s string) string { return s }, 1); len(top) == 1 {
		out.MostPlayedRoleHero = top[0].Key
	}

	versatile := perPlayer(v.perfs, func(rows []perfRow) float64 {
		return float64(DistinctCount(rows, func(p perfRow) int { return p.HeroID }))
	})
	out.MostVersatilePlayer = v.bestPlayer(versatile)
}

func highestWinRate(tallies map[int]*heroTally, minGames int) stats.HeroRecord {
	var eligible []*heroTally
	for _, t := range tallies {
		if t.picks >= minGames {
			eligible = append(eligible, t)
		}
	}
	t, rate, ok := MaxBy(eligible,
		func(t *heroTally) string { return strconv.Itoa(t.id) },
		func(t *heroTally) float64 { return float64(t.wins) / float64(t.picks) },
	)
	if !ok {
		return stats.HeroRecord{HeroName: "Unknown"}
	}
	return stats.HeroRecord{HeroID: t.id, HeroName: hero.Name(t.id), Count: t.picks, GamesPlayed: t.picks, WinRate: round2(rate)}
}

func buildEconomy(v view, out *stats.TournamentStats) {
	for _, p := range v.perfs {
		out.TotalGoldGenerated += int64(round0(float64(p.GPM) * float64(p.Duration) / 60))
		out.TotalGoldSpent += int64(p.GoldSpent)
		out.TotalCampsStacked += p.CampsStacked
		out.TotalRunesCollected += p.RunesPickedUp
		out.TotalRoshanKills += p.RoshanKills
		out.TotalHealing += int64(p.HeroHealing)
		out.TotalBuybacks += p.BuybackCount
		out.TotalCreepsKilled += p.LastHits
		out.TotalDenies += p.Denies
		out.TotalFantasyPoints += p.FantasyPoints
	}
	out.TotalFantasyPoints = round2(out.TotalFantasyPoints)

	if p, value, ok := MaxBy(v.perfs, perfRow.key, func(p perfRow) float64 { return float64(p.NetWorth) }); ok {
		out.RichestPlayer = v.playerRecord(p, value)
	}

	farmers := perPlayer(v.perfs, func(rows []perfRow) float64 {
		return averageOfPositive(rows, func(p perfRow) int { return p.GPM })
	})
	out.MostEfficientFarmer = v.bestPlayer(farmers)
	out.MostEfficientFarmer.Value = round0(out.MostEfficientFarmer.Value)

	scalers := perPlayer(v.perfs, func(rows []perfRow) float64 {
		return averageOfPositive(rows, func(p perfRow) int { return p.XPM })
	})
	out.FastestScalingPlayer = v.bestPlayer(scalers)
	out.FastestScalingPlayer.Value = round0(out.FastestScalingPlayer.Value)
}

func buildVision(v view, out *stats.TournamentStats) {
	for _, p := range v.perfs {
		out.TotalObserverWardsPlaced += p.ObsPlaced
		out.TotalSentryWardsPlaced += p.SenPlaced
	}
	out.TournamentWardMaster = v.bestPlayer(perPlayer(v.perfs, func(rows []perfRow) float64 {
		return sumInt(rows, func(p perfRow) int { return p.WardsPlaced() })
	}))
	out.BestWardHunter = v.bestPlayer(perPlayer(v.perfs, func(rows []perfRow) float64 {
		return sumInt(rows, func(p perfRow) int { return p.WardsKilled() })
	}))
}

// playerTotal is one player's value for a tournament-wide player ranking.
type playerTotal struct {
	playerID string
	sample   game.Performance
	value    float64
}

// perPlayer evaluates fn over each player's rows, in player id order.
func perPlayer(rows []perfRow, fn func([]perfRow) float64) []playerTotal {
	buckets := groupByPlayer(rows)
	out := make([]playerTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, playerTotal{playerID: b.id, sample: b.rows[0].Performance, value: fn(b.rows)})
	}
	return out
}

func (v view) bestPlayer(totals []playerTotal) stats.PlayerRecord {
	t, value, ok := MaxBy(totals,
		func(t playerTotal) string { return t.playerID },
		func(t playerTotal) float64 { return t.value },
	)
	if !ok {
		return stats.PlayerRecord{PlayerName: "Unknown"}
	}
	return stats.PlayerRecord{Value: value, PlayerID: t.playerID, PlayerName: v.playerLabel(t.sample)}
}

func (v view) playerRecord(p perfRow, value float64) stats.PlayerRecord {
	return stats.PlayerRecord{
		Value:      value,
		MatchID:    p.MatchID,
		GameID:     p.GameID,
		HeroName:   hero.Name(p.HeroID),
		PlayerID:   p.PlayerID,
		PlayerName: v.playerLabel(p.Performance),
	}
}

func sumInt(rows []perfRow, field func(perfRow) int) float64 {
	total := 0
	for _, r := range rows {
		total += field(r)
	}
	return float64(total)
}

func averageOfPositive(rows []perfRow, field func(perfRow) int) float64 {
	total, n := 0, 0
	for _, r := range rows {
		if value := field(r); value > 0 {
			total += value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
