package aggregate

import (
	"sort"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

const godlikeStreak = 10

type playerRows struct {
	id   string
	rows []perfRow
}

func groupByPlayer(rows []perfRow) []playerRows {
	index := make(map[string]int)
	var out []playerRows
	for _, r := range rows {
		if r.PlayerID == "" {
			continue
		}
		i, ok := index[r.PlayerID]
		if !ok {
			i = len(out)
			index[r.PlayerID] = i
			out = append(out, playerRows{id: r.PlayerID})
		}
		out[i].rows = append(out[i].rows, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// buildPlayers produces one document per player with at least one
// performance, stand-ins included. A stand-in is named by its account.
func buildPlayers(v view) []stats.PlayerStats {
	groups := groupByPlayer(v.perfs)
	out := make([]stats.PlayerStats, 0, len(groups))
	for _, pr := range groups {
		out = append(out, v.playerStats(pr))
	}
	return out
}

func (v view) playerStats(pr playerRows) stats.PlayerStats {
	rows := pr.rows
	first := rows[0]
	teamID := first.TeamID
	if pl, ok := v.index.Players[pr.id]; ok && pl.TeamID != "" {
		teamID = pl.TeamID
	}

	out := stats.PlayerStats{
		PlayerID:    pr.id,
		PlayerName:  v.playerLabel(first.Performance),
		TeamID:      teamID,
		TeamName:    v.index.TeamName(teamID),
		GamesPlayed: len(rows),
	}

	record := func(value func(perfRow) float64, round func(float64) float64) stats.PlayerRecord {
		p, best, ok := MaxBy(rows, perfRow.gameKey, value)
		if !ok {
			return stats.PlayerRecord{PlayerID: pr.id, PlayerName: out.PlayerName}
		}
		return v.playerRecord(p, round(best))
	}
	field := func(f func(perfRow) int) func(perfRow) float64 {
		return func(p perfRow) float64 { return float64(f(p)) }
	}
	exact := func(x float64) float64 { return x }

	out.MostKillsSingleMatch = record(field(func(p perfRow) int { return p.Kills }), exact)
	out.HighestKDASingleMatch = record(func(p perfRow) float64 { return p.KDA() }, round2)
	out.LongestKillStreak = record(field(func(p perfRow) int { return p.HighestKillStreak }), exact)
	out.MostHeroDamageSingleMatch = record(field(func(p perfRow) int { return p.HeroDamage }), exact)
	out.HighestGPMSingleMatch = record(field(func(p perfRow) int { return p.GPM }), exact)
	out.HighestXPMSingleMatch = record(field(func(p perfRow) int { return p.XPM }), exact)
	out.MostAssistsSingleGame = record(field(func(p perfRow) int { return p.Assists }), exact)
	out.HighestLastHitsSingleGame = record(field(func(p perfRow) int { return p.LastHits }), exact)
	out.HighestNetWorthSingleGame = record(field(func(p perfRow) int { return p.NetWorth }), exact)
	out.BestCSPerMinute = record(func(p perfRow) float64 { return perMinute(float64(p.LastHits), p.Duration) }, round1)
	out.MostDenies = record(field(func(p perfRow) int { return p.Denies }), exact)
	out.MostGoldEarned = record(func(p perfRow) float64 { return float64(p.GPM) * float64(p.Duration) / 60 }, round0)
	out.MostObserverWards = record(field(func(p perfRow) int { return p.ObsPlaced }), exact)
	out.MostWardsKilled = record(field(func(p perfRow) int { return p.WardsKilled() }), exact)
	out.MostWardsPlaced = record(field(func(p perfRow) int { return p.WardsPlaced() }), exact)
	out.MostHealingDone = record(field(func(p perfRow) int { return p.HeroHealing }), exact)
	out.BestFantasyScore = record(func(p perfRow) float64 { return p.FantasyPoints }, round2)
	out.MostTripleKills = record(field(func(p perfRow) int { return p.TripleKills }), exact)
	out.MostUltraKills = record(field(func(p perfRow) int { return p.UltraKills }), exact)
	out.HighestDamagePerMinute = record(func(p perfRow) float64 { return perMinute(float64(p.HeroDamage), p.Duration) }, round0)
	out.MostTowerDamage = record(field(func(p perfRow) int { return p.TowerDamage }), exact)
	out.HighestNetWorthLead = v.netWorthLead(pr.id, rows, out.PlayerName)

	summary := func(value float64) stats.PlayerRecord {
		return stats.PlayerRecord{Value: value, PlayerID: pr.id, PlayerName: out.PlayerName}
	}
	games := float64(len(rows))
	godlike, firstBloods, zeroDeaths := 0, 0, 0
	kills, deaths, assists := 0, 0, 0
	fantasy := 0.0
	heroGames := make(map[int]int)
	for _, p := range rows {
		if p.HighestKillStreak >= godlikeStreak {
			godlike++
		}
		if p.FirstBloodClaimed {
			firstBloods++
		}
		if p.Deaths == 0 {
			zeroDeaths++
		}
		kills += p.Kills
		deaths += p.Deaths
		assists += p.Assists
		fantasy += p.FantasyPoints
		heroGames[p.HeroID]++
	}
	spam := 0
	for _, n := range heroGames {
		spam = max(spam, n)
	}

	out.MostGodlikeStreaks = summary(float64(godlike))
	out.BestKDAAverage = summary(round2(float64(kills+assists) / float64(max(1, deaths))))
	out.HighestAverageKills = summary(round1(float64(kills) / games))
	out.MostFirstBloods = summary(float64(firstBloods))
	out.GamesWithZeroDeaths = summary(float64(zeroDeaths))
	out.UniqueHeroesPlayed = summary(float64(len(heroGames)))
	out.VersatilityScore = summary(round1(float64(len(heroGames)) / games * 100))
	out.HeroSpamScore = summary(round1(float64(spam) / games * 100))
	out.TotalFantasyPoints = summary(round2(fantasy))
	return out
}

// netWorthLead is the player's best net worth lead over the average of the
// opposing players in the same game.
func (v view) netWorthLead(playerID string, rows []perfRow, name string) stats.PlayerRecord {
	type lead struct {
		row   perfRow
		value float64
	}
	var leads []lead
	for _, r := range rows {
		total, n := 0, 0
		for _, other := range v.byGame[r.GameID] {
			if other.TeamID != r.TeamID && other.PlayerID != playerID {
				total += other.NetWorth
				n++
			}
		}
		if n == 0 {
			continue
		}
		leads = append(leads, lead{row: r, value: float64(r.NetWorth) - float64(total)/float64(n)})
	}
	best, value, ok := MaxBy(leads, func(l lead) string { return l.row.GameID }, func(l lead) float64 { return l.value })
	if !ok {
		return stats.PlayerRecord{PlayerID: playerID, PlayerName: name}
	}
	return v.playerRecord(best.row, round0(value))
}
