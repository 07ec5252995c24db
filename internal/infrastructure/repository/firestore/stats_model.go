package firestore

import (
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

type playerRecordDoc struct {
	Value      float64 `firestore:"value"`
	MatchID    string  `firestore:"matchId"`
	GameID     string  `firestore:"gameId"`
	HeroName   string  `firestore:"heroName"`
	PlayerID   string  `firestore:"playerId"`
	PlayerName string  `firestore:"playerName"`
}

type teamRecordDoc struct {
	Value    float64 `firestore:"value"`
	MatchID  string  `firestore:"matchId"`
	GameID   string  `firestore:"gameId"`
	Opponent string  `firestore:"opponent"`
	TeamID   string  `firestore:"teamId"`
	TeamName string  `firestore:"teamName"`
}

type gameRecordDoc struct {
	Value   float64 `firestore:"value"`
	MatchID string  `firestore:"matchId"`
	GameID  string  `firestore:"gameId"`
	TeamA   string  `firestore:"teamA"`
	TeamB   string  `firestore:"teamB"`
}

type heroRecordDoc struct {
	HeroID      int     `firestore:"heroId"`
	HeroName    string  `firestore:"heroName"`
	Count       int     `firestore:"count"`
	GamesPlayed int     `firestore:"gamesPlayed"`
	WinRate     float64 `firestore:"winRate"`
}

type dayRecordDoc struct {
	Date  string `firestore:"date"`
	Count int    `firestore:"count"`
}

type firstBloodRecordDoc struct {
	Minutes    float64 `firestore:"minutes"`
	MatchID    string  `firestore:"matchId"`
	GameID     string  `firestore:"gameId"`
	PlayerID   string  `firestore:"playerId"`
	PlayerName string  `firestore:"playerName"`
	TeamName   string  `firestore:"teamName"`
}

type tournamentStatsDoc struct {
	TotalTeams              int           `firestore:"totalTeams"`
	TotalMatches            int           `firestore:"totalMatches"`
	TotalGames              int           `firestore:"totalGames"`
	TotalHoursPlayed        float64       `firestore:"totalHoursPlayed"`
	AverageMatchDuration    float64       `firestore:"averageMatchDuration"`
	LongestMatch            gameRecordDoc `firestore:"longestMatch"`
	ShortestMatch           gameRecordDoc `firestore:"shortestMatch"`
	TotalMatchesInSingleDay dayRecordDoc  `firestore:"totalMatchesInSingleDay"`

	TotalKills        int                 `firestore:"totalKills"`
	TotalDeaths       int                 `firestore:"totalDeaths"`
	TotalAssists      int                 `firestore:"totalAssists"`
	BloodiestMatch    gameRecordDoc       `firestore:"bloodiestMatch"`
	MostPeacefulMatch gameRecordDoc       `firestore:"mostPeacefulMatch"`
	TotalRampages     int                 `firestore:"totalRampages"`
	TotalUltraKills   int                 `firestore:"totalUltraKills"`
	TotalTripleKills  int                 `firestore:"totalTripleKills"`
	TotalFirstBloods  int                 `firestore:"totalFirstBloods"`
	FastestFirstBlood firstBloodRecordDoc `firestore:"fastestFirstBlood"`

	MostPickedHero          heroRecordDoc   `firestore:"mostPickedHero"`
	MostBannedHero          heroRecordDoc   `firestore:"mostBannedHero"`
	HighestWinRateHero      heroRecordDoc   `firestore:"highestWinRateHero"`
	Top3PickedHeroes        []heroRecordDoc `firestore:"top3PickedHeroes"`
	TotalUniqueHeroesPicked int             `firestore:"totalUniqueHeroesPicked"`
	MostVersatilePlayer     playerRecordDoc `firestore:"mostVersatilePlayer"`

	TotalGoldGenerated   int64           `firestore:"totalGoldGenerated"`
	TotalGoldSpent       int64           `firestore:"totalGoldSpent"`
	RichestPlayer        playerRecordDoc `firestore:"richestPlayer"`
	MostEfficientFarmer  playerRecordDoc `firestore:"mostEfficientFarmer"`
	FastestScalingPlayer playerRecordDoc `firestore:"fastestScalingPlayer"`

	TotalObserverWardsPlaced int             `firestore:"totalObserverWardsPlaced"`
	TotalSentryWardsPlaced   int             `firestore:"totalSentryWardsPlaced"`
	TournamentWardMaster     playerRecordDoc `firestore:"tournamentWardMaster"`
	BestWardHunter           playerRecordDoc `firestore:"bestWardHunter"`

	TotalCampsStacked   int     `firestore:"totalCampsStacked"`
	TotalRunesCollected int     `firestore:"totalRunesCollected"`
	TotalRoshanKills    int     `firestore:"totalRoshanKills"`
	TotalHealing        int64   `firestore:"totalHealing"`
	TotalBuybacks       int     `firestore:"totalBuybacks"`
	TotalCreepsKilled   int     `firestore:"totalCreepsKilled"`
	TotalDenies         int     `firestore:"totalDenies"`
	TotalFantasyPoints  float64 `firestore:"totalFantasyPoints"`
	MostPlayedRoleHero  string  `firestore:"mostPlayedRoleHero"`

	LastUpdated time.Time `firestore:"lastUpdated"`
}

// playerStatsDoc also carries the legacy duplicate record keys read by
// older clients.
type playerStatsDoc struct {
	PlayerID    string `firestore:"playerId"`
	PlayerName  string `firestore:"playerName"`
	TeamID      string `firestore:"teamId"`
	TeamName    string `firestore:"teamName"`
	GamesPlayed int    `firestore:"gamesPlayed"`

	MostKillsSingleMatch      playerRecordDoc `firestore:"mostKillsSingleMatch"`
	HighestKDASingleMatch     playerRecordDoc `firestore:"highestKDASingleMatch"`
	LongestKillStreak         playerRecordDoc `firestore:"longestKillStreak"`
	MostHeroDamageSingleMatch playerRecordDoc `firestore:"mostHeroDamageSingleMatch"`
	HighestGPMSingleMatch     playerRecordDoc `firestore:"highestGPMSingleMatch"`
	HighestXPMSingleMatch     playerRecordDoc `firestore:"highestXPMSingleMatch"`
	MostAssistsSingleGame     playerRecordDoc `firestore:"mostAssistsSingleGame"`
	HighestLastHitsSingleGame playerRecordDoc `firestore:"highestLastHitsSingleGame"`
	HighestNetWorthSingleGame playerRecordDoc `firestore:"highestNetWorthSingleGame"`
	BestCSPerMinute           playerRecordDoc `firestore:"bestCSPerMinute"`
	MostDenies                playerRecordDoc `firestore:"mostDenies"`
	MostGoldEarned            playerRecordDoc `firestore:"mostGoldEarned"`
	MostObserverWards         playerRecordDoc `firestore:"mostObserverWards"`
	MostWardsKilled           playerRecordDoc `firestore:"mostWardsKilled"`
	MostWardsPlaced           playerRecordDoc `firestore:"mostWardsPlaced"`
	MostHealingDone           playerRecordDoc `firestore:"mostHealingDone"`
	BestFantasyScore          playerRecordDoc `firestore:"bestFantasyScore"`
	MostTripleKills           playerRecordDoc `firestore:"mostTripleKills"`
	MostUltraKills            playerRecordDoc `firestore:"mostUltraKills"`
	HighestDamagePerMinute    playerRecordDoc `firestore:"highestDamagePerMinute"`
	MostTowerDamage           playerRecordDoc `firestore:"mostTowerDamage"`
	HighestNetWorthLead       playerRecordDoc `firestore:"highestNetWorthLead"`

	MostGodlikeStreaks  playerRecordDoc `firestore:"mostGodlikeStreaks"`
	BestKDAAverage      playerRecordDoc `firestore:"bestKDAAverage"`
	HighestAverageKills playerRecordDoc `firestore:"highestAverageKills"`
	MostFirstBloods     playerRecordDoc `firestore:"mostFirstBloods"`
	GamesWithZeroDeaths playerRecordDoc `firestore:"gamesWithZeroDeaths"`
	UniqueHeroesPlayed  playerRecordDoc `firestore:"uniqueHeroesPlayed"`
	VersatilityScore    playerRecordDoc `firestore:"versatilityScore"`
	HeroSpamScore       playerRecordDoc `firestore:"heroSpamScore"`
	TotalFantasyPoints  playerRecordDoc `firestore:"totalFantasyPoints"`

	LastUpdated time.Time `firestore:"lastUpdated"`

	MostLastHitsSingleGame playerRecordDoc `firestore:"mostLastHitsSingleGame"`
	MostWardsDestroyed     playerRecordDoc `firestore:"mostWardsDestroyed"`
	HighestXPM             playerRecordDoc `firestore:"highestXPM"`
	HighestKillStreak      playerRecordDoc `firestore:"highestKillStreak"`
}

type teamStatsDoc struct {
	TeamID      string `firestore:"teamId"`
	TeamName    string `firestore:"teamName"`
	GamesPlayed int    `firestore:"gamesPlayed"`
	Wins        int    `firestore:"wins"`

	ShortestGameWon             teamRecordDoc `firestore:"shortestGameWon"`
	LongestGameWon              teamRecordDoc `firestore:"longestGameWon"`
	AverageMatchDuration        teamRecordDoc `firestore:"averageMatchDuration"`
	AverageKills                teamRecordDoc `firestore:"averageKills"`
	AverageAssists              teamRecordDoc `firestore:"averageAssists"`
	OverallAssistsPerKill       teamRecordDoc `firestore:"overallAssistsPerKill"`
	MostFirstBloods             teamRecordDoc `firestore:"mostFirstBloods"`
	MostKillsSingleGame         teamRecordDoc `firestore:"mostKillsSingleGame"`
	FewestKillsSingleGame       teamRecordDoc `firestore:"fewestKillsSingleGame"`
	FewestKillsPerWin           teamRecordDoc `firestore:"fewestKillsPerWin"`
	HighestTowerDamage          teamRecordDoc `firestore:"highestTowerDamage"`
	MostDominantVictory         teamRecordDoc `firestore:"mostDominantVictory"`
	TeamVersatility             teamRecordDoc `firestore:"teamVersatility"`
	FastestFirstBlood           teamRecordDoc `firestore:"fastestFirstBlood"`
	HighestAverageTeamNetWorth  teamRecordDoc `firestore:"highestAverageTeamNetWorth"`
	MostBuybacksUsed            teamRecordDoc `firestore:"mostBuybacksUsed"`
	BestLateGameTeam            teamRecordDoc `firestore:"bestLateGameTeam"`
	MostWardsPerGame            teamRecordDoc `firestore:"mostWardsPerGame"`
	HighestTowerDamagePerMinute teamRecordDoc `firestore:"highestTowerDamagePerMinute"`

	LastUpdated time.Time `firestore:"lastUpdated"`
}

func tournamentStatsToDoc(item stats.TournamentStats) tournamentStatsDoc {
	return tournamentStatsDoc{
		TotalTeams:               item.TotalTeams,
		TotalMatches:             item.TotalMatches,
		TotalGames:               item.TotalGames,
		TotalHoursPlayed:         item.TotalHoursPlayed,
		AverageMatchDuration:     item.AverageMatchDuration,
		LongestMatch:             gameRecordDoc(item.LongestMatch),
		ShortestMatch:            gameRecordDoc(item.ShortestMatch),
		TotalMatchesInSingleDay:  dayRecordDoc(item.TotalMatchesInSingleDay),
		TotalKills:               item.TotalKills,
		TotalDeaths:              item.TotalDeaths,
		TotalAssists:             item.TotalAssists,
		BloodiestMatch:           gameRecordDoc(item.BloodiestMatch),
		MostPeacefulMatch:        gameRecordDoc(item.MostPeacefulMatch),
		TotalRampages:            item.TotalRampages,
		TotalUltraKills:          item.TotalUltraKills,
		TotalTripleKills:         item.TotalTripleKills,
		TotalFirstBloods:         item.TotalFirstBloods,
		FastestFirstBlood:        firstBloodRecordDoc(item.FastestFirstBlood),
		MostPickedHero:           heroRecordDoc(item.MostPickedHero),
		MostBannedHero:           heroRecordDoc(item.MostBannedHero),
		HighestWinRateHero:       heroRecordDoc(item.HighestWinRateHero),
		Top3PickedHeroes:         heroRecordsToDoc(item.Top3PickedHeroes),
		TotalUniqueHeroesPicked:  item.TotalUniqueHeroesPicked,
		MostVersatilePlayer:      playerRecordDoc(item.MostVersatilePlayer),
		TotalGoldGenerated:       item.TotalGoldGenerated,
		TotalGoldSpent:           item.TotalGoldSpent,
		RichestPlayer:            playerRecordDoc(item.RichestPlayer),
		MostEfficientFarmer:      playerRecordDoc(item.MostEfficientFarmer),
		FastestScalingPlayer:     playerRecordDoc(item.FastestScalingPlayer),
		TotalObserverWardsPlaced: item.TotalObserverWardsPlaced,
		TotalSentryWardsPlaced:   item.TotalSentryWardsPlaced,
		TournamentWardMaster:     playerRecordDoc(item.TournamentWardMaster),
		BestWardHunter:           playerRecordDoc(item.BestWardHunter),
		TotalCampsStacked:        item.TotalCampsStacked,
		TotalRunesCollected:      item.TotalRunesCollected,
		TotalRoshanKills:         item.TotalRoshanKills,
		TotalHealing:             item.TotalHealing,
		TotalBuybacks:            item.TotalBuybacks,
		TotalCreepsKilled:        item.TotalCreepsKilled,
		TotalDenies:              item.TotalDenies,
		TotalFantasyPoints:       item.TotalFantasyPoints,
		MostPlayedRoleHero:       item.MostPlayedRoleHero,
		LastUpdated:              item.LastUpdated.UTC(),
	}
}

func tournamentStatsFromDoc(doc tournamentStatsDoc) stats.TournamentStats {
	return stats.TournamentStats{
		TotalTeams:               doc.TotalTeams,
		TotalMatches:             doc.TotalMatches,
		TotalGames:               doc.TotalGames,
		TotalHoursPlayed:         doc.TotalHoursPlayed,
		AverageMatchDuration:     doc.AverageMatchDuration,
		LongestMatch:             stats.GameRecord(doc.LongestMatch),
		ShortestMatch:            stats.GameRecord(doc.ShortestMatch),
		TotalMatchesInSingleDay:  stats.DayRecord(doc.TotalMatchesInSingleDay),
		TotalKills:               doc.TotalKills,
		TotalDeaths:              doc.TotalDeaths,
		TotalAssists:             doc.TotalAssists,
		BloodiestMatch:           stats.GameRecord(doc.BloodiestMatch),
		MostPeacefulMatch:        stats.GameRecord(doc.MostPeacefulMatch),
		TotalRampages:            doc.TotalRampages,
		TotalUltraKills:          doc.TotalUltraKills,
		TotalTripleKills:         doc.TotalTripleKills,
		TotalFirstBloods:         doc.TotalFirstBloods,
		FastestFirstBlood:        stats.FirstBloodRecord(doc.FastestFirstBlood),
		MostPickedHero:           stats.HeroRecord(doc.MostPickedHero),
		MostBannedHero:           stats.HeroRecord(doc.MostBannedHero),
		HighestWinRateHero:       stats.HeroRecord(doc.HighestWinRateHero),
		Top3PickedHeroes:         heroRecordsFromDoc(doc.Top3PickedHeroes),
		TotalUniqueHeroesPicked:  doc.TotalUniqueHeroesPicked,
		MostVersatilePlayer:      stats.PlayerRecord(doc.MostVersatilePlayer),
		TotalGoldGenerated:       doc.TotalGoldGenerated,
		TotalGoldSpent:           doc.TotalGoldSpent,
		RichestPlayer:            stats.PlayerRecord(doc.RichestPlayer),
		MostEfficientFarmer:      stats.PlayerRecord(doc.MostEfficientFarmer),
		FastestScalingPlayer:     stats.PlayerRecord(doc.FastestScalingPlayer),
		TotalObserverWardsPlaced: doc.TotalObserverWardsPlaced,
		TotalSentryWardsPlaced:   doc.TotalSentryWardsPlaced,
		TournamentWardMaster:     stats.PlayerRecord(doc.TournamentWardMaster),
		BestWardHunter:           stats.PlayerRecord(doc.BestWardHunter),
		TotalCampsStacked:        doc.TotalCampsStacked,
		TotalRunesCollected:      doc.TotalRunesCollected,
		TotalRoshanKills:         doc.TotalRoshanKills,
		TotalHealing:             doc.TotalHealing,
		TotalBuybacks:            doc.TotalBuybacks,
		TotalCreepsKilled:        doc.TotalCreepsKilled,
		TotalDenies:              doc.TotalDenies,
		TotalFantasyPoints:       doc.TotalFantasyPoints,
		MostPlayedRoleHero:       doc.MostPlayedRoleHero,
		LastUpdated:              doc.LastUpdated,
	}
}

func playerStatsToDoc(item stats.PlayerStats) playerStatsDoc {
	return playerStatsDoc{
		PlayerID:                  item.PlayerID,
		PlayerName:                item.PlayerName,
		TeamID:                    item.TeamID,
		TeamName:                  item.TeamName,
		GamesPlayed:               item.GamesPlayed,
		MostKillsSingleMatch:      playerRecordDoc(item.MostKillsSingleMatch),
		HighestKDASingleMatch:     playerRecordDoc(item.HighestKDASingleMatch),
		LongestKillStreak:         playerRecordDoc(item.LongestKillStreak),
		MostHeroDamageSingleMatch: playerRecordDoc(item.MostHeroDamageSingleMatch),
		HighestGPMSingleMatch:     playerRecordDoc(item.HighestGPMSingleMatch),
		HighestXPMSingleMatch:     playerRecordDoc(item.HighestXPMSingleMatch),
		MostAssistsSingleGame:     playerRecordDoc(item.MostAssistsSingleGame),
		HighestLastHitsSingleGame: playerRecordDoc(item.HighestLastHitsSingleGame),
		HighestNetWorthSingleGame: playerRecordDoc(item.HighestNetWorthSingleGame),
		BestCSPerMinute:           playerRecordDoc(item.BestCSPerMinute),
		MostDenies:                playerRecordDoc(item.MostDenies),
		MostGoldEarned:            playerRecordDoc(item.MostGoldEarned),
		MostObserverWards:         playerRecordDoc(item.MostObserverWards),
		MostWardsKilled:           playerRecordDoc(item.MostWardsKilled),
		MostWardsPlaced:           playerRecordDoc(item.MostWardsPlaced),
		MostHealingDone:           playerRecordDoc(item.MostHealingDone),
		BestFantasyScore:          playerRecordDoc(item.BestFantasyScore),
		MostTripleKills:           playerRecordDoc(item.MostTripleKills),
		MostUltraKills:            playerRecordDoc(item.MostUltraKills),
		HighestDamagePerMinute:    playerRecordDoc(item.HighestDamagePerMinute),
		MostTowerDamage:           playerRecordDoc(item.MostTowerDamage),
		HighestNetWorthLead:       playerRecordDoc(item.HighestNetWorthLead),
		MostGodlikeStreaks:        playerRecordDoc(item.MostGodlikeStreaks),
		BestKDAAverage:            playerRecordDoc(item.BestKDAAverage),
		HighestAverageKills:       playerRecordDoc(item.HighestAverageKills),
		MostFirstBloods:           playerRecordDoc(item.MostFirstBloods),
		GamesWithZeroDeaths:       playerRecordDoc(item.GamesWithZeroDeaths),
		UniqueHeroesPlayed:        playerRecordDoc(item.UniqueHeroesPlayed),
		VersatilityScore:          playerRecordDoc(item.VersatilityScore),
		HeroSpamScore:             playerRecordDoc(item.HeroSpamScore),
		TotalFantasyPoints:        playerRecordDoc(item.TotalFantasyPoints),
		LastUpdated:               item.LastUpdated.UTC(),
		MostLastHitsSingleGame:    playerRecordDoc(item.HighestLastHitsSingleGame),
		MostWardsDestroyed:        playerRecordDoc(item.MostWardsKilled),
		HighestXPM:                playerRecordDoc(item.HighestXPMSingleMatch),
		HighestKillStreak:         playerRecordDoc(item.LongestKillStreak),
	}
}

func playerStatsFromDoc(doc playerStatsDoc) stats.PlayerStats {
	return stats.PlayerStats{
		PlayerID:                  doc.PlayerID,
		PlayerName:                doc.PlayerName,
		TeamID:                    doc.TeamID,
		TeamName:                  doc.TeamName,
		GamesPlayed:               doc.GamesPlayed,
		MostKillsSingleMatch:      stats.PlayerRecord(doc.MostKillsSingleMatch),
		HighestKDASingleMatch:     stats.PlayerRecord(doc.HighestKDASingleMatch),
		LongestKillStreak:         stats.PlayerRecord(doc.LongestKillStreak),
		MostHeroDamageSingleMatch: stats.PlayerRecord(doc.MostHeroDamageSingleMatch),
		HighestGPMSingleMatch:     stats.PlayerRecord(doc.HighestGPMSingleMatch),
		HighestXPMSingleMatch:     stats.PlayerRecord(doc.HighestXPMSingleMatch),
		MostAssistsSingleGame:     stats.PlayerRecord(doc.MostAssistsSingleGame),
		HighestLastHitsSingleGame: stats.PlayerRecord(doc.HighestLastHitsSingleGame),
		HighestNetWorthSingleGame: stats.PlayerRecord(doc.HighestNetWorthSingleGame),
		BestCSPerMinute:           stats.PlayerRecord(doc.BestCSPerMinute),
		MostDenies:                stats.PlayerRecord(doc.MostDenies),
		MostGoldEarned:            stats.PlayerRecord(doc.MostGoldEarned),
		MostObserverWards:         stats.PlayerRecord(doc.MostObserverWards),
		MostWardsKilled:           stats.PlayerRecord(doc.MostWardsKilled),
		MostWardsPlaced:           stats.PlayerRecord(doc.MostWardsPlaced),
		MostHealingDone:           stats.PlayerRecord(doc.MostHealingDone),
		BestFantasyScore:          stats.PlayerRecord(doc.BestFantasyScore),
		MostTripleKills:           stats.PlayerRecord(doc.MostTripleKills),
		MostUltraKills:            stats.PlayerRecord(doc.MostUltraKills),
		HighestDamagePerMinute:    stats.PlayerRecord(doc.HighestDamagePerMinute),
		MostTowerDamage:           stats.PlayerRecord(doc.MostTowerDamage),
		HighestNetWorthLead:       stats.PlayerRecord(doc.HighestNetWorthLead),
		MostGodlikeStreaks:        stats.PlayerRecord(doc.MostGodlikeStreaks),
		BestKDAAverage:            stats.PlayerRecord(doc.BestKDAAverage),
		HighestAverageKills:       stats.PlayerRecord(doc.HighestAverageKills),
		MostFirstBloods:           stats.PlayerRecord(doc.MostFirstBloods),
		GamesWithZeroDeaths:       stats.PlayerRecord(doc.GamesWithZeroDeaths),
		UniqueHeroesPlayed:        stats.PlayerRecord(doc.UniqueHeroesPlayed),
		VersatilityScore:          stats.PlayerRecord(doc.VersatilityScore),
		HeroSpamScore:             stats.PlayerRecord(doc.HeroSpamScore),
		TotalFantasyPoints:        stats.PlayerRecord(doc.TotalFantasyPoints),
		LastUpdated:               doc.LastUpdated,
	}
}

func teamStatsToDoc(item stats.TeamStats) teamStatsDoc {
	return teamStatsDoc{
		TeamID:                      item.TeamID,
		TeamName:                    item.TeamName,
		GamesPlayed:                 item.GamesPlayed,
		Wins:                        item.Wins,
		ShortestGameWon:             teamRecordDoc(item.ShortestGameWon),
		LongestGameWon:              teamRecordDoc(item.LongestGameWon),
		AverageMatchDuration:        teamRecordDoc(item.AverageMatchDuration),
		AverageKills:                teamRecordDoc(item.AverageKills),
		AverageAssists:              teamRecordDoc(item.AverageAssists),
		OverallAssistsPerKill:       teamRecordDoc(item.OverallAssistsPerKill),
		MostFirstBloods:             teamRecordDoc(item.MostFirstBloods),
		MostKillsSingleGame:         teamRecordDoc(item.MostKillsSingleGame),
		FewestKillsSingleGame:       teamRecordDoc(item.FewestKillsSingleGame),
		FewestKillsPerWin:           teamRecordDoc(item.FewestKillsPerWin),
		HighestTowerDamage:          teamRecordDoc(item.HighestTowerDamage),
		MostDominantVictory:         teamRecordDoc(item.MostDominantVictory),
		TeamVersatility:             teamRecordDoc(item.TeamVersatility),
		FastestFirstBlood:           teamRecordDoc(item.FastestFirstBlood),
		HighestAverageTeamNetWorth:  teamRecordDoc(item.HighestAverageTeamNetWorth),
		MostBuybacksUsed:            teamRecordDoc(item.MostBuybacksUsed),
		BestLateGameTeam:            teamRecordDoc(item.BestLateGameTeam),
		MostWardsPerGame:            teamRecordDoc(item.MostWardsPerGame),
		HighestTowerDamagePerMinute: teamRecordDoc(item.HighestTowerDamagePerMinute),
		LastUpdated:                 item.LastUpdated.UTC(),
	}
}

func teamStatsFromDoc(doc teamStatsDoc) stats.TeamStats {
	return stats.TeamStats{
		TeamID:                      doc.TeamID,
		TeamName:                    doc.TeamName,
		GamesPlayed:                 doc.GamesPlayed,
		Wins:                        doc.Wins,
		ShortestGameWon:             stats.TeamRecord(doc.ShortestGameWon),
		LongestGameWon:              stats.TeamRecord(doc.LongestGameWon),
		AverageMatchDuration:        stats.TeamRecord(doc.AverageMatchDuration),
		AverageKills:                stats.TeamRecord(doc.AverageKills),
		AverageAssists:              stats.TeamRecord(doc.AverageAssists),
		OverallAssistsPerKill:       stats.TeamRecord(doc.OverallAssistsPerKill),
		MostFirstBloods:             stats.TeamRecord(doc.MostFirstBloods),
		MostKillsSingleGame:         stats.TeamRecord(doc.MostKillsSingleGame),
		FewestKillsSingleGame:       stats.TeamRecord(doc.FewestKillsSingleGame),
		FewestKillsPerWin:           stats.TeamRecord(doc.FewestKillsPerWin),
		HighestTowerDamage:          stats.TeamRecord(doc.HighestTowerDamage),
		MostDominantVictory:         stats.TeamRecord(doc.MostDominantVictory),
		TeamVersatility:             stats.TeamRecord(doc.TeamVersatility),
		FastestFirstBlood:           stats.TeamRecord(doc.FastestFirstBlood),
		HighestAverageTeamNetWorth:  stats.TeamRecord(doc.HighestAverageTeamNetWorth),
		MostBuybacksUsed:            stats.TeamRecord(doc.MostBuybacksUsed),
		BestLateGameTeam:            stats.TeamRecord(doc.BestLateGameTeam),
		MostWardsPerGame:            stats.TeamRecord(doc.MostWardsPerGame),
		HighestTowerDamagePerMinute: stats.TeamRecord(doc.HighestTowerDamagePerMinute),
		LastUpdated:                 doc.LastUpdated,
	}
}

func heroRecordsToDoc(items []stats.HeroRecord) []heroRecordDoc {
	out := make([]heroRecordDoc, 0, len(items))
	for _, item := range items {
		out = append(out, heroRecordDoc(item))
	}
	return out
}

func heroRecordsFromDoc(items []heroRecordDoc) []stats.HeroRecord {
	out := make([]stats.HeroRecord, 0, len(items))
	for _, item := range items {
		out = append(out, stats.HeroRecord(item))
	}
	return out
}
