package httpapi

import (
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
)

type playerRecordDTO struct {
	Value      float64 `json:"value"`
	MatchID    string  `json:"matchId,omitempty"`
	GameID     string  `json:"gameId,omitempty"`
	HeroName   string  `json:"heroName,omitempty"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
}

type teamRecordDTO struct {
	Value    float64 `json:"value"`
	MatchID  string  `json:"matchId,omitempty"`
	GameID   string  `json:"gameId,omitempty"`
	Opponent string  `json:"opponent"`
	TeamID   string  `json:"teamId"`
	TeamName string  `json:"teamName"`
}

type gameRecordDTO struct {
	Value   float64 `json:"value"`
	MatchID string  `json:"matchId,omitempty"`
	GameID  string  `json:"gameId,omitempty"`
	TeamA   string  `json:"teamA"`
	TeamB   string  `json:"teamB"`
}

type heroRecordDTO struct {
	HeroID      int     `json:"heroId"`
	HeroName    string  `json:"heroName"`
	Count       int     `json:"count"`
	GamesPlayed int     `json:"gamesPlayed"`
	WinRate     float64 `json:"winRate"`
}

type dayRecordDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type firstBloodRecordDTO struct {
	Minutes    float64 `json:"minutes"`
	MatchID    string  `json:"matchId,omitempty"`
	GameID     string  `json:"gameId,omitempty"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	TeamName   string  `json:"teamName"`
}

type tournamentStatsDTO struct {
	TotalTeams              int           `json:"totalTeams"`
	TotalMatches            int           `json:"totalMatches"`
	TotalGames              int           `json:"totalGames"`
	TotalHoursPlayed        float64       `json:"totalHoursPlayed"`
	AverageMatchDuration    float64       `json:"averageMatchDuration"`
	LongestMatch            gameRecordDTO `json:"longestMatch"`
	ShortestMatch           gameRecordDTO `json:"shortestMatch"`
	TotalMatchesInSingleDay dayRecordDTO  `json:"totalMatchesInSingleDay"`

	TotalKills        int                 `json:"totalKills"`
	TotalDeaths       int                 `json:"totalDeaths"`
	TotalAssists      int                 `json:"totalAssists"`
	BloodiestMatch    gameRecordDTO       `json:"bloodiestMatch"`
	MostPeacefulMatch gameRecordDTO       `json:"mostPeacefulMatch"`
	TotalRampages     int                 `json:"totalRampages"`
	TotalUltraKills   int                 `json:"totalUltraKills"`
	TotalTripleKills  int                 `json:"totalTripleKills"`
	TotalFirstBloods  int                 `json:"totalFirstBloods"`
	FastestFirstBlood firstBloodRecordDTO `json:"fastestFirstBlood"`

	MostPickedHero          heroRecordDTO   `json:"mostPickedHero"`
	MostBannedHero          heroRecordDTO   `json:"mostBannedHero"`
	HighestWinRateHero      heroRecordDTO   `json:"highestWinRateHero"`
	Top3PickedHeroes        []heroRecordDTO `json:"top3PickedHeroes"`
	TotalUniqueHeroesPicked int             `json:"totalUniqueHeroesPicked"`
	MostVersatilePlayer     playerRecordDTO `json:"mostVersatilePlayer"`

	TotalGoldGenerated   int64           `json:"totalGoldGenerated"`
	TotalGoldSpent       int64           `json:"totalGoldSpent"`
	RichestPlayer        playerRecordDTO `json:"richestPlayer"`
	MostEfficientFarmer  playerRecordDTO `json:"mostEfficientFarmer"`
	FastestScalingPlayer playerRecordDTO `json:"fastestScalingPlayer"`

	TotalObserverWardsPlaced int             `json:"totalObserverWardsPlaced"`
	TotalSentryWardsPlaced   int             `json:"totalSentryWardsPlaced"`
	TournamentWardMaster     playerRecordDTO `json:"tournamentWardMaster"`
	BestWardHunter           playerRecordDTO `json:"bestWardHunter"`

	TotalCampsStacked   int     `json:"totalCampsStacked"`
	TotalRunesCollected int     `json:"totalRunesCollected"`
	TotalRoshanKills    int     `json:"totalRoshanKills"`
	TotalHealing        int64   `json:"totalHealing"`
	TotalBuybacks       int     `json:"totalBuybacks"`
	TotalCreepsKilled   int     `json:"totalCreepsKilled"`
	TotalDenies         int     `json:"totalDenies"`
	TotalFantasyPoints  float64 `json:"totalFantasyPoints"`
	MostPlayedRoleHero  string  `json:"mostPlayedRoleHero"`

	LastUpdated time.Time `json:"lastUpdated"`
}

type playerStatsDTO struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	GamesPlayed int    `json:"gamesPlayed"`

	MostKillsSingleMatch      playerRecordDTO `json:"mostKillsSingleMatch"`
	HighestKDASingleMatch     playerRecordDTO `json:"highestKDASingleMatch"`
	LongestKillStreak         playerRecordDTO `json:"longestKillStreak"`
	MostHeroDamageSingleMatch playerRecordDTO `json:"mostHeroDamageSingleMatch"`
	HighestGPMSingleMatch     playerRecordDTO `json:"highestGPMSingleMatch"`
	HighestXPMSingleMatch     playerRecordDTO `json:"highestXPMSingleMatch"`
	MostAssistsSingleGame     playerRecordDTO `json:"mostAssistsSingleGame"`
	HighestLastHitsSingleGame playerRecordDTO `json:"highestLastHitsSingleGame"`
	HighestNetWorthSingleGame playerRecordDTO `json:"highestNetWorthSingleGame"`
	BestCSPerMinute           playerRecordDTO `json:"bestCSPerMinute"`
	MostDenies                playerRecordDTO `json:"mostDenies"`
	MostGoldEarned            playerRecordDTO `json:"mostGoldEarned"`
	MostObserverWards         playerRecordDTO `json:"mostObserverWards"`
	MostWardsKilled           playerRecordDTO `json:"mostWardsKilled"`
	MostWardsPlaced           playerRecordDTO `json:"mostWardsPlaced"`
	MostHealingDone           playerRecordDTO `json:"mostHealingDone"`
	BestFantasyScore          playerRecordDTO `json:"bestFantasyScore"`
	MostTripleKills           playerRecordDTO `json:"mostTripleKills"`
	MostUltraKills            playerRecordDTO `json:"mostUltraKills"`
	HighestDamagePerMinute    playerRecordDTO `json:"highestDamagePerMinute"`
	MostTowerDamage           playerRecordDTO `json:"mostTowerDamage"`
	HighestNetWorthLead       playerRecordDTO `json:"highestNetWorthLead"`

	MostGodlikeStreaks  playerRecordDTO `json:"mostGodlikeStreaks"`
	BestKDAAverage      playerRecordDTO `json:"bestKDAAverage"`
	HighestAverageKills playerRecordDTO `json:"highestAverageKills"`
	MostFirstBloods     playerRecordDTO `json:"mostFirstBloods"`
	GamesWithZeroDeaths playerRecordDTO `json:"gamesWithZeroDeaths"`
	UniqueHeroesPlayed  playerRecordDTO `json:"uniqueHeroesPlayed"`
	VersatilityScore    playerRecordDTO `json:"versatilityScore"`
	HeroSpamScore       playerRecordDTO `json:"heroSpamScore"`
	TotalFantasyPoints  playerRecordDTO `json:"totalFantasyPoints"`

	LastUpdated time.Time `json:"lastUpdated"`
}

type teamStatsDTO struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`

	ShortestGameWon             teamRecordDTO `json:"shortestGameWon"`
	LongestGameWon              teamRecordDTO `json:"longestGameWon"`
	AverageMatchDuration        teamRecordDTO `json:"averageMatchDuration"`
	AverageKills                teamRecordDTO `json:"averageKills"`
	AverageAssists              teamRecordDTO `json:"averageAssists"`
	OverallAssistsPerKill       teamRecordDTO `json:"overallAssistsPerKill"`
	MostFirstBloods             teamRecordDTO `json:"mostFirstBloods"`
	MostKillsSingleGame         teamRecordDTO `json:"mostKillsSingleGame"`
	FewestKillsSingleGame       teamRecordDTO `json:"fewestKillsSingleGame"`
	FewestKillsPerWin           teamRecordDTO `json:"fewestKillsPerWin"`
	HighestTowerDamage          teamRecordDTO `json:"highestTowerDamage"`
	MostDominantVictory         teamRecordDTO `json:"mostDominantVictory"`
	TeamVersatility             teamRecordDTO `json:"teamVersatility"`
	FastestFirstBlood           teamRecordDTO `json:"fastestFirstBlood"`
	HighestAverageTeamNetWorth  teamRecordDTO `json:"highestAverageTeamNetWorth"`
	MostBuybacksUsed            teamRecordDTO `json:"mostBuybacksUsed"`
	BestLateGameTeam            teamRecordDTO `json:"bestLateGameTeam"`
	MostWardsPerGame            teamRecordDTO `json:"mostWardsPerGame"`
	HighestTowerDamagePerMinute teamRecordDTO `json:"highestTowerDamagePerMinute"`

	LastUpdated time.Time `json:"lastUpdated"`
}

func tournamentStatsToDTO(item stats.TournamentStats) tournamentStatsDTO {
	return tournamentStatsDTO{
		TotalTeams:               item.TotalTeams,
		TotalMatches:             item.TotalMatches,
		TotalGames:               item.TotalGames,
		TotalHoursPlayed:         item.TotalHoursPlayed,
		AverageMatchDuration:     item.AverageMatchDuration,
		LongestMatch:             gameRecordDTO(item.LongestMatch),
		ShortestMatch:            gameRecordDTO(item.ShortestMatch),
		TotalMatchesInSingleDay:  dayRecordDTO(item.TotalMatchesInSingleDay),
		TotalKills:               item.TotalKills,
		TotalDeaths:              item.TotalDeaths,
		TotalAssists:             item.TotalAssists,
		BloodiestMatch:           gameRecordDTO(item.BloodiestMatch),
		MostPeacefulMatch:        gameRecordDTO(item.MostPeacefulMatch),
		TotalRampages:            item.TotalRampages,
		TotalUltraKills:          item.TotalUltraKills,
		TotalTripleKills:         item.TotalTripleKills,
		TotalFirstBloods:         item.TotalFirstBloods,
		FastestFirstBlood:        firstBloodRecordDTO(item.FastestFirstBlood),
		MostPickedHero:           heroRecordDTO(item.MostPickedHero),
		MostBannedHero:           heroRecordDTO(item.MostBannedHero),
		HighestWinRateHero:       heroRecordDTO(item.HighestWinRateHero),
		Top3PickedHeroes:         heroRecordsToDTO(item.Top3PickedHeroes),
		TotalUniqueHeroesPicked:  item.TotalUniqueHeroesPicked,
		MostVersatilePlayer:      playerRecordDTO(item.MostVersatilePlayer),
		TotalGoldGenerated:       item.TotalGoldGenerated,
		TotalGoldSpent:           item.TotalGoldSpent,
		RichestPlayer:            playerRecordDTO(item.RichestPlayer),
		MostEfficientFarmer:      playerRecordDTO(item.MostEfficientFarmer),
		FastestScalingPlayer:     playerRecordDTO(item.FastestScalingPlayer),
		TotalObserverWardsPlaced: item.TotalObserverWardsPlaced,
		TotalSentryWardsPlaced:   item.TotalSentryWardsPlaced,
		TournamentWardMaster:     playerRecordDTO(item.TournamentWardMaster),
		BestWardHunter:           playerRecordDTO(item.BestWardHunter),
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

func playerStatsToDTO(item stats.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		PlayerID:                  item.PlayerID,
		PlayerName:                item.PlayerName,
		TeamID:                    item.TeamID,
		TeamName:                  item.TeamName,
		GamesPlayed:               item.GamesPlayed,
		MostKillsSingleMatch:      playerRecordDTO(item.MostKillsSingleMatch),
		HighestKDASingleMatch:     playerRecordDTO(item.HighestKDASingleMatch),
		LongestKillStreak:         playerRecordDTO(item.LongestKillStreak),
		MostHeroDamageSingleMatch: playerRecordDTO(item.MostHeroDamageSingleMatch),
		HighestGPMSingleMatch:     playerRecordDTO(item.HighestGPMSingleMatch),
		HighestXPMSingleMatch:     playerRecordDTO(item.HighestXPMSingleMatch),
		MostAssistsSingleGame:     playerRecordDTO(item.MostAssistsSingleGame),
		HighestLastHitsSingleGame: playerRecordDTO(item.HighestLastHitsSingleGame),
		HighestNetWorthSingleGame: playerRecordDTO(item.HighestNetWorthSingleGame),
		BestCSPerMinute:           playerRecordDTO(item.BestCSPerMinute),
		MostDenies:                playerRecordDTO(item.MostDenies),
		MostGoldEarned:            playerRecordDTO(item.MostGoldEarned),
		MostObserverWards:         playerRecordDTO(item.MostObserverWards),
		MostWardsKilled:           playerRecordDTO(item.MostWardsKilled),
		MostWardsPlaced:           playerRecordDTO(item.MostWardsPlaced),
		MostHealingDone:           playerRecordDTO(item.MostHealingDone),
		BestFantasyScore:          playerRecordDTO(item.BestFantasyScore),
		MostTripleKills:           playerRecordDTO(item.MostTripleKills),
		MostUltraKills:            playerRecordDTO(item.MostUltraKills),
		HighestDamagePerMinute:    playerRecordDTO(item.HighestDamagePerMinute),
		MostTowerDamage:           playerRecordDTO(item.MostTowerDamage),
		HighestNetWorthLead:       playerRecordDTO(item.HighestNetWorthLead),
		MostGodlikeStreaks:        playerRecordDTO(item.MostGodlikeStreaks),
		BestKDAAverage:            playerRecordDTO(item.BestKDAAverage),
		HighestAverageKills:       playerRecordDTO(item.HighestAverageKills),
		MostFirstBloods:           playerRecordDTO(item.MostFirstBloods),
		GamesWithZeroDeaths:       playerRecordDTO(item.GamesWithZeroDeaths),
		UniqueHeroesPlayed:        playerRecordDTO(item.UniqueHeroesPlayed),
		VersatilityScore:          playerRecordDTO(item.VersatilityScore),
		HeroSpamScore:             playerRecordDTO(item.HeroSpamScore),
		TotalFantasyPoints:        playerRecordDTO(item.TotalFantasyPoints),
		LastUpdated:               item.LastUpdated.UTC(),
	}
}

func teamStatsToDTO(item stats.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		TeamID:                      item.TeamID,
		TeamName:                    item.TeamName,
		GamesPlayed:                 item.GamesPlayed,
		Wins:                        item.Wins,
		ShortestGameWon:             teamRecordDTO(item.ShortestGameWon),
		LongestGameWon:              teamRecordDTO(item.LongestGameWon),
		AverageMatchDuration:        teamRecordDTO(item.AverageMatchDuration),
		AverageKills:                teamRecordDTO(item.AverageKills),
		AverageAssists:              teamRecordDTO(item.AverageAssists),
		OverallAssistsPerKill:       teamRecordDTO(item.OverallAssistsPerKill),
		MostFirstBloods:             teamRecordDTO(item.MostFirstBloods),
		MostKillsSingleGame:         teamRecordDTO(item.MostKillsSingleGame),
		FewestKillsSingleGame:       teamRecordDTO(item.FewestKillsSingleGame),
		FewestKillsPerWin:           teamRecordDTO(item.FewestKillsPerWin),
		HighestTowerDamage:          teamRecordDTO(item.HighestTowerDamage),
		MostDominantVictory:         teamRecordDTO(item.MostDominantVictory),
		TeamVersatility:             teamRecordDTO(item.TeamVersatility),
		FastestFirstBlood:           teamRecordDTO(item.FastestFirstBlood),
		HighestAverageTeamNetWorth:  teamRecordDTO(item.HighestAverageTeamNetWorth),
		MostBuybacksUsed:            teamRecordDTO(item.MostBuybacksUsed),
		BestLateGameTeam:            teamRecordDTO(item.BestLateGameTeam),
		MostWardsPerGame:            teamRecordDTO(item.MostWardsPerGame),
		HighestTowerDamagePerMinute: teamRecordDTO(item.HighestTowerDamagePerMinute),
		LastUpdated:                 item.LastUpdated.UTC(),
	}
}

func heroRecordsToDTO(items []stats.HeroRecord) []heroRecordDTO {
	out := make([]heroRecordDTO, 0, len(items))
	for _, item := range items {
		out = append(out, heroRecordDTO(item))
	}
	return out
}
