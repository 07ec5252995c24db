package stats

import "time"

// PlayerRecord is a player statistic together with the game it came from.
// Summary statistics leave MatchID, GameID and HeroName empty.
type PlayerRecord struct {
	Value      float64
	MatchID    string
	GameID     string
	HeroName   string
	PlayerID   string
	PlayerName string
}

// TeamRecord is a team statistic together with the game it came from.
type TeamRecord struct {
	Value    float64
	MatchID  string
	GameID   string
	Opponent string
	TeamID   string
	TeamName string
}

// GameRecord points at one game, for duration and kill extremes.
type GameRecord struct {
	Value   float64
	MatchID string
	GameID  string
	TeamA   string
	TeamB   string
}

type HeroRecord struct {
	HeroID      int
	HeroName    string
	Count       int
	GamesPlayed int
	WinRate     float64
}

type DayRecord struct {
	Date  string
	Count int
}

type FirstBloodRecord struct {
	Minutes    float64
	MatchID    string
	GameID     string
	PlayerID   string
	PlayerName string
	TeamName   string
}

// TournamentStats is the tournamentStats/tournament-stats singleton.
type TournamentStats struct {
	TotalTeams              int
	TotalMatches            int
	TotalGames              int
	TotalHoursPlayed        float64
	AverageMatchDuration    float64
	LongestMatch            GameRecord
	ShortestMatch           GameRecord
	TotalMatchesInSingleDay DayRecord

	TotalKills        int
	TotalDeaths       int
	TotalAssists      int
	BloodiestMatch    GameRecord
	MostPeacefulMatch GameRecord
	TotalRampages     int
	TotalUltraKills   int
	TotalTripleKills  int
	TotalFirstBloods  int
	FastestFirstBlood FirstBloodRecord

	MostPickedHero          HeroRecord
	MostBannedHero          HeroRecord
	HighestWinRateHero      HeroRecord
	Top3PickedHeroes        []HeroRecord
	TotalUniqueHeroesPicked int
	MostVersatilePlayer     PlayerRecord

	TotalGoldGenerated   int64
	TotalGoldSpent       int64
	RichestPlayer        PlayerRecord
	MostEfficientFarmer  PlayerRecord
	FastestScalingPlayer PlayerRecord

	TotalObserverWardsPlaced int
	TotalSentryWardsPlaced   int
	TournamentWardMaster     PlayerRecord
	BestWardHunter           PlayerRecord

	TotalCampsStacked   int
	TotalRunesCollected int
	TotalRoshanKills    int
	TotalHealing        int64
	TotalBuybacks       int
	TotalCreepsKilled   int
	TotalDenies         int
	TotalFantasyPoints  float64
	MostPlayedRoleHero  string

	LastUpdated time.Time
}

// PlayerStats is one playerStats/{playerId} document.
type PlayerStats struct {
	PlayerID    string
	PlayerName  string
	TeamID      string
	TeamName    string
	GamesPlayed int

	MostKillsSingleMatch      PlayerRecord
	HighestKDASingleMatch     PlayerRecord
	LongestKillStreak         PlayerRecord
	MostHeroDamageSingleMatch PlayerRecord
	HighestGPMSingleMatch     PlayerRecord
	HighestXPMSingleMatch     PlayerRecord
	MostAssistsSingleGame     PlayerRecord
	HighestLastHitsSingleGame PlayerRecord
	HighestNetWorthSingleGame PlayerRecord
	BestCSPerMinute           PlayerRecord
	MostDenies                PlayerRecord
	MostGoldEarned            PlayerRecord
	MostObserverWards         PlayerRecord
	MostWardsKilled           PlayerRecord
	MostWardsPlaced           PlayerRecord
	MostHealingDone           PlayerRecord
	BestFantasyScore          PlayerRecord
	MostTripleKills           PlayerRecord
	MostUltraKills            PlayerRecord
	HighestDamagePerMinute    PlayerRecord
	MostTowerDamage           PlayerRecord
	HighestNetWorthLead       PlayerRecord

	MostGodlikeStreaks  PlayerRecord
	BestKDAAverage      PlayerRecord
	HighestAverageKills PlayerRecord
	MostFirstBloods     PlayerRecord
	GamesWithZeroDeaths PlayerRecord
	UniqueHeroesPlayed  PlayerRecord
	VersatilityScore    PlayerRecord
	HeroSpamScore       PlayerRecord
	TotalFantasyPoints  PlayerRecord

	LastUpdated time.Time
}

// TeamStats is one teamStats/{teamId} document.
type TeamStats struct {
	TeamID      string
	TeamName    string
	GamesPlayed int
	Wins        int

	ShortestGameWon             TeamRecord
	LongestGameWon              TeamRecord
	AverageMatchDuration        TeamRecord
	AverageKills                TeamRecord
	AverageAssists              TeamRecord
	OverallAssistsPerKill       TeamRecord
	MostFirstBloods             TeamRecord
	MostKillsSingleGame         TeamRecord
	FewestKillsSingleGame       TeamRecord
	FewestKillsPerWin           TeamRecord
	HighestTowerDamage          TeamRecord
	MostDominantVictory         TeamRecord
	TeamVersatility             TeamRecord
	FastestFirstBlood           TeamRecord
	HighestAverageTeamNetWorth  TeamRecord
	MostBuybacksUsed            TeamRecord
	BestLateGameTeam            TeamRecord
	MostWardsPerGame            TeamRecord
	HighestTowerDamagePerMinute TeamRecord

	LastUpdated time.Time
}

// NoWinDuration marks ShortestGameWon for a team without wins.
const NoWinDuration = 99999
