package game

import "strings"

// TeamSnapshot is the team id and name captured on a game at ingest time.
type TeamSnapshot struct {
	ID   string
	Name string
}

type PickBan struct {
	IsPick bool
	HeroID int
	Team   int
	Order  int
}

// Game is one map of a series. ID is the provider's numeric match id.
type Game struct {
	ID             string
	MatchID        string
	RadiantWin     bool
	Duration       int
	StartTime      int64
	FirstBloodTime int
	PicksBans      []PickBan
	RadiantTeam    TeamSnapshot
	DireTeam       TeamSnapshot
	IsParsed       bool
}

// WinnerTeamID returns the snapshot id of the winning side.
func (g Game) WinnerTeamID() string {
	if g.RadiantWin {
		return g.RadiantTeam.ID
	}
	return g.DireTeam.ID
}

func (g Game) LoserTeamID() string {
	if g.RadiantWin {
		return g.DireTeam.ID
	}
	return g.RadiantTeam.ID
}

func (g Game) HasTeam(teamID string) bool {
	return teamID != "" && (g.RadiantTeam.ID == teamID || g.DireTeam.ID == teamID)
}

func (g Game) DurationMinutes() float64 {
	return float64(g.Duration) / 60
}

// Performance is one player's line in one game. FantasyPoints is fixed at
// ingest and never recomputed downstream.
type Performance struct {
	PlayerID          string
	TeamID            string
	AccountID         int64
	HeroID            int
	Kills             int
	Deaths            int
	Assists           int
	GPM               int
	XPM               int
	LastHits          int
	Denies            int
	NetWorth          int
	HeroDamage        int
	TowerDamage       int
	HeroHealing       int
	ObsPlaced         int
	SenPlaced         int
	ObserverKills     int
	SentryKills       int
	CourierKills      int
	FirstBloodClaimed bool
	HighestKillStreak int
	BuybackCount      int
	DoubleKills       int
	TripleKills       int
	UltraKills        int
	Rampages          int
	CampsStacked      int
	RunesPickedUp     int
	RoshanKills       int
	GoldSpent         int
	TotalGold         int
	Win               bool
	FantasyPoints     float64
}

const placeholderPrefix = "unknown_"

// IsPlaceholder reports whether the player could not be matched to a roster.
func (p Performance) IsPlaceholder() bool {
	return strings.HasPrefix(p.PlayerID, placeholderPrefix)
}

func PlaceholderPlayerID(accountID string) string {
	return placeholderPrefix + accountID
}

// KDA is (kills+assists)/max(1,deaths).
func (p Performance) KDA() float64 {
	deaths := p.Deaths
	if deaths < 1 {
		deaths = 1
	}
	return float64(p.Kills+p.Assists) / float64(deaths)
}

func (p Performance) WardsPlaced() int {
	return p.ObsPlaced + p.SenPlaced
}

func (p Performance) WardsKilled() int {
	return p.ObserverKills + p.SentryKills
}

// Bundle is a game together with all of its performances.
type Bundle struct {
	Game         Game
	Performances []Performance
}
