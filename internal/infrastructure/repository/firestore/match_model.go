package firestore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

type teamDoc struct {
	Name      string `firestore:"name"`
	Tag       string `firestore:"tag"`
	CaptainID string `firestore:"captainId,omitempty"`
	Status    string `firestore:"status,omitempty"`
}

func teamToDoc(t team.Team) teamDoc {
	return teamDoc{Name: t.Name, Tag: t.Tag, CaptainID: t.CaptainID, Status: t.Status}
}

type playerDoc struct {
	Nickname  string `firestore:"nickname"`
	Role      string `firestore:"role"`
	SteamID   string `firestore:"steamId"`
	SteamID32 string `firestore:"steamId32"`
	MMR       int    `firestore:"mmr"`
}

func playerFromDoc(id, teamID string, doc playerDoc) team.Player {
	role, _ := team.ParseRole(doc.Role)
	return team.Player{
		ID:        id,
		Nickname:  doc.Nickname,
		Role:      role,
		SteamID:   doc.SteamID,
		SteamID32: strings.TrimSpace(doc.SteamID32),
		MMR:       doc.MMR,
		TeamID:    teamID,
	}
}

func playerToDoc(p team.Player) playerDoc {
	return playerDoc{
		Nickname:  p.Nickname,
		Role:      string(p.Role),
		SteamID:   p.SteamID,
		SteamID32: p.SteamID32,
		MMR:       p.MMR,
	}
}

type teamRefDoc struct {
	ID    string `firestore:"id"`
	Name  string `firestore:"name"`
	Score int    `firestore:"score"`
}

// matchDoc keeps the legacy snake_case keys. game_ids holds numbers; older
// documents may carry strings.
type matchDoc struct {
	TeamA        teamRefDoc `firestore:"teamA"`
	TeamB        teamRefDoc `firestore:"teamB"`
	Status       string     `firestore:"status"`
	GroupID      string     `firestore:"group_id"`
	RoundID      string     `firestore:"roundId"`
	Round        string     `firestore:"round"`
	BracketType  string     `firestore:"bracketType"`
	PlayoffRound int        `firestore:"playoffRound"`
	SeriesFormat string     `firestore:"series_format"`
	GameIDs      []any      `firestore:"game_ids"`
	WinnerID     *string    `firestore:"winnerId"`
	ScheduledFor time.Time  `firestore:"defaultMatchTime"`
	CompletedAt  *string    `firestore:"completed_at"`
}

func matchFromDoc(id string, doc matchDoc) match.Match {
	m := match.Match{
		ID:           id,
		TeamA:        match.TeamRef{ID: doc.TeamA.ID, Name: doc.TeamA.Name, Score: doc.TeamA.Score},
		TeamB:        match.TeamRef{ID: doc.TeamB.ID, Name: doc.TeamB.Name, Score: doc.TeamB.Score},
		Status:       match.NormalizeStatus(doc.Status),
		GroupID:      strings.TrimSpace(doc.GroupID),
		RoundID:      strings.TrimSpace(doc.RoundID),
		Round:        strings.TrimSpace(doc.Round),
		BracketType:  doc.BracketType,
		PlayoffRound: doc.PlayoffRound,
		SeriesFormat: match.Format(strings.ToLower(strings.TrimSpace(doc.SeriesFormat))),
		GameIDs:      gameIDsFromDoc(doc.GameIDs),
		ScheduledFor: doc.ScheduledFor.UTC(),
	}
	if doc.WinnerID != nil {
		m.WinnerID = *doc.WinnerID
	}
	if doc.CompletedAt != nil {
		if at, err := time.Parse(time.RFC3339, *doc.CompletedAt); err == nil {
			at = at.UTC()
			m.CompletedAt = &at
		}
	}
	return m
}

func matchToDoc(m match.Match) matchDoc {
	doc := matchDoc{
		TeamA:        teamRefDoc{ID: m.TeamA.ID, Name: m.TeamA.Name, Score: m.TeamA.Score},
		TeamB:        teamRefDoc{ID: m.TeamB.ID, Name: m.TeamB.Name, Score: m.TeamB.Score},
		Status:       string(match.NormalizeStatus(string(m.Status))),
		GroupID:      m.GroupID,
		RoundID:      m.RoundID,
		Round:        m.Round,
		BracketType:  m.BracketType,
		PlayoffRound: m.PlayoffRound,
		SeriesFormat: string(m.SeriesFormat),
		GameIDs:      make([]any, 0, len(m.GameIDs)),
		ScheduledFor: m.ScheduledFor.UTC(),
	}
	for _, id := range m.GameIDs {
		doc.GameIDs = append(doc.GameIDs, gameIDValue(id))
	}
	if m.WinnerID != "" {
		doc.WinnerID = &m.WinnerID
	}
	if m.CompletedAt != nil {
		at := m.CompletedAt.UTC().Format(time.RFC3339)
		doc.CompletedAt = &at
	}
	return doc
}

func resultUpdates(result match.Result) map[string]any {
	updates := map[string]any{
		"teamA.score":  result.TeamAScore,
		"teamB.score":  result.TeamBScore,
		"status":       string(result.Status),
		"winnerId":     nil,
		"completed_at": nil,
	}
	if result.WinnerID != "" {
		updates["winnerId"] = result.WinnerID
	}
	if result.CompletedAt != nil {
		updates["completed_at"] = result.CompletedAt.UTC().Format(time.RFC3339)
	}
	return updates
}

// gameIDValue stores numeric provider ids as numbers.
func gameIDValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func gameIDsFromDoc(values []any) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		var id string
		switch value := v.(type) {
		case int64:
			id = strconv.FormatInt(value, 10)
		case float64:
			id = strconv.FormatInt(int64(value), 10)
		case string:
			id = strings.TrimSpace(value)
		default:
			id = strings.TrimSpace(fmt.Sprint(value))
		}
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type standingDoc struct {
	TeamID        string            `firestore:"teamId"`
	TeamName      string            `firestore:"teamName"`
	Points        int               `firestore:"points"`
	Wins          int               `firestore:"wins"`
	Losses        int               `firestore:"losses"`
	Draws         int               `firestore:"draws"`
	MatchesPlayed int               `firestore:"matchesPlayed"`
	HeadToHead    map[string]string `firestore:"headToHead"`
}

type groupDoc struct {
	Name      string                 `firestore:"name"`
	Standings map[string]standingDoc `firestore:"standings"`
}

func groupFromDoc(id string, doc groupDoc) match.Group {
	g := match.Group{ID: id, Name: doc.Name, Standings: make(map[string]match.Standing, len(doc.Standings))}
	for teamID, row := range doc.Standings {
		h2h := make(map[string]match.HeadToHead, len(row.HeadToHead))
		for opponent, outcome := range row.HeadToHead {
			h2h[opponent] = match.HeadToHead(outcome)
		}
		if row.TeamID == "" {
			row.TeamID = teamID
		}
		g.Standings[teamID] = match.Standing{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Points:        row.Points,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Draws:         row.Draws,
			MatchesPlayed: row.MatchesPlayed,
			HeadToHead:    h2h,
		}
	}
	return g
}

func standingsToDoc(standings map[string]match.Standing) map[string]standingDoc {
	out := make(map[string]standingDoc, len(standings))
	for teamID, row := range standings {
		h2h := make(map[string]string, len(row.HeadToHead))
		for opponent, outcome := range row.HeadToHead {
			h2h[opponent] = string(outcome)
		}
		out[teamID] = standingDoc{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Points:        row.Points,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Draws:         row.Draws,
			MatchesPlayed: row.MatchesPlayed,
			HeadToHead:    h2h,
		}
	}
	return out
}

type snapshotDoc struct {
	ID   string `firestore:"id"`
	Name string `firestore:"name"`
}

type pickBanDoc struct {
	IsPick bool `firestore:"is_pick"`
	HeroID int  `firestore:"hero_id"`
	Team   int  `firestore:"team"`
	Order  int  `firestore:"order"`
}

type gameDoc struct {
	ID             string       `firestore:"id"`
	RadiantWin     bool         `firestore:"radiant_win"`
	Duration       int          `firestore:"duration"`
	StartTime      int64        `firestore:"start_time"`
	FirstBloodTime int          `firestore:"firstBloodTime"`
	PicksBans      []pickBanDoc `firestore:"picksBans"`
	RadiantTeam    snapshotDoc  `firestore:"radiant_team"`
	DireTeam       snapshotDoc  `firestore:"dire_team"`
	IsParsed       bool         `firestore:"isParsed"`
}

func gameFromDoc(id, matchID string, doc gameDoc) game.Game {
	g := game.Game{
		ID:             id,
		MatchID:        matchID,
		RadiantWin:     doc.RadiantWin,
		Duration:       doc.Duration,
		StartTime:      doc.StartTime,
		FirstBloodTime: doc.FirstBloodTime,
		RadiantTeam:    game.TeamSnapshot{ID: doc.RadiantTeam.ID, Name: doc.RadiantTeam.Name},
		DireTeam:       game.TeamSnapshot{ID: doc.DireTeam.ID, Name: doc.DireTeam.Name},
		IsParsed:       doc.IsParsed,
		PicksBans:      make([]game.PickBan, 0, len(doc.PicksBans)),
	}
	for _, pb := range doc.PicksBans {
		g.PicksBans = append(g.PicksBans, game.PickBan{IsPick: pb.IsPick, HeroID: pb.HeroID, Team: pb.Team, Order: pb.Order})
	}
	return g
}

func gameToDoc(g game.Game) gameDoc {
	doc := gameDoc{
		ID:             g.ID,
		RadiantWin:     g.RadiantWin,
		Duration:       g.Duration,
		StartTime:      g.StartTime,
		FirstBloodTime: g.FirstBloodTime,
		RadiantTeam:    snapshotDoc{ID: g.RadiantTeam.ID, Name: g.RadiantTeam.Name},
		DireTeam:       snapshotDoc{ID: g.DireTeam.ID, Name: g.DireTeam.Name},
		IsParsed:       g.IsParsed,
		PicksBans:      make([]pickBanDoc, 0, len(g.PicksBans)),
	}
	for _, pb := range g.PicksBans {
		doc.PicksBans = append(doc.PicksBans, pickBanDoc{IsPick: pb.IsPick, HeroID: pb.HeroID, Team: pb.Team, Order: pb.Order})
	}
	return doc
}

type performanceDoc struct {
	PlayerID          string  `firestore:"playerId"`
	TeamID            string  `firestore:"teamId"`
	AccountID         int64   `firestore:"accountId"`
	HeroID            int     `firestore:"heroId"`
	Kills             int     `firestore:"kills"`
	Deaths            int     `firestore:"deaths"`
	Assists           int     `firestore:"assists"`
	GPM               int     `firestore:"gpm"`
	XPM               int     `firestore:"xpm"`
	LastHits          int     `firestore:"lastHits"`
	Denies            int     `firestore:"denies"`
	NetWorth          int     `firestore:"netWorth"`
	HeroDamage        int     `firestore:"heroDamage"`
	TowerDamage       int     `firestore:"towerDamage"`
	HeroHealing       int     `firestore:"heroHealing"`
	ObsPlaced         int     `firestore:"obsPlaced"`
	SenPlaced         int     `firestore:"senPlaced"`
	ObserverKills     int     `firestore:"observerKills"`
	SentryKills       int     `firestore:"sentryKills"`
	CourierKills      int     `firestore:"courierKills"`
	FirstBloodClaimed bool    `firestore:"firstBloodClaimed"`
	HighestKillStreak int     `firestore:"highestKillStreak"`
	BuybackCount      int     `firestore:"buybackCount"`
	DoubleKills       int     `firestore:"doubleKills"`
	TripleKills       int     `firestore:"tripleKills"`
	UltraKills        int     `firestore:"ultraKills"`
	Rampages          int     `firestore:"rampages"`
	CampsStacked      int     `firestore:"campsStacked"`
	RunesPickedUp     int     `firestore:"runesPickedUp"`
	RoshanKills       int     `firestore:"roshanKills"`
	GoldSpent         int     `firestore:"goldSpent"`
	TotalGold         int     `firestore:"totalGold"`
	Win               bool    `firestore:"win"`
	FantasyPoints     float64 `firestore:"fantasyPoints"`
}

func performanceFromDoc(doc performanceDoc) game.Performance {
	return game.Performance{
		PlayerID:          doc.PlayerID,
		TeamID:            doc.TeamID,
		AccountID:         doc.AccountID,
		HeroID:            doc.HeroID,
		Kills:             doc.Kills,
		Deaths:            doc.Deaths,
		Assists:           doc.Assists,
		GPM:               doc.GPM,
		XPM:               doc.XPM,
		LastHits:          doc.LastHits,
		Denies:            doc.Denies,
		NetWorth:          doc.NetWorth,
		HeroDamage:        doc.HeroDamage,
		TowerDamage:       doc.TowerDamage,
		HeroHealing:       doc.HeroHealing,
		ObsPlaced:         doc.ObsPlaced,
		SenPlaced:         doc.SenPlaced,
		ObserverKills:     doc.ObserverKills,
		SentryKills:       doc.SentryKills,
		CourierKills:      doc.CourierKills,
		FirstBloodClaimed: doc.FirstBloodClaimed,
		HighestKillStreak: doc.HighestKillStreak,
		BuybackCount:      doc.BuybackCount,
		DoubleKills:       doc.DoubleKills,
		TripleKills:       doc.TripleKills,
		UltraKills:        doc.UltraKills,
		Rampages:          doc.Rampages,
		CampsStacked:      doc.CampsStacked,
		RunesPickedUp:     doc.RunesPickedUp,
		RoshanKills:       doc.RoshanKills,
		GoldSpent:         doc.GoldSpent,
		TotalGold:         doc.TotalGold,
		Win:               doc.Win,
		FantasyPoints:     doc.FantasyPoints,
	}
}

func performanceToDoc(p game.Performance) performanceDoc {
	return performanceDoc{
		PlayerID:          p.PlayerID,
		TeamID:            p.TeamID,
		AccountID:         p.AccountID,
		HeroID:            p.HeroID,
		Kills:             p.Kills,
		Deaths:            p.Deaths,
		Assists:           p.Assists,
		GPM:               p.GPM,
		XPM:               p.XPM,
		LastHits:          p.LastHits,
		Denies:            p.Denies,
		NetWorth:          p.NetWorth,
		HeroDamage:        p.HeroDamage,
		TowerDamage:       p.TowerDamage,
		HeroHealing:       p.HeroHealing,
		ObsPlaced:         p.ObsPlaced,
		SenPlaced:         p.SenPlaced,
		ObserverKills:     p.ObserverKills,
		SentryKills:       p.SentryKills,
		CourierKills:      p.CourierKills,
		FirstBloodClaimed: p.FirstBloodClaimed,
		HighestKillStreak: p.HighestKillStreak,
		BuybackCount:      p.BuybackCount,
		DoubleKills:       p.DoubleKills,
		TripleKills:       p.TripleKills,
		UltraKills:        p.UltraKills,
		Rampages:          p.Rampages,
		CampsStacked:      p.CampsStacked,
		RunesPickedUp:     p.RunesPickedUp,
		RoshanKills:       p.RoshanKills,
		GoldSpent:         p.GoldSpent,
		TotalGold:         p.TotalGold,
		Win:               p.Win,
		FantasyPoints:     p.FantasyPoints,
	}
}
