package memory

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/fantasy"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

const (
	TeamIDAlpha = "team-alpha"
	TeamIDBravo = "team-bravo"
	TeamIDDelta = "team-delta"

	GroupIDA = "grupa-a"

	MatchIDGroupAlphaBravo = "match-a-alpha-bravo"
	MatchIDGroupBravoDelta = "match-a-bravo-delta"
	MatchIDUpperR1         = "match-upper-r1"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID: TeamIDAlpha, Name: "Alpha Esports", Tag: "ALP",
			Players: []team.Player{
				{ID: "alpha-carry", Nickname: "Kaz", Role: team.RoleCarry, SteamID32: "1001", MMR: 7200},
				{ID: "alpha-mid", Nickname: "Vex", Role: team.RoleMid, SteamID32: "1002", MMR: 7400},
				{ID: "alpha-off", Nickname: "Brom", Role: team.RoleOfflane, SteamID32: "1003", MMR: 6900},
				{ID: "alpha-soft", Nickname: "Lira", Role: team.RoleSoftSupport, SteamID32: "1004", MMR: 6500},
				{ID: "alpha-hard", Nickname: "Oto", Role: team.RoleHardSupport, SteamID32: "1005", MMR: 6300},
			},
		},
		{
			ID: TeamIDBravo, Name: "Bravo Five", Tag: "BRV",
			Players: []team.Player{
				{ID: "bravo-carry", Nickname: "Rook", Role: team.RoleCarry, SteamID32: "2001", MMR: 7000},
				{ID: "bravo-mid", Nickname: "Sable", Role: team.RoleMid, SteamID32: "2002", MMR: 7100},
				{ID: "bravo-off", Nickname: "Tarn", Role: team.RoleOfflane, SteamID32: "2003", MMR: 6600},
				{ID: "bravo-soft", Nickname: "Mel", Role: team.RoleSoftSupport, SteamID32: "2004", MMR: 6200},
				{ID: "bravo-hard", Nickname: "Quill", Role: team.RoleHardSupport, SteamID32: "2005", MMR: 6000},
			},
		},
		{
			ID: TeamIDDelta, Name: "Delta Squad", Tag: "DLT",
			Players: []team.Player{
				{ID: "delta-carry", Nickname: "Ash", Role: team.RoleCarry, SteamID32: "3001", MMR: 6800},
				{ID: "delta-mid", Nickname: "Pike", Role: team.RoleMid, SteamID32: "3002", MMR: 6700},
			},
		},
	}
}

func SeedMatches() []match.Match {
	scheduled := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:           MatchIDGroupAlphaBravo,
			TeamA:        match.TeamRef{ID: TeamIDAlpha, Name: "Alpha Esports"},
			TeamB:        match.TeamRef{ID: TeamIDBravo, Name: "Bravo Five"},
			Status:       match.StatusPending,
			GroupID:      GroupIDA,
			SeriesFormat: match.FormatBo2,
			ScheduledFor: scheduled,
		},
		{
			ID:           MatchIDGroupBravoDelta,
			TeamA:        match.TeamRef{ID: TeamIDBravo, Name: "Bravo Five"},
			TeamB:        match.TeamRef{ID: TeamIDDelta, Name: "Delta Squad"},
			Status:       match.StatusPending,
			GroupID:      GroupIDA,
			SeriesFormat: match.FormatBo2,
			ScheduledFor: scheduled.Add(3 * time.Hour),
		},
		{
			ID:           MatchIDUpperR1,
			TeamA:        match.TeamRef{ID: TeamIDAlpha, Name: "Alpha Esports"},
			TeamB:        match.TeamRef{ID: TeamIDDelta, Name: "Delta Squad"},
			Status:       match.StatusPending,
			BracketType:  "upper",
			Round:        "Upper-R1",
			PlayoffRound: 1,
			SeriesFormat: match.FormatBo3,
			ScheduledFor: scheduled.Add(72 * time.Hour),
		},
	}
}

func SeedGroups() []match.Group {
	return []match.Group{
		{
			ID:   GroupIDA,
			Name: "Group A",
			Standings: map[string]match.Standing{
				TeamIDAlpha: {TeamID: TeamIDAlpha, TeamName: "Alpha Esports"},
				TeamIDBravo: {TeamID: TeamIDBravo, TeamName: "Bravo Five"},
				TeamIDDelta: {TeamID: TeamIDDelta, TeamName: "Delta Squad"},
			},
		},
	}
}

// Fixture is the JSON document accepted by LoadFixture.
type Fixture struct {
	Teams   []fixtureTeam   `json:"teams"`
	Matches []fixtureMatch  `json:"matches"`
	Groups  []fixtureGroup  `json:"groups"`
	Lineups []fixtureLineup `json:"lineups"`
}

type fixtureTeam struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Tag     string          `json:"tag"`
	Players []fixturePlayer `json:"players"`
}

type fixturePlayer struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Role      string `json:"role"`
	SteamID32 string `json:"steamId32"`
	MMR       int    `json:"mmr"`
}

type fixtureMatch struct {
	ID           string `json:"id"`
	TeamA        string `json:"teamA"`
	TeamB        string `json:"teamB"`
	GroupID      string `json:"group_id"`
	RoundID      string `json:"roundId"`
	Round        string `json:"round"`
	BracketType  string `json:"bracketType"`
	PlayoffRound int    `json:"playoffRound"`
	SeriesFormat string `json:"seriesFormat"`
}

type fixtureGroup struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

type fixtureLineup struct {
	UserID      string                       `json:"userId"`
	DisplayName string                       `json:"displayName"`
	Rounds      map[string]map[string]string `json:"rounds"`
}

// Seed is the decoded content of a fixture, ready for the repositories.
type Seed struct {
	Teams   []team.Team
	Matches []match.Match
	Groups  []match.Group
	Lineups []fantasy.UserLineups
}

// DefaultSeed returns the built-in demo tournament.
func DefaultSeed() Seed {
	return Seed{Teams: SeedTeams(), Matches: SeedMatches(), Groups: SeedGroups()}
}

// LoadFixture reads a JSON fixture. An empty path yields the default seed.
func LoadFixture(path string) (Seed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSeed(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var doc Fixture
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return Seed{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return doc.toSeed()
}

func (f Fixture) toSeed() (Seed, error) {
	var seed Seed
	names := make(map[string]string, len(f.Teams))
	for _, t := range f.Teams {
		item := team.Team{ID: t.ID, Name: t.Name, Tag: t.Tag}
		for _, p := range t.Players {
			role, _ := team.ParseRole(p.Role)
			item.Players = append(item.Players, team.Player{
				ID: p.ID, Nickname: p.Nickname, Role: role, SteamID32: p.SteamID32, MMR: p.MMR, TeamID: t.ID,
			})
		}
		if err := item.Validate(); err != nil {
			return Seed{}, fmt.Errorf("fixture team: %w", err)
		}
		names[item.ID] = item.DisplayName()
		seed.Teams = append(seed.Teams, item)
	}

	for _, m := range f.Matches {
		format, _ := match.ParseFormat(m.SeriesFormat)
		item := match.Match{
			ID:           m.ID,
			TeamA:        match.TeamRef{ID: m.TeamA, Name: names[m.TeamA]},
			TeamB:        match.TeamRef{ID: m.TeamB, Name: names[m.TeamB]},
			Status:       match.StatusPending,
			GroupID:      m.GroupID,
			RoundID:      m.RoundID,
			Round:        m.Round,
			BracketType:  m.BracketType,
			PlayoffRound: m.PlayoffRound,
			SeriesFormat: format,
		}
		if err := item.Validate(); err != nil {
			return Seed{}, fmt.Errorf("fixture match: %w", err)
		}
		seed.Matches = append(seed.Matches, item)
	}

	for _, g := range f.Groups {
		group := match.Group{ID: g.ID, Name: g.Name, Standings: make(map[string]match.Standing, len(g.Teams))}
		for _, teamID := range g.Teams {
			group.Standings[teamID] = match.Standing{TeamID: teamID, TeamName: names[teamID]}
		}
		seed.Groups = append(seed.Groups, group)
	}

	for _, l := range f.Lineups {
		item := fantasy.UserLineups{UserID: l.UserID, DisplayName: l.DisplayName}
		for roundID, picks := range l.Rounds {
			round := fantasy.RoundLineup{RoundID: fantasy.RoundID(roundID), Lineup: make(map[team.Role]fantasy.LineupPlayer, len(picks))}
			for roleName, playerID := range picks {
				role, ok := team.ParseRole(roleName)
				if !ok {
					return Seed{}, fmt.Errorf("fixture lineup %s: unknown role %q", l.UserID, roleName)
				}
				round.Lineup[role] = fantasy.LineupPlayer{ID: playerID}
			}
			item.Rounds = append(item.Rounds, round)
		}
		sort.Slice(item.Rounds, func(i, j int) bool { return item.Rounds[i].RoundID < item.Rounds[j].RoundID })
		seed.Lineups = append(seed.Lineups, item)
	}
	return seed, nil
}
