package team

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is one of the five Dota 2 lane roles a registered player fills.
type Role string

const (
	RoleCarry       Role = "Carry"
	RoleMid         Role = "Mid"
	RoleOfflane     Role = "Offlane"
	RoleSoftSupport Role = "Soft Support"
	RoleHardSupport Role = "Hard Support"
)

var Roles = []Role{RoleCarry, RoleMid, RoleOfflane, RoleSoftSupport, RoleHardSupport}

// RosterSize is the number of players a team registers with.
const RosterSize = 5

// StatusNotVerified marks a team registered but not yet checked by an admin.
const StatusNotVerified = "Not Verified"

func ParseRole(value string) (Role, bool) {
	value = strings.TrimSpace(value)
	for _, role := range Roles {
		if strings.EqualFold(string(role), value) {
			return role, true
		}
	}
	return "", false
}

// Player is a rostered tournament player.
type Player struct {
	ID       string
	Nickname string
	Role     Role
	// SteamID32 is the OpenDota account id in decimal form.
	SteamID32 string
	SteamID   string
	MMR       int
	TeamID    string
}

// Team is a registered tournament team with its roster.
type Team struct {
	ID        string
	Name      string
	Tag       string
	CaptainID string
	Status    string
	Players   []Player
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// RosterProblems lists why the roster cannot be registered: it must have
// RosterSize players covering every role once, each with a distinct
// numeric SteamID32.
func (t Team) RosterProblems() []string {
	var problems []string
	if len(t.Players) != RosterSize {
		problems = append(problems, fmt.Sprintf("roster must have %d players, got %d", RosterSize, len(t.Players)))
	}
	roles := make(map[Role]bool, len(t.Players))
	accounts := make(map[string]bool, len(t.Players))
	for i, p := range t.Players {
		if strings.TrimSpace(p.Nickname) == "" {
			problems = append(problems, fmt.Sprintf("players[%d].nickname is required", i))
		}
		if _, ok := ParseRole(string(p.Role)); !ok {
			problems = append(problems, fmt.Sprintf("players[%d].role %q is not a known role", i, p.Role))
		} else if roles[p.Role] {
			problems = append(problems, fmt.Sprintf("role %s is taken by more than one player", p.Role))
		}
		roles[p.Role] = true

		account := strings.TrimSpace(p.SteamID32)
		if _, err := strconv.ParseUint(account, 10, 32); err != nil {
			problems = append(problems, fmt.Sprintf("players[%d].steamId32 %q is not a 32-bit account id", i, account))
			continue
		}
		if accounts[account] {
			problems = append(problems, fmt.Sprintf("steamId32 %s is listed more than once", account))
		}
		accounts[account] = true
	}
	return problems
}

// DisplayName prefers the name, then the tag, then the id.
func (t Team) DisplayName() string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	if tag := strings.TrimSpace(t.Tag); tag != "" {
		return tag
	}
	return t.ID
}

// AccountSet returns the roster's account ids.
func (t Team) AccountSet() map[string]struct{} {
	out := make(map[string]struct{}, len(t.Players))
	for _, p := range t.Players {
		if id := strings.TrimSpace(p.SteamID32); id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

func (t Team) PlayerByAccount(accountID string) (Player, bool) {
	for _, p := range t.Players {
		if p.SteamID32 != "" && p.SteamID32 == accountID {
			if p.TeamID == "" {
				p.TeamID = t.ID
			}
			return p, true
		}
	}
	return Player{}, false
}

// Index maps ids to teams and player ids to players.
type Index struct {
	Teams   map[string]Team
	Players map[string]Player
}

func NewIndex(teams []Team) Index {
	idx := Index{
		Teams:   make(map[string]Team, len(teams)),
		Players: make(map[string]Player, len(teams)*5),
	}
	for _, t := range teams {
		idx.Teams[t.ID] = t
		for _, p := range t.Players {
			if p.TeamID == "" {
				p.TeamID = t.ID
			}
			idx.Players[p.ID] = p
		}
	}
	return idx
}

func (idx Index) TeamName(teamID string) string {
	if t, ok := idx.Teams[teamID]; ok {
		return t.DisplayName()
	}
	return teamID
}

func (idx Index) PlayerName(playerID string) string {
	if p, ok := idx.Players[playerID]; ok && p.Nickname != "" {
		return p.Nickname
	}
	return playerID
}
