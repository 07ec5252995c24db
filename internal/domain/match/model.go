package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// NormalizeStatus folds legacy values ("upcoming", "live", "scheduled") into pending.
func NormalizeStatus(value string) Status {
	if strings.EqualFold(strings.TrimSpace(value), string(StatusCompleted)) {
		return StatusCompleted
	}
	return StatusPending
}

type Format string

const (
	FormatBo1 Format = "bo1"
	FormatBo2 Format = "bo2"
	FormatBo3 Format = "bo3"
	FormatBo5 Format = "bo5"
)

func ParseFormat(value string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatBo1:
		return FormatBo1, true
	case FormatBo2:
		return FormatBo2, true
	case FormatBo3:
		return FormatBo3, true
	case FormatBo5:
		return FormatBo5, true
	default:
		return "", false
	}
}

type TeamRef struct {
	ID    string
	Name  string
	Score int
}

// Match is a scheduled series between two teams. Its score and status are
// derived from the games saved under it.
type Match struct {
	ID           string
	TeamA        TeamRef
	TeamB        TeamRef
	Status       Status
	GroupID      string
	RoundID      string
	Round        string
	BracketType  string
	PlayoffRound int
	SeriesFormat Format
	GameIDs      []string
	WinnerID     string
	ScheduledFor time.Time
	CompletedAt  *time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamA.ID == "" || m.TeamB.ID == "" {
		return fmt.Errorf("match %s: both team ids are required", m.ID)
	}
	if m.TeamA.ID == m.TeamB.ID {
		return fmt.Errorf("match %s: teams must differ", m.ID)
	}
	return nil
}

// EffectiveFormat falls back to bo2 for group matches and bo3 otherwise.
func (m Match) EffectiveFormat() Format {
	if format, ok := ParseFormat(string(m.SeriesFormat)); ok {
		return format
	}
	if strings.TrimSpace(m.GroupID) != "" {
		return FormatBo2
	}
	return FormatBo3
}

func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (m.TeamA.ID == teamID || m.TeamB.ID == teamID)
}

func (m Match) HasGame(gameID string) bool {
	for _, id := range m.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}

func (m Match) OpponentOf(teamID string) TeamRef {
	if m.TeamA.ID == teamID {
		return m.TeamB
	}
	return m.TeamA
}

// Result is the derived score of a match.
type Result struct {
	TeamAScore  int
	TeamBScore  int
	Status      Status
	WinnerID    string
	CompletedAt *time.Time
}
