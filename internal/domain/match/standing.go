package match

import "sort"

type HeadToHead string

const (
	HeadToHeadWin  HeadToHead = "win"
	HeadToHeadLoss HeadToHead = "loss"
	HeadToHeadDraw HeadToHead = "draw"
)

// Standing is one team's row inside a group table. Points equal games won.
type Standing struct {
	TeamID        string
	TeamName      string
	Points        int
	Wins          int
	Losses        int
	Draws         int
	MatchesPlayed int
	HeadToHead    map[string]HeadToHead
}

type Group struct {
	ID        string
	Name      string
	Standings map[string]Standing
}

func (g Group) Contains(teamA, teamB string) bool {
	_, okA := g.Standings[teamA]
	_, okB := g.Standings[teamB]
	return okA && okB
}

func (g *Group) reset() {
	for teamID, row := range g.Standings {
		g.Standings[teamID] = Standing{TeamID: row.TeamID, TeamName: row.TeamName, HeadToHead: map[string]HeadToHead{}}
	}
}

func (g *Group) apply(m Match) {
	a := g.Standings[m.TeamA.ID]
	b := g.Standings[m.TeamB.ID]
	if a.HeadToHead == nil {
		a.HeadToHead = map[string]HeadToHead{}
	}
	if b.HeadToHead == nil {
		b.HeadToHead = map[string]HeadToHead{}
	}

	a.MatchesPlayed++
	b.MatchesPlayed++
	a.Points += m.TeamA.Score
	b.Points += m.TeamB.Score

	switch {
	case m.TeamA.Score == m.TeamB.Score:
		a.Draws++
		b.Draws++
		a.HeadToHead[m.TeamB.ID] = HeadToHeadDraw
		b.HeadToHead[m.TeamA.ID] = HeadToHeadDraw
	case m.TeamA.Score > m.TeamB.Score:
		a.Wins++
		b.Losses++
		a.HeadToHead[m.TeamB.ID] = HeadToHeadWin
		b.HeadToHead[m.TeamA.ID] = HeadToHeadLoss
	default:
		b.Wins++
		a.Losses++
		b.HeadToHead[m.TeamA.ID] = HeadToHeadWin
		a.HeadToHead[m.TeamB.ID] = HeadToHeadLoss
	}

	g.Standings[m.TeamA.ID] = a
	g.Standings[m.TeamB.ID] = b
}

// ReplayStandings resets every group and replays all completed matches in
// id order. A match counts for the first group (by id) whose table holds
// both teams; matches matching no group are ignored. The input is not mutated.
func ReplayStandings(groups []Group, matches []Match) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		clone := Group{ID: g.ID, Name: g.Name, Standings: make(map[string]Standing, len(g.Standings))}
		for teamID, row := range g.Standings {
			if row.TeamID == "" {
				row.TeamID = teamID
			}
			clone.Standings[teamID] = row
		}
		clone.reset()
		out[i] = clone
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	ordered := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == StatusCompleted {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, m := range ordered {
		for i := range out {
			if out[i].Contains(m.TeamA.ID, m.TeamB.ID) {
				out[i].apply(m)
				break
			}
		}
	}
	return out
}

// Ranked orders a table by points, then wins, then fewer losses, then team id.
func (g Group) Ranked() []Standing {
	rows := make([]Standing, 0, len(g.Standings))
	for _, row := range g.Standings {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Losses != rows[j].Losses {
			return rows[i].Losses < rows[j].Losses
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	return rows
}
