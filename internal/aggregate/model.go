// Package aggregate folds a tournament snapshot into the derived statistics
// documents. Everything here is pure and deterministic for a given input.
package aggregate

import (
	"sort"
	"strconv"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/stats"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

// GameData is a game with all of its performances.
type GameData struct {
	Game         game.Game
	Performances []game.Performance
}

// MatchData is a completed match with its games.
type MatchData struct {
	Match match.Match
	Games []GameData
}

// Snapshot is everything the engine reads.
type Snapshot struct {
	Teams   []team.Team
	Matches []MatchData
	Now     time.Time
}

type Result struct {
	Tournament stats.TournamentStats
	Players    []stats.PlayerStats
	Teams      []stats.TeamStats
}

// perfRow is a performance flattened with its game context.
type perfRow struct {
	game.Performance
	MatchID  string
	GameID   string
	Duration int
}

func (r perfRow) key() string { return r.GameID + "/" + r.PlayerID }

func (r perfRow) gameKey() string { return r.GameID }

// gameRow is a game with the names of its parent match's teams.
type gameRow struct {
	game.Game
	TeamA string
	TeamB string
}

// view is the flattened snapshot shared by every catalog.
type view struct {
	index   team.Index
	matches []match.Match
	games   []gameRow
	perfs   []perfRow
	byGame  map[string][]perfRow
	gameMap map[string]gameRow
}

func newView(s Snapshot) view {
	v := view{
		index:   team.NewIndex(s.Teams),
		byGame:  make(map[string][]perfRow),
		gameMap: make(map[string]gameRow),
	}

	matches := make([]MatchData, len(s.Matches))
	copy(matches, s.Matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Match.ID < matches[j].Match.ID })

	for _, md := range matches {
		v.matches = append(v.matches, md.Match)
		games := make([]GameData, len(md.Games))
		copy(games, md.Games)
		sort.SliceStable(games, func(i, j int) bool { return games[i].Game.ID < games[j].Game.ID })

		for _, gd := range games {
			g := gd.Game
			if g.MatchID == "" {
				g.MatchID = md.Match.ID
			}
			row := gameRow{Game: g, TeamA: teamLabel(v.index, md.Match.TeamA), TeamB: teamLabel(v.index, md.Match.TeamB)}
			v.games = append(v.games, row)
			v.gameMap[g.ID] = row

			for _, p := range gd.Performances {
				pr := perfRow{Performance: p, MatchID: g.MatchID, GameID: g.ID, Duration: g.Duration}
				v.perfs = append(v.perfs, pr)
				v.byGame[g.ID] = append(v.byGame[g.ID], pr)
			}
		}
	}
	return v
}

func teamLabel(idx team.Index, ref match.TeamRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	if ref.ID == "" {
		return "Unknown"
	}
	return idx.TeamName(ref.ID)
}

// playerLabel names a roster player by nickname and anyone else by account.
func (v view) playerLabel(p game.Performance) string {
	if pl, ok := v.index.Players[p.PlayerID]; ok && pl.Nickname != "" {
		return pl.Nickname
	}
	if p.AccountID != 0 {
		return "Player " + strconv.FormatInt(p.AccountID, 10)
	}
	return p.PlayerID
}

// Build computes every derived document from s.
func Build(s Snapshot) Result {
	v := newView(s)
	now := s.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	tournament := buildTournament(v, len(s.Teams))
	tournament.LastUpdated = now

	players := buildPlayers(v)
	for i := range players {
		players[i].LastUpdated = now
	}

	teams := buildTeams(v, s.Teams)
	for i := range teams {
		teams[i].LastUpdated = now
	}

	return Result{Tournament: tournament, Players: players, Teams: teams}
}
