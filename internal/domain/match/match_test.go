package match

import "testing"

func TestResolveSeries(t *testing.T) {
	t.Parallel()

	groupMatch := Match{ID: "m1", TeamA: TeamRef{ID: "a"}, TeamB: TeamRef{ID: "b"}, GroupID: "grupa-a"}
	playoffMatch := Match{ID: "m2", TeamA: TeamRef{ID: "a"}, TeamB: TeamRef{ID: "b"}}
	bo5 := playoffMatch
	bo5.SeriesFormat = FormatBo5
	bo1 := playoffMatch
	bo1.SeriesFormat = FormatBo1

	tests := []struct {
		name       string
		match      Match
		winners    []string
		wantStatus Status
		wantWinner string
		wantA      int
		wantB      int
	}{
		{name: "no games", match: groupMatch, winners: nil, wantStatus: StatusPending},
		{name: "bo2 draw", match: groupMatch, winners: []string{"a", "b"}, wantStatus: StatusCompleted, wantWinner: "", wantA: 1, wantB: 1},
		{name: "bo2 sweep", match: groupMatch, winners: []string{"b", "b"}, wantStatus: StatusCompleted, wantWinner: "b", wantB: 2},
		{name: "bo2 one game", match: groupMatch, winners: []string{"a"}, wantStatus: StatusPending, wantA: 1},
		{name: "bo3 one-nil pending", match: playoffMatch, winners: []string{"a"}, wantStatus: StatusPending, wantA: 1},
		{name: "bo3 two-one", match: playoffMatch, winners: []string{"a", "b", "a"}, wantStatus: StatusCompleted, wantWinner: "a", wantA: 2, wantB: 1},
		{name: "bo5 two-two pending", match: bo5, winners: []string{"a", "b", "a", "b"}, wantStatus: StatusPending, wantA: 2, wantB: 2},
		{name: "bo1", match: bo1, winners: []string{"b"}, wantStatus: StatusCompleted, wantWinner: "b", wantB: 1},
		{name: "unknown winner ignored", match: playoffMatch, winners: []string{"x", "a"}, wantStatus: StatusPending, wantA: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSeries(tt.match, tt.winners)
			if got.Status != tt.wantStatus || got.WinnerID != tt.wantWinner || got.TeamAScore != tt.wantA || got.TeamBScore != tt.wantB {
				t.Fatalf("ResolveSeries()=%+v want status=%s winner=%q score=%d-%d", got, tt.wantStatus, tt.wantWinner, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestReplayStandings(t *testing.T) {
	t.Parallel()

	groups := []Group{
		{ID: "grupa-b", Standings: map[string]Standing{"c": {TeamID: "c", Points: 9}, "d": {TeamID: "d"}}},
		{ID: "grupa-a", Standings: map[string]Standing{
			"a": {TeamID: "a", Points: 42, Wins: 7, HeadToHead: map[string]HeadToHead{"z": HeadToHeadWin}},
			"b": {TeamID: "b"},
		}},
	}
	matches := []Match{
		{ID: "m2", Status: StatusCompleted, TeamA: TeamRef{ID: "a", Score: 1}, TeamB: TeamRef{ID: "b", Score: 1}},
		{ID: "m1", Status: StatusCompleted, TeamA: TeamRef{ID: "a", Score: 2}, TeamB: TeamRef{ID: "b", Score: 0}},
		{ID: "m3", Status: StatusPending, TeamA: TeamRef{ID: "c", Score: 1}, TeamB: TeamRef{ID: "d"}},
		{ID: "m4", Status: StatusCompleted, TeamA: TeamRef{ID: "a", Score: 2}, TeamB: TeamRef{ID: "c"}},
	}

	out := ReplayStandings(groups, matches)
	if out[0].ID != "grupa-a" {
		t.Fatalf("expected groups sorted by id, got %s", out[0].ID)
	}

	a := out[0].Standings["a"]
	b := out[0].Standings["b"]
	if a.Points != 3 || a.Wins != 1 || a.Draws != 1 || a.MatchesPlayed != 2 {
		t.Fatalf("unexpected standing for a: %+v", a)
	}
	if b.Points != 1 || b.Losses != 1 || b.Draws != 1 {
		t.Fatalf("unexpected standing for b: %+v", b)
	}
	if a.HeadToHead["b"] != HeadToHeadDraw || b.HeadToHead["a"] != HeadToHeadDraw {
		t.Fatalf("expected draw head to head from the later match, got %v %v", a.HeadToHead, b.HeadToHead)
	}
	if _, stale := a.HeadToHead["z"]; stale {
		t.Fatalf("expected head to head reset")
	}
	if c := out[1].Standings["c"]; c.Points != 0 || c.MatchesPlayed != 0 {
		t.Fatalf("expected untouched reset row for c, got %+v", c)
	}
	if groups[1].Standings["a"].Points != 42 {
		t.Fatalf("input groups must not be mutated")
	}

	ranked := out[0].Ranked()
	if ranked[0].TeamID != "a" {
		t.Fatalf("expected a first, got %s", ranked[0].TeamID)
	}
}

func TestMatch_EffectiveFormat(t *testing.T) {
	t.Parallel()

	if got := (Match{GroupID: "g"}).EffectiveFormat(); got != FormatBo2 {
		t.Fatalf("expected bo2 for group match, got %s", got)
	}
	if got := (Match{}).EffectiveFormat(); got != FormatBo3 {
		t.Fatalf("expected bo3 default, got %s", got)
	}
	if got := (Match{GroupID: "g", SeriesFormat: "BO5"}).EffectiveFormat(); got != FormatBo5 {
		t.Fatalf("expected explicit bo5, got %s", got)
	}
}
