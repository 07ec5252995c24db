package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

func TestGameIDsFromDoc_NormalizesAndDedupes(t *testing.T) {
	t.Parallel()

	got := gameIDsFromDoc([]any{int64(8123456789), "8123456789", float64(8000000001), " 8000000002 ", ""})
	assert.Equal(t, []string{"8123456789", "8000000001", "8000000002"}, got)
}

func TestGameIDValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(8123456789), gameIDValue("8123456789"))
	assert.Equal(t, "manual-1", gameIDValue("manual-1"))
}

func TestMatchDoc_RoundTrip(t *testing.T) {
	t.Parallel()

	completed := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	in := match.Match{
		ID:           "m-1",
		TeamA:        match.TeamRef{ID: "alpha", Name: "Alpha", Score: 2},
		TeamB:        match.TeamRef{ID: "bravo", Name: "Bravo", Score: 1},
		Status:       match.StatusCompleted,
		GroupID:      "grupa-a",
		SeriesFormat: match.FormatBo3,
		GameIDs:      []string{"8123456789", "8123456790"},
		WinnerID:     "alpha",
		ScheduledFor: time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC),
		CompletedAt:  &completed,
	}

	doc := matchToDoc(in)
	assert.Equal(t, []any{int64(8123456789), int64(8123456790)}, doc.GameIDs)
	require.NotNil(t, doc.CompletedAt)
	assert.Equal(t, "2026-03-14T18:30:00Z", *doc.CompletedAt)

	out := matchFromDoc("m-1", doc)
	assert.Equal(t, in, out)
}

func TestMatchFromDoc_LegacyStatusAndMissingWinner(t *testing.T) {
	t.Parallel()

	out := matchFromDoc("m-2", matchDoc{Status: "upcoming", SeriesFormat: " BO2 "})
	assert.Equal(t, match.StatusPending, out.Status)
	assert.Equal(t, match.FormatBo2, out.SeriesFormat)
	assert.Empty(t, out.WinnerID)
	assert.Nil(t, out.CompletedAt)
	assert.Empty(t, out.GameIDs)
}

func TestResultUpdates(t *testing.T) {
	t.Parallel()

	pending := resultUpdates(match.Result{TeamAScore: 1, Status: match.StatusPending})
	assert.Equal(t, 1, pending["teamA.score"])
	assert.Equal(t, 0, pending["teamB.score"])
	assert.Equal(t, "pending", pending["status"])
	assert.Nil(t, pending["winnerId"])
	assert.Nil(t, pending["completed_at"])

	at := time.Date(2026, 3, 14, 20, 0, 0, 0, time.FixedZone("CET", 3600))
	done := resultUpdates(match.Result{TeamAScore: 2, TeamBScore: 0, Status: match.StatusCompleted, WinnerID: "alpha", CompletedAt: &at})
	assert.Equal(t, "alpha", done["winnerId"])
	assert.Equal(t, "2026-03-14T19:00:00Z", done["completed_at"])
}

func TestGroupDoc_FillsTeamIDFromKey(t *testing.T) {
	t.Parallel()

	g := groupFromDoc("grupa-a", groupDoc{
		Name: "Grupa A",
		Standings: map[string]standingDoc{
			"alpha": {Points: 3, HeadToHead: map[string]string{"bravo": "win"}},
		},
	})
	row := g.Standings["alpha"]
	assert.Equal(t, "alpha", row.TeamID)
	assert.Equal(t, match.HeadToHeadWin, row.HeadToHead["bravo"])

	back := standingsToDoc(g.Standings)
	assert.Equal(t, "win", back["alpha"].HeadToHead["bravo"])
	assert.Equal(t, 3, back["alpha"].Points)
}

func TestGameDoc_RoundTrip(t *testing.T) {
	t.Parallel()

	in := game.Game{
		ID:          "8123456789",
		MatchID:     "m-1",
		RadiantWin:  true,
		Duration:    2400,
		StartTime:   1773500000,
		PicksBans:   []game.PickBan{{IsPick: true, HeroID: 1, Team: 0, Order: 7}},
		RadiantTeam: game.TeamSnapshot{ID: "alpha", Name: "Alpha"},
		DireTeam:    game.TeamSnapshot{ID: "bravo", Name: "Bravo"},
		IsParsed:    true,
	}
	assert.Equal(t, in, gameFromDoc(in.ID, in.MatchID, gameToDoc(in)))
}

func TestPerformanceDoc_RoundTrip(t *testing.T) {
	t.Parallel()

	in := game.Performance{
		PlayerID:          "p-1",
		TeamID:            "alpha",
		AccountID:         123456,
		HeroID:            74,
		Kills:             12,
		Deaths:            3,
		Assists:           9,
		FirstBloodClaimed: true,
		Win:               true,
		FantasyPoints:     87.5,
	}
	assert.Equal(t, in, performanceFromDoc(performanceToDoc(in)))
}

func TestPlayerDoc_RoundTrip(t *testing.T) {
	t.Parallel()

	in := team.Player{ID: "t1-mid", Nickname: "Vex", Role: team.RoleSoftSupport, SteamID32: "1002", MMR: 7400}
	got := playerFromDoc(in.ID, "t1", playerToDoc(in))
	in.TeamID = "t1"
	assert.Equal(t, in, got)

	doc := teamToDoc(team.Team{ID: "t1", Name: "Alpha", Tag: "ALP", CaptainID: "uid-1", Status: team.StatusNotVerified})
	assert.Equal(t, teamDoc{Name: "Alpha", Tag: "ALP", CaptainID: "uid-1", Status: "Not Verified"}, doc)
}
