package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

func TestLoadFixture_EmptyPathUsesDefaultSeed(t *testing.T) {
	t.Parallel()

	seed, err := LoadFixture("")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(seed.Teams) != 3 || len(seed.Matches) != 3 || len(seed.Groups) != 1 {
		t.Fatalf("unexpected default seed sizes: teams=%d matches=%d groups=%d", len(seed.Teams), len(seed.Matches), len(seed.Groups))
	}
}

func TestLoadFixture_DecodesDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixture.json")
	doc := `{
		"teams": [
			{"id": "t1", "name": "One", "players": [{"id": "p1", "nickname": "Neo", "role": "carry", "steamId32": "11"}]},
			{"id": "t2", "name": "Two"}
		],
		"matches": [{"id": "m1", "teamA": "t1", "teamB": "t2", "group_id": "g1", "seriesFormat": "BO2"}],
		"groups": [{"id": "g1", "name": "Group 1", "teams": ["t1", "t2"]}],
		"lineups": [{"userId": "u1", "displayName": "User", "rounds": {"group_stage": {"Carry": "p1"}}}]
	}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	seed, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if seed.Teams[0].Players[0].Role != team.RoleCarry {
		t.Fatalf("unexpected role: %q", seed.Teams[0].Players[0].Role)
	}
	if seed.Matches[0].SeriesFormat != match.FormatBo2 || seed.Matches[0].TeamA.Name != "One" {
		t.Fatalf("unexpected match: %+v", seed.Matches[0])
	}
	if _, ok := seed.Groups[0].Standings["t2"]; !ok {
		t.Fatalf("expected t2 in group standings")
	}
	if got := seed.Lineups[0].Rounds[0].Lineup[team.RoleCarry].ID; got != "p1" {
		t.Fatalf("unexpected lineup player: %q", got)
	}
}

func TestLoadFixture_RejectsInvalidMatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(`{"matches": [{"id": "m1", "teamA": "t1", "teamB": "t1"}]}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatalf("expected error for match with identical teams")
	}
}
