package fantasy

import (
	"testing"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

func TestClassifyRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		match match.Match
		want  RoundID
	}{
		{name: "explicit round beats group id", match: match.Match{RoundID: "playoffs_round2", GroupID: "grupa-a"}, want: PlayoffRound(2)},
		{name: "unknown explicit round falls through to group", match: match.Match{RoundID: "week-3", GroupID: "grupa-b"}, want: RoundGroupStage},
		{name: "polish group id", match: match.Match{GroupID: "grupa-c"}, want: RoundGroupStage},
		{name: "wildcard bracket", match: match.Match{BracketType: "wildcard", Round: "wildcard-R1"}, want: RoundWildcards},
		{name: "upper label round", match: match.Match{Round: "upper-R3"}, want: PlayoffRound(3)},
		{name: "lower bracket numeric round", match: match.Match{BracketType: "lower", PlayoffRound: 5}, want: PlayoffRound(5)},
		{name: "lower round clamped", match: match.Match{Round: "lower-R9"}, want: PlayoffRound(6)},
		{name: "grand final", match: match.Match{BracketType: "grand_final"}, want: RoundPlayoffsGrandFinal},
		{name: "semifinal label", match: match.Match{Round: "upper-semifinal"}, want: RoundPlayoffsSemifinals},
		{name: "default", match: match.Match{}, want: RoundGroupStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRound(tt.match); got != tt.want {
				t.Fatalf("ClassifyRound()=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PointsInput
		want float64
	}{
		{
			name: "carry winner with gold",
			in:   PointsInput{Role: team.RoleCarry, Kills: 10, Deaths: 2, Gold: 2500, TeamWon: true},
			want: 10 + 25 - 5 + 2.5,
		},
		{
			name: "hard support loser",
			in:   PointsInput{Role: team.RoleHardSupport, Kills: 1, Deaths: 4, Assists: 12},
			want: 1 - 10 + 60,
		},
		{
			name: "structures and roshan",
			in: PointsInput{
				Role:              team.RoleMid,
				TeamWon:           true,
				TeamRoshanKills:   1,
				EnemyBarracksBits: 0b110000,
				EnemyTowerBits:    0b00000000111,
				HasStructureData:  true,
			},
			want: 10 + 20 + 4*10 + 8*10,
		},
		{
			name: "unknown role gets team part only",
			in:   PointsInput{Kills: 20, TeamWon: true},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Points(tt.in); got != tt.want {
				t.Fatalf("Points()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestDestroyedStructures(t *testing.T) {
	t.Parallel()

	if got := DestroyedStructures(0b111111, 6); got != 0 {
		t.Fatalf("expected 0 destroyed, got %d", got)
	}
	if got := DestroyedStructures(0, 11); got != 11 {
		t.Fatalf("expected 11 destroyed, got %d", got)
	}
}
