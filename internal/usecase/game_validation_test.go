package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
)

func TestValidateGameData_ValidGame(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ValidateGameData(alphaBravoGame("7001", true)))
}

func TestValidateGameData_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	bundle := game.Bundle{
		Game: game.Game{ID: " ", Duration: 0},
		Performances: []game.Performance{
			{PlayerID: "p1", TeamID: "t1", Kills: -1},
			{PlayerID: "", TeamID: "", Deaths: -2, Assists: -3, FantasyPoints: math.NaN()},
		},
	}

	got := ValidateGameData(bundle)
	assert.Equal(t, []string{
		"Game ID is required",
		"Game duration must be positive",
		"Performance 0: kills must be non-negative number",
		"Performance 1: playerId is required",
		"Performance 1: teamId is required",
		"Performance 1: deaths must be non-negative number",
		"Performance 1: assists must be non-negative number",
		"Performance 1: fantasyPoints must be a number",
	}, got)
}

func TestValidateGameData_RequiresPerformances(t *testing.T) {
	t.Parallel()

	got := ValidateGameData(game.Bundle{Game: game.Game{ID: "1", Duration: 1800}})
	assert.Equal(t, []string{"At least one performance is required"}, got)
}

func TestPracticeGameReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bundle func() game.Bundle
		want   string
	}{
		{
			name: "no combat at all",
			bundle: func() game.Bundle {
				b := alphaBravoGame("1", true)
				for i := range b.Performances {
					b.Performances[i].Kills, b.Performances[i].Deaths, b.Performances[i].Assists = 0, 0, 0
				}
				return b
			},
			want: "Match appears to be a practice game: No kills, deaths, or assists recorded",
		},
		{
			name: "low kill rate in long game",
			bundle: func() game.Bundle {
				b := alphaBravoGame("1", true)
				for i := range b.Performances {
					b.Performances[i].Kills = 0
				}
				b.Performances[0].Kills = 2
				return b
			},
			want: "Match appears to be a practice game: Very low activity (0.05 kills/min) for 40min game",
		},
		{
			name: "identical low stats",
			bundle: func() game.Bundle {
				b := alphaBravoGame("1", true)
				b.Game.Duration = 600
				for i := range b.Performances {
					b.Performances[i].Kills = 0
					b.Performances[i].Deaths = i % 2
					b.Performances[i].Assists = 1
				}
				return b
			},
			want: "Match appears to be a practice game: All players have nearly identical low stats",
		},
		{
			name: "low hero damage",
			bundle: func() game.Bundle {
				b := alphaBravoGame("1", true)
				for i := range b.Performances {
					b.Performances[i].HeroDamage = 500
				}
				return b
			},
			want: "Match appears to be a practice game: Very low total hero damage (5000) for 40min game",
		},
		{
			name: "short quiet game",
			bundle: func() game.Bundle {
				b := alphaBravoGame("1", true)
				b.Game.Duration = 200
				b.Performances = b.Performances[:2]
				b.Performances[0].Kills, b.Performances[0].Deaths, b.Performances[0].Assists = 1, 0, 1
				b.Performances[1].Kills, b.Performances[1].Deaths, b.Performances[1].Assists = 0, 1, 0
				return b
			},
			want: "Match appears to be a practice game: Very short duration with minimal activity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bundle := tc.bundle()
			assert.Contains(t, PracticeGameReasons(bundle), tc.want)
			assert.True(t, IsPracticeGame(bundle))
			assert.Contains(t, ValidateGameData(bundle), tc.want)
		})
	}
}

func TestIsPracticeGame_RegularGame(t *testing.T) {
	t.Parallel()

	assert.False(t, IsPracticeGame(alphaBravoGame("7001", false)))
}
