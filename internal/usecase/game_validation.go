package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/game"
)

// ValidateGameData lists every problem with a game bundle. An empty result
// means the bundle may be saved.
func ValidateGameData(bundle game.Bundle) []string {
	var errs []string
	g := bundle.Game

	if strings.TrimSpace(g.ID) == "" {
		errs = append(errs, "Game ID is required")
	}
	if g.Duration <= 0 {
		errs = append(errs, "Game duration must be positive")
	}

	if len(bundle.Performances) == 0 {
		errs = append(errs, "At least one performance is required")
	}
	for i, p := range bundle.Performances {
		if strings.TrimSpace(p.PlayerID) == "" {
			errs = append(errs, fmt.Sprintf("Performance %d: playerId is required", i))
		}
		if strings.TrimSpace(p.TeamID) == "" {
			errs = append(errs, fmt.Sprintf("Performance %d: teamId is required", i))
		}
		if p.Kills < 0 {
			errs = append(errs, fmt.Sprintf("Performance %d: kills must be non-negative number", i))
		}
		if p.Deaths < 0 {
			errs = append(errs, fmt.Sprintf("Performance %d: deaths must be non-negative number", i))
		}
		if p.Assists < 0 {
			errs = append(errs, fmt.Sprintf("Performance %d: assists must be non-negative number", i))
		}
		if math.IsNaN(p.FantasyPoints) || math.IsInf(p.FantasyPoints, 0) {
			errs = append(errs, fmt.Sprintf("Performance %d: fantasyPoints must be a number", i))
		}
	}

	if g.Duration > 0 && len(bundle.Performances) > 0 {
		errs = append(errs, PracticeGameReasons(bundle)...)
	}
	return errs
}

// IsPracticeGame reports whether the game looks like a scrim, a practice
// lobby or a connection test.
func IsPracticeGame(bundle game.Bundle) bool {
	return len(PracticeGameReasons(bundle)) > 0
}

func PracticeGameReasons(bundle game.Bundle) []string {
	var reasons []string
	perfs := bundle.Performances

	kills, deaths, assists, heroDamage := 0, 0, 0, 0
	for _, p := range perfs {
		kills += p.Kills
		deaths += p.Deaths
		assists += p.Assists
		heroDamage += p.HeroDamage
	}
	minutes := bundle.Game.DurationMinutes()

	if kills == 0 && deaths == 0 && assists == 0 {
		reasons = append(reasons, "Match appears to be a practice game: No kills, deaths, or assists recorded")
	}

	if minutes > 15 {
		if perMinute := float64(kills) / minutes; perMinute < 0.1 {
			reasons = append(reasons, fmt.Sprintf(
				"Match appears to be a practice game: Very low activity (%.2f kills/min) for %dmin game",
				perMinute, int(math.Round(minutes)),
			))
		}
	}

	if len(perfs) >= 8 {
		uniqueKills := make(map[int]struct{})
		uniqueDeaths := make(map[int]struct{})
		uniqueAssists := make(map[int]struct{})
		for _, p := range perfs {
			uniqueKills[p.Kills] = struct{}{}
			uniqueDeaths[p.Deaths] = struct{}{}
			uniqueAssists[p.Assists] = struct{}{}
		}
		if len(uniqueKills) <= 2 && len(uniqueDeaths) <= 2 && len(uniqueAssists) <= 2 && kills <= 3 {
			reasons = append(reasons, "Match appears to be a practice game: All players have nearly identical low stats")
		}
	}

	if minutes > 20 && heroDamage < 10000 {
		reasons = append(reasons, fmt.Sprintf(
			"Match appears to be a practice game: Very low total hero damage (%d) for %dmin game",
			heroDamage, int(math.Round(minutes)),
		))
	}

	if minutes < 5 && kills+deaths+assists < 5 {
		reasons = append(reasons, "Match appears to be a practice game: Very short duration with minimal activity")
	}
	return reasons
}
