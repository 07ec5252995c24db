package fantasy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/match"
)

type RoundID string

const (
	RoundPreSeason          RoundID = "pre_season"
	RoundGroupStage         RoundID = "group_stage"
	RoundWildcards          RoundID = "wildcards"
	RoundPlayoffsSemifinals RoundID = "playoffs_semifinals"
	RoundPlayoffsGrandFinal RoundID = "playoffs_grandfinals"

	maxPlayoffRound = 6
)

// Rounds lists every round a lineup can be saved for, in tournament order.
var Rounds = []RoundID{
	RoundPreSeason,
	RoundGroupStage,
	RoundWildcards,
	PlayoffRound(1), PlayoffRound(2), PlayoffRound(3),
	PlayoffRound(4), PlayoffRound(5), PlayoffRound(6),
	RoundPlayoffsSemifinals,
	RoundPlayoffsGrandFinal,
}

func PlayoffRound(n int) RoundID {
	if n < 1 {
		n = 1
	}
	if n > maxPlayoffRound {
		n = maxPlayoffRound
	}
	return RoundID(fmt.Sprintf("playoffs_round%d", n))
}

func IsKnownRound(value string) bool {
	for _, r := range Rounds {
		if string(r) == value {
			return true
		}
	}
	return false
}

var roundSuffixRegex = regexp.MustCompile(`(?i)-?r(\d+)$`)

// ClassifyRound maps a match to the fantasy round it scores for:
//  1. a known explicit RoundID
//  2. any GroupID (e.g. "grupa-a") is the group stage
//  3. the playoff bracket: wildcard, grand final, semifinal, then
//     upper/lower round N taken from PlayoffRound or the "-R<n>" label suffix
//  4. group stage otherwise
func ClassifyRound(m match.Match) RoundID {
	if explicit := strings.TrimSpace(m.RoundID); IsKnownRound(explicit) {
		return RoundID(explicit)
	}
	if strings.TrimSpace(m.GroupID) != "" {
		return RoundGroupStage
	}

	bracket := strings.ToLower(strings.TrimSpace(m.BracketType))
	label := strings.ToLower(strings.TrimSpace(m.Round))

	switch {
	case bracket == "wildcard" || strings.HasPrefix(label, "wildcard"):
		return RoundWildcards
	case bracket == "grand_final" || strings.Contains(label, "grand"):
		return RoundPlayoffsGrandFinal
	case bracket == "semifinal" || strings.Contains(label, "semi"):
		return RoundPlayoffsSemifinals
	}

	if bracket == "upper" || bracket == "lower" || strings.HasPrefix(label, "upper") || strings.HasPrefix(label, "lower") {
		if m.PlayoffRound > 0 {
			return PlayoffRound(m.PlayoffRound)
		}
		if groups := roundSuffixRegex.FindStringSubmatch(label); len(groups) == 2 {
			if n, err := strconv.Atoi(groups[1]); err == nil {
				return PlayoffRound(n)
			}
		}
		return PlayoffRound(1)
	}

	return RoundGroupStage
}
