package match

// ResolveSeries derives the score of a match from the winning team id of
// each of its games. Winners that are neither team are ignored for the
// score but still count as played games.
func ResolveSeries(m Match, gameWinners []string) Result {
	if len(gameWinners) == 0 {
		return Result{Status: StatusPending}
	}

	var winsA, winsB int
	for _, winner := range gameWinners {
		switch winner {
		case m.TeamA.ID:
			winsA++
		case m.TeamB.ID:
			winsB++
		}
	}
	played := len(gameWinners)

	var complete bool
	var winner string
	switch m.EffectiveFormat() {
	case FormatBo1:
		complete = played >= 1
		winner = leader(m, winsA, winsB)
	case FormatBo2:
		complete = played >= 2 || winsA >= 2 || winsB >= 2
		winner = leader(m, winsA, winsB)
	case FormatBo3:
		complete = winsA >= 2 || winsB >= 2
		winner = firstTo(m, winsA, winsB, 2)
	case FormatBo5:
		complete = winsA >= 3 || winsB >= 3
		winner = firstTo(m, winsA, winsB, 3)
	}

	result := Result{TeamAScore: winsA, TeamBScore: winsB, Status: StatusPending}
	if complete {
		result.Status = StatusCompleted
		result.WinnerID = winner
	}
	return result
}

func leader(m Match, winsA, winsB int) string {
	switch {
	case winsA > winsB:
		return m.TeamA.ID
	case winsB > winsA:
		return m.TeamB.ID
	default:
		return ""
	}
}

func firstTo(m Match, winsA, winsB, target int) string {
	switch {
	case winsA >= target:
		return m.TeamA.ID
	case winsB >= target:
		return m.TeamB.ID
	default:
		return ""
	}
}
