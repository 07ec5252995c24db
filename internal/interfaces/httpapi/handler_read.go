package httpapi

import (
	"net/http"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.teamService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	details, err := h.teamService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchDetailsToDTO(details))
}

func (h *Handler) GetTournamentStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentStats")
	defer span.End()

	item, err := h.statsService.GetTournament(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tournamentStatsToDTO(item))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID, err := pathValue(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.statsService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(item))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := pathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.statsService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(item))
}

func (h *Handler) GetFantasyLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFantasyLeaderboard")
	defer span.End()

	lb, err := h.fantasyService.GetLeaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get fantasy leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(lb))
}
