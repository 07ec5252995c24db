package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/stats/tournament", handler.GetTournamentStats)
	mux.HandleFunc("GET /v1/stats/players/{playerID}", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/stats/teams/{teamID}", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/fantasy/leaderboard", handler.GetFantasyLeaderboard)
}

// registerUserRoutes serves any signed-in caller.
func registerUserRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.RegisterTeam)))
	mux.Handle("PUT /v1/pickem", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPickem)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(next http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(next))
	}

	mux.Handle("POST /v1/admin/games/import", admin(handler.ImportGame))
	mux.Handle("POST /v1/admin/games/save", admin(handler.SaveGame))
	mux.Handle("POST /v1/admin/matches/{matchID}/recalculate", admin(handler.RecalculateMatch))
	mux.Handle("POST /v1/admin/matches/reprocess", admin(handler.ReprocessMatches))
	mux.Handle("POST /v1/admin/stats/recalculate", admin(handler.RecalculateStats))
	mux.Handle("POST /v1/admin/fantasy/recalculate", admin(handler.RecalculateFantasy))
	mux.Handle("POST /v1/admin/jobs/enqueue", admin(handler.EnqueueJob))
	mux.Handle("GET /v1/admin/jobs/runs", admin(handler.ListJobRuns))
	mux.Handle("GET /v1/admin/pickem/export", admin(handler.ExportPickems))
	mux.Handle("POST /v1/admin/pickem/sheet", admin(handler.PublishPickemSheet))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStatsJob)))
	mux.Handle("POST /v1/internal/jobs/fantasy", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFantasyJob)))
}
