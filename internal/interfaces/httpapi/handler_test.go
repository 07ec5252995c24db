package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/user"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/memory"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

const (
	adminToken    = "admin-token"
	userToken     = "user-token"
	testJobSecret = "job-secret"
)

type stubVerifier struct{}

func (stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	switch token {
	case adminToken:
		return user.Principal{UserID: "admin-1", Admin: true}, nil
	case userToken:
		return user.Principal{UserID: "user-1"}, nil
	default:
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}
}

type stubProvider struct{}

func (stubProvider) FetchMatch(context.Context, string) (usecase.ExternalMatch, error) {
	return usecase.ExternalMatch{}, fmt.Errorf("%w: provider disabled in tests", usecase.ErrDependencyUnavailable)
}

func (stubProvider) RequestParse(context.Context, string) error {
	return nil
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []usecase.RecalcJob
}

func (q *recordingQueue) Enqueue(_ context.Context, job usecase.RecalcJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

type testServer struct {
	router http.Handler
	queue  *recordingQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logging.NewNop()
	teams := memory.NewTeamRepository(memory.SeedTeams())
	matches := memory.NewMatchRepository(memory.SeedMatches())
	groups := memory.NewGroupRepository(memory.SeedGroups())
	games := memory.NewGameRepository(matches)
	fantasyRepo := memory.NewFantasyRepository(nil)
	statsRepo := memory.NewStatsRepository()
	pickems := memory.NewPickemRepository(
		[]pickem.Pickem{{
			UserID:      "user-1",
			Predictions: pickem.Predictions{Champion: memory.TeamIDAlpha, RunnerUp: memory.TeamIDBravo},
			LastUpdated: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
		}},
		[]pickem.UserProfile{{UserID: "user-1", DisplayName: "Fan", DiscordUsername: "fan#1"}},
	)

	scoring := usecase.NewMatchScoringService(matches, games, groups, logger)
	statsSvc := usecase.NewStatsService(teams, matches, games, statsRepo, logger)
	fantasySvc := usecase.NewFantasyService(teams, matches, games, fantasyRepo, logger)
	save := usecase.NewGameSaveService(matches, games, scoring, fantasySvc, statsSvc, logger)
	ingestion := usecase.NewIngestionService(stubProvider{}, teams, logger)
	reprocess := usecase.NewReprocessService(matches, games, ingestion, save, scoring, statsSvc, fantasySvc, 2, logger)
	queue := &recordingQueue{}
	jobs := usecase.NewJobOrchestratorService(
		usecase.NewJobRunner(memory.NewJobRunRepository(), nil, logger),
		statsSvc, fantasySvc, scoring, reprocess, queue,
		usecase.JobOrchestratorConfig{}, logger,
	)

	handler := NewHandler(
		usecase.NewTeamService(teams, matches, games),
		statsSvc,
		fantasySvc,
		usecase.NewGameImportService(ingestion, save, logger),
		save,
		scoring,
		reprocess,
		jobs,
		usecase.NewPickemService(pickems, teams, nil, logger),
		logger,
	)
	return &testServer{
		router: NewRouter(handler, stubVerifier{}, logger, true, []string{"*"}, testJobSecret),
		queue:  queue,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := sonic.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func validSaveRequest(matchID, gameID string) saveGameRequest {
	req := saveGameRequest{
		MatchID: matchID,
		Game: gameDTO{
			ID:          gameID,
			RadiantWin:  true,
			Duration:    2400,
			StartTime:   time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC).Unix(),
			RadiantTeam: teamSnapshotDTO{ID: memory.TeamIDAlpha, Name: "Alpha Esports"},
			DireTeam:    teamSnapshotDTO{ID: memory.TeamIDBravo, Name: "Bravo Five"},
		},
	}
	for i, id := range []string{"alpha-carry", "alpha-mid", "alpha-off", "alpha-soft", "alpha-hard"} {
		req.Performances = append(req.Performances, performanceDTO{
			PlayerID:      id,
			TeamID:        memory.TeamIDAlpha,
			AccountID:     int64(1001 + i),
			HeroID:        i + 1,
			Kills:         i + 2,
			Deaths:        i,
			Assists:       i + 3,
			HeroDamage:    5000 + i*1000,
			Win:           true,
			FantasyPoints: float64(10 + i),
		})
	}
	for i, id := range []string{"bravo-carry", "bravo-mid", "bravo-off", "bravo-soft", "bravo-hard"} {
		req.Performances = append(req.Performances, performanceDTO{
			PlayerID:      id,
			TeamID:        memory.TeamIDBravo,
			AccountID:     int64(2001 + i),
			HeroID:        i + 10,
			Kills:         i + 1,
			Deaths:        i + 1,
			Assists:       i + 2,
			HeroDamage:    4000 + i*900,
			FantasyPoints: float64(5 + i),
		})
	}
	return req
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}

func TestRouter_AdminRoutesRequireAdminPrincipal(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/admin/stats/recalculate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/stats/recalculate", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/stats/recalculate", userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	assert.Equal(t, "PERMISSION_DENIED", errObj["status"])

	rec = srv.do(t, http.MethodPost, "/v1/admin/stats/recalculate", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_InternalJobsRequireToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/fantasy", nil)
	req.Header.Set("X-Internal-Job-Token", testJobSecret)
	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	results := data["results"].(map[string]any)
	assert.Equal(t, "recalc:fantasy", results["name"])
	assert.Equal(t, "completed", results["status"])
}

func TestRouter_SaveGameRejectsInvalidBundleWithMessageList(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	payload := saveGameRequest{
		MatchID: memory.MatchIDGroupAlphaBravo,
		Game:    gameDTO{ID: "8000000001"},
	}
	rec := srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, payload)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	items := errObj["errors"].([]any)
	messages := make([]string, 0, len(items))
	for _, item := range items {
		messages = append(messages, item.(map[string]any)["message"].(string))
	}
	assert.Equal(t, []string{"Game duration must be positive", "At least one performance is required"}, messages)

	rec = srv.do(t, http.MethodGet, "/v1/matches/"+memory.MatchIDGroupAlphaBravo, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Empty(t, data["games"])
}

func TestRouter_SaveGameThenReadBack(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, validSaveRequest(memory.MatchIDGroupAlphaBravo, "8000000001"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	results := data["results"].(map[string]any)
	assert.Equal(t, true, results["saved"])
	steps := results["steps"].([]any)
	require.Len(t, steps, 3)
	for _, step := range steps {
		assert.Equal(t, true, step.(map[string]any)["ok"], "step %v", step)
	}

	rec = srv.do(t, http.MethodGet, "/v1/matches/"+memory.MatchIDGroupAlphaBravo, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	details := decodeEnvelope(t, rec)["data"].(map[string]any)
	matchObj := details["match"].(map[string]any)
	assert.Equal(t, []any{"8000000001"}, matchObj["game_ids"])
	assert.Equal(t, "pending", matchObj["status"])
	games := details["games"].([]any)
	require.Len(t, games, 1)
	assert.Len(t, games[0].(map[string]any)["performances"], 10)

	rec = srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, validSaveRequest(memory.MatchIDGroupAlphaBravo, "8000000002"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/v1/matches/"+memory.MatchIDGroupAlphaBravo, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matchObj = decodeEnvelope(t, rec)["data"].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "completed", matchObj["status"])
	assert.Equal(t, memory.TeamIDAlpha, matchObj["winnerId"])

	rec = srv.do(t, http.MethodGet, "/v1/stats/tournament", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tournament := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.EqualValues(t, 2, tournament["totalGames"])

	rec = srv.do(t, http.MethodGet, "/v1/stats/players/alpha-carry", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SaveGameForUnknownMatchIsSkipped(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, validSaveRequest("missing-match", "8000000002"))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, false, data["success"])
	results := data["results"].(map[string]any)
	assert.Equal(t, true, results["skipped"])
}

func TestRouter_ReadEndpointsReturnNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	paths := []string{
		"/v1/stats/tournament",
		"/v1/stats/players/nobody",
		"/v1/stats/teams/nobody",
		"/v1/fantasy/leaderboard",
		"/v1/matches/nobody",
		"/v1/teams/nobody",
	}
	for _, path := range paths {
		rec := srv.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRouter_ListTeamsAndMatches(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/teams", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeEnvelope(t, rec)["data"], 3)

	rec = srv.do(t, http.MethodGet, "/v1/matches", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeEnvelope(t, rec)["data"], 3)
}

func TestRouter_ImportGameValidatesPayload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/admin/games/import", adminToken, `{"matchId":"m1","gameId":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	item := errObj["errors"].([]any)[0].(map[string]any)
	assert.Equal(t, "gameId must be numeric", item["message"])

	rec = srv.do(t, http.MethodPost, "/v1/admin/games/import", adminToken, `{"matchId":"m1","gameId":"1","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/games/import", adminToken, `{"matchId":"m1","gameId":"123"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_EnqueueJob(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/admin/jobs/enqueue", adminToken, `{"type":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/jobs/enqueue", adminToken, `{"type":"reprocess","reprocess":{"matchIds":["8000000001"],"dryRun":true}}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	srv.queue.mu.Lock()
	defer srv.queue.mu.Unlock()
	require.Len(t, srv.queue.jobs, 1)
	job := srv.queue.jobs[0]
	assert.Equal(t, usecase.RecalcReprocess, job.Type)
	require.NotNil(t, job.Reprocess)
	assert.Equal(t, []string{"8000000001"}, job.Reprocess.GameIDs)
	assert.True(t, job.Reprocess.DryRun)
}

func TestRouter_ListJobRunsAfterRecalc(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/admin/fantasy/recalculate", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/v1/admin/jobs/runs?limit=5", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	runs := decodeEnvelope(t, rec)["data"].([]any)
	require.Len(t, runs, 1)
	assert.Equal(t, "recalc:fantasy", runs[0].(map[string]any)["name"])

	rec = srv.do(t, http.MethodGet, "/v1/admin/jobs/runs?limit=zero", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RecalculateMatch(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, validSaveRequest(memory.MatchIDGroupAlphaBravo, "8000000003"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/games/save", adminToken, validSaveRequest(memory.MatchIDGroupAlphaBravo, "8000000004"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/admin/matches/"+memory.MatchIDGroupAlphaBravo+"/recalculate", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results := decodeEnvelope(t, rec)["data"].(map[string]any)["results"].(map[string]any)
	matchResult := results["match"].(map[string]any)
	assert.EqualValues(t, 2, matchResult["teamAScore"])
	assert.EqualValues(t, 0, matchResult["teamBScore"])
	assert.Equal(t, "completed", matchResult["status"])

	groups := results["groups"].([]any)
	require.Len(t, groups, 1)
	standings := groups[0].(map[string]any)["standings"].([]any)
	top := standings[0].(map[string]any)
	assert.Equal(t, memory.TeamIDAlpha, top["teamId"])
	assert.EqualValues(t, 2, top["points"])
}

func TestRouter_ReprocessDryRunWithoutGames(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/admin/matches/reprocess", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	results := data["results"].(map[string]any)
	assert.EqualValues(t, 0, results["total"])
}

func TestRouter_ExportPickemsCSV(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/v1/admin/pickem/export", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="pickem_export_`))
	assert.Contains(t, rec.Body.String(), "Alpha Esports")

	rec = srv.do(t, http.MethodPost, "/v1/admin/pickem/sheet", adminToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_OpenAPIDocument(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/openapi.yaml", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/admin/games/import")
	assert.Contains(t, rec.Body.String(), "/v1/pickem")
}

func registrationPayload(name string, firstAccount string) registerTeamRequest {
	req := registerTeamRequest{Name: name, Tag: "ECH"}
	roles := []string{"Carry", "Mid", "Offlane", "Soft Support", "Hard Support"}
	for i, role := range roles {
		account := fmt.Sprintf("%d", 9001+i)
		if i == 0 && firstAccount != "" {
			account = firstAccount
		}
		req.Players = append(req.Players, registerPlayerRequest{
			Nickname:  fmt.Sprintf("Echo%d", i+1),
			Role:      role,
			SteamID32: account,
			MMR:       5000 - i*100,
		})
	}
	return req
}

func TestRouter_RegisterTeam(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/teams", "", registrationPayload("Echo Five", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/teams", userToken, registrationPayload("Echo Five", ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	teamID := data["id"].(string)
	assert.True(t, strings.HasPrefix(teamID, "team_"))
	assert.Equal(t, "Not Verified", data["status"])
	assert.Len(t, data["players"], 5)

	rec = srv.do(t, http.MethodGet, "/v1/teams/"+teamID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/teams", userToken, registrationPayload("Foxtrot", "1001"))
	require.Equal(t, http.StatusConflict, rec.Code)
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	assert.Equal(t, "ALREADY_EXISTS", errObj["status"])
}

func TestRouter_RegisterTeamValidatesRoster(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	payload := registrationPayload("Echo Five", "")
	payload.Players[1].Role = "Carry"
	payload.Players = append(payload.Players, payload.Players[0])
	rec := srv.do(t, http.MethodPost, "/v1/teams", userToken, payload)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	var messages []string
	for _, item := range errObj["errors"].([]any) {
		messages = append(messages, item.(map[string]any)["message"].(string))
	}
	assert.Contains(t, messages, "players must have exactly 5 items")
}

func TestRouter_SubmitPickem(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	payload := pickemRequest{Champion: memory.TeamIDBravo, RunnerUp: memory.TeamIDAlpha}

	rec := srv.do(t, http.MethodPut, "/v1/pickem", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPut, "/v1/pickem", userToken, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "user-1", data["userId"])
	assert.NotEmpty(t, data["lastUpdated"])

	rec = srv.do(t, http.MethodGet, "/v1/admin/pickem/export", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-1,Fan,fan#1,")
	assert.Contains(t, rec.Body.String(), "Bravo Five,Alpha Esports")

	rec = srv.do(t, http.MethodPut, "/v1/pickem", userToken, pickemRequest{Champion: "no-such-team"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
