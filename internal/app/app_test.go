package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/config"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageBackend:     config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		JobWorkerPoolSize:  2,
		JobDedupWindow:     time.Minute,
		OpenDotaBaseURL:    "http://127.0.0.1:0",
		OpenDotaTimeout:    time.Second,
		RecalcQueueName:    "tournament:recalc",
		InternalJobToken:   "job-token",
	}
}

func TestNew_MemoryStackServesPublicRoutes(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv, err := a.NewHTTPServer()
	require.NoError(t, err)

	for _, path := range []string{"/healthz", "/v1/teams", "/v1/matches", "/v1/teams/team-alpha"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNew_InternalJobRunsWithoutLedger(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv, err := a.NewHTTPServer()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/stats", nil)
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Job stats completed"), rec.Body.String())
}

func TestNew_UnknownStorageBackend(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StorageBackend = "sqlite"
	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = " "
	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.NewHTTPServer()
	require.Error(t, err)
}

func TestConsumeJobs_RequiresQueue(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	err = a.ConsumeJobs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
}

func TestDisabledQueue_Enqueue(t *testing.T) {
	t.Parallel()

	err := disabledQueue{}.Enqueue(context.Background(), usecase.RecalcJob{Type: usecase.RecalcStats})
	require.Error(t, err)
}
