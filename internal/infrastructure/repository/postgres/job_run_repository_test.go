package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	qb "github.com/Cienszki/automatic-tournament-sub000/internal/platform/querybuilder"
)

func TestEncodeSummary(t *testing.T) {
	t.Parallel()

	got, err := encodeSummary(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = encodeSummary(jobrun.BatchSummary{Total: 2, Succeeded: 1, Errored: 1})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Contains(t, *got, `"total":2`)
	assert.Contains(t, *got, `"errored":1`)
}

func TestJobRunFromRow(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)
	run := jobRunFromRow(jobRunTableModel{
		PublicID:   "run_abc",
		Name:       "recalc:stats",
		Status:     "completed",
		Summary:    sql.NullString{String: `{"totalTeams":4}`, Valid: true},
		TraceID:    sql.NullString{String: "trace-1", Valid: true},
		StartedAt:  started,
		FinishedAt: sql.NullTime{Time: finished, Valid: true},
	})

	assert.Equal(t, "run_abc", run.ID)
	assert.Equal(t, jobrun.StatusCompleted, run.Status)
	assert.Equal(t, "trace-1", run.TraceID)
	require.NotNil(t, run.FinishedAt)
	assert.True(t, run.FinishedAt.Equal(finished))
	summary, ok := run.Summary.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, summary["totalTeams"])
}

func TestJobRunFromRow_Running(t *testing.T) {
	t.Parallel()

	run := jobRunFromRow(jobRunTableModel{PublicID: "run_x", Status: "running"})
	assert.Nil(t, run.FinishedAt)
	assert.Nil(t, run.Summary)
	assert.Empty(t, run.Error)
}

func TestJobRunInsertQuery(t *testing.T) {
	t.Parallel()

	query, args, err := qb.InsertModel(jobRunsTable, jobRunInsertModel{
		PublicID:  "run_1",
		Name:      "recalc:fantasy",
		Status:    "running",
		StartedAt: time.Unix(0, 0).UTC(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO job_runs (public_id, name, status, trace_id, started_at) VALUES ($1, $2, $3, $4, $5)", query)
	assert.Len(t, args, 5)
}

func TestOptionalString(t *testing.T) {
	t.Parallel()

	assert.Nil(t, optionalString("  "))
	require.NotNil(t, optionalString(" x "))
	assert.Equal(t, "x", *optionalString(" x "))
}
