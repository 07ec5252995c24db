package postgres

import (
	"context"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	qb "github.com/Cienszki/automatic-tournament-sub000/internal/platform/querybuilder"
)

const jobRunsTable = "job_runs"

// JobRunRepository is the batch job ledger. Summaries are stored as JSON
// text and decoded back into generic maps on read.
type JobRunRepository struct {
	db *sqlx.DB
}

func NewJobRunRepository(db *sqlx.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

func (r *JobRunRepository) Start(ctx context.Context, run jobrun.Run) error {
	runID := strings.TrimSpace(run.ID)
	if runID == "" {
		return fmt.Errorf("job run id is required")
	}

	model := jobRunInsertModel{
		PublicID:  runID,
		Name:      run.Name,
		Status:    string(run.Status),
		TraceID:   optionalString(run.TraceID),
		StartedAt: run.StartedAt.UTC(),
	}
	query, args, err := qb.InsertModel(jobRunsTable, model, "")
	if err != nil {
		return fmt.Errorf("build insert job run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert job run id=%s: %w", runID, err)
	}
	return nil
}

func (r *JobRunRepository) Finish(ctx context.Context, run jobrun.Run) error {
	summary, err := encodeSummary(run.Summary)
	if err != nil {
		return fmt.Errorf("encode job run summary id=%s: %w", run.ID, err)
	}

	update := qb.Update(jobRunsTable).
		Set("status", string(run.Status)).
		Set("summary", summary).
		Set("error", optionalString(run.Error)).
		SetExpr("updated_at", "NOW()")
	if run.FinishedAt != nil {
		update = update.Set("finished_at", run.FinishedAt.UTC())
	}
	query, args, err := update.Where(qb.Eq("public_id", run.ID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build finish job run query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish job run id=%s: %w", run.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("job run not found: %s", run.ID)
	}
	return nil
}

func (r *JobRunRepository) ListRecent(ctx context.Context, limit int) ([]jobrun.Run, error) {
	query, args, err := qb.Select("*").From(jobRunsTable).
		OrderBy("started_at DESC", "public_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select job runs query: %w", err)
	}

	var rows []jobRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job runs: %w", err)
	}

	out := make([]jobrun.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, jobRunFromRow(row))
	}
	return out, nil
}

func jobRunFromRow(row jobRunTableModel) jobrun.Run {
	run := jobrun.Run{
		ID:        row.PublicID,
		Name:      row.Name,
		Status:    jobrun.Status(row.Status),
		Error:     row.Error.String,
		TraceID:   row.TraceID.String,
		StartedAt: row.StartedAt.UTC(),
	}
	if row.FinishedAt.Valid {
		finished := row.FinishedAt.Time.UTC()
		run.FinishedAt = &finished
	}
	if row.Summary.Valid && row.Summary.String != "" {
		var summary any
		if err := sonic.UnmarshalString(row.Summary.String, &summary); err == nil {
			run.Summary = summary
		}
	}
	return run
}

func encodeSummary(summary any) (*string, error) {
	if summary == nil {
		return nil, nil
	}
	raw, err := sonic.MarshalString(summary)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}
