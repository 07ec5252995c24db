package postgres

import (
	"database/sql"
	"time"
)

type jobRunInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	TraceID   *string   `db:"trace_id"`
	StartedAt time.Time `db:"started_at"`
}

type jobRunTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Name       string         `db:"name"`
	Status     string         `db:"status"`
	Summary    sql.NullString `db:"summary"`
	Error      sql.NullString `db:"error"`
	TraceID    sql.NullString `db:"trace_id"`
	StartedAt  time.Time      `db:"started_at"`
	FinishedAt sql.NullTime   `db:"finished_at"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
