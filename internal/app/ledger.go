package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Cienszki/automatic-tournament-sub000/internal/config"
	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/jobrun"
	"github.com/Cienszki/automatic-tournament-sub000/internal/infrastructure/repository/postgres"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

// newJobLedger opens the Postgres job run ledger, or a no-op ledger when
// JOB_LEDGER_ENABLED is off.
func newJobLedger(ctx context.Context, cfg config.Config, logger *logging.Logger) (jobrun.Repository, func() error, error) {
	if !cfg.JobLedgerEnabled {
		logger.Info("job ledger disabled", "reason", "JOB_LEDGER_ENABLED=false")
		return usecase.NewNopJobLedger(), func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("job ledger enabled", "db_name", dbNameFromURL(cfg.DBURL))
	return postgres.NewJobRunRepository(db), db.Close, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

const maxTracedQueryLen = 512

// formatDBQueryForTrace collapses whitespace so span names stay one line.
func formatDBQueryForTrace(query string) string {
	q := whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(q) > maxTracedQueryLen {
		return q[:maxTracedQueryLen] + "..."
	}
	return q
}

// normalizeDBURL opts out of binary prepared results, which poolers in
// transaction mode reject. An explicit query value wins.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// dbNameFromURL handles both postgres:// URLs and key=value DSNs.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}
	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}
