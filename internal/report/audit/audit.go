// internal/report/audit/audit.go
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"report-writer/internal/common/logger"
)

var ErrAuditInsertFailed = errors.New("AUDIT_INSERT_FAILED")

// Outcome of one generation attempt.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Attempt describes one generation call. Field contents and notes are never
// recorded, only whether notes were supplied.
type Attempt struct {
	RequestID string
	SessionID string
	Template  string
	Backend   string
	Status    string
	ErrorCode string
	Duration  time.Duration
	HasNotes  bool
	StartedAt time.Time
}

// Recorder stores generation attempts.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

// Nop discards every attempt.
type Nop struct{}

func (Nop) Record(ctx context.Context, a Attempt) error { return nil }

// PostgresRecorder appends attempts to a table.
type PostgresRecorder struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewPostgresRecorder(db *sql.DB, table string, log logger.Logger) *PostgresRecorder {
	return &PostgresRecorder{
		db:     db,
		table:  pq.QuoteIdentifier(table),
		logger: log.With(map[string]interface{}{"component": "audit"}),
	}
}

// EnsureSchema creates the attempts table when it does not exist.
func (r *PostgresRecorder) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			request_id   TEXT PRIMARY KEY,
			session_id   TEXT,
			template     TEXT NOT NULL,
			backend      TEXT NOT NULL,
			status       TEXT NOT NULL,
			error_code   TEXT,
			duration_ms  BIGINT NOT NULL,
			has_notes    BOOLEAN NOT NULL,
			started_at   TIMESTAMPTZ NOT NULL
		)`, r.table))
	if err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, a Attempt) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			request_id, session_id, template, backend, status,
			error_code, duration_ms, has_notes, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, r.table),
		a.RequestID,
		nullable(a.SessionID),
		a.Template,
		a.Backend,
		a.Status,
		nullable(a.ErrorCode),
		a.Duration.Milliseconds(),
		a.HasNotes,
		a.StartedAt.UTC(),
	)
	if err != nil {
		r.logger.Error("failed to record generation attempt", map[string]interface{}{
			"requestId": a.RequestID,
			"error":     err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrAuditInsertFailed, err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
