package postgres

import (
	"context"
	"database/sql"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

const attemptColumns = `id, case_id, from_stage, to_stage, actor, outcome, reason, created_at`

// execer covers *sql.DB and *sql.Tx so attempt inserts can join a case
// transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAttempt(ctx context.Context, db execer, a *model.TransitionAttempt) error {
	const q = `
		INSERT INTO workflow_transitions (id, case_id, from_stage, to_stage, actor, outcome, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.ExecContext(ctx, q,
		a.ID,
		a.CaseID,
		a.FromStage,
		a.ToStage,
		a.Actor,
		a.Outcome,
		a.Reason,
		a.CreatedAt,
	)
	return err
}

// TransitionPostgres is a PostgreSQL implementation of
// repository.TransitionRepository. The table is append-only; there are no
// update or delete statements.
type TransitionPostgres struct {
	db *sql.DB
}

// NewTransitionPostgres creates a new TransitionPostgres repository.
func NewTransitionPostgres(db *sql.DB) *TransitionPostgres {
	return &TransitionPostgres{db: db}
}

var _ repository.TransitionRepository = (*TransitionPostgres)(nil)

// Append writes one audit record.
func (r *TransitionPostgres) Append(ctx context.Context, attempt *model.TransitionAttempt) error {
	return insertAttempt(ctx, r.db, attempt)
}

// ListByCase returns the audit trail for a case, oldest first.
func (r *TransitionPostgres) ListByCase(ctx context.Context, caseID string) ([]model.TransitionAttempt, error) {
	const q = `SELECT ` + attemptColumns + `
		FROM workflow_transitions
		WHERE case_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TransitionAttempt, 0)
	for rows.Next() {
		var a model.TransitionAttempt
		if err := rows.Scan(
			&a.ID,
			&a.CaseID,
			&a.FromStage,
			&a.ToStage,
			&a.Actor,
			&a.Outcome,
			&a.Reason,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
