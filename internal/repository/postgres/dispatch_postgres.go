package postgres

import (
	"context"
	"database/sql"
	"time"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

const dispatchColumns = `id, case_id, target, outcome, response_ref, error_detail, actor, created_at`

// DispatchPostgres is a PostgreSQL implementation of
// repository.DispatchRepository.
type DispatchPostgres struct {
	db *sql.DB
}

// NewDispatchPostgres creates a new DispatchPostgres repository.
func NewDispatchPostgres(db *sql.DB) *DispatchPostgres {
	return &DispatchPostgres{db: db}
}

var _ repository.DispatchRepository = (*DispatchPostgres)(nil)

func scanDispatch(row rowScanner) (*model.DispatchRecord, error) {
	var rec model.DispatchRecord
	if err := row.Scan(
		&rec.ID,
		&rec.CaseID,
		&rec.Target,
		&rec.Outcome,
		&rec.ResponseRef,
		&rec.ErrorDetail,
		&rec.Actor,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Record inserts one dispatch attempt and advances the case row in the same
// transaction. The guarded update re-checks stage and status, so the attempt
// only lands against a case still waiting at the target's stage; anything
// else rolls back with ErrConflict.
func (r *DispatchPostgres) Record(ctx context.Context, rec *model.DispatchRecord, fromVersion int64, complete bool) (*model.DispatchRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	status := model.StatusEmAndamento
	if complete {
		status = model.StatusConcluida
	}
	const qCase = `
		UPDATE admission_cases
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4 AND status = $5 AND stage = $6`
	res, err := tx.ExecContext(ctx, qCase,
		status, time.Now().UTC(), rec.CaseID, fromVersion, model.StatusEmAndamento, rec.Target.Stage())
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrConflict
	}

	const qInsert = `
		INSERT INTO integration_dispatches (id, case_id, target, outcome, response_ref, error_detail, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + dispatchColumns
	stored, err := scanDispatch(tx.QueryRowContext(ctx, qInsert,
		rec.ID,
		rec.CaseID,
		rec.Target,
		rec.Outcome,
		rec.ResponseRef,
		rec.ErrorDetail,
		rec.Actor,
		rec.CreatedAt,
	))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// HasSuccess reports whether the case has a successful dispatch to target.
func (r *DispatchPostgres) HasSuccess(ctx context.Context, caseID string, target model.DispatchTarget) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM integration_dispatches
			WHERE case_id = $1 AND target = $2 AND outcome = $3
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, caseID, target, model.DispatchSucceeded).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByCase returns the dispatch history for a case, oldest first.
func (r *DispatchPostgres) ListByCase(ctx context.Context, caseID string) ([]model.DispatchRecord, error) {
	const q = `SELECT ` + dispatchColumns + `
		FROM integration_dispatches
		WHERE case_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DispatchRecord, 0)
	for rows.Next() {
		rec, err := scanDispatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
