package postgres

import (
	"context"
	"database/sql"
	"time"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

const documentColumns = `id, case_id, kind, filename, storage_path, size, content_type,
		status, validated_by, validated_at, rejection_reason, active, created_at`

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. Writes lock the owning case row first so
// that a transition reading the checklist cannot interleave with them.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row rowScanner) (*model.AdmissionDocument, error) {
	var (
		d           model.AdmissionDocument
		validatedBy sql.NullString
		validatedAt sql.NullTime
		reason      sql.NullString
	)
	err := row.Scan(
		&d.ID,
		&d.CaseID,
		&d.Kind,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.Status,
		&validatedBy,
		&validatedAt,
		&reason,
		&d.Active,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if validatedBy.Valid {
		d.ValidatedBy = &validatedBy.String
	}
	if validatedAt.Valid {
		t := validatedAt.Time
		d.ValidatedAt = &t
	}
	if reason.Valid {
		d.RejectionReason = &reason.String
	}
	return &d, nil
}

// bumpCase locks the case row and advances its version inside tx. Returns
// sql.ErrNoRows when the case does not exist.
func bumpCase(ctx context.Context, tx *sql.Tx, caseID string) error {
	const q = `UPDATE admission_cases SET version = version + 1, updated_at = $1 WHERE id = $2`
	res, err := tx.ExecContext(ctx, q, time.Now().UTC(), caseID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateActive inserts the document as the new active upload for its
// (case, kind) pair. The previous active row is deactivated, never deleted.
func (r *DocumentPostgres) CreateActive(ctx context.Context, doc *model.AdmissionDocument) (*model.AdmissionDocument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := bumpCase(ctx, tx, doc.CaseID); err != nil {
		return nil, err
	}

	const qSupersede = `
		UPDATE admission_documents SET active = FALSE
		WHERE case_id = $1 AND kind = $2 AND active`
	if _, err := tx.ExecContext(ctx, qSupersede, doc.CaseID, doc.Kind); err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO admission_documents (id, case_id, kind, filename, storage_path, size, content_type, status, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9)
		RETURNING ` + documentColumns
	stored, err := scanDocument(tx.QueryRowContext(ctx, qInsert,
		doc.ID,
		doc.CaseID,
		doc.Kind,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.Status,
		doc.CreatedAt,
	))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.AdmissionDocument, error) {
	const q = `SELECT ` + documentColumns + ` FROM admission_documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListActiveByCase returns the active documents of a case, oldest first.
func (r *DocumentPostgres) ListActiveByCase(ctx context.Context, caseID string) ([]model.AdmissionDocument, error) {
	const q = `SELECT ` + documentColumns + `
		FROM admission_documents
		WHERE case_id = $1 AND active
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AdmissionDocument, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Decide applies a validation decision to a PENDING document. An already
// decided document yields ErrConflict; correction goes through re-upload.
func (r *DocumentPostgres) Decide(ctx context.Context, id string, status model.DocumentStatus, actor string, reason *string) (*model.AdmissionDocument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const qLock = `SELECT case_id, status FROM admission_documents WHERE id = $1 FOR UPDATE`
	var (
		caseID  string
		current model.DocumentStatus
	)
	if err := tx.QueryRowContext(ctx, qLock, id).Scan(&caseID, &current); err != nil {
		return nil, err
	}
	if current != model.DocumentPending {
		return nil, repository.ErrConflict
	}

	if err := bumpCase(ctx, tx, caseID); err != nil {
		return nil, err
	}

	const qUpdate = `
		UPDATE admission_documents
		SET status = $1, validated_by = $2, validated_at = $3, rejection_reason = $4
		WHERE id = $5
		RETURNING ` + documentColumns
	var reasonArg sql.NullString
	if reason != nil {
		reasonArg = sql.NullString{String: *reason, Valid: true}
	}
	stored, err := scanDocument(tx.QueryRowContext(ctx, qUpdate, status, actor, time.Now().UTC(), reasonArg, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}
