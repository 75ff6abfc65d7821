package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

// caseColumns is the canonical select list for admission_cases.
const caseColumns = `id, candidate_name, candidate_cpf, candidate_email, candidate_phone,
		job_title, department, contract_type, proposed_salary, start_date, has_dependents,
		stage, status, status_reason, contract_ref,
		digital_signature_confirmed, physically_signed, physical_signature_date,
		version, requested_at, updated_at`

// CasePostgres is a PostgreSQL implementation of repository.CaseRepository.
// It uses database/sql with parameterized queries only; every mutation is a
// version-guarded statement so concurrent writers get ErrConflict instead of
// lost updates.
type CasePostgres struct {
	db *sql.DB
}

// NewCasePostgres creates a new CasePostgres repository.
func NewCasePostgres(db *sql.DB) *CasePostgres {
	return &CasePostgres{db: db}
}

var _ repository.CaseRepository = (*CasePostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*model.AdmissionCase, error) {
	var (
		c        model.AdmissionCase
		salary   sql.NullFloat64
		start    sql.NullTime
		signedAt sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.CandidateName,
		&c.CandidateCPF,
		&c.CandidateEmail,
		&c.CandidatePhone,
		&c.JobTitle,
		&c.Department,
		&c.ContractType,
		&salary,
		&start,
		&c.HasDependents,
		&c.Stage,
		&c.Status,
		&c.StatusReason,
		&c.ContractRef,
		&c.DigitalSignatureConfirmed,
		&c.PhysicallySigned,
		&signedAt,
		&c.Version,
		&c.RequestedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if salary.Valid {
		c.ProposedSalary = &salary.Float64
	}
	if start.Valid {
		t := start.Time
		c.StartDate = &t
	}
	if signedAt.Valid {
		t := signedAt.Time
		c.PhysicalSignatureDate = &t
	}
	return &c, nil
}

// Create inserts a new case row and returns the stored record.
func (r *CasePostgres) Create(ctx context.Context, c *model.AdmissionCase) (*model.AdmissionCase, error) {
	const q = `
		INSERT INTO admission_cases (
			id, candidate_name, candidate_cpf, candidate_email, candidate_phone,
			job_title, department, contract_type, proposed_salary, start_date, has_dependents,
			stage, status, version, requested_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + caseColumns
	var salary sql.NullFloat64
	if c.ProposedSalary != nil {
		salary = sql.NullFloat64{Float64: *c.ProposedSalary, Valid: true}
	}
	var start sql.NullTime
	if c.StartDate != nil {
		start = sql.NullTime{Time: *c.StartDate, Valid: true}
	}
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CandidateName,
		c.CandidateCPF,
		c.CandidateEmail,
		c.CandidatePhone,
		c.JobTitle,
		c.Department,
		c.ContractType,
		salary,
		start,
		c.HasDependents,
		c.Stage,
		c.Status,
		c.Version,
		c.RequestedAt,
		c.UpdatedAt,
	)
	return scanCase(row)
}

// FindByID fetches a single case by its ID.
func (r *CasePostgres) FindByID(ctx context.Context, id string) (*model.AdmissionCase, error) {
	const q = `SELECT ` + caseColumns + ` FROM admission_cases WHERE id = $1`
	return scanCase(r.db.QueryRowContext(ctx, q, id))
}

// List returns cases using LIMIT/OFFSET pagination and a total count.
func (r *CasePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AdmissionCase], error) {
	const qCount = `SELECT COUNT(*) FROM admission_cases`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + caseColumns + `
		FROM admission_cases
		ORDER BY requested_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AdmissionCase, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.AdmissionCase]{Items: items, Total: total}, nil
}

// AdvanceStage applies the stage change and the ALLOWED audit record in one
// transaction. The version guard makes the case row the serialization point:
// a concurrent transition or document write invalidates fromVersion.
func (r *CasePostgres) AdvanceStage(ctx context.Context, id string, fromVersion int64, to model.Stage, attempt *model.TransitionAttempt) (*model.AdmissionCase, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE admission_cases
		SET stage = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING ` + caseColumns
	c, err := scanCase(tx.QueryRowContext(ctx, q, to, time.Now().UTC(), id, fromVersion, model.StatusEmAndamento))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}

	if err := insertAttempt(ctx, tx, attempt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Terminate sets a terminal status and its reason, auditing the decision in
// the same transaction.
func (r *CasePostgres) Terminate(ctx context.Context, id string, fromVersion int64, status model.CaseStatus, reason string, attempt *model.TransitionAttempt) (*model.AdmissionCase, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE admission_cases
		SET status = $1, status_reason = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5 AND status = $6
		RETURNING ` + caseColumns
	c, err := scanCase(tx.QueryRowContext(ctx, q, status, reason, time.Now().UTC(), id, fromVersion, model.StatusEmAndamento))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}

	if err := insertAttempt(ctx, tx, attempt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetContractRef records the contract reference on the case.
func (r *CasePostgres) SetContractRef(ctx context.Context, id string, fromVersion int64, ref string) (*model.AdmissionCase, error) {
	const q = `
		UPDATE admission_cases
		SET contract_ref = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING ` + caseColumns
	c, err := scanCase(r.db.QueryRowContext(ctx, q, ref, time.Now().UTC(), id, fromVersion, model.StatusEmAndamento))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return c, nil
}

// SetDigitalSignature marks the digital signature as confirmed.
func (r *CasePostgres) SetDigitalSignature(ctx context.Context, id string, fromVersion int64) (*model.AdmissionCase, error) {
	const q = `
		UPDATE admission_cases
		SET digital_signature_confirmed = TRUE, version = version + 1, updated_at = $1
		WHERE id = $2 AND version = $3 AND status = $4
		RETURNING ` + caseColumns
	c, err := scanCase(r.db.QueryRowContext(ctx, q, time.Now().UTC(), id, fromVersion, model.StatusEmAndamento))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return c, nil
}

// SetPhysicalSignature records a physically signed contract.
func (r *CasePostgres) SetPhysicalSignature(ctx context.Context, id string, fromVersion int64, signedAt time.Time) (*model.AdmissionCase, error) {
	const q = `
		UPDATE admission_cases
		SET physically_signed = TRUE, physical_signature_date = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING ` + caseColumns
	c, err := scanCase(r.db.QueryRowContext(ctx, q, signedAt, time.Now().UTC(), id, fromVersion, model.StatusEmAndamento))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return c, nil
}
