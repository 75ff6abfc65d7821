package repository

import (
	"context"
	"time"

	"admissionapi/internal/model"
)

// CaseRepository defines data access for admission cases.
//
// Every mutation takes the version the caller read and fails with ErrConflict
// when the row has moved on; the case row is the serialization point for
// the whole aggregate (documents included). The mutation surface is a closed
// set of explicit commands; there is no generic field update.
type CaseRepository interface {
	// Create inserts a new case record and returns the stored row.
	Create(ctx context.Context, c *model.AdmissionCase) (*model.AdmissionCase, error)

	// FindByID returns a case by its ID.
	FindByID(ctx context.Context, id string) (*model.AdmissionCase, error)

	// List returns a page of cases ordered by request time, newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.AdmissionCase], error)

	// AdvanceStage moves the case to the given stage and appends the ALLOWED
	// audit record in the same transaction. fromVersion guards the write.
	AdvanceStage(ctx context.Context, id string, fromVersion int64, to model.Stage, attempt *model.TransitionAttempt) (*model.AdmissionCase, error)

	// Terminate sets a terminal status (CANCELADA/REPROVADA) with its reason
	// and appends the audit record in the same transaction.
	Terminate(ctx context.Context, id string, fromVersion int64, status model.CaseStatus, reason string, attempt *model.TransitionAttempt) (*model.AdmissionCase, error)

	// SetContractRef records the reference produced by contract generation.
	SetContractRef(ctx context.Context, id string, fromVersion int64, ref string) (*model.AdmissionCase, error)

	// SetDigitalSignature marks the digital signature as confirmed.
	SetDigitalSignature(ctx context.Context, id string, fromVersion int64) (*model.AdmissionCase, error)

	// SetPhysicalSignature records a physically signed contract and its date.
	SetPhysicalSignature(ctx context.Context, id string, fromVersion int64, signedAt time.Time) (*model.AdmissionCase, error)
}
