package repository

import (
	"context"

	"admissionapi/internal/model"
)

// DocumentRepository defines data access for admission documents.
//
// Writes lock and version-bump the owning case row so that uploads and
// validation decisions serialize against in-flight stage transitions.
type DocumentRepository interface {
	// CreateActive inserts the document as the active upload for its
	// (case, kind) pair, deactivating any previous active row, and bumps the
	// case version, all in one transaction.
	CreateActive(ctx context.Context, doc *model.AdmissionDocument) (*model.AdmissionDocument, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.AdmissionDocument, error)

	// ListActiveByCase returns the active documents of a case, oldest first.
	ListActiveByCase(ctx context.Context, caseID string) ([]model.AdmissionDocument, error)

	// Decide applies a validation decision to a PENDING document and bumps
	// the case version in the same transaction. Returns ErrConflict when the
	// document is already decided.
	Decide(ctx context.Context, id string, status model.DocumentStatus, actor string, reason *string) (*model.AdmissionDocument, error)
}
