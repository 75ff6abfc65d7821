package repository

import (
	"context"

	"admissionapi/internal/model"
)

// DispatchRepository records attempts to hand a case to external systems.
type DispatchRepository interface {
	// Record inserts a dispatch attempt and advances the owning case row in
	// one transaction. The case write re-checks stage, status and version, so
	// a concurrent transition or cancellation yields ErrConflict and nothing
	// is recorded. When complete is true the same statement marks the case
	// CONCLUIDA.
	Record(ctx context.Context, rec *model.DispatchRecord, fromVersion int64, complete bool) (*model.DispatchRecord, error)

	// HasSuccess reports whether the case has at least one successful
	// dispatch to the target.
	HasSuccess(ctx context.Context, caseID string, target model.DispatchTarget) (bool, error)

	ListByCase(ctx context.Context, caseID string) ([]model.DispatchRecord, error)
}
