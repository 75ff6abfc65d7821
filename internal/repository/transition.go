package repository

import (
	"context"

	"admissionapi/internal/model"
)

// TransitionRepository is the append-only audit trail of workflow attempts.
// ALLOWED records are written by CaseRepository inside the transition
// transaction; this interface covers BLOCKED records and reads.
type TransitionRepository interface {
	Append(ctx context.Context, attempt *model.TransitionAttempt) error
	ListByCase(ctx context.Context, caseID string) ([]model.TransitionAttempt, error)
}
