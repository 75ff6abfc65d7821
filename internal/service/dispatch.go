package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"admissionapi/internal/integration"
	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

// DispatchService is the gate in front of the external integrations. A
// dispatch is permitted only from the stage matching the target; the outcome
// is recorded either way. A failed external call is data, not an error: the
// returned record carries outcome FAILURE and the caller decides what to do.
type DispatchService interface {
	Dispatch(ctx context.Context, caseID string, target model.DispatchTarget, actor string) (*model.DispatchRecord, error)
	History(ctx context.Context, caseID string) ([]model.DispatchRecord, error)
}

type dispatchService struct {
	cases      repository.CaseRepository
	dispatches repository.DispatchRepository
	client     integration.Client
}

// NewDispatchService constructs a DispatchService.
func NewDispatchService(cases repository.CaseRepository, dispatches repository.DispatchRepository, client integration.Client) DispatchService {
	return &dispatchService{cases: cases, dispatches: dispatches, client: client}
}

func (s *dispatchService) Dispatch(ctx context.Context, caseID string, target model.DispatchTarget, actor string) (*model.DispatchRecord, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	if !target.Valid() {
		return nil, ErrInvalidInput
	}
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status != model.StatusEmAndamento {
		return nil, ErrInvalidState
	}
	if c.Stage != target.Stage() {
		return nil, ErrStageMismatch
	}

	rec := &model.DispatchRecord{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		Target:    target,
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	}
	ref, dispatchErr := s.client.Dispatch(ctx, c.ID, target)
	if dispatchErr != nil {
		rec.Outcome = model.DispatchFailed
		rec.ErrorDetail = dispatchErr.Error()
	} else {
		rec.Outcome = model.DispatchSucceeded
		rec.ResponseRef = ref
	}

	// A successful Thomson Reuters integration is the end of the line: the
	// case is complete. The outcome record and the case write commit as one
	// unit; a concurrent writer invalidates the version and nothing lands.
	complete := rec.Outcome == model.DispatchSucceeded && target == model.TargetThomson
	stored, err := s.dispatches.Record(ctx, rec, c.Version, complete)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStaleState
		}
		return nil, err
	}
	return stored, nil
}

func (s *dispatchService) History(ctx context.Context, caseID string) ([]model.DispatchRecord, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	return s.dispatches.ListByCase(ctx, caseID)
}
