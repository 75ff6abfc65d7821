package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"admissionapi/internal/model"
	"admissionapi/internal/registry"
	"admissionapi/internal/repository"
)

// WorkflowService is the state machine governing admission cases. All stage
// and status mutations go through it; nothing else writes those columns.
type WorkflowService interface {
	// Advance moves the case to the requested stage. The stage must be the
	// immediate successor of the current one and every gate for entering it
	// must hold. Exactly one of two concurrent calls succeeds; the loser
	// gets ErrStaleState.
	Advance(ctx context.Context, caseID string, to model.Stage, actor string) (*model.AdmissionCase, error)

	// Cancel terminates the case with status CANCELADA.
	Cancel(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error)

	// Reject terminates the case with status REPROVADA. Reason is mandatory.
	Reject(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error)

	// History returns the transition audit trail for a case.
	History(ctx context.Context, caseID string) ([]model.TransitionAttempt, error)
}

type workflowService struct {
	reg         *registry.Registry
	cases       repository.CaseRepository
	docs        repository.DocumentRepository
	transitions repository.TransitionRepository
	dispatches  repository.DispatchRepository
}

// NewWorkflowService constructs a WorkflowService.
func NewWorkflowService(
	reg *registry.Registry,
	cases repository.CaseRepository,
	docs repository.DocumentRepository,
	transitions repository.TransitionRepository,
	dispatches repository.DispatchRepository,
) WorkflowService {
	return &workflowService{
		reg:         reg,
		cases:       cases,
		docs:        docs,
		transitions: transitions,
		dispatches:  dispatches,
	}
}

func (s *workflowService) Advance(ctx context.Context, caseID string, to model.Stage, actor string) (*model.AdmissionCase, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if c.Status != model.StatusEmAndamento {
		return nil, s.blocked(ctx, c, to, actor, ErrInvalidState)
	}

	next, ok := c.Stage.Next()
	if !ok || to != next {
		return nil, s.blocked(ctx, c, to, actor, ErrNoTransition)
	}

	if err := s.gate(ctx, c, next); err != nil {
		return nil, s.blocked(ctx, c, to, actor, err)
	}

	attempt := &model.TransitionAttempt{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		FromStage: c.Stage,
		ToStage:   next,
		Actor:     actor,
		Outcome:   model.TransitionAllowed,
		CreatedAt: time.Now().UTC(),
	}
	updated, err := s.cases.AdvanceStage(ctx, c.ID, c.Version, next, attempt)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStaleState
		}
		return nil, err
	}
	return updated, nil
}

// gate checks the precondition for entering the given stage. The case is
// never mutated here.
func (s *workflowService) gate(ctx context.Context, c *model.AdmissionCase, entering model.Stage) error {
	switch entering {
	case model.StageValidacaoDocumentos:
		report, err := s.report(ctx, c)
		if err != nil {
			return err
		}
		if missing := report.MissingMandatory(); len(missing) > 0 {
			return &IncompleteDocumentsError{Missing: missing}
		}
	case model.StageExameAdmissional:
		report, err := s.report(ctx, c)
		if err != nil {
			return err
		}
		if kinds := report.UnapprovedMandatory(); len(kinds) > 0 {
			return &UnapprovedDocumentsError{Kinds: kinds}
		}
	case model.StageAssinaturaDigital:
		if c.ContractRef == "" {
			return ErrMissingContract
		}
	case model.StageEnvioEsocial:
		if !c.Signed() {
			return ErrMissingSignature
		}
	case model.StageIntegracaoThomson:
		ok, err := s.dispatches.HasSuccess(ctx, c.ID, model.TargetEsocial)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMissingDispatch
		}
	case model.StageSolicitacaoVaga, model.StageAprovacao, model.StageColetaDocumentos, model.StageGeracaoContrato:
		// No entry precondition.
	}
	return nil
}

func (s *workflowService) report(ctx context.Context, c *model.AdmissionCase) (*model.ChecklistReport, error) {
	docs, err := s.docs.ListActiveByCase(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return BuildReport(s.reg, c, docs), nil
}

// blocked appends a BLOCKED audit record and returns the gate error. Audit
// failures do not mask the business error.
func (s *workflowService) blocked(ctx context.Context, c *model.AdmissionCase, to model.Stage, actor string, cause error) error {
	attempt := &model.TransitionAttempt{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		FromStage: c.Stage,
		ToStage:   to,
		Actor:     actor,
		Outcome:   model.TransitionBlocked,
		Reason:    cause.Error(),
		CreatedAt: time.Now().UTC(),
	}
	_ = s.transitions.Append(ctx, attempt)
	return cause
}

func (s *workflowService) Cancel(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error) {
	return s.terminate(ctx, caseID, model.StatusCancelada, reason, actor)
}

func (s *workflowService) Reject(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.terminate(ctx, caseID, model.StatusReprovada, reason, actor)
}

func (s *workflowService) terminate(ctx context.Context, caseID string, status model.CaseStatus, reason, actor string) (*model.AdmissionCase, error) {
	if caseID == "" {
		return nil, ErrIDRequired
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

	attempt := &model.TransitionAttempt{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		FromStage: c.Stage,
		ToStage:   c.Stage,
		Actor:     actor,
		Outcome:   model.TransitionAllowed,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	updated, err := s.cases.Terminate(ctx, c.ID, c.Version, status, reason, attempt)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStaleState
		}
		return nil, err
	}
	return updated, nil
}

func (s *workflowService) History(ctx context.Context, caseID string) ([]model.TransitionAttempt, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	return s.transitions.ListByCase(ctx, caseID)
}
