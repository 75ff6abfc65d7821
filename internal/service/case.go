package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

// CaseListResult is the service-level DTO for paginated cases.
type CaseListResult struct {
	Items []model.AdmissionCase `json:"data"`
	Total int                   `json:"total"`
}

// CreateCaseInput carries the intake fields for a new admission case.
type CreateCaseInput struct {
	CandidateName  string             `json:"candidate_name"`
	CandidateCPF   string             `json:"candidate_cpf"`
	CandidateEmail string             `json:"candidate_email"`
	CandidatePhone string             `json:"candidate_phone"`
	JobTitle       string             `json:"job_title"`
	Department     string             `json:"department"`
	ContractType   model.ContractType `json:"contract_type"`
	ProposedSalary *float64           `json:"proposed_salary"`
	StartDate      *time.Time         `json:"start_date"`
	HasDependents  bool               `json:"has_dependents"`
}

// CaseService covers case intake, reads and the explicit artifact commands
// (contract reference, signature confirmations) the workflow gates consume.
type CaseService interface {
	Create(ctx context.Context, in CreateCaseInput) (*model.AdmissionCase, error)
	Get(ctx context.Context, id string) (*model.AdmissionCase, error)
	List(ctx context.Context, limit, offset int) (*CaseListResult, error)

	// AttachContract records the reference produced by contract generation.
	AttachContract(ctx context.Context, id, ref string) (*model.AdmissionCase, error)
	// ConfirmDigitalSignature marks the digital signature as confirmed.
	ConfirmDigitalSignature(ctx context.Context, id string) (*model.AdmissionCase, error)
	// RegisterPhysicalSignature records a physically signed contract.
	RegisterPhysicalSignature(ctx context.Context, id string, signedAt time.Time) (*model.AdmissionCase, error)
}

type caseService struct {
	cases repository.CaseRepository
}

// NewCaseService constructs a CaseService.
func NewCaseService(cases repository.CaseRepository) CaseService {
	return &caseService{cases: cases}
}

// normalizeCPF strips formatting and checks the digit count. Full check-digit
// validation stays with the intake UI; the backend only rejects garbage.
func normalizeCPF(cpf string) (string, error) {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 11 {
		return "", fmt.Errorf("%w: cpf must have 11 digits", ErrInvalidInput)
	}
	return digits, nil
}

func (s *caseService) Create(ctx context.Context, in CreateCaseInput) (*model.AdmissionCase, error) {
	if strings.TrimSpace(in.CandidateName) == "" {
		return nil, fmt.Errorf("%w: candidate name is required", ErrInvalidInput)
	}
	cpf, err := normalizeCPF(in.CandidateCPF)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(in.CandidateEmail, "@") {
		return nil, fmt.Errorf("%w: candidate email is invalid", ErrInvalidInput)
	}
	if !in.ContractType.Valid() {
		return nil, fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, in.ContractType)
	}

	now := time.Now().UTC()
	c := &model.AdmissionCase{
		ID:             uuid.NewString(),
		CandidateName:  strings.TrimSpace(in.CandidateName),
		CandidateCPF:   cpf,
		CandidateEmail: in.CandidateEmail,
		CandidatePhone: in.CandidatePhone,
		JobTitle:       in.JobTitle,
		Department:     in.Department,
		ContractType:   in.ContractType,
		ProposedSalary: in.ProposedSalary,
		StartDate:      in.StartDate,
		HasDependents:  in.HasDependents,
		Stage:          model.StageSolicitacaoVaga,
		Status:         model.StatusEmAndamento,
		Version:        1,
		RequestedAt:    now,
		UpdatedAt:      now,
	}
	return s.cases.Create(ctx, c)
}

func (s *caseService) Get(ctx context.Context, id string) (*model.AdmissionCase, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *caseService) List(ctx context.Context, limit, offset int) (*CaseListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.cases.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CaseListResult{Items: res.Items, Total: res.Total}, nil
}

// command runs one version-guarded case update, translating the repository
// error vocabulary into the service one.
func (s *caseService) command(ctx context.Context, id string, apply func(c *model.AdmissionCase) (*model.AdmissionCase, error)) (*model.AdmissionCase, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status != model.StatusEmAndamento {
		return nil, ErrInvalidState
	}
	updated, err := apply(c)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStaleState
		}
		return nil, err
	}
	return updated, nil
}

func (s *caseService) AttachContract(ctx context.Context, id, ref string) (*model.AdmissionCase, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("%w: contract reference is required", ErrInvalidInput)
	}
	return s.command(ctx, id, func(c *model.AdmissionCase) (*model.AdmissionCase, error) {
		return s.cases.SetContractRef(ctx, c.ID, c.Version, ref)
	})
}

func (s *caseService) ConfirmDigitalSignature(ctx context.Context, id string) (*model.AdmissionCase, error) {
	return s.command(ctx, id, func(c *model.AdmissionCase) (*model.AdmissionCase, error) {
		return s.cases.SetDigitalSignature(ctx, c.ID, c.Version)
	})
}

func (s *caseService) RegisterPhysicalSignature(ctx context.Context, id string, signedAt time.Time) (*model.AdmissionCase, error) {
	if signedAt.IsZero() {
		return nil, fmt.Errorf("%w: signature date is required", ErrInvalidInput)
	}
	return s.command(ctx, id, func(c *model.AdmissionCase) (*model.AdmissionCase, error) {
		return s.cases.SetPhysicalSignature(ctx, c.ID, c.Version, signedAt)
	})
}
