package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
	repoMocks "admissionapi/internal/repository/mocks"
)

func validCreateInput() CreateCaseInput {
	salary := 4500.0
	return CreateCaseInput{
		CandidateName:  "Maria Souza",
		CandidateCPF:   "123.456.789-01",
		CandidateEmail: "maria@example.com",
		CandidatePhone: "+55 11 99999-0000",
		JobTitle:       "Analista Fiscal",
		Department:     "Fiscal",
		ContractType:   model.ContractCLT,
		ProposedSalary: &salary,
	}
}

func TestCaseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path normalizes cpf and seeds the case", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		mCases.On("Create", ctx, mock.MatchedBy(func(c *model.AdmissionCase) bool {
			return c.CandidateCPF == "12345678901" &&
				c.Stage == model.StageSolicitacaoVaga &&
				c.Status == model.StatusEmAndamento &&
				c.Version == 1 &&
				c.ID != ""
		})).Return(&model.AdmissionCase{ID: "case-1"}, nil)

		got, err := svc.Create(ctx, validCreateInput())
		assert.NoError(t, err)
		assert.Equal(t, "case-1", got.ID)
		mCases.AssertExpectations(t)
	})

	t.Run("rejects malformed cpf", func(t *testing.T) {
		svc := NewCaseService(nil)
		in := validCreateInput()
		in.CandidateCPF = "123.456"

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorContains(t, err, "cpf")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewCaseService(nil)
		in := validCreateInput()
		in.CandidateName = "   "

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := NewCaseService(nil)
		in := validCreateInput()
		in.CandidateEmail = "not-an-email"

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects unknown contract type", func(t *testing.T) {
		svc := NewCaseService(nil)
		in := validCreateInput()
		in.ContractType = model.ContractType("FREELANCE")

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCaseService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults limit and offset", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		mCases.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).Return(&repository.PageResult[model.AdmissionCase]{
			Items: []model.AdmissionCase{{ID: "case-1"}},
			Total: 1,
		}, nil)

		res, err := svc.List(ctx, 0, -5)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("passes the page through", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		mCases.On("List", ctx, repository.PageQuery{Limit: 25, Offset: 50}).Return(&repository.PageResult[model.AdmissionCase]{
			Items: nil,
			Total: 0,
		}, nil)

		_, err := svc.List(ctx, 25, 50)
		assert.NoError(t, err)
		mCases.AssertExpectations(t)
	})
}

func TestCaseService_ArtifactCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("attach contract", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		c := inProgressCase(model.StageGeracaoContrato)
		updated := inProgressCase(model.StageGeracaoContrato)
		updated.ContractRef = "contract-42"
		updated.Version = 4
		mCases.On("FindByID", ctx, "case-1").Return(c, nil)
		mCases.On("SetContractRef", ctx, "case-1", int64(3), "contract-42").Return(updated, nil)

		got, err := svc.AttachContract(ctx, "case-1", "contract-42")
		assert.NoError(t, err)
		assert.Equal(t, "contract-42", got.ContractRef)
	})

	t.Run("attach contract requires a reference", func(t *testing.T) {
		svc := NewCaseService(nil)
		_, err := svc.AttachContract(ctx, "case-1", "  ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("digital signature confirmation", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		c := inProgressCase(model.StageAssinaturaDigital)
		updated := inProgressCase(model.StageAssinaturaDigital)
		updated.DigitalSignatureConfirmed = true
		mCases.On("FindByID", ctx, "case-1").Return(c, nil)
		mCases.On("SetDigitalSignature", ctx, "case-1", int64(3)).Return(updated, nil)

		got, err := svc.ConfirmDigitalSignature(ctx, "case-1")
		assert.NoError(t, err)
		assert.True(t, got.Signed())
	})

	t.Run("physical signature requires a date", func(t *testing.T) {
		svc := NewCaseService(nil)
		_, err := svc.RegisterPhysicalSignature(ctx, "case-1", time.Time{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("physical signature records the date", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		signedAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
		c := inProgressCase(model.StageAssinaturaDigital)
		updated := inProgressCase(model.StageAssinaturaDigital)
		updated.PhysicallySigned = true
		updated.PhysicalSignatureDate = &signedAt
		mCases.On("FindByID", ctx, "case-1").Return(c, nil)
		mCases.On("SetPhysicalSignature", ctx, "case-1", int64(3), signedAt).Return(updated, nil)

		got, err := svc.RegisterPhysicalSignature(ctx, "case-1", signedAt)
		assert.NoError(t, err)
		assert.True(t, got.Signed())
	})

	t.Run("commands refuse terminal cases", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		c := inProgressCase(model.StageGeracaoContrato)
		c.Status = model.StatusCancelada
		mCases.On("FindByID", ctx, "case-1").Return(c, nil)

		_, err := svc.AttachContract(ctx, "case-1", "contract-42")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("version conflict maps to stale state", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)

		c := inProgressCase(model.StageGeracaoContrato)
		mCases.On("FindByID", ctx, "case-1").Return(c, nil)
		mCases.On("SetContractRef", ctx, "case-1", int64(3), "contract-42").Return(nil, repository.ErrConflict)

		_, err := svc.AttachContract(ctx, "case-1", "contract-42")
		assert.ErrorIs(t, err, ErrStaleState)
	})

	t.Run("unknown case", func(t *testing.T) {
		mCases := new(repoMocks.MockCaseRepository)
		svc := NewCaseService(mCases)
		mCases.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
