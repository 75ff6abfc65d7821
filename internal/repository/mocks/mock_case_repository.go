package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
	"admissionapi/internal/repository"
)

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *model.AdmissionCase) (*model.AdmissionCase, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AdmissionCase], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AdmissionCase]), args.Error(1)
}

func (m *MockCaseRepository) AdvanceStage(ctx context.Context, id string, fromVersion int64, to model.Stage, attempt *model.TransitionAttempt) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, fromVersion, to, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) Terminate(ctx context.Context, id string, fromVersion int64, status model.CaseStatus, reason string, attempt *model.TransitionAttempt) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, fromVersion, status, reason, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) SetContractRef(ctx context.Context, id string, fromVersion int64, ref string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, fromVersion, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) SetDigitalSignature(ctx context.Context, id string, fromVersion int64) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, fromVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseRepository) SetPhysicalSignature(ctx context.Context, id string, fromVersion int64, signedAt time.Time) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, fromVersion, signedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}
