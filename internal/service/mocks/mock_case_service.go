package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
	"admissionapi/internal/service"
)

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) Create(ctx context.Context, in service.CreateCaseInput) (*model.AdmissionCase, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseService) Get(ctx context.Context, id string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseService) List(ctx context.Context, limit, offset int) (*service.CaseListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseListResult), args.Error(1)
}

func (m *MockCaseService) AttachContract(ctx context.Context, id, ref string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseService) ConfirmDigitalSignature(ctx context.Context, id string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockCaseService) RegisterPhysicalSignature(ctx context.Context, id string, signedAt time.Time) (*model.AdmissionCase, error) {
	args := m.Called(ctx, id, signedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}
