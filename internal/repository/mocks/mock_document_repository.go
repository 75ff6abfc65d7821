package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateActive(ctx context.Context, doc *model.AdmissionDocument) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentRepository) ListActiveByCase(ctx context.Context, caseID string) ([]model.AdmissionDocument, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentRepository) Decide(ctx context.Context, id string, status model.DocumentStatus, actor string, reason *string) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, id, status, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}
