package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) Record(ctx context.Context, rec *model.DispatchRecord, fromVersion int64, complete bool) (*model.DispatchRecord, error) {
	args := m.Called(ctx, rec, fromVersion, complete)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.DispatchRecord) *model.DispatchRecord); ok {
		return f(ctx, rec), args.Error(1)
	}
	return args.Get(0).(*model.DispatchRecord), args.Error(1)
}

func (m *MockDispatchRepository) HasSuccess(ctx context.Context, caseID string, target model.DispatchTarget) (bool, error) {
	args := m.Called(ctx, caseID, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatchRepository) ListByCase(ctx context.Context, caseID string) ([]model.DispatchRecord, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DispatchRecord), args.Error(1)
}
