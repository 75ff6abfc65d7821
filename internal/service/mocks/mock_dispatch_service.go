package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Dispatch(ctx context.Context, caseID string, target model.DispatchTarget, actor string) (*model.DispatchRecord, error) {
	args := m.Called(ctx, caseID, target, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DispatchRecord), args.Error(1)
}

func (m *MockDispatchService) History(ctx context.Context, caseID string) ([]model.DispatchRecord, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DispatchRecord), args.Error(1)
}
