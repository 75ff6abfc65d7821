package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Advance(ctx context.Context, caseID string, to model.Stage, actor string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, caseID, to, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockWorkflowService) Cancel(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, caseID, reason, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockWorkflowService) Reject(ctx context.Context, caseID, reason, actor string) (*model.AdmissionCase, error) {
	args := m.Called(ctx, caseID, reason, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionCase), args.Error(1)
}

func (m *MockWorkflowService) History(ctx context.Context, caseID string) ([]model.TransitionAttempt, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransitionAttempt), args.Error(1)
}
