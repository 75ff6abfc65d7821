package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockTransitionRepository struct {
	mock.Mock
}

func (m *MockTransitionRepository) Append(ctx context.Context, attempt *model.TransitionAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockTransitionRepository) ListByCase(ctx context.Context, caseID string) ([]model.TransitionAttempt, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransitionAttempt), args.Error(1)
}
