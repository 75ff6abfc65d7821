package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockChecklistService struct {
	mock.Mock
}

func (m *MockChecklistService) Evaluate(ctx context.Context, caseID string) (*model.ChecklistReport, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistReport), args.Error(1)
}
