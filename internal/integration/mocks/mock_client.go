package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Dispatch(ctx context.Context, caseID string, target model.DispatchTarget) (string, error) {
	args := m.Called(ctx, caseID, target)
	return args.String(0), args.Error(1)
}
