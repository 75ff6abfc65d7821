package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"admissionapi/internal/model"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, caseID, kind string, r io.Reader, originalFilename, contentType string, size int64) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, caseID, kind, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentService) Validate(ctx context.Context, docID, actor string, decision model.DocumentStatus, reason string) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, docID, actor, decision, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.AdmissionDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdmissionDocument), args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
