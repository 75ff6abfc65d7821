package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"admissionapi/internal/model"
	"admissionapi/internal/registry"
	"admissionapi/internal/repository"
	"admissionapi/internal/storage"
)

// presignExpiry bounds how long a download link stays usable.
const presignExpiry = 15 * time.Minute

// DocumentService covers document upload, validation decisions and download
// links. Uploads supersede: a new file for a (case, kind) pair deactivates
// the previous one and resets its evaluation to PENDING.
type DocumentService interface {
	// Upload streams the content to object storage and records the document
	// as the active upload for its kind. Storage is rolled back if the DB
	// write fails.
	Upload(ctx context.Context, caseID, kind string, r io.Reader, originalFilename, contentType string, size int64) (*model.AdmissionDocument, error)

	// Validate applies an APPROVED/REJECTED decision to a PENDING document.
	// It never advances the workflow; stage advance is a separate operation.
	Validate(ctx context.Context, docID, actor string, decision model.DocumentStatus, reason string) (*model.AdmissionDocument, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.AdmissionDocument, error)

	// DownloadURL returns a time-limited URL for the stored file.
	DownloadURL(ctx context.Context, id string) (string, error)
}

type documentService struct {
	reg   *registry.Registry
	store storage.Storage
	cases repository.CaseRepository
	docs  repository.DocumentRepository
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(reg *registry.Registry, store storage.Storage, cases repository.CaseRepository, docs repository.DocumentRepository) DocumentService {
	return &documentService{reg: reg, store: store, cases: cases, docs: docs}
}

func (s *documentService) Upload(ctx context.Context, caseID, kind string, r io.Reader, originalFilename, contentType string, size int64) (*model.AdmissionDocument, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if _, ok := s.reg.Lookup(kind); !ok {
		return nil, ErrUnknownKind
	}

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status != model.StatusEmAndamento {
		return nil, ErrInvalidState
	}

	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("cases", c.ID, kind, genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"document-kind":     kind,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.AdmissionDocument{
		ID:          uuid.NewString(),
		CaseID:      c.ID,
		Kind:        kind,
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		Status:      model.DocumentPending,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.CreateActive(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Validate(ctx context.Context, docID, actor string, decision model.DocumentStatus, reason string) (*model.AdmissionDocument, error) {
	if docID == "" {
		return nil, ErrIDRequired
	}
	switch decision {
	case model.DocumentApproved:
		// Reason is ignored for approvals.
	case model.DocumentRejected:
		if reason == "" {
			return nil, ErrReasonRequired
		}
	default:
		return nil, ErrInvalidDecision
	}

	var reasonArg *string
	if decision == model.DocumentRejected {
		reasonArg = &reason
	}
	doc, err := s.docs.Decide(ctx, docID, decision, actor, reasonArg)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyValidated
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.AdmissionDocument, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}
