package service

import (
	"context"
	"database/sql"
	"errors"

	"admissionapi/internal/model"
	"admissionapi/internal/registry"
	"admissionapi/internal/repository"
)

// BuildReport evaluates the case's active documents against the applicable
// templates. Pure function of its inputs; the workflow gates and the
// progress endpoint both rely on it being side-effect free.
func BuildReport(reg *registry.Registry, c *model.AdmissionCase, docs []model.AdmissionDocument) *model.ChecklistReport {
	byKind := make(map[string]*model.AdmissionDocument, len(docs))
	for i := range docs {
		byKind[docs[i].Kind] = &docs[i]
	}

	report := &model.ChecklistReport{CaseID: c.ID}
	required := reg.Required(c)
	for _, t := range required {
		item := model.ChecklistItem{
			Kind:        t.Kind,
			DisplayName: t.DisplayName,
			Mandatory:   t.Mandatory,
			State:       model.ChecklistMissing,
		}
		if doc, ok := byKind[t.Kind]; ok {
			item.DocumentID = doc.ID
			switch doc.Status {
			case model.DocumentApproved:
				item.State = model.ChecklistApproved
			case model.DocumentRejected:
				item.State = model.ChecklistRejected
			default:
				item.State = model.ChecklistPending
			}
			delete(byKind, t.Kind)
		}
		switch item.State {
		case model.ChecklistMissing:
			report.Missing++
		case model.ChecklistPending:
			report.Pending++
		case model.ChecklistApproved:
			report.Approved++
		case model.ChecklistRejected:
			report.Rejected++
		}
		report.Items = append(report.Items, item)
	}

	// Whatever is left over references no applicable template: a legacy or
	// no-longer-required kind. Reported, never fatal.
	for _, doc := range docs {
		if _, ok := byKind[doc.Kind]; ok {
			report.Orphaned = append(report.Orphaned, doc.Kind)
		}
	}
	return report
}

// ChecklistService exposes read-only checklist evaluation.
type ChecklistService interface {
	// Evaluate computes the checklist report for a case from current state.
	Evaluate(ctx context.Context, caseID string) (*model.ChecklistReport, error)
}

type checklistService struct {
	reg   *registry.Registry
	cases repository.CaseRepository
	docs  repository.DocumentRepository
}

// NewChecklistService constructs a ChecklistService.
func NewChecklistService(reg *registry.Registry, cases repository.CaseRepository, docs repository.DocumentRepository) ChecklistService {
	return &checklistService{reg: reg, cases: cases, docs: docs}
}

func (s *checklistService) Evaluate(ctx context.Context, caseID string) (*model.ChecklistReport, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	docs, err := s.docs.ListActiveByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return BuildReport(s.reg, c, docs), nil
}
