package model

// ChecklistState classifies one required document kind for a case.
type ChecklistState string

const (
	ChecklistMissing  ChecklistState = "MISSING"
	ChecklistPending  ChecklistState = "PENDING"
	ChecklistApproved ChecklistState = "APPROVED"
	ChecklistRejected ChecklistState = "REJECTED"
)

// ChecklistItem is the evaluation of a single template kind against the
// case's active documents.
type ChecklistItem struct {
	Kind        string         `json:"kind"`
	DisplayName string         `json:"display_name"`
	Mandatory   bool           `json:"mandatory"`
	State       ChecklistState `json:"state"`
	DocumentID  string         `json:"document_id,omitempty"`
}

// ChecklistReport is a pure snapshot of document completeness for a case.
// It carries no behavior; the workflow gates and the progress UI both read it.
type ChecklistReport struct {
	CaseID   string          `json:"case_id"`
	Items    []ChecklistItem `json:"items"`
	Missing  int             `json:"missing"`
	Pending  int             `json:"pending"`
	Approved int             `json:"approved"`
	Rejected int             `json:"rejected"`

	// Orphaned lists active document kinds that no longer match any template
	// entry. Informational only; never blocks a transition.
	Orphaned []string `json:"orphaned,omitempty"`
}

// MissingMandatory returns mandatory kinds with no active document at all.
func (r *ChecklistReport) MissingMandatory() []string {
	var kinds []string
	for _, it := range r.Items {
		if it.Mandatory && it.State == ChecklistMissing {
			kinds = append(kinds, it.Kind)
		}
	}
	return kinds
}

// UnapprovedMandatory returns mandatory kinds whose active document is not
// APPROVED, including kinds with no document. A REJECTED document counts as
// unapproved until a new upload supersedes it.
func (r *ChecklistReport) UnapprovedMandatory() []string {
	var kinds []string
	for _, it := range r.Items {
		if it.Mandatory && it.State != ChecklistApproved {
			kinds = append(kinds, it.Kind)
		}
	}
	return kinds
}
