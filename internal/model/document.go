package model

import "time"

// DocumentStatus is the validation status of an uploaded admission document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// Valid reports whether s is a known document status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return true
	default:
		return false
	}
}

// AdmissionDocument is one uploaded file for a (case, kind) pair. At most one
// document per pair is active; a re-upload deactivates the previous one
// instead of overwriting it.
type AdmissionDocument struct {
	ID          string `json:"id"`
	CaseID      string `json:"case_id"`
	Kind        string `json:"kind"`
	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`

	Status          DocumentStatus `json:"status"`
	ValidatedBy     *string        `json:"validated_by,omitempty"`
	ValidatedAt     *time.Time     `json:"validated_at,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
