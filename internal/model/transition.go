package model

import "time"

// TransitionOutcome records whether a requested transition was applied.
type TransitionOutcome string

const (
	TransitionAllowed TransitionOutcome = "ALLOWED"
	TransitionBlocked TransitionOutcome = "BLOCKED"
)

// TransitionAttempt is one append-only audit record of a workflow operation.
// Allowed attempts are written atomically with the stage change; blocked
// attempts are written on their own since the case stays untouched.
type TransitionAttempt struct {
	ID        string            `json:"id"`
	CaseID    string            `json:"case_id"`
	FromStage Stage             `json:"from_stage"`
	ToStage   Stage             `json:"to_stage"`
	Actor     string            `json:"actor"`
	Outcome   TransitionOutcome `json:"outcome"`
	Reason    string            `json:"reason,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
