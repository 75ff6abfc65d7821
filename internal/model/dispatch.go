package model

import "time"

// DispatchTarget identifies an external system reachable from a terminal
// collection stage.
type DispatchTarget string

const (
	TargetEsocial DispatchTarget = "ESOCIAL"
	TargetThomson DispatchTarget = "THOMSON_REUTERS"
)

// Valid reports whether t is a known dispatch target.
func (t DispatchTarget) Valid() bool {
	switch t {
	case TargetEsocial, TargetThomson:
		return true
	default:
		return false
	}
}

// Stage returns the case stage a dispatch to t is permitted from.
func (t DispatchTarget) Stage() Stage {
	switch t {
	case TargetEsocial:
		return StageEnvioEsocial
	case TargetThomson:
		return StageIntegracaoThomson
	default:
		return ""
	}
}

// DispatchOutcome records the result of one dispatch attempt.
type DispatchOutcome string

const (
	DispatchSucceeded DispatchOutcome = "SUCCESS"
	DispatchFailed    DispatchOutcome = "FAILURE"
)

// DispatchRecord is one attempt to hand a case to an external system. The
// external protocol is opaque; only the outcome and the provider's response
// reference are kept.
type DispatchRecord struct {
	ID          string          `json:"id"`
	CaseID      string          `json:"case_id"`
	Target      DispatchTarget  `json:"target"`
	Outcome     DispatchOutcome `json:"outcome"`
	ResponseRef string          `json:"response_ref,omitempty"`
	ErrorDetail string          `json:"error_detail,omitempty"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}
