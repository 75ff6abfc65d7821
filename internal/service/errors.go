package service

import (
	"errors"
	"strings"
)

// Business-rule errors returned by the admission services. Handlers map these
// to HTTP codes; infrastructure errors pass through untouched.
var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("not found")
	ErrReaderNil    = errors.New("reader is nil")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState: operation attempted on a terminal case.
	ErrInvalidState = errors.New("case is in a terminal status")
	// ErrNoTransition: requested stage is not the immediate successor.
	ErrNoTransition = errors.New("requested stage is not the next stage in sequence")
	// ErrMissingContract: ASSINATURA_DIGITAL requires a contract reference.
	ErrMissingContract = errors.New("contract reference has not been generated")
	// ErrMissingSignature: ENVIO_ESOCIAL requires a digital confirmation or a
	// dated physical signature.
	ErrMissingSignature = errors.New("no signature confirmation on the case")
	// ErrMissingDispatch: INTEGRACAO_THOMSON requires a successful eSocial
	// dispatch first.
	ErrMissingDispatch = errors.New("no successful eSocial dispatch recorded")

	ErrAlreadyValidated = errors.New("document already has a validation decision")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrInvalidDecision  = errors.New("decision must be APPROVED or REJECTED")
	ErrUnknownKind      = errors.New("document kind is not in the template registry")

	// ErrStageMismatch: dispatch attempted outside its corresponding stage.
	ErrStageMismatch = errors.New("case stage does not match the dispatch target")
	// ErrStaleState: the case changed under the caller; re-read and retry.
	ErrStaleState = errors.New("case was modified concurrently")
)

// IncompleteDocumentsError blocks leaving COLETA_DOCUMENTOS while mandatory
// kinds have no upload at all.
type IncompleteDocumentsError struct {
	Missing []string
}

func (e *IncompleteDocumentsError) Error() string {
	return "mandatory documents not uploaded: " + strings.Join(e.Missing, ", ")
}

// UnapprovedDocumentsError blocks leaving VALIDACAO_DOCUMENTOS while
// mandatory kinds are pending, rejected or missing.
type UnapprovedDocumentsError struct {
	Kinds []string
}

func (e *UnapprovedDocumentsError) Error() string {
	return "mandatory documents not approved: " + strings.Join(e.Kinds, ", ")
}
