package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"admissionapi/internal/http/middleware"
	"admissionapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string, details ...string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the admission error taxonomy to HTTP responses.
// Gate failures carry the offending document kinds so the UI can show the
// candidate exactly what is missing, never a generic "cannot proceed".
// Anything unrecognized is an infrastructure fault and stays a plain 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var incomplete *service.IncompleteDocumentsError
	if errors.As(err, &incomplete) {
		return writeError(c, fiber.StatusUnprocessableEntity, "INCOMPLETE_DOCUMENTS", incomplete.Error(), incomplete.Missing...)
	}
	var unapproved *service.UnapprovedDocumentsError
	if errors.As(err, &unapproved) {
		return writeError(c, fiber.StatusUnprocessableEntity, "UNAPPROVED_DOCUMENTS", unapproved.Error(), unapproved.Kinds...)
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "CASE_TERMINAL", "case is in a terminal status")
	case errors.Is(err, service.ErrNoTransition):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", "requested stage is not the next stage in sequence")
	case errors.Is(err, service.ErrMissingContract):
		return writeError(c, fiber.StatusUnprocessableEntity, "MISSING_CONTRACT", "contract reference has not been generated")
	case errors.Is(err, service.ErrMissingSignature):
		return writeError(c, fiber.StatusUnprocessableEntity, "MISSING_SIGNATURE", "no signature confirmation on the case")
	case errors.Is(err, service.ErrMissingDispatch):
		return writeError(c, fiber.StatusUnprocessableEntity, "MISSING_DISPATCH", "no successful eSocial dispatch recorded")
	case errors.Is(err, service.ErrAlreadyValidated):
		return writeError(c, fiber.StatusConflict, "ALREADY_VALIDATED", "document already has a validation decision")
	case errors.Is(err, service.ErrReasonRequired):
		return writeError(c, fiber.StatusBadRequest, "REASON_REQUIRED", "rejection reason is required")
	case errors.Is(err, service.ErrInvalidDecision):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DECISION", "decision must be APPROVED or REJECTED")
	case errors.Is(err, service.ErrUnknownKind):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_KIND", "document kind is not in the template registry")
	case errors.Is(err, service.ErrStageMismatch):
		return writeError(c, fiber.StatusConflict, "STAGE_MISMATCH", "case stage does not match the dispatch target")
	case errors.Is(err, service.ErrStaleState):
		return writeError(c, fiber.StatusConflict, "STALE_STATE", "case was modified concurrently, retry after re-reading")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
