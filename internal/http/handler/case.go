package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"admissionapi/internal/model"
	"admissionapi/internal/service"
)

// actorHeader carries the authenticated actor identity resolved upstream
// (gateway/auth layer). The core treats it as an opaque string.
const actorHeader = "X-Actor-ID"

func actorFrom(c *fiber.Ctx) string {
	if a := c.Get(actorHeader); a != "" {
		return a
	}
	return "system"
}

// CreateCase opens a new admission case at SOLICITACAO_VAGA.
func CreateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateCaseInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		created, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// ListCases returns cases with limit/offset pagination.
func ListCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetCase returns a single case by ID.
func GetCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		found, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(found)
	}
}

// GetChecklist returns the document checklist report for a case.
func GetChecklist(svc service.ChecklistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		report, err := svc.Evaluate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

type advanceRequest struct {
	Stage model.Stage `json:"stage"`
}

// AdvanceCase moves the case to the requested next stage.
func AdvanceCase(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req advanceRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if !req.Stage.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STAGE", "unknown stage")
		}
		updated, err := svc.Advance(c.UserContext(), id, req.Stage, actorFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

type terminateRequest struct {
	Reason string `json:"reason"`
}

// CancelCase terminates the case with status CANCELADA.
func CancelCase(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req terminateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		updated, err := svc.Cancel(c.UserContext(), id, req.Reason, actorFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

// RejectCase terminates the case with status REPROVADA.
func RejectCase(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req terminateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		updated, err := svc.Reject(c.UserContext(), id, req.Reason, actorFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

// CaseHistory returns the transition audit trail of a case.
func CaseHistory(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		attempts, err := svc.History(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(attempts)
	}
}

type contractRequest struct {
	ContractRef string `json:"contract_ref"`
}

// AttachContract records the generated contract reference on the case.
func AttachContract(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req contractRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		updated, err := svc.AttachContract(c.UserContext(), id, req.ContractRef)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

type signatureRequest struct {
	Method   string     `json:"method"` // DIGITAL or PHYSICAL
	SignedAt *time.Time `json:"signed_at"`
}

// RegisterSignature confirms either signature channel for the case.
func RegisterSignature(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req signatureRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		var (
			updated *model.AdmissionCase
			err     error
		)
		switch req.Method {
		case "DIGITAL":
			updated, err = svc.ConfirmDigitalSignature(c.UserContext(), id)
		case "PHYSICAL":
			if req.SignedAt == nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "signed_at is required for physical signatures")
			}
			updated, err = svc.RegisterPhysicalSignature(c.UserContext(), id, *req.SignedAt)
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "method must be DIGITAL or PHYSICAL")
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}
