package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"admissionapi/internal/model"
	"admissionapi/internal/service"
)

type dispatchRequest struct {
	Target model.DispatchTarget `json:"target"`
}

// DispatchCase hands the case to the external system matching its stage.
func DispatchCase(svc service.DispatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req dispatchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if !req.Target.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TARGET", "target must be ESOCIAL or THOMSON_REUTERS")
		}
		rec, err := svc.Dispatch(c.UserContext(), id, req.Target, actorFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// DispatchHistory returns the dispatch attempts recorded for a case.
func DispatchHistory(svc service.DispatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		recs, err := svc.History(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(recs)
	}
}
