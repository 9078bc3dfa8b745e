package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fleetman/internal/log"
	"fleetman/internal/services"
	"fleetman/internal/validate"
)

type ValidationHandler struct {
	Validation *services.ValidationService
}

// GET/POST /api/vehicles/:id/validate
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid vehicle id")
	}
	res, err := h.Validation.ValidateVehicle(c.Context(), id)
	if err != nil {
		return storeError(c, "validation.vehicle", err)
	}
	applog.Info(c, "validation.vehicle", map[string]any{"vehicle_id": id, "status": res.Status})
	return c.JSON(res)
}

// POST /api/vehicles/validate-all
func (h *ValidationHandler) ValidateAll(c *fiber.Ctx) error {
	if err := h.Validation.ValidateAll(c.Context()); err != nil {
		applog.Error(c, "validation.sweep", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to validate all vehicles"})
	}
	applog.Info(c, "validation.sweep", nil)
	return c.JSON(fiber.Map{"message": "all vehicles validated successfully"})
}
