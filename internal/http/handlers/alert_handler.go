package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fleetman/internal/domain"
	applog "fleetman/internal/log"
	"fleetman/internal/repos"
	"fleetman/internal/validate"
)

type AlertHandler struct {
	Alerts   *repos.AlertRepo
	Vehicles *repos.VehicleRepo
}

// GET /api/alerts
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.Alerts.List()
	if err != nil {
		return storeError(c, "alerts.list", err)
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return c.JSON(alerts)
}

type alertPayload struct {
	VehicleID *string `json:"vehicleId"`
	Type      *string `json:"type"`
	Message   *string `json:"message"`
	Priority  *string `json:"priority"`
}

// POST /api/alerts — manual alert creation
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var p alertPayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid alert data")
	}
	if p.VehicleID == nil || p.Type == nil || p.Message == nil {
		return badRequest(c, "vehicleId, type and message are required")
	}
	if _, ok := validate.Text(*p.Message); !ok {
		return badRequest(c, "invalid message")
	}
	priority := domain.PriorityMedium
	if p.Priority != nil {
		pr, ok := validate.Priority(*p.Priority)
		if !ok {
			return badRequest(c, "invalid priority")
		}
		priority = pr
	}

	// Owning vehicle must exist.
	if _, err := h.Vehicles.Get(*p.VehicleID); err != nil {
		return storeError(c, "alerts.create", err)
	}

	a := domain.Alert{
		ID:        uuid.NewString(),
		VehicleID: *p.VehicleID,
		Type:      *p.Type,
		Message:   *p.Message,
		Priority:  priority,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Alerts.Create(a); err != nil {
		return storeError(c, "alerts.create", err)
	}
	applog.Audit(c, "alerts.create", map[string]any{"alert_id": a.ID, "vehicle_id": a.VehicleID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// PUT /api/alerts/:id/read
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid alert id")
	}
	if err := h.Alerts.MarkRead(id); err != nil {
		return storeError(c, "alerts.read", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/alerts/:id
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid alert id")
	}
	if err := h.Alerts.Delete(id); err != nil {
		return storeError(c, "alerts.delete", err)
	}
	applog.Audit(c, "alerts.delete", map[string]any{"alert_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
