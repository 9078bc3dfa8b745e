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

type MaintenanceHandler struct {
	Maintenance *repos.MaintenanceRepo
	Vehicles    *repos.VehicleRepo
	Parts       *repos.PartRepo
}

// GET /api/maintenance — records with vehicle and parts used
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	records, err := h.Maintenance.List()
	if err != nil {
		return storeError(c, "maintenance.list", err)
	}

	out := make([]domain.MaintenanceWithParts, 0, len(records))
	for _, rec := range records {
		vehicle, err := h.Vehicles.Get(rec.VehicleID)
		if err != nil {
			return storeError(c, "maintenance.list", err)
		}
		used, err := h.Maintenance.UsagesWithParts(rec.ID)
		if err != nil {
			return storeError(c, "maintenance.list", err)
		}
		out = append(out, domain.MaintenanceWithParts{
			MaintenanceRecord: rec,
			Vehicle:           vehicle,
			PartsUsed:         used,
		})
	}
	return c.JSON(out)
}

// GET /api/maintenance/vehicle/:vehicleId
func (h *MaintenanceHandler) ListByVehicle(c *fiber.Ctx) error {
	vehicleID, ok := validate.ID(c.Params("vehicleId"))
	if !ok {
		return badRequest(c, "invalid vehicle id")
	}
	records, err := h.Maintenance.ListByVehicle(vehicleID)
	if err != nil {
		return storeError(c, "maintenance.list_by_vehicle", err)
	}
	if records == nil {
		records = []domain.MaintenanceRecord{}
	}
	return c.JSON(records)
}

type partUsedPayload struct {
	PartID   string `json:"partId"`
	Quantity int    `json:"quantity"`
}

type maintenancePayload struct {
	VehicleID   *string           `json:"vehicleId"`
	Type        *string           `json:"type"`
	Description *string           `json:"description"`
	Cost        *int              `json:"cost"`
	Duration    *int              `json:"duration"`
	Technician  *string           `json:"technician"`
	CompletedAt *time.Time        `json:"completedAt"`
	NextDue     *time.Time        `json:"nextDue"`
	PartsUsed   []partUsedPayload `json:"partsUsed"`
}

func (p *maintenancePayload) checkFields() (string, bool) {
	if p.Type != nil {
		if _, ok := validate.MaintenanceType(*p.Type); !ok {
			return "invalid maintenance type", false
		}
	}
	if p.Description != nil {
		if _, ok := validate.Text(*p.Description); !ok {
			return "invalid description", false
		}
	}
	if p.Cost != nil && !validate.NonNeg(*p.Cost) {
		return "cost must be non-negative", false
	}
	if p.Duration != nil && !validate.Pos(*p.Duration) {
		return "duration must be positive", false
	}
	if p.Technician != nil {
		if _, ok := validate.Name(*p.Technician); !ok {
			return "invalid technician", false
		}
	}
	return "", true
}

// POST /api/maintenance — creates the record and its part usage rows
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var p maintenancePayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid maintenance data")
	}
	if p.VehicleID == nil || p.Type == nil || p.Description == nil {
		return badRequest(c, "vehicleId, type and description are required")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	// Owning vehicle must exist.
	if _, err := h.Vehicles.Get(*p.VehicleID); err != nil {
		return storeError(c, "maintenance.create", err)
	}

	rec := domain.MaintenanceRecord{
		ID:          uuid.NewString(),
		VehicleID:   *p.VehicleID,
		Type:        *p.Type,
		Description: *p.Description,
		Duration:    60,
		Technician:  "Service technician",
		CompletedAt: time.Now().UTC(),
		NextDue:     p.NextDue,
	}
	if p.Cost != nil {
		rec.Cost = *p.Cost
	}
	if p.Duration != nil {
		rec.Duration = *p.Duration
	}
	if p.Technician != nil {
		rec.Technician = *p.Technician
	}
	if p.CompletedAt != nil {
		rec.CompletedAt = p.CompletedAt.UTC()
	}

	if err := h.Maintenance.Create(rec); err != nil {
		return storeError(c, "maintenance.create", err)
	}

	for _, used := range p.PartsUsed {
		partID, ok := validate.ID(used.PartID)
		if !ok || !validate.Pos(used.Quantity) {
			return badRequest(c, "invalid part usage")
		}
		if _, err := h.Parts.Get(partID); err != nil {
			return storeError(c, "maintenance.create", err)
		}
		usage := domain.PartUsage{
			ID:            uuid.NewString(),
			MaintenanceID: rec.ID,
			PartID:        partID,
			Quantity:      used.Quantity,
		}
		if err := h.Maintenance.CreateUsage(usage); err != nil {
			return storeError(c, "maintenance.create", err)
		}
	}

	applog.Audit(c, "maintenance.create", map[string]any{
		"maintenance_id": rec.ID,
		"vehicle_id":     rec.VehicleID,
		"type":           rec.Type,
	})
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// PATCH /api/maintenance/:id
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid maintenance id")
	}
	var p maintenancePayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid maintenance data")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	rec, err := h.Maintenance.Update(id, repos.MaintenanceUpdate{
		Type:        p.Type,
		Description: p.Description,
		Cost:        p.Cost,
		Duration:    p.Duration,
		Technician:  p.Technician,
	})
	if err != nil {
		return storeError(c, "maintenance.update", err)
	}
	applog.Audit(c, "maintenance.update", map[string]any{"maintenance_id": id})
	return c.JSON(rec)
}

// DELETE /api/maintenance/:id
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid maintenance id")
	}
	if err := h.Maintenance.Delete(id); err != nil {
		return storeError(c, "maintenance.delete", err)
	}
	applog.Audit(c, "maintenance.delete", map[string]any{"maintenance_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
