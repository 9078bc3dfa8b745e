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

type VehicleHandler struct {
	Vehicles *repos.VehicleRepo
}

// GET /api/vehicles
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.Vehicles.List()
	if err != nil {
		return storeError(c, "vehicles.list", err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return c.JSON(vehicles)
}

// GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid vehicle id")
	}
	v, err := h.Vehicles.GetWithAlerts(id)
	if err != nil {
		return storeError(c, "vehicles.get", err)
	}
	return c.JSON(v)
}

type vehiclePayload struct {
	Plate   *string `json:"plate"`
	Make    *string `json:"make"`
	Model   *string `json:"model"`
	Year    *int    `json:"year"`
	Type    *string `json:"type"`
	Mileage *int    `json:"mileage"`
	Status  *string `json:"status"`
}

// checkFields validates whichever fields are present.
func (p *vehiclePayload) checkFields() (string, bool) {
	if p.Plate != nil {
		plate, ok := validate.Plate(*p.Plate)
		if !ok {
			return "invalid plate", false
		}
		*p.Plate = plate
	}
	if p.Make != nil {
		if _, ok := validate.Name(*p.Make); !ok {
			return "invalid make", false
		}
	}
	if p.Model != nil {
		if _, ok := validate.Name(*p.Model); !ok {
			return "invalid model", false
		}
	}
	if p.Year != nil && !validate.Year(*p.Year) {
		return "invalid year", false
	}
	if p.Type != nil {
		if _, ok := validate.VehicleType(*p.Type); !ok {
			return "invalid vehicle type", false
		}
	}
	if p.Mileage != nil && !validate.NonNeg(*p.Mileage) {
		return "mileage must be non-negative", false
	}
	if p.Status != nil {
		if _, ok := validate.VehicleStatus(*p.Status); !ok {
			return "invalid status", false
		}
	}
	return "", true
}

// POST /api/vehicles
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var p vehiclePayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid vehicle data")
	}
	if p.Plate == nil || p.Make == nil || p.Model == nil || p.Year == nil || p.Type == nil {
		return badRequest(c, "plate, make, model, year and type are required")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	v := domain.Vehicle{
		ID:        uuid.NewString(),
		Plate:     *p.Plate,
		Make:      *p.Make,
		Model:     *p.Model,
		Year:      *p.Year,
		Type:      *p.Type,
		Status:    domain.StatusOperational,
		CreatedAt: time.Now().UTC(),
	}
	if p.Mileage != nil {
		v.Mileage = *p.Mileage
	}
	if p.Status != nil {
		v.Status = domain.VehicleStatus(*p.Status)
	}

	if err := h.Vehicles.Create(v); err != nil {
		return storeError(c, "vehicles.create", err)
	}
	applog.Audit(c, "vehicles.create", map[string]any{"vehicle_id": v.ID, "plate": v.Plate})
	return c.Status(fiber.StatusCreated).JSON(v)
}

// PUT/PATCH /api/vehicles/:id
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid vehicle id")
	}
	var p vehiclePayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid vehicle data")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	v, err := h.Vehicles.Update(id, repos.VehicleUpdate{
		Plate:   p.Plate,
		Make:    p.Make,
		Model:   p.Model,
		Year:    p.Year,
		Type:    p.Type,
		Mileage: p.Mileage,
		Status:  p.Status,
	})
	if err != nil {
		return storeError(c, "vehicles.update", err)
	}
	applog.Audit(c, "vehicles.update", map[string]any{"vehicle_id": id})
	return c.JSON(v)
}

// DELETE /api/vehicles/:id
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid vehicle id")
	}
	if err := h.Vehicles.Delete(id); err != nil {
		return storeError(c, "vehicles.delete", err)
	}
	applog.Audit(c, "vehicles.delete", map[string]any{"vehicle_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
