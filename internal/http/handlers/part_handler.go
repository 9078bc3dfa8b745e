package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fleetman/internal/domain"
	applog "fleetman/internal/log"
	"fleetman/internal/repos"
	"fleetman/internal/services"
	"fleetman/internal/validate"
)

type PartHandler struct {
	Parts *repos.PartRepo
	Svc   *services.PartsService
}

// GET /api/parts — derived stock status included
func (h *PartHandler) List(c *fiber.Ctx) error {
	parts, err := h.Svc.ListWithStatus()
	if err != nil {
		return storeError(c, "parts.list", err)
	}
	return c.JSON(parts)
}

type partPayload struct {
	Name      *string `json:"name"`
	Reference *string `json:"reference"`
	Category  *string `json:"category"`
	Stock     *int    `json:"stock"`
	MinStock  *int    `json:"minStock"`
	UnitPrice *int    `json:"unitPrice"`
}

func (p *partPayload) checkFields() (string, bool) {
	if p.Name != nil {
		if _, ok := validate.Name(*p.Name); !ok {
			return "invalid name", false
		}
	}
	if p.Reference != nil {
		if _, ok := validate.ID(*p.Reference); !ok {
			return "invalid reference", false
		}
	}
	if p.Category != nil {
		if _, ok := validate.Name(*p.Category); !ok {
			return "invalid category", false
		}
	}
	if p.Stock != nil && !validate.NonNeg(*p.Stock) {
		return "stock must be non-negative", false
	}
	if p.MinStock != nil && !validate.NonNeg(*p.MinStock) {
		return "minStock must be non-negative", false
	}
	if p.UnitPrice != nil && !validate.NonNeg(*p.UnitPrice) {
		return "unitPrice must be non-negative", false
	}
	return "", true
}

// POST /api/parts
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var p partPayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid part data")
	}
	if p.Name == nil || p.Reference == nil || p.Category == nil || p.UnitPrice == nil {
		return badRequest(c, "name, reference, category and unitPrice are required")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	part := domain.Part{
		ID:        uuid.NewString(),
		Name:      *p.Name,
		Reference: *p.Reference,
		Category:  *p.Category,
		MinStock:  5,
		UnitPrice: *p.UnitPrice,
		CreatedAt: time.Now().UTC(),
	}
	if p.Stock != nil {
		part.Stock = *p.Stock
	}
	if p.MinStock != nil {
		part.MinStock = *p.MinStock
	}

	if err := h.Parts.Create(part); err != nil {
		return storeError(c, "parts.create", err)
	}
	applog.Audit(c, "parts.create", map[string]any{"part_id": part.ID, "reference": part.Reference})
	return c.Status(fiber.StatusCreated).JSON(part)
}

// PUT/PATCH /api/parts/:id
func (h *PartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid part id")
	}
	var p partPayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid part data")
	}
	if msg, ok := p.checkFields(); !ok {
		return badRequest(c, msg)
	}

	part, err := h.Parts.Update(id, repos.PartUpdate{
		Name:      p.Name,
		Reference: p.Reference,
		Category:  p.Category,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		UnitPrice: p.UnitPrice,
	})
	if err != nil {
		return storeError(c, "parts.update", err)
	}
	applog.Audit(c, "parts.update", map[string]any{"part_id": id})
	return c.JSON(part)
}

// DELETE /api/parts/:id
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid part id")
	}
	if err := h.Parts.Delete(id); err != nil {
		return storeError(c, "parts.delete", err)
	}
	applog.Audit(c, "parts.delete", map[string]any{"part_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
