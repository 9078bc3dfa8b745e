package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "fleetman/internal/log"
	"fleetman/internal/repos"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(tmpl, data)
}

// storeError maps a repository error to a JSON response: unknown ids are
// a 404, everything else logs and surfaces a generic 500.
func storeError(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"reason": msg})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
