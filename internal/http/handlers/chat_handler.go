package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fleetman/internal/log"
	"fleetman/internal/services"
)

type ChatHandler struct {
	Chat *services.ChatService
}

type chatPayload struct {
	Message string `json:"message"`
	Action  string `json:"action"`
}

// POST /api/chat/query
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var p chatPayload
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid chat query")
	}
	response, err := h.Chat.Respond(p.Action)
	if err != nil {
		return storeError(c, "chat.query", err)
	}
	applog.Info(c, "chat.query", map[string]any{"action": p.Action})
	return c.JSON(fiber.Map{"response": response})
}
