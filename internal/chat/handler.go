package chat

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Chatter is the external chat-completion capability.
type Chatter interface {
	Chat(ctx context.Context, message string, extra any) (string, error)
}

type Handler struct {
	ai  Chatter
	log *zap.Logger
}

func NewHandler(ai Chatter, log *zap.Logger) *Handler {
	return &Handler{ai: ai, log: log}
}

type request struct {
	Message string `json:"message"`
	Context any    `json:"context"`
}

// Post serves POST /api/chat.
func (h *Handler) Post(c *fiber.Ctx) error {
	var in request
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(in.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	resp, err := h.ai.Chat(c.Context(), in.Message, in.Context)
	if err != nil {
		h.log.Error("chat delegate failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to process chat request")
	}
	return c.JSON(fiber.Map{"response": resp})
}
