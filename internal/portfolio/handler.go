package portfolio

import (
	"context"
	"encoding/json"

	"tradepilot-api/internal/ai"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Provider is the external portfolio-data capability.
type Provider interface {
	Portfolio(ctx context.Context, address string) (json.RawMessage, error)
}

// Suggester is the external suggestion-generation capability.
type Suggester interface {
	Suggestions(ctx context.Context, portfolio json.RawMessage) ([]ai.Suggestion, error)
}

type Handler struct {
	provider    Provider
	suggester   Suggester
	defaultAddr string
	log         *zap.Logger
}

func NewHandler(p Provider, s Suggester, defaultAddr string, log *zap.Logger) *Handler {
	return &Handler{provider: p, suggester: s, defaultAddr: defaultAddr, log: log}
}

// Get serves GET /api/portfolio. The provider payload is passed through
// verbatim.
func (h *Handler) Get(c *fiber.Ctx) error {
	addr := c.Query("address", h.defaultAddr)
	if addr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "wallet address is required")
	}

	data, err := h.provider.Portfolio(c.Context(), addr)
	if err != nil {
		h.log.Error("portfolio delegate failed", zap.String("address", addr), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch portfolio")
	}
	return c.Type("json").Send(data)
}

type suggestionsRequest struct {
	Portfolio json.RawMessage `json:"portfolio"`
}

// Suggestions serves POST /api/portfolio/suggestions. A failing delegate is
// not an error here: the route answers 200 with the canned advisory pair.
func (h *Handler) Suggestions(c *fiber.Ctx) error {
	var in suggestionsRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if len(in.Portfolio) == 0 || string(in.Portfolio) == "null" {
		return fiber.NewError(fiber.StatusBadRequest, "portfolio is required")
	}

	s, err := h.suggester.Suggestions(c.Context(), in.Portfolio)
	if err != nil {
		h.log.Warn("suggestion delegate failed, serving fallback", zap.Error(err))
		return c.JSON(ai.Fallback())
	}
	return c.JSON(s)
}
