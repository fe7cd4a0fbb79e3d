package trending

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type multiChainBody struct {
	Chains  []string       `json:"chains"`
	Limit   *int           `json:"limit"`
	Options map[string]any `json:"options"`
}

// MultiChain serves GET and POST /api/trending/multi-chain. Validation order:
// limit bounds first, then the chain whitelist. The aggregator is handed the
// full chain set without the limit; truncation happens here afterwards.
func (h *Handler) MultiChain(c *fiber.Ctx) error {
	chains := DefaultChains
	limit := DefaultLimit
	var opts map[string]any

	if c.Method() == fiber.MethodPost {
		var in multiChainBody
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return fail(c, fiber.StatusBadRequest, "invalid JSON body")
			}
		}
		if len(in.Chains) > 0 {
			chains = in.Chains
		}
		if in.Limit != nil {
			limit = *in.Limit
		}
		opts = in.Options
	} else {
		if q := c.Query("chains"); q != "" {
			chains = splitCSV(q)
		}
		if q := c.Query("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				return fail(c, fiber.StatusBadRequest, "limit must be an integer between 1 and 50")
			}
			limit = n
		}
	}

	if limit < 1 || limit > MaxLimit {
		return fail(c, fiber.StatusBadRequest, "limit must be an integer between 1 and 50")
	}
	if bad := InvalidChains(chains); len(bad) > 0 {
		return fail(c, fiber.StatusBadRequest, "unsupported chains: "+strings.Join(bad, ", "))
	}

	tokens, err := h.svc.Trending(c.Context(), chains)
	if err != nil {
		h.log.Error("trending aggregation failed", zap.Strings("chains", chains), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "trending aggregation failed: "+err.Error())
	}
	if len(tokens) == 0 {
		return fail(c, fiber.StatusNotFound, "no trending tokens found")
	}

	totalFound := len(tokens)
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}

	meta := Metadata{
		TotalTokens:    len(tokens),
		TotalFound:     totalFound,
		ChainsAnalyzed: chains,
		Limit:          limit,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if c.Method() == fiber.MethodPost {
		meta.Options = opts
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=60, stale-while-revalidate=300")
	return c.JSON(fiber.Map{"success": true, "data": tokens, "metadata": meta})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
