package http

import (
	"errors"
	"strconv"

	"tradepilot-api/internal/ai"
	"tradepilot-api/internal/chat"
	"tradepilot-api/internal/config"
	"tradepilot-api/internal/device"
	mid "tradepilot-api/internal/http/middleware"
	"tradepilot-api/internal/okx"
	"tradepilot-api/internal/portfolio"
	"tradepilot-api/internal/trending"
	"tradepilot-api/internal/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct{ *fiber.App }

func NewServer(cfg config.Config, rdb *redis.Client, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          jsonError,
	})
	app.Use(mid.RequestID())
	if rdb != nil {
		app.Use(mid.RateLimit(cfg, rdb))
		app.Use(mid.Idempotency(cfg, rdb))
	}

	aiClient := ai.New(cfg, log)
	okxClient := okx.New(cfg, log)

	chatH := chat.NewHandler(aiClient, log)
	app.Post("/api/chat", chatH.Post)

	portfolioH := portfolio.NewHandler(okxClient, aiClient, cfg.DefaultWallet, log)
	app.Get("/api/portfolio", portfolioH.Get)
	app.Post("/api/portfolio/suggestions", portfolioH.Suggestions)

	trendSvc := trending.NewService(okxClient, rdb, cfg.TrendTTLSec, log)
	trendH := trending.NewHandler(trendSvc, log)
	app.Get("/api/trending/multi-chain", trendH.MultiChain)
	app.Post("/api/trending/multi-chain", trendH.MultiChain)

	// Static demo record, served straight from the embedded asset.
	app.Get("/api/wallet/demo", func(c *fiber.Ctx) error {
		return c.Type("json").Send(wallet.Demo())
	})

	app.Get("/api/device/profile", DeviceProfile)

	// liveness & readiness
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/readyz", func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.SendString("ready")
		}
		if err := rdb.Ping(c.Context()).Err(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "redis not ready")
		}
		return c.SendString("ready")
	})

	return &Server{app}
}

// DeviceProfile classifies the caller from its User-Agent and reported core
// count. Pure lookup, so it lives here rather than behind a service.
func DeviceProfile(c *fiber.Ctx) error {
	cores, err := strconv.Atoi(c.Query("cores", "4"))
	if err != nil || cores < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "cores must be a positive integer")
	}
	count, err := strconv.Atoi(c.Query("count", "50"))
	if err != nil || count < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "count must be a non-negative integer")
	}

	ua := c.Get(fiber.HeaderUserAgent)
	tier := device.PerformanceTier(ua, cores)
	return c.JSON(fiber.Map{
		"isMobile":       device.IsMobile(ua),
		"tier":           tier,
		"maxRenderCount": device.OptimalRenderCount(count, tier),
	})
}

// jsonError renders fiber errors as the app-wide {error} JSON shape.
func jsonError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
