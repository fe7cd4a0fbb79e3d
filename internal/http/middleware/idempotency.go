package middleware

import (
	"time"

	"tradepilot-api/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Idempotency rejects a second in-flight request carrying the same
// Idempotency-Key. Only relevant for the POST routes; GET passes through.
func Idempotency(cfg config.Config, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("Idempotency-Key")
		if id == "" {
			return c.Next()
		}
		key := "idem:" + id
		ok, err := rdb.SetNX(c.Context(), key, "1", time.Duration(cfg.IdempTTL)*time.Second).Result()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusConflict, "duplicate request")
		}
		defer rdb.Del(c.Context(), key)
		return c.Next()
	}
}
