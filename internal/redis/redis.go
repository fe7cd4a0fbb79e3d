package redis

import (
	"context"

	"tradepilot-api/internal/config"

	"github.com/redis/go-redis/v9"
)

func NewClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
}

func LuaEval(ctx context.Context, rdb *redis.Client, script string, keys []string, args ...interface{}) *redis.Cmd {
	return rdb.Eval(ctx, script, keys, args...)
}
