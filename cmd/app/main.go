package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradepilot-api/internal/config"
	httpSrv "tradepilot-api/internal/http"
	"tradepilot-api/internal/okx"
	"tradepilot-api/internal/redis"
	"tradepilot-api/internal/trending"
	"tradepilot-api/internal/warmer"
)

func main() {
	_ = godotenv.Load()
	mode := flag.String("mode", "api", "run mode: api|warmer")
	flag.Parse()

	cfg := config.Load()
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	rc := redis.NewClient(cfg)
	defer rc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "api":
		app := httpSrv.NewServer(cfg, rc, logger)
		logger.Info("API listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case "warmer":
		logger.Info("starting trend warmer",
			zap.Strings("chains", trending.DefaultChains),
			zap.Int("interval_sec", cfg.WarmIntervalSec))
		svc := trending.NewService(okx.New(cfg, logger), rc, cfg.TrendTTLSec, logger)
		if err := warmer.Run(ctx, svc, cfg, logger); err != nil && err != context.Canceled {
			logger.Fatal("warmer", zap.Error(err))
		}
	default:
		logger.Error("unknown mode", zap.String("mode", *mode))
		os.Exit(2)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.AppEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
