// Package warmer keeps the trending aggregate cache fresh so API requests
// rarely pay the upstream scan.
package warmer

import (
	"context"
	"time"

	"tradepilot-api/internal/config"
	"tradepilot-api/internal/trending"

	"go.uber.org/zap"
)

func Run(ctx context.Context, svc *trending.Service, cfg config.Config, log *zap.Logger) error {
	interval := time.Duration(cfg.WarmIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	for {
		if err := svc.Warm(ctx); err != nil {
			log.Warn("trend warm failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
