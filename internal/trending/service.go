package trending

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Aggregator is the external multi-chain trend-analysis capability. It scans
// the given chains unconditionally; result sizing is the caller's problem.
type Aggregator interface {
	MultiChainTrending(ctx context.Context, chains []string) ([]Token, error)
}

type Service struct {
	agg Aggregator
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewService builds a trending service. rdb may be nil; the aggregate cache
// is then skipped and every request hits the aggregator.
func NewService(agg Aggregator, rdb *redis.Client, ttlSec int, log *zap.Logger) *Service {
	if ttlSec <= 0 {
		ttlSec = 60
	}
	return &Service{agg: agg, rdb: rdb, ttl: time.Duration(ttlSec) * time.Second, log: log}
}

func cacheKey(chains []string) string {
	sorted := make([]string, len(chains))
	copy(sorted, chains)
	sort.Strings(sorted)
	return "trend:" + strings.Join(sorted, ",")
}

// Trending returns the full aggregated token list for the chain set, serving
// a fresh redis copy when one exists.
func (s *Service) Trending(ctx context.Context, chains []string) ([]Token, error) {
	key := cacheKey(chains)
	if s.rdb != nil {
		body, err := s.rdb.Get(ctx, key+":body").Result()
		ts, _ := s.rdb.Get(ctx, key+":ts").Int64()
		if err == nil && body != "" && time.Since(time.Unix(ts, 0)) <= s.ttl {
			var cached []Token
			if err := json.Unmarshal([]byte(body), &cached); err == nil {
				return cached, nil
			}
		}
	}
	return s.refresh(ctx, chains)
}

// Warm refreshes the default chain set's aggregate cache, bypassing any
// cached copy. The warmer loop calls this on its tick.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.refresh(ctx, DefaultChains)
	return err
}

func (s *Service) refresh(ctx context.Context, chains []string) ([]Token, error) {
	tokens, err := s.agg.MultiChainTrending(ctx, chains)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		key := cacheKey(chains)
		if b, err := json.Marshal(tokens); err == nil {
			if err := s.rdb.Set(ctx, key+":body", string(b), 0).Err(); err != nil {
				s.log.Warn("trend cache write failed", zap.Error(err))
			}
			_ = s.rdb.Set(ctx, key+":ts", time.Now().Unix(), 0).Err()
		}
	}
	return tokens, nil
}
