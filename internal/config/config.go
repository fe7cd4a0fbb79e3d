package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	AppEnv         string
	RedisAddr      string
	RedisDB        int
	IdempTTL       int
	RateLimitRPS   int
	RateLimitBurst int

	OKXBaseURL    string
	OKXAPIKey     string
	OKXSecret     string
	OKXPassphrase string
	OKXProject    string

	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	DefaultWallet string

	TrendTTLSec     int
	WarmIntervalSec int
}

func get(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
func geti(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() Config {
	return Config{
		Port:           get("PORT", "3000"),
		AppEnv:         get("APP_ENV", "production"),
		RedisAddr:      get("REDIS_ADDR", "localhost:6379"),
		RedisDB:        geti("REDIS_DB", 0),
		IdempTTL:       geti("IDEMP_TTL_SEC", 60),
		RateLimitRPS:   geti("RATE_LIMIT_RPS", 5),
		RateLimitBurst: geti("RATE_LIMIT_BURST", 10),

		OKXBaseURL:    get("OKX_BASE_URL", "https://web3.okx.com"),
		OKXAPIKey:     get("OKX_API_KEY", ""),
		OKXSecret:     get("OKX_SECRET_KEY", ""),
		OKXPassphrase: get("OKX_PASSPHRASE", ""),
		OKXProject:    get("OKX_PROJECT_ID", ""),

		AIBaseURL: get("AI_BASE_URL", "https://api.openai.com/v1"),
		AIAPIKey:  get("AI_API_KEY", ""),
		AIModel:   get("AI_MODEL", "gpt-4o-mini"),

		DefaultWallet: get("DEFAULT_WALLET_ADDRESS", ""),

		TrendTTLSec:     geti("TREND_CACHE_TTL_SEC", 60),
		WarmIntervalSec: geti("WARM_INTERVAL_SEC", 60),
	}
}
