package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with TAPCARD_* environment variables. Variables from
// dotenvPath are loaded first without overriding ones already set in the
// process environment; a missing file is not an error. Unparseable numeric or
// duration values are ignored and the previous value is kept.
func parseEnv(cfg *Config, dotenvPath string) {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath)
	}

	if v, ok := os.LookupEnv("TAPCARD_API_URL"); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := os.LookupEnv("TAPCARD_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := os.LookupEnv("TAPCARD_SESSION_DB"); ok && v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := os.LookupEnv("TAPCARD_STORE_SECRET"); ok && v != "" {
		cfg.StoreSecret = v
	}
	if v, ok := os.LookupEnv("TAPCARD_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("TAPCARD_LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv("TAPCARD_BATCH_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchConcurrency = n
		}
	}
}
