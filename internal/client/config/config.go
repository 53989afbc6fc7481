package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the TapCard client.
type Config struct {
	// APIURL is the backend base URL; QR payloads are built on it too.
	APIURL string
	// RequestTimeout bounds every HTTP request issued by the client.
	RequestTimeout time.Duration
	// SessionDBPath is the SQLite file holding persisted credentials.
	SessionDBPath string
	// StoreSecret seeds the key that seals persisted credentials.
	StoreSecret string
	LogLevel    string
	LogFormat   string
	// BatchConcurrency caps in-flight requests of one batch save.
	BatchConcurrency int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.SessionDBPath = "tapcard.db"
	c.StoreSecret = "tapcard-local-store"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BatchConcurrency = 4
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, an optional JSON file and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
