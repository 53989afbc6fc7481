package devserver

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/tapcard/internal/flagx"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
type Config struct {
	Addr                        string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults. They match the
// client's default API URL.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8000"
	c.SecretKey = "dev-secret-key"
	c.AccessTokenValidityDuration = 30 * time.Minute
}

// LoadConfig applies defaults and then command-line flags from args.
//
// Supported flags:
//
//	-a string     bind address (e.g. "127.0.0.1:8000")
//	-s string     JWT HMAC secret key
//	-t duration   access token validity (e.g. "30m")
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-s", "-t"})); err != nil {
		panic(err)
	}
	return cfg
}
