// Package config loads runtime configuration for the TapCard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-u string   base URL of the TapCard API
//	-t string   per-request timeout, e.g. "15s"
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// Environment variables
//
//	TAPCARD_API_URL, TAPCARD_REQUEST_TIMEOUT, TAPCARD_SESSION_DB,
//	TAPCARD_STORE_SECRET, TAPCARD_LOG_LEVEL, TAPCARD_LOG_FORMAT,
//	TAPCARD_BATCH_CONCURRENCY
//
// # JSON schema
//
// Durations are timex.Duration values, so "15s" and integer nanoseconds both work:
//
//	{
//	  "api_url": "https://api.tapcard.app",
//	  "request_timeout": "15s",
//	  "session_db": "tapcard.db",
//	  "store_secret": "change-me",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "batch_concurrency": 4
//	}
package config
