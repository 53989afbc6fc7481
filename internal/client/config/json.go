package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tapcard/internal/flagx"
	"github.com/dmitrijs2005/tapcard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIURL           *string         `json:"api_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	SessionDBPath    *string         `json:"session_db"`
	StoreSecret      *string         `json:"store_secret"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	BatchConcurrency *int            `json:"batch_concurrency"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// in args. Without such a flag it does nothing. Read or decode failures
// panic; a broken config file is a startup error.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDBPath != nil {
		cfg.SessionDBPath = *jc.SessionDBPath
	}
	if jc.StoreSecret != nil {
		cfg.StoreSecret = *jc.StoreSecret
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.BatchConcurrency != nil && *jc.BatchConcurrency > 0 {
		cfg.BatchConcurrency = *jc.BatchConcurrency
	}
}
