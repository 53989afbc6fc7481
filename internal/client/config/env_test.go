package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("TAPCARD_API_URL", "https://api.example")
	t.Setenv("TAPCARD_REQUEST_TIMEOUT", "3s")
	t.Setenv("TAPCARD_SESSION_DB", "/tmp/s.db")
	t.Setenv("TAPCARD_BATCH_CONCURRENCY", "8")
	t.Setenv("TAPCARD_LOG_LEVEL", "debug")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, "https://api.example", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/s.db", cfg.SessionDBPath)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEnv_BadValuesKeepPrevious(t *testing.T) {
	t.Setenv("TAPCARD_REQUEST_TIMEOUT", "later")
	t.Setenv("TAPCARD_BATCH_CONCURRENCY", "-2")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 4, cfg.BatchConcurrency)
}

func TestParseEnv_DotenvDoesNotOverrideProcessEnv(t *testing.T) {
	unsetEnv(t, "TAPCARD_STORE_SECRET")
	t.Setenv("TAPCARD_LOG_FORMAT", "json")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TAPCARD_STORE_SECRET=from-file\nTAPCARD_LOG_FORMAT=text\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TAPCARD_STORE_SECRET") })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, path)

	assert.Equal(t, "from-file", cfg.StoreSecret)
	assert.Equal(t, "json", cfg.LogFormat)
}
