package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.APIURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "tapcard.db", c.SessionDBPath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 4, c.BatchConcurrency)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"tapcard"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.APIURL)
	assert.Positive(t, cfg.RequestTimeout)
}
