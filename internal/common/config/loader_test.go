// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
upstream:
  pending_url: "https://data.ny.gov/resource/pending.json"
  active_url: "https://data.ny.gov/resource/active.json"
server:
  port: 9090
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://data.ny.gov/resource/pending.json", cfg.Upstream.PendingURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())

	// Unset fields pick up defaults.
	assert.Equal(t, 10000, cfg.Upstream.FetchTimeout)
	assert.Equal(t, 10000, cfg.Upstream.DefaultLimit)
	assert.Equal(t, 50000, cfg.Upstream.MaxLimit)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Upstream.PendingURL = "https://example.com/pending.json"
		cfg.Upstream.ActiveURL = "https://example.com/active.json"
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validateConfig(valid()))
	})

	t.Run("missing pending url", func(t *testing.T) {
		cfg := valid()
		cfg.Upstream.PendingURL = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("missing active url", func(t *testing.T) {
		cfg := valid()
		cfg.Upstream.ActiveURL = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("max limit below default limit", func(t *testing.T) {
		cfg := valid()
		cfg.Upstream.MaxLimit = cfg.Upstream.DefaultLimit - 1
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("cache enabled without redis address", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Enabled = true
		cfg.Cache.Redis.Address = ""
		assert.Error(t, validateConfig(cfg))
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15000, cfg.Server.ReadTimeout)
	assert.Equal(t, 30000, cfg.Server.RequestTimeout)
	assert.Equal(t, "ny-sla-japanese-restaurant-tracker", cfg.App.Name)
	assert.Equal(t, ".", cfg.Export.Directory)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Logging.Level = "debug"
	applyDefaults(cfg)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
