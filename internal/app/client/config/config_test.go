package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(home, ".sticky"), cfg.ConfigDir)
	assert.Equal(t, filepath.Join(home, ".sticky", "state.db"), cfg.StatePath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeoutDuration())
	assert.Equal(t, time.Minute, cfg.KeepUnusedDuration())
	assert.Zero(t, cfg.RequestsPerSecond)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("API_BASE_URL", "http://localhost:3000/")
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("REQUESTS_PER_SECOND", "2.5")
	t.Setenv("CACHE_KEEP_UNUSED_SECONDS", "0")
	t.Setenv("METRICS_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.False(t, cfg.IsLocal())
	assert.Equal(t, "http://localhost:3000/", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.StatePath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeoutDuration())
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Zero(t, cfg.KeepUnusedDuration())
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{APIBaseURL: "http://localhost:3000", RequestTimeout: 1}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: "api_base_url"},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "/notes" }, wantErr: "абсолютным"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "request_timeout_seconds"},
		{name: "negative rate", mutate: func(c *Config) { c.RequestsPerSecond = -1 }, wantErr: "requests_per_second"},
		{name: "negative keep", mutate: func(c *Config) { c.CacheKeepUnused = -1 }, wantErr: "cache_keep_unused_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
