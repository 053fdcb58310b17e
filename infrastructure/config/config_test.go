package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "arcana-recency", cfg.DynamoDBTable)
	assert.Empty(t, cfg.DeckPath)
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, "dynamodb", cfg.StorageBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableMetrics)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TABLE_NAME", "custom-table")
	t.Setenv("RETENTION_DAYS", "14")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("STORE_RETRY_BASE_DELAY", "250ms")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "custom-table", cfg.DynamoDBTable)
	assert.Equal(t, 14, cfg.RetentionDays)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay)
	assert.False(t, cfg.EnableMetrics)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "a-week")
	t.Setenv("ENABLE_METRICS", "maybe")
	t.Setenv("STORE_RETRY_MAX_DELAY", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RetentionDays)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, 2*time.Second, cfg.RetryMaxDelay)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"memory backend needs no table", func(c *Config) {
			c.StorageBackend = "memory"
			c.DynamoDBTable = ""
		}, false},
		{"unknown backend rejected", func(c *Config) { c.StorageBackend = "redis" }, true},
		{"dynamodb requires a table", func(c *Config) { c.DynamoDBTable = "" }, true},
		{"zero retention rejected", func(c *Config) { c.RetentionDays = 0 }, true},
		{"negative retries rejected", func(c *Config) { c.MaxRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
