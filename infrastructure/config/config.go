package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Runtime
	Environment string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string

	// Deck catalog
	DeckPath string // empty means the embedded default deck

	// Recency store behavior
	RetentionDays  int
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// Storage backend selection: "dynamodb" or "memory"
	StorageBackend string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "arcana-recency"),

		DeckPath: getEnv("DECK_PATH", ""),

		RetentionDays:  getEnvInt("RETENTION_DAYS", 7),
		MaxRetries:     getEnvInt("STORE_MAX_RETRIES", 3),
		RetryBaseDelay: getEnvDuration("STORE_RETRY_BASE_DELAY", 100*time.Millisecond),
		RetryMaxDelay:  getEnvDuration("STORE_RETRY_MAX_DELAY", 2*time.Second),

		StorageBackend: getEnv("STORAGE_BACKEND", "dynamodb"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.StorageBackend != "dynamodb" && c.StorageBackend != "memory" {
		return fmt.Errorf("invalid storage backend %q (want dynamodb or memory)", c.StorageBackend)
	}
	if c.StorageBackend == "dynamodb" && c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required for the dynamodb backend")
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be positive, got %d", c.RetentionDays)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", c.MaxRetries)
	}
	return nil
}

// IsProduction returns true in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
