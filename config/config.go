// ABOUTME: This file handles configuration management for medinsight-client
// ABOUTME: Loads environment variables and validates settings for the API client

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the client.
type Config struct {
	// Service configuration
	ServiceName string
	LogLevel    string

	// Backend API configuration
	API APIConfig

	// Response cache configuration
	Cache CacheConfig

	// Token persistence configuration
	Token TokenConfig

	// Client-side rate limiting configuration
	RateLimit RateLimitConfig

	// Post-signup navigation configuration
	RedirectDelay time.Duration
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultRetries int
	RetryBaseDelay time.Duration
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTL time.Duration
}

// TokenConfig holds access token persistence settings.
type TokenConfig struct {
	FilePath string
}

// RateLimitConfig holds outbound request throttle settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnvOrDefault("SERVICE_NAME", "medinsight-client"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),

		API: APIConfig{
			BaseURL:        os.Getenv("API_BASE_URL"), // Required
			Timeout:        getDurationOrDefault("API_TIMEOUT", 30*time.Second),
			DefaultRetries: getIntOrDefault("API_RETRIES", 1),
			RetryBaseDelay: getDurationOrDefault("API_RETRY_BASE_DELAY", 250*time.Millisecond),
		},

		Cache: CacheConfig{
			TTL: getDurationOrDefault("CACHE_TTL", 5*time.Minute),
		},

		Token: TokenConfig{
			FilePath: getEnvOrDefault("TOKEN_FILE_PATH", defaultTokenPath()),
		},

		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			Burst:             getIntOrDefault("RATE_LIMIT_BURST", 20),
		},

		RedirectDelay: getDurationOrDefault("SIGNUP_REDIRECT_DELAY", 1500*time.Millisecond),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	if c.API.DefaultRetries < 0 {
		return fmt.Errorf("API_RETRIES must not be negative")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	return nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medinsight/token"
	}
	return home + "/.medinsight/token"
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
