// ABOUTME: This file tests configuration loading and validation
// ABOUTME: Ensures proper environment variable parsing and required field validation

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		envVars     map[string]string
		expectError bool
		validate    func(t *testing.T, cfg *Config)
	}{
		"valid_full_config": {
			envVars: map[string]string{
				"SERVICE_NAME":          "test-client",
				"LOG_LEVEL":             "debug",
				"API_BASE_URL":          "https://api.example.com",
				"API_TIMEOUT":           "10s",
				"API_RETRIES":           "3",
				"API_RETRY_BASE_DELAY":  "100ms",
				"CACHE_TTL":             "2m",
				"TOKEN_FILE_PATH":       "/tmp/token",
				"RATE_LIMIT_RPS":        "5",
				"RATE_LIMIT_BURST":      "8",
				"SIGNUP_REDIRECT_DELAY": "2s",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-client", cfg.ServiceName)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.API.Timeout)
				assert.Equal(t, 3, cfg.API.DefaultRetries)
				assert.Equal(t, 100*time.Millisecond, cfg.API.RetryBaseDelay)
				assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
				assert.Equal(t, "/tmp/token", cfg.Token.FilePath)
				assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 8, cfg.RateLimit.Burst)
				assert.Equal(t, 2*time.Second, cfg.RedirectDelay)
			},
		},
		"defaults_applied": {
			envVars: map[string]string{
				"API_BASE_URL": "https://api.example.com",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "medinsight-client", cfg.ServiceName)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
				assert.Equal(t, 1, cfg.API.DefaultRetries)
				assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
				assert.Equal(t, 1500*time.Millisecond, cfg.RedirectDelay)
			},
		},
		"missing_base_url": {
			envVars:     map[string]string{},
			expectError: true,
		},
		"invalid_duration_falls_back_to_default": {
			envVars: map[string]string{
				"API_BASE_URL": "https://api.example.com",
				"API_TIMEOUT":  "not-a-duration",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}
			if _, ok := tt.envVars["API_BASE_URL"]; !ok {
				t.Setenv("API_BASE_URL", "")
			}

			cfg, err := LoadConfig()
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL:        "https://api.example.com",
				Timeout:        30 * time.Second,
				DefaultRetries: 1,
			},
			Cache: CacheConfig{TTL: 5 * time.Minute},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("negative_retries", func(t *testing.T) {
		cfg := base()
		cfg.API.DefaultRetries = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero_ttl", func(t *testing.T) {
		cfg := base()
		cfg.Cache.TTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero_timeout", func(t *testing.T) {
		cfg := base()
		cfg.API.Timeout = 0
		assert.Error(t, cfg.Validate())
	})
}
