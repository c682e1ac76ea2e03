package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medinsight-client/config"
	"medinsight-client/repository"
)

// TestHealthCheckService_NoConfig degrades when configuration never loaded
func TestHealthCheckService_NoConfig(t *testing.T) {
	healthService := NewHealthCheckService()

	result := healthService.PerformHealthCheck(context.Background())

	assert.Equal(t, "degraded", result["status"])
	assert.Contains(t, result, "timestamp")
	assert.Contains(t, result, "version")
}

// TestHealthCheckService_Healthy reports healthy when every probe passes
func TestHealthCheckService_Healthy(t *testing.T) {
	cfg := &config.Config{
		API:   config.APIConfig{BaseURL: "https://api.example.com"},
		Token: config.TokenConfig{FilePath: "/tmp/does-not-exist"},
	}

	healthService := NewHealthCheckServiceWithConfig(cfg)
	healthService.backendProbe = func(ctx context.Context, baseURL string) error { return nil }
	healthService.tokenStatusProbe = func(ctx context.Context, path string) repository.TokenStatus {
		return repository.TokenStatus{HasToken: true}
	}

	result := healthService.PerformHealthCheck(context.Background())

	assert.Equal(t, "healthy", result["status"])
	assert.Equal(t, true, result["api_configured"])
	assert.Equal(t, true, result["backend_reachable"])
	assert.Equal(t, true, result["token_stored"])
	assert.Equal(t, false, result["token_expired"])
}

// TestHealthCheckService_BackendUnreachable degrades with error details
func TestHealthCheckService_BackendUnreachable(t *testing.T) {
	cfg := &config.Config{
		API: config.APIConfig{BaseURL: "https://api.example.com"},
	}

	healthService := NewHealthCheckServiceWithConfig(cfg)
	healthService.backendProbe = func(ctx context.Context, baseURL string) error {
		return errors.New("connection refused")
	}

	result := healthService.PerformHealthCheck(context.Background())

	assert.Equal(t, "degraded", result["status"])
	assert.Equal(t, false, result["backend_reachable"])
	assert.Contains(t, result, "error_details")
}

// TestHealthCheckService_MissingBaseURL degrades without probing the backend
func TestHealthCheckService_MissingBaseURL(t *testing.T) {
	cfg := &config.Config{}

	healthService := NewHealthCheckServiceWithConfig(cfg)
	healthService.backendProbe = func(ctx context.Context, baseURL string) error {
		t.Fatal("backend probe must not run without a base URL")
		return nil
	}

	result := healthService.PerformHealthCheck(context.Background())

	assert.Equal(t, "degraded", result["status"])
	assert.Equal(t, false, result["api_configured"])
}

// TestDefaultTokenStatusProbe reads the stored token and inspects its expiry
func TestDefaultTokenStatusProbe(t *testing.T) {
	// exp claim is in the distant past; the signature is never verified.
	expiredJWT := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjEwMDAwMDAwMDB9.sig"

	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(expiredJWT), 0o600))

	status := defaultTokenStatusProbe(context.Background(), path)
	assert.True(t, status.HasToken)
	assert.True(t, status.IsExpired)

	missing := defaultTokenStatusProbe(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.False(t, missing.HasToken)
	assert.False(t, missing.IsExpired)
}
