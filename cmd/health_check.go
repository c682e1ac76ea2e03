package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"medinsight-client/config"
	"medinsight-client/repository"
)

// HealthCheckService reports whether the client is configured and the
// backend is reachable.
type HealthCheckService struct {
	config           *config.Config
	logger           *slog.Logger
	backendProbe     func(ctx context.Context, baseURL string) error
	tokenStatusProbe func(ctx context.Context, path string) repository.TokenStatus
	configuredProbe  func(cfg *config.Config) bool
}

// NewHealthCheckService creates a health check service with defaults.
func NewHealthCheckService() *HealthCheckService {
	return &HealthCheckService{
		logger:           slog.Default(),
		backendProbe:     defaultBackendProbe,
		tokenStatusProbe: defaultTokenStatusProbe,
		configuredProbe:  defaultConfiguredProbe,
	}
}

// NewHealthCheckServiceWithConfig creates a health check service with configuration.
func NewHealthCheckServiceWithConfig(cfg *config.Config) *HealthCheckService {
	hcs := NewHealthCheckService()
	hcs.config = cfg
	return hcs
}

// PerformHealthCheck runs every probe and summarizes the result.
func (hcs *HealthCheckService) PerformHealthCheck(ctx context.Context) map[string]interface{} {
	result := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   getServiceVersion(),
	}

	errors := []string{}

	if hcs.config != nil {
		configured := hcs.configuredProbe(hcs.config)
		result["api_configured"] = configured
		if !configured {
			errors = append(errors, "API base URL not configured")
		}

		status := hcs.tokenStatusProbe(ctx, hcs.config.Token.FilePath)
		result["token_stored"] = status.HasToken
		result["token_expired"] = status.IsExpired

		if configured {
			if err := hcs.backendProbe(ctx, hcs.config.API.BaseURL); err != nil {
				result["backend_reachable"] = false
				errors = append(errors, fmt.Sprintf("backend_probe: %v", err))
			} else {
				result["backend_reachable"] = true
			}
		}
	} else {
		errors = append(errors, "configuration not loaded")
	}

	if len(errors) > 0 {
		result["status"] = "degraded"
		result["error_details"] = errors
	}

	return result
}

// Default probe implementations

func defaultConfiguredProbe(cfg *config.Config) bool {
	return cfg != nil && cfg.API.BaseURL != ""
}

func defaultTokenStatusProbe(ctx context.Context, path string) repository.TokenStatus {
	repo := repository.NewFileTokenRepository(path, slog.Default())
	return repository.NewTokenStore(ctx, repo, slog.Default()).Status()
}

func defaultBackendProbe(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func getServiceVersion() string {
	version := os.Getenv("SERVICE_VERSION")
	if version == "" {
		version = "unknown"
	}
	return version
}

// performHealthCheckWithOutput runs the probes and prints JSON for the
// -health-check command line flag.
func performHealthCheckWithOutput() {
	cfg, err := config.LoadConfig()
	var healthService *HealthCheckService
	if err != nil {
		healthService = NewHealthCheckService()
	} else {
		healthService = NewHealthCheckServiceWithConfig(cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := healthService.PerformHealthCheck(ctx)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf(`{"status": "error", "error": "failed to marshal health check result: %v"}`, err)
		os.Exit(1)
	}

	fmt.Println(string(output))

	if status, ok := result["status"]; ok && status != "healthy" {
		os.Exit(1)
	}
}
