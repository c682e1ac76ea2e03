package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"medinsight-client/config"
	"medinsight-client/driver"
	"medinsight-client/repository"
	"medinsight-client/service"
)

func main() {
	// Parse command line flags
	healthCheck := flag.Bool("health-check", false, "Perform health check and exit")
	flag.Parse()

	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	// Setup structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *healthCheck {
		performHealthCheckWithOutput()
		return
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("medinsight client starting",
		"service", cfg.ServiceName,
		"base_url", cfg.API.BaseURL,
		"cache_ttl", cfg.Cache.TTL)

	ctx := context.Background()
	if err := runSessionProbe(ctx, cfg, logger); err != nil {
		logger.Error("session probe failed", "error", err)
		os.Exit(1)
	}

	logger.Info("medinsight client finished")
}

// runSessionProbe builds the full client stack and attempts a silent session
// restoration, reporting what it found.
func runSessionProbe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tokenRepo := repository.NewFileTokenRepository(cfg.Token.FilePath, logger)
	tokens := repository.NewTokenStore(ctx, tokenRepo, logger)

	client, err := driver.New(driver.ClientConfig{
		BaseURL:           cfg.API.BaseURL,
		Tokens:            tokens,
		Timeout:           cfg.API.Timeout,
		CacheTTL:          cfg.Cache.TTL,
		DefaultRetries:    cfg.API.DefaultRetries,
		RetryBaseDelay:    cfg.API.RetryBaseDelay,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	status := tokens.Status()
	logger.Info("stored token status",
		"has_token", status.HasToken,
		"is_expired", status.IsExpired,
		"expires_at", status.ExpiresAt)

	sessions := service.NewSessionManager(client, nil, logger)
	sessions.CheckAuth(ctx)

	if user := sessions.User(); user != nil {
		logger.Info("session restored", "user_id", user.ID, "email", user.Email)
	} else {
		logger.Info("no active session", "state", string(sessions.State()))
	}

	m := client.Metrics()
	logger.Info("client metrics",
		"requests_sent", m.RequestsSent,
		"cache_hits", m.CacheHits,
		"network_retries", m.NetworkRetries)
	return nil
}
