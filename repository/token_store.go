// ABOUTME: This file implements the process-wide holder of the access token
// ABOUTME: Reads and writes are atomic; the durable copy survives restarts

package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore owns the current access token. At most one value is current at
// a time; reads and writes are atomic under an RWMutex, so no caller ever
// observes a half-updated token.
type TokenStore struct {
	repo   TokenRepository
	logger *slog.Logger

	mu      sync.RWMutex
	current string
}

// NewTokenStore creates a token store backed by repo and primes the
// in-memory copy from durable storage so a persisted session is picked up
// on startup.
func NewTokenStore(ctx context.Context, repo TokenRepository, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &TokenStore{
		repo:   repo,
		logger: logger,
	}

	token, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.current = token
		logger.Info("Persisted access token restored")
	case err == ErrTokenNotFound:
		logger.Debug("No persisted access token found")
	default:
		logger.Warn("Failed to load persisted access token", "error", err)
	}

	return s
}

// Token returns the current access token, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Set atomically replaces the current token and persists it. A persistence
// failure keeps the in-memory token usable and is only logged; the session
// simply will not survive the next restart.
func (s *TokenStore) Set(ctx context.Context, token string) {
	s.mu.Lock()
	s.current = token
	s.mu.Unlock()

	if err := s.repo.Save(ctx, token); err != nil {
		s.logger.Warn("Token updated in memory but persistence failed", "error", err)
	}
}

// Clear wipes both the in-memory and the durable token.
func (s *TokenStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear persisted token", "error", err)
	}
}

// TokenStatus describes the current token for logging and health surfaces.
type TokenStatus struct {
	HasToken  bool      `json:"has_token"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	IsExpired bool      `json:"is_expired"`
}

// Status inspects the token's exp claim without verifying the signature.
// The backend issues JWT access tokens; expiry here is informational only,
// actual rejection always comes from the server as a 401.
func (s *TokenStore) Status() TokenStatus {
	token := s.Token()
	if token == "" {
		return TokenStatus{}
	}

	status := TokenStatus{HasToken: true}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return status
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return status
	}

	status.ExpiresAt = exp.Time
	status.IsExpired = time.Now().After(exp.Time)
	return status
}
