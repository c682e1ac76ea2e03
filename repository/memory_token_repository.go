package repository

import (
	"context"
	"sync"
)

// MemoryTokenRepository is an in-memory TokenRepository for tests and for
// callers that explicitly opt out of durable storage.
type MemoryTokenRepository struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryTokenRepository creates an empty in-memory token repository.
func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{}
}

// Load returns the stored token, or ErrTokenNotFound.
func (r *MemoryTokenRepository) Load(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.set {
		return "", ErrTokenNotFound
	}
	return r.token, nil
}

// Save replaces the stored token.
func (r *MemoryTokenRepository) Save(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.token = token
	r.set = true
	return nil
}

// Clear removes the stored token.
func (r *MemoryTokenRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.token = ""
	r.set = false
	return nil
}
