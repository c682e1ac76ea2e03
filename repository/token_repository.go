// ABOUTME: Repository contracts for durable access-token storage
// ABOUTME: The durable copy is what lets a session survive process restarts

package repository

import (
	"context"
	"errors"
)

// ErrTokenNotFound is returned when no access token has been stored.
var ErrTokenNotFound = errors.New("access token not found")

// TokenRepository persists the single current access token.
type TokenRepository interface {
	// Load returns the stored token, or ErrTokenNotFound.
	Load(ctx context.Context) (string, error)
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
