package repository

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SetAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(ctx, NewMemoryTokenRepository(), slog.Default())

	assert.Empty(t, store.Token())

	store.Set(ctx, "tok1")
	assert.Equal(t, "tok1", store.Token())

	store.Clear(ctx)
	assert.Empty(t, store.Token())
}

func TestTokenStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "access_token")
	repo := NewFileTokenRepository(path, slog.Default())

	first := NewTokenStore(ctx, repo, slog.Default())
	first.Set(ctx, "persisted-token")

	// A second store over the same file simulates a process restart.
	second := NewTokenStore(ctx, NewFileTokenRepository(path, slog.Default()), slog.Default())
	assert.Equal(t, "persisted-token", second.Token())

	second.Clear(ctx)
	third := NewTokenStore(ctx, NewFileTokenRepository(path, slog.Default()), slog.Default())
	assert.Empty(t, third.Token())
}

func TestTokenStore_ConcurrentReadsSeeWholeValues(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(ctx, NewMemoryTokenRepository(), slog.Default())

	values := map[string]bool{"": true, "alpha": true, "beta": true}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if j%2 == 0 {
					store.Set(ctx, "alpha")
				} else {
					store.Set(ctx, "beta")
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := store.Token()
				assert.True(t, values[got], "observed torn token value %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestTokenStore_StatusParsesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(ctx, NewMemoryTokenRepository(), slog.Default())

	assert.False(t, store.Status().HasToken)

	expiry := time.Now().Add(30 * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	store.Set(ctx, signed)

	status := store.Status()
	assert.True(t, status.HasToken)
	assert.False(t, status.IsExpired)
	assert.WithinDuration(t, expiry, status.ExpiresAt, time.Second)

	// Opaque, non-JWT tokens still report presence.
	store.Set(ctx, "opaque-token")
	status = store.Status()
	assert.True(t, status.HasToken)
	assert.True(t, status.ExpiresAt.IsZero())
}
