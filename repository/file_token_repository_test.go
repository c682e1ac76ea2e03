package repository

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	repo := NewFileTokenRepository(path, slog.Default())

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.Save(ctx, "tok1"))

	token, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)

	// Overwrite replaces, never appends.
	require.NoError(t, repo.Save(ctx, "tok2"))
	token, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)
}

func TestFileTokenRepository_Permissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	repo := NewFileTokenRepository(path, slog.Default())

	require.NoError(t, repo.Save(ctx, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileTokenRepository_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	repo := NewFileTokenRepository(path, slog.Default())

	require.NoError(t, repo.Save(ctx, "tok"))
	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx), "clearing an empty store is not an error")

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
