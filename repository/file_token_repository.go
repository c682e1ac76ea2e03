// ABOUTME: File-backed implementation of TokenRepository
// ABOUTME: Plays the role browser localStorage plays for the web client

package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileTokenRepository stores the access token in a single file with 0600
// permissions so the session survives process restarts.
type FileTokenRepository struct {
	filePath string
	logger   *slog.Logger
	mu       sync.RWMutex
}

// NewFileTokenRepository creates a file-based token repository at filePath.
func NewFileTokenRepository(filePath string, logger *slog.Logger) *FileTokenRepository {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		logger.Warn("Failed to create token directory", "path", filepath.Dir(filePath), "error", err)
	}

	return &FileTokenRepository{
		filePath: filePath,
		logger:   logger,
	}
}

// Load reads the stored token from disk.
func (r *FileTokenRepository) Load(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Save writes the token to disk, replacing any previous value.
func (r *FileTokenRepository) Save(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.WriteFile(r.filePath, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	r.logger.Debug("Access token persisted", "file_path", r.filePath)
	return nil
}

// Clear removes the token file.
func (r *FileTokenRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
