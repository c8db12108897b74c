// Copyright (c) 2026 Porchlight. All rights reserved.

package blob

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/averyclark/porchlight/pkg/uuidv7"
)

// LocalStore implements [Store] on the local filesystem.
//
// Files are written under baseDir and served by the frontend's static file
// layer at baseURL. The object name is a UUIDv7, so names never collide and
// sort by upload time on disk.
type LocalStore struct {
	baseDir string
	baseURL string
	logger  *slog.Logger
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(baseDir, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: failed to create upload dir %s: %w", baseDir, err)
	}

	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Put writes data to disk and returns the public URL.
func (store *LocalStore) Put(ctx context.Context, prefix, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := prefix + "-" + uuidv7.New() + ExtensionFor(contentType)
	fullPath := filepath.Join(store.baseDir, name)

	// Write to a temp name first so a crash mid-write never leaves a
	// half-written file at the published URL.
	tempPath := fullPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", fmt.Errorf("blob: failed to write %s: %w", name, err)
	}
	if err := os.Rename(tempPath, fullPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("blob: failed to finalize %s: %w", name, err)
	}

	store.logger.Info("blob_stored",
		slog.String("name", name),
		slog.Int("bytes", len(data)),
	)

	return store.baseURL + "/" + name, nil
}

// Remove deletes a stored object by its public URL. Unknown URLs are ignored.
func (store *LocalStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !strings.HasPrefix(url, store.baseURL+"/") {
		return nil
	}

	// path.Base guards against traversal via a crafted URL.
	name := path.Base(strings.TrimPrefix(url, store.baseURL+"/"))
	err := os.Remove(filepath.Join(store.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: failed to remove %s: %w", name, err)
	}

	return nil
}
