// Copyright (c) 2026 Porchlight. All rights reserved.

package blob_test

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/platform/blob"
)

// 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func dataURI(contentType string, payload []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr bool
		wantCT  string
	}{
		{"png", dataURI("image/png", tinyPNG), false, "image/png"},
		{"jpeg", dataURI("image/jpeg", tinyPNG), false, "image/jpeg"},
		{"not_a_data_uri", "https://example.com/x.png", true, ""},
		{"missing_payload", "data:image/png;base64", true, ""},
		{"unsupported_type", dataURI("image/tiff", tinyPNG), true, ""},
		{"bad_base64", "data:image/png;base64,!!!!", true, ""},
		{"empty_payload", "data:image/png;base64,", true, ""},
		{"non_base64_encoding", "data:image/png;utf8,abc", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, data, err := blob.ParseDataURI(tt.uri)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCT, contentType)
			assert.Equal(t, tinyPNG, data)
		})
	}
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, blob.IsDataURI("data:image/png;base64,abcd"))
	assert.False(t, blob.IsDataURI("https://cdn.example.com/img.png"))
	assert.False(t, blob.IsDataURI(""))
}

func TestLocalStore_PutAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := blob.NewLocalStore(dir, "/uploads/", slog.Default())
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "recipe", "image/png", tinyPNG)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/recipe-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The object exists on disk under the name embedded in the URL.
	name := strings.TrimPrefix(url, "/uploads/")
	onDisk, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, tinyPNG, onDisk)

	require.NoError(t, store.Remove(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Removing the same URL again is a no-op.
	assert.NoError(t, store.Remove(context.Background(), url))
}

func TestLocalStore_RemoveForeignURL(t *testing.T) {
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads", slog.Default())
	require.NoError(t, err)

	// URLs outside the store's namespace are ignored, not deleted.
	assert.NoError(t, store.Remove(context.Background(), "https://elsewhere.example/x.png"))
}
