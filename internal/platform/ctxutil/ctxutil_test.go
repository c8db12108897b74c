// Copyright (c) 2026 Porchlight. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.Default().With(slog.String("test", "yes"))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_FallbackToDefault(t *testing.T) {
	got := ctxutil.GetLogger(context.Background())
	require.NotNil(t, got)
	assert.Same(t, slog.Default(), got)
}

func TestAdmin_RoundTrip(t *testing.T) {
	claims := &sec.AdminClaims{SessionID: "sess-1"}
	ctx := ctxutil.WithAdmin(context.Background(), claims)
	assert.Same(t, claims, ctxutil.GetAdmin(ctx))
}

func TestAdmin_Anonymous(t *testing.T) {
	assert.Nil(t, ctxutil.GetAdmin(context.Background()))
}
