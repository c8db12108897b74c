// Copyright (c) 2026 Porchlight. All rights reserved.

// Package auth implements the admin login flow: a single shared password
// exchanged for a signed session token backed by a revocable server-side
// session record.
package auth

import (
	"context"
	"time"
)

// Session is one live admin session record.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionRepository stores admin session records with a TTL.
type SessionRepository interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// LoginInput is the login payload.
type LoginInput struct {
	Password string `json:"password"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
