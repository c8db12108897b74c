// Copyright (c) 2026 Porchlight. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/auth"
	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/sec"
)

type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (f *fakeSessionRepository) Save(_ context.Context, session *auth.Session, _ time.Duration) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepository) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := f.sessions[sessionID]
	return ok, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) (*auth.Service, *fakeSessionRepository, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, "porchlight.site")
	require.NoError(t, err)

	passwordHash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	sessions := newFakeSessionRepository()
	service := auth.NewService(sessions, tokens, passwordHash, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, sessions, tokens
}

/*
TestService_Login issues a verifiable token bound to a stored session.
*/
func TestService_Login(t *testing.T) {
	service, sessions, tokens := newTestService(t)

	result, err := service.Login(context.Background(), auth.LoginInput{Password: "correct horse battery staple"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := tokens.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	alive, err := service.SessionExists(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.True(t, alive)
	assert.Len(t, sessions.sessions, 1)
}

/*
TestService_Login_WrongPassword rejects with 401 and stores nothing.
*/
func TestService_Login_WrongPassword(t *testing.T) {
	service, sessions, _ := newTestService(t)

	_, err := service.Login(context.Background(), auth.LoginInput{Password: "guess"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
	assert.Empty(t, sessions.sessions)
}

/*
TestService_Logout revokes the session so the still-valid token no longer
authenticates.
*/
func TestService_Logout(t *testing.T) {
	service, _, tokens := newTestService(t)

	result, err := service.Login(context.Background(), auth.LoginInput{Password: "correct horse battery staple"})
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims.SessionID))

	alive, err := service.SessionExists(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.False(t, alive)

	// The signature is still valid; revocation lives server-side.
	_, err = tokens.VerifyToken(result.Token)
	assert.NoError(t, err)
}

/*
TestTokenService_RejectsTamperedToken verifies signature enforcement.
*/
func TestTokenService_RejectsTamperedToken(t *testing.T) {
	tokens, err := sec.NewTokenService(testSecret, "porchlight.site")
	require.NoError(t, err)

	token, err := tokens.GenerateSessionToken("session-1", time.Hour)
	require.NoError(t, err)

	otherTokens, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "porchlight.site")
	require.NoError(t, err)

	_, err = otherTokens.VerifyToken(token)
	require.Error(t, err)
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("short", "porchlight.site")
	require.Error(t, err)
}
