// Copyright (c) 2026 Porchlight. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/constants"
	"github.com/averyclark/porchlight/internal/platform/sec"
	"github.com/averyclark/porchlight/pkg/uuidv7"
)

// TokenProvider signs session tokens bound to a session record.
type TokenProvider interface {
	GenerateSessionToken(sessionID string, timeToLive time.Duration) (string, error)
}

// Service implements the admin authentication use cases.
//
// There is exactly one admin identity. The configured password is bcrypt
// hashed once at startup; login compares against the hash so the plaintext
// never sits in memory longer than the config load.
type Service struct {
	sessions     SessionRepository
	tokens       TokenProvider
	passwordHash string
	logger       *slog.Logger
}

func NewService(sessions SessionRepository, tokens TokenProvider, passwordHash string, logger *slog.Logger) *Service {
	return &Service{
		sessions:     sessions,
		tokens:       tokens,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// Login checks the shared admin password and mints a session.
//
// A wrong password is a plain 401 with no detail about why.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	if !sec.CheckPasswordHash(input.Password, service.passwordHash) {
		service.logger.Warn("admin_login_rejected")
		return nil, apperr.Unauthorized("Invalid password")
	}

	currentTime := time.Now().UTC()
	session := &Session{
		ID:        uuidv7.New(),
		CreatedAt: currentTime,
		ExpiresAt: currentTime.Add(constants.AdminSessionTTL),
	}
	if err := service.sessions.Save(context, session, constants.AdminSessionTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	token, err := service.tokens.GenerateSessionToken(session.ID, constants.AdminSessionTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("admin_login", slog.String("session_id", session.ID))
	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session record; the token dies with it.
func (service *Service) Logout(context context.Context, sessionID string) error {
	if err := service.sessions.Delete(context, sessionID); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("admin_logout", slog.String("session_id", sessionID))
	return nil
}

// SessionExists satisfies middleware.SessionChecker.
func (service *Service) SessionExists(context context.Context, sessionID string) (bool, error) {
	return service.sessions.Exists(context, sessionID)
}
