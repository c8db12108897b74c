// Copyright (c) 2026 Porchlight. All rights reserved.

// Package sec isolates security-sensitive code (password hashing, session
// token signing) from the domain logic.
//
// # Architecture
//
// It is an Infrastructure service injected into the application layer via
// small interfaces (see middleware.TokenVerifier), never imported by stores.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims is the payload embedded inside an admin session token.
//
// The SessionID binds the token to a server-side session record, so revoking
// the Redis entry invalidates the token before its cryptographic expiry.
type AdminClaims struct {
	jwt.RegisteredClaims

	// SessionID is the server-side session record this token is bound to.
	SessionID string `json:"sid"`
}

// TokenService signs and verifies admin session tokens using HS256.
//
// A single shared admin identity means there is no key-distribution problem,
// so a symmetric secret from configuration is sufficient.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService from the configured session secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: session secret must be at least 32 bytes, got %d", len(secret))
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateSessionToken creates a signed token bound to sessionID.
func (service *TokenService) GenerateSessionToken(sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string.
func (service *TokenService) VerifyToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
