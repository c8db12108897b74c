// Copyright (c) 2026 Porchlight. All rights reserved.

package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/respond"
	"github.com/averyclark/porchlight/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// It decouples the middleware from the concrete [sec.TokenService] so unit
// tests can inject a stub verifier.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AdminClaims, error)
}

// SessionChecker confirms a session ID still exists server-side.
//
// A structurally valid token whose Redis record has been deleted (logout,
// expiry) must be rejected: the token alone is not the session.
type SessionChecker interface {
	SessionExists(ctx context.Context, sessionID string) (bool, error)
}

// Authenticate extracts and verifies the admin session token from the
// Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>'.
//  2. If absent, or if the header carries another scheme (Basic is handled
//     by the admin edge gate), the request proceeds as anonymous.
//  3. If present, verify the signature via [TokenVerifier], then confirm the
//     session record is still live via [SessionChecker].
//  4. Inject [*sec.AdminClaims] into the request context.
func Authenticate(verifier TokenVerifier, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// Anonymous access proceeds; RequireAdmin gates the admin routes.
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.Split(authHeader, " ")
			if strings.ToLower(parts[0]) != "bearer" {
				// Other schemes (Basic on the admin edge gate) are verified by
				// their own middleware further down the chain.
				next.ServeHTTP(writer, request)
				return
			}
			if len(parts) != 2 {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			alive, err := sessions.SessionExists(request.Context(), claims.SessionID)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if !alive {
				respond.Error(writer, request, apperr.Unauthorized("Session has been revoked"))
				return
			}

			ctx := ctxutil.WithAdmin(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests that do not carry a verified admin session.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAdmin(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Admin authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// BasicAuth wraps a route group with HTTP basic authentication.
//
// It is the coarse edge gate in front of the admin convenience routes,
// kept alongside the token-based session auth. The password is compared
// against its bcrypt hash; the username in constant time.
func BasicAuth(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, pass, ok := request.BasicAuth()

			usernameMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passwordMatch := ok && sec.CheckPasswordHash(pass, passwordHash)

			if !ok || !usernameMatch || !passwordMatch {
				writer.Header().Set("WWW-Authenticate", `Basic realm="porchlight admin", charset="UTF-8"`)
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
