// Copyright (c) 2026 Porchlight. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/middleware"
	"github.com/averyclark/porchlight/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AdminClaims
	err    error
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AdminClaims, error) {
	return v.claims, v.err
}

type stubSessions struct {
	alive bool
	err   error
}

func (s *stubSessions) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return s.alive, s.err
}

/*
TestAuthenticate_SchemeHandling verifies how the token middleware treats the
different Authorization header shapes. A Basic header must flow through
untouched: the admin edge gate downstream owns that scheme, and rejecting it
here would make basic auth unreachable.
*/
func TestAuthenticate_SchemeHandling(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
		reachesHandler bool
		expectAdmin    bool
	}{
		{"no_header_is_anonymous", "", http.StatusOK, true, false},
		{"basic_passes_through_anonymous", "Basic YWRtaW46aHVudGVyMg==", http.StatusOK, true, false},
		{"unknown_scheme_passes_through", "Digest abc", http.StatusOK, true, false},
		{"valid_bearer_sets_admin", "Bearer good-token", http.StatusOK, true, true},
		{"bearer_missing_token", "Bearer", http.StatusUnauthorized, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{claims: &sec.AdminClaims{SessionID: "s1"}}
			sessions := &stubSessions{alive: true}

			var handlerReached bool
			var adminSeen *sec.AdminClaims
			next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				handlerReached = true
				adminSeen = ctxutil.GetAdmin(request.Context())
				writer.WriteHeader(http.StatusOK)
			})

			request := httptest.NewRequest(http.MethodGet, "/api/admin/recipes", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(verifier, sessions)(next).ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.reachesHandler, handlerReached)
			if tt.expectAdmin {
				require.NotNil(t, adminSeen)
				assert.Equal(t, "s1", adminSeen.SessionID)
			} else {
				assert.Nil(t, adminSeen)
			}
		})
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	tests := []struct {
		name     string
		verifier *stubVerifier
		sessions *stubSessions
	}{
		{"invalid_signature", &stubVerifier{err: errors.New("bad signature")}, &stubSessions{alive: true}},
		{"revoked_session", &stubVerifier{claims: &sec.AdminClaims{SessionID: "s1"}}, &stubSessions{alive: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				t.Fatal("handler must not run")
			})

			request := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
			request.Header.Set("Authorization", "Bearer some-token")
			recorder := httptest.NewRecorder()

			middleware.Authenticate(tt.verifier, tt.sessions)(next).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

/*
TestBasicAuthAfterAuthenticate drives the two middleware layers the way the
server composes them for /api/admin: the token middleware first, then the
basic-auth gate. A client answering the WWW-Authenticate challenge with
valid credentials must reach the handler.
*/
func TestBasicAuthAfterAuthenticate(t *testing.T) {
	passwordHash, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	verifier := &stubVerifier{claims: &sec.AdminClaims{SessionID: "s1"}}
	sessions := &stubSessions{alive: true}

	var handlerReached bool
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerReached = true
		writer.WriteHeader(http.StatusOK)
	})

	chain := middleware.Authenticate(verifier, sessions)(
		middleware.BasicAuth("admin", passwordHash)(next))

	t.Run("valid_credentials_pass", func(t *testing.T) {
		handlerReached = false
		request := httptest.NewRequest(http.MethodGet, "/api/admin/recipes", nil)
		request.SetBasicAuth("admin", "hunter2")
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, handlerReached)
	})

	t.Run("wrong_password_gets_challenge", func(t *testing.T) {
		handlerReached = false
		request := httptest.NewRequest(http.MethodGet, "/api/admin/recipes", nil)
		request.SetBasicAuth("admin", "wrong")
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Header().Get("WWW-Authenticate"), "Basic")
		assert.False(t, handlerReached)
	})

	t.Run("missing_credentials_get_challenge", func(t *testing.T) {
		handlerReached = false
		request := httptest.NewRequest(http.MethodGet, "/api/admin/recipes", nil)
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("WWW-Authenticate"))
		assert.False(t, handlerReached)
	})
}
