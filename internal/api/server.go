// Copyright (c) 2026 Porchlight. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/averyclark/porchlight/internal/analytics"
	"github.com/averyclark/porchlight/internal/auth"
	"github.com/averyclark/porchlight/internal/content/project"
	"github.com/averyclark/porchlight/internal/content/recipe"
	"github.com/averyclark/porchlight/internal/content/vehicle"
	"github.com/averyclark/porchlight/internal/platform/config"
	"github.com/averyclark/porchlight/internal/platform/constants"
	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/middleware"
	"github.com/averyclark/porchlight/internal/platform/sec"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups all domain-specific HTTP handler sets.
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the admin login and logout routes.
	Auth *auth.Handler

	// Recipe handles the cooking section.
	Recipe *recipe.Handler

	// Vehicle handles the garage section and its blog.
	Vehicle *vehicle.Handler

	// Project handles the portfolio section.
	Project *project.Handler

	// Analytics handles view tracking and the stats dashboard.
	Analytics *analytics.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// adminPasswordHash gates the /api/admin edge routes with HTTP basic auth;
// the same content handlers are also reachable under /api with a session
// token, which is the authoritative authorization.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	sessions middleware.SessionChecker,
	adminPasswordHash string,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, sessions))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Uploaded images, served straight off the local blob directory.
	fileServer := http.StripPrefix(cfg.UploadBaseURL, http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get(cfg.UploadBaseURL+"/*", fileServer.ServeHTTP)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)
		api.Route("/recipes", h.Recipe.RegisterRoutes)
		api.Route("/vehicles", h.Vehicle.RegisterRoutes)
		api.Route("/projects", h.Project.RegisterRoutes)
		api.Route("/analytics", h.Analytics.RegisterRoutes)

		// The coarse edge gate: everything under /api/admin is the same
		// handler set, but basic auth stands in for the session token.
		api.Route("/admin", func(adminAPI chi.Router) {
			adminAPI.Use(middleware.BasicAuth(cfg.AdminUsername, adminPasswordHash))
			adminAPI.Use(basicAuthAsAdmin)

			adminAPI.Route("/recipes", h.Recipe.RegisterRoutes)
			adminAPI.Route("/vehicles", h.Vehicle.RegisterRoutes)
			adminAPI.Route("/projects", h.Project.RegisterRoutes)
			adminAPI.Route("/analytics", h.Analytics.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// basicAuthAsAdmin marks requests that passed the basic-auth gate as admin
// so the per-route RequireAdmin checks pass without a session token.
func basicAuthAsAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := &sec.AdminClaims{SessionID: "basic-auth"}
		next.ServeHTTP(writer, request.WithContext(ctxutil.WithAdmin(request.Context(), claims)))
	})
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
