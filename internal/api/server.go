// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

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
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Ukj0ng/bookstore-api/internal/catalog/book"
	"github.com/Ukj0ng/bookstore-api/internal/catalog/category"
	"github.com/Ukj0ng/bookstore-api/internal/platform/config"
	"github.com/Ukj0ng/bookstore-api/internal/platform/constants"
	"github.com/Ukj0ng/bookstore-api/internal/platform/middleware"
	"github.com/Ukj0ng/bookstore-api/internal/users/account"
	"github.com/Ukj0ng/bookstore-api/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the account lifecycle (register, login, token refresh).
	Auth *auth.Handler

	// Account handles authenticated self-service profile routes.
	Account *account.Handler

	// Book handles the book catalog and discovery routes.
	Book *book.Handler

	// Category handles the category taxonomy routes.
	Category *category.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Route tiers:
//
//   - Public reads and the auth entry points carry no auth middleware at
//     all: whatever the Authorization header holds, the request goes
//     straight to the handler.
//   - Authenticated routes add [middleware.Authenticate] and
//     [middleware.RequireAuth].
//   - Admin mutations additionally add [middleware.RequireAdmin] and
//     [middleware.RequireLiveAccount], so a deleted account's still-valid
//     token cannot mutate the catalog.
func NewServer(runCtx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, accounts middleware.AccountFinder, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(runCtx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(authRouter chi.Router) {
			h.Auth.PublicRoutes(authRouter)

			authRouter.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticate(verifier))
				protected.Use(middleware.RequireAuth)
				h.Auth.ProtectedRoutes(protected)
			})
		})

		api.Route("/users", func(userRouter chi.Router) {
			userRouter.Use(middleware.Authenticate(verifier))
			userRouter.Use(middleware.RequireAuth)
			h.Account.Routes(userRouter)
		})

		api.Route("/books", func(bookRouter chi.Router) {
			h.Book.PublicRoutes(bookRouter)

			bookRouter.Group(func(admin chi.Router) {
				admin.Use(middleware.Authenticate(verifier))
				admin.Use(middleware.RequireAuth)
				admin.Use(middleware.RequireAdmin())
				admin.Use(middleware.RequireLiveAccount(accounts))
				h.Book.AdminRoutes(admin)
			})
		})

		api.Route("/categories", func(categoryRouter chi.Router) {
			h.Category.PublicRoutes(categoryRouter)

			categoryRouter.Group(func(admin chi.Router) {
				admin.Use(middleware.Authenticate(verifier))
				admin.Use(middleware.RequireAuth)
				admin.Use(middleware.RequireAdmin())
				admin.Use(middleware.RequireLiveAccount(accounts))
				h.Category.AdminRoutes(admin)
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.ServerPort),
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
