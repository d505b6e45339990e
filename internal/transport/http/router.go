// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/middleware"
)

// NewRouter wires all public endpoints. Everything under /audit and /auth/me
// sits behind the session gate; registration, login, and the operational
// endpoints stay open.
func NewRouter(
	authHandler *AuthHandler,
	auditHandler *AuditHandler,
	resolver middleware.SessionResolver,
	metricsHandler http.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	requireAuth := middleware.RequireAuth(resolver, logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/auth", func(r chi.Router) {
		authHandler.Register(r)
		r.With(requireAuth).Get("/me", authHandler.handleMe)
	})

	r.Route("/audit", func(r chi.Router) {
		r.Use(requireAuth)
		auditHandler.Register(r)
	})

	return r
}
