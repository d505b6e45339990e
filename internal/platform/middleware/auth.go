// Package middleware carries the HTTP middlewares shared across routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/httputil"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "hr_session"

// SessionResolver resolves a raw cookie value to an authenticated identity.
type SessionResolver interface {
	Resolve(ctx context.Context, rawCredential string) (identity.Identity, bool)
}

type contextKeyIdentity struct{}

// IdentityFrom retrieves the authenticated identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(contextKeyIdentity{}).(identity.Identity)
	return ident, ok
}

// RequireAuth gates a route behind session resolution. Any failure in the
// chain (missing cookie, bad token, deleted account) yields the uniform 401
// envelope; handlers behind it can assume IdentityFrom succeeds.
func RequireAuth(resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				raw = cookie.Value
			}

			ident, ok := resolver.Resolve(ctx, raw)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access",
					"path", r.URL.Path,
					"request_id", chimiddleware.GetReqID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			ctx = context.WithValue(ctx, contextKeyIdentity{}, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
