package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/service"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/middleware"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/httputil"
)

// AuthService is the slice of the auth service the handler needs.
type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (identity.Identity, error)
	Login(ctx context.Context, email, password string) (identity.Identity, string, error)
}

// AuthHandler owns the /auth endpoints. It stays thin: decode, validate,
// delegate, translate.
type AuthHandler struct {
	auth          AuthService
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(auth AuthService, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, secureCookies: secureCookies}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validateRegisterRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	ident, err := h.auth.Register(r.Context(), service.RegisterRequest{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, ident)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if !govalidator.IsEmail(req.Email) || req.Password == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email and password are required"))
		return
	}

	ident, signed, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(signed, h.cookieTTL))
	httputil.WriteJSON(w, http.StatusOK, ident)
}

// handleLogout clears the client's cookie. Tokens are not revoked server-side;
// an already-issued token stays valid until it expires.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", -time.Hour)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleMe echoes the resolved identity. It is the canonical protected route.
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ident)
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func validateRegisterRequest(req registerRequest) error {
	if !govalidator.StringLength(req.Email, "1", "255") || !govalidator.IsEmail(req.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid email")
	}
	if req.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	if !govalidator.StringLength(req.FullName, "1", "255") {
		return dErrors.New(dErrors.CodeBadRequest, "full_name is required")
	}
	if !govalidator.StringLength(req.Role, "1", "100") {
		return dErrors.New(dErrors.CodeBadRequest, "role is required")
	}
	if len(req.Department) > 255 {
		return dErrors.New(dErrors.CodeBadRequest, "department too long")
	}
	return nil
}
