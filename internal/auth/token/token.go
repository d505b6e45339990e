// Package token issues and verifies the signed session tokens used as bearer
// credentials by the dashboard.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the session token lifetime. Tokens are never revoked
// server-side; logout only discards the client's copy.
const DefaultTTL = 24 * time.Hour

// Claims are the identity attributes embedded in a session token.
type Claims struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a symmetric secret. The
// secret and clock are injected at construction so issuance and verification
// stay deterministic under test.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// ErrMissingSigningKey is returned when the service is constructed without a
// secret. There is deliberately no fallback key.
var ErrMissingSigningKey = errors.New("token: signing key is required")

// NewService builds a token Service. The signing key is mandatory; ttl and
// now default to DefaultTTL and time.Now when zero.
func NewService(signingKey string, ttl time.Duration, now func() time.Time) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Service{signingKey: []byte(signingKey), ttl: ttl, now: now}, nil
}

// Issue mints a signed token for the given identity, valid for the service
// TTL from the injected clock's now.
func (s *Service) Issue(identityID uuid.UUID, email, role string) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		IdentityID: identityID.String(),
		Email:      email,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry. It never returns an error to
// callers: a malformed, tampered, or expired token yields (nil, false).
// Callers must branch on the boolean before touching the claims.
func (s *Service) Verify(tokenString string) (*Claims, bool) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, false
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}
