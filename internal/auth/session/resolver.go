// Package session resolves raw bearer credentials to authenticated
// identities. It is the sole gate protected endpoints consult before acting.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/token"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
)

// TokenVerifier abstracts token verification so tests can substitute services
// with deterministic clocks.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, bool)
}

// IdentityFinder is the read-only slice of the identity store the resolver
// needs.
type IdentityFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (identity.Identity, error)
}

// Resolver combines token verification with an identity lookup. Resolution is
// stateless and read-only: no session table exists beyond the identity row.
type Resolver struct {
	tokens     TokenVerifier
	identities IdentityFinder
}

func NewResolver(tokens TokenVerifier, identities IdentityFinder) *Resolver {
	return &Resolver{tokens: tokens, identities: identities}
}

// Resolve turns a raw credential into an identity. The chain fails closed:
// an empty credential, an invalid or expired token, or a token whose identity
// row no longer exists all yield ok=false. A stale token must never outlive
// account deletion.
func (r *Resolver) Resolve(ctx context.Context, rawCredential string) (identity.Identity, bool) {
	if rawCredential == "" {
		return identity.Identity{}, false
	}

	claims, valid := r.tokens.Verify(rawCredential)
	if !valid {
		return identity.Identity{}, false
	}

	id, err := uuid.Parse(claims.IdentityID)
	if err != nil {
		return identity.Identity{}, false
	}

	ident, err := r.identities.FindByID(ctx, id)
	if err != nil {
		return identity.Identity{}, false
	}
	return ident, true
}

// Require is the strict variant of Resolve for code paths that cannot
// continue without an identity.
func (r *Resolver) Require(ctx context.Context, rawCredential string) (identity.Identity, error) {
	ident, ok := r.Resolve(ctx, rawCredential)
	if !ok {
		return identity.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized")
	}
	return ident, nil
}
